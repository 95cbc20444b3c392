// If you are AI: This file contains unit tests for sessions and the session registry.

package session

import (
	"sync"
	"testing"

	"amfgate/internal/core/protocol/amf3"
)

// TestRegistryOpenClose checks id allocation and removal.
func TestRegistryOpenClose(t *testing.T) {
	reg := NewRegistry(nil)

	s1 := reg.Open("10.0.0.1:5000")
	s2 := reg.Open("10.0.0.2:5000")
	if s1.ID == s2.ID {
		t.Fatalf("Sessions share id %d", s1.ID)
	}
	if reg.Count() != 2 {
		t.Errorf("Expected 2 sessions, got %d", reg.Count())
	}
	if reg.Get(s1.ID) != s1 {
		t.Error("Get should return the opened session")
	}

	if !reg.Close(s1.ID) {
		t.Error("Close should report a registered session")
	}
	if reg.Close(s1.ID) {
		t.Error("Second Close should report false")
	}
	if reg.Get(s1.ID) != nil {
		t.Error("Get should return nil after Close")
	}
	if reg.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", reg.Count())
	}
}

// TestRegistryList checks ordering and table statistics in snapshots.
func TestRegistryList(t *testing.T) {
	reg := NewRegistry(nil)
	first := reg.Open("a")
	reg.Open("b")

	err := first.Do(func(enc *amf3.SerializationContext, dec *amf3.DeserializationContext) error {
		if _, err := amf3.Encode(amf3.String("hello"), enc); err != nil {
			return err
		}
		_, _, err := amf3.Decode([]byte{0x09, 0x01, 0x01}, dec)
		return err
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	infos := reg.List()
	if len(infos) != 2 {
		t.Fatalf("Expected 2 infos, got %d", len(infos))
	}
	if infos[0].ID >= infos[1].ID {
		t.Errorf("List not ordered by id: %d, %d", infos[0].ID, infos[1].ID)
	}
	if infos[0].RemoteAddr != "a" {
		t.Errorf("Expected remote addr a, got %q", infos[0].RemoteAddr)
	}
	if infos[0].Encode.Strings != 1 || infos[0].Decode.Objects != 1 {
		t.Errorf("Unexpected stats: %+v %+v", infos[0].Encode, infos[0].Decode)
	}
}

// TestSessionReset checks that Reset empties both tables.
func TestSessionReset(t *testing.T) {
	s := New(1, "peer", nil)
	_ = s.Do(func(enc *amf3.SerializationContext, dec *amf3.DeserializationContext) error {
		enc.AddString("foo")
		dec.AddString("bar")
		return nil
	})
	s.Reset()

	info := s.Info()
	if info.Encode != (amf3.Stats{}) || info.Decode != (amf3.Stats{}) {
		t.Errorf("Reset left entries: %+v %+v", info.Encode, info.Decode)
	}
}

// TestRegistryConcurrentOpen opens sessions from several goroutines.
func TestRegistryConcurrentOpen(t *testing.T) {
	reg := NewRegistry(nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s := reg.Open("peer")
				s.Reset()
			}
		}()
	}
	wg.Wait()

	if reg.Count() != 400 {
		t.Errorf("Expected 400 sessions, got %d", reg.Count())
	}
}
