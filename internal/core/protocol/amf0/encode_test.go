// If you are AI: This file tests AMF0 encoding, especially command encoding.
package amf0

import (
	"bytes"
	"testing"

	"amfgate/internal/core/protocol/amf3"
)

// TestEncodeCommand_NoStrictArray verifies that EncodeCommand writes items sequentially
// without wrapping them in a StrictArray (0x0A). Command bodies must start with
// the first item's type marker (e.g., 0x02 for string "_result").
func TestEncodeCommand_NoStrictArray(t *testing.T) {
	response := Array{
		"_result",
		float64(1), // transaction ID
		nil,
		Object{
			"level": "status",
			"code":  "Echo.Success",
		},
	}

	body, err := EncodeCommand(response)
	if err != nil {
		t.Fatalf("EncodeCommand failed: %v", err)
	}

	if len(body) == 0 {
		t.Fatal("Encoded body is empty")
	}

	// First byte MUST be 0x02 (TypeString) for "_result", NOT 0x0A (TypeStrictArray)
	if body[0] == TypeStrictArray {
		t.Fatalf("Command encoding incorrectly wraps items in StrictArray (0x%02x)", TypeStrictArray)
	}
	if body[0] != TypeString {
		t.Fatalf("Command encoding first byte should be 0x02 (TypeString), got 0x%02x", body[0])
	}

	// Skip type marker (1 byte) + length (2 bytes) = 3 bytes, then check string
	expectedResult := "_result"
	if string(body[3:3+len(expectedResult)]) != expectedResult {
		t.Errorf("Expected string '_result' after type marker, got: %q", string(body[3:3+len(expectedResult)]))
	}

	decoded, err := DecodeCommand(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("DecodeCommand failed: %v", err)
	}
	if len(decoded) != 4 {
		t.Fatalf("Expected 4 items, got %d", len(decoded))
	}
	if decoded[1] != float64(1) || decoded[2] != nil {
		t.Errorf("Unexpected transaction id or command object: %v, %v", decoded[1], decoded[2])
	}
	if obj, ok := decoded[3].(Object); !ok || obj["code"] != "Echo.Success" {
		t.Errorf("Unexpected info object: %#v", decoded[3])
	}
}

// TestEncodeCommand_AVMPlusArgument verifies that AMF3 values are written behind the 0x11
// switch marker and share the encoder's reference tables.
func TestEncodeCommand_AVMPlusArgument(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, amf3.NewSerializationContext())
	if err := enc.EncodeCommand("_result", float64(2), nil, amf3.String("foo"), amf3.String("foo")); err != nil {
		t.Fatalf("EncodeCommand failed: %v", err)
	}
	want := []byte{
		0x02, 0x00, 0x07, '_', 'r', 'e', 's', 'u', 'l', 't',
		0x00, 0x40, 0x00, 0, 0, 0, 0, 0, 0,
		0x05,
		0x11, 0x06, 0x07, 'f', 'o', 'o',
		0x11, 0x06, 0x00,
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("Unexpected encoding:\n got %x\nwant %x", buf.Bytes(), want)
	}
}

// TestEncode_ObjectKeyOrder verifies that object members are written in key order.
func TestEncode_ObjectKeyOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Object{"b": true, "a": false}); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := []byte{
		TypeObject,
		0x00, 0x01, 'a', TypeBoolean, 0x00,
		0x00, 0x01, 'b', TypeBoolean, 0x01,
		0x00, 0x00, TypeObjectEnd,
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("Unexpected encoding:\n got %x\nwant %x", buf.Bytes(), want)
	}
}

// TestEncode_Unsupported verifies that unknown Go types are rejected instead of guessed.
func TestEncode_Unsupported(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, struct{}{}); err == nil {
		t.Fatal("Expected error for unsupported type")
	}
	if err := WriteUTF(&buf, string(make([]byte, 70000))); err == nil {
		t.Fatal("Expected error for oversized UTF string")
	}
}
