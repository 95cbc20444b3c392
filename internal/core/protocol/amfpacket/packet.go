// If you are AI: This file defines the remoting envelope: a version, a list of headers and a
// list of messages, each carrying one AMF3 value behind the AVM+ marker.

package amfpacket

import (
	"errors"
	"fmt"

	"amfgate/internal/core/protocol/amf3"
)

// Version is the only envelope version written and accepted.
const Version = 3

// UnknownLength marks a value whose length was not known when it was written.
const UnknownLength = 0xFFFFFFFF

// maxCount is the largest header or message count the U16 field can carry.
const maxCount = 0xFFFF

// avmPlusMarker precedes every value and counts towards its length.
const avmPlusMarker = 0x11

var (
	ErrInvalidVersion  = errors.New("amfpacket: unsupported version")
	ErrTooManyHeaders  = fmt.Errorf("%w: more than %d headers", amf3.ErrCapacity, maxCount)
	ErrTooManyMessages = fmt.Errorf("%w: more than %d messages", amf3.ErrCapacity, maxCount)
)

// Header is an envelope header.
type Header struct {
	Name           string
	MustUnderstand bool
	Value          amf3.Value
}

// Message is an envelope message addressed to a target, with the URI replies go to.
type Message struct {
	Target   string
	Response string
	Value    amf3.Value
}

// Packet is one envelope.
type Packet struct {
	Headers  []Header
	Messages []Message
}

// AddHeader appends a header.
func (p *Packet) AddHeader(name string, mustUnderstand bool, v amf3.Value) {
	p.Headers = append(p.Headers, Header{Name: name, MustUnderstand: mustUnderstand, Value: v})
}

// AddMessage appends a message.
func (p *Packet) AddMessage(target, response string, v amf3.Value) {
	p.Messages = append(p.Messages, Message{Target: target, Response: response, Value: v})
}

// Header returns the first header with the given name.
func (p *Packet) Header(name string) (Header, bool) {
	for _, h := range p.Headers {
		if h.Name == name {
			return h, true
		}
	}
	return Header{}, false
}

// Equal reports whether both packets carry the same headers and messages in order.
func (p *Packet) Equal(o *Packet) bool {
	if len(p.Headers) != len(o.Headers) || len(p.Messages) != len(o.Messages) {
		return false
	}
	for i, h := range p.Headers {
		g := o.Headers[i]
		if h.Name != g.Name || h.MustUnderstand != g.MustUnderstand || !amf3.Equal(h.Value, g.Value) {
			return false
		}
	}
	for i, m := range p.Messages {
		g := o.Messages[i]
		if m.Target != g.Target || m.Response != g.Response || !amf3.Equal(m.Value, g.Value) {
			return false
		}
	}
	return true
}
