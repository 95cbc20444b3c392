// If you are AI: This file tests envelope encoding and decoding against known byte layouts.
package amfpacket

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amfgate/internal/core/protocol/amf3"
)

// fromHex decodes a spaced hex dump.
func fromHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	require.NoError(t, err)
	return b
}

// ascii returns the hex dump of s.
func ascii(s string) string {
	return hex.EncodeToString([]byte(s))
}

// TestEncodeSingleMessage checks the layout of a one-message envelope.
func TestEncodeSingleMessage(t *testing.T) {
	p := &Packet{}
	p.AddMessage("com/foo.bar", "/1/", amf3.String("hello"))

	got, err := Encode(p, amf3.NewSerializationContext())
	require.NoError(t, err)
	want := "00 03 00 00 00 01 00 0b" + ascii("com/foo.bar") + "00 03" + ascii("/1/") +
		"00 00 00 08 11 06 0b" + ascii("hello")
	assert.Equal(t, fromHex(t, want), got)
}

// TestEncodeHeaders checks header layout and the must-understand flag.
func TestEncodeHeaders(t *testing.T) {
	p := &Packet{}
	p.AddHeader("foo", true, amf3.Integer(27))
	p.AddHeader("bar", false, amf3.Bool(true))

	got, err := Encode(p, amf3.NewSerializationContext())
	require.NoError(t, err)
	want := "00 03 00 02" +
		"00 03" + ascii("foo") + "01 00 00 00 03 11 04 1b" +
		"00 03" + ascii("bar") + "00 00 00 00 02 11 03" +
		"00 00"
	assert.Equal(t, fromHex(t, want), got)
}

// TestSharedContext checks that a string repeated across messages becomes a reference
// unless the codec resets per value.
func TestSharedContext(t *testing.T) {
	p := &Packet{}
	p.AddMessage("a", "/1", amf3.String("hello"))
	p.AddMessage("a", "/2", amf3.String("hello"))

	shared, err := Encode(p, amf3.NewSerializationContext())
	require.NoError(t, err)
	assert.Equal(t, fromHex(t, "00 00 00 03 11 06 00"), shared[len(shared)-7:])

	reset, err := Codec{ResetPerValue: true}.Encode(p, amf3.NewSerializationContext())
	require.NoError(t, err)
	assert.Equal(t, fromHex(t, "00 00 00 08 11 06 0b"+ascii("hello")), reset[len(reset)-12:])

	for _, data := range [][]byte{shared, reset} {
		got, err := Decode(data, amf3.NewDeserializationContext(nil))
		require.NoError(t, err)
		assert.True(t, p.Equal(got))
	}
}

// TestEncodeTooMany checks that the U16 counts are enforced before anything is written.
func TestEncodeTooMany(t *testing.T) {
	p := &Packet{Headers: make([]Header, 65536)}
	got, err := Encode(p, amf3.NewSerializationContext())
	assert.ErrorIs(t, err, ErrTooManyHeaders)
	assert.ErrorIs(t, err, amf3.ErrCapacity)
	assert.Nil(t, got)

	p = &Packet{Messages: make([]Message, 65536)}
	got, err = Encode(p, amf3.NewSerializationContext())
	assert.ErrorIs(t, err, ErrTooManyMessages)
	assert.Nil(t, got)

	p = &Packet{Messages: make([]Message, 65535)}
	_, err = Encode(p, amf3.NewSerializationContext())
	assert.NoError(t, err)
}

// TestEncodeFailureClearsContext checks that a failing value leaves no table entries.
func TestEncodeFailureClearsContext(t *testing.T) {
	bad := amf3.NewArray()
	bad.Set("", amf3.Null{})
	p := &Packet{}
	p.AddMessage("a", "/1", amf3.String("hello"))
	p.AddMessage("a", "/2", bad)

	ctx := amf3.NewSerializationContext()
	got, err := Encode(p, ctx)
	assert.ErrorIs(t, err, amf3.ErrInvalidValue)
	assert.Nil(t, got)
	assert.Equal(t, amf3.Stats{}, ctx.Stats())
}

// TestDecodeSingleMessage decodes the one-message layout.
func TestDecodeSingleMessage(t *testing.T) {
	data := fromHex(t, "00 03 00 00 00 01 00 0b"+ascii("com/foo.bar")+"00 03"+ascii("/1/")+
		"00 00 00 08 11 06 0b"+ascii("hello"))
	p, err := Decode(data, amf3.NewDeserializationContext(nil))
	require.NoError(t, err)
	require.Len(t, p.Messages, 1)
	assert.Empty(t, p.Headers)
	assert.Equal(t, "com/foo.bar", p.Messages[0].Target)
	assert.Equal(t, "/1/", p.Messages[0].Response)
	assert.Equal(t, amf3.String("hello"), p.Messages[0].Value)
}

// TestDecodeHeaders covers named, unnamed and unknown-length headers.
func TestDecodeHeaders(t *testing.T) {
	data := fromHex(t, "00 03 00 03"+
		"00 03"+ascii("foo")+"01 00 00 00 03 11 04 1b"+
		"00 00 00 00 00 00 02 11 02"+
		"00 03"+ascii("bar")+"00 ff ff ff ff 11 06 07"+ascii("baz")+
		"00 00")
	p, err := Decode(data, amf3.NewDeserializationContext(nil))
	require.NoError(t, err)
	require.Len(t, p.Headers, 3)
	assert.Equal(t, Header{Name: "foo", MustUnderstand: true, Value: amf3.Integer(27)}, p.Headers[0])
	assert.Equal(t, Header{Name: "", MustUnderstand: false, Value: amf3.Bool(false)}, p.Headers[1])
	assert.Equal(t, Header{Name: "bar", MustUnderstand: false, Value: amf3.String("baz")}, p.Headers[2])

	h, ok := p.Header("bar")
	assert.True(t, ok)
	assert.Equal(t, amf3.String("baz"), h.Value)
	_, ok = p.Header("missing")
	assert.False(t, ok)
}

// TestDecodeFlexMessage decodes a message of unknown length carrying a dynamic object.
func TestDecodeFlexMessage(t *testing.T) {
	msg := amf3.NewObject("flex.messaging.messages.RemotingMessage", true, false)
	msg.SetDynamic("body", amf3.NewArray(amf3.String("hello")))
	msg.SetDynamic("clientId", amf3.Null{})
	msg.SetDynamic("destination", amf3.String("echo"))
	msg.SetDynamic("headers", amf3.NewAnonymousObject())
	msg.SetDynamic("messageId", amf3.String("7A0E9B47-2C63-4F56-B8E0-1B2F3A4D5C6E"))
	msg.SetDynamic("operation", amf3.String("echo"))
	msg.SetDynamic("timeToLive", amf3.Integer(0))
	msg.SetDynamic("timestamp", amf3.Integer(0))
	body, err := amf3.Encode(amf3.NewArray(msg), amf3.NewSerializationContext())
	require.NoError(t, err)

	data := fromHex(t, "00 03 00 00 00 01 00 04"+ascii("null")+"00 02"+ascii("/1")+"ff ff ff ff 11")
	data = append(data, body...)

	p, err := Decode(data, amf3.NewDeserializationContext(nil))
	require.NoError(t, err)
	require.Len(t, p.Messages, 1)
	assert.Equal(t, "null", p.Messages[0].Target)
	assert.True(t, amf3.Equal(amf3.NewArray(msg), p.Messages[0].Value))
}

// TestDecodeInvalidVersion rejects every version but 3.
func TestDecodeInvalidVersion(t *testing.T) {
	for _, v := range []string{"00 00", "00 04", "ff ff", "03 00"} {
		_, err := Decode(fromHex(t, v+"00 00 00 00"), amf3.NewDeserializationContext(nil))
		assert.ErrorIs(t, err, ErrInvalidVersion, v)
	}
	_, err := Decode(fromHex(t, "00 03 00 00 00 00"), amf3.NewDeserializationContext(nil))
	assert.NoError(t, err)
}

// TestDecodeNotEnoughData truncates valid envelopes at every boundary that matters.
func TestDecodeNotEnoughData(t *testing.T) {
	cases := map[string]string{
		"empty":             "",
		"half version":      "00",
		"no header count":   "00 03",
		"no message count":  "00 03 00 00",
		"half count":        "00 03 00 00 00",
		"missing message":   "00 03 00 00 00 01",
		"short target":      "00 03 00 00 00 01 00 05 66 6f",
		"no response":       "00 03 00 00 00 01 00 01 66",
		"no length":         "00 03 00 00 00 01 00 01 66 00 01 67",
		"short length":      "00 03 00 00 00 01 00 01 66 00 01 67 00 00",
		"short value":       "00 03 00 00 00 01 00 01 66 00 01 67 00 00 00 04 11 06 05",
		"zero length":       "00 03 00 00 00 01 00 01 66 00 01 67 00 00 00 00",
		"unknown no marker": "00 03 00 00 00 01 00 01 66 00 01 67 ff ff ff ff",
		"unknown short":     "00 03 00 00 00 01 00 01 66 00 01 67 ff ff ff ff 11 06 07 61",
		"header no flag":    "00 03 00 01 00 01 66",
		"header no value":   "00 03 00 01 00 01 66 01 00 00 00 03 11 04",
		"header missing":    "00 03 00 01",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(fromHex(t, in), amf3.NewDeserializationContext(nil))
			assert.ErrorIs(t, err, amf3.ErrTruncated)
		})
	}
}

// TestDecodeInvalidValueMarker rejects values that do not start with the AVM+ marker.
func TestDecodeInvalidValueMarker(t *testing.T) {
	for _, in := range []string{
		"00 03 00 00 00 01 00 00 00 00 00 00 00 02 02 03",
		"00 03 00 00 00 01 00 00 00 00 ff ff ff ff 0a 03",
		"00 03 00 01 00 00 01 00 00 00 02 10 02 00 00",
	} {
		_, err := Decode(fromHex(t, in), amf3.NewDeserializationContext(nil))
		assert.ErrorIs(t, err, amf3.ErrInvalidMarker, in)
	}
}

// TestDecodeFailureClearsContext checks that a failed decode empties the tables.
func TestDecodeFailureClearsContext(t *testing.T) {
	ctx := amf3.NewDeserializationContext(nil)
	data := fromHex(t, "00 03 00 00 00 02"+
		"00 00 00 00 00 00 00 05 11 06 05 61 62"+
		"00 00 00 00 00 00 00 02 11 06")
	_, err := Decode(data, ctx)
	require.Error(t, err)
	assert.Equal(t, amf3.Stats{}, ctx.Stats())
}

// TestRoundTrip encodes and decodes a packet with mixed values.
func TestRoundTrip(t *testing.T) {
	obj := amf3.NewObject("com.example.Point", false, false)
	obj.SetSealed("x", amf3.Integer(1))
	obj.SetSealed("y", amf3.Double(2.5))

	p := &Packet{}
	p.AddHeader("Credentials", false, amf3.NewArray(amf3.String("user"), amf3.String("secret")))
	p.AddMessage("Echo.echo", "/1", amf3.NewArray(obj, obj))
	p.AddMessage("Echo.echo", "/2", amf3.NewDate(1500000000000))

	for _, codec := range []Codec{{}, {ResetPerValue: true}} {
		data, err := codec.Encode(p, amf3.NewSerializationContext())
		require.NoError(t, err)
		got, err := codec.Decode(data, amf3.NewDeserializationContext(nil))
		require.NoError(t, err)
		assert.True(t, p.Equal(got))
	}
}
