// If you are AI: This file defines the reference-table kinds without children:
// byte arrays, dates and the two XML kinds.

package amf3

import "time"

// ByteArray is a raw byte blob.
type ByteArray struct {
	Bytes []byte
}

// Date is a point in time in milliseconds since the Unix epoch.
// It travels as a double, so values beyond 2^53 lose precision.
type Date struct {
	Millis int64
}

// XML is an E4X XML fragment.
type XML struct {
	Text string
}

// XMLDocument is a legacy flash.xml.XMLDocument, byte-identical to XML except for its marker.
type XMLDocument struct {
	Text string
}

// NewByteArray wraps b.
func NewByteArray(b []byte) *ByteArray { return &ByteArray{Bytes: b} }

// NewDate returns a date at the given milliseconds since epoch.
func NewDate(millis int64) *Date { return &Date{Millis: millis} }

// DateFromTime converts t to millisecond precision.
func DateFromTime(t time.Time) *Date { return &Date{Millis: t.UnixMilli()} }

// Time converts d back to a UTC time.Time.
func (d *Date) Time() time.Time { return time.UnixMilli(d.Millis).UTC() }

// NewXML returns an XML fragment.
func NewXML(text string) *XML { return &XML{Text: text} }

// NewXMLDocument returns a legacy XML document.
func NewXMLDocument(text string) *XMLDocument { return &XMLDocument{Text: text} }

// Kind returns KindByteArray.
func (*ByteArray) Kind() Kind { return KindByteArray }

// Kind returns KindDate.
func (*Date) Kind() Kind { return KindDate }

// Kind returns KindXML.
func (*XML) Kind() Kind { return KindXML }

// Kind returns KindXMLDocument.
func (*XMLDocument) Kind() Kind { return KindXMLDocument }

// amf3 seals Value.
func (*ByteArray) amf3() {}

// amf3 seals Value.
func (*Date) amf3() {}

// amf3 seals Value.
func (*XML) amf3() {}

// amf3 seals Value.
func (*XMLDocument) amf3() {}
