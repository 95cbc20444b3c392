// If you are AI: This file converts decoded AMF0 values to the AMF3 value model so
// handlers see one representation regardless of the encoding the client chose.

package wsamf

import (
	"reflect"
	"sort"
	"time"

	"amfgate/internal/core/protocol/amf0"
	"amfgate/internal/core/protocol/amf3"
)

// converter memoizes converted objects so shared and cyclic AMF0 references keep
// their shape.
type converter struct {
	seen map[uintptr]amf3.Value
}

// toAMF3 converts one AMF0 value.
func toAMF3(v amf0.Value) amf3.Value {
	c := converter{seen: make(map[uintptr]amf3.Value)}
	return c.value(v)
}

// value converts v.
func (c *converter) value(v amf0.Value) amf3.Value {
	switch val := v.(type) {
	case nil:
		return amf3.Null{}
	case amf0.Undefined:
		return amf3.Undefined{}
	case bool:
		return amf3.Bool(val)
	case float64:
		return amf3.Double(val)
	case string:
		return amf3.String(val)
	case amf0.XMLDocument:
		return amf3.NewXMLDocument(string(val))
	case time.Time:
		return amf3.DateFromTime(val)
	case amf0.Array:
		arr := amf3.NewArray()
		for _, e := range val {
			arr.Push(c.value(e))
		}
		return arr
	case amf0.ECMAArray:
		if prev, ok := c.seen[mapKey(val)]; ok {
			return prev
		}
		arr := amf3.NewArray()
		c.seen[mapKey(val)] = arr
		for _, k := range sortedKeys(val) {
			arr.Set(k, c.value(val[k]))
		}
		return arr
	case amf0.Object:
		return c.object("", val)
	case *amf0.TypedObject:
		return c.object(val.ClassName, val.Object)
	case amf3.Value:
		return val
	default:
		return amf3.Undefined{}
	}
}

// object converts an AMF0 object to a dynamic AMF3 object of the given class.
func (c *converter) object(className string, members map[string]amf0.Value) amf3.Value {
	if prev, ok := c.seen[mapKey(members)]; ok {
		return prev
	}
	o := amf3.NewObject(className, true, false)
	c.seen[mapKey(members)] = o
	for _, k := range sortedKeys(members) {
		o.SetDynamic(k, c.value(members[k]))
	}
	return o
}

// mapKey identifies a map by its header pointer.
func mapKey[M ~map[string]amf0.Value](m M) uintptr {
	return reflect.ValueOf(m).Pointer()
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[M ~map[string]amf0.Value](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
