// If you are AI: This file defines the AMF3 class object with sealed and dynamic members
// and the externalizer hook used by externalizable classes.

package amf3

import "fmt"

// Externalizer writes the opaque body of an externalizable object through the live
// encoder, so nested values share its reference tables.
type Externalizer func(e *Encoder, o *Object) error

// Object is an instance of a (possibly anonymous) class.
// Only Sealed entries named in Traits.Attributes are written, and Dynamic entries are
// written only when Traits.Dynamic is set.
type Object struct {
	Traits       Traits
	Sealed       map[string]Value
	Dynamic      map[string]Value
	Externalizer Externalizer
}

// NewObject returns an empty object of the given class.
func NewObject(className string, dynamic, externalizable bool) *Object {
	return newObjectWithTraits(NewTraits(className, dynamic, externalizable))
}

// NewAnonymousObject returns an empty dynamic object without class name, the
// equivalent of an ActionScript {} literal.
func NewAnonymousObject() *Object {
	return NewObject("", true, false)
}

// newObjectWithTraits returns an empty object owning a copy of traits.
func newObjectWithTraits(traits Traits) *Object {
	return &Object{
		Traits:  traits.clone(),
		Sealed:  make(map[string]Value),
		Dynamic: make(map[string]Value),
	}
}

// Kind returns KindObject.
func (*Object) Kind() Kind { return KindObject }

// amf3 seals Value.
func (*Object) amf3() {}

// SetSealed stores a sealed member, adding name to the traits when absent.
func (o *Object) SetSealed(name string, v Value) {
	o.Traits.AddAttribute(name)
	if o.Sealed == nil {
		o.Sealed = make(map[string]Value)
	}
	o.Sealed[name] = orUndefined(v)
}

// SetDynamic stores a dynamic member.
func (o *Object) SetDynamic(name string, v Value) {
	if o.Dynamic == nil {
		o.Dynamic = make(map[string]Value)
	}
	o.Dynamic[name] = orUndefined(v)
}

// GetSealed returns a sealed member declared in the traits.
func (o *Object) GetSealed(name string) (Value, bool) {
	if !o.Traits.HasAttribute(name) {
		return nil, false
	}
	v, ok := o.Sealed[name]
	return v, ok
}

// GetDynamic returns a dynamic member.
func (o *Object) GetDynamic(name string) (Value, bool) {
	v, ok := o.Dynamic[name]
	return v, ok
}

// Get looks a member up in the sealed members first, then in the dynamic ones.
func (o *Object) Get(name string) (Value, bool) {
	if v, ok := o.GetSealed(name); ok {
		return v, true
	}
	return o.GetDynamic(name)
}

// ClassName returns the traits' class name.
func (o *Object) ClassName() string { return o.Traits.ClassName }

// externalize runs the encode hook.
func (o *Object) externalize(e *Encoder) error {
	if o.Externalizer == nil {
		return fmt.Errorf("%w: %s", ErrNoExternalizer, o.Traits.ClassName)
	}
	return o.Externalizer(e, o)
}
