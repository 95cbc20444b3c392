// If you are AI: This file implements the Flex messaging layer on top of remoting:
// RemotingMessage dispatch, CommandMessage acknowledgement, reply message construction
// and the ArrayCollection/ObjectProxy externalizable wrappers.

package gateway

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"amfgate/internal/core/protocol/amf3"
	"amfgate/internal/svc/remoting"
)

// Flex class names.
const (
	RemotingMessageClass    = "flex.messaging.messages.RemotingMessage"
	CommandMessageClass     = "flex.messaging.messages.CommandMessage"
	AcknowledgeMessageClass = "flex.messaging.messages.AcknowledgeMessage"
	ErrorMessageClass       = "flex.messaging.messages.ErrorMessage"
	ArrayCollectionClass    = "flex.messaging.io.ArrayCollection"
	ObjectProxyClass        = "flex.messaging.io.ObjectProxy"
)

// RegisterFlexExternals registers decoders for the Flex wrapper classes. Both carry a
// single value, exposed as the sealed member "source".
func RegisterFlexExternals(reg *amf3.ExternalRegistry) {
	reg.Register(ArrayCollectionClass, readWrapped)
	reg.Register(ObjectProxyClass, readWrapped)
}

// NewArrayCollection wraps source in an ArrayCollection.
func NewArrayCollection(source *amf3.Array) *amf3.Object {
	return newWrapped(ArrayCollectionClass, source)
}

// NewObjectProxy wraps o in an ObjectProxy.
func NewObjectProxy(o *amf3.Object) *amf3.Object {
	return newWrapped(ObjectProxyClass, o)
}

// newWrapped builds an externalizable wrapper around v.
func newWrapped(className string, v amf3.Value) *amf3.Object {
	o := amf3.NewObject(className, false, true)
	o.SetSealed("source", v)
	o.Externalizer = writeWrapped
	return o
}

// readWrapped fills a wrapper from its single inner value.
func readWrapped(d *amf3.Decoder, obj *amf3.Object) error {
	v, err := d.ReadValue()
	if err != nil {
		return err
	}
	obj.SetSealed("source", v)
	obj.Externalizer = writeWrapped
	return nil
}

// writeWrapped writes the inner value of a wrapper.
func writeWrapped(e *amf3.Encoder, o *amf3.Object) error {
	v, _ := o.GetSealed("source")
	return e.WriteValue(v)
}

// flexMessage returns the Flex message carried by v, either directly or as the only
// element of an array.
func flexMessage(v amf3.Value) (*amf3.Object, bool) {
	if arr, ok := v.(*amf3.Array); ok && arr != nil && len(arr.Dense) == 1 && len(arr.Assoc) == 0 {
		v = arr.Dense[0]
	}
	o, ok := v.(*amf3.Object)
	if !ok || o == nil {
		return nil, false
	}
	switch o.ClassName() {
	case RemotingMessageClass, CommandMessageClass:
		return o, true
	}
	return nil, false
}

// serveFlex handles one Flex message and reports whether the reply is an error.
func (h *Handler) serveFlex(ctx context.Context, msg *amf3.Object) (amf3.Value, bool) {
	if msg.ClassName() == CommandMessageClass {
		return acknowledge(msg, amf3.Null{}), false
	}
	body, _ := msg.Get("body")
	result, err := h.services.Invoke(ctx, flexTarget(msg), remoting.Args(body))
	if err != nil {
		h.handlerErrors.Add(1)
		return errorMessage(msg, remoting.FaultOf(err)), true
	}
	return acknowledge(msg, result), false
}

// flexTarget resolves the remoting target of a RemotingMessage. A non-empty source
// names the service in place of the destination.
func flexTarget(msg *amf3.Object) string {
	service := stringMember(msg, "destination")
	if source := stringMember(msg, "source"); source != "" {
		service = source
	}
	return service + "." + stringMember(msg, "operation")
}

// acknowledge builds the AcknowledgeMessage answering req.
func acknowledge(req *amf3.Object, body amf3.Value) *amf3.Object {
	ack := amf3.NewObject(AcknowledgeMessageClass, false, false)
	fillReply(ack, req, body)
	return ack
}

// errorMessage builds the ErrorMessage answering req.
func errorMessage(req *amf3.Object, f *remoting.Fault) *amf3.Object {
	msg := amf3.NewObject(ErrorMessageClass, false, false)
	fillReply(msg, req, amf3.Null{})
	msg.SetSealed("faultCode", amf3.String(f.Code))
	msg.SetSealed("faultString", amf3.String(f.Message))
	msg.SetSealed("faultDetail", amf3.Null{})
	msg.SetSealed("rootCause", amf3.Null{})
	msg.SetSealed("extendedData", amf3.Null{})
	return msg
}

// fillReply sets the members shared by acknowledgements and errors.
func fillReply(reply, req *amf3.Object, body amf3.Value) {
	clientID := stringMember(req, "clientId")
	if clientID == "" {
		clientID = newUID()
	}
	destination, _ := req.Get("destination")
	reply.SetSealed("body", body)
	reply.SetSealed("clientId", amf3.String(clientID))
	reply.SetSealed("correlationId", amf3.String(stringMember(req, "messageId")))
	reply.SetSealed("destination", destination)
	reply.SetSealed("headers", amf3.NewAnonymousObject())
	reply.SetSealed("messageId", amf3.String(newUID()))
	reply.SetSealed("timestamp", amf3.Double(float64(time.Now().UnixMilli())))
	reply.SetSealed("timeToLive", amf3.Double(0))
}

// stringMember returns a string member of o, or "".
func stringMember(o *amf3.Object, name string) string {
	v, _ := o.Get(name)
	s, _ := v.(amf3.String)
	return string(s)
}

// newUID returns a random identifier in the upper-case 8-4-4-4-12 form Flex clients use.
func newUID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return fmt.Sprintf("%X-%X-%X-%X-%X", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}
