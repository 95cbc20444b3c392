// If you are AI: This file defines remoting faults and their status-object form.

package remoting

import (
	"errors"

	"amfgate/internal/core/protocol/amf3"
)

// Fault codes reported to clients.
const (
	CodeProcessing  = "Server.Processing"
	CodeUnavailable = "Server.ResourceUnavailable"
	CodeBadRequest  = "Client.Message.Encoding"
)

// Fault is an error carrying a client-visible code.
type Fault struct {
	Code    string
	Message string
}

// Error implements error.
func (f *Fault) Error() string { return f.Code + ": " + f.Message }

// FaultOf classifies err. Faults keep their code; unknown targets map to
// CodeUnavailable and everything else to CodeProcessing.
func FaultOf(err error) *Fault {
	var f *Fault
	if errors.As(err, &f) {
		return f
	}
	if errors.Is(err, ErrUnknownTarget) {
		return &Fault{Code: CodeUnavailable, Message: err.Error()}
	}
	return &Fault{Code: CodeProcessing, Message: err.Error()}
}

// Status returns the anonymous status object sent in onStatus replies.
func (f *Fault) Status() *amf3.Object {
	o := amf3.NewAnonymousObject()
	o.SetDynamic("level", amf3.String("error"))
	o.SetDynamic("code", amf3.String(f.Code))
	o.SetDynamic("description", amf3.String(f.Message))
	return o
}
