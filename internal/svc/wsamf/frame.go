// If you are AI: This file decodes command frames, dispatches them and encodes replies.

package wsamf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"amfgate/internal/core/protocol/amf0"
	"amfgate/internal/core/protocol/amf3"
	"amfgate/internal/core/session"
	"amfgate/internal/svc/remoting"
)

// Reply command names.
const (
	CommandResult = "_result"
	CommandError  = "_error"
	CommandReset  = "reset"
)

var errMalformedCommand = errors.New("wsamf: malformed command")

// command is a decoded frame: ["name", txnID, null, args...].
type command struct {
	name  string
	txnID float64
	args  []amf3.Value
}

// HandleFrame answers one frame. A frame that cannot be decoded clears both tables,
// since the peer's view of them can no longer be trusted.
func (h *Handler) HandleFrame(ctx context.Context, s *session.Session, data []byte) []byte {
	cmd, err := decodeCommand(s, data)
	if err != nil {
		log.Printf("wsamf: session %d: %v", s.ID, err)
		s.Reset()
		return encodeReply(s, CommandError, cmd.txnID, faultFor(err))
	}

	if cmd.name == CommandReset {
		s.Reset()
		return encodeReply(s, CommandResult, cmd.txnID, amf3.Null{})
	}

	result, err := h.services.Invoke(ctx, cmd.name, cmd.args)
	if err != nil {
		return encodeReply(s, CommandError, cmd.txnID, remoting.FaultOf(err).Status())
	}
	return encodeReply(s, CommandResult, cmd.txnID, result)
}

// decodeCommand decodes data with the session's deserialization context.
func decodeCommand(s *session.Session, data []byte) (command, error) {
	var items amf0.Array
	err := s.Do(func(_ *amf3.SerializationContext, dec *amf3.DeserializationContext) error {
		var err error
		items, err = amf0.NewDecoder(bytes.NewReader(data), dec).DecodeCommand()
		return err
	})
	var cmd command
	if len(items) >= 2 {
		cmd.txnID, _ = items[1].(float64)
	}
	if err != nil {
		return cmd, err
	}
	if len(items) < 2 {
		return cmd, fmt.Errorf("%w: expected name and transaction id", errMalformedCommand)
	}
	name, ok := items[0].(string)
	if !ok {
		return cmd, fmt.Errorf("%w: command name is %T", errMalformedCommand, items[0])
	}
	cmd.name = name
	if len(items) > 3 {
		for _, it := range items[3:] {
			cmd.args = append(cmd.args, toAMF3(it))
		}
	}
	return cmd, nil
}

// encodeReply encodes [name, txnID, null, result] with the session's serialization
// context. A result that cannot be encoded is replaced by an error reply.
func encodeReply(s *session.Session, name string, txnID float64, result amf3.Value) []byte {
	var out []byte
	err := s.Do(func(enc *amf3.SerializationContext, _ *amf3.DeserializationContext) error {
		var err error
		out, err = writeCommand(enc, name, txnID, result)
		if err != nil {
			out, _ = writeCommand(enc, CommandError, txnID, remoting.FaultOf(err).Status())
		}
		return err
	})
	if err != nil {
		log.Printf("wsamf: session %d: encode reply: %v", s.ID, err)
	}
	return out
}

// writeCommand encodes one reply frame.
func writeCommand(enc *amf3.SerializationContext, name string, txnID float64, result amf3.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := amf0.NewEncoder(&buf, enc).EncodeCommand(name, txnID, nil, result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// faultFor classifies a decode failure.
func faultFor(err error) *amf3.Object {
	return (&remoting.Fault{Code: remoting.CodeBadRequest, Message: err.Error()}).Status()
}
