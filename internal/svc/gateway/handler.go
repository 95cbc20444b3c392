// If you are AI: This file implements the HTTP remoting gateway.
// Handles POST {gateway_path} with an application/x-amf envelope and answers each
// message with an onResult or onStatus message.

package gateway

import (
	"context"
	"io"
	"log"
	"net/http"
	"sync/atomic"

	"github.com/pkg/errors"

	"amfgate/internal/core/protocol/amf3"
	"amfgate/internal/core/protocol/amfpacket"
	"amfgate/internal/svc/remoting"
)

// ContentType is the media type of remoting requests and responses.
const ContentType = "application/x-amf"

// Options configures the gateway.
type Options struct {
	Path           string
	MaxPacketBytes int64
	ResetPerValue  bool
}

// Stats holds the gateway counters.
type Stats struct {
	Packets       uint64 `json:"packets"`
	Messages      uint64 `json:"messages"`
	DecodeErrors  uint64 `json:"decode_errors"`
	HandlerErrors uint64 `json:"handler_errors"`
}

// Handler serves remoting requests. Every request gets fresh contexts.
type Handler struct {
	services  *remoting.Registry
	externals *amf3.ExternalRegistry
	codec     amfpacket.Codec
	opts      Options

	packets       atomic.Uint64
	messages      atomic.Uint64
	decodeErrors  atomic.Uint64
	handlerErrors atomic.Uint64
}

// NewHandler creates a gateway dispatching to services. The Flex wrapper classes are
// registered in externals.
func NewHandler(services *remoting.Registry, externals *amf3.ExternalRegistry, opts Options) *Handler {
	RegisterFlexExternals(externals)
	return &Handler{
		services:  services,
		externals: externals,
		codec:     amfpacket.Codec{ResetPerValue: opts.ResetPerValue},
		opts:      opts,
	}
}

// RegisterRoutes registers the gateway route on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle(h.opts.Path, h)
}

// Stats returns a snapshot of the counters.
func (h *Handler) Stats() Stats {
	return Stats{
		Packets:       h.packets.Load(),
		Messages:      h.messages.Load(),
		DecodeErrors:  h.decodeErrors.Load(),
		HandlerErrors: h.handlerErrors.Load(),
	}
}

// ServeHTTP handles one remoting request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.opts.MaxPacketBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	out, err := h.handle(r.Context(), data)
	if err != nil {
		log.Printf("gateway: %s: %v", r.RemoteAddr, err)
		w.WriteHeader(statusFor(err))
		return
	}

	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// handle decodes a request envelope, dispatches it and encodes the response.
func (h *Handler) handle(ctx context.Context, data []byte) ([]byte, error) {
	h.packets.Add(1)
	req, err := h.codec.Decode(data, amf3.NewDeserializationContext(h.externals))
	if err != nil {
		h.decodeErrors.Add(1)
		return nil, errors.Wrap(err, "decode request")
	}
	out, err := h.codec.Encode(h.Process(ctx, req), amf3.NewSerializationContext())
	if err != nil {
		return nil, errors.Wrap(err, "encode response")
	}
	return out, nil
}

// Process answers every message of req. Headers are ignored.
func (h *Handler) Process(ctx context.Context, req *amfpacket.Packet) *amfpacket.Packet {
	resp := &amfpacket.Packet{}
	for _, m := range req.Messages {
		h.messages.Add(1)
		resp.Messages = append(resp.Messages, h.dispatch(ctx, m))
	}
	return resp
}

// dispatch answers one message.
func (h *Handler) dispatch(ctx context.Context, m amfpacket.Message) amfpacket.Message {
	if msg, ok := flexMessage(m.Value); ok {
		v, failed := h.serveFlex(ctx, msg)
		return reply(m.Response, failed, v)
	}

	result, err := h.services.Invoke(ctx, m.Target, remoting.Args(m.Value))
	if err != nil {
		h.handlerErrors.Add(1)
		log.Printf("gateway: %s: %v", m.Target, err)
		return reply(m.Response, true, remoting.FaultOf(err).Status())
	}
	return reply(m.Response, false, result)
}

// reply addresses v to the response URI of the request.
func reply(response string, failed bool, v amf3.Value) amfpacket.Message {
	target := response + "/onResult"
	if failed {
		target = response + "/onStatus"
	}
	return amfpacket.Message{Target: target, Response: "null", Value: v}
}

// statusFor maps a failure to an HTTP status: malformed input is the client's fault.
func statusFor(err error) int {
	switch {
	case errors.Is(err, amf3.ErrTruncated),
		errors.Is(err, amf3.ErrInvalidMarker),
		errors.Is(err, amf3.ErrBadReference),
		errors.Is(err, amf3.ErrMissingExternal),
		errors.Is(err, amf3.ErrTooComplex),
		errors.Is(err, amfpacket.ErrInvalidVersion):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
