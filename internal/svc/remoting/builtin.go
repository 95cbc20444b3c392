// If you are AI: This file registers the built-in Echo and Server services.

package remoting

import (
	"context"
	"runtime"
	"time"

	"amfgate/internal/core/protocol/amf3"
)

// Version is reported by Server.info and the admin API.
const Version = "1.0.0"

// ServerInfoClass is the class name of the Server.info result.
const ServerInfoClass = "amfgate.ServerInfo"

// RegisterBuiltins registers Echo.echo, Echo.echoAll, Echo.ping and Server.info.
// started is the process start time used for uptime.
func RegisterBuiltins(r *Registry, started time.Time) {
	r.Register("Echo.echo", func(_ context.Context, args []amf3.Value) (amf3.Value, error) {
		if len(args) == 0 {
			return amf3.Undefined{}, nil
		}
		return args[0], nil
	})
	r.Register("Echo.echoAll", func(_ context.Context, args []amf3.Value) (amf3.Value, error) {
		return amf3.NewArray(args...), nil
	})
	r.Register("Echo.ping", func(context.Context, []amf3.Value) (amf3.Value, error) {
		return amf3.String("pong"), nil
	})
	r.Register("Server.info", func(context.Context, []amf3.Value) (amf3.Value, error) {
		return serverInfo(r, started), nil
	})
}

// serverInfo builds the sealed ServerInfo object.
func serverInfo(r *Registry, started time.Time) *amf3.Object {
	targets := amf3.NewObjectVector("String", false)
	for _, t := range r.Targets() {
		targets.Push(amf3.String(t))
	}

	info := amf3.NewObject(ServerInfoClass, false, false)
	info.SetSealed("version", amf3.String(Version))
	info.SetSealed("uptime", amf3.Double(time.Since(started).Seconds()))
	info.SetSealed("goVersion", amf3.String(runtime.Version()))
	info.SetSealed("targets", targets)
	return info
}
