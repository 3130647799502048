// Package proxy implements the server-side half of the proxy/MCP bridge
// (spec §4.7): a Service whose operation handlers marshal the
// already-deserialized input back to bytes using an upstream codec
// choice, issue an outbound client call against a configured endpoint,
// and unmarshal the response into the modeled output or error — rather
// than running caller-supplied business logic the way a normal
// server.Handler does.
package proxy

import (
	"fmt"

	"github.com/relaywire/relay"
	"github.com/relaywire/relay/client"
	"github.com/relaywire/relay/middleware"
	"github.com/relaywire/relay/server"
	"github.com/relaywire/relay/traits"
)

// Operation describes one operation this bridge forwards: its schema and
// the prebuilt middleware Stack a generated proxy client assembled for
// its upstream wire protocol. Operations whose schema marks either side
// streaming are never registered by Register, per spec §4.7.
type Operation struct {
	Schema *relay.OperationSchema
	Stack  *middleware.Stack
	New    func() relay.Deserializable
}

// Handler adapts one Operation into a server.Handler that forwards every
// invocation to client.Invoke against the upstream endpoint Options
// resolves.
type Handler struct {
	Options client.Options
	Op      Operation
}

var _ server.Handler = (*Handler)(nil)

// Invoke marshals input back to the upstream wire format, issues the
// outbound call, and returns the upstream output/modeled error
// unchanged: the proxy neither inspects nor transforms payloads, only
// relays them between the server pipeline that received the request and
// the client pipeline that forwards it.
func (h *Handler) Invoke(rc *server.RequestContext, input relay.Deserializable) (relay.Serializable, error) {
	out, err := client.Invoke(rc.Context, h.Options, client.Operation{
		ServiceName:   h.Op.Schema.Service.Name,
		OperationName: h.Op.Schema.ID.Name,
		Stack:         h.Op.Stack,
	}, input)
	if err != nil {
		return nil, err
	}
	serializable, ok := out.(relay.Serializable)
	if !ok {
		return nil, &relay.FrameworkInternalError{
			Message: fmt.Sprintf("proxy: upstream output for %s does not implement Serializable", h.Op.Schema.ID),
		}
	}
	return serializable, nil
}

// Register builds a server.OperationEntry for each non-streaming
// Operation in ops and adds it to reg under its operation name. An
// operation whose schema marks InputStreaming or OutputStreaming is
// skipped — per spec §4.7, streaming operations are never proxied.
func Register(reg *server.OperationRegistry, opts client.Options, ops []Operation) {
	for _, op := range ops {
		if op.Schema.InputStreaming || op.Schema.OutputStreaming {
			continue
		}
		op := op
		reg.Register(op.Schema.ID.Name, &server.OperationEntry{
			Schema:  op.Schema.Input,
			New:     op.New,
			Handler: &Handler{Options: opts, Op: op},
		})
	}
}

// SynthesizeCompanion builds the companion "<Name>Proxy" operation for op
// by appending additionalInput's members to op's own input shape, per
// spec §4.7's additionalInput mixin synthesis, and tags the companion's
// input schema with relay.internal#proxyOperation pointing back at op's
// shape id so a bridge can recover the original operation at dispatch
// time.
func SynthesizeCompanion(op *relay.OperationSchema, additionalInput *relay.Schema) *relay.OperationSchema {
	companion := op.WithAdditionalInput(additionalInput)
	companion.Input.Traits = map[string]relay.Trait{
		(&traits.ProxyOperation{}).TraitID(): &traits.ProxyOperation{Target: op.ID.String()},
	}
	return companion
}
