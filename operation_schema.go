package relay

// OperationSchema is the triple spec.md §3 describes: an operation's
// input and output shapes, its per-shape-id modeled error registry, the
// service it's attached to, and the auth schemes effective for it. A
// generated client/server package builds one OperationSchema per
// operation and hands it to the client pipeline (as client.Operation's
// schema reference) or the server router (as server.OperationEntry.Schema).
type OperationSchema struct {
	ID      ShapeID
	Input   *Schema
	Output  *Schema
	Errors  *TypeRegistry
	Service ShapeID

	// AuthSchemeIDs is the priority-ordered list of auth scheme shape ids
	// effective for this operation: the operation's own relay.api#auth
	// trait if present, otherwise the service's.
	AuthSchemeIDs []string

	// InputStreaming and OutputStreaming mark an operation whose input or
	// output carries a streaming blob or event stream member; the proxy
	// bridge (§4.7) never synthesizes a proxy variant for these.
	InputStreaming  bool
	OutputStreaming bool
}

// WithAdditionalInput returns a new OperationSchema whose Input is a
// structure combining the receiver's own input members with mixin's
// members appended after them, and whose ID is suffixed "Proxy" — the
// companion operation the proxy/MCP bridge synthesizes per spec §4.7 when
// a model declares an additionalInput mixin. The original operation's ID
// is recoverable from the companion's relay.internal#proxyOperation
// trait, set by the caller via NewMember/NewSchema traits since
// OperationSchema itself carries no trait map.
func (o *OperationSchema) WithAdditionalInput(mixin *Schema) *OperationSchema {
	members := make([]*Schema, 0, len(o.Input.Members())+len(mixin.Members()))
	members = append(members, o.Input.Members()...)
	members = append(members, mixin.Members()...)

	combinedInput := NewSchema(
		ShapeID{Namespace: o.Input.ID.Namespace, Name: o.Input.ID.Name + "Proxy"},
		ShapeTypeStructure,
		nil,
		members...,
	)

	return &OperationSchema{
		ID:              ShapeID{Namespace: o.ID.Namespace, Name: o.ID.Name + "Proxy"},
		Input:           combinedInput,
		Output:          o.Output,
		Errors:          o.Errors,
		Service:         o.Service,
		AuthSchemeIDs:   o.AuthSchemeIDs,
		InputStreaming:  o.InputStreaming,
		OutputStreaming: o.OutputStreaming,
	}
}
