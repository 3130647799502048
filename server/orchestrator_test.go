package server

import (
	"context"
	"testing"
	"time"

	"github.com/relaywire/relay"
	"github.com/relaywire/relay/transport"
)

type fakeInput struct{}

func (*fakeInput) Deserialize(relay.ShapeDeserializer) error { return nil }

type fakeOutput struct{}

func (fakeOutput) Serialize(relay.ShapeSerializer) {}

type fakeProtocol struct{}

func (fakeProtocol) ID() string { return "fake" }

func (fakeProtocol) ResolveOperation(req *Request, candidates []*Service) (*Service, string, error) {
	return candidates[0], "Echo", nil
}

func (fakeProtocol) DeserializeInput(entry *OperationEntry, body []byte) (relay.Deserializable, error) {
	return entry.New(), nil
}

func (fakeProtocol) SerializeOutput(out relay.Serializable) ([]byte, error) {
	return []byte("ok"), nil
}

func (fakeProtocol) SerializeError(err error) []byte {
	return []byte(err.Error())
}

func (fakeProtocol) ResponseFields() transport.Fields {
	var f transport.Fields
	f.Set(transport.NewField("X-Fake-Protocol").WithValue("fake"))
	return f
}

func newFakeRouter(handler Handler) *Router {
	reg := NewOperationRegistry()
	reg.Register("Echo", &OperationEntry{
		New:     func() relay.Deserializable { return &fakeInput{} },
		Handler: handler,
	})
	router := NewRouter(fakeProtocol{})
	router.AddRoute("/", &Service{Operations: reg})
	return router
}

func TestOrchestrator_Success(t *testing.T) {
	router := newFakeRouter(HandlerFunc(func(ctx *RequestContext, input relay.Deserializable) (relay.Serializable, error) {
		return fakeOutput{}, nil
	}))
	orch := NewOrchestrator(router, 2, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	orch.Start(ctx)

	reply := make(chan *Response, 1)
	if err := orch.Submit(ctx, &Job{Request: &Request{Path: "/service/Svc/operation/Echo"}, Reply: reply}); err != nil {
		t.Fatal(err)
	}

	select {
	case resp := <-reply:
		if resp.StatusCode != 200 {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
		if string(resp.Body) != "ok" {
			t.Errorf("body = %q, want %q", resp.Body, "ok")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for response")
	}
}

func TestOrchestrator_HandlerError(t *testing.T) {
	router := newFakeRouter(HandlerFunc(func(ctx *RequestContext, input relay.Deserializable) (relay.Serializable, error) {
		return nil, &relay.GenericAPIError{Code: "BadRequest", Message: "nope", Fault: relay.FaultClient}
	}))
	orch := NewOrchestrator(router, 1, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	orch.Start(ctx)

	reply := make(chan *Response, 1)
	orch.Submit(ctx, &Job{Request: &Request{Path: "/service/Svc/operation/Echo"}, Reply: reply})

	resp := <-reply
	if resp.StatusCode != 400 {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
