package server

import (
	"context"
	"sync"

	"github.com/relaywire/relay"
)

// Job is one inbound request moving through read → deserialize-input →
// invoke-operation → serialize-output → write, per spec §4.5. A Job is
// produced by a transport front end (the HTTP listener, say) and handed to
// an Orchestrator's bounded queue; Reply is closed exactly once with the
// finished Response.
type Job struct {
	Request *Request
	Reply   chan<- *Response
}

// Orchestrator owns a bounded queue and a fixed pool of worker goroutines
// that each run one Job at a time to completion. Workers provide no
// cross-operation ordering guarantee (per spec §5); a Job's own protocol
// resolution, deserialization, invocation, and serialization happen
// strictly in that order on whichever worker dequeues it.
type Orchestrator struct {
	Router *Router

	queue   chan *Job
	workers int
	wg      sync.WaitGroup
}

// NewOrchestrator returns an Orchestrator backed by router, with queueDepth
// buffered job slots and workerCount worker goroutines. Submit blocks once
// the queue is full, giving the orchestrator backpressure rather than
// unbounded memory growth under load.
func NewOrchestrator(router *Router, workerCount, queueDepth int) *Orchestrator {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueDepth < 0 {
		queueDepth = 0
	}
	return &Orchestrator{
		Router:  router,
		queue:   make(chan *Job, queueDepth),
		workers: workerCount,
	}
}

// Start spawns the worker pool; workers exit once ctx is cancelled and the
// queue has drained. Start returns immediately; call Wait to block until
// every worker has exited.
func (o *Orchestrator) Start(ctx context.Context) {
	for i := 0; i < o.workers; i++ {
		o.wg.Add(1)
		go o.work(ctx)
	}
}

// Wait blocks until every worker goroutine spawned by Start has exited.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// Submit enqueues job, blocking if the queue is full. It returns
// ctx.Err() if ctx is done before the job is accepted, rather
// than blocking forever on a full queue past shutdown.
func (o *Orchestrator) Submit(ctx context.Context, job *Job) error {
	select {
	case o.queue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *Orchestrator) work(ctx context.Context) {
	defer o.wg.Done()
	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					job.Reply <- o.process(ctx, job.Request)
					close(job.Reply)
				default:
					return
				}
			}
		case job, ok := <-o.queue:
			if !ok {
				return
			}
			job.Reply <- o.process(ctx, job.Request)
			close(job.Reply)
		}
	}
}

// process runs one request through protocol resolution, deserialization,
// invocation, and serialization, producing a Response that already carries
// CORS headers and the protocol's response fields. It never panics a
// failure past this point — every failure mode converges on a Response
// with an appropriate status code and serialized error body.
func (o *Orchestrator) process(ctx context.Context, req *Request) *Response {
	svc, entry, err := o.Router.Resolve(req)
	if err != nil {
		return o.errorResponse(req, nil, err)
	}

	input, err := o.Router.Protocol.DeserializeInput(entry, req.Body)
	if err != nil {
		return o.errorResponse(req, svc, err)
	}

	rc := &RequestContext{Context: relay.WrapContext(ctx), Request: req}
	output, err := invoke(ctx, rc, entry, input)
	if err != nil {
		return o.errorResponse(req, svc, err)
	}

	body, err := o.Router.Protocol.SerializeOutput(output)
	if err != nil {
		return o.errorResponse(req, svc, err)
	}

	resp := &Response{
		StatusCode: 200,
		Fields:     o.Router.Protocol.ResponseFields(),
		Body:       body,
	}
	applyCORS(req, svc, resp)
	return resp
}

// errorResponse converts a failure at any stage into a wire-ready
// Response, still carrying the protocol's identifying headers and (when
// resolvable) CORS headers so a browser-based caller can read an error
// body, not just a success one.
func (o *Orchestrator) errorResponse(req *Request, svc *Service, err error) *Response {
	resp := &Response{
		StatusCode: statusCodeFor(err),
		Fields:     o.Router.Protocol.ResponseFields(),
		Body:       o.Router.Protocol.SerializeError(err),
	}
	applyCORS(req, svc, resp)
	return resp
}
