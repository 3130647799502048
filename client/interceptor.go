package client

import "context"

// Interceptor is the caller-supplied hook described throughout §4.4. Every
// method is optional in spirit (a concrete Interceptor embeds
// NopInterceptor and overrides only what it needs); all nine checkpoints
// still run for every call even when every hook is a no-op, matching "no
// step may be skipped, but any may be a no-op".
//
// A hook that wants to replace the request, response, input, or output
// returns the replacement value; returning the same value it was given is
// treated as "no change" (mapRequest/mapResponse elision), so hooks don't
// need to track whether they actually modified anything.
type Interceptor interface {
	ReadBeforeExecution(ctx context.Context, input interface{}) error

	ModifyBeforeSerialization(ctx context.Context, input interface{}) (interface{}, error)
	ReadBeforeSerialization(ctx context.Context, input interface{}) error

	ModifyBeforeSigning(ctx context.Context, request interface{}) (interface{}, error)

	ModifyBeforeTransmit(ctx context.Context, request interface{}) (interface{}, error)
	ReadBeforeTransmit(ctx context.Context, request interface{}) error

	ReadAfterTransmit(ctx context.Context, response interface{}) error
	ModifyBeforeDeserialization(ctx context.Context, response interface{}) (interface{}, error)
	ReadAfterDeserialization(ctx context.Context, output interface{}) error
}

// NopInterceptor implements Interceptor with every hook a no-op. Embed it
// to satisfy the interface while overriding only the checkpoints a given
// interceptor cares about.
type NopInterceptor struct{}

func (NopInterceptor) ReadBeforeExecution(context.Context, interface{}) error { return nil }

func (NopInterceptor) ModifyBeforeSerialization(_ context.Context, input interface{}) (interface{}, error) {
	return input, nil
}
func (NopInterceptor) ReadBeforeSerialization(context.Context, interface{}) error { return nil }

func (NopInterceptor) ModifyBeforeSigning(_ context.Context, req interface{}) (interface{}, error) {
	return req, nil
}

func (NopInterceptor) ModifyBeforeTransmit(_ context.Context, req interface{}) (interface{}, error) {
	return req, nil
}
func (NopInterceptor) ReadBeforeTransmit(context.Context, interface{}) error { return nil }

func (NopInterceptor) ReadAfterTransmit(context.Context, interface{}) error { return nil }
func (NopInterceptor) ModifyBeforeDeserialization(_ context.Context, resp interface{}) (interface{}, error) {
	return resp, nil
}
func (NopInterceptor) ReadAfterDeserialization(context.Context, interface{}) error { return nil }

// Interceptors is an ordered list of Interceptor run as one composite
// Interceptor; each hook runs every member in list order, short-circuiting
// on the first error.
type Interceptors []Interceptor

func (is Interceptors) ReadBeforeExecution(ctx context.Context, input interface{}) error {
	for _, i := range is {
		if err := i.ReadBeforeExecution(ctx, input); err != nil {
			return err
		}
	}
	return nil
}

func (is Interceptors) ModifyBeforeSerialization(ctx context.Context, input interface{}) (interface{}, error) {
	var err error
	for _, i := range is {
		input, err = i.ModifyBeforeSerialization(ctx, input)
		if err != nil {
			return nil, err
		}
	}
	return input, nil
}

func (is Interceptors) ReadBeforeSerialization(ctx context.Context, input interface{}) error {
	for _, i := range is {
		if err := i.ReadBeforeSerialization(ctx, input); err != nil {
			return err
		}
	}
	return nil
}

func (is Interceptors) ModifyBeforeSigning(ctx context.Context, req interface{}) (interface{}, error) {
	var err error
	for _, i := range is {
		req, err = i.ModifyBeforeSigning(ctx, req)
		if err != nil {
			return nil, err
		}
	}
	return req, nil
}

func (is Interceptors) ModifyBeforeTransmit(ctx context.Context, req interface{}) (interface{}, error) {
	var err error
	for _, i := range is {
		req, err = i.ModifyBeforeTransmit(ctx, req)
		if err != nil {
			return nil, err
		}
	}
	return req, nil
}

func (is Interceptors) ReadBeforeTransmit(ctx context.Context, req interface{}) error {
	for _, i := range is {
		if err := i.ReadBeforeTransmit(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

func (is Interceptors) ReadAfterTransmit(ctx context.Context, resp interface{}) error {
	for _, i := range is {
		if err := i.ReadAfterTransmit(ctx, resp); err != nil {
			return err
		}
	}
	return nil
}

func (is Interceptors) ModifyBeforeDeserialization(ctx context.Context, resp interface{}) (interface{}, error) {
	var err error
	for _, i := range is {
		resp, err = i.ModifyBeforeDeserialization(ctx, resp)
		if err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func (is Interceptors) ReadAfterDeserialization(ctx context.Context, output interface{}) error {
	for _, i := range is {
		if err := i.ReadAfterDeserialization(ctx, output); err != nil {
			return err
		}
	}
	return nil
}
