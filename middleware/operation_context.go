package middleware

import "context"

type operationNameKey struct{}
type serviceNameKey struct{}

// WithServiceName adds the service name to the context, so that
// protocol-layer code deep in the stack (request signing, error
// deserialization) can read it back without threading it through every
// function signature.
func WithServiceName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, serviceNameKey{}, name)
}

// GetServiceName returns the service name previously set by
// WithServiceName, or "" if none was set.
func GetServiceName(ctx context.Context) string {
	v, _ := ctx.Value(serviceNameKey{}).(string)
	return v
}

// WithOperationName adds the operation name to the context.
func WithOperationName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, operationNameKey{}, name)
}

// GetOperationName returns the operation name previously set by
// WithOperationName, or "" if none was set.
func GetOperationName(ctx context.Context) string {
	v, _ := ctx.Value(operationNameKey{}).(string)
	return v
}
