package http

import (
	"context"
	"fmt"

	"github.com/relaywire/relay/middleware"
	"github.com/relaywire/relay/middleware/id"
)

// AddErrorCloseResponseBodyMiddleware adds the middleware to automatically
// close the response body of an operation request if the request response
// failed.
func AddErrorCloseResponseBodyMiddleware(stack *middleware.Stack) error {
	return stack.Deserialize.Add(&errorCloseResponseBodyMiddleware{}, middleware.Before)
}

type errorCloseResponseBodyMiddleware struct{}

func (*errorCloseResponseBodyMiddleware) Name() string {
	return id.ErrorCloseResponseBody
}

func (m *errorCloseResponseBodyMiddleware) HandleDeserialize(
	ctx context.Context, input middleware.DeserializeInput, next middleware.DeserializeHandler,
) (
	output middleware.DeserializeOutput, err error,
) {
	out, err := next.HandleDeserialize(ctx, input)
	if err != nil {
		if resp, ok := out.RawResponse.(*Response); ok && resp != nil && resp.Body != nil {
			// Do not validate that the response closes successfully.
			resp.Body.Close()
		}
	}

	return out, err
}

// AddCloseResponseBodyMiddleware adds the middleware to automatically close
// the response body of an operation request, after the response had been
// deserialized.
func AddCloseResponseBodyMiddleware(stack *middleware.Stack) error {
	return stack.Deserialize.Add(&closeResponseBody{}, middleware.Before)
}

type closeResponseBody struct{}

func (*closeResponseBody) Name() string {
	return id.CloseResponseBody
}

func (m *closeResponseBody) HandleDeserialize(
	ctx context.Context, input middleware.DeserializeInput, next middleware.DeserializeHandler,
) (
	output middleware.DeserializeOutput, err error,
) {
	out, err := next.HandleDeserialize(ctx, input)
	if err != nil {
		return out, err
	}

	if resp, ok := out.RawResponse.(*Response); ok {
		if err = resp.Body.Close(); err != nil {
			return out, fmt.Errorf("close response body failed, %w", err)
		}
	}

	return out, err
}
