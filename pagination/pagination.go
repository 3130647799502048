// Package pagination implements the lazy, finite-or-infinite paginator
// that wraps one client call: it injects the stored next-token into a
// designated input member, reads the next token back out of the
// response, and halts when the server stops advancing (two consecutive
// identical non-null tokens) or the page supply is otherwise exhausted.
package pagination

import (
	"context"
	"fmt"

	"github.com/jmespath/go-jmespath"
)

// PageFunc issues one underlying client call for the given input.
type PageFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

// TokenAccessor wires a Paginator to one operation's input/output shapes:
// TokenPath names the output's next-token member (a dotted JMESPath-like
// expression resolved against the output, e.g. "Marker" or
// "ListBucketResult.NextMarker"); SetToken and, optionally, SetPageSize
// mutate a copy of the input for the next call.
type TokenAccessor[In, Out any] struct {
	TokenPath string
	SetToken  func(in In, token string) In

	// PageSizeMember, when non-empty, names the input field the paginator
	// clamps down when a remaining MaxItems budget would otherwise be
	// exceeded by the configured page size.
	PageSizeMember string
	SetPageSize    func(in In, size int32) In
	GetPageSize    func(in In) int32
}

func (a TokenAccessor[In, Out]) getToken(out Out) (string, error) {
	result, err := jmespath.Search(a.TokenPath, out)
	if err != nil {
		return "", fmt.Errorf("pagination: projecting next token: %w", err)
	}
	if result == nil {
		return "", nil
	}
	s, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("pagination: next token path %q did not resolve to a string", a.TokenPath)
	}
	return s, nil
}

// Paginator is a lazy sequence of pages. The zero value is not usable;
// construct with New.
type Paginator[In, Out any] struct {
	input     In
	fetch     PageFunc[In, Out]
	accessor  TokenAccessor[In, Out]
	firstPage bool
	done      bool
	lastToken string
	haveToken bool

	remaining *int32 // nil when unbounded
	pageSize  int32  // 0 when the operation has no page-size member
}

// Option configures a Paginator at construction.
type Option[In, Out any] func(*Paginator[In, Out])

// WithMaxItems bounds the total number of items the paginator will fetch
// across all pages, clamping the per-page size member down on the final
// page so the call doesn't over-fetch past the budget.
func WithMaxItems[In, Out any](max int32) Option[In, Out] {
	return func(p *Paginator[In, Out]) { p.remaining = &max }
}

// WithPageSize sets the initial per-page size, written through the
// accessor's SetPageSize on every call.
func WithPageSize[In, Out any](size int32) Option[In, Out] {
	return func(p *Paginator[In, Out]) { p.pageSize = size }
}

// New returns a Paginator over one operation, starting from the given
// input value (request template) and fetch function.
func New[In, Out any](input In, fetch PageFunc[In, Out], accessor TokenAccessor[In, Out], opts ...Option[In, Out]) *Paginator[In, Out] {
	p := &Paginator[In, Out]{
		input:     input,
		fetch:     fetch,
		accessor:  accessor,
		firstPage: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// HasMorePages reports whether a call to NextPage would attempt a fetch.
// It is always true before the first page has been fetched.
func (p *Paginator[In, Out]) HasMorePages() bool {
	return p.firstPage || !p.done
}

// NextPage fetches the next page, advancing the paginator's internal
// token state. Calling NextPage after HasMorePages reports false panics,
// matching the generated-client convention that callers check
// HasMorePages in their loop condition.
func (p *Paginator[In, Out]) NextPage(ctx context.Context) (Out, error) {
	var zero Out
	if !p.HasMorePages() {
		panic("pagination: NextPage called with no more pages")
	}

	in := p.input
	if p.accessor.SetToken != nil && p.haveToken {
		in = p.accessor.SetToken(in, p.lastToken)
	}
	if p.accessor.SetPageSize != nil {
		size := p.pageSize
		if p.remaining != nil && (*p.remaining < size || size == 0) {
			size = *p.remaining
		}
		if size > 0 {
			in = p.accessor.SetPageSize(in, size)
		}
	}

	out, err := p.fetch(ctx, in)
	if err != nil {
		p.done = true
		return zero, err
	}

	p.firstPage = false

	token, err := p.accessor.getToken(out)
	if err != nil {
		p.done = true
		return zero, err
	}

	if token == "" {
		p.done = true
		return out, nil
	}

	// Guard against a server bug that keeps returning the same non-null
	// token: halt rather than loop forever.
	if p.haveToken && token == p.lastToken {
		p.done = true
		return out, nil
	}

	p.lastToken = token
	p.haveToken = true

	if p.remaining != nil {
		if p.accessor.GetPageSize != nil {
			*p.remaining -= p.accessor.GetPageSize(in)
		}
		if *p.remaining <= 0 {
			p.done = true
		}
	}

	return out, nil
}
