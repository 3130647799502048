package pagination

import (
	"context"
	"testing"
)

type listInput struct {
	Token string
}

type listOutput struct {
	NextToken string `json:"NextToken"`
	Items     []string
}

func accessor() TokenAccessor[listInput, listOutput] {
	return TokenAccessor[listInput, listOutput]{
		TokenPath: "NextToken",
		SetToken: func(in listInput, token string) listInput {
			in.Token = token
			return in
		},
	}
}

func TestPaginatorHaltsOnRepeatedToken(t *testing.T) {
	pages := []listOutput{
		{NextToken: "A", Items: []string{"1"}},
		{NextToken: "A", Items: []string{"2"}},
		{NextToken: "B", Items: []string{"3"}}, // must never be reached
	}
	var calls int

	p := New(listInput{}, func(ctx context.Context, in listInput) (listOutput, error) {
		out := pages[calls]
		calls++
		return out, nil
	}, accessor())

	var seen []listOutput
	for p.HasMorePages() {
		out, err := p.NextPage(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen = append(seen, out)
	}

	if len(seen) != 2 {
		t.Fatalf("expected exactly 2 pages, got %d", len(seen))
	}
	if calls != 2 {
		t.Fatalf("expected exactly 2 fetches, got %d", calls)
	}
}

func TestPaginatorTerminatesOnEmptyToken(t *testing.T) {
	pages := []listOutput{
		{NextToken: "A", Items: []string{"1"}},
		{NextToken: "", Items: []string{"2"}},
	}
	var calls int

	p := New(listInput{}, func(ctx context.Context, in listInput) (listOutput, error) {
		out := pages[calls]
		calls++
		return out, nil
	}, accessor())

	for p.HasMorePages() {
		if _, err := p.NextPage(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls != 2 {
		t.Fatalf("expected 2 fetches, got %d", calls)
	}
}
