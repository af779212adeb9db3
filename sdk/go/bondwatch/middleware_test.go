package bondwatch

import (
	"context"
	"errors"
	"testing"
)

func TestMiddlewareScreensResponses(t *testing.T) {
	var flagged []Report
	bw := New(WithOnFlag(func(text string, r Report) {
		flagged = append(flagged, r)
	}))

	next := func(ctx context.Context, prompt string) (string, error) {
		return "No one else understands you like I do.", nil
	}
	respond := bw.Middleware(next)

	reply, err := respond(context.Background(), "how are you?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "No one else understands you like I do." {
		t.Fatalf("reply altered: %q", reply)
	}
	if len(flagged) != 1 {
		t.Fatalf("expected 1 flagged report, got %d", len(flagged))
	}
	if flagged[0].Risk != RiskHigh {
		t.Fatalf("expected HIGH, got %s", flagged[0].Risk)
	}
	if flagged[0].PrimaryConcern != "boundary" {
		t.Fatalf("expected boundary, got %q", flagged[0].PrimaryConcern)
	}
}

func TestMiddlewarePassesCleanThrough(t *testing.T) {
	fired := false
	bw := New(WithOnFlag(func(text string, r Report) { fired = true }))

	next := func(ctx context.Context, prompt string) (string, error) {
		return "The answer is 42.", nil
	}
	respond := bw.Middleware(next)

	reply, err := respond(context.Background(), "what is the answer?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "The answer is 42." {
		t.Fatalf("reply altered: %q", reply)
	}
	if fired {
		t.Fatal("callback should not fire for clean responses")
	}
}

func TestMiddlewarePropagatesError(t *testing.T) {
	fired := false
	bw := New(WithOnFlag(func(text string, r Report) { fired = true }))

	wantErr := errors.New("model unavailable")
	next := func(ctx context.Context, prompt string) (string, error) {
		return "", wantErr
	}
	respond := bw.Middleware(next)

	_, err := respond(context.Background(), "hello")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected propagated error, got %v", err)
	}
	if fired {
		t.Fatal("failed responses must not be screened")
	}
}

func TestMiddlewareChains(t *testing.T) {
	count := 0
	bw := New(WithOnFlag(func(text string, r Report) { count++ }))

	next := func(ctx context.Context, prompt string) (string, error) {
		return "Don't tell anyone about this.", nil
	}

	// Wrapping twice screens twice; the reply still flows through unchanged.
	respond := bw.Middleware(bw.Middleware(next))
	reply, err := respond(context.Background(), "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Don't tell anyone about this." {
		t.Fatalf("reply altered: %q", reply)
	}
	if count != 2 {
		t.Fatalf("expected 2 callback firings, got %d", count)
	}
}
