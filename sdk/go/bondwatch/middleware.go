package bondwatch

import (
	"context"
)

// RespondFunc produces an LLM response for a prompt. The signature matches
// the respond step of typical Go agent loops.
type RespondFunc func(ctx context.Context, prompt string) (string, error)

// Middleware returns a RespondFunc that screens every response produced by
// next. Responses flow through unchanged; flagged ones fire the OnFlag
// callback. Errors from next pass through unscreened.
func (s *Screener) Middleware(next RespondFunc) RespondFunc {
	return func(ctx context.Context, prompt string) (string, error) {
		reply, err := next(ctx, prompt)
		if err != nil {
			return reply, err
		}
		s.Screen(reply)
		return reply, nil
	}
}
