// bondwatch evaluates LLM response text for parasocial-risk language:
// intimacy escalation, boundary erosion, and emotional manipulation.
//
// Run `bondwatch demo` for a tour, `bondwatch analyze` to evaluate one
// response, and `bondwatch --help` for the full command set.
package main

import "github.com/ppiankov/bondwatch/internal/cli"

func main() {
	cli.Execute()
}
