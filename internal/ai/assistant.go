// Package ai defines the reasoning-call collaborator contract. The scorer
// only depends on this interface; provider specifics live in subpackages.
package ai

import "context"

// Options tunes a single completion request.
type Options struct {
	// JSONMode asks the provider to return a parseable JSON object.
	JSONMode bool
	// Temperature controls sampling; zero value means provider default.
	Temperature float32
}

// Generator produces a completion for a system/user prompt pair. A non-JSON
// reply in JSONMode is the caller's problem to surface as a hard error.
type Generator interface {
	Generate(ctx context.Context, system, user string, opts Options) (string, error)
}
