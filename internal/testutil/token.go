package testutil

import (
	"fmt"
	"sync"
)

// FixedTokenGenerator returns the same iteration token every time.
//
// Thread-safety: FixedTokenGenerator is stateless and safe for concurrent use.
type FixedTokenGenerator struct {
	token string
}

// NewFixedTokenGenerator creates a generator for token.
// If token is empty, Generate() returns "test-iteration-default".
func NewFixedTokenGenerator(token string) *FixedTokenGenerator {
	if token == "" {
		token = "test-iteration-default"
	}
	return &FixedTokenGenerator{token: token}
}

// Generate returns the fixed token.
func (g *FixedTokenGenerator) Generate() string {
	return g.token
}

// CountingTokenGenerator returns "<prefix>-1", "<prefix>-2", ... in call
// order.
//
// Thread-safety: safe for concurrent use via internal mutex. Under
// concurrency the token a given caller receives depends on scheduling.
type CountingTokenGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewCountingTokenGenerator creates a counting generator.
func NewCountingTokenGenerator(prefix string) *CountingTokenGenerator {
	return &CountingTokenGenerator{prefix: prefix}
}

// Generate returns the next token.
func (g *CountingTokenGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
