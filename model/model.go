// Package model defines the minimal text-generation interface the dispatcher
// depends on, plus a deterministic mock for tests. Concrete adapters for the
// OpenAI and Anthropic APIs live in subpackages.
package model

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Request captures a single normalized generation call: a system instruction,
// one user prompt, and the sampling knobs the handlers care about.
type Request struct {
	System      string  `json:"system"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int64   `json:"max_tokens"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the interface required by classifiers, handlers and the fusion
// aggregator to drive generation. Implementations perform a single attempt;
// retry policy is the caller's concern.
type Model interface {
	Generate(ctx context.Context, req Request) (string, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests. Responses are
// keyed by exact prompt, with optional substring rules and a forced error.
type MockModel struct {
	mu        sync.Mutex
	info      Info
	responses map[string]string
	rules     []mockRule
	err       error
	calls     []Request
}

type mockRule struct {
	substr string
	reply  string
}

// NewMockModel constructs a MockModel identifying itself with the given name.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a canned completion for an exact prompt.
func (m *MockModel) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// AddRule registers a canned completion for any prompt containing substr.
// Rules are checked in registration order after exact matches.
func (m *MockModel) AddRule(substr, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, mockRule{substr: substr, reply: response})
}

// FailWith makes every subsequent Generate call return err.
func (m *MockModel) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns a copy of all requests seen so far.
func (m *MockModel) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.calls))
	copy(out, m.calls)
	return out
}

// Generate implements Model.
func (m *MockModel) Generate(ctx context.Context, req Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)
	if m.err != nil {
		return "", m.err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if reply, ok := m.responses[req.Prompt]; ok {
		return reply, nil
	}
	for _, r := range m.rules {
		if strings.Contains(req.Prompt, r.substr) {
			return r.reply, nil
		}
	}
	return fmt.Sprintf("Mock response to: %s", req.Prompt), nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
