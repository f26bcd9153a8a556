package testutil

import (
	"context"
	"sync"
)

// ScriptedModel is a canned language-model collaborator for tests.
//
// Complete records every prompt it receives and returns the scripted
// Response (or Err). Set the fields before handing the model to an
// interpreter.
//
// Thread-safety: prompt recording is guarded by an internal mutex.
type ScriptedModel struct {
	// Response is returned by Complete when Err is nil.
	Response string

	// Err, when set, makes every Complete call fail.
	Err error

	mu      sync.Mutex
	prompts []string
}

// Complete returns the scripted response after recording the prompt.
//
// Implements interp.Model.
func (m *ScriptedModel) Complete(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prompts = append(m.prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// Calls returns how many times Complete has been invoked.
func (m *ScriptedModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// LastPrompt returns the most recent prompt, or "" before any call.
func (m *ScriptedModel) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}
