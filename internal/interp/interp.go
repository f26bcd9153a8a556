// Package interp reduces natural-language questions about adverse events
// to structured queries.
//
// Two interpretation paths produce a raw JSON payload: an external
// language model (when configured) or the deterministic keyword Scorer.
// Both payloads flow through the same decode and repair pipeline, so the
// query handed to execution is schema-valid no matter where it came
// from. A model that cannot be reached degrades silently to the scorer;
// only a model payload that defies decoding is surfaced as an error.
package interp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alt-27/pharmaverse-roche/internal/dataset"
	"github.com/alt-27/pharmaverse-roche/internal/query"
	"github.com/alt-27/pharmaverse-roche/internal/schema"
)

// Model is the external language-model collaborator. Complete receives
// the fully rendered prompt and returns the model's raw text response.
// No retry or timeout policy is imposed at this layer.
type Model interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Interpreter turns questions into executable structured queries.
// Construct with New; the zero value is not usable.
type Interpreter struct {
	schema schema.Schema
	scorer *Scorer
	model  Model
	tokens TokenGenerator
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithModel routes interpretation through an external model. The scorer
// stays wired as the fallback for failed model calls.
func WithModel(m Model) Option {
	return func(in *Interpreter) { in.model = m }
}

// WithTokenGenerator replaces the question-token source. Tests inject a
// fixed generator to get reproducible log correlation tokens.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(in *Interpreter) { in.tokens = g }
}

// New builds an Interpreter over the column dictionary and a loaded
// dataset. Without options it interprets heuristically and mints UUIDv7
// question tokens.
func New(s schema.Schema, data *dataset.Table, opts ...Option) *Interpreter {
	in := &Interpreter{
		schema: s,
		scorer: NewScorer(s, data),
		tokens: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Scorer exposes the deterministic fallback path directly. The harness
// uses it to check that model-backed and heuristic runs share one shape.
func (in *Interpreter) Scorer() *Scorer {
	return in.scorer
}

// Interpret answers one question with an executable query.
//
// A question token is minted first and carried on every log line the
// interpretation emits. The payload comes from the model when one is
// configured and reachable, otherwise from the scorer; it is then
// decoded and repaired against the dictionary.
//
// The only error is a model payload that survives neither decode stage
// (a *PayloadError). The deterministic path cannot fail.
func (in *Interpreter) Interpret(ctx context.Context, question string) (query.StructuredQuery, error) {
	token := in.tokens.Generate()

	slog.Debug("interpreting question", "question_token", token, "question", question)

	raw, fromModel := in.payload(ctx, token, question)

	q, err := DecodePayload(raw)
	if err != nil {
		if fromModel {
			slog.Error("model payload rejected", "question_token", token, "error", err)
			return query.StructuredQuery{}, err
		}
		// The scorer marshals its own payload; failing to decode it is a bug.
		return query.StructuredQuery{}, fmt.Errorf("decode fallback payload: %w", err)
	}

	res := query.Repair(q, question, in.schema)
	for _, fix := range res.Repairs {
		slog.Warn("query repaired", "question_token", token, "fix", fix)
	}

	slog.Info("question interpreted",
		"question_token", token,
		"target_column", res.Query.TargetColumn,
		"filter_value", res.Query.FilterValue,
		"model_backed", fromModel,
	)

	return res.Query, nil
}

// payload produces the raw JSON payload for a question and reports
// whether it came from the model.
func (in *Interpreter) payload(ctx context.Context, token, question string) (raw string, fromModel bool) {
	if in.model == nil {
		return in.scorer.Payload(question), false
	}

	prompt := BuildPrompt(in.schema, question)
	response, err := in.model.Complete(ctx, prompt)
	if err != nil {
		slog.Warn("model call failed, falling back to scorer",
			"question_token", token,
			"error", err,
		)
		return in.scorer.Payload(question), false
	}
	return strings.TrimSpace(response), true
}
