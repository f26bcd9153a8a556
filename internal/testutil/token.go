package testutil

// FixedQuestionToken generates the same question token every time.
//
// This enables deterministic harness runs and golden trace comparison:
// the same scenario with the same FixedQuestionToken produces
// byte-identical traces.
//
// Unlike interp.FixedTokenGenerator which returns tokens in sequence,
// this generator always returns the same token. That is the right shape
// for scenarios where every question should share one token.
//
// Thread-safety: FixedQuestionToken is stateless and safe for concurrent use.
type FixedQuestionToken struct {
	token string
}

// NewFixedQuestionToken creates a new fixed question token generator.
//
// The token is typically set in the scenario YAML:
//
//	question_token: "qt-00000000-0000-0000-0000-000000000001"
//
// If token is empty, Generate() returns "question-token-default".
func NewFixedQuestionToken(token string) *FixedQuestionToken {
	if token == "" {
		token = "question-token-default"
	}
	return &FixedQuestionToken{token: token}
}

// Generate returns the fixed question token.
//
// Implements interp.TokenGenerator.
func (g *FixedQuestionToken) Generate() string {
	return g.token
}
