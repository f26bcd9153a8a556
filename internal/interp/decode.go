package interp

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"

	"github.com/alt-27/pharmaverse-roche/internal/query"
)

// payloadSchema is the CUE contract for a model payload: both fields
// required, both strings. Extra fields are tolerated; chatty models add
// them.
const payloadSchema = `{
	target_column: string
	filter_value:  string
}`

// PayloadError reports a payload that could not be decoded into a
// structured query even after the raw-text retry. The deterministic path
// never produces one; seeing this error means the model violated the
// payload contract.
type PayloadError struct {
	Raw string
	Err error
}

// Error implements the error interface.
func (e *PayloadError) Error() string {
	return fmt.Sprintf("undecodable query payload %q: %v", truncate(e.Raw, 120), e.Err)
}

// Unwrap returns the underlying decode error.
func (e *PayloadError) Unwrap() error {
	return e.Err
}

// DecodePayload extracts a structured query from free-form model output.
//
// Two-stage parse: the first balanced brace-delimited region of raw is
// decoded as JSON and validated against the payload contract. If that
// fails, the entire raw text is retried once. A payload failing both
// stages yields a PayloadError.
func DecodePayload(raw string) (query.StructuredQuery, error) {
	candidate, balanced := extractObject(raw)

	q, err := decodeStrict(candidate)
	if err == nil {
		return q, nil
	}
	if balanced && candidate != raw {
		if retry, retryErr := decodeStrict(raw); retryErr == nil {
			return retry, nil
		}
	}
	return query.StructuredQuery{}, &PayloadError{Raw: raw, Err: err}
}

// decodeStrict parses payload as JSON and unifies it with the payload
// contract. Both fields must be present, concrete, and strings.
func decodeStrict(payload string) (query.StructuredQuery, error) {
	expr, err := cuejson.Extract("payload", []byte(payload))
	if err != nil {
		return query.StructuredQuery{}, formatCUEError(err)
	}

	ctx := cuecontext.New()

	contract := ctx.CompileString(payloadSchema)
	if err := contract.Err(); err != nil {
		return query.StructuredQuery{}, fmt.Errorf("compile payload contract: %w", err)
	}

	unified := contract.Unify(ctx.BuildExpr(expr))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return query.StructuredQuery{}, formatCUEError(err)
	}

	var q query.StructuredQuery
	if err := unified.Decode(&q); err != nil {
		return query.StructuredQuery{}, formatCUEError(err)
	}
	return q, nil
}

// extractObject returns the first balanced brace-delimited region of raw.
// Braces inside JSON string literals do not count; escapes are honored.
// When no balanced region exists, the whole input is returned so the
// caller's single decode attempt runs against the raw text.
func extractObject(raw string) (region string, balanced bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return raw, false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return raw[start : i+1], true
				}
			}
		}
	}
	return raw, false
}

// formatCUEError flattens a CUE error list into its first, most specific
// message. Positions are dropped; payloads have no useful source file.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	if errs := cueerrors.Errors(err); len(errs) > 0 {
		return fmt.Errorf("%v", errs[0])
	}
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
