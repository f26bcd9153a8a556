package interp

import (
	"fmt"
	"strings"

	"github.com/alt-27/pharmaverse-roche/internal/schema"
)

// BuildPrompt renders the instruction sent to the model for a question.
//
// The prompt restricts the model to the dictionary columns, steers it
// away from the identifier column, and embeds the column descriptions
// verbatim. The rendered text is part of the model contract and covered
// by a golden test; change it deliberately.
func BuildPrompt(s schema.Schema, question string) string {
	var b strings.Builder

	b.WriteString("Return ONLY JSON with keys: target_column, filter_value.\n")
	b.WriteString("\n")
	b.WriteString("Rules:\n")
	fmt.Fprintf(&b, "- target_column MUST be one of: %v\n", s.Mappable())
	b.WriteString("- Do NOT choose USUBJID unless the question explicitly asks to filter by a subject id.\n")
	b.WriteString("- Prefer:\n")
	b.WriteString("  - AESEV for severity/intensity (e.g., MILD, MODERATE, SEVERE)\n")
	b.WriteString("  - AETERM for specific AE terms (e.g., Fatigue, Headache, Erythema)\n")
	b.WriteString("  - AESOC for body system (e.g., eye, skin, cardiac, general disorders)\n")
	b.WriteString("\n")
	b.WriteString("Schema:\n")
	b.WriteString(s.Text())
	b.WriteString("\n")
	b.WriteString("\n")
	b.WriteString("Question:\n")
	b.WriteString(question)

	return b.String()
}
