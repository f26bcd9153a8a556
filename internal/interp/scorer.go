package interp

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/alt-27/pharmaverse-roche/internal/dataset"
	"github.com/alt-27/pharmaverse-roche/internal/fold"
	"github.com/alt-27/pharmaverse-roche/internal/query"
	"github.com/alt-27/pharmaverse-roche/internal/schema"
)

// maxValueCandidates caps how many distinct column values the scorer
// scans per question. Clinical extracts stay far below this; the cap
// bounds work on degenerate inputs.
const maxValueCandidates = 5000

var (
	foldedTokenPattern = regexp.MustCompile(`[a-z0-9]+`)
	wordPattern        = regexp.MustCompile(`[A-Za-z0-9]+`)
	quotedPattern      = regexp.MustCompile(`"([^"]+)"`)
)

// Scorer is the deterministic fallback interpreter. It maps a question
// to a structured query by keyword overlap against the column dictionary
// and by scanning the dataset's own values for a literal mention.
//
// The scorer is a pure function of (question, schema, dataset): the same
// inputs always produce the same query. It never fails.
type Scorer struct {
	schema schema.Schema
	data   *dataset.Table
}

// NewScorer builds a scorer over the dictionary and a loaded dataset.
func NewScorer(s schema.Schema, data *dataset.Table) *Scorer {
	return &Scorer{schema: s, data: data}
}

// Interpret reduces a question to a structured query.
//
// Column choice: each scorable column is scored by the token overlap
// between the question and the column's name plus description, with a
// bonus of 2 when the column name itself appears in the question. The
// best strictly-greater score wins; ties keep the earlier column in
// dictionary order, and the default target wins when nothing scores.
//
// Value choice: the longest distinct value of the chosen column that
// appears verbatim (case-insensitively) in the question; failing that,
// the first double-quoted span; failing that, the last three words of
// the question.
func (sc *Scorer) Interpret(question string) query.StructuredQuery {
	folded := fold.Key(question)
	column := sc.scoreColumn(folded)
	value := sc.extractValue(column, question, folded)
	return query.StructuredQuery{TargetColumn: column, FilterValue: value}
}

// Payload renders the scored query as the JSON payload shape the model
// is asked for, so both interpretation paths share one decode pipeline.
func (sc *Scorer) Payload(question string) string {
	payload, err := json.Marshal(sc.Interpret(question))
	if err != nil {
		panic(fmt.Sprintf("marshal scored query: %v", err))
	}
	return string(payload)
}

func (sc *Scorer) scoreColumn(folded string) string {
	questionTokens := tokenSet(folded)

	best := sc.schema.DefaultTarget()
	bestScore := -1
	for _, col := range sc.schema.Scorable() {
		columnTokens := tokenSet(fold.Key(col + " " + sc.schema.Description(col)))
		score := overlap(questionTokens, columnTokens)
		if strings.Contains(folded, fold.Key(col)) {
			score += 2
		}
		if score > bestScore {
			best, bestScore = col, score
		}
	}
	return best
}

func (sc *Scorer) extractValue(column, question, folded string) string {
	// Longest value first so "Eye disorders" beats "Eye" when both occur.
	if sc.data.HasColumn(column) {
		values := sc.data.DistinctValues(column)
		sort.SliceStable(values, func(i, j int) bool { return len(values[i]) > len(values[j]) })
		if len(values) > maxValueCandidates {
			values = values[:maxValueCandidates]
		}
		for _, v := range values {
			if strings.Contains(folded, fold.Key(v)) {
				return v
			}
		}
	}

	if m := quotedPattern.FindStringSubmatch(question); m != nil {
		return m[1]
	}

	words := wordPattern.FindAllString(question, -1)
	if len(words) > 3 {
		words = words[len(words)-3:]
	}
	return strings.Join(words, " ")
}

// tokenSet splits already-folded text into its alphanumeric tokens.
func tokenSet(folded string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range foldedTokenPattern.FindAllString(folded, -1) {
		set[tok] = true
	}
	return set
}

func overlap(a, b map[string]bool) int {
	n := 0
	for tok := range a {
		if b[tok] {
			n++
		}
	}
	return n
}
