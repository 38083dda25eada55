package bookly

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
)

// Query is a compiled jq expression evaluated against batch summaries, for
// example "[.lines[] | select(.total > 40) | .order_id]".
type Query struct {
	source string
	code   *gojq.Code
}

// CompileQuery parses and compiles expression once so it can be run against
// many summaries.
func CompileQuery(expression string) (*Query, error) {
	parsed, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("bookly: invalid query %q: %w", expression, err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("bookly: compile query %q: %w", expression, err)
	}
	return &Query{source: expression, code: code}, nil
}

// String returns the query source.
func (q *Query) String() string { return q.source }

// Run evaluates the query over s and collects every result. Field names
// follow the summary's JSON encoding.
func (q *Query) Run(s Summary) ([]any, error) {
	// gojq only walks JSON-shaped values.
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var input any
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, err
	}

	var out []any
	iter := q.code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			return out, nil
		}
		if err, isErr := v.(error); isErr {
			return nil, fmt.Errorf("bookly: query %q: %w", q.source, err)
		}
		out = append(out, v)
	}
}
