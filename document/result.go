package document

import (
	"fmt"
	"slices"
	"strings"
)

// Result is what processing a document produced.
type Result struct {
	Success  bool
	Data     map[string]any
	Messages []string
}

// NewResult returns an empty Result.
func NewResult(success bool) *Result {
	return &Result{Success: success, Data: make(map[string]any)}
}

// AddMessage appends a formatted message.
func (r *Result) AddMessage(format string, args ...any) {
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

// Report renders the result as text. Extracted data is listed, in key order,
// only for successful results.
func (r *Result) Report() string {
	status := "Failure"
	if r.Success {
		status = "Success"
	}
	docType := "Unknown"
	if v, ok := r.Data["documentType"]; ok && fmt.Sprint(v) != "" {
		docType = fmt.Sprint(v)
	}

	var b strings.Builder
	b.WriteString("report\n")
	fmt.Fprintf(&b, "document: %s\n", docType)
	fmt.Fprintf(&b, "status: %s\n", status)
	for _, m := range r.Messages {
		fmt.Fprintf(&b, "  - %s\n", m)
	}
	if r.Success && len(r.Data) > 0 {
		b.WriteString("extracted data:\n")
		keys := make([]string, 0, len(r.Data))
		for k := range r.Data {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s: %v\n", k, r.Data[k])
		}
	}
	return b.String()
}
