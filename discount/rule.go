package discount

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ainaplanass/exam/capability"
)

// Rule is a discount defined by an expression over amount, for example
// "amount > 100 ? amount * 0.15 : 0". The result is clamped to [0, amount].
type Rule struct {
	name    string
	source  string
	program *vm.Program
	logger  *slog.Logger
}

// NewRule compiles expression. An expression that does not compile to a
// number returns capability.ErrConstruction.
func NewRule(name, expression string, logger *slog.Logger) (*Rule, error) {
	program, err := expr.Compile(expression, expr.Env(map[string]any{"amount": 0.0}), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("discount: rule %q: %v: %w", name, err, capability.ErrConstruction)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Rule{name: name, source: expression, program: program, logger: logger}, nil
}

// Calculate evaluates the rule. An evaluation error grants no discount.
func (r *Rule) Calculate(amount float64) float64 {
	out, err := expr.Run(r.program, map[string]any{"amount": amount})
	if err != nil {
		r.logger.Warn("discount rule failed", "rule", r.name, "amount", amount, "error", err)
		return 0
	}
	d, _ := out.(float64)
	switch {
	case d < 0:
		return 0
	case d > amount:
		return amount
	}
	return d
}

func (r *Rule) Description() string {
	return fmt.Sprintf("Regla %s: %s", r.name, r.source)
}

// Expression returns the rule's source expression.
func (r *Rule) Expression() string { return r.source }
