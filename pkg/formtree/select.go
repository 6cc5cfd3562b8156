package formtree

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
)

// Select evaluates a JSONPath expression (for example `$..['#id']`) against
// tree. It is meant for diagnostics; projection code uses Locators.
func Select(tree Tree, expr string) ([]any, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("formtree: invalid jsonpath %q: %w", expr, err)
	}
	if tree == nil {
		return nil, nil
	}
	return x.Get(map[string]any(tree)), nil
}

// Expr converts a Locator into the equivalent JSONPath child expression.
func Expr(loc Locator) jp.Expr {
	x := jp.R()
	for _, segment := range loc.segments {
		x = x.C(segment)
	}
	return x
}
