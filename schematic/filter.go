package schematic

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// filterEnv is the environment a --where expression evaluates against,
// one component at a time.
type filterEnv struct {
	Reference string
	Value     string
	Footprint string
}

// FilterComponents keeps the components for which the boolean where
// expression holds. Expressions see Reference, Value and Footprint,
// e.g. `Reference startsWith "C" && Value != "100nF"`.
func FilterComponents(comps []Component, where string) ([]Component, error) {
	prog, err := expr.Compile(where, expr.Env(filterEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFilter, err)
	}
	var res []Component
	for _, c := range comps {
		out, err := expr.Run(prog, filterEnv{
			Reference: c.Reference,
			Value:     c.Value,
			Footprint: c.Footprint,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadFilter, err)
		}
		if keep, ok := out.(bool); ok && keep {
			res = append(res, c)
		}
	}
	return res, nil
}
