package listing

import (
	"fmt"
)

// Condition is one SQL predicate with its bind arguments. Conditions are
// conjoined by the consumer (chained WHERE clauses).
type Condition struct {
	Expr string
	Args []interface{}
}

// Conditions renders the keyword stage followed by the field-filter stage.
// The keyword matches as a case-insensitive substring of the product name;
// absent keyword means no constraint.
func (r *Request) Conditions() []Condition {
	var conds []Condition

	if r.Keyword != "" {
		conds = append(conds, Condition{
			Expr: "name ILIKE ?",
			Args: []interface{}{"%" + r.Keyword + "%"},
		})
	}

	for _, f := range r.Filters {
		conds = append(conds, Condition{
			Expr: fmt.Sprintf("%s %s ?", f.Field, f.Op),
			Args: []interface{}{f.Value},
		})
	}

	return conds
}
