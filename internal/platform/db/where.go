package db

import (
	"fmt"
	"strings"
)

// Where accumulates AND-ed filter clauses with numbered placeholders.
type Where struct {
	clauses []string
	args    []any
}

func (w *Where) add(format string, v any) {
	w.args = append(w.args, v)
	w.clauses = append(w.clauses, fmt.Sprintf(format, len(w.args)))
}

// Eq adds "col = $n".
func (w *Where) Eq(col string, v any) *Where {
	w.add(col+" = $%d", v)
	return w
}

// Gte adds "col >= $n".
func (w *Where) Gte(col string, v any) *Where {
	w.add(col+" >= $%d", v)
	return w
}

// Lte adds "col <= $n".
func (w *Where) Lte(col string, v any) *Where {
	w.add(col+" <= $%d", v)
	return w
}

// In adds "col = ANY($n)".
func (w *Where) In(col string, vals []string) *Where {
	w.add(col+" = ANY($%d)", vals)
	return w
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ILike adds a case-insensitive substring match over any of cols. Wildcards
// in term match literally.
func (w *Where) ILike(cols []string, term string) *Where {
	w.args = append(w.args, "%"+likeEscaper.Replace(term)+"%")
	n := len(w.args)
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprintf("%s ILIKE $%d", c, n)
	}
	w.clauses = append(w.clauses, "("+strings.Join(parts, " OR ")+")")
	return w
}

// SQL renders the clause including the leading WHERE, or "" when empty.
func (w *Where) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func (w *Where) Args() []any {
	return w.args
}

// Page appends LIMIT and OFFSET placeholders and returns the clause with the
// full argument list.
func (w *Where) Page(limit, offset int) (string, []any) {
	n := len(w.args)
	args := append(append([]any{}, w.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), args
}
