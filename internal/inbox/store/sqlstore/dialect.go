package sqlstore

import (
	"strconv"
	"strings"
)

// Dialect captures the few places the drivers disagree.
type Dialect struct {
	Name string

	// NumberedParams rewrites "?" placeholders to "$1", "$2", ...
	NumberedParams bool

	// IsUniqueViolation recognises the driver's unique constraint error.
	IsUniqueViolation func(error) bool
}

// Rebind adapts a query written with "?" placeholders to the dialect.
func (d Dialect) Rebind(query string) string {
	if !d.NumberedParams {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := range len(query) {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
