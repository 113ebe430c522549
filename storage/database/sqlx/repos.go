// Package sqlxrepos implements the core repositories on PostgreSQL via sqlx.
package sqlxrepos

import (
	"strings"

	"github.com/tuitionlk/portal/core"
)

// orderingClause renders the first allowed ordering, or the fallback.
// Field names are whitelisted so client input never reaches the SQL text.
func orderingClause(ordering []core.DBOrdering, allowed map[string]bool, fallback string) string {
	for _, ord := range ordering {
		if allowed[strings.ToLower(ord.Field)] {
			return ord.String()
		}
	}
	return fallback
}
