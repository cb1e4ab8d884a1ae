package store

import (
	"fmt"
	"strings"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE/ILIKE pattern that
// declares ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// projectFilter is the WHERE clause shared by the page and count queries.
// Both queries must bind the same args in the same positions.
type projectFilter struct {
	where string
	args  []any
}

func buildProjectFilter(search string) projectFilter {
	search = strings.TrimSpace(search)
	if search == "" {
		return projectFilter{}
	}
	return projectFilter{
		where: ` WHERE name ILIKE $1 ESCAPE '\'`,
		args:  []any{"%" + escapeLike(search) + "%"},
	}
}

// countQuery returns the statement and args counting every filtered row.
func (f projectFilter) countQuery() (string, []any) {
	return `SELECT count(*) FROM projects` + f.where, f.args
}

// pageQuery returns the statement and args for one id-ordered page.
func (f projectFilter) pageQuery(limit, offset int) (string, []any) {
	query := `SELECT id, COALESCE(name, ''), COALESCE(description, '') FROM projects` + f.where + ` ORDER BY id ASC`
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(f.args)+1, len(f.args)+2)

	args := make([]any, 0, len(f.args)+2)
	args = append(args, f.args...)
	args = append(args, limit, offset)
	return query, args
}
