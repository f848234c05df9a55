// Package jobsql builds the SQL fragments shared by the relational job
// repositories. Placeholders are supplied by the caller so the same
// predicate serves both $n (Postgres) and ? (SQLite) dialects.
package jobsql

import (
	"fmt"
	"strings"

	"job-tracker-backend/internal/domain"
)

// Columns is the select list every Scan in the repositories expects.
const Columns = `id, company, position, status, job_type, job_location, meeting_type, created_by, created_at, updated_at`

// Placeholder renders the n-th (1-based) bind parameter.
type Placeholder func(n int) string

func Dollar(n int) string { return fmt.Sprintf("$%d", n) }

func Question(int) string { return "?" }

// Where renders the owner-scoped predicate of a filter. It returns the
// clause (without the WHERE keyword) and its arguments.
func Where(f domain.JobFilter, ph Placeholder) (string, []interface{}, error) {
	if f.OwnerID() == "" {
		return "", nil, domain.ErrMissingOwner
	}

	conds := []string{"created_by = " + ph(1)}
	args := []interface{}{f.OwnerID()}

	add := func(col, val string) {
		args = append(args, val)
		conds = append(conds, col+" = "+ph(len(args)))
	}
	if f.Position != "" {
		add("position", f.Position)
	}
	if f.Status != "" {
		add("status", string(f.Status))
	}
	if f.JobType != "" {
		add("job_type", string(f.JobType))
	}

	return strings.Join(conds, " AND "), args, nil
}

// OrderBy renders a total order for the listing; the id tie-breaker keeps
// pages disjoint when the primary key repeats.
func OrderBy(s domain.JobSort) string {
	switch s {
	case domain.SortOldest:
		return "created_at ASC, id ASC"
	case domain.SortAZ:
		return "position ASC, id ASC"
	case domain.SortZA:
		return "position DESC, id DESC"
	default:
		return "created_at DESC, id DESC"
	}
}

// StrPtr converts an optional enum into the *string drivers understand.
func StrPtr[T ~string](p *T) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}
