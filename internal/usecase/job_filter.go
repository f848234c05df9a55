package usecase

import "job-tracker-backend/internal/domain"

// BuildJobFilter turns raw listing parameters into an owner-scoped filter.
// Empty values and "all" leave a field unconstrained; anything else is an
// exact match (search matches position exactly, it is not a substring search).
func BuildJobFilter(ownerID string, q domain.JobQuery) domain.JobFilter {
	f := domain.NewJobFilter(ownerID)
	if constrained(q.Search) {
		f.Position = q.Search
	}
	if constrained(q.Status) {
		f.Status = domain.JobStatus(q.Status)
	}
	if constrained(q.JobType) {
		f.JobType = domain.JobType(q.JobType)
	}
	f.Sort = domain.ParseJobSort(q.Sort)
	return f
}

func constrained(v string) bool {
	return v != "" && v != domain.FilterAll
}
