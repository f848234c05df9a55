package usecase

import (
	"sort"
	"time"

	"job-tracker-backend/internal/domain"
)

// MonthlyWindow is how many of the most recent active months are reported.
const MonthlyWindow = 6

// MonthKey buckets records by calendar month in UTC.
type MonthKey struct {
	Year  int
	Month time.Month
}

func monthKeyOf(t time.Time) MonthKey {
	u := t.UTC()
	return MonthKey{Year: u.Year(), Month: u.Month()}
}

// Before reports whether k is an earlier month than o.
func (k MonthKey) Before(o MonthKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Month < o.Month
}

// Label renders the key as "Mar 2024".
func (k MonthKey) Label() string {
	return time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

// MonthBucket is one month of the time series before formatting.
type MonthBucket struct {
	Key   MonthKey
	Count int64
}

// StatusHistogram counts records per status. The result always carries the
// three known statuses; anything else is dropped.
func StatusHistogram(records []domain.JobStatRecord) domain.StatusStats {
	counts := make(map[domain.JobStatus]int64, len(domain.JobStatuses))
	for _, r := range records {
		counts[r.Status]++
	}
	return domain.StatusStats{
		Pending:   counts[domain.StatusPending],
		Interview: counts[domain.StatusInterview],
		Declined:  counts[domain.StatusDeclined],
	}
}

// MonthlyBuckets groups records by month and keeps the MonthlyWindow most
// recent months that have at least one record, oldest first. Empty months
// are never synthesized.
func MonthlyBuckets(records []domain.JobStatRecord) []MonthBucket {
	counts := make(map[MonthKey]int64)
	for _, r := range records {
		counts[monthKeyOf(r.CreatedAt)]++
	}

	buckets := make([]MonthBucket, 0, len(counts))
	for k, n := range counts {
		buckets = append(buckets, MonthBucket{Key: k, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[j].Key.Before(buckets[i].Key)
	})
	if len(buckets) > MonthlyWindow {
		buckets = buckets[:MonthlyWindow]
	}
	for i, j := 0, len(buckets)-1; i < j; i, j = i+1, j-1 {
		buckets[i], buckets[j] = buckets[j], buckets[i]
	}
	return buckets
}

// MonthlyApplications is MonthlyBuckets rendered with month labels.
func MonthlyApplications(records []domain.JobStatRecord) []domain.MonthlyCount {
	buckets := MonthlyBuckets(records)
	out := make([]domain.MonthlyCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.MonthlyCount{Date: b.Key.Label(), Count: b.Count})
	}
	return out
}

// FormatStats assembles the stats response. Monthly applications render as
// an empty list, never null.
func FormatStats(hist domain.StatusStats, months []domain.MonthlyCount) *domain.JobStats {
	if months == nil {
		months = []domain.MonthlyCount{}
	}
	return &domain.JobStats{
		DefaultStats:        hist,
		MonthlyApplications: months,
	}
}
