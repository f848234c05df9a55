package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrMissingOwner = errors.New("owner id is required")
)

// FilterAll is the query value meaning "no constraint on this field".
const FilterAll = "all"

const DefaultJobLocation = "my city"

type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusInterview JobStatus = "interview"
	StatusDeclined  JobStatus = "declined"
)

// JobStatuses lists every status in display order. Any status may move to
// any other; there is no workflow between them.
var JobStatuses = []JobStatus{StatusPending, StatusInterview, StatusDeclined}

func (s JobStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInterview, StatusDeclined:
		return true
	}
	return false
}

type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeRemote     JobType = "remote"
	JobTypeInternship JobType = "internship"
)

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeRemote, JobTypeInternship:
		return true
	}
	return false
}

type MeetingType string

const (
	MeetingZoom   MeetingType = "Zoom"
	MeetingSkype  MeetingType = "Skype"
	MeetingOffice MeetingType = "Office"
	MeetingMeet   MeetingType = "Meet"
)

func (m MeetingType) Valid() bool {
	switch m {
	case MeetingZoom, MeetingSkype, MeetingOffice, MeetingMeet:
		return true
	}
	return false
}

// JobSort selects the listing order. Every order ends with the job id so
// that pages never overlap.
type JobSort string

const (
	SortLatest JobSort = "latest"
	SortOldest JobSort = "oldest"
	SortAZ     JobSort = "a-z"
	SortZA     JobSort = "z-a"
)

// ParseJobSort maps a raw sort value to a known order, defaulting to latest.
func ParseJobSort(raw string) JobSort {
	switch s := JobSort(raw); s {
	case SortLatest, SortOldest, SortAZ, SortZA:
		return s
	}
	return SortLatest
}

// Job is a single tracked application, owned by exactly one user.
type Job struct {
	ID          string      `json:"_id" bson:"_id"`
	Company     string      `json:"company" bson:"company"`
	Position    string      `json:"position" bson:"position"`
	Status      JobStatus   `json:"status" bson:"status"`
	JobType     JobType     `json:"jobType" bson:"jobType"`
	JobLocation string      `json:"jobLocation" bson:"jobLocation"`
	MeetingType MeetingType `json:"meetingType" bson:"meetingType"`
	CreatedBy   string      `json:"createdBy" bson:"createdBy"`
	CreatedAt   time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// JobInput holds the client-supplied fields of a new job. Empty enum and
// location fields take their defaults.
type JobInput struct {
	Company     string      `json:"company" validate:"required,not_blank,max=50"`
	Position    string      `json:"position" validate:"required,not_blank,max=100"`
	Status      JobStatus   `json:"status" validate:"omitempty,job_status"`
	JobType     JobType     `json:"jobType" validate:"omitempty,job_type"`
	JobLocation string      `json:"jobLocation" validate:"omitempty,not_blank"`
	MeetingType MeetingType `json:"meetingType" validate:"omitempty,meeting_type"`
}

// JobPatch is a partial update; nil fields are left untouched.
type JobPatch struct {
	Company     *string      `json:"company"`
	Position    *string      `json:"position"`
	Status      *JobStatus   `json:"status"`
	JobType     *JobType     `json:"jobType"`
	JobLocation *string      `json:"jobLocation"`
	MeetingType *MeetingType `json:"meetingType"`
}

// IsEmpty reports whether the patch changes nothing.
func (p JobPatch) IsEmpty() bool {
	return p.Company == nil && p.Position == nil && p.Status == nil &&
		p.JobType == nil && p.JobLocation == nil && p.MeetingType == nil
}

// JobQuery carries the raw listing parameters as received from the client.
type JobQuery struct {
	Search  string
	Status  string
	JobType string
	Sort    string
	Page    int
	Limit   int
}

// JobFilter is an owner-scoped listing predicate. The owner is set only by
// NewJobFilter; stores reject a filter that has none.
type JobFilter struct {
	ownerID  string
	Position string
	Status   JobStatus
	JobType  JobType
	Sort     JobSort
}

func NewJobFilter(ownerID string) JobFilter {
	return JobFilter{ownerID: ownerID, Sort: SortLatest}
}

func (f JobFilter) OwnerID() string { return f.ownerID }

// JobStatRecord is the projection of a job the statistics are computed from.
type JobStatRecord struct {
	Status    JobStatus `bson:"status"`
	CreatedAt time.Time `bson:"createdAt"`
}

type StatusStats struct {
	Pending   int64 `json:"pending"`
	Interview int64 `json:"interview"`
	Declined  int64 `json:"declined"`
}

type MonthlyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type JobStats struct {
	DefaultStats        StatusStats    `json:"defaultStats"`
	MonthlyApplications []MonthlyCount `json:"monthlyApplications"`
}

type JobList struct {
	Jobs       []Job `json:"jobs"`
	NumOfPages int   `json:"numOfPages"`
	TotalJobs  int64 `json:"totalJobs"`
}

// JobRepository persists jobs. Every method is scoped to one owner; update
// and delete apply their owner predicate in the same statement as the write.
type JobRepository interface {
	Create(ctx context.Context, ownerID string, job *Job) error
	GetByID(ctx context.Context, ownerID, id string) (*Job, error)
	Count(ctx context.Context, filter JobFilter) (int64, error)
	Fetch(ctx context.Context, filter JobFilter, limit, offset int) ([]Job, error)
	Update(ctx context.Context, ownerID, id string, patch JobPatch, updatedAt time.Time) (*Job, error)
	Delete(ctx context.Context, ownerID, id string) error
	FetchStatRecords(ctx context.Context, ownerID string) ([]JobStatRecord, error)
	// ReplaceAllByOwner deletes the owner's jobs and inserts jobs in one
	// transaction, returning how many were deleted. On error the owner's
	// previous jobs are left in place.
	ReplaceAllByOwner(ctx context.Context, ownerID string, jobs []*Job) (int64, error)
	Ping(ctx context.Context) error
}

type JobUsecase interface {
	ListJobs(ctx context.Context, ownerID string, query JobQuery) (*JobList, error)
	GetJob(ctx context.Context, ownerID, jobID string) (*Job, error)
	CreateJob(ctx context.Context, ownerID string, input JobInput) (*Job, error)
	UpdateJob(ctx context.Context, ownerID, jobID string, patch JobPatch) (*Job, error)
	DeleteJob(ctx context.Context, ownerID, jobID string) error
	ShowStats(ctx context.Context, ownerID string) (*JobStats, error)
}
