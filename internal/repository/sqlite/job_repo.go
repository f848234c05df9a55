package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/internal/repository/jobsql"
)

// Timestamps are stored as UTC unix nanoseconds so ordering and month
// bucketing never depend on a text format.
const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id           TEXT PRIMARY KEY,
	company      TEXT NOT NULL CHECK (length(trim(company)) BETWEEN 1 AND 50),
	position     TEXT NOT NULL CHECK (length(trim(position)) BETWEEN 1 AND 100),
	status       TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'interview', 'declined')),
	job_type     TEXT NOT NULL DEFAULT 'full-time' CHECK (job_type IN ('full-time', 'part-time', 'remote', 'internship')),
	job_location TEXT NOT NULL DEFAULT 'my city',
	meeting_type TEXT NOT NULL DEFAULT 'Zoom' CHECK (meeting_type IN ('Zoom', 'Skype', 'Office', 'Meet')),
	created_by   TEXT NOT NULL,
	created_at   INTEGER NOT NULL,
	updated_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_owner_created ON jobs (created_by, created_at DESC);`

type jobRepo struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) domain.JobRepository {
	return &jobRepo{db: db}
}

// Migrate creates the jobs table when it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row scanner) (*domain.Job, error) {
	var (
		job                  domain.Job
		createdAt, updatedAt int64
	)
	err := row.Scan(
		&job.ID, &job.Company, &job.Position,
		(*string)(&job.Status), (*string)(&job.JobType), &job.JobLocation, (*string)(&job.MeetingType),
		&job.CreatedBy, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	job.CreatedAt = fromNanos(createdAt)
	job.UpdatedAt = fromNanos(updatedAt)
	return &job, nil
}

func toNanos(t time.Time) int64 { return t.UTC().UnixNano() }

func fromNanos(n int64) time.Time { return time.Unix(0, n).UTC() }

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func (r *jobRepo) Create(ctx context.Context, ownerID string, job *domain.Job) error {
	if ownerID == "" {
		return domain.ErrMissingOwner
	}
	job.CreatedBy = ownerID
	return insertJob(ctx, r.db, job)
}

func insertJob(ctx context.Context, db execer, job *domain.Job) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO jobs (`+jobsql.Columns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.Company, job.Position,
		string(job.Status), string(job.JobType), job.JobLocation, string(job.MeetingType),
		job.CreatedBy, toNanos(job.CreatedAt), toNanos(job.UpdatedAt),
	)
	return err
}

func (r *jobRepo) GetByID(ctx context.Context, ownerID, id string) (*domain.Job, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+jobsql.Columns+` FROM jobs WHERE id = ? AND created_by = ?`, id, ownerID)
	return scanJob(row)
}

func (r *jobRepo) Count(ctx context.Context, filter domain.JobFilter) (int64, error) {
	where, args, err := jobsql.Where(filter, jobsql.Question)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs WHERE `+where, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *jobRepo) Fetch(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, error) {
	where, args, err := jobsql.Where(filter, jobsql.Question)
	if err != nil {
		return nil, err
	}
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+jobsql.Columns+` FROM jobs WHERE `+where+
			` ORDER BY `+jobsql.OrderBy(filter.Sort)+` LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

// Update applies the patch and the owner check in one statement; a job
// owned by someone else is reported as not found.
func (r *jobRepo) Update(ctx context.Context, ownerID, id string, patch domain.JobPatch, updatedAt time.Time) (*domain.Job, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE jobs SET
			company = COALESCE(?, company),
			position = COALESCE(?, position),
			status = COALESCE(?, status),
			job_type = COALESCE(?, job_type),
			job_location = COALESCE(?, job_location),
			meeting_type = COALESCE(?, meeting_type),
			updated_at = ?
		WHERE id = ? AND created_by = ?
		RETURNING `+jobsql.Columns,
		patch.Company, patch.Position, jobsql.StrPtr(patch.Status), jobsql.StrPtr(patch.JobType),
		patch.JobLocation, jobsql.StrPtr(patch.MeetingType),
		toNanos(updatedAt),
		id, ownerID,
	)
	return scanJob(row)
}

func (r *jobRepo) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ? AND created_by = ?`, id, ownerID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) FetchStatRecords(ctx context.Context, ownerID string) ([]domain.JobStatRecord, error) {
	if ownerID == "" {
		return nil, domain.ErrMissingOwner
	}
	rows, err := r.db.QueryContext(ctx, `SELECT status, created_at FROM jobs WHERE created_by = ?`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.JobStatRecord
	for rows.Next() {
		var (
			rec       domain.JobStatRecord
			createdAt int64
		)
		if err := rows.Scan((*string)(&rec.Status), &createdAt); err != nil {
			return nil, err
		}
		rec.CreatedAt = fromNanos(createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *jobRepo) ReplaceAllByOwner(ctx context.Context, ownerID string, jobs []*domain.Job) (int64, error) {
	if ownerID == "" {
		return 0, domain.ErrMissingOwner
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE created_by = ?`, ownerID)
	if err != nil {
		return 0, err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	for i, job := range jobs {
		job.CreatedBy = ownerID
		if err := insertJob(ctx, tx, job); err != nil {
			return 0, fmt.Errorf("insert job %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return deleted, nil
}

func (r *jobRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
