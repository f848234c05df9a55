package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/internal/repository/jobsql"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id           TEXT PRIMARY KEY,
	company      VARCHAR(50)  NOT NULL CHECK (btrim(company) <> ''),
	position     VARCHAR(100) NOT NULL CHECK (btrim(position) <> ''),
	status       TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'interview', 'declined')),
	job_type     TEXT NOT NULL DEFAULT 'full-time' CHECK (job_type IN ('full-time', 'part-time', 'remote', 'internship')),
	job_location TEXT NOT NULL DEFAULT 'my city',
	meeting_type TEXT NOT NULL DEFAULT 'Zoom' CHECK (meeting_type IN ('Zoom', 'Skype', 'Office', 'Meet')),
	created_by   TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_owner_created ON jobs (created_by, created_at DESC);`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

// Migrate creates the jobs table when it does not exist yet.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, schema)
	return err
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	err := row.Scan(
		&job.ID, &job.Company, &job.Position,
		(*string)(&job.Status), (*string)(&job.JobType), &job.JobLocation, (*string)(&job.MeetingType),
		&job.CreatedBy, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	job.CreatedAt = job.CreatedAt.UTC()
	job.UpdatedAt = job.UpdatedAt.UTC()
	return &job, nil
}

// execer is satisfied by both the pool and a transaction.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertJob(ctx context.Context, db execer, job *domain.Job) error {
	query := `INSERT INTO jobs (` + jobsql.Columns + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := db.Exec(ctx, query,
		job.ID, job.Company, job.Position,
		string(job.Status), string(job.JobType), job.JobLocation, string(job.MeetingType),
		job.CreatedBy, job.CreatedAt, job.UpdatedAt,
	)
	return err
}

func (r *jobRepo) Create(ctx context.Context, ownerID string, job *domain.Job) error {
	if ownerID == "" {
		return domain.ErrMissingOwner
	}
	job.CreatedBy = ownerID
	return insertJob(ctx, r.db, job)
}

func (r *jobRepo) GetByID(ctx context.Context, ownerID, id string) (*domain.Job, error) {
	query := `SELECT ` + jobsql.Columns + ` FROM jobs WHERE id = $1 AND created_by = $2`
	return scanJob(r.db.QueryRow(ctx, query, id, ownerID))
}

func (r *jobRepo) Count(ctx context.Context, filter domain.JobFilter) (int64, error) {
	where, args, err := jobsql.Where(filter, jobsql.Dollar)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE `+where, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *jobRepo) Fetch(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, error) {
	where, args, err := jobsql.Where(filter, jobsql.Dollar)
	if err != nil {
		return nil, err
	}
	args = append(args, limit, offset)
	query := `SELECT ` + jobsql.Columns + ` FROM jobs WHERE ` + where +
		` ORDER BY ` + jobsql.OrderBy(filter.Sort) +
		` LIMIT ` + jobsql.Dollar(len(args)-1) + ` OFFSET ` + jobsql.Dollar(len(args))

	rows, err := r.db.Query(ctx, query, args...)
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
	query := `UPDATE jobs SET
		company = COALESCE($3, company),
		position = COALESCE($4, position),
		status = COALESCE($5, status),
		job_type = COALESCE($6, job_type),
		job_location = COALESCE($7, job_location),
		meeting_type = COALESCE($8, meeting_type),
		updated_at = $9
	WHERE id = $1 AND created_by = $2
	RETURNING ` + jobsql.Columns
	return scanJob(r.db.QueryRow(ctx, query,
		id, ownerID,
		patch.Company, patch.Position, jobsql.StrPtr(patch.Status), jobsql.StrPtr(patch.JobType),
		patch.JobLocation, jobsql.StrPtr(patch.MeetingType),
		updatedAt,
	))
}

func (r *jobRepo) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND created_by = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) FetchStatRecords(ctx context.Context, ownerID string) ([]domain.JobStatRecord, error) {
	if ownerID == "" {
		return nil, domain.ErrMissingOwner
	}
	rows, err := r.db.Query(ctx, `SELECT status, created_at FROM jobs WHERE created_by = $1`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.JobStatRecord
	for rows.Next() {
		var rec domain.JobStatRecord
		if err := rows.Scan((*string)(&rec.Status), &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *jobRepo) ReplaceAllByOwner(ctx context.Context, ownerID string, jobs []*domain.Job) (int64, error) {
	if ownerID == "" {
		return 0, domain.ErrMissingOwner
	}

	var deleted int64
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `DELETE FROM jobs WHERE created_by = $1`, ownerID)
		if err != nil {
			return err
		}
		deleted = result.RowsAffected()

		for i, job := range jobs {
			job.CreatedBy = ownerID
			if err := insertJob(ctx, tx, job); err != nil {
				return fmt.Errorf("insert job %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (r *jobRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
