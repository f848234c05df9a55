package mongodb

import (
	"context"
	"errors"
	"time"

	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const collectionName = "jobs"

type jobRepo struct {
	jobs *mongo.Collection
}

func NewJobRepository(db *mongo.Database) domain.JobRepository {
	return &jobRepo{jobs: db.Collection(collectionName)}
}

// Migrate creates the owner/creation-time index used by listing and stats.
func Migrate(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(collectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdBy", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

func ownedBy(ownerID, id string) bson.M {
	return bson.M{"_id": id, "createdBy": ownerID}
}

func filterDoc(f domain.JobFilter) (bson.M, error) {
	if f.OwnerID() == "" {
		return nil, domain.ErrMissingOwner
	}
	doc := bson.M{"createdBy": f.OwnerID()}
	if f.Position != "" {
		doc["position"] = f.Position
	}
	if f.Status != "" {
		doc["status"] = string(f.Status)
	}
	if f.JobType != "" {
		doc["jobType"] = string(f.JobType)
	}
	return doc, nil
}

func sortDoc(s domain.JobSort) bson.D {
	switch s {
	case domain.SortOldest:
		return bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}
	case domain.SortAZ:
		return bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}}
	case domain.SortZA:
		return bson.D{{Key: "position", Value: -1}, {Key: "_id", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
	}
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	return err
}

func normalize(job *domain.Job) {
	job.CreatedAt = job.CreatedAt.UTC()
	job.UpdatedAt = job.UpdatedAt.UTC()
}

func (r *jobRepo) Create(ctx context.Context, ownerID string, job *domain.Job) error {
	if ownerID == "" {
		return domain.ErrMissingOwner
	}
	job.CreatedBy = ownerID
	_, err := r.jobs.InsertOne(ctx, job)
	return err
}

func (r *jobRepo) GetByID(ctx context.Context, ownerID, id string) (*domain.Job, error) {
	var job domain.Job
	if err := r.jobs.FindOne(ctx, ownedBy(ownerID, id)).Decode(&job); err != nil {
		return nil, notFound(err)
	}
	normalize(&job)
	return &job, nil
}

func (r *jobRepo) Count(ctx context.Context, filter domain.JobFilter) (int64, error) {
	doc, err := filterDoc(filter)
	if err != nil {
		return 0, err
	}
	return r.jobs.CountDocuments(ctx, doc)
}

func (r *jobRepo) Fetch(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, error) {
	doc, err := filterDoc(filter)
	if err != nil {
		return nil, err
	}
	opts := options.Find().
		SetSort(sortDoc(filter.Sort)).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cur, err := r.jobs.Find(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	jobs := []domain.Job{}
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	for i := range jobs {
		normalize(&jobs[i])
	}
	return jobs, nil
}

// Update is a single FindOneAndUpdate on id and owner, so ownership cannot
// change between the check and the write.
func (r *jobRepo) Update(ctx context.Context, ownerID, id string, patch domain.JobPatch, updatedAt time.Time) (*domain.Job, error) {
	set := bson.M{"updatedAt": updatedAt}
	if patch.Company != nil {
		set["company"] = *patch.Company
	}
	if patch.Position != nil {
		set["position"] = *patch.Position
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.JobType != nil {
		set["jobType"] = string(*patch.JobType)
	}
	if patch.JobLocation != nil {
		set["jobLocation"] = *patch.JobLocation
	}
	if patch.MeetingType != nil {
		set["meetingType"] = string(*patch.MeetingType)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var job domain.Job
	err := r.jobs.FindOneAndUpdate(ctx, ownedBy(ownerID, id), bson.M{"$set": set}, opts).Decode(&job)
	if err != nil {
		return nil, notFound(err)
	}
	normalize(&job)
	return &job, nil
}

func (r *jobRepo) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.jobs.DeleteOne(ctx, ownedBy(ownerID, id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) FetchStatRecords(ctx context.Context, ownerID string) ([]domain.JobStatRecord, error) {
	if ownerID == "" {
		return nil, domain.ErrMissingOwner
	}
	opts := options.Find().SetProjection(bson.M{"_id": 0, "status": 1, "createdAt": 1})
	cur, err := r.jobs.Find(ctx, bson.M{"createdBy": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	var records []domain.JobStatRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ReplaceAllByOwner runs in a session transaction. Standalone servers
// cannot run transactions; there the replace falls back to a plain delete
// then insert.
func (r *jobRepo) ReplaceAllByOwner(ctx context.Context, ownerID string, jobs []*domain.Job) (int64, error) {
	if ownerID == "" {
		return 0, domain.ErrMissingOwner
	}

	session, err := r.jobs.Database().Client().StartSession()
	if err != nil {
		return 0, err
	}
	defer session.EndSession(ctx)

	deleted, err := session.WithTransaction(ctx, func(sctx mongo.SessionContext) (any, error) {
		return r.replace(sctx, ownerID, jobs)
	})
	if transactionsUnsupported(err) {
		logger.Log.Warn("MongoDB transactions unavailable, replacing jobs without one", "owner", ownerID)
		return r.replace(ctx, ownerID, jobs)
	}
	if err != nil {
		return 0, err
	}
	return deleted.(int64), nil
}

func (r *jobRepo) replace(ctx context.Context, ownerID string, jobs []*domain.Job) (int64, error) {
	res, err := r.jobs.DeleteMany(ctx, bson.M{"createdBy": ownerID})
	if err != nil {
		return 0, err
	}
	if len(jobs) == 0 {
		return res.DeletedCount, nil
	}

	docs := make([]interface{}, len(jobs))
	for i, job := range jobs {
		job.CreatedBy = ownerID
		docs[i] = job
	}
	if _, err := r.jobs.InsertMany(ctx, docs); err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// transactionsUnsupported matches the IllegalOperation error a standalone
// mongod returns for transaction numbers.
func transactionsUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == 20
	}
	return false
}

func (r *jobRepo) Ping(ctx context.Context) error {
	return r.jobs.Database().Client().Ping(ctx, readpref.Primary())
}
