package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
)

// SavedJobRepo stores candidate bookmarks. The (user_id, job_id) unique key
// makes Save idempotent.
type SavedJobRepo struct{ DB *sql.DB }

func NewSavedJobRepo(db *sql.DB) *SavedJobRepo { return &SavedJobRepo{DB: db} }

// Save bookmarks the job. Saving twice leaves one row.
func (r *SavedJobRepo) Save(ctx context.Context, userID, jobID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO saved_jobs (user_id, job_id) VALUES (?,?)", userID, jobID)
	return err
}

// Remove deletes the bookmark if present.
func (r *SavedJobRepo) Remove(ctx context.Context, userID, jobID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM saved_jobs WHERE user_id=? AND job_id=?", userID, jobID)
	return err
}

func (r *SavedJobRepo) IsSaved(ctx context.Context, userID, jobID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM saved_jobs WHERE user_id=? AND job_id=? LIMIT 1", userID, jobID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// JobIDs lists the ids of every job the user saved.
func (r *SavedJobRepo) JobIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	return queryIDs(ctx, r.DB, "SELECT job_id FROM saved_jobs WHERE user_id=?", userID)
}

// ListJobs returns the saved jobs, most recently saved first.
func (r *SavedJobRepo) ListJobs(ctx context.Context, userID uint64) ([]model.Job, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+jobColumns+` FROM saved_jobs s
		JOIN jobs j ON j.id = s.job_id
		WHERE s.user_id=? ORDER BY s.saved_at DESC, s.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	jobs := []model.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func queryIDs(ctx context.Context, db *sql.DB, q string, args ...any) ([]uint64, error) {
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := []uint64{}
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
