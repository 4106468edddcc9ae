package repository

import (
	"context"
	"database/sql"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
)

// ApplicationRepo stores job applications. (user_id, job_id) is unique so a
// second Create for the same pair yields ErrConflict.
type ApplicationRepo struct{ DB *sql.DB }

func NewApplicationRepo(db *sql.DB) *ApplicationRepo { return &ApplicationRepo{DB: db} }

const applicationColumns = `a.id,a.user_id,a.job_id,a.resume,a.cover_letter,a.status,a.meeting_status,
	a.meeting_datetime,a.applied_at,a.updated_at,j.title,u.email`

const applicationFrom = ` FROM applications a
	JOIN jobs j  ON j.id = a.job_id
	JOIN users u ON u.id = a.user_id`

func (r *ApplicationRepo) Create(ctx context.Context, a model.Application) (model.Application, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO applications
		(user_id, job_id, resume, cover_letter, status, meeting_status) VALUES (?,?,?,?,?,?)`,
		a.UserID, a.JobID, a.Resume, a.CoverLetter, string(a.Status), string(a.MeetingStatus))
	if err != nil {
		if isDuplicate(err) {
			return model.Application{}, ErrConflict
		}
		return model.Application{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Application{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id uint64) (model.Application, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+applicationColumns+applicationFrom+" WHERE a.id=? LIMIT 1", id)
	return scanApplication(row)
}

func (r *ApplicationRepo) GetByUserJob(ctx context.Context, userID, jobID uint64) (model.Application, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+applicationColumns+applicationFrom+" WHERE a.user_id=? AND a.job_id=? LIMIT 1", userID, jobID)
	return scanApplication(row)
}

// UpdateState persists status and meeting fields.
func (r *ApplicationRepo) UpdateState(ctx context.Context, a model.Application) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE applications SET status=?, meeting_status=?, meeting_datetime=? WHERE id=?",
		string(a.Status), string(a.MeetingStatus), timeArg(a.MeetingDatetime), a.ID)
	return requireRow(res, err)
}

// ListByJob returns every application on a job, newest first.
func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID uint64) ([]model.Application, error) {
	return r.list(ctx, " WHERE a.job_id=? ORDER BY a.applied_at DESC, a.id DESC", jobID)
}

// ListByUser returns a candidate's applications, newest first.
func (r *ApplicationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Application, error) {
	return r.list(ctx, " WHERE a.user_id=? ORDER BY a.applied_at DESC, a.id DESC", userID)
}

// ListShortlisted returns shortlisted applications across every job the
// consultant owns.
func (r *ApplicationRepo) ListShortlisted(ctx context.Context, consultantID uint64) ([]model.Application, error) {
	return r.list(ctx, " WHERE j.consultant_id=? AND a.status='SHORTLISTED' ORDER BY a.updated_at DESC, a.id DESC", consultantID)
}

func (r *ApplicationRepo) CountByJob(ctx context.Context, jobID uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM applications WHERE job_id=?", jobID).Scan(&n)
	return n, err
}

// JobIDsByUser lists the ids of every job the candidate applied to.
func (r *ApplicationRepo) JobIDsByUser(ctx context.Context, userID uint64) ([]uint64, error) {
	return queryIDs(ctx, r.DB, "SELECT job_id FROM applications WHERE user_id=?", userID)
}

func (r *ApplicationRepo) list(ctx context.Context, tail string, args ...any) ([]model.Application, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+applicationColumns+applicationFrom+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanApplication(row rowScanner) (model.Application, error) {
	var (
		a               model.Application
		status, meeting string
		meetingAt       sql.NullTime
	)
	err := row.Scan(&a.ID, &a.UserID, &a.JobID, &a.Resume, &a.CoverLetter, &status, &meeting,
		&meetingAt, &a.AppliedAt, &a.UpdatedAt, &a.JobTitle, &a.ApplicantEmail)
	if err != nil {
		return model.Application{}, notFound(err)
	}
	a.Status = model.ApplicationStatus(status)
	a.MeetingStatus = model.MeetingStatus(meeting)
	a.MeetingDatetime = nullTime(meetingAt)
	return a, nil
}
