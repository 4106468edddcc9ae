package repository

import (
	"context"
	"database/sql"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
)

type CourseRepo struct{ DB *sql.DB }

func NewCourseRepo(db *sql.DB) *CourseRepo { return &CourseRepo{DB: db} }

func (r *CourseRepo) Create(ctx context.Context, c model.Course) (model.Course, error) {
	res, err := r.DB.ExecContext(ctx, "INSERT INTO courses (title, description) VALUES (?,?)", c.Title, c.Description)
	if err != nil {
		return model.Course{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Course{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

func (r *CourseRepo) GetByID(ctx context.Context, id uint64) (model.Course, error) {
	var c model.Course
	err := r.DB.QueryRowContext(ctx, "SELECT id,title,description,created_at FROM courses WHERE id=? LIMIT 1", id).
		Scan(&c.ID, &c.Title, &c.Description, &c.CreatedAt)
	if err != nil {
		return model.Course{}, notFound(err)
	}
	return c, nil
}

func (r *CourseRepo) List(ctx context.Context) ([]model.Course, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id,title,description,created_at FROM courses ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Course{}
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// EnrollmentRepo stores enrollments; (candidate_id, course_id) is unique.
type EnrollmentRepo struct{ DB *sql.DB }

func NewEnrollmentRepo(db *sql.DB) *EnrollmentRepo { return &EnrollmentRepo{DB: db} }

const enrollmentSelect = `SELECT e.id,e.candidate_id,e.course_id,e.applied_at,e.progress,e.completed,e.certificate,
	c.id,c.title,c.description,c.created_at
	FROM enrollments e JOIN courses c ON c.id = e.course_id`

func (r *EnrollmentRepo) Create(ctx context.Context, e model.Enrollment) (model.Enrollment, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO enrollments (candidate_id, course_id) VALUES (?,?)", e.CandidateID, e.CourseID)
	if err != nil {
		if isDuplicate(err) {
			return model.Enrollment{}, ErrConflict
		}
		return model.Enrollment{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Enrollment{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

func (r *EnrollmentRepo) GetByID(ctx context.Context, id uint64) (model.Enrollment, error) {
	return scanEnrollment(r.DB.QueryRowContext(ctx, enrollmentSelect+" WHERE e.id=? LIMIT 1", id))
}

func (r *EnrollmentRepo) Get(ctx context.Context, candidateID, courseID uint64) (model.Enrollment, error) {
	return scanEnrollment(r.DB.QueryRowContext(ctx,
		enrollmentSelect+" WHERE e.candidate_id=? AND e.course_id=? LIMIT 1", candidateID, courseID))
}

// ListByCandidate returns the candidate's enrollments, most recent first.
func (r *EnrollmentRepo) ListByCandidate(ctx context.Context, candidateID uint64) ([]model.Enrollment, error) {
	rows, err := r.DB.QueryContext(ctx,
		enrollmentSelect+" WHERE e.candidate_id=? ORDER BY e.applied_at DESC, e.id DESC", candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Enrollment{}
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EnrollmentRepo) CourseIDs(ctx context.Context, candidateID uint64) ([]uint64, error) {
	return queryIDs(ctx, r.DB, "SELECT course_id FROM enrollments WHERE candidate_id=?", candidateID)
}

// Update writes progress, completion and certificate.
func (r *EnrollmentRepo) Update(ctx context.Context, e model.Enrollment) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE enrollments SET progress=?, completed=?, certificate=? WHERE id=?",
		e.Progress, e.Completed, e.Certificate, e.ID)
	return requireRow(res, err)
}

func scanEnrollment(row rowScanner) (model.Enrollment, error) {
	var (
		e model.Enrollment
		c model.Course
	)
	err := row.Scan(&e.ID, &e.CandidateID, &e.CourseID, &e.AppliedAt, &e.Progress, &e.Completed, &e.Certificate,
		&c.ID, &c.Title, &c.Description, &c.CreatedAt)
	if err != nil {
		return model.Enrollment{}, notFound(err)
	}
	e.Course = &c
	return e, nil
}
