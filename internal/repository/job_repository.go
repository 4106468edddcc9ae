package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
)

type JobRepo struct{ DB *sql.DB }

func NewJobRepo(db *sql.DB) *JobRepo { return &JobRepo{DB: db} }

const jobColumns = `j.id,j.consultant_id,j.title,j.company,j.location,j.experience,j.job_type,
	j.domain,j.skills,j.description,j.is_active,j.posted_on,j.updated_at`

func (r *JobRepo) Create(ctx context.Context, j model.Job) (model.Job, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO jobs
		(consultant_id, title, company, location, experience, job_type, domain, skills, description, is_active)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		j.ConsultantID, j.Title, j.Company, j.Location, j.Experience, string(j.JobType),
		j.Domain, j.Skills, j.Description, j.IsActive)
	if err != nil {
		return model.Job{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Job{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

func (r *JobRepo) GetByID(ctx context.Context, id uint64) (model.Job, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+jobColumns+" FROM jobs j WHERE j.id=? LIMIT 1", id)
	return scanJob(row)
}

// Update overwrites the editable fields. Ownership is checked by the caller.
func (r *JobRepo) Update(ctx context.Context, j model.Job) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE jobs SET
		title=?, company=?, location=?, experience=?, job_type=?, domain=?, skills=?, description=?, is_active=?
		WHERE id=?`,
		j.Title, j.Company, j.Location, j.Experience, string(j.JobType), j.Domain, j.Skills, j.Description, j.IsActive, j.ID)
	return requireRow(res, err)
}

// Delete removes the job; saved jobs, applications and queries cascade.
func (r *JobRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM jobs WHERE id=?", id)
	return requireRow(res, err)
}

// List returns one page of jobs matching f, newest first, plus the total
// number of matches. A limit of zero or less returns every match.
func (r *JobRepo) List(ctx context.Context, f model.JobFilter, limit, offset int) ([]model.Job, int, error) {
	cond, args := buildJobWhere(f)

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM jobs j WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []model.Job{}, 0, nil
	}

	q := "SELECT " + jobColumns + " FROM jobs j WHERE " + cond + " ORDER BY j.posted_on DESC, j.id DESC"
	if limit > 0 {
		q += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs := make([]model.Job, 0, limit)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, j)
	}
	return jobs, total, rows.Err()
}

// buildJobWhere turns a filter into a WHERE clause (without the keyword)
// and its arguments. Text filters are case-insensitive substring matches.
func buildJobWhere(f model.JobFilter) (string, []any) {
	where := []string{}
	args := []any{}

	if f.ActiveOnly {
		where = append(where, "j.is_active = 1")
	}
	if f.ConsultantID != 0 {
		where = append(where, "j.consultant_id = ?")
		args = append(args, f.ConsultantID)
	}
	if f.MaxExperience != nil {
		where = append(where, "j.experience <= ?")
		args = append(args, *f.MaxExperience)
	}
	if f.Location != "" {
		where = append(where, "LOWER(j.location) LIKE ?")
		args = append(args, likePattern(f.Location))
	}
	if f.Domain != "" {
		where = append(where, "LOWER(j.domain) LIKE ?")
		args = append(args, likePattern(f.Domain))
	}
	if f.Skills != "" {
		where = append(where, "LOWER(j.skills) LIKE ?")
		args = append(args, likePattern(f.Skills))
	}
	if f.JobType != "" {
		where = append(where, "j.job_type = ?")
		args = append(args, string(f.JobType))
	}
	if len(f.AnySkill) > 0 {
		ors := make([]string, 0, len(f.AnySkill))
		for _, s := range f.AnySkill {
			ors = append(ors, "(LOWER(j.title) LIKE ? OR LOWER(j.domain) LIKE ? OR LOWER(j.description) LIKE ?)")
			p := likePattern(s)
			args = append(args, p, p, p)
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	if len(where) == 0 {
		return "1=1", args
	}
	return strings.Join(where, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}

func scanJob(row rowScanner) (model.Job, error) {
	var (
		j       model.Job
		jobType string
	)
	err := row.Scan(&j.ID, &j.ConsultantID, &j.Title, &j.Company, &j.Location, &j.Experience, &jobType,
		&j.Domain, &j.Skills, &j.Description, &j.IsActive, &j.PostedOn, &j.UpdatedAt)
	if err != nil {
		return model.Job{}, notFound(err)
	}
	j.JobType = model.JobType(jobType)
	return j, nil
}
