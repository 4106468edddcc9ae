package repository

import (
	"context"
	"database/sql"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
)

// ProfileRepo stores candidate and consultant profiles. Both tables carry a
// unique key on user_id; Create* report a lost race as ErrConflict.
type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

const candidateColumns = `id,user_id,first_name,last_name,phone,location,experience_years,skills,
	resume,profile_image,bio,linkedin,github,created_at,updated_at`

func (r *ProfileRepo) GetCandidate(ctx context.Context, userID uint64) (model.CandidateProfile, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+candidateColumns+" FROM candidate_profiles WHERE user_id=? LIMIT 1", userID)
	return scanCandidate(row)
}

func (r *ProfileRepo) CreateCandidate(ctx context.Context, userID uint64) (model.CandidateProfile, error) {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO candidate_profiles (user_id, skills, bio) VALUES (?, '', '')", userID)
	if err != nil {
		if isDuplicate(err) {
			return model.CandidateProfile{}, ErrConflict
		}
		return model.CandidateProfile{}, err
	}
	return r.GetCandidate(ctx, userID)
}

func (r *ProfileRepo) UpdateCandidate(ctx context.Context, p model.CandidateProfile) error {
	var exp sql.NullFloat64
	if p.ExperienceYears != nil {
		exp = sql.NullFloat64{Float64: *p.ExperienceYears, Valid: true}
	}
	res, err := r.DB.ExecContext(ctx, `UPDATE candidate_profiles SET
		first_name=?, last_name=?, phone=?, location=?, experience_years=?, skills=?,
		resume=?, profile_image=?, bio=?, linkedin=?, github=?
		WHERE user_id=?`,
		p.FirstName, p.LastName, p.Phone, p.Location, exp, p.Skills,
		p.Resume, p.ProfileImage, p.Bio, p.LinkedIn, p.GitHub, p.UserID)
	return requireRow(res, err)
}

func scanCandidate(row rowScanner) (model.CandidateProfile, error) {
	var (
		p   model.CandidateProfile
		exp sql.NullFloat64
	)
	err := row.Scan(&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Phone, &p.Location, &exp, &p.Skills,
		&p.Resume, &p.ProfileImage, &p.Bio, &p.LinkedIn, &p.GitHub, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.CandidateProfile{}, notFound(err)
	}
	if exp.Valid {
		v := exp.Float64
		p.ExperienceYears = &v
	}
	return p, nil
}

const consultantColumns = `id,user_id,first_name,last_name,phone,company,designation,
	profile_image,bio,linkedin,created_at,updated_at`

func (r *ProfileRepo) GetConsultant(ctx context.Context, userID uint64) (model.ConsultantProfile, error) {
	var p model.ConsultantProfile
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+consultantColumns+" FROM consultant_profiles WHERE user_id=? LIMIT 1", userID).
		Scan(&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Phone, &p.Company, &p.Designation,
			&p.ProfileImage, &p.Bio, &p.LinkedIn, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.ConsultantProfile{}, notFound(err)
	}
	return p, nil
}

func (r *ProfileRepo) CreateConsultant(ctx context.Context, userID uint64) (model.ConsultantProfile, error) {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO consultant_profiles (user_id, bio) VALUES (?, '')", userID)
	if err != nil {
		if isDuplicate(err) {
			return model.ConsultantProfile{}, ErrConflict
		}
		return model.ConsultantProfile{}, err
	}
	return r.GetConsultant(ctx, userID)
}

func (r *ProfileRepo) UpdateConsultant(ctx context.Context, p model.ConsultantProfile) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE consultant_profiles SET
		first_name=?, last_name=?, phone=?, company=?, designation=?, profile_image=?, bio=?, linkedin=?
		WHERE user_id=?`,
		p.FirstName, p.LastName, p.Phone, p.Company, p.Designation, p.ProfileImage, p.Bio, p.LinkedIn, p.UserID)
	return requireRow(res, err)
}

// requireRow turns an UPDATE/DELETE that matched no row into ErrNotFound.
// The DSN sets clientFoundRows so matched rows are counted, not changed ones.
func requireRow(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
