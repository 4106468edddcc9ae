package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
)

// QueryRepo stores job queries and their replies.
type QueryRepo struct{ DB *sql.DB }

func NewQueryRepo(db *sql.DB) *QueryRepo { return &QueryRepo{DB: db} }

const queryColumns = "q.id,q.job_id,q.user_id,q.question,q.is_resolved,q.created_at,j.title,u.email"

const queryFrom = ` FROM job_queries q
	JOIN jobs j  ON j.id = q.job_id
	JOIN users u ON u.id = q.user_id`

func (r *QueryRepo) Create(ctx context.Context, q model.JobQuery) (model.JobQuery, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO job_queries (job_id, user_id, question) VALUES (?,?,?)", q.JobID, q.UserID, q.Question)
	if err != nil {
		return model.JobQuery{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.JobQuery{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

func (r *QueryRepo) GetByID(ctx context.Context, id uint64) (model.JobQuery, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+queryColumns+queryFrom+" WHERE q.id=? LIMIT 1", id)
	return scanQuery(row)
}

// ListByJob returns the queries on a job, newest first. A non-zero askerID
// restricts the result to that candidate's queries.
func (r *QueryRepo) ListByJob(ctx context.Context, jobID, askerID uint64) ([]model.JobQuery, error) {
	tail := " WHERE q.job_id=?"
	args := []any{jobID}
	if askerID != 0 {
		tail += " AND q.user_id=?"
		args = append(args, askerID)
	}
	return r.list(ctx, tail+" ORDER BY q.created_at DESC, q.id DESC", args...)
}

// ListByConsultant returns the queries on every job the consultant owns,
// unresolved first and newest first within each group.
func (r *QueryRepo) ListByConsultant(ctx context.Context, consultantID uint64) ([]model.JobQuery, error) {
	return r.list(ctx, " WHERE j.consultant_id=? ORDER BY q.is_resolved ASC, q.created_at DESC, q.id DESC", consultantID)
}

func (r *QueryRepo) CountUnresolved(ctx context.Context, consultantID uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM job_queries q
		JOIN jobs j ON j.id = q.job_id
		WHERE j.consultant_id=? AND q.is_resolved=0`, consultantID).Scan(&n)
	return n, err
}

func (r *QueryRepo) SetResolved(ctx context.Context, id uint64, resolved bool) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE job_queries SET is_resolved=? WHERE id=?", resolved, id)
	return requireRow(res, err)
}

func (r *QueryRepo) AddReply(ctx context.Context, rep model.JobQueryReply) (model.JobQueryReply, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO job_query_replies (query_id, user_id, message) VALUES (?,?,?)", rep.QueryID, rep.UserID, rep.Message)
	if err != nil {
		return model.JobQueryReply{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.JobQueryReply{}, err
	}
	var out model.JobQueryReply
	err = r.DB.QueryRowContext(ctx, `SELECT rp.id,rp.query_id,rp.user_id,rp.message,rp.created_at,u.email
		FROM job_query_replies rp JOIN users u ON u.id = rp.user_id WHERE rp.id=?`, id).
		Scan(&out.ID, &out.QueryID, &out.UserID, &out.Message, &out.CreatedAt, &out.AuthorEmail)
	return out, notFound(err)
}

// ListReplies loads the replies of the given queries, oldest first.
func (r *QueryRepo) ListReplies(ctx context.Context, queryIDs []uint64) ([]model.JobQueryReply, error) {
	if len(queryIDs) == 0 {
		return []model.JobQueryReply{}, nil
	}
	marks := strings.TrimSuffix(strings.Repeat("?,", len(queryIDs)), ",")
	args := make([]any, len(queryIDs))
	for i, id := range queryIDs {
		args[i] = id
	}
	rows, err := r.DB.QueryContext(ctx, `SELECT rp.id,rp.query_id,rp.user_id,rp.message,rp.created_at,u.email
		FROM job_query_replies rp JOIN users u ON u.id = rp.user_id
		WHERE rp.query_id IN (`+marks+`) ORDER BY rp.created_at ASC, rp.id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.JobQueryReply{}
	for rows.Next() {
		var rep model.JobQueryReply
		if err := rows.Scan(&rep.ID, &rep.QueryID, &rep.UserID, &rep.Message, &rep.CreatedAt, &rep.AuthorEmail); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r *QueryRepo) list(ctx context.Context, tail string, args ...any) ([]model.JobQuery, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+queryColumns+queryFrom+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.JobQuery{}
	for rows.Next() {
		q, err := scanQuery(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func scanQuery(row rowScanner) (model.JobQuery, error) {
	var q model.JobQuery
	err := row.Scan(&q.ID, &q.JobID, &q.UserID, &q.Question, &q.IsResolved, &q.CreatedAt, &q.JobTitle, &q.AskerEmail)
	if err != nil {
		return model.JobQuery{}, notFound(err)
	}
	return q, nil
}
