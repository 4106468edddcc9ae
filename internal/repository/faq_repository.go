package repository

import (
	"context"
	"database/sql"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
)

// FAQRepo stores chatbot entries. List returns them in insertion order,
// which is the order the matcher scans them in.
type FAQRepo struct{ DB *sql.DB }

func NewFAQRepo(db *sql.DB) *FAQRepo { return &FAQRepo{DB: db} }

func (r *FAQRepo) List(ctx context.Context) ([]model.FAQ, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id,question,answer,keywords,created_at FROM chatbot_faqs ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.FAQ{}
	for rows.Next() {
		var f model.FAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.Keywords, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *FAQRepo) Create(ctx context.Context, f model.FAQ) (model.FAQ, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO chatbot_faqs (question, answer, keywords) VALUES (?,?,?)", f.Question, f.Answer, f.Keywords)
	if err != nil {
		return model.FAQ{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.FAQ{}, err
	}
	err = r.DB.QueryRowContext(ctx, "SELECT id,question,answer,keywords,created_at FROM chatbot_faqs WHERE id=?", id).
		Scan(&f.ID, &f.Question, &f.Answer, &f.Keywords, &f.CreatedAt)
	return f, notFound(err)
}
