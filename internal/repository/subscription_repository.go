package repository

import (
	"context"
	"database/sql"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/model"
)

// SubscriptionRepo stores one subscription row per user.
type SubscriptionRepo struct{ DB *sql.DB }

func NewSubscriptionRepo(db *sql.DB) *SubscriptionRepo { return &SubscriptionRepo{DB: db} }

func (r *SubscriptionRepo) Get(ctx context.Context, userID uint64) (model.Subscription, error) {
	var (
		s    model.Subscription
		plan string
		end  sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, `SELECT id,user_id,plan,start_date,end_date,is_active,created_at,updated_at
		FROM subscriptions WHERE user_id=? LIMIT 1`, userID).
		Scan(&s.ID, &s.UserID, &plan, &s.StartDate, &end, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return model.Subscription{}, notFound(err)
	}
	s.Plan = model.Plan(plan)
	s.EndDate = nullTime(end)
	return s, nil
}

// Create inserts s. A second row for the same user yields ErrConflict.
func (r *SubscriptionRepo) Create(ctx context.Context, s model.Subscription) (model.Subscription, error) {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO subscriptions (user_id, plan, start_date, end_date, is_active) VALUES (?,?,?,?,?)",
		s.UserID, string(s.Plan), s.StartDate.UTC(), timeArg(s.EndDate), s.IsActive)
	if err != nil {
		if isDuplicate(err) {
			return model.Subscription{}, ErrConflict
		}
		return model.Subscription{}, err
	}
	return r.Get(ctx, s.UserID)
}

// Update writes plan, dates and the active flag for s.UserID.
func (r *SubscriptionRepo) Update(ctx context.Context, s model.Subscription) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE subscriptions SET plan=?, start_date=?, end_date=?, is_active=? WHERE user_id=?",
		string(s.Plan), s.StartDate.UTC(), timeArg(s.EndDate), s.IsActive, s.UserID)
	return requireRow(res, err)
}
