package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert records one applied decision. actor is the teacher email from the
// verified identity.
func (r *Repository) Insert(ctx context.Context, reservationID, decision, actor string) error {
	const q = `
INSERT INTO decision_audit (id, reservation_id, decision, actor)
VALUES ($1, $2, $3, $4)
`
	_, err := r.db.Exec(ctx, q, uuid.NewString(), reservationID, decision, actor)
	return err
}
