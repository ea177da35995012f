// Package mirror keeps a Postgres copy of the reservation grid for ad-hoc
// querying. The workbook stays the record of truth; mirror writes are
// best-effort and there is no transaction spanning the two stores.
package mirror

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Reservation is the document-store shape of one grid row. Dates and times
// stay strings: they travel through the sheet as entered and the mirror
// must not reinterpret them.
type Reservation struct {
	ID        string
	Email     string
	StudentID string
	Room      string
	Date      string
	Start     string
	End       string
	Reason    string
	Status    string
	CreatedAt string
	UpdatedAt string
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, res Reservation) error {
	const q = `
INSERT INTO reservations (id, email, student_id, room, date, start_time, end_time, reason, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO NOTHING
`
	_, err := r.db.Exec(ctx, q,
		res.ID, res.Email, res.StudentID, res.Room, res.Date, res.Start, res.End,
		res.Reason, res.Status, res.CreatedAt, res.UpdatedAt,
	)
	return err
}

func (r *Repository) UpdateStatus(ctx context.Context, id, status, updatedAt string) error {
	const q = `
UPDATE reservations
SET status = $1, updated_at = $2
WHERE id = $3
`
	_, err := r.db.Exec(ctx, q, status, updatedAt, id)
	return err
}
