package reservation

import (
	"context"
	"fmt"
	"log"
	"time"

	"roomreserve/internal/audit"
	"roomreserve/internal/mirror"
	"roomreserve/internal/sheet"
)

// Service runs the reservation workflow against the grid store, with an
// optional Postgres mirror and decision audit trail. The grid write is the
// commit point; mirror and audit failures are logged, never surfaced.
type Service struct {
	Grid   sheet.Store
	Mirror *mirror.Repository
	Audit  *audit.Repository

	// Now is injectable for tests; nil means time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) List(ctx context.Context) ([]Record, error) {
	values, err := s.Grid.Read(ctx)
	if err != nil {
		return nil, err
	}
	m := sheet.NewMatrix(values)

	out := make([]Record, 0, len(m.Rows))
	for _, row := range m.Rows {
		out = append(out, Normalize(m, row))
	}
	return out, nil
}

type SubmitInput struct {
	Email     string `json:"email"`
	StudentID string `json:"studentId"`
	Room      string `json:"room"`
	Date      string `json:"date"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Reason    string `json:"reason"`
}

type SubmitResult struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
}

// Submit appends one PENDING row. Cells are placed by header name with
// alias fallback, never by fixed position, so the append survives column
// reordering. The id column must exist; fields whose column is absent under
// every alias are dropped.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	values, err := s.Grid.Read(ctx)
	if err != nil {
		return nil, err
	}
	m := sheet.NewMatrix(values)

	if _, ok := m.Lookup(colID...); !ok {
		return nil, fmt.Errorf("%w: %s", ErrSchemaIncomplete, colID[0])
	}

	id, err := NewID()
	if err != nil {
		return nil, err
	}
	now := s.now().UTC().Format(time.RFC3339)

	row := make([]string, len(m.Headers))
	place := func(aliases []string, v string) {
		if col, ok := m.Lookup(aliases...); ok {
			row[col] = v
		}
	}
	place(colCreatedAt, now)
	place(colEmail, in.Email)
	place(colStudentID, in.StudentID)
	place(colRoom, in.Room)
	place(colDate, in.Date)
	place(colStart, in.Start)
	place(colEnd, in.End)
	place(colReason, in.Reason)
	place(colStatus, StatusPending)
	place(colUpdatedAt, now)
	place(colID, id)

	if err := s.Grid.Append(ctx, row); err != nil {
		return nil, err
	}

	if s.Mirror != nil {
		err := s.Mirror.Insert(ctx, mirror.Reservation{
			ID:        id,
			Email:     in.Email,
			StudentID: in.StudentID,
			Room:      in.Room,
			Date:      in.Date,
			Start:     in.Start,
			End:       in.End,
			Reason:    in.Reason,
			Status:    StatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			log.Printf("[reservation] mirror insert %s failed: %v", id, err)
		}
	}

	return &SubmitResult{ID: id, CreatedAt: now}, nil
}

// Decide applies APPROVED or DENIED to the row carrying id, writing exactly
// the status and updated-at cells in one grouped update. Any failure aborts
// before the write, so a partially decided row is never observable.
//
// Known race: two decisions on the same id can interleave between the read
// and the write, and the later save wins. The grid has no version column to
// compare-and-swap against, so the behavior is kept rather than half-fixed.
func (s *Service) Decide(ctx context.Context, id, decision, actor string) error {
	if decision != StatusApproved && decision != StatusDenied {
		return fmt.Errorf("%w: %q", ErrInvalidDecision, decision)
	}

	values, err := s.Grid.Read(ctx)
	if err != nil {
		return err
	}
	m := sheet.NewMatrix(values)

	idCol, ok := m.Lookup(colID...)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSchemaIncomplete, colID[0])
	}
	statusCol, ok := m.Lookup(colStatus...)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSchemaIncomplete, colStatus[0])
	}
	updatedCol, ok := m.Lookup(colUpdatedAt...)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSchemaIncomplete, colUpdatedAt[0])
	}

	rowIdx, ok := LocateRow(m.Rows, idCol, id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	// Data indexes are zero-based and row 1 holds the header.
	rowNumber := rowIdx + 2
	now := s.now().UTC().Format(time.RFC3339)

	err = s.Grid.BatchUpdate(ctx, []sheet.CellUpdate{
		{Ref: sheet.A1(statusCol, rowNumber), Value: decision},
		{Ref: sheet.A1(updatedCol, rowNumber), Value: now},
	})
	if err != nil {
		return err
	}

	if s.Mirror != nil {
		if err := s.Mirror.UpdateStatus(ctx, id, decision, now); err != nil {
			log.Printf("[reservation] mirror update %s failed: %v", id, err)
		}
	}
	if s.Audit != nil {
		if err := s.Audit.Insert(ctx, id, decision, actor); err != nil {
			log.Printf("[reservation] audit insert %s failed: %v", id, err)
		}
	}
	return nil
}
