package reservation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"roomreserve/internal/sheet"
)

// fakeStore is an in-memory grid that counts writes and applies batch
// updates by native reference, mimicking the workbook semantics.
type fakeStore struct {
	values  [][]string
	appends [][]string
	batches [][]sheet.CellUpdate
	readErr error
}

func (f *fakeStore) Read(ctx context.Context) ([][]string, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	out := make([][]string, len(f.values))
	for i, r := range f.values {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

func (f *fakeStore) Append(ctx context.Context, row []string) error {
	f.appends = append(f.appends, append([]string(nil), row...))
	f.values = append(f.values, append([]string(nil), row...))
	return nil
}

func (f *fakeStore) BatchUpdate(ctx context.Context, updates []sheet.CellUpdate) error {
	f.batches = append(f.batches, updates)
	for _, u := range updates {
		f.apply(u)
	}
	return nil
}

func (f *fakeStore) apply(u sheet.CellUpdate) {
	i := 0
	for i < len(u.Ref) && u.Ref[i] >= 'A' && u.Ref[i] <= 'Z' {
		i++
	}
	col := 0
	for _, ch := range u.Ref[:i] {
		col = col*26 + int(ch-'A') + 1
	}
	col--
	rowNumber, err := strconv.Atoi(u.Ref[i:])
	if err != nil {
		panic(fmt.Sprintf("bad ref %q", u.Ref))
	}
	row := rowNumber - 1
	for len(f.values) <= row {
		f.values = append(f.values, nil)
	}
	for len(f.values[row]) <= col {
		f.values[row] = append(f.values[row], "")
	}
	f.values[row][col] = u.Value
}

func (f *fakeStore) writeCount() int {
	return len(f.appends) + len(f.batches)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var t0 = time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)

func pendingGrid() *fakeStore {
	return &fakeStore{values: [][]string{
		{"타임스탬프", "이메일 주소", "학번", "특별실", "예약일", "시작시간", "종료시간", "사유", "_Status", "_UpdatedAt", "_ID"},
		{"t0", "a@school.org", "20250001", "lab", "2025-04-10", "09:00", "10:00", "", "PENDING", "t0", "AAAA000001"},
		{"t0", "b@school.org", "20250002", "gym", "2025-04-11", "10:00", "11:00", "practice", "PENDING", "t0", "BBBB000002"},
	}}
}

func TestDecide_UpdatesExactlyTwoCells(t *testing.T) {
	store := pendingGrid()
	before, _ := store.Read(context.Background())
	svc := &Service{Grid: store, Now: fixedClock(t0)}

	if err := svc.Decide(context.Background(), "BBBB000002", StatusApproved, "kim.teacher@school.org"); err != nil {
		t.Fatalf("decide: %v", err)
	}

	if len(store.batches) != 1 {
		t.Fatalf("batches = %d, want exactly one grouped write", len(store.batches))
	}
	batch := store.batches[0]
	if len(batch) != 2 {
		t.Fatalf("cells in batch = %d, want 2", len(batch))
	}
	// _Status is column I, _UpdatedAt is J; the target is the second data
	// row, sheet row 3.
	if batch[0].Ref != "I3" || batch[0].Value != StatusApproved {
		t.Fatalf("status update = %+v", batch[0])
	}
	if batch[1].Ref != "J3" || batch[1].Value != t0.Format(time.RFC3339) {
		t.Fatalf("updatedAt update = %+v", batch[1])
	}

	// Every other cell stays byte-identical.
	after, _ := store.Read(context.Background())
	for r := range before {
		for c := range before[r] {
			if r == 2 && (c == 8 || c == 9) {
				continue
			}
			if before[r][c] != after[r][c] {
				t.Fatalf("cell (%d,%d) changed: %q → %q", r, c, before[r][c], after[r][c])
			}
		}
	}
}

func TestDecide_NotFoundPerformsZeroWrites(t *testing.T) {
	store := pendingGrid()
	svc := &Service{Grid: store, Now: fixedClock(t0)}

	err := svc.Decide(context.Background(), "ZZZZ999999", StatusDenied, "kim.teacher@school.org")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if store.writeCount() != 0 {
		t.Fatalf("writes = %d, want 0", store.writeCount())
	}
}

func TestDecide_InvalidDecisionRejectedBeforeAnyRead(t *testing.T) {
	store := pendingGrid()
	store.readErr = errors.New("store must not be touched")
	svc := &Service{Grid: store, Now: fixedClock(t0)}

	err := svc.Decide(context.Background(), "AAAA000001", "MAYBE", "kim.teacher@school.org")
	if !errors.Is(err, ErrInvalidDecision) {
		t.Fatalf("err = %v, want ErrInvalidDecision", err)
	}
	if store.writeCount() != 0 {
		t.Fatalf("writes = %d, want 0", store.writeCount())
	}
}

func TestDecide_MissingStatusColumn(t *testing.T) {
	store := &fakeStore{values: [][]string{
		{"_ID", "_UpdatedAt"},
		{"X1", "t0"},
	}}
	svc := &Service{Grid: store, Now: fixedClock(t0)}

	err := svc.Decide(context.Background(), "X1", StatusApproved, "kim.teacher@school.org")
	if !errors.Is(err, ErrSchemaIncomplete) {
		t.Fatalf("err = %v, want ErrSchemaIncomplete", err)
	}
	if store.writeCount() != 0 {
		t.Fatalf("writes = %d, want 0", store.writeCount())
	}
}

func TestDecide_MissingUpdatedAtColumn(t *testing.T) {
	store := &fakeStore{values: [][]string{
		{"_ID", "_Status"},
		{"X1", "PENDING"},
	}}
	svc := &Service{Grid: store, Now: fixedClock(t0)}

	err := svc.Decide(context.Background(), "X1", StatusApproved, "kim.teacher@school.org")
	if !errors.Is(err, ErrSchemaIncomplete) {
		t.Fatalf("err = %v, want ErrSchemaIncomplete", err)
	}
	if store.writeCount() != 0 {
		t.Fatalf("writes = %d, want 0", store.writeCount())
	}
}

func TestDecide_DuplicateIdsHitFirstRow(t *testing.T) {
	store := &fakeStore{values: [][]string{
		{"_ID", "_Status", "_UpdatedAt"},
		{"X", "PENDING", "t0"},
		{"X", "PENDING", "t0"},
	}}
	svc := &Service{Grid: store, Now: fixedClock(t0)}

	if err := svc.Decide(context.Background(), "X", StatusDenied, "kim.teacher@school.org"); err != nil {
		t.Fatalf("decide: %v", err)
	}
	if store.values[1][1] != StatusDenied {
		t.Fatalf("first duplicate untouched: %v", store.values[1])
	}
	if store.values[2][1] != StatusPending {
		t.Fatalf("second duplicate must stay pending: %v", store.values[2])
	}
}

func TestDecide_AliasColumns(t *testing.T) {
	store := &fakeStore{values: [][]string{
		{"id", "status", "updatedAt"},
		{"X1", "PENDING", "t0"},
	}}
	svc := &Service{Grid: store, Now: fixedClock(t0)}

	if err := svc.Decide(context.Background(), "X1", StatusApproved, "kim.teacher@school.org"); err != nil {
		t.Fatalf("decide with legacy headers: %v", err)
	}
	if store.values[1][1] != StatusApproved {
		t.Fatalf("row = %v", store.values[1])
	}
}

func TestSubmit_AppendsHeaderDrivenRow(t *testing.T) {
	store := pendingGrid()
	svc := &Service{Grid: store, Now: fixedClock(t0)}

	res, err := svc.Submit(context.Background(), SubmitInput{
		Email:     "c@school.org",
		StudentID: "20250003",
		Room:      "과학실",
		Date:      "2025-04-12",
		Start:     "13:00",
		End:       "14:00",
		Reason:    "experiment",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(res.ID) != 10 {
		t.Fatalf("id = %q, want 10 chars", res.ID)
	}
	if res.CreatedAt != t0.Format(time.RFC3339) {
		t.Fatalf("createdAt = %q", res.CreatedAt)
	}

	if len(store.appends) != 1 {
		t.Fatalf("appends = %d, want 1", len(store.appends))
	}
	row := store.appends[0]
	if len(row) != 11 {
		t.Fatalf("row width = %d, want header width 11", len(row))
	}
	if row[1] != "c@school.org" || row[3] != "과학실" || row[8] != StatusPending || row[10] != res.ID {
		t.Fatalf("row = %v", row)
	}
}

func TestSubmit_PlacementFollowsReorderedHeaders(t *testing.T) {
	store := &fakeStore{values: [][]string{
		{"_ID", "특별실", "이메일 주소", "_Status", "_UpdatedAt"},
	}}
	svc := &Service{Grid: store, Now: fixedClock(t0)}

	res, err := svc.Submit(context.Background(), SubmitInput{
		Email: "d@school.org", StudentID: "20250004", Room: "lab",
		Date: "2025-04-13", Start: "09:00", End: "10:00",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	row := store.appends[0]
	if row[0] != res.ID || row[1] != "lab" || row[2] != "d@school.org" || row[3] != StatusPending {
		t.Fatalf("row = %v; placement must follow the live header order", row)
	}
}

func TestSubmit_MissingIDColumn(t *testing.T) {
	store := &fakeStore{values: [][]string{
		{"이메일 주소", "특별실"},
	}}
	svc := &Service{Grid: store, Now: fixedClock(t0)}

	_, err := svc.Submit(context.Background(), SubmitInput{
		Email: "e@school.org", StudentID: "20250005", Room: "lab",
		Date: "2025-04-14", Start: "09:00", End: "10:00",
	})
	if !errors.Is(err, ErrSchemaIncomplete) {
		t.Fatalf("err = %v, want ErrSchemaIncomplete", err)
	}
	if store.writeCount() != 0 {
		t.Fatalf("writes = %d, want 0", store.writeCount())
	}
}

func TestList_NormalizesAllRows(t *testing.T) {
	store := pendingGrid()
	svc := &Service{Grid: store, Now: fixedClock(t0)}

	rows, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].ID != "AAAA000001" || rows[0].Status != StatusPending {
		t.Fatalf("rows[0] = %+v", rows[0])
	}
}

func TestSubmitDecideListFlow(t *testing.T) {
	store := pendingGrid()
	clock := t0
	svc := &Service{Grid: store, Now: func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}}
	ctx := context.Background()

	res, err := svc.Submit(ctx, SubmitInput{
		Email: "f@school.org", StudentID: "20250006", Room: "강당",
		Date: "2025-04-15", Start: "15:00", End: "16:00", Reason: "rehearsal",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	rows, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got *Record
	for i := range rows {
		if rows[i].ID == res.ID {
			got = &rows[i]
		}
	}
	if got == nil || got.Status != StatusPending {
		t.Fatalf("submitted row = %+v, want PENDING", got)
	}

	if err := svc.Decide(ctx, res.ID, StatusApproved, "kim.teacher@school.org"); err != nil {
		t.Fatalf("decide: %v", err)
	}

	rows, err = svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got = nil
	for i := range rows {
		if rows[i].ID == res.ID {
			got = &rows[i]
		}
	}
	if got == nil || got.Status != StatusApproved {
		t.Fatalf("decided row = %+v, want APPROVED", got)
	}
	if !(got.UpdatedAt > res.CreatedAt) {
		t.Fatalf("updatedAt %q must sort after createdAt %q", got.UpdatedAt, res.CreatedAt)
	}
}
