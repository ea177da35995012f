package reservation

import "roomreserve/internal/sheet"

// Record is the canonical read model of one grid row. Records are ephemeral
// snapshots; the grid stays the sole durable owner.
type Record struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	StudentID string `json:"studentId"`
	Room      string `json:"room"`
	Date      string `json:"date"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updatedAt"`
}

// Statuses a record can carry. PENDING is implied when the cell is empty.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusDenied   = "DENIED"
)

// Column aliases. The sheet started life as a Korean form export; columns
// written by this service use the underscore machine names. Each field tries
// the form header first, then the machine name, so both header generations
// keep working without migration.
var (
	colID        = []string{"_ID", "id"}
	colEmail     = []string{"이메일 주소", "email"}
	colStudentID = []string{"학번", "studentId"}
	colRoom      = []string{"특별실", "room"}
	colDate      = []string{"예약일", "date"}
	colStart     = []string{"시작시간", "start"}
	colEnd       = []string{"종료시간", "end"}
	colReason    = []string{"사유", "reason"}
	colStatus    = []string{"_Status", "status"}
	colUpdatedAt = []string{"_UpdatedAt", "updatedAt"}
	colCreatedAt = []string{"타임스탬프", "createdAt"}
)

// Normalize builds a Record from one data row. Pure: same row in, same
// record out.
func Normalize(m sheet.Matrix, row []string) Record {
	rec := Record{
		ID:        fieldValue(m, row, colID),
		Email:     fieldValue(m, row, colEmail),
		StudentID: fieldValue(m, row, colStudentID),
		Room:      fieldValue(m, row, colRoom),
		Date:      fieldValue(m, row, colDate),
		Start:     fieldValue(m, row, colStart),
		End:       fieldValue(m, row, colEnd),
		Reason:    fieldValue(m, row, colReason),
		Status:    fieldValue(m, row, colStatus),
		UpdatedAt: fieldValue(m, row, colUpdatedAt),
	}
	if rec.Status == "" {
		rec.Status = StatusPending
	}
	return rec
}

// fieldValue walks the alias list and returns the first non-empty cell. An
// empty primary cell falls through to the legacy column, which is how rows
// read correctly while both header generations coexist in one sheet.
func fieldValue(m sheet.Matrix, row []string, aliases []string) string {
	for _, name := range aliases {
		if col, ok := m.Lookup(name); ok {
			if v := sheet.Cell(row, col); v != "" {
				return v
			}
		}
	}
	return ""
}
