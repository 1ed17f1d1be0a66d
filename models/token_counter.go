package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderTokenCounter hands out the per-(branch, calendar day) sequence used
// for customer-visible order tokens. DateKey is YYYYMMDD.
type OrderTokenCounter struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BranchID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_branch_date" json:"branch_id"`
	DateKey   string    `gorm:"not null;uniqueIndex:idx_branch_date" json:"date_key"`
	Seq       int       `gorm:"not null;default:0" json:"seq"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DateKeyFor formats t as the counter date key.
func DateKeyFor(t time.Time) string {
	return t.Format("20060102")
}

// NextToken atomically increments and returns the next sequence value for
// the (branch, day) pair, creating the counter row at 1 if absent. The
// increment happens inside a single upsert statement so the database
// serializes concurrent callers; two callers can never observe the same
// value. Must not be rewritten as read-then-write in application code.
func NextToken(db *gorm.DB, branchID uuid.UUID, dateKey string) (int, error) {
	now := time.Now()
	var seq int
	err := db.Raw(`
		INSERT INTO order_token_counters (id, branch_id, date_key, seq, created_at, updated_at)
		VALUES (?, ?, ?, 1, ?, ?)
		ON CONFLICT (branch_id, date_key)
		DO UPDATE SET seq = order_token_counters.seq + 1, updated_at = ?
		RETURNING seq
	`, uuid.New(), branchID, dateKey, now, now, now).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}
