package domain

import "time"

// Shift is one scheduled work block for one practitioner.
// Date is YYYY-MM-DD, StartTime/EndTime are HH:MM local time.
// Shifts are never hard-deleted; Active=false is the tombstone
// and every "current" query must filter on it.
type Shift struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	Date      string `gorm:"index"`
	StartTime string
	EndTime   string
	Location  string
	Notes     string
	Active    bool `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
