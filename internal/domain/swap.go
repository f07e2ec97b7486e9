package domain

import "time"

type SwapType string

const (
	// SwapExchange trades both parties' shifts with each other.
	SwapExchange SwapType = "EXCHANGE"
	// SwapCoverage hands the requester's shift to the target; the
	// requester gets nothing in return.
	SwapCoverage SwapType = "COVERAGE"
)

type SwapStatus string

const (
	SwapPending  SwapStatus = "PENDING"
	SwapApproved SwapStatus = "APPROVED"
	SwapRejected SwapStatus = "REJECTED"
)

// SwapRequest is a practitioner's proposal to exchange or hand off a
// shift, subject to admin approval. TargetShiftID is set exactly when
// SwapType is EXCHANGE; it stays NULL for COVERAGE.
type SwapRequest struct {
	ID               string `gorm:"primaryKey"`
	RequesterID      string `gorm:"index"`
	TargetUserID     string `gorm:"index"`
	RequesterShiftID string
	TargetShiftID    *string
	SwapType         SwapType
	Reason           string
	Status           SwapStatus `gorm:"index"`
	AdminResponse    string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
