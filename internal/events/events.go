package events

import (
	"encoding/json"
	"fmt"
)

// Routing keys published by the scheduler and consumed by the
// notification worker.
const (
	RKShiftAssigned = "shift.assigned"
	RKSwapRequested = "swap.requested"
	RKSwapApproved  = "swap.approved"
	RKSwapRejected  = "swap.rejected"
)

type ShiftAssigned struct {
	ShiftID  string `json:"shift_id"`
	UserID   string `json:"user_id"`
	Date     string `json:"date"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Location string `json:"location"`
}

type SwapRequested struct {
	SwapID      string `json:"swap_id"`
	RequesterID string `json:"requester_id"`
	TargetID    string `json:"target_id"`
	SwapType    string `json:"swap_type"`
}

// SwapDecided is shared by swap.approved and swap.rejected.
type SwapDecided struct {
	SwapID        string `json:"swap_id"`
	RequesterID   string `json:"requester_id"`
	TargetID      string `json:"target_id"`
	SwapType      string `json:"swap_type"`
	AdminResponse string `json:"admin_response,omitempty"`
}

func MustUnmarshal[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload failed: %w", err)
	}
	return t, nil
}
