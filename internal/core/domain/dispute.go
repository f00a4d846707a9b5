package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DisputeStatus is the state of an advertiser ticket.
type DisputeStatus string

const (
	DisputeOpen          DisputeStatus = "open"
	DisputeInvestigation DisputeStatus = "investigation"
	DisputeResolved      DisputeStatus = "resolved"
	DisputeClosed        DisputeStatus = "closed"
)

// disputeNext maps each status to its only forward successor.
var disputeNext = map[DisputeStatus]DisputeStatus{
	DisputeOpen:          DisputeInvestigation,
	DisputeInvestigation: DisputeResolved,
	DisputeResolved:      DisputeClosed,
}

func (s DisputeStatus) Valid() bool {
	switch s {
	case DisputeOpen, DisputeInvestigation, DisputeResolved, DisputeClosed:
		return true
	}
	return false
}

// RequiresResponse reports whether entering s needs an admin response.
func (s DisputeStatus) RequiresResponse() bool {
	return s == DisputeResolved || s == DisputeClosed
}

// Dispute is a ticket raised by an advertiser about a campaign.
type Dispute struct {
	ID            int64         `json:"id"`
	AdvertiserID  uuid.UUID     `json:"advertiser_id"`
	CampaignID    *int64        `json:"campaign_id,omitempty"`
	Subject       string        `json:"subject"`
	Description   string        `json:"description"`
	Status        DisputeStatus `json:"status"`
	AdminResponse *string       `json:"admin_response,omitempty"`
	HandledBy     *uuid.UUID    `json:"handled_by,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Advance validates moving d to `to`. Only the single forward step is
// allowed; resolved and closed need a non-empty response.
func (d *Dispute) Advance(to DisputeStatus, response string) error {
	if !to.Valid() {
		return NewValidationError("INVALID_STATUS", fmt.Sprintf("unknown dispute status %q", to))
	}
	if next, ok := disputeNext[d.Status]; !ok || next != to {
		return NewConflictError(
			"ILLEGAL_TRANSITION",
			fmt.Sprintf("dispute cannot move from %s to %s", d.Status, to),
			ErrIllegalTransition,
		)
	}
	response = strings.TrimSpace(response)
	if to.RequiresResponse() && response == "" {
		return NewValidationDetails("admin response required", map[string]string{
			"admin_response": "admin response is required to " + string(to) + " a dispute",
		})
	}
	return nil
}
