package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CampaignStatus is the lifecycle state of a campaign.
type CampaignStatus string

const (
	CampaignDraft          CampaignStatus = "DRAFT"
	CampaignPendingPayment CampaignStatus = "PENDING_PAYMENT"
	CampaignActive         CampaignStatus = "ACTIVE"
	CampaignPaused         CampaignStatus = "PAUSED"
	CampaignCompleted      CampaignStatus = "COMPLETED"
	CampaignExpired        CampaignStatus = "EXPIRED"
	CampaignRejected       CampaignStatus = "REJECTED"
)

// AllCampaignStatuses lists every state of the machine.
var AllCampaignStatuses = []CampaignStatus{
	CampaignDraft,
	CampaignPendingPayment,
	CampaignActive,
	CampaignPaused,
	CampaignCompleted,
	CampaignExpired,
	CampaignRejected,
}

func (s CampaignStatus) String() string { return string(s) }

// Valid reports whether s is a known status.
func (s CampaignStatus) Valid() bool {
	for _, v := range AllCampaignStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no event can move a campaign out of s.
func (s CampaignStatus) Terminal() bool {
	return s == CampaignRejected || s == CampaignCompleted || s == CampaignExpired
}

// CampaignEvent drives a campaign transition.
type CampaignEvent string

const (
	EventSubmit  CampaignEvent = "submit"
	EventFund    CampaignEvent = "fund"
	EventReject  CampaignEvent = "reject"
	EventPause   CampaignEvent = "pause"
	EventResume  CampaignEvent = "resume"
	EventExhaust CampaignEvent = "exhaust"
	EventExpire  CampaignEvent = "expire"
)

// AllCampaignEvents lists every event of the machine.
var AllCampaignEvents = []CampaignEvent{
	EventSubmit, EventFund, EventReject, EventPause, EventResume, EventExhaust, EventExpire,
}

type transitionKey struct {
	from  CampaignStatus
	event CampaignEvent
}

// campaignTransitions is the complete transition table. Anything absent is
// illegal.
var campaignTransitions = map[transitionKey]CampaignStatus{
	{CampaignDraft, EventSubmit}:          CampaignPendingPayment,
	{CampaignPendingPayment, EventFund}:   CampaignActive,
	{CampaignPendingPayment, EventReject}: CampaignRejected,
	{CampaignActive, EventPause}:          CampaignPaused,
	{CampaignPaused, EventResume}:         CampaignActive,
	{CampaignActive, EventExhaust}:        CampaignCompleted,
	{CampaignActive, EventExpire}:         CampaignExpired,
	{CampaignPendingPayment, EventExpire}: CampaignExpired,
	{CampaignDraft, EventExpire}:          CampaignExpired,
}

// NextCampaignStatus applies event to from. It returns ErrIllegalTransition
// wrapped in a conflict error when the pair is not in the table.
func NextCampaignStatus(from CampaignStatus, event CampaignEvent) (CampaignStatus, error) {
	to, ok := campaignTransitions[transitionKey{from, event}]
	if !ok {
		return from, NewConflictError(
			"ILLEGAL_TRANSITION",
			fmt.Sprintf("cannot %s a campaign in status %s", event, from),
			ErrIllegalTransition,
		)
	}
	return to, nil
}

// SourcesFor returns every status from which event is legal.
func SourcesFor(event CampaignEvent) []CampaignStatus {
	var out []CampaignStatus
	for _, s := range AllCampaignStatuses {
		if _, ok := campaignTransitions[transitionKey{s, event}]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Campaign represents an advertising campaign.
// Budgets are stored in integer units (e.g. cents).
type Campaign struct {
	ID                 int64          `json:"id"`
	AdvertiserID       uuid.UUID      `json:"advertiser_id"`
	Name               string         `json:"name"`
	Budget             int64          `json:"budget"`
	DailyBudget        *int64         `json:"daily_budget,omitempty"`
	TargetImpressions  *int64         `json:"target_impressions,omitempty"`
	CurrentImpressions int64          `json:"current_impressions"`
	CurrentClicks      int64          `json:"current_clicks"`
	ViewsDelivered     int64          `json:"views_delivered"`
	Spent              int64          `json:"spent"`
	SpentToday         int64          `json:"spent_today"`
	SpentDay           time.Time      `json:"-"` // UTC day SpentToday belongs to
	StartDate          time.Time      `json:"start_date"`
	EndDate            time.Time      `json:"end_date"`
	Status             CampaignStatus `json:"status"`
	FundedAt           *time.Time     `json:"funded_at,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// RemainingBudget is the unspent part of the budget.
func (c *Campaign) RemainingBudget() int64 {
	return c.Budget - c.Spent
}

// InWindow reports whether now lies within [StartDate, EndDate].
func (c *Campaign) InWindow(now time.Time) bool {
	return !now.Before(c.StartDate) && !now.After(c.EndDate)
}

// Servable reports whether the campaign may deliver impressions at now.
func (c *Campaign) Servable(now time.Time) bool {
	return c.Status == CampaignActive && c.InWindow(now)
}

// TargetReached reports whether the impression target, when set, is met.
func (c *Campaign) TargetReached() bool {
	return c.TargetImpressions != nil && c.CurrentImpressions >= *c.TargetImpressions
}

func (c *Campaign) spentOn(day time.Time) int64 {
	if c.SpentDay.Equal(day) {
		return c.SpentToday
	}
	return 0
}

// Debit applies one impression at price to c, as a single decision. It is
// the in-process form of the conditional update the postgres repository
// runs; callers must hold whatever lock serialises access to c.
//
// On exhaustion the campaign is moved to COMPLETED and ErrBudgetExhausted is
// returned. A daily-cap miss returns ErrDailyCapReached and leaves c
// untouched.
func (c *Campaign) Debit(price int64, now time.Time) error {
	if !c.Servable(now) {
		return ErrCampaignNotServable
	}
	if c.RemainingBudget() < price || (c.TargetImpressions != nil && c.CurrentImpressions+1 > *c.TargetImpressions) {
		c.Status = CampaignCompleted
		c.UpdatedAt = now
		return ErrBudgetExhausted
	}
	day := UTCDay(now)
	if c.DailyBudget != nil && c.spentOn(day)+price > *c.DailyBudget {
		return ErrDailyCapReached
	}
	c.SpentToday = c.spentOn(day) + price
	c.SpentDay = day
	c.Spent += price
	c.CurrentImpressions++
	if c.RemainingBudget() == 0 || c.TargetReached() {
		c.Status = CampaignCompleted
	}
	c.UpdatedAt = now
	return nil
}

// FundingOutcome is the event applied to a campaign whose payment is
// confirmed at now: fund while the window is still open, expire otherwise.
func (c *Campaign) FundingOutcome(now time.Time) CampaignEvent {
	if now.After(c.EndDate) {
		return EventExpire
	}
	return EventFund
}

// FundedStatus returns the status the campaign moves to when its payment
// is confirmed at now, and false when the current status admits no funding
// transition.
func (c *Campaign) FundedStatus(now time.Time) (CampaignStatus, bool) {
	to, err := NextCampaignStatus(c.Status, c.FundingOutcome(now))
	if err != nil {
		return c.Status, false
	}
	return to, true
}

// CanResume reports whether a paused campaign may go back to ACTIVE.
func (c *Campaign) CanResume(now time.Time) bool {
	return c.Status == CampaignPaused && c.InWindow(now) && c.RemainingBudget() > 0 && !c.TargetReached()
}

// Editable reports whether commercial fields may still change. Once the
// campaign is submitted for funding its budget is fixed.
func (c *Campaign) Editable() bool {
	return c.Status == CampaignDraft
}

// NewCampaign holds the advertiser-supplied fields of a campaign. Status and
// counters are never taken from input.
type NewCampaign struct {
	Name              string
	Budget            int64
	DailyBudget       *int64
	TargetImpressions *int64
	StartDate         time.Time
	EndDate           time.Time
}

// Validate checks the shape of a new campaign.
func (n NewCampaign) Validate() error {
	details := map[string]string{}
	if n.Name == "" {
		details["name"] = "name is required"
	}
	if n.Budget <= 0 {
		details["budget"] = "budget must be greater than zero"
	}
	if n.DailyBudget != nil && (*n.DailyBudget <= 0 || *n.DailyBudget > n.Budget) {
		details["daily_budget"] = "daily budget must be positive and not exceed budget"
	}
	if n.TargetImpressions != nil && *n.TargetImpressions <= 0 {
		details["target_impressions"] = "target impressions must be greater than zero"
	}
	if n.StartDate.IsZero() || n.EndDate.IsZero() {
		details["end_date"] = "start and end dates are required"
	} else if !n.EndDate.After(n.StartDate) {
		details["end_date"] = "end date must be after start date"
	}
	if len(details) > 0 {
		return NewValidationDetails("invalid campaign", details)
	}
	return nil
}

// CampaignPatch is an explicit update of an editable campaign. Nil fields
// are left unchanged.
type CampaignPatch struct {
	Name              *string
	Budget            *int64
	DailyBudget       *int64
	TargetImpressions *int64
	StartDate         *time.Time
	EndDate           *time.Time
}

// Apply returns c with p applied, validated as a whole.
func (p CampaignPatch) Apply(c Campaign) (Campaign, error) {
	n := NewCampaign{
		Name:              c.Name,
		Budget:            c.Budget,
		DailyBudget:       c.DailyBudget,
		TargetImpressions: c.TargetImpressions,
		StartDate:         c.StartDate,
		EndDate:           c.EndDate,
	}
	if p.Name != nil {
		n.Name = *p.Name
	}
	if p.Budget != nil {
		n.Budget = *p.Budget
	}
	if p.DailyBudget != nil {
		n.DailyBudget = p.DailyBudget
	}
	if p.TargetImpressions != nil {
		n.TargetImpressions = p.TargetImpressions
	}
	if p.StartDate != nil {
		n.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		n.EndDate = *p.EndDate
	}
	if err := n.Validate(); err != nil {
		return c, err
	}
	c.Name = n.Name
	c.Budget = n.Budget
	c.DailyBudget = n.DailyBudget
	c.TargetImpressions = n.TargetImpressions
	c.StartDate = n.StartDate
	c.EndDate = n.EndDate
	return c, nil
}

// UTCDay truncates t to the start of its UTC day.
func UTCDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
