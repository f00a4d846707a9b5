package domain

import (
	"regexp"
	"time"
)

// ZoneStatus toggles whether a zone accepts serve requests.
type ZoneStatus string

const (
	ZoneActive   ZoneStatus = "active"
	ZoneInactive ZoneStatus = "inactive"
)

func (s ZoneStatus) Valid() bool {
	return s == ZoneActive || s == ZoneInactive
}

// Zone is a named placement slot with a fixed per-impression price.
type Zone struct {
	Code         string     `json:"code"`
	Type         string     `json:"type"`
	PricePerView int64      `json:"price_per_view"`
	Status       ZoneStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

var zoneCodePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_\-]{0,62}$`)

// ValidatePrice rejects non-positive prices.
func ValidatePrice(price int64) error {
	if price <= 0 {
		return NewValidationDetails("invalid price", map[string]string{
			"price_per_view": "price must be greater than zero",
		})
	}
	return nil
}

// Validate checks a zone before it is created.
func (z Zone) Validate() error {
	details := map[string]string{}
	if !zoneCodePattern.MatchString(z.Code) {
		details["code"] = "code must be lowercase letters, digits, '_' or '-'"
	}
	if z.Type == "" {
		details["type"] = "type is required"
	}
	if z.PricePerView <= 0 {
		details["price_per_view"] = "price must be greater than zero"
	}
	if z.Status != "" && !z.Status.Valid() {
		details["status"] = "status must be active or inactive"
	}
	if len(details) > 0 {
		return NewValidationDetails("invalid zone", details)
	}
	return nil
}

// MaxAffordablePrice is the highest per-view price that fits impressions
// into budget. It returns 0 when nothing fits.
func MaxAffordablePrice(budget, impressions int64) int64 {
	if budget <= 0 || impressions <= 0 {
		return 0
	}
	return budget / impressions
}
