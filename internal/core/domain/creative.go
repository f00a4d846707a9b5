package domain

import (
	"strings"
	"time"
)

// CreativeType is the kind of asset a creative renders.
type CreativeType string

const (
	CreativeImage CreativeType = "image"
	CreativeVideo CreativeType = "video"
)

var allowedFormats = map[CreativeType][]string{
	CreativeImage: {"jpg", "jpeg", "png", "gif", "webp"},
	CreativeVideo: {"mp4", "webm", "mov", "avi"},
}

// AllowedFormats returns the formats accepted for t, or nil for an unknown
// type.
func AllowedFormats(t CreativeType) []string {
	return allowedFormats[t]
}

// ValidateTypeFormat checks that format belongs to the format set of t.
func ValidateTypeFormat(t CreativeType, format string) error {
	formats, ok := allowedFormats[t]
	if !ok {
		return NewValidationDetails("invalid creative", map[string]string{
			"type": "type must be image or video",
		})
	}
	f := strings.ToLower(format)
	for _, v := range formats {
		if v == f {
			return nil
		}
	}
	return NewValidationDetails("invalid creative", map[string]string{
		"format": "format " + format + " is not allowed for type " + string(t) + " (allowed: " + strings.Join(formats, ", ") + ")",
	})
}

// Creative represents a renderable asset of a campaign, bound to one zone.
type Creative struct {
	ID             int64        `json:"id"`
	CampaignID     int64        `json:"campaign_id"`
	ZoneCode       string       `json:"zone"`
	Type           CreativeType `json:"type"`
	Format         string       `json:"format"`
	URL            string       `json:"url"`
	DestinationURL *string      `json:"destination_url,omitempty"`
	Width          int          `json:"width"`
	Height         int          `json:"height"`
	PricePerView   int64        `json:"price_per_view"` // zone price locked when bound
	NumberOfViews  int64        `json:"number_of_views"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// NewCreative holds the fields accepted on creation.
type NewCreative struct {
	CampaignID     int64
	ZoneCode       string
	Type           CreativeType
	Format         string
	URL            string
	DestinationURL *string
	Width          int
	Height         int
}

// Validate checks the shape of a new creative, including the type/format
// pairing. Existence of campaign and zone is checked by the store.
func (n NewCreative) Validate() error {
	details := map[string]string{}
	if n.CampaignID <= 0 {
		details["campaign_id"] = "campaign_id is required"
	}
	if n.ZoneCode == "" {
		details["zone"] = "zone is required"
	}
	if n.URL == "" {
		details["url"] = "url is required"
	}
	if n.Width < 0 || n.Height < 0 {
		details["dimensions"] = "dimensions must not be negative"
	}
	if len(details) > 0 {
		return NewValidationDetails("invalid creative", details)
	}
	return ValidateTypeFormat(n.Type, n.Format)
}

// CreativePatch is an explicit update of a creative. Nil fields are left
// unchanged.
type CreativePatch struct {
	ZoneCode       *string
	Type           *CreativeType
	Format         *string
	URL            *string
	DestinationURL *string
	Width          *int
	Height         *int
	ResetViews     bool
}

// Apply returns c with p applied. When type or format change, the pair is
// re-validated using the stored value for whichever field is absent.
func (p CreativePatch) Apply(c Creative) (Creative, error) {
	if p.Type != nil || p.Format != nil {
		t, f := c.Type, c.Format
		if p.Type != nil {
			t = *p.Type
		}
		if p.Format != nil {
			f = *p.Format
		}
		if err := ValidateTypeFormat(t, f); err != nil {
			return c, err
		}
		c.Type, c.Format = t, strings.ToLower(f)
	}
	if p.ZoneCode != nil {
		if *p.ZoneCode == "" {
			return c, NewValidationError("INVALID_ZONE", "zone must not be empty")
		}
		c.ZoneCode = *p.ZoneCode
	}
	if p.URL != nil {
		if *p.URL == "" {
			return c, NewValidationError("INVALID_URL", "url must not be empty")
		}
		c.URL = *p.URL
	}
	if p.DestinationURL != nil {
		if *p.DestinationURL == "" {
			c.DestinationURL = nil
		} else {
			c.DestinationURL = p.DestinationURL
		}
	}
	if p.Width != nil {
		c.Width = *p.Width
	}
	if p.Height != nil {
		c.Height = *p.Height
	}
	if c.Width < 0 || c.Height < 0 {
		return c, NewValidationError("INVALID_DIMENSIONS", "dimensions must not be negative")
	}
	if p.ResetViews {
		c.NumberOfViews = 0
	}
	return c, nil
}

// CreativeFilter selects creatives for read-only listings. Zero fields do
// not filter.
type CreativeFilter struct {
	CampaignID int64
	ZoneCode   string
	Query      string
	Width      int
	Height     int
	// ActiveAt restricts to creatives whose campaign is ACTIVE and in window.
	ActiveAt *time.Time
	// TopN orders by views descending and limits the result.
	TopN int
}
