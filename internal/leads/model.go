package leads

import (
	"encoding/json"
	"time"
)

// TimestampLayout is the wire format for received_at (RFC 3339, millisecond precision, UTC).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Project types accepted for what_are_you_building.
const (
	ProjectLeadGen     = "lead_gen"
	ProjectEcommerce   = "ecommerce"
	ProjectSaaS        = "saas"
	ProjectMarketplace = "marketplace"
	ProjectContent     = "content"
	ProjectOther       = "other"
)

// Submission is a validated intake payload.
type Submission struct {
	FullName           string   `json:"full_name"`
	Email              string   `json:"email"`
	Company            string   `json:"company,omitempty"`
	WebsiteURL         string   `json:"website_url"`
	ProjectType        string   `json:"what_are_you_building"`
	AuthRequired       string   `json:"auth_required"`
	PrimaryUserActions []string `json:"primary_user_actions"`
	CurrentStack       string   `json:"current_stack"`
	Timeline           string   `json:"timeline"`
	Notes              string   `json:"notes,omitempty"`
}

// Record is an accepted submission. It is never mutated after Append returns it.
type Record struct {
	Submission
	LeadID     string    `json:"lead_id"`
	ReceivedAt time.Time `json:"-"`
}

// ReceivedAtString formats ReceivedAt in the wire layout.
func (r *Record) ReceivedAtString() string {
	return r.ReceivedAt.UTC().Format(TimestampLayout)
}

// MarshalJSON emits the submission fields alongside lead_id and received_at.
func (r Record) MarshalJSON() ([]byte, error) {
	type wire struct {
		Submission
		LeadID     string `json:"lead_id"`
		ReceivedAt string `json:"received_at"`
	}
	return json.Marshal(wire{
		Submission: r.Submission,
		LeadID:     r.LeadID,
		ReceivedAt: r.ReceivedAtString(),
	})
}

// Summary is the redacted view of a record used by the operator listing.
type Summary struct {
	LeadID     string `json:"lead_id"`
	ReceivedAt string `json:"received_at"`
	Email      string `json:"email"`
	Company    string `json:"company,omitempty"`
}

// Redacted drops everything except the fields safe to list.
func (r *Record) Redacted() Summary {
	return Summary{
		LeadID:     r.LeadID,
		ReceivedAt: r.ReceivedAtString(),
		Email:      r.Email,
		Company:    r.Company,
	}
}
