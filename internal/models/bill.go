package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is a settled bill as recorded by a group member.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// GroupID is the group this bill belongs to.
	GroupID string

	// GroupName is the group's display name at the time the bill was recorded.
	GroupName string

	// Name is the human-readable name for the bill (e.g., "Friday dinner").
	Name string

	// TotalAmount is the declared bill total.
	TotalAmount decimal.Decimal

	// Settlements are the transfer lines computed for the bill, stored verbatim.
	Settlements []string

	// Payers are the members who paid a positive amount up front.
	Payers []string

	// Creator is the username who recorded the bill.
	Creator string

	// CreatedAt is the Unix timestamp (milliseconds) when the bill was recorded.
	CreatedAt int64

	// Payments are confirmations appended by members who paid their share.
	Payments []Payment
}

// PayersOrCreator returns the recorded payers, falling back to the creator
// for bills stored without any.
func (b *Bill) PayersOrCreator() []string {
	if len(b.Payers) > 0 {
		return b.Payers
	}
	return []string{b.Creator}
}

// Payment is a member's confirmation that they paid their part of a bill.
type Payment struct {
	Username string

	// Proof is a free-form reference (transfer slip, note, link).
	Proof string

	// PaidAt is the Unix timestamp (milliseconds) of the confirmation.
	PaidAt int64
}

// Time returns the confirmation time as HH:MM in local time.
func (p Payment) Time() string {
	return time.UnixMilli(p.PaidAt).Format("15:04")
}
