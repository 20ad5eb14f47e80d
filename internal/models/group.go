package models

// Group is a named set of people who split bills together.
// Members are the owner plus everyone who accepted an invitation.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Work Lunch").
	// Names are unique per owner.
	Name string

	// Owner is the username who created the group.
	Owner string

	// CreatedAt is the Unix timestamp (milliseconds) when the group was created.
	CreatedAt int64
}

// InvitationStatus is the lifecycle state of an invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// Invitation asks a user to join a group.
type Invitation struct {
	ID        string
	GroupID   string
	GroupName string
	Sender    string
	Receiver  string
	Status    InvitationStatus
	CreatedAt int64
}
