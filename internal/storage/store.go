// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/billsplit/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a uniqueness constraint is violated.
	ErrAlreadyExists = errors.New("already exists")
)

// BillStore persists recorded bills and their payment confirmations.
type BillStore interface {
	// CreateBill persists a new bill.
	// The bill.ID and bill.CreatedAt fields are populated by the store when empty.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill by its ID, payments included.
	// Returns ErrNotFound if the bill does not exist.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// ListBillsByGroup returns the group's bills, newest first.
	ListBillsByGroup(ctx context.Context, groupID string) ([]*models.Bill, error)

	// AddPayment appends a payment confirmation to a bill.
	// Returns ErrNotFound if the bill does not exist.
	AddPayment(ctx context.Context, billID string, payment models.Payment) error
}

// GroupStore persists groups and invitations.
type GroupStore interface {
	// CreateGroup persists a new group.
	// Returns ErrAlreadyExists if the owner already has a group with that name.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID.
	// Returns ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsByOwner returns the groups owned by username.
	ListGroupsByOwner(ctx context.Context, owner string) ([]*models.Group, error)

	// CreateInvitation persists a new invitation.
	CreateInvitation(ctx context.Context, inv *models.Invitation) error

	// ListInvitations returns the invitations received by username with the
	// given status.
	ListInvitations(ctx context.Context, receiver string, status models.InvitationStatus) ([]*models.Invitation, error)

	// ListInvitationsByGroup returns the group's invitations with the given status.
	ListInvitationsByGroup(ctx context.Context, groupID string, status models.InvitationStatus) ([]*models.Invitation, error)

	// UpdateInvitationStatus changes the status of an invitation.
	// Returns ErrNotFound if the invitation does not exist.
	UpdateInvitationStatus(ctx context.Context, invitationID string, status models.InvitationStatus) error
}

// Store defines the interface for all storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, MongoDB)
// without changing the service layer.
type Store interface {
	BillStore
	GroupStore

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
