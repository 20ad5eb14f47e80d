package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
)

// CreateGroup persists a new group. Group names are unique per owner.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().UnixMilli()
	}

	_, err := s.db.ExecContext(ctx, s.q(
		"INSERT INTO bill_groups (id, name, owner, created_at) VALUES (?, ?, ?, ?)"),
		group.ID, group.Name, group.Owner, group.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("group %q: %w", group.Name, storage.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID.
func (s *Store) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx, s.q(
		"SELECT id, name, owner, created_at FROM bill_groups WHERE id = ?"),
		groupID,
	).Scan(&group.ID, &group.Name, &group.Owner, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// ListGroupsByOwner retrieves the groups owned by a user, oldest first.
func (s *Store) ListGroupsByOwner(ctx context.Context, owner string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx, s.q(
		"SELECT id, name, owner, created_at FROM bill_groups WHERE owner = ? ORDER BY created_at, name"),
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.Owner, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	return groups, nil
}

// CreateInvitation persists a new invitation.
func (s *Store) CreateInvitation(ctx context.Context, inv *models.Invitation) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if inv.CreatedAt == 0 {
		inv.CreatedAt = time.Now().UnixMilli()
	}
	if inv.Status == "" {
		inv.Status = models.InvitationPending
	}

	_, err := s.db.ExecContext(ctx, s.q(
		`INSERT INTO invitations (id, group_id, group_name, sender, receiver, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`),
		inv.ID, inv.GroupID, inv.GroupName, inv.Sender, inv.Receiver, string(inv.Status), inv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invitation: %w", err)
	}
	return nil
}

// ListInvitations retrieves the invitations a user received with the given status.
func (s *Store) ListInvitations(ctx context.Context, receiver string, status models.InvitationStatus) ([]*models.Invitation, error) {
	return s.queryInvitations(ctx,
		`SELECT id, group_id, group_name, sender, receiver, status, created_at
		 FROM invitations WHERE receiver = ? AND status = ? ORDER BY created_at, id`,
		receiver, string(status),
	)
}

// ListInvitationsByGroup retrieves a group's invitations with the given status.
func (s *Store) ListInvitationsByGroup(ctx context.Context, groupID string, status models.InvitationStatus) ([]*models.Invitation, error) {
	return s.queryInvitations(ctx,
		`SELECT id, group_id, group_name, sender, receiver, status, created_at
		 FROM invitations WHERE group_id = ? AND status = ? ORDER BY created_at, id`,
		groupID, string(status),
	)
}

// UpdateInvitationStatus changes an invitation's status.
func (s *Store) UpdateInvitationStatus(ctx context.Context, invitationID string, status models.InvitationStatus) error {
	res, err := s.db.ExecContext(ctx, s.q(
		"UPDATE invitations SET status = ? WHERE id = ?"),
		string(status), invitationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("invitation %s: %w", invitationID, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) queryInvitations(ctx context.Context, query string, args ...any) ([]*models.Invitation, error) {
	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	var invitations []*models.Invitation
	for rows.Next() {
		inv := &models.Invitation{}
		var status string
		if err := rows.Scan(&inv.ID, &inv.GroupID, &inv.GroupName, &inv.Sender, &inv.Receiver, &status, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		inv.Status = models.InvitationStatus(status)
		invitations = append(invitations, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invitations: %w", err)
	}
	return invitations, nil
}
