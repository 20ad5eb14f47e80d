package service

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
	"github.com/mmynk/billsplit/pkg/api"
	"github.com/mmynk/billsplit/pkg/api/apiconnect"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	apiconnect.UnimplementedGroupServiceHandler
	store storage.GroupStore
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.GroupStore) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group owned by the caller.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	slog.Info("CreateGroup request received", "name", name, "owner", req.Msg.Owner)

	if err := requireField("name", name); err != nil {
		return nil, toConnectError(err)
	}
	if err := requireField("owner", req.Msg.Owner); err != nil {
		return nil, toConnectError(err)
	}

	group := &models.Group{Name: name, Owner: req.Msg.Owner}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "name", name, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group created", "group_id", group.ID)

	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups returns the groups a user owns or joined, sorted by name.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	username := req.Msg.Username
	slog.Info("ListGroups request received", "username", username)

	if err := requireField("username", username); err != nil {
		return nil, toConnectError(err)
	}

	owned, err := s.store.ListGroupsByOwner(ctx, username)
	if err != nil {
		slog.Error("ListGroups failed - owned groups", "username", username, "error", err)
		return nil, toConnectError(err)
	}

	accepted, err := s.store.ListInvitations(ctx, username, models.InvitationAccepted)
	if err != nil {
		slog.Error("ListGroups failed - accepted invitations", "username", username, "error", err)
		return nil, toConnectError(err)
	}

	seen := make(map[string]bool, len(owned)+len(accepted))
	groups := make([]*api.Group, 0, len(owned)+len(accepted))
	for _, g := range owned {
		seen[g.ID] = true
		groups = append(groups, toAPIGroup(g))
	}
	for _, inv := range accepted {
		if seen[inv.GroupID] {
			continue
		}
		seen[inv.GroupID] = true

		g, err := s.store.GetGroup(ctx, inv.GroupID)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			slog.Error("ListGroups failed - group lookup", "group_id", inv.GroupID, "error", err)
			return nil, toConnectError(err)
		}
		groups = append(groups, toAPIGroup(g))
	}

	slices.SortFunc(groups, func(a, b *api.Group) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})

	slog.Info("ListGroups successful", "username", username, "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: groups}), nil
}

// SendInvitation invites a user to join a group.
func (s *GroupService) SendInvitation(ctx context.Context, req *connect.Request[api.SendInvitationRequest]) (*connect.Response[api.SendInvitationResponse], error) {
	msg := req.Msg
	slog.Info("SendInvitation request received",
		"group_id", msg.GroupID,
		"sender", msg.Sender,
		"receiver", msg.Receiver,
	)

	for _, f := range []struct{ name, value string }{
		{"group_id", msg.GroupID},
		{"sender", msg.Sender},
		{"receiver", msg.Receiver},
	} {
		if err := requireField(f.name, f.value); err != nil {
			return nil, toConnectError(err)
		}
	}

	group, err := s.store.GetGroup(ctx, msg.GroupID)
	if err != nil {
		slog.Error("SendInvitation failed - group lookup", "group_id", msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	inv := &models.Invitation{
		GroupID:   group.ID,
		GroupName: group.Name,
		Sender:    msg.Sender,
		Receiver:  msg.Receiver,
		Status:    models.InvitationPending,
	}
	if err := s.store.CreateInvitation(ctx, inv); err != nil {
		slog.Error("SendInvitation failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Invitation sent", "invitation_id", inv.ID, "group_id", group.ID)

	return connect.NewResponse(&api.SendInvitationResponse{Invitation: toAPIInvitation(inv)}), nil
}

// ListInvitations returns a user's pending invitations.
func (s *GroupService) ListInvitations(ctx context.Context, req *connect.Request[api.ListInvitationsRequest]) (*connect.Response[api.ListInvitationsResponse], error) {
	username := req.Msg.Username
	slog.Info("ListInvitations request received", "username", username)

	if err := requireField("username", username); err != nil {
		return nil, toConnectError(err)
	}

	pending, err := s.store.ListInvitations(ctx, username, models.InvitationPending)
	if err != nil {
		slog.Error("ListInvitations failed", "username", username, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Invitation, len(pending))
	for i, inv := range pending {
		out[i] = toAPIInvitation(inv)
	}

	return connect.NewResponse(&api.ListInvitationsResponse{Invitations: out}), nil
}

// RespondInvitation accepts or declines an invitation.
func (s *GroupService) RespondInvitation(ctx context.Context, req *connect.Request[api.RespondInvitationRequest]) (*connect.Response[api.RespondInvitationResponse], error) {
	msg := req.Msg
	slog.Info("RespondInvitation request received", "invitation_id", msg.InvitationID, "response", msg.Response)

	if err := requireField("invitation_id", msg.InvitationID); err != nil {
		return nil, toConnectError(err)
	}

	status := models.InvitationStatus(strings.ToLower(strings.TrimSpace(msg.Response)))
	if status != models.InvitationAccepted && status != models.InvitationDeclined {
		return nil, toConnectError(invalidf("response must be %q or %q", models.InvitationAccepted, models.InvitationDeclined))
	}

	if err := s.store.UpdateInvitationStatus(ctx, msg.InvitationID, status); err != nil {
		slog.Error("RespondInvitation failed", "invitation_id", msg.InvitationID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Invitation answered", "invitation_id", msg.InvitationID, "status", status)

	return connect.NewResponse(&api.RespondInvitationResponse{Status: string(status)}), nil
}

// GetGroupMembers returns the owner and every accepted invitee, sorted.
// An unknown group has no members.
func (s *GroupService) GetGroupMembers(ctx context.Context, req *connect.Request[api.GetGroupMembersRequest]) (*connect.Response[api.GetGroupMembersResponse], error) {
	groupID := req.Msg.GroupID
	slog.Info("GetGroupMembers request received", "group_id", groupID)

	group, err := s.store.GetGroup(ctx, groupID)
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewResponse(&api.GetGroupMembersResponse{Members: []string{}}), nil
	}
	if err != nil {
		slog.Error("GetGroupMembers failed - group lookup", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	accepted, err := s.store.ListInvitationsByGroup(ctx, group.ID, models.InvitationAccepted)
	if err != nil {
		slog.Error("GetGroupMembers failed - invitations", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	members := []string{group.Owner}
	for _, inv := range accepted {
		members = append(members, inv.Receiver)
	}
	slices.Sort(members)
	members = slices.Compact(members)

	return connect.NewResponse(&api.GetGroupMembersResponse{Members: members}), nil
}

func toAPIGroup(g *models.Group) *api.Group {
	return &api.Group{
		ID:        g.ID,
		Name:      g.Name,
		Owner:     g.Owner,
		CreatedAt: g.CreatedAt,
	}
}

func toAPIInvitation(inv *models.Invitation) *api.Invitation {
	return &api.Invitation{
		ID:        inv.ID,
		GroupID:   inv.GroupID,
		GroupName: inv.GroupName,
		Sender:    inv.Sender,
		Receiver:  inv.Receiver,
		Status:    string(inv.Status),
		CreatedAt: inv.CreatedAt,
	}
}
