package api

type Group struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Owner     string `json:"owner"`
	CreatedAt int64  `json:"created_at"`
}

type Invitation struct {
	ID        string `json:"id"`
	GroupID   string `json:"group_id"`
	GroupName string `json:"group_name"`
	Sender    string `json:"sender"`
	Receiver  string `json:"receiver"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

type CreateGroupRequest struct {
	Name  string `json:"name"`
	Owner string `json:"owner"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct {
	Username string `json:"username"`
}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type SendInvitationRequest struct {
	GroupID  string `json:"group_id"`
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
}

type SendInvitationResponse struct {
	Invitation *Invitation `json:"invitation"`
}

type ListInvitationsRequest struct {
	Username string `json:"username"`
}

type ListInvitationsResponse struct {
	Invitations []*Invitation `json:"invitations"`
}

type RespondInvitationRequest struct {
	InvitationID string `json:"invitation_id"`
	Response     string `json:"response"`
}

type RespondInvitationResponse struct {
	Status string `json:"status"`
}

type GetGroupMembersRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupMembersResponse struct {
	Members []string `json:"members"`
}
