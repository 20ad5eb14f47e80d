package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/pkg/api"
)

// GroupServiceName is the fully-qualified name of the GroupService service.
const GroupServiceName = "billsplit.v1.GroupService"

const (
	GroupServiceCreateGroupProcedure       = "/billsplit.v1.GroupService/CreateGroup"
	GroupServiceListGroupsProcedure        = "/billsplit.v1.GroupService/ListGroups"
	GroupServiceSendInvitationProcedure    = "/billsplit.v1.GroupService/SendInvitation"
	GroupServiceListInvitationsProcedure   = "/billsplit.v1.GroupService/ListInvitations"
	GroupServiceRespondInvitationProcedure = "/billsplit.v1.GroupService/RespondInvitation"
	GroupServiceGetGroupMembersProcedure   = "/billsplit.v1.GroupService/GetGroupMembers"
)

// GroupServiceClient is a client for the billsplit.v1.GroupService service.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	SendInvitation(context.Context, *connect.Request[api.SendInvitationRequest]) (*connect.Response[api.SendInvitationResponse], error)
	ListInvitations(context.Context, *connect.Request[api.ListInvitationsRequest]) (*connect.Response[api.ListInvitationsResponse], error)
	RespondInvitation(context.Context, *connect.Request[api.RespondInvitationRequest]) (*connect.Response[api.RespondInvitationResponse], error)
	GetGroupMembers(context.Context, *connect.Request[api.GetGroupMembersRequest]) (*connect.Response[api.GetGroupMembersResponse], error)
}

// NewGroupServiceClient constructs a client for the billsplit.v1.GroupService service.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withCodec(opts, connect.ClientOption(connect.WithCodec(Codec{})))
	return &groupServiceClient{
		createGroup: connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](
			httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		listGroups: connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](
			httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		sendInvitation: connect.NewClient[api.SendInvitationRequest, api.SendInvitationResponse](
			httpClient, baseURL+GroupServiceSendInvitationProcedure, opts...),
		listInvitations: connect.NewClient[api.ListInvitationsRequest, api.ListInvitationsResponse](
			httpClient, baseURL+GroupServiceListInvitationsProcedure, opts...),
		respondInvitation: connect.NewClient[api.RespondInvitationRequest, api.RespondInvitationResponse](
			httpClient, baseURL+GroupServiceRespondInvitationProcedure, opts...),
		getGroupMembers: connect.NewClient[api.GetGroupMembersRequest, api.GetGroupMembersResponse](
			httpClient, baseURL+GroupServiceGetGroupMembersProcedure, opts...),
	}
}

type groupServiceClient struct {
	createGroup       *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	listGroups        *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	sendInvitation    *connect.Client[api.SendInvitationRequest, api.SendInvitationResponse]
	listInvitations   *connect.Client[api.ListInvitationsRequest, api.ListInvitationsResponse]
	respondInvitation *connect.Client[api.RespondInvitationRequest, api.RespondInvitationResponse]
	getGroupMembers   *connect.Client[api.GetGroupMembersRequest, api.GetGroupMembersResponse]
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) SendInvitation(ctx context.Context, req *connect.Request[api.SendInvitationRequest]) (*connect.Response[api.SendInvitationResponse], error) {
	return c.sendInvitation.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListInvitations(ctx context.Context, req *connect.Request[api.ListInvitationsRequest]) (*connect.Response[api.ListInvitationsResponse], error) {
	return c.listInvitations.CallUnary(ctx, req)
}

func (c *groupServiceClient) RespondInvitation(ctx context.Context, req *connect.Request[api.RespondInvitationRequest]) (*connect.Response[api.RespondInvitationResponse], error) {
	return c.respondInvitation.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroupMembers(ctx context.Context, req *connect.Request[api.GetGroupMembersRequest]) (*connect.Response[api.GetGroupMembersResponse], error) {
	return c.getGroupMembers.CallUnary(ctx, req)
}

// GroupServiceHandler is an implementation of the billsplit.v1.GroupService service.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	SendInvitation(context.Context, *connect.Request[api.SendInvitationRequest]) (*connect.Response[api.SendInvitationResponse], error)
	ListInvitations(context.Context, *connect.Request[api.ListInvitationsRequest]) (*connect.Response[api.ListInvitationsResponse], error)
	RespondInvitation(context.Context, *connect.Request[api.RespondInvitationRequest]) (*connect.Response[api.RespondInvitationResponse], error)
	GetGroupMembers(context.Context, *connect.Request[api.GetGroupMembersRequest]) (*connect.Response[api.GetGroupMembersResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts, connect.HandlerOption(connect.WithCodec(Codec{})))
	createGroupHandler := connect.NewUnaryHandler(
		GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...)
	listGroupsHandler := connect.NewUnaryHandler(
		GroupServiceListGroupsProcedure, svc.ListGroups, opts...)
	sendInvitationHandler := connect.NewUnaryHandler(
		GroupServiceSendInvitationProcedure, svc.SendInvitation, opts...)
	listInvitationsHandler := connect.NewUnaryHandler(
		GroupServiceListInvitationsProcedure, svc.ListInvitations, opts...)
	respondInvitationHandler := connect.NewUnaryHandler(
		GroupServiceRespondInvitationProcedure, svc.RespondInvitation, opts...)
	getGroupMembersHandler := connect.NewUnaryHandler(
		GroupServiceGetGroupMembersProcedure, svc.GetGroupMembers, opts...)
	return "/" + GroupServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case GroupServiceCreateGroupProcedure:
			createGroupHandler.ServeHTTP(w, r)
		case GroupServiceListGroupsProcedure:
			listGroupsHandler.ServeHTTP(w, r)
		case GroupServiceSendInvitationProcedure:
			sendInvitationHandler.ServeHTTP(w, r)
		case GroupServiceListInvitationsProcedure:
			listInvitationsHandler.ServeHTTP(w, r)
		case GroupServiceRespondInvitationProcedure:
			respondInvitationHandler.ServeHTTP(w, r)
		case GroupServiceGetGroupMembersProcedure:
			getGroupMembersHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedGroupServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedGroupServiceHandler struct{}

func (UnimplementedGroupServiceHandler) CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.GroupService.CreateGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.GroupService.ListGroups is not implemented"))
}

func (UnimplementedGroupServiceHandler) SendInvitation(context.Context, *connect.Request[api.SendInvitationRequest]) (*connect.Response[api.SendInvitationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.GroupService.SendInvitation is not implemented"))
}

func (UnimplementedGroupServiceHandler) ListInvitations(context.Context, *connect.Request[api.ListInvitationsRequest]) (*connect.Response[api.ListInvitationsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.GroupService.ListInvitations is not implemented"))
}

func (UnimplementedGroupServiceHandler) RespondInvitation(context.Context, *connect.Request[api.RespondInvitationRequest]) (*connect.Response[api.RespondInvitationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.GroupService.RespondInvitation is not implemented"))
}

func (UnimplementedGroupServiceHandler) GetGroupMembers(context.Context, *connect.Request[api.GetGroupMembersRequest]) (*connect.Response[api.GetGroupMembersResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.GroupService.GetGroupMembers is not implemented"))
}
