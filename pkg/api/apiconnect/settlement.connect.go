package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/pkg/api"
)

// SettlementServiceName is the fully-qualified name of the SettlementService service.
const SettlementServiceName = "billsplit.v1.SettlementService"

const (
	SettlementServiceCalculateSettlementProcedure = "/billsplit.v1.SettlementService/CalculateSettlement"
	SettlementServiceRecordBillProcedure          = "/billsplit.v1.SettlementService/RecordBill"
	SettlementServiceListBillsProcedure           = "/billsplit.v1.SettlementService/ListBills"
	SettlementServiceRecordPaymentProcedure       = "/billsplit.v1.SettlementService/RecordPayment"
)

// SettlementServiceClient is a client for the billsplit.v1.SettlementService service.
type SettlementServiceClient interface {
	CalculateSettlement(context.Context, *connect.Request[api.CalculateSettlementRequest]) (*connect.Response[api.CalculateSettlementResponse], error)
	RecordBill(context.Context, *connect.Request[api.RecordBillRequest]) (*connect.Response[api.RecordBillResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
}

// NewSettlementServiceClient constructs a client for the billsplit.v1.SettlementService
// service. The baseURL is the scheme and authority of the server, e.g. http://localhost:8080.
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withCodec(opts, connect.ClientOption(connect.WithCodec(Codec{})))
	return &settlementServiceClient{
		calculateSettlement: connect.NewClient[api.CalculateSettlementRequest, api.CalculateSettlementResponse](
			httpClient, baseURL+SettlementServiceCalculateSettlementProcedure, opts...),
		recordBill: connect.NewClient[api.RecordBillRequest, api.RecordBillResponse](
			httpClient, baseURL+SettlementServiceRecordBillProcedure, opts...),
		listBills: connect.NewClient[api.ListBillsRequest, api.ListBillsResponse](
			httpClient, baseURL+SettlementServiceListBillsProcedure, opts...),
		recordPayment: connect.NewClient[api.RecordPaymentRequest, api.RecordPaymentResponse](
			httpClient, baseURL+SettlementServiceRecordPaymentProcedure, opts...),
	}
}

type settlementServiceClient struct {
	calculateSettlement *connect.Client[api.CalculateSettlementRequest, api.CalculateSettlementResponse]
	recordBill          *connect.Client[api.RecordBillRequest, api.RecordBillResponse]
	listBills           *connect.Client[api.ListBillsRequest, api.ListBillsResponse]
	recordPayment       *connect.Client[api.RecordPaymentRequest, api.RecordPaymentResponse]
}

func (c *settlementServiceClient) CalculateSettlement(ctx context.Context, req *connect.Request[api.CalculateSettlementRequest]) (*connect.Response[api.CalculateSettlementResponse], error) {
	return c.calculateSettlement.CallUnary(ctx, req)
}

func (c *settlementServiceClient) RecordBill(ctx context.Context, req *connect.Request[api.RecordBillRequest]) (*connect.Response[api.RecordBillResponse], error) {
	return c.recordBill.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return c.listBills.CallUnary(ctx, req)
}

func (c *settlementServiceClient) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	return c.recordPayment.CallUnary(ctx, req)
}

// SettlementServiceHandler is an implementation of the billsplit.v1.SettlementService service.
type SettlementServiceHandler interface {
	CalculateSettlement(context.Context, *connect.Request[api.CalculateSettlementRequest]) (*connect.Response[api.CalculateSettlementResponse], error)
	RecordBill(context.Context, *connect.Request[api.RecordBillRequest]) (*connect.Response[api.RecordBillResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
	RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts, connect.HandlerOption(connect.WithCodec(Codec{})))
	calculateSettlementHandler := connect.NewUnaryHandler(
		SettlementServiceCalculateSettlementProcedure, svc.CalculateSettlement, opts...)
	recordBillHandler := connect.NewUnaryHandler(
		SettlementServiceRecordBillProcedure, svc.RecordBill, opts...)
	listBillsHandler := connect.NewUnaryHandler(
		SettlementServiceListBillsProcedure, svc.ListBills, opts...)
	recordPaymentHandler := connect.NewUnaryHandler(
		SettlementServiceRecordPaymentProcedure, svc.RecordPayment, opts...)
	return "/" + SettlementServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SettlementServiceCalculateSettlementProcedure:
			calculateSettlementHandler.ServeHTTP(w, r)
		case SettlementServiceRecordBillProcedure:
			recordBillHandler.ServeHTTP(w, r)
		case SettlementServiceListBillsProcedure:
			listBillsHandler.ServeHTTP(w, r)
		case SettlementServiceRecordPaymentProcedure:
			recordPaymentHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedSettlementServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSettlementServiceHandler struct{}

func (UnimplementedSettlementServiceHandler) CalculateSettlement(context.Context, *connect.Request[api.CalculateSettlementRequest]) (*connect.Response[api.CalculateSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.SettlementService.CalculateSettlement is not implemented"))
}

func (UnimplementedSettlementServiceHandler) RecordBill(context.Context, *connect.Request[api.RecordBillRequest]) (*connect.Response[api.RecordBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.SettlementService.RecordBill is not implemented"))
}

func (UnimplementedSettlementServiceHandler) ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.SettlementService.ListBills is not implemented"))
}

func (UnimplementedSettlementServiceHandler) RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("billsplit.v1.SettlementService.RecordPayment is not implemented"))
}
