package apiconnect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billsplit/pkg/api"
)

func TestCodec_DecimalFields(t *testing.T) {
	var req api.CalculateSettlementRequest
	err := Codec{}.Unmarshal([]byte(`{"members":["a","b"],"total_bill":100.5,"payers":[{"name":"a","amount":"40.25"}]}`), &req)
	require.NoError(t, err)

	assert.True(t, req.TotalBill.Equal(decimal.RequireFromString("100.5")))
	require.Len(t, req.Payers, 1)
	assert.True(t, req.Payers[0].Amount.Equal(decimal.RequireFromString("40.25")))
}

func TestCodec_RejectsNonNumericAmount(t *testing.T) {
	var req api.CalculateSettlementRequest
	err := Codec{}.Unmarshal([]byte(`{"total_bill":"lots"}`), &req)
	assert.Error(t, err)
}

func TestCodec_EmptyBody(t *testing.T) {
	var req api.ListBillsRequest
	assert.NoError(t, Codec{}.Unmarshal(nil, &req))
	assert.Equal(t, "json", Codec{}.Name())
}

type echoSettlement struct {
	UnimplementedSettlementServiceHandler
}

func (echoSettlement) ListBills(_ context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return connect.NewResponse(&api.ListBillsResponse{
		Bills: []*api.Bill{{GroupID: req.Msg.GroupID, TotalAmount: decimal.NewFromInt(12)}},
	}), nil
}

func TestSettlementService_RoundTrip(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle(NewSettlementServiceHandler(echoSettlement{}))
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewSettlementServiceClient(http.DefaultClient, server.URL+"/")

	resp, err := client.ListBills(context.Background(), connect.NewRequest(&api.ListBillsRequest{GroupID: "g1"}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Bills, 1)
	assert.Equal(t, "g1", resp.Msg.Bills[0].GroupID)
	assert.True(t, resp.Msg.Bills[0].TotalAmount.Equal(decimal.NewFromInt(12)))

	_, err = client.RecordBill(context.Background(), connect.NewRequest(&api.RecordBillRequest{}))
	assert.Equal(t, connect.CodeUnimplemented, connect.CodeOf(err))
}

func TestGroupService_UnknownProcedure(t *testing.T) {
	path, handler := NewGroupServiceHandler(UnimplementedGroupServiceHandler{})
	assert.Equal(t, "/billsplit.v1.GroupService/", path)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/billsplit.v1.GroupService/Nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
