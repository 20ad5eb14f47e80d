// Package service implements the Connect handlers for settlements and groups.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/internal/events"
	"github.com/mmynk/billsplit/internal/metrics"
	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
	"github.com/mmynk/billsplit/pkg/api"
	"github.com/mmynk/billsplit/pkg/api/apiconnect"
)

// SettlementService implements the Connect SettlementService
type SettlementService struct {
	apiconnect.UnimplementedSettlementServiceHandler
	store     storage.BillStore
	groups    storage.GroupStore
	publisher events.Publisher
	metrics   *metrics.Metrics
	strict    bool
}

// Option configures a SettlementService.
type Option func(*SettlementService)

// WithPublisher sets where bill and payment events are sent.
func WithPublisher(p events.Publisher) Option {
	return func(s *SettlementService) { s.publisher = p }
}

// WithMetrics records settlement and persistence counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *SettlementService) { s.metrics = m }
}

// WithStrictMembership rejects eaters, payers and exclusions that are not members.
func WithStrictMembership(strict bool) Option {
	return func(s *SettlementService) { s.strict = strict }
}

// NewSettlementService creates a new SettlementService with the given storage backend.
func NewSettlementService(store storage.Store, opts ...Option) *SettlementService {
	s := &SettlementService{
		store:     store,
		groups:    store,
		publisher: events.NopPublisher{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CalculateSettlement runs the settlement engine on an unsaved bill.
func (s *SettlementService) CalculateSettlement(ctx context.Context, req *connect.Request[api.CalculateSettlementRequest]) (*connect.Response[api.CalculateSettlementResponse], error) {
	msg := req.Msg
	slog.Info("CalculateSettlement request received",
		"members_count", len(msg.Members),
		"items_count", len(msg.Items),
		"payers_count", len(msg.Payers),
		"total_bill", msg.TotalBill,
	)

	if err := validateCalculateRequest(msg, s.strict); err != nil {
		slog.Warn("CalculateSettlement rejected", "error", err)
		return nil, toConnectError(err)
	}

	in := calculator.Input{
		Members:       msg.Members,
		TotalBill:     msg.TotalBill,
		Items:         make([]calculator.Item, len(msg.Items)),
		ExcludeCommon: msg.ExcludeCommon,
		Payers:        make([]calculator.Payer, len(msg.Payers)),
	}
	for i, item := range msg.Items {
		in.Items[i] = calculator.Item{
			Description: item.Description,
			Price:       item.Price,
			Eaters:      item.Eaters,
		}
	}
	for i, p := range msg.Payers {
		in.Payers[i] = calculator.Payer{Name: p.Name, Amount: p.Amount}
	}

	result := calculator.Compute(in)
	s.metrics.ObserveSettlement(len(result.Transfers))

	transfers := make([]*api.Transfer, len(result.Transfers))
	for i, t := range result.Transfers {
		transfers[i] = &api.Transfer{From: t.From, To: t.To, Amount: round2(t.Amount)}
	}

	balances := make([]*api.MemberBalance, len(result.Balances))
	for i, b := range result.Balances {
		slog.Debug("Member balance",
			"member", b.MemberName,
			"paid", b.Paid,
			"owed", b.Owed,
			"balance", b.NetBalance,
		)
		balances[i] = &api.MemberBalance{
			Name:    b.MemberName,
			Paid:    round2(b.Paid),
			Owed:    round2(b.Owed),
			Balance: round2(b.NetBalance),
		}
	}

	slog.Info("CalculateSettlement successful",
		"transfers_count", len(transfers),
		"total_specific", result.TotalSpecific,
		"common_amount", result.CommonAmount,
	)

	return connect.NewResponse(&api.CalculateSettlementResponse{
		Settlements:   calculator.FormatTransfers(result.Transfers),
		Transfers:     transfers,
		Balances:      balances,
		TotalSpecific: round2(result.TotalSpecific),
		CommonAmount:  round2(result.CommonAmount),
	}), nil
}

// RecordBill saves a settled bill to its group.
func (s *SettlementService) RecordBill(ctx context.Context, req *connect.Request[api.RecordBillRequest]) (*connect.Response[api.RecordBillResponse], error) {
	msg := req.Msg
	slog.Info("RecordBill request received",
		"group_id", msg.GroupID,
		"bill_name", msg.BillName,
		"creator", msg.Creator,
	)

	for _, f := range []struct{ name, value string }{
		{"group_id", msg.GroupID},
		{"bill_name", msg.BillName},
		{"creator", msg.Creator},
	} {
		if err := requireField(f.name, f.value); err != nil {
			return nil, toConnectError(err)
		}
	}
	if msg.TotalAmount.IsNegative() {
		return nil, toConnectError(invalidf("total_amount cannot be negative"))
	}

	group, err := s.groups.GetGroup(ctx, msg.GroupID)
	if err != nil {
		slog.Error("RecordBill failed - group lookup", "group_id", msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	// Only people who actually put money down are remembered as payers.
	var payers []string
	for _, p := range msg.Payers {
		if p != nil && p.Amount.IsPositive() {
			payers = append(payers, p.Name)
		}
	}

	bill := &models.Bill{
		GroupID:     group.ID,
		GroupName:   group.Name,
		Name:        strings.TrimSpace(msg.BillName),
		TotalAmount: msg.TotalAmount,
		Settlements: msg.Settlements,
		Payers:      payers,
		Creator:     msg.Creator,
	}
	if err := s.store.CreateBill(ctx, bill); err != nil {
		slog.Error("RecordBill failed", "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.BillRecorded()

	s.publish(ctx, events.NewBillRecorded(bill.ID, bill.GroupID, bill.Creator))

	slog.Info("Bill recorded", "bill_id", bill.ID, "group_id", bill.GroupID)

	return connect.NewResponse(&api.RecordBillResponse{BillID: bill.ID}), nil
}

// ListBills returns a group's bills, newest first.
func (s *SettlementService) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	groupID := req.Msg.GroupID
	slog.Info("ListBills request received", "group_id", groupID)

	if err := requireField("group_id", groupID); err != nil {
		return nil, toConnectError(err)
	}

	bills, err := s.store.ListBillsByGroup(ctx, groupID)
	if err != nil {
		slog.Error("ListBills failed", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Bill, len(bills))
	for i, bill := range bills {
		out[i] = toAPIBill(bill)
	}

	slog.Info("ListBills successful", "group_id", groupID, "count", len(out))

	return connect.NewResponse(&api.ListBillsResponse{Bills: out}), nil
}

// RecordPayment appends a payment confirmation to a bill.
func (s *SettlementService) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	msg := req.Msg
	slog.Info("RecordPayment request received", "bill_id", msg.BillID, "username", msg.Username)

	if err := requireField("bill_id", msg.BillID); err != nil {
		return nil, toConnectError(err)
	}
	if err := requireField("username", msg.Username); err != nil {
		return nil, toConnectError(err)
	}

	bill, err := s.store.GetBill(ctx, msg.BillID)
	if err != nil {
		slog.Error("RecordPayment failed - bill lookup", "bill_id", msg.BillID, "error", err)
		return nil, toConnectError(err)
	}

	payment := models.Payment{
		Username: msg.Username,
		Proof:    strings.TrimSpace(msg.Proof),
		PaidAt:   time.Now().UnixMilli(),
	}
	if err := s.store.AddPayment(ctx, bill.ID, payment); err != nil {
		slog.Error("RecordPayment failed", "bill_id", bill.ID, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.PaymentRecorded()

	s.publish(ctx, events.NewPaymentRecorded(bill.ID, bill.GroupID, payment.Username))

	slog.Info("Payment recorded", "bill_id", bill.ID, "username", payment.Username)

	return connect.NewResponse(&api.RecordPaymentResponse{Payment: toAPIPayment(payment)}), nil
}

// publish sends an event. Failures are logged and never fail the request.
func (s *SettlementService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish event", "type", event.Type, "bill_id", event.BillID, "error", err)
	}
}

func toAPIBill(bill *models.Bill) *api.Bill {
	payments := make([]*api.Payment, len(bill.Payments))
	for i, p := range bill.Payments {
		payments[i] = toAPIPayment(p)
	}

	settlements := bill.Settlements
	if settlements == nil {
		settlements = []string{}
	}

	return &api.Bill{
		ID:          bill.ID,
		GroupID:     bill.GroupID,
		GroupName:   bill.GroupName,
		BillName:    bill.Name,
		TotalAmount: bill.TotalAmount,
		Settlements: settlements,
		Payers:      bill.PayersOrCreator(),
		Creator:     bill.Creator,
		CreatedAt:   bill.CreatedAt,
		Payments:    payments,
	}
}

func toAPIPayment(p models.Payment) *api.Payment {
	return &api.Payment{
		Username: p.Username,
		Proof:    p.Proof,
		PaidAt:   p.PaidAt,
		Time:     p.Time(),
	}
}
