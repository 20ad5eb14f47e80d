// Package api defines the request and response messages of the billsplit.v1
// services. Messages travel as JSON; money fields are decimals and accept
// both JSON numbers and numeric strings.
package api

import "github.com/shopspring/decimal"

// Item is a line of the bill eaten by the listed members.
type Item struct {
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Eaters      []string        `json:"eaters"`
}

// PayerAmount is how much one person paid towards the bill.
type PayerAmount struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type CalculateSettlementRequest struct {
	Members       []string        `json:"members"`
	TotalBill     decimal.Decimal `json:"total_bill"`
	Items         []*Item         `json:"items"`
	ExcludeCommon []string        `json:"exclude_common"`
	Payers        []*PayerAmount  `json:"payers"`
}

type Transfer struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

type MemberBalance struct {
	Name    string          `json:"name"`
	Paid    decimal.Decimal `json:"paid"`
	Owed    decimal.Decimal `json:"owed"`
	Balance decimal.Decimal `json:"balance"`
}

type CalculateSettlementResponse struct {
	Settlements   []string         `json:"settlements"`
	Transfers     []*Transfer      `json:"transfers"`
	Balances      []*MemberBalance `json:"balances"`
	TotalSpecific decimal.Decimal  `json:"total_specific"`
	CommonAmount  decimal.Decimal  `json:"common_amount"`
}

type RecordBillRequest struct {
	GroupID     string          `json:"group_id"`
	BillName    string          `json:"bill_name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Settlements []string        `json:"settlements"`
	Payers      []*PayerAmount  `json:"payers"`
	Creator     string          `json:"creator"`
}

type RecordBillResponse struct {
	BillID string `json:"bill_id"`
}

type ListBillsRequest struct {
	GroupID string `json:"group_id"`
}

// Payment confirms that a user paid their share of a bill.
type Payment struct {
	Username string `json:"username"`
	Proof    string `json:"proof"`
	PaidAt   int64  `json:"paid_at"`
	Time     string `json:"time"`
}

type Bill struct {
	ID          string          `json:"id"`
	GroupID     string          `json:"group_id"`
	GroupName   string          `json:"group_name"`
	BillName    string          `json:"bill_name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Settlements []string        `json:"settlements"`
	Payers      []string        `json:"payers"`
	Creator     string          `json:"creator"`
	CreatedAt   int64           `json:"created_at"`
	Payments    []*Payment      `json:"payments"`
}

type ListBillsResponse struct {
	Bills []*Bill `json:"bills"`
}

type RecordPaymentRequest struct {
	BillID   string `json:"bill_id"`
	Username string `json:"username"`
	Proof    string `json:"proof"`
}

type RecordPaymentResponse struct {
	Payment *Payment `json:"payment"`
}
