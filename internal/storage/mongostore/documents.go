package mongostore

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplit/internal/models"
)

// billDocument mirrors the layout of the bills collection: payments are
// embedded and only ever pushed.
type billDocument struct {
	ID          string            `bson:"_id"`
	GroupID     string            `bson:"group_id"`
	GroupName   string            `bson:"group_name"`
	BillName    string            `bson:"bill_name"`
	TotalAmount string            `bson:"total_amount"`
	Settlements []string          `bson:"settlements"`
	Payers      []string          `bson:"payers"`
	Creator     string            `bson:"creator"`
	CreatedAt   int64             `bson:"created_at"`
	Payments    []paymentDocument `bson:"payments"`
}

type paymentDocument struct {
	Username string `bson:"username"`
	Proof    string `bson:"proof"`
	Time     string `bson:"time"`
	PaidAt   int64  `bson:"paid_at"`
}

type groupDocument struct {
	ID        string `bson:"_id"`
	Name      string `bson:"name"`
	Owner     string `bson:"owner"`
	CreatedAt int64  `bson:"created_at"`
}

type invitationDocument struct {
	ID        string `bson:"_id"`
	GroupID   string `bson:"group_id"`
	GroupName string `bson:"group_name"`
	Sender    string `bson:"sender_username"`
	Receiver  string `bson:"receiver_username"`
	Status    string `bson:"status"`
	CreatedAt int64  `bson:"created_at"`
}

func toBillDocument(b *models.Bill) billDocument {
	payments := make([]paymentDocument, len(b.Payments))
	for i, p := range b.Payments {
		payments[i] = toPaymentDocument(p)
	}
	settlements := b.Settlements
	if settlements == nil {
		settlements = []string{}
	}
	payers := b.Payers
	if payers == nil {
		payers = []string{}
	}
	return billDocument{
		ID:          b.ID,
		GroupID:     b.GroupID,
		GroupName:   b.GroupName,
		BillName:    b.Name,
		TotalAmount: b.TotalAmount.String(),
		Settlements: settlements,
		Payers:      payers,
		Creator:     b.Creator,
		CreatedAt:   b.CreatedAt,
		Payments:    payments,
	}
}

func (d billDocument) toModel() (*models.Bill, error) {
	total, err := decimal.NewFromString(d.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("bill %s has invalid total %q: %w", d.ID, d.TotalAmount, err)
	}
	payments := make([]models.Payment, len(d.Payments))
	for i, p := range d.Payments {
		payments[i] = models.Payment{Username: p.Username, Proof: p.Proof, PaidAt: p.PaidAt}
	}
	return &models.Bill{
		ID:          d.ID,
		GroupID:     d.GroupID,
		GroupName:   d.GroupName,
		Name:        d.BillName,
		TotalAmount: total,
		Settlements: d.Settlements,
		Payers:      d.Payers,
		Creator:     d.Creator,
		CreatedAt:   d.CreatedAt,
		Payments:    payments,
	}, nil
}

func toPaymentDocument(p models.Payment) paymentDocument {
	return paymentDocument{
		Username: p.Username,
		Proof:    p.Proof,
		Time:     p.Time(),
		PaidAt:   p.PaidAt,
	}
}

func (d groupDocument) toModel() *models.Group {
	return &models.Group{ID: d.ID, Name: d.Name, Owner: d.Owner, CreatedAt: d.CreatedAt}
}

func (d invitationDocument) toModel() *models.Invitation {
	return &models.Invitation{
		ID:        d.ID,
		GroupID:   d.GroupID,
		GroupName: d.GroupName,
		Sender:    d.Sender,
		Receiver:  d.Receiver,
		Status:    models.InvitationStatus(d.Status),
		CreatedAt: d.CreatedAt,
	}
}
