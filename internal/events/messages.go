package events

import (
	"encoding/json"
	"time"
)

// Event types double as AMQP routing keys.
const (
	TypeBillRecorded    = "bill.recorded"
	TypePaymentRecorded = "payment.recorded"
)

// Event is the envelope published for every change to a bill.
type Event struct {
	Type      string    `json:"type"`
	BillID    string    `json:"bill_id"`
	GroupID   string    `json:"group_id"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}

// NewBillRecorded builds the event emitted after a bill is stored.
func NewBillRecorded(billID, groupID, creator string) Event {
	return Event{
		Type:      TypeBillRecorded,
		BillID:    billID,
		GroupID:   groupID,
		Username:  creator,
		Timestamp: time.Now().UTC(),
	}
}

// NewPaymentRecorded builds the event emitted after a payment confirmation.
func NewPaymentRecorded(billID, groupID, username string) Event {
	return Event{
		Type:      TypePaymentRecorded,
		BillID:    billID,
		GroupID:   groupID,
		Username:  username,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EventFromJSON decodes an event published by ToJSON.
func EventFromJSON(data []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(data, &e)
	return e, err
}
