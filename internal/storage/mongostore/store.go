// Package mongostore provides a MongoDB implementation of the storage.Store
// interface, using one collection per record type.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
)

const connectTimeout = 10 * time.Second

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using MongoDB.
type Store struct {
	client      *mongo.Client
	bills       *mongo.Collection
	groups      *mongo.Collection
	invitations *mongo.Collection
}

// New connects to MongoDB, verifies the connection and ensures indexes.
func New(ctx context.Context, uri, database string) (*Store, error) {
	if uri == "" {
		return nil, errors.New("mongo uri cannot be empty")
	}
	if database == "" {
		return nil, errors.New("database name cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(database)
	s := &Store{
		client:      client,
		bills:       db.Collection("bills"),
		groups:      db.Collection("groups"),
		invitations: db.Collection("invitations"),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.groups.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create groups index: %w", err)
	}

	_, err = s.bills.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create bills index: %w", err)
	}

	_, err = s.invitations.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "receiver_username", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "status", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create invitations indexes: %w", err)
	}
	return nil
}

// Ping checks the connection to the server.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// CreateBill inserts a bill document.
func (s *Store) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().UnixMilli()
	}

	if _, err := s.bills.InsertOne(ctx, toBillDocument(bill)); err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

// GetBill retrieves a bill by ID.
func (s *Store) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	var doc billDocument
	err := s.bills.FindOne(ctx, bson.M{"_id": billID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return doc.toModel()
}

// ListBillsByGroup retrieves a group's bills, newest first.
func (s *Store) ListBillsByGroup(ctx context.Context, groupID string) ([]*models.Bill, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := s.bills.Find(ctx, bson.M{"group_id": groupID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills by group: %w", err)
	}

	var docs []billDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode bills: %w", err)
	}

	bills := make([]*models.Bill, 0, len(docs))
	for _, doc := range docs {
		bill, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, nil
}

// AddPayment pushes a payment onto the bill's payments array.
func (s *Store) AddPayment(ctx context.Context, billID string, payment models.Payment) error {
	if payment.PaidAt == 0 {
		payment.PaidAt = time.Now().UnixMilli()
	}

	res, err := s.bills.UpdateOne(ctx,
		bson.M{"_id": billID},
		bson.M{"$push": bson.M{"payments": toPaymentDocument(payment)}},
	)
	if err != nil {
		return fmt.Errorf("failed to add payment: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	return nil
}

// CreateGroup inserts a group; the unique (owner, name) index rejects duplicates.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().UnixMilli()
	}

	_, err := s.groups.InsertOne(ctx, groupDocument{
		ID:        group.ID,
		Name:      group.Name,
		Owner:     group.Owner,
		CreatedAt: group.CreatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("group %q: %w", group.Name, storage.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID.
func (s *Store) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	var doc groupDocument
	err := s.groups.FindOne(ctx, bson.M{"_id": groupID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return doc.toModel(), nil
}

// ListGroupsByOwner retrieves the groups owned by a user, oldest first.
func (s *Store) ListGroupsByOwner(ctx context.Context, owner string) ([]*models.Group, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := s.groups.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	var docs []groupDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode groups: %w", err)
	}

	groups := make([]*models.Group, len(docs))
	for i, doc := range docs {
		groups[i] = doc.toModel()
	}
	return groups, nil
}

// CreateInvitation inserts an invitation document.
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

	_, err := s.invitations.InsertOne(ctx, invitationDocument{
		ID:        inv.ID,
		GroupID:   inv.GroupID,
		GroupName: inv.GroupName,
		Sender:    inv.Sender,
		Receiver:  inv.Receiver,
		Status:    string(inv.Status),
		CreatedAt: inv.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to insert invitation: %w", err)
	}
	return nil
}

// ListInvitations retrieves the invitations a user received with the given status.
func (s *Store) ListInvitations(ctx context.Context, receiver string, status models.InvitationStatus) ([]*models.Invitation, error) {
	return s.findInvitations(ctx, bson.M{"receiver_username": receiver, "status": string(status)})
}

// ListInvitationsByGroup retrieves a group's invitations with the given status.
func (s *Store) ListInvitationsByGroup(ctx context.Context, groupID string, status models.InvitationStatus) ([]*models.Invitation, error) {
	return s.findInvitations(ctx, bson.M{"group_id": groupID, "status": string(status)})
}

// UpdateInvitationStatus sets an invitation's status.
func (s *Store) UpdateInvitationStatus(ctx context.Context, invitationID string, status models.InvitationStatus) error {
	res, err := s.invitations.UpdateOne(ctx,
		bson.M{"_id": invitationID},
		bson.M{"$set": bson.M{"status": string(status)}},
	)
	if err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("invitation %s: %w", invitationID, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) findInvitations(ctx context.Context, filter bson.M) ([]*models.Invitation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.invitations.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}

	var docs []invitationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode invitations: %w", err)
	}

	invitations := make([]*models.Invitation, len(docs))
	for i, doc := range docs {
		invitations[i] = doc.toModel()
	}
	return invitations, nil
}
