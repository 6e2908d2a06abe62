package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arquifreelas/marketplace-api/internal/core/domain"
	"github.com/arquifreelas/marketplace-api/internal/core/ports"
)

const (
	invoicesCollection     = "invoices"
	transactionsCollection = "transactions"
)

// InvoiceRepository implements ports.InvoiceRepository using MongoDB.
// Invoices and transactions live in separate collections; the two-step
// mark-paid write is not wrapped in a multi-document transaction.
type InvoiceRepository struct {
	invoices     *mongo.Collection
	transactions *mongo.Collection
}

func NewInvoiceRepository(db *mongo.Database) *InvoiceRepository {
	return &InvoiceRepository{
		invoices:     db.Collection(invoicesCollection),
		transactions: db.Collection(transactionsCollection),
	}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if inv.ID == "" {
		inv.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.invoices.InsertOne(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var inv domain.Invoice
	if err := r.invoices.FindOne(ctx, bson.M{"_id": id}).Decode(&inv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// List returns invoices newest-first, capped at limit.
func (r *InvoiceRepository) List(ctx context.Context, limit int64) ([]*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := r.invoices.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	invoices := []*domain.Invoice{}
	if err := cur.All(ctx, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// All returns every invoice, for the admin overview aggregation.
func (r *InvoiceRepository) All(ctx context.Context) ([]*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.invoices.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	invoices := []*domain.Invoice{}
	if err := cur.All(ctx, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// MarkPaid sets status=paid and paid_at, returning the updated row. It does
// not guard against the invoice already being paid.
func (r *InvoiceRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":  string(domain.InvoicePaid),
		"paid_at": paidAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var inv domain.Invoice
	if err := r.invoices.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&inv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepository) InsertTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if tx.ID == "" {
		tx.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.transactions.InsertOne(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// TotalsByUser aggregates paid amounts per user, highest first.
func (r *InvoiceRepository) TotalsByUser(ctx context.Context, limit int64) ([]ports.UserInvoiceTotal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": string(domain.InvoicePaid)}}},
		{{Key: "$group", Value: bson.M{"_id": "$user_id", "total": bson.M{"$sum": "$amount"}}}},
		{{Key: "$sort", Value: bson.M{"total": -1}}},
		{{Key: "$limit", Value: limit}},
	}

	cur, err := r.invoices.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		UserID string  `bson:"_id"`
		Total  float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	totals := make([]ports.UserInvoiceTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, ports.UserInvoiceTotal{UserID: row.UserID, Total: row.Total})
	}
	return totals, nil
}

// EnsureIndexes creates the recency and lookup indexes.
func (r *InvoiceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.invoices.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = r.transactions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "invoice_id", Value: 1}}},
	})
	return err
}
