package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainreservation "stayhub/internal/domain/reservation"
	domainresource "stayhub/internal/domain/resource"
	"stayhub/internal/domain/shared/interval"
	"stayhub/internal/domain/shared/money"
)

type ReservationRepository struct {
	reservations *mongo.Collection
	blocks       *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{
		reservations: db.Collection("agg_reservation"),
		blocks:       db.Collection("agg_block"),
	}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ReservationID) (*domainreservation.Reservation, error) {
	var doc reservationDocument
	if err := r.reservations.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainreservation.ErrReservationNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ReservationRepository) ActiveForResource(ctx context.Context, id domainresource.ResourceID) ([]*domainreservation.Reservation, error) {
	return r.find(ctx, bson.M{"resource_id": string(id), "status": bson.M{"$in": activeStatuses()}})
}

func (r *ReservationRepository) ForResource(ctx context.Context, id domainresource.ResourceID) ([]*domainreservation.Reservation, error) {
	return r.find(ctx, bson.M{"resource_id": string(id)})
}

func (r *ReservationRepository) ListByRequester(ctx context.Context, requesterID string) ([]*domainreservation.Reservation, error) {
	return r.find(ctx, bson.M{"requester_id": requesterID})
}

// Create counts overlapping active holds and inserts inside the caller's
// session transaction, so the check and the write commit atomically. Run
// outside a transaction the count and insert are two separate operations
// and double-booking becomes possible again.
func (r *ReservationRepository) Create(ctx context.Context, res *domainreservation.Reservation) error {
	conflicts, err := r.reservations.CountDocuments(ctx, overlapFilter(res.ResourceID, res.Span, bson.M{
		"status": bson.M{"$in": activeStatuses()},
		"_id":    bson.M{"$ne": string(res.ID)},
	}))
	if err != nil {
		return err
	}
	if conflicts == 0 {
		conflicts, err = r.blocks.CountDocuments(ctx, overlapFilter(res.ResourceID, res.Span, nil))
		if err != nil {
			return err
		}
	}
	if conflicts > 0 {
		return domainreservation.ErrConflict
	}

	doc := newReservationDocument(res)
	doc.Version = 1
	if _, err := r.reservations.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainreservation.ErrConflict
		}
		return err
	}
	res.Version = doc.Version
	return nil
}

func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	doc := newReservationDocument(res)
	filter := bson.M{"_id": doc.ID, "version": res.Version}
	doc.Version = res.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(false)
	result, err := r.reservations.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domainreservation.ErrConcurrentUpdate
	}
	res.Version = doc.Version
	return nil
}

func (r *ReservationRepository) find(ctx context.Context, filter bson.M) ([]*domainreservation.Reservation, error) {
	cursor, err := r.reservations.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "span.start", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainreservation.Reservation
	for cursor.Next(ctx) {
		var doc reservationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func activeStatuses() []string {
	return []string{string(domainreservation.StatusRequested), string(domainreservation.StatusConfirmed)}
}

// overlapFilter matches documents whose half-open span intersects the
// candidate: start < candidate.end AND end > candidate.start.
func overlapFilter(id domainresource.ResourceID, span interval.Interval, extra bson.M) bson.M {
	filter := bson.M{
		"resource_id": string(id),
		"span.start":  bson.M{"$lt": span.End.UnixMilli()},
		"span.end":    bson.M{"$gt": span.Start.UnixMilli()},
	}
	for k, v := range extra {
		filter[k] = v
	}
	return filter
}

type reservationDocument struct {
	ID          string       `bson:"_id"`
	ResourceID  string       `bson:"resource_id"`
	RequesterID string       `bson:"requester_id"`
	Span        spanDocument `bson:"span"`
	Status      string       `bson:"status"`
	Amount      int64        `bson:"amount"`
	Currency    string       `bson:"currency"`
	CreatedAt   int64        `bson:"created_at"`
	UpdatedAt   int64        `bson:"updated_at"`
	Version     int64        `bson:"version"`
}

type spanDocument struct {
	Start int64 `bson:"start"`
	End   int64 `bson:"end"`
}

func newReservationDocument(res *domainreservation.Reservation) reservationDocument {
	return reservationDocument{
		ID:          string(res.ID),
		ResourceID:  string(res.ResourceID),
		RequesterID: res.RequesterID,
		Span:        spanDocument{Start: res.Span.Start.UnixMilli(), End: res.Span.End.UnixMilli()},
		Status:      string(res.Status),
		Amount:      res.Amount.Amount,
		Currency:    res.Amount.Currency,
		CreatedAt:   res.CreatedAt.UnixMilli(),
		UpdatedAt:   res.UpdatedAt.UnixMilli(),
		Version:     res.Version,
	}
}

func (d reservationDocument) toAggregate() *domainreservation.Reservation {
	return &domainreservation.Reservation{
		ID:          domainreservation.ReservationID(d.ID),
		ResourceID:  domainresource.ResourceID(d.ResourceID),
		RequesterID: d.RequesterID,
		Span:        interval.Interval{Start: timestampToTime(d.Span.Start), End: timestampToTime(d.Span.End)},
		Status:      domainreservation.Status(d.Status),
		Amount:      money.Money{Amount: d.Amount, Currency: d.Currency},
		CreatedAt:   timestampToTime(d.CreatedAt),
		UpdatedAt:   timestampToTime(d.UpdatedAt),
		Version:     d.Version,
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

var _ domainreservation.Repository = (*ReservationRepository)(nil)
