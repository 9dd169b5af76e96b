package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainreservation "stayhub/internal/domain/reservation"
	domainresource "stayhub/internal/domain/resource"
	"stayhub/internal/domain/shared/interval"
)

type BlockRepository struct {
	blocks       *mongo.Collection
	reservations *mongo.Collection
}

func NewBlockRepository(db *mongo.Database) *BlockRepository {
	return &BlockRepository{
		blocks:       db.Collection("agg_block"),
		reservations: db.Collection("agg_reservation"),
	}
}

func (r *BlockRepository) ListForResource(ctx context.Context, id domainresource.ResourceID) ([]*domainreservation.BlockedPeriod, error) {
	cursor, err := r.blocks.Find(ctx, bson.M{"resource_id": string(id)}, options.Find().SetSort(bson.D{{Key: "span.start", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainreservation.BlockedPeriod
	for cursor.Next(ctx) {
		var doc blockDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

// Create runs in the caller's session transaction, like the reservation
// counterpart, so a block cannot slip under an in-flight reservation claim.
func (r *BlockRepository) Create(ctx context.Context, b *domainreservation.BlockedPeriod) error {
	conflicts, err := r.reservations.CountDocuments(ctx, overlapFilter(b.ResourceID, b.Span, bson.M{
		"status": bson.M{"$in": activeStatuses()},
	}))
	if err != nil {
		return err
	}
	if conflicts == 0 {
		conflicts, err = r.blocks.CountDocuments(ctx, overlapFilter(b.ResourceID, b.Span, nil))
		if err != nil {
			return err
		}
	}
	if conflicts > 0 {
		return domainreservation.ErrConflict
	}

	if _, err := r.blocks.InsertOne(ctx, newBlockDocument(b)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainreservation.ErrConflict
		}
		return err
	}
	return nil
}

func (r *BlockRepository) Delete(ctx context.Context, id domainresource.ResourceID, blockID domainreservation.BlockID) error {
	result, err := r.blocks.DeleteOne(ctx, bson.M{"_id": string(blockID), "resource_id": string(id)})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domainreservation.ErrBlockNotFound
	}
	return nil
}

type blockDocument struct {
	ID         string       `bson:"_id"`
	ResourceID string       `bson:"resource_id"`
	Span       spanDocument `bson:"span"`
	Reason     string       `bson:"reason"`
	CreatedAt  int64        `bson:"created_at"`
}

func newBlockDocument(b *domainreservation.BlockedPeriod) blockDocument {
	return blockDocument{
		ID:         string(b.ID),
		ResourceID: string(b.ResourceID),
		Span:       spanDocument{Start: b.Span.Start.UnixMilli(), End: b.Span.End.UnixMilli()},
		Reason:     b.Reason,
		CreatedAt:  b.CreatedAt.UnixMilli(),
	}
}

func (d blockDocument) toAggregate() *domainreservation.BlockedPeriod {
	return &domainreservation.BlockedPeriod{
		ID:         domainreservation.BlockID(d.ID),
		ResourceID: domainresource.ResourceID(d.ResourceID),
		Span:       interval.Interval{Start: timestampToTime(d.Span.Start), End: timestampToTime(d.Span.End)},
		Reason:     d.Reason,
		CreatedAt:  timestampToTime(d.CreatedAt),
	}
}

var _ domainreservation.BlockRepository = (*BlockRepository)(nil)
