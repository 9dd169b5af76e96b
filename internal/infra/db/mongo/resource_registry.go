package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	domainresource "stayhub/internal/domain/resource"
)

// ResourceRegistry reads the resource directory maintained by the listing
// subsystem. The scheduling core never writes to it.
type ResourceRegistry struct {
	col *mongo.Collection
}

func NewResourceRegistry(db *mongo.Database) *ResourceRegistry {
	return &ResourceRegistry{col: db.Collection("resources")}
}

func (r *ResourceRegistry) ByID(ctx context.Context, id domainresource.ResourceID) (*domainresource.Resource, error) {
	var doc resourceDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainresource.ErrResourceNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

type resourceDocument struct {
	ID          string `bson:"_id"`
	Kind        string `bson:"kind"`
	OwnerID     string `bson:"owner_id"`
	Granularity string `bson:"granularity"`
}

func (d resourceDocument) toAggregate() *domainresource.Resource {
	return &domainresource.Resource{
		ID:          domainresource.ResourceID(d.ID),
		Kind:        domainresource.Kind(d.Kind),
		OwnerID:     d.OwnerID,
		Granularity: domainresource.Granularity(d.Granularity),
	}
}

var _ domainresource.Registry = (*ResourceRegistry)(nil)
