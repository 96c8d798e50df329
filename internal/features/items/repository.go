package items

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	errs "github.com/xyz-asif/lostfound/pkg/errors"
)

// Repository handles database interactions for lost/found reports
type Repository struct {
	collection *mongo.Collection
}

// NewRepository initializes the repository and creates necessary indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("items")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			// Free-text search over the descriptive fields
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "location", Value: "text"},
				{Key: "tags", Value: "text"},
			},
			Options: options.Index().
				SetWeights(bson.D{
					{Key: "title", Value: 10},
					{Key: "tags", Value: 5},
					{Key: "location", Value: 3},
					{Key: "description", Value: 1},
				}).
				SetName("item_text_search"),
		},
		{
			// Dominant filter combination on the listing page
			Keys: bson.D{
				{Key: "location", Value: 1},
				{Key: "category", Value: 1},
				{Key: "type", Value: 1},
				{Key: "status", Value: 1},
			},
		},
		{
			// Default recency ordering
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	})

	return &Repository{collection: collection}
}

// ParseID converts a client-supplied id. Malformed ids map to the same
// not-found error as missing documents, never a crash.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errs.ErrNotFound
	}
	return oid, nil
}

// Create inserts a new report.
func (r *Repository) Create(ctx context.Context, item *Item) error {
	result, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid
	}
	return nil
}

// GetByID finds a report by its id.
func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Item, error) {
	var item Item
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Find runs a listing query and returns the matching page plus the total
// match count.
func (r *Repository) Find(ctx context.Context, q ListQuery) ([]Item, int64, error) {
	filter := q.Filter()

	opts := options.Find().
		SetSort(q.Sort()).
		SetSkip(int64(q.Page.Skip())).
		SetLimit(int64(q.Page.Limit))
	if q.NeedsScore() {
		opts.SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}})
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	items := []Item{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// FindByOwner returns a page of the owner's reports, newest first.
func (r *Repository) FindByOwner(ctx context.Context, q MyItemsQuery, owner primitive.ObjectID) ([]Item, int64, error) {
	filter := q.Filter(owner)

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(q.Page.Skip())).
		SetLimit(int64(q.Page.Limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	items := []Item{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Update applies a partial $set and bumps updatedAt. Every write path
// goes through here so the timestamp contract holds at the store level.
func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) error {
	updates["updatedAt"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a report.
func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// viewIncrement builds the single-item fetch update. The counter only
// ever moves through $inc; writing views with $set would let concurrent
// fetches overwrite each other's counts.
func viewIncrement(now time.Time) bson.M {
	return bson.M{
		"$inc": bson.M{"views": 1},
		"$set": bson.M{"lastViewed": now},
	}
}

// IncrementViews bumps the view counter and lastViewed in one atomic
// update and returns the resulting document. Doing the increment at the
// store keeps concurrent detail-page fetches from losing counts.
func (r *Repository) IncrementViews(ctx context.Context, id primitive.ObjectID) (*Item, error) {
	update := viewIncrement(time.Now())
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item Item
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// CountByOwner returns per-filter counts for the stats endpoint.
func (r *Repository) CountByOwner(ctx context.Context, owner primitive.ObjectID, extra bson.M) (int64, error) {
	filter := bson.M{"userId": owner}
	for k, v := range extra {
		filter[k] = v
	}
	return r.collection.CountDocuments(ctx, filter)
}
