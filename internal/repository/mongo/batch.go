package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultBatchSize keeps each delete page well under the store's
// per-operation document limit.
const DefaultBatchSize = 400

// pageFetcher returns up to limit ids of documents still matching the
// predicate. pageDeleter removes one fetched page as a single store call:
// either every id in the page is removed or the call errors.
type pageFetcher func(ctx context.Context, limit int) ([]primitive.ObjectID, error)
type pageDeleter func(ctx context.Context, ids []primitive.ObjectID) error

// deletePaged drives the fetch/delete loop: fetch up to batchSize matches,
// delete them as one page, stop when a fetch comes back short or empty. Not
// atomic across pages; a concurrent writer can add matching documents behind
// the loop. Accepted for the low-concurrency admin path.
func deletePaged(ctx context.Context, fetch pageFetcher, del pageDeleter, batchSize int) error {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	for {
		ids, err := fetch(ctx, batchSize)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := del(ctx, ids); err != nil {
			return err
		}

		// A short page means the query is exhausted.
		if len(ids) < batchSize {
			return nil
		}
	}
}

// deleteInBatches removes every document matching filter, in pages of at
// most batchSize documents.
func deleteInBatches(ctx context.Context, coll *mongo.Collection, filter bson.M, batchSize int) error {
	fetch := func(ctx context.Context, limit int) ([]primitive.ObjectID, error) {
		// Ids only; the documents themselves are not needed.
		findOpts := options.Find().
			SetLimit(int64(limit)).
			SetProjection(bson.M{"_id": 1})

		cursor, err := coll.Find(ctx, filter, findOpts)
		if err != nil {
			return nil, err
		}

		var page []struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.All(ctx, &page); err != nil {
			return nil, err
		}

		ids := make([]primitive.ObjectID, len(page))
		for i, doc := range page {
			ids[i] = doc.ID
		}
		return ids, nil
	}

	del := func(ctx context.Context, ids []primitive.ObjectID) error {
		_, err := coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
		return err
	}

	return deletePaged(ctx, fetch, del, batchSize)
}
