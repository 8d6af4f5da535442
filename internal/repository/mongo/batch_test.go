package mongo

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeDocSet simulates a matching document set behind fetch/delete pages.
type fakeDocSet struct {
	ids     []primitive.ObjectID
	fetches int
	deletes int
}

func newFakeDocSet(n int) *fakeDocSet {
	ids := make([]primitive.ObjectID, n)
	for i := range ids {
		ids[i] = primitive.NewObjectID()
	}
	return &fakeDocSet{ids: ids}
}

func (f *fakeDocSet) fetch(_ context.Context, limit int) ([]primitive.ObjectID, error) {
	f.fetches++
	if len(f.ids) < limit {
		limit = len(f.ids)
	}
	page := make([]primitive.ObjectID, limit)
	copy(page, f.ids[:limit])
	return page, nil
}

func (f *fakeDocSet) delete(_ context.Context, ids []primitive.ObjectID) error {
	f.deletes++
	if len(ids) > len(f.ids) {
		return errors.New("deleting more than exists")
	}
	f.ids = f.ids[len(ids):]
	return nil
}

func TestDeletePagedBatchCounts(t *testing.T) {
	cases := map[string]struct {
		docs        int
		batchSize   int
		wantDeletes int
	}{
		"empty set":          {docs: 0, batchSize: 5, wantDeletes: 0},
		"single short page":  {docs: 3, batchSize: 5, wantDeletes: 1},
		"exact multiple":     {docs: 10, batchSize: 5, wantDeletes: 2},
		"one over":           {docs: 11, batchSize: 5, wantDeletes: 3},
		"one under":          {docs: 9, batchSize: 5, wantDeletes: 2},
		"single doc pages":   {docs: 4, batchSize: 1, wantDeletes: 4},
		"default batch size": {docs: 3, batchSize: 0, wantDeletes: 1},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			set := newFakeDocSet(tc.docs)
			if err := deletePaged(context.Background(), set.fetch, set.delete, tc.batchSize); err != nil {
				t.Fatalf("deletePaged failed: %v", err)
			}
			if set.deletes != tc.wantDeletes {
				t.Fatalf("expected %d delete pages, got %d", tc.wantDeletes, set.deletes)
			}
			if len(set.ids) != 0 {
				t.Fatalf("expected all documents removed, %d left", len(set.ids))
			}
		})
	}
}

func TestDeletePagedEmptyIssuesOneFetch(t *testing.T) {
	set := newFakeDocSet(0)
	if err := deletePaged(context.Background(), set.fetch, set.delete, 400); err != nil {
		t.Fatalf("deletePaged failed: %v", err)
	}
	if set.fetches != 1 {
		t.Fatalf("expected exactly one fetch for an empty set, got %d", set.fetches)
	}
	if set.deletes != 0 {
		t.Fatalf("expected no delete calls for an empty set, got %d", set.deletes)
	}
}

// One exact-multiple set must terminate on the empty follow-up fetch rather
// than loop forever.
func TestDeletePagedExactMultipleTerminates(t *testing.T) {
	set := newFakeDocSet(10)
	if err := deletePaged(context.Background(), set.fetch, set.delete, 5); err != nil {
		t.Fatalf("deletePaged failed: %v", err)
	}
	if set.fetches != 3 {
		t.Fatalf("expected 3 fetches (5, 5, empty), got %d", set.fetches)
	}
}

func TestDeletePagedPropagatesDeleteError(t *testing.T) {
	set := newFakeDocSet(5)
	wantErr := errors.New("transient store failure")
	del := func(context.Context, []primitive.ObjectID) error { return wantErr }

	err := deletePaged(context.Background(), set.fetch, del, 2)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the delete error to propagate, got %v", err)
	}
	if len(set.ids) != 5 {
		t.Fatalf("failed page must not remove documents, %d left", len(set.ids))
	}
}
