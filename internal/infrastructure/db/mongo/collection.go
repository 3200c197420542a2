package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healthhub/fitness-api/internal/store"
)

const countersCollection = "counters"

// Collection is a store.Collection backed by a MongoDB collection. Integer ids
// come from a per-collection sequence document in the counters collection.
type Collection[T any, PT store.Record[T]] struct {
	col      *mongo.Collection
	counters *mongo.Collection
	name     string
}

// NewCollection binds a typed collection to db.
func NewCollection[T any, PT store.Record[T]](db *mongo.Database, name string) *Collection[T, PT] {
	return &Collection[T, PT]{
		col:      db.Collection(name),
		counters: db.Collection(countersCollection),
		name:     name,
	}
}

func (c *Collection[T, PT]) Create(ctx context.Context, rec *T) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := c.nextID(ctx)
	if err != nil {
		return nil, err
	}

	item := *rec
	PT(&item).SetEntityID(id)
	PT(&item).Touch(time.Now().UTC(), true)

	if _, err := c.col.InsertOne(ctx, &item); err != nil {
		return nil, c.writeError("insert", err)
	}
	return &item, nil
}

func (c *Collection[T, PT]) FindByID(ctx context.Context, id int64) (*T, error) {
	return c.FindOne(ctx, store.Where(store.Eq("_id", id)))
}

func (c *Collection[T, PT]) FindOne(ctx context.Context, f store.Filter) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var out T
	err := c.col.FindOne(ctx, toBSON(f), options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("find %s: %w", c.name, err)
	}
	return &out, nil
}

func (c *Collection[T, PT]) FindAll(ctx context.Context, f store.Filter) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := c.col.Find(ctx, toBSON(f), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.name, err)
	}
	defer cursor.Close(ctx)

	out := make([]*T, 0)
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.name, err)
		}
		out = append(out, &item)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", c.name, err)
	}
	return out, nil
}

// Update replaces the whole document. The replace is guarded on updated_at so
// a concurrent writer makes this call fail instead of being overwritten.
func (c *Collection[T, PT]) Update(ctx context.Context, id int64, mutate func(*T) error) (*T, error) {
	current, err := c.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	item := *current
	if err := mutate(&item); err != nil {
		return nil, err
	}
	prev, _ := PT(current).Field("updated_at")
	PT(&item).SetEntityID(id)
	PT(&item).Touch(time.Now().UTC(), false)

	res, err := c.col.ReplaceOne(ctx, bson.M{"_id": id, "updated_at": prev}, &item)
	if err != nil {
		return nil, c.writeError("update", err)
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("update %s %d: concurrent modification", c.name, id)
	}
	return &item, nil
}

func (c *Collection[T, PT]) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", c.name, err)
	}
	return res.DeletedCount > 0, nil
}

// writeError reports unique index violations as store.ErrDuplicate.
func (c *Collection[T, PT]) writeError(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s %s: %w", op, c.name, store.ErrDuplicate)
	}
	return fmt.Errorf("%s %s: %w", op, c.name, err)
}

type counter struct {
	Seq int64 `bson:"seq"`
}

func (c *Collection[T, PT]) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc counter
	err := c.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": c.name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next id for %s: %w", c.name, err)
	}
	return doc.Seq, nil
}

// toBSON translates a store.Filter into a MongoDB query document.
func toBSON(f store.Filter) bson.M {
	q := bson.M{}
	for _, cond := range f {
		ops, _ := q[cond.Field].(bson.M)
		if ops == nil {
			ops = bson.M{}
		}
		switch cond.Op {
		case store.OpBetween:
			ops["$gte"] = cond.Value
			ops["$lte"] = cond.Upper
		case store.OpIn:
			ops["$in"] = cond.Value
		default:
			ops[string(cond.Op)] = cond.Value
		}
		q[cond.Field] = ops
	}
	return q
}
