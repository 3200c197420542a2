package mongo

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/healthhub/fitness-api/internal/core/domain"

	"github.com/healthhub/fitness-api/internal/store"
)

func TestToBSON_TranslatesOperators(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := store.Where(
		store.Eq("user_id", int64(3)),
		store.Gte("date", day),
		store.Lt("date", day.AddDate(0, 0, 7)),
		store.In("type", "steps", "water"),
		store.Between("current", 1, 5),
	)

	got := toBSON(f)

	if v := got["user_id"].(bson.M)["$eq"]; v != int64(3) {
		t.Fatalf("expected $eq 3, got %v", v)
	}
	date := got["date"].(bson.M)
	if date["$gte"] != day || date["$lt"] != day.AddDate(0, 0, 7) {
		t.Fatalf("unexpected date range: %v", date)
	}
	in, ok := got["type"].(bson.M)["$in"].([]any)
	if !ok || len(in) != 2 {
		t.Fatalf("unexpected $in: %v", got["type"])
	}
	between := got["current"].(bson.M)
	if between["$gte"] != 1 || between["$lte"] != 5 {
		t.Fatalf("unexpected between: %v", between)
	}
}

func TestToBSON_EmptyFilterMatchesAll(t *testing.T) {
	if got := toBSON(nil); len(got) != 0 {
		t.Fatalf("expected empty query, got %v", got)
	}
}

func TestWriteError_MapsDuplicateKey(t *testing.T) {
	c := &Collection[domain.User, *domain.User]{name: "users"}

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	if err := c.writeError("insert", dup); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	other := errors.New("connection reset")
	err := c.writeError("insert", other)
	if errors.Is(err, store.ErrDuplicate) || !errors.Is(err, other) {
		t.Fatalf("unexpected mapping: %v", err)
	}
}
