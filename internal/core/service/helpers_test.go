package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/core/ports"
	"github.com/healthhub/fitness-api/internal/infrastructure/repository"
)

func newRepos() *repository.Repositories {
	return repository.New(repository.MemoryCollections())
}

type fixedGenerator struct{}

func (fixedGenerator) Recommendation(recType string) string { return "do more " + recType }
func (fixedGenerator) Insight(prompt string) string         { return "advice for " + prompt }

// syncQueue generates inline so tests can assert right after Register.
type syncQueue struct {
	gen interface {
		Generate(ctx context.Context, userID int64) ([]*domain.Recommendation, error)
	}
}

func (q syncQueue) Enqueue(userID int64) { _, _ = q.gen.Generate(context.Background(), userID) }

type recordingQueue struct{ users []int64 }

func (q *recordingQueue) Enqueue(userID int64) { q.users = append(q.users, userID) }

type activityEntry struct {
	userID int64
	kind   string
}

type stubActivityLog struct {
	mu       sync.Mutex
	entries  []activityEntry
	sessions []int64
	err      error
}

func (l *stubActivityLog) LogActivity(_ context.Context, userID int64, kind string, _ map[string]any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, activityEntry{userID, kind})
	return l.err
}

func (l *stubActivityLog) LogWorkoutSession(_ context.Context, s *domain.WorkoutSession) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sessions = append(l.sessions, s.ID)
	return l.err
}

type notification struct {
	update     domain.ChallengeUpdate
	recipients []int64
}

type recordingNotifier struct {
	sent []notification
}

func (n *recordingNotifier) NotifyChallengeUpdate(_ context.Context, u domain.ChallengeUpdate, recipients []int64) {
	n.sent = append(n.sent, notification{u, recipients})
}

type mapCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	gets    int
	hits    int
	deletes []string
}

func newMapCache() *mapCache { return &mapCache{data: make(map[string][]byte)} }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.data[key]
	if ok {
		c.hits++
	}
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *mapCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes = append(c.deletes, prefix)
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func createUser(t *testing.T, repos *repository.Repositories, username string) *domain.User {
	t.Helper()
	u, err := repos.Users.Create(context.Background(), &domain.User{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: strings.ToUpper(username[:1]) + username[1:],
		LastName:  "Tester",
		Role:      domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func expectKind(t *testing.T, err, kind error) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
}

var _ ports.RecommendationQueue = syncQueue{}

func nop() zerolog.Logger { return zerolog.Nop() }
