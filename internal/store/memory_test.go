package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthhub/fitness-api/internal/core/domain"
	"github.com/healthhub/fitness-api/internal/store"
)

func seedGoals(t *testing.T, c store.Collection[domain.Goal]) {
	t.Helper()
	ctx := context.Background()
	for _, g := range []domain.Goal{
		{UserID: 1, Type: domain.GoalSteps, Target: 10000},
		{UserID: 1, Type: domain.GoalWater, Target: 8},
		{UserID: 2, Type: domain.GoalSteps, Target: 5000},
		{UserID: 3, Type: domain.GoalCalories, Target: 500},
	} {
		_, err := c.Create(ctx, &g)
		require.NoError(t, err)
	}
}

func TestMemory_CreateAssignsSequentialIDs(t *testing.T) {
	c := store.NewMemory[domain.Goal]()
	ctx := context.Background()

	first, err := c.Create(ctx, &domain.Goal{UserID: 1})
	require.NoError(t, err)
	second, err := c.Create(ctx, &domain.Goal{UserID: 1})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
}

func TestMemory_IDsNotReusedAfterDelete(t *testing.T) {
	c := store.NewMemory[domain.Goal]()
	ctx := context.Background()

	_, _ = c.Create(ctx, &domain.Goal{})
	last, _ := c.Create(ctx, &domain.Goal{})

	ok, err := c.Delete(ctx, last.ID)
	require.NoError(t, err)
	require.True(t, ok)

	next, err := c.Create(ctx, &domain.Goal{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), next.ID)

	ok, err = c.Delete(ctx, 99)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	c := store.NewMemory[domain.Goal]()
	ctx := context.Background()

	created, _ := c.Create(ctx, &domain.Goal{Target: 10})
	created.Target = 999

	got, err := c.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(10), got.Target)
}

func TestMemory_FindByIDMissing(t *testing.T) {
	c := store.NewMemory[domain.Goal]()
	_, err := c.FindByID(context.Background(), 7)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestMemory_FilterOperators(t *testing.T) {
	c := store.NewMemory[domain.Goal]()
	seedGoals(t, c)
	ctx := context.Background()

	cases := []struct {
		name   string
		filter store.Filter
		want   []int64
	}{
		{"all", nil, []int64{1, 2, 3, 4}},
		{"eq", store.Where(store.Eq("user_id", int64(1))), []int64{1, 2}},
		{"ne", store.Where(store.Ne("type", domain.GoalSteps)), []int64{2, 4}},
		{"gt", store.Where(store.Gt("user_id", 1)), []int64{3, 4}},
		{"gte", store.Where(store.Gte("user_id", 2)), []int64{3, 4}},
		{"lt", store.Where(store.Lt("user_id", 2)), []int64{1, 2}},
		{"lte", store.Where(store.Lte("user_id", 2)), []int64{1, 2, 3}},
		{"in", store.Where(store.In("type", domain.GoalWater, domain.GoalCalories)), []int64{2, 4}},
		{"between", store.Where(store.Between("user_id", 2, 3)), []int64{3, 4}},
		{"and", store.Where(store.Eq("user_id", int64(1)), store.Eq("type", domain.GoalWater)), []int64{2}},
		{"unknown field", store.Where(store.Eq("nope", 1)), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.FindAll(ctx, tc.filter)
			require.NoError(t, err)
			ids := make([]int64, 0, len(got))
			for _, g := range got {
				ids = append(ids, g.ID)
			}
			if tc.want == nil {
				assert.Empty(t, ids)
				return
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestMemory_FilterByTime(t *testing.T) {
	c := store.NewMemory[domain.ActivityStat]()
	ctx := context.Background()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := c.Create(ctx, &domain.ActivityStat{UserID: 1, Date: day.AddDate(0, 0, i)})
		require.NoError(t, err)
	}

	got, err := c.FindAll(ctx, store.Where(store.Gte("date", day.AddDate(0, 0, 3))))
	require.NoError(t, err)
	assert.Len(t, got, 2)

	one, err := c.FindOne(ctx, store.Where(store.Eq("user_id", int64(1)), store.Eq("date", day.AddDate(0, 0, 1))))
	require.NoError(t, err)
	assert.Equal(t, int64(2), one.ID)
}

func TestMemory_UpdateAppliesPatch(t *testing.T) {
	c := store.NewMemory[domain.Goal]()
	ctx := context.Background()
	created, _ := c.Create(ctx, &domain.Goal{Target: 10})

	updated, err := c.Update(ctx, created.ID, func(g *domain.Goal) error {
		g.Current = 4
		g.ID = 500
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, float64(4), updated.Current)
	assert.Equal(t, float64(10), updated.Target)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	_, err = c.Update(ctx, 42, func(*domain.Goal) error { return nil })
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemory_UpdateAbortsOnMutateError(t *testing.T) {
	c := store.NewMemory[domain.Goal]()
	ctx := context.Background()
	created, _ := c.Create(ctx, &domain.Goal{Target: 10})
	boom := errors.New("boom")

	_, err := c.Update(ctx, created.ID, func(g *domain.Goal) error {
		g.Target = 1
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, _ := c.FindByID(ctx, created.ID)
	assert.Equal(t, float64(10), got.Target)
}

func TestMemory_ResultsDoNotShareMemory(t *testing.T) {
	c := store.NewMemory[domain.Workout]()
	ctx := context.Background()

	input := &domain.Workout{Name: "Circuit", Exercises: []domain.Exercise{{Name: "Squats", Reps: 10}}}
	created, err := c.Create(ctx, input)
	require.NoError(t, err)

	input.Exercises[0].Name = "changed by caller"
	created.Exercises[0].Name = "changed via result"

	found, err := c.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Squats", found.Exercises[0].Name)

	found.Exercises[0].Reps = 99
	all, err := c.FindAll(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, all[0].Exercises[0].Reps)
}

func TestMemory_PointerFieldsAreCopied(t *testing.T) {
	c := store.NewMemory[domain.User]()
	ctx := context.Background()

	city := "Porto"
	u, err := c.Create(ctx, &domain.User{Username: "alice", Location: &city})
	require.NoError(t, err)
	city = "Lisbon"
	*u.Location = "Madrid"

	updated, err := c.Update(ctx, u.ID, func(u *domain.User) error {
		*u.Location += "!"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Porto!", *updated.Location)

	*updated.Location = "Faro"
	stored, err := c.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Porto!", *stored.Location)
}
