package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/grigorev-dev/timetable-api/internal/models"
	"github.com/grigorev-dev/timetable-api/internal/timetable"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
)

func newStoreFixture(t *testing.T) *timetable.Store {
	t.Helper()
	return timetable.NewStore(timetable.Options{CrossGroupExclusive: true}, zap.NewNop())
}

func seedSubject(t *testing.T, store *timetable.Store, groupID int64, teacher, name string, hours int) *models.Subject {
	t.Helper()
	subj, err := store.CreateSubject(groupID, timetable.SubjectParams{
		Teacher:    teacher,
		Name:       name,
		TotalHours: hours,
		MaxPerDay:  2,
		MaxPerWeek: 10,
	})
	require.NoError(t, err)
	return subj
}

type invalidatorStub struct {
	invalidated []int64
	flushed     int
}

func (s *invalidatorStub) Invalidate(ctx context.Context, groupID int64) {
	s.invalidated = append(s.invalidated, groupID)
}

func (s *invalidatorStub) InvalidateAll(ctx context.Context) {
	s.flushed++
}

type cacheStub struct {
	values map[string][]byte
	sets   int
}

func newCacheStub() *cacheStub {
	return &cacheStub{values: map[string][]byte{}}
}

func (c *cacheStub) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := c.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *cacheStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = raw
	c.sets++
	return nil
}

func (c *cacheStub) Delete(ctx context.Context, key string) error {
	delete(c.values, key)
	return nil
}

func (c *cacheStub) DeleteByPattern(ctx context.Context, pattern string) error {
	c.values = map[string][]byte{}
	return nil
}
