package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nutriplan/v1/internal/infrastructure/persistence/memory"
	"github.com/nutriplan/v1/internal/ports/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type MockAdviceStore struct {
	mock.Mock
}

func (m *MockAdviceStore) FindByUser(ctx context.Context, userID int64) (*outbound.MedicalAdvice, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.MedicalAdvice), args.Error(1)
}

func (m *MockAdviceStore) Save(ctx context.Context, advice *outbound.MedicalAdvice) error {
	args := m.Called(ctx, advice)
	return args.Error(0)
}

// failingCache errors on every operation.
type failingCache struct{}

func (failingCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("cache down")
}

func (failingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errors.New("cache down")
}

func (failingCache) Delete(ctx context.Context, key string) error {
	return errors.New("cache down")
}

func (failingCache) Exists(ctx context.Context, key string) (bool, error) {
	return false, errors.New("cache down")
}

func sampleAdvice(userID int64) *outbound.MedicalAdvice {
	return &outbound.MedicalAdvice{
		UserID:     userID,
		Conditions: []string{"diabetes"},
		Notes:      "Low glycemic diet.",
		Avoid:      []string{"processed sugar"},
	}
}

func TestFindByUser_StoreHitBackfillsCache(t *testing.T) {
	store := &MockAdviceStore{}
	store.On("FindByUser", mock.Anything, int64(1)).Return(sampleAdvice(1), nil).Once()
	mem := memory.NewCacheRepository()
	defer mem.Close()
	repo := NewMedicalAdviceRepository(store, mem, time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	first, err := repo.FindByUser(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, first)

	// Second read is served from cache; the store expectation is Once.
	second, err := repo.FindByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	store.AssertExpectations(t)
}

func TestFindByUser_MissReturnsNilWithoutBackfill(t *testing.T) {
	store := &MockAdviceStore{}
	store.On("FindByUser", mock.Anything, int64(2)).Return(nil, nil).Twice()
	mem := memory.NewCacheRepository()
	defer mem.Close()
	repo := NewMedicalAdviceRepository(store, mem, time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	advice, err := repo.FindByUser(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, advice)

	// A nil result is never cached, so the store is consulted again.
	_, err = repo.FindByUser(ctx, 2)
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestFindByUser_CacheFailureFallsThrough(t *testing.T) {
	store := &MockAdviceStore{}
	store.On("FindByUser", mock.Anything, int64(3)).Return(sampleAdvice(3), nil)
	repo := NewMedicalAdviceRepository(store, failingCache{}, time.Minute, zaptest.NewLogger(t))

	advice, err := repo.FindByUser(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, sampleAdvice(3), advice)
}

func TestFindByUser_CorruptEntryEvictedAndRefetched(t *testing.T) {
	store := &MockAdviceStore{}
	store.On("FindByUser", mock.Anything, int64(4)).Return(sampleAdvice(4), nil).Once()
	mem := memory.NewCacheRepository()
	defer mem.Close()
	repo := NewMedicalAdviceRepository(store, mem, time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, mem.Set(ctx, "medical-advice:4", []byte("not json"), time.Minute))

	advice, err := repo.FindByUser(ctx, 4)

	require.NoError(t, err)
	assert.Equal(t, sampleAdvice(4), advice)
	store.AssertExpectations(t)
}

func TestFindByUser_StoreErrorPropagates(t *testing.T) {
	store := &MockAdviceStore{}
	cause := errors.New("db gone")
	store.On("FindByUser", mock.Anything, mock.Anything).Return(nil, cause)
	mem := memory.NewCacheRepository()
	defer mem.Close()
	repo := NewMedicalAdviceRepository(store, mem, time.Minute, zaptest.NewLogger(t))

	_, err := repo.FindByUser(context.Background(), 5)

	assert.ErrorIs(t, err, cause)
}

func TestSave_WritesThroughAndWarmsCache(t *testing.T) {
	store := &MockAdviceStore{}
	store.On("Save", mock.Anything, mock.Anything).Return(nil)
	mem := memory.NewCacheRepository()
	defer mem.Close()
	repo := NewMedicalAdviceRepository(store, mem, time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleAdvice(6)))

	// The following read is served without touching the store.
	advice, err := repo.FindByUser(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, sampleAdvice(6), advice)
	store.AssertNotCalled(t, "FindByUser", mock.Anything, mock.Anything)
}

func TestSave_StoreErrorSkipsCache(t *testing.T) {
	store := &MockAdviceStore{}
	cause := errors.New("write failed")
	store.On("Save", mock.Anything, mock.Anything).Return(cause)
	store.On("FindByUser", mock.Anything, int64(7)).Return(nil, nil)
	mem := memory.NewCacheRepository()
	defer mem.Close()
	repo := NewMedicalAdviceRepository(store, mem, time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	err := repo.Save(ctx, sampleAdvice(7))
	assert.ErrorIs(t, err, cause)

	// Nothing was cached for the failed write.
	advice, err := repo.FindByUser(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, advice)
}
