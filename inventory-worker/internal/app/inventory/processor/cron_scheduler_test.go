package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartCleanupService мок для CartCleanupServiceInterface
type MockCartCleanupService struct {
	mock.Mock
}

func (m *MockCartCleanupService) PurgeAbandoned(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestCronScheduler_Start_RunsInitialPurge(t *testing.T) {
	// Arrange
	svc := new(MockCartCleanupService)
	scheduler := NewCronScheduler(svc)
	svc.On("PurgeAbandoned", mock.Anything).Return(int64(2), nil)

	// Act
	err := scheduler.Start(context.Background(), "0 3 * * *")
	defer scheduler.Stop()

	// Assert
	require.NoError(t, err)
	assert.Len(t, scheduler.GetEntries(), 1)
	svc.AssertNumberOfCalls(t, "PurgeAbandoned", 1)
}

func TestCronScheduler_Start_InvalidSchedule(t *testing.T) {
	svc := new(MockCartCleanupService)
	scheduler := NewCronScheduler(svc)

	err := scheduler.Start(context.Background(), "every night")

	assert.Error(t, err)
	assert.Empty(t, scheduler.GetEntries())
	svc.AssertNotCalled(t, "PurgeAbandoned", mock.Anything)
}

func TestCronScheduler_PurgeErrorDoesNotFailStart(t *testing.T) {
	svc := new(MockCartCleanupService)
	scheduler := NewCronScheduler(svc)
	svc.On("PurgeAbandoned", mock.Anything).Return(int64(0), errors.New("mongo down"))

	err := scheduler.Start(context.Background(), "@hourly")
	defer scheduler.Stop()

	assert.NoError(t, err)
}
