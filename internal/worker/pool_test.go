package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-summary-server/internal/worker"
)

func TestRunTask_ReturnsResult(t *testing.T) {
	pool := worker.NewPool(2)

	value, err := worker.RunTask(context.Background(), pool, func() (int, error) {
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestRunTask_PropagatesError(t *testing.T) {
	pool := worker.NewPool(2)
	boom := errors.New("этап упал")

	_, err := worker.RunTask(context.Background(), pool, func() (string, error) {
		return "", boom
	})

	require.ErrorIs(t, err, boom)
}

func TestRunTask_TimeoutAbandonsWorker(t *testing.T) {
	pool := worker.NewPool(1)
	release := make(chan struct{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := worker.RunTask(ctx, pool, func() (int, error) {
		<-release
		return 0, nil
	})

	require.ErrorIs(t, err, context.DeadlineExceeded)

	// брошенный воркер освобождает слот, когда функция всё-таки вернётся
	close(release)

	value, err := worker.RunTask(context.Background(), pool, func() (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, value)
}

func TestRunTask_WaitsForFreeSlot(t *testing.T) {
	pool := worker.NewPool(1)
	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_, _ = worker.RunTask(context.Background(), pool, func() (int, error) {
			close(started)
			<-release
			return 0, nil
		})
	}()

	<-started

	// пул занят: вторая задача не получает слот до истечения контекста
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := worker.RunTask(ctx, pool, func() (int, error) {
		return 1, nil
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
}
