package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"quizquest/services"
)

func newTestTimerService(t *testing.T) (*services.TimerService, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })
	return services.NewTimerService(client), server
}

func TestTimerService_StartAndRemaining(t *testing.T) {
	timerService, server := newTestTimerService(t)
	ctx := context.Background()

	timer, err := timerService.StartTimer(ctx, 1, 2, 10)
	require.NoError(t, err)
	require.NotEmpty(t, timer.ID)
	require.Equal(t, 10, timer.Duration)
	require.Equal(t, 10*time.Minute, timer.EndTime.Sub(timer.StartTime))

	remaining, err := timerService.RemainingTime(ctx, 1, 2)
	require.NoError(t, err)
	require.InDelta(t, 600, remaining, 2)

	// The Redis key outlives the countdown by the grace window
	ttl := server.TTL("timer:1:2")
	require.Greater(t, ttl, 10*time.Minute)
	require.LessOrEqual(t, ttl, 15*time.Minute)
}

func TestTimerService_StartTimer_DefaultDuration(t *testing.T) {
	timerService, _ := newTestTimerService(t)

	timer, err := timerService.StartTimer(context.Background(), 1, 2, 0)
	require.NoError(t, err)
	require.Equal(t, 30, timer.Duration)
}

func TestTimerService_StartTimer_Overwrites(t *testing.T) {
	timerService, _ := newTestTimerService(t)
	ctx := context.Background()

	first, err := timerService.StartTimer(ctx, 1, 2, 5)
	require.NoError(t, err)
	second, err := timerService.StartTimer(ctx, 1, 2, 20)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	remaining, err := timerService.RemainingTime(ctx, 1, 2)
	require.NoError(t, err)
	require.InDelta(t, 1200, remaining, 2)
}

func TestTimerService_RemainingTime_NotFound(t *testing.T) {
	timerService, _ := newTestTimerService(t)

	_, err := timerService.RemainingTime(context.Background(), 9, 9)
	require.ErrorIs(t, err, services.ErrTimerNotFound)
}

func TestTimerService_RemainingTime_ClampsAtZero(t *testing.T) {
	timerService, server := newTestTimerService(t)

	// Seed a timer whose deadline already passed but whose key has not
	// expired yet, as during the grace window
	expired := services.QuizTimer{
		ID:        "expired",
		QuizID:    1,
		StudentID: 2,
		StartTime: time.Now().Add(-2 * time.Minute),
		EndTime:   time.Now().Add(-time.Minute),
		Duration:  1,
	}
	data, err := json.Marshal(expired)
	require.NoError(t, err)
	require.NoError(t, server.Set("timer:1:2", string(data)))

	remaining, err := timerService.RemainingTime(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Zero(t, remaining)
}

func TestTimerService_ClearTimer(t *testing.T) {
	timerService, _ := newTestTimerService(t)
	ctx := context.Background()

	_, err := timerService.StartTimer(ctx, 1, 2, 5)
	require.NoError(t, err)
	require.NoError(t, timerService.ClearTimer(ctx, 1, 2))

	_, err = timerService.RemainingTime(ctx, 1, 2)
	require.ErrorIs(t, err, services.ErrTimerNotFound)

	// Clearing an absent timer is not an error
	require.NoError(t, timerService.ClearTimer(ctx, 1, 2))
}

func TestFormatTime(t *testing.T) {
	cases := map[int]string{
		0:    "0:00",
		9:    "0:09",
		60:   "1:00",
		95:   "1:35",
		600:  "10:00",
		3599: "59:59",
	}
	for seconds, want := range cases {
		require.Equal(t, want, services.FormatTime(seconds))
	}
}
