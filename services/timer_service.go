package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrTimerNotFound = errors.New("no active timer for this quiz attempt")

// timerGrace keeps an expired timer readable for a short window so a late
// remaining-time poll sees 0 instead of "not found".
const timerGrace = 5 * time.Minute

type TimerService struct {
	redis *redis.Client
}

func NewTimerService(redis *redis.Client) *TimerService {
	return &TimerService{redis: redis}
}

// QuizTimer is the ephemeral countdown state for one attempt, held in Redis
// for the duration of the attempt plus a grace window.
type QuizTimer struct {
	ID        string    `json:"id"`
	QuizID    uint      `json:"quiz_id"`
	StudentID uint      `json:"student_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Duration  int       `json:"duration"` // minutes
}

func timerKey(quizID, studentID uint) string {
	return fmt.Sprintf("timer:%d:%d", quizID, studentID)
}

// StartTimer stores a fresh countdown for the (quiz, student) pair. Starting
// again overwrites the previous timer.
func (s *TimerService) StartTimer(ctx context.Context, quizID, studentID uint, duration int) (*QuizTimer, error) {
	if duration <= 0 {
		duration = 30
	}

	now := time.Now()
	timer := &QuizTimer{
		ID:        uuid.NewString(),
		QuizID:    quizID,
		StudentID: studentID,
		StartTime: now,
		EndTime:   now.Add(time.Duration(duration) * time.Minute),
		Duration:  duration,
	}

	data, err := json.Marshal(timer)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(duration)*time.Minute + timerGrace
	if err := s.redis.Set(ctx, timerKey(quizID, studentID), data, ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store timer in Redis: %w", err)
	}
	return timer, nil
}

// RemainingTime returns the whole seconds left on the attempt's timer,
// clamped at 0 once the deadline passes.
func (s *TimerService) RemainingTime(ctx context.Context, quizID, studentID uint) (int, error) {
	data, err := s.redis.Get(ctx, timerKey(quizID, studentID)).Result()
	if err == redis.Nil {
		return 0, ErrTimerNotFound
	}
	if err != nil {
		return 0, err
	}

	var timer QuizTimer
	if err := json.Unmarshal([]byte(data), &timer); err != nil {
		return 0, err
	}

	remaining := int(time.Until(timer.EndTime).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// ClearTimer drops the timer, typically right after the attempt is submitted.
func (s *TimerService) ClearTimer(ctx context.Context, quizID, studentID uint) error {
	return s.redis.Del(ctx, timerKey(quizID, studentID)).Err()
}

// FormatTime renders seconds as m:ss for display.
func FormatTime(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
