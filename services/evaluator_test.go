package services_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"quizquest/models"
	"quizquest/services"
)

func TestEvaluateSubmission(t *testing.T) {
	questions := []models.Question{
		{ID: 1, Position: 0, CorrectAnswer: 0, Marks: 5},
		{ID: 2, Position: 1, CorrectAnswer: 2, Marks: 5},
	}
	answers := []services.SubmittedAnswer{
		{SelectedAnswer: 0, TimeSpent: 12},
		{SelectedAnswer: 1, TimeSpent: 20},
	}

	result := services.EvaluateSubmission(questions, answers, 10)

	require.Equal(t, 5, result.Score)
	require.Equal(t, 10, result.TotalMarks)
	require.Equal(t, 50.0, result.Percentage)
	require.Equal(t, "F", result.Grade)

	require.Len(t, result.Answers, 2)
	require.Equal(t, models.AnswerRecord{QuestionID: 1, SelectedAnswer: 0, IsCorrect: true, TimeSpent: 12}, result.Answers[0])
	require.Equal(t, models.AnswerRecord{QuestionID: 2, SelectedAnswer: 1, IsCorrect: false, TimeSpent: 20}, result.Answers[1])
}

// A skipped question is submitted as a null selectedAnswer. It must score
// zero even when the question's answer key is the first option.
func TestEvaluateSubmission_SkippedQuestionNeverMatchesKeyZero(t *testing.T) {
	questions := []models.Question{
		{ID: 1, Position: 0, CorrectAnswer: 0, Marks: 5},
	}

	var answers []services.SubmittedAnswer
	require.NoError(t, json.Unmarshal([]byte(`[{"selectedAnswer": null}]`), &answers))

	result := services.EvaluateSubmission(questions, answers, 5)

	require.Equal(t, 0, result.Score)
	require.Equal(t, 0.0, result.Percentage)
	require.Equal(t, "F", result.Grade)
	require.Len(t, result.Answers, 1)
	require.False(t, result.Answers[0].IsCorrect)
	require.Equal(t, models.NoAnswer, result.Answers[0].SelectedAnswer)
}

func TestEvaluateSubmission_ScoreIsSumOfMatchedMarks(t *testing.T) {
	questions := []models.Question{
		{ID: 1, CorrectAnswer: 1, Marks: 2},
		{ID: 2, CorrectAnswer: 0, Marks: 3},
		{ID: 3, CorrectAnswer: 3, Marks: 4},
	}
	answers := []services.SubmittedAnswer{
		{SelectedAnswer: 1},
		{SelectedAnswer: 2},
		{SelectedAnswer: 3},
	}

	result := services.EvaluateSubmission(questions, answers, 9)

	require.Equal(t, 2+4, result.Score)
}

func TestEvaluateSubmission_SurplusAnswersSkipped(t *testing.T) {
	questions := []models.Question{
		{ID: 1, CorrectAnswer: 0, Marks: 1},
	}
	answers := []services.SubmittedAnswer{
		{SelectedAnswer: 0},
		{SelectedAnswer: 0}, // no question at this index
		{SelectedAnswer: 0},
	}

	result := services.EvaluateSubmission(questions, answers, 1)

	require.Equal(t, 1, result.Score)
	require.Len(t, result.Answers, 1, "unmatched indices produce no answer records")
}

func TestEvaluateSubmission_FewerAnswersThanQuestions(t *testing.T) {
	questions := []models.Question{
		{ID: 1, CorrectAnswer: 0, Marks: 2},
		{ID: 2, CorrectAnswer: 1, Marks: 2},
		{ID: 3, CorrectAnswer: 1, Marks: 2},
	}
	answers := []services.SubmittedAnswer{
		{SelectedAnswer: 0},
	}

	result := services.EvaluateSubmission(questions, answers, 6)

	require.Equal(t, 2, result.Score)
	require.Equal(t, 6, result.TotalMarks, "total still covers unanswered questions")
	require.Equal(t, 33.3, result.Percentage)
}

func TestEvaluateSubmission_TotalMarksFallback(t *testing.T) {
	questions := []models.Question{
		{ID: 1, CorrectAnswer: 0, Marks: 3},
		{ID: 2, CorrectAnswer: 0, Marks: 0}, // unset marks count as 1
	}
	answers := []services.SubmittedAnswer{
		{SelectedAnswer: 0},
		{SelectedAnswer: 0},
	}

	result := services.EvaluateSubmission(questions, answers, 0)

	require.Equal(t, 4, result.TotalMarks)
	require.Equal(t, 4, result.Score)
	require.Equal(t, 100.0, result.Percentage)
	require.Equal(t, "A+", result.Grade)
}

func TestEvaluateSubmission_EmptyInputs(t *testing.T) {
	result := services.EvaluateSubmission(nil, nil, 0)

	require.Equal(t, 0, result.Score)
	require.Equal(t, 0, result.TotalMarks)
	require.Equal(t, 0.0, result.Percentage)
	require.Equal(t, "F", result.Grade)
	require.Empty(t, result.Answers)
}

func TestPercentage(t *testing.T) {
	require.Equal(t, 0.0, services.Percentage(5, 0), "zero total yields 0, not a division error")
	require.Equal(t, 50.0, services.Percentage(5, 10))
	require.Equal(t, 33.3, services.Percentage(1, 3))
	require.Equal(t, 66.7, services.Percentage(2, 3))
	require.Equal(t, 100.0, services.Percentage(10, 10))
}

func TestGradeFor(t *testing.T) {
	tests := []struct {
		percentage float64
		want       string
	}{
		{100, "A+"},
		{90, "A+"}, // boundaries belong to the higher grade
		{89.9, "A"},
		{85, "A"},
		{84.9, "A-"},
		{80, "A-"},
		{79.9, "B+"},
		{75, "B+"},
		{74.9, "B"},
		{70, "B"},
		{69.9, "C+"},
		{65, "C+"},
		{64.9, "C"},
		{60, "C"},
		{59.9, "F"},
		{0, "F"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, services.GradeFor(tt.percentage), "percentage=%v", tt.percentage)
	}
}

func TestGradeFor_Monotonic(t *testing.T) {
	rank := map[string]int{"F": 0, "C": 1, "C+": 2, "B": 3, "B+": 4, "A-": 5, "A": 6, "A+": 7}

	prev := "F"
	for p := 0.0; p <= 100; p += 0.1 {
		grade := services.GradeFor(p)
		require.GreaterOrEqual(t, rank[grade], rank[prev], "grade dropped at percentage=%v", p)
		prev = grade
	}
}
