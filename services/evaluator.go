package services

import (
	"math"

	"quizquest/models"
)

// SubmittedAnswer is one entry of the answer array a student submits. Answers
// carry no question id; they are positionally aligned with the quiz's ordered
// question list. A skipped question arrives as a null selectedAnswer and
// unmarshals to models.NoAnswer.
type SubmittedAnswer struct {
	SelectedAnswer models.SelectedOption `json:"selectedAnswer"`
	TimeSpent      int                   `json:"timeSpent"`
}

// Evaluation is the scored outcome of a submission.
type Evaluation struct {
	Score      int                   `json:"score"`
	TotalMarks int                   `json:"total_marks"`
	Percentage float64               `json:"percentage"`
	Grade      string                `json:"grade"`
	Answers    []models.AnswerRecord `json:"answers"`
}

// EvaluateSubmission scores a submission against a quiz's question list.
// Matching is by position: answer i is compared against question i. Surplus
// answers (no question at that index) are skipped rather than failing the
// evaluation, so a malformed submission still yields a best-effort partial
// score. The function is pure; it performs no I/O and never fails.
//
// storedTotal is the quiz's cached TotalMarks; when absent or zero the total
// is recomputed from the question list.
func EvaluateSubmission(questions []models.Question, answers []SubmittedAnswer, storedTotal int) Evaluation {
	score := 0
	records := make([]models.AnswerRecord, 0, len(answers))

	for i, answer := range answers {
		if i >= len(questions) {
			continue
		}
		question := questions[i]

		marks := question.Marks
		if marks == 0 {
			marks = 1
		}

		// Stored keys are non-negative, so a skipped answer (NoAnswer)
		// can never compare equal.
		isCorrect := answer.SelectedAnswer.Int() == question.CorrectAnswer
		if isCorrect {
			score += marks
		}

		records = append(records, models.AnswerRecord{
			QuestionID:     question.ID,
			SelectedAnswer: answer.SelectedAnswer.Int(),
			IsCorrect:      isCorrect,
			TimeSpent:      answer.TimeSpent,
		})
	}

	totalMarks := storedTotal
	if totalMarks <= 0 {
		for _, question := range questions {
			marks := question.Marks
			if marks == 0 {
				marks = 1
			}
			totalMarks += marks
		}
	}

	percentage := Percentage(score, totalMarks)

	return Evaluation{
		Score:      score,
		TotalMarks: totalMarks,
		Percentage: percentage,
		Grade:      GradeFor(percentage),
		Answers:    records,
	}
}

// Percentage returns score/total as a percentage rounded to one decimal, or 0
// when total is zero.
func Percentage(score, totalMarks int) float64 {
	if totalMarks <= 0 {
		return 0
	}
	return math.Round(float64(score)/float64(totalMarks)*1000) / 10
}

// GradeFor maps a percentage onto a letter grade. Boundaries belong to the
// higher grade.
func GradeFor(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 85:
		return "A"
	case percentage >= 80:
		return "A-"
	case percentage >= 75:
		return "B+"
	case percentage >= 70:
		return "B"
	case percentage >= 65:
		return "C+"
	case percentage >= 60:
		return "C"
	default:
		return "F"
	}
}
