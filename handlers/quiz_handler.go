package handlers

import (
	"net/http"
	"strconv"

	"quizquest/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

func (h *QuizHandler) SaveQuiz(c *gin.Context) {
	var req services.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Title, questions, and teacher ID are required!")
		return
	}

	quiz, err := h.quizService.CreateQuiz(&req)
	if err != nil {
		respondServiceError(c, err, "Failed to save quiz!")
		return
	}

	respondCreated(c, gin.H{
		"message": "Quiz saved successfully!",
		"quiz": gin.H{
			"id":             quiz.ID,
			"title":          quiz.Title,
			"questionsCount": len(quiz.Questions),
			"difficulty":     quiz.Difficulty,
			"totalMarks":     quiz.TotalMarks,
			"createdAt":      quiz.CreatedAt,
		},
	})
}

func (h *QuizHandler) GetTeacherQuizzes(c *gin.Context) {
	teacherID, err := strconv.ParseUint(c.Param("teacherId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid teacher ID")
		return
	}

	quizzes, err := h.quizService.ListTeacherQuizzes(uint(teacherID))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch quizzes!")
		return
	}

	respondOK(c, gin.H{"quizzes": quizzes})
}

func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid quiz ID")
		return
	}

	quiz, err := h.quizService.GetQuiz(uint(quizID))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch quiz!")
		return
	}

	respondOK(c, gin.H{"quiz": quiz})
}

func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	quizID, err := strconv.ParseUint(c.Param("quizId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid quiz ID")
		return
	}

	var req services.UpdateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	quiz, err := h.quizService.UpdateQuiz(uint(quizID), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to update quiz!")
		return
	}

	respondOK(c, gin.H{
		"message": "Quiz updated successfully!",
		"quiz": gin.H{
			"id":             quiz.ID,
			"title":          quiz.Title,
			"questionsCount": len(quiz.Questions),
			"difficulty":     quiz.Difficulty,
			"totalMarks":     quiz.TotalMarks,
			"updatedAt":      quiz.UpdatedAt,
		},
	})
}

func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quizID, err := strconv.ParseUint(c.Param("quizId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid quiz ID")
		return
	}

	if err := h.quizService.DeleteQuiz(uint(quizID)); err != nil {
		respondServiceError(c, err, "Failed to delete quiz!")
		return
	}

	respondOK(c, gin.H{"message": "Quiz deleted successfully!"})
}

func (h *QuizHandler) GetStudentQuizzes(c *gin.Context) {
	studentID, err := strconv.ParseUint(c.Param("studentId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid student ID!")
		return
	}

	quizzes, err := h.quizService.ListStudentQuizzes(uint(studentID))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch available quizzes!")
		return
	}

	respondOK(c, gin.H{"quizzes": quizzes})
}
