package handlers

import (
	"net/http"
	"strconv"

	"quizquest/services"

	"github.com/gin-gonic/gin"
)

type TimerHandler struct {
	timerService *services.TimerService
}

func NewTimerHandler(timerService *services.TimerService) *TimerHandler {
	return &TimerHandler{timerService: timerService}
}

type startTimerRequest struct {
	QuizID    uint `json:"quizId" binding:"required"`
	StudentID uint `json:"studentId" binding:"required"`
	Duration  int  `json:"duration"`
}

func (h *TimerHandler) StartTimer(c *gin.Context) {
	var req startTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Quiz ID and Student ID are required!")
		return
	}

	timer, err := h.timerService.StartTimer(c.Request.Context(), req.QuizID, req.StudentID, req.Duration)
	if err != nil {
		respondServiceError(c, err, "Failed to start quiz timer!")
		return
	}

	respondOK(c, gin.H{
		"message": "Quiz timer started!",
		"timer":   timer,
	})
}

func (h *TimerHandler) GetRemainingTime(c *gin.Context) {
	quizID, err := strconv.ParseUint(c.Param("quizId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid quiz ID")
		return
	}
	studentID, err := strconv.ParseUint(c.Param("studentId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid student ID")
		return
	}

	remaining, err := h.timerService.RemainingTime(c.Request.Context(), uint(quizID), uint(studentID))
	if err != nil {
		respondServiceError(c, err, "Failed to get remaining time!")
		return
	}

	respondOK(c, gin.H{
		"remainingTime": remaining,
		"formattedTime": services.FormatTime(remaining),
	})
}
