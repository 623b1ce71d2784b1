package handlers

import (
	"errors"
	"log"
	"net/http"

	"quizquest/models"
	"quizquest/services"

	"github.com/gin-gonic/gin"
)

// Every response carries the {success, message?, ...payload} envelope.

func respondOK(c *gin.Context, payload gin.H) {
	payload["success"] = true
	c.JSON(http.StatusOK, payload)
}

func respondCreated(c *gin.Context, payload gin.H) {
	payload["success"] = true
	c.JSON(http.StatusCreated, payload)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

var notFoundErrors = []error{
	services.ErrQuizNotFound,
	services.ErrReportNotFound,
	services.ErrStudentNotFound,
	services.ErrConnectionNotFound,
	services.ErrCourseNotFound,
	services.ErrTopicNotFound,
	services.ErrUserNotFound,
	services.ErrTimerNotFound,
}

var badRequestErrors = []error{
	services.ErrEmailTaken,
	services.ErrPasswordMismatch,
	services.ErrPasswordTooShort,
	services.ErrInvalidCredentials,
	services.ErrRoleMismatch,
	services.ErrStudentExists,
	services.ErrRequestPending,
	services.ErrAlreadyLinked,
	services.ErrRequestNotPending,
	services.ErrCourseCodeExists,
	models.ErrStudentNotPresent,
}

// respondServiceError maps known service errors onto 4xx responses with their
// own message. Anything unrecognized is logged server-side and surfaced as a
// generic failure so no internal detail leaks.
func respondServiceError(c *gin.Context, err error, fallback string) {
	for _, known := range notFoundErrors {
		if errors.Is(err, known) {
			respondError(c, http.StatusNotFound, known.Error())
			return
		}
	}
	for _, known := range badRequestErrors {
		if errors.Is(err, known) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	respondError(c, http.StatusInternalServerError, fallback)
}
