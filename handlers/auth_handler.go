package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"quizquest/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please fill in all fields!")
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		respondServiceError(c, err, "Server error during registration")
		return
	}

	respondCreated(c, gin.H{
		"message": fmt.Sprintf("%s registered successfully!", user.Role),
		"user":    user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please fill in all fields!")
		return
	}

	user, token, err := h.authService.Login(&req)
	if err != nil {
		respondServiceError(c, err, "Server error during login")
		return
	}

	respondOK(c, gin.H{
		"message": fmt.Sprintf("%s logged in successfully!", user.Role),
		"user":    user,
		"token":   token,
	})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("studentId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid student ID")
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.UpdateProfile(uint(userID), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to update profile!")
		return
	}

	respondOK(c, gin.H{
		"message": "Profile updated successfully!",
		"student": user,
	})
}

func (h *AuthHandler) SearchTeachers(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		respondError(c, http.StatusBadRequest, "Search query is required!")
		return
	}

	teachers, err := h.authService.SearchTeachers(query)
	if err != nil {
		respondServiceError(c, err, "Failed to search teachers!")
		return
	}

	respondOK(c, gin.H{"teachers": teachers})
}
