package handlers

import (
	"net/http"
	"strconv"

	"quizquest/models"
	"quizquest/services"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func settingsPayload(settings *models.Settings) gin.H {
	return gin.H{
		"general":       settings.General.Data(),
		"security":      settings.Security.Data(),
		"notifications": settings.Notifications.Data(),
		"lastUpdated":   settings.LastUpdated,
	}
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	teacherID, err := strconv.ParseUint(c.Param("teacherId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid teacher ID")
		return
	}

	settings, err := h.settingsService.GetSettings(uint(teacherID))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch settings!")
		return
	}

	respondOK(c, gin.H{"settings": settingsPayload(settings)})
}

func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	teacherID, err := strconv.ParseUint(c.Param("teacherId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid teacher ID")
		return
	}

	var req services.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	settings, err := h.settingsService.UpdateSettings(uint(teacherID), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to update settings!")
		return
	}

	respondOK(c, gin.H{
		"message":  "Settings updated successfully!",
		"settings": settingsPayload(settings),
	})
}

func (h *SettingsHandler) ResetSettings(c *gin.Context) {
	teacherID, err := strconv.ParseUint(c.Param("teacherId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid teacher ID")
		return
	}

	settings, err := h.settingsService.ResetSettings(uint(teacherID))
	if err != nil {
		respondServiceError(c, err, "Failed to reset settings!")
		return
	}

	respondOK(c, gin.H{
		"message":  "Settings reset to defaults successfully!",
		"settings": settingsPayload(settings),
	})
}
