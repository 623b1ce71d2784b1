package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"quizquest/services"

	"github.com/gin-gonic/gin"
)

type ConnectionHandler struct {
	connectionService *services.ConnectionService
}

func NewConnectionHandler(connectionService *services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connectionService: connectionService}
}

func (h *ConnectionHandler) Request(c *gin.Context) {
	var req services.ConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Teacher ID and Student ID are required!")
		return
	}

	connection, err := h.connectionService.Request(&req)
	if err != nil {
		respondServiceError(c, err, "Failed to send connection request!")
		return
	}

	respondCreated(c, gin.H{
		"message": "Connection request sent successfully!",
		"connection": gin.H{
			"id":          connection.ID,
			"studentId":   connection.StudentID,
			"name":        connection.Student.Name,
			"email":       connection.Student.Email,
			"course":      connection.Course,
			"requestedAt": connection.RequestedAt,
		},
	})
}

func (h *ConnectionHandler) Respond(c *gin.Context) {
	var req services.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	connection, err := h.connectionService.Respond(&req)
	if err != nil {
		respondServiceError(c, err, "Failed to process request!")
		return
	}

	action := "approved"
	if req.Action == "reject" {
		action = "rejected"
	}

	respondOK(c, gin.H{
		"message": fmt.Sprintf("Request %s successfully!", action),
		"connection": gin.H{
			"id":        connection.ID,
			"studentId": connection.StudentID,
			"name":      connection.Student.Name,
			"email":     connection.Student.Email,
			"course":    connection.Course,
			"status":    connection.Status,
		},
	})
}

func (h *ConnectionHandler) Remove(c *gin.Context) {
	connectionID, err := strconv.ParseUint(c.Param("connectionId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid connection ID")
		return
	}

	if err := h.connectionService.Remove(uint(connectionID)); err != nil {
		respondServiceError(c, err, "Failed to remove student!")
		return
	}

	respondOK(c, gin.H{"message": "Student removed successfully!"})
}

func (h *ConnectionHandler) Stats(c *gin.Context) {
	teacherID, err := strconv.ParseUint(c.Param("teacherId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid teacher ID")
		return
	}

	stats, err := h.connectionService.Stats(uint(teacherID))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch connection stats!")
		return
	}

	respondOK(c, gin.H{"stats": stats})
}

func (h *ConnectionHandler) PendingForTeacher(c *gin.Context) {
	teacherID, err := strconv.ParseUint(c.Param("teacherId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid teacher ID")
		return
	}

	requests, err := h.connectionService.PendingForTeacher(uint(teacherID))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch pending requests!")
		return
	}

	respondOK(c, gin.H{"requests": requests})
}

func (h *ConnectionHandler) LinkedForTeacher(c *gin.Context) {
	teacherID, err := strconv.ParseUint(c.Param("teacherId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid teacher ID")
		return
	}

	students, err := h.connectionService.LinkedForTeacher(uint(teacherID))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch linked students!")
		return
	}

	respondOK(c, gin.H{"students": students})
}

func (h *ConnectionHandler) PendingForStudent(c *gin.Context) {
	studentID, err := strconv.ParseUint(c.Param("studentId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid student ID")
		return
	}

	requests, err := h.connectionService.PendingForStudent(uint(studentID))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch pending connections!")
		return
	}

	formatted := make([]gin.H, 0, len(requests))
	for _, request := range requests {
		formatted = append(formatted, gin.H{
			"id":           request.ID,
			"teacherId":    request.TeacherID,
			"teacherName":  request.Teacher.Name,
			"teacherEmail": request.Teacher.Email,
			"course":       request.Course,
			"requestedAt":  request.RequestedAt,
		})
	}

	respondOK(c, gin.H{"requests": formatted})
}

func (h *ConnectionHandler) Find(c *gin.Context) {
	studentID, err := strconv.ParseUint(c.Param("studentId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid student ID")
		return
	}
	teacherID, err := strconv.ParseUint(c.Param("teacherId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid teacher ID")
		return
	}

	connection, err := h.connectionService.Find(uint(studentID), uint(teacherID))
	if err != nil {
		respondServiceError(c, err, "Failed to find connection")
		return
	}

	if connection == nil {
		respondOK(c, gin.H{"connection": nil})
		return
	}
	respondOK(c, gin.H{"connection": connection})
}

func (h *ConnectionHandler) TeachersForStudent(c *gin.Context) {
	studentID, err := strconv.ParseUint(c.Param("studentId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid student ID")
		return
	}

	connections, err := h.connectionService.TeachersForStudent(uint(studentID))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch connected teachers!")
		return
	}

	teachers := make([]gin.H, 0, len(connections))
	for _, conn := range connections {
		teachers = append(teachers, gin.H{
			"id":          conn.TeacherID,
			"name":        conn.Teacher.Name,
			"email":       conn.Teacher.Email,
			"course":      conn.Course,
			"connectedAt": conn.RespondedAt,
		})
	}

	respondOK(c, gin.H{"teachers": teachers})
}
