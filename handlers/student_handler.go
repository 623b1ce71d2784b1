package handlers

import (
	"net/http"
	"strconv"

	"quizquest/services"

	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	studentService *services.StudentService
}

func NewStudentHandler(studentService *services.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

func (h *StudentHandler) GetTeacherStudents(c *gin.Context) {
	teacherID, err := strconv.ParseUint(c.Param("teacherId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid teacher ID")
		return
	}

	students, err := h.studentService.ListForTeacher(uint(teacherID))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch students!")
		return
	}

	respondOK(c, gin.H{"students": students})
}

func (h *StudentHandler) AddStudent(c *gin.Context) {
	var req services.AddStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "All fields are required!")
		return
	}

	student, err := h.studentService.AddStudent(&req)
	if err != nil {
		respondServiceError(c, err, "Failed to add student!")
		return
	}

	respondCreated(c, gin.H{
		"message": "Student added successfully!",
		"student": student,
	})
}

func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	studentID, err := strconv.ParseUint(c.Param("studentId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid student ID")
		return
	}

	var req services.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	student, err := h.studentService.UpdateStudent(uint(studentID), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to update student!")
		return
	}

	respondOK(c, gin.H{
		"message": "Student updated successfully!",
		"student": student,
	})
}

func (h *StudentHandler) BulkUpdate(c *gin.Context) {
	var req services.BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.studentService.BulkUpdate(&req); err != nil {
		respondServiceError(c, err, "Failed to perform bulk update!")
		return
	}

	respondOK(c, gin.H{"message": "Bulk update completed successfully!"})
}

func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	studentID, err := strconv.ParseUint(c.Param("studentId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid student ID")
		return
	}

	if err := h.studentService.DeleteStudent(uint(studentID)); err != nil {
		respondServiceError(c, err, "Failed to delete student!")
		return
	}

	respondOK(c, gin.H{"message": "Student deleted successfully!"})
}

func (h *StudentHandler) SearchStudents(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		respondError(c, http.StatusBadRequest, "Search query is required!")
		return
	}

	var teacherID uint
	if raw := c.Query("teacherId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid teacher ID")
			return
		}
		teacherID = uint(parsed)
	}

	students, err := h.studentService.SearchStudents(query, teacherID)
	if err != nil {
		respondServiceError(c, err, "Failed to search students!")
		return
	}

	respondOK(c, gin.H{"students": students})
}
