package handlers

import (
	"net/http"
	"strconv"

	"quizquest/services"

	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	courseService *services.CourseService
}

func NewCourseHandler(courseService *services.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

func (h *CourseHandler) GetTeacherCourses(c *gin.Context) {
	teacherID, err := strconv.ParseUint(c.Param("teacherId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid teacher ID")
		return
	}

	courses, err := h.courseService.ListCourses(uint(teacherID))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch courses!")
		return
	}

	respondOK(c, gin.H{"courses": courses})
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req services.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Teacher ID, title, and code are required!")
		return
	}

	course, err := h.courseService.CreateCourse(&req)
	if err != nil {
		respondServiceError(c, err, "Failed to create course!")
		return
	}

	respondCreated(c, gin.H{
		"message": "Course created successfully!",
		"course":  course,
	})
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	courseID, err := strconv.ParseUint(c.Param("courseId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid course ID")
		return
	}

	if err := h.courseService.DeleteCourse(uint(courseID)); err != nil {
		respondServiceError(c, err, "Failed to delete course!")
		return
	}

	respondOK(c, gin.H{"message": "Course deleted successfully!"})
}

func (h *CourseHandler) GetCourseTopics(c *gin.Context) {
	courseID, err := strconv.ParseUint(c.Param("courseId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid course ID")
		return
	}

	topics, err := h.courseService.ListTopics(uint(courseID))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch topics!")
		return
	}

	respondOK(c, gin.H{"topics": topics})
}

func (h *CourseHandler) CreateTopic(c *gin.Context) {
	var req services.CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Course ID and title are required!")
		return
	}

	topic, err := h.courseService.CreateTopic(&req)
	if err != nil {
		respondServiceError(c, err, "Failed to add topic!")
		return
	}

	respondCreated(c, gin.H{
		"message": "Topic added successfully!",
		"topic":   topic,
	})
}

func (h *CourseHandler) DeleteTopic(c *gin.Context) {
	topicID, err := strconv.ParseUint(c.Param("topicId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid topic ID")
		return
	}

	if err := h.courseService.DeleteTopic(uint(topicID)); err != nil {
		respondServiceError(c, err, "Failed to delete topic!")
		return
	}

	respondOK(c, gin.H{"message": "Topic deleted successfully!"})
}

func (h *CourseHandler) GetTeacherTopics(c *gin.Context) {
	teacherID, err := strconv.ParseUint(c.Param("teacherId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid teacher ID")
		return
	}

	topics, err := h.courseService.ListTeacherTopics(uint(teacherID))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch topics!")
		return
	}

	respondOK(c, gin.H{"topics": topics})
}
