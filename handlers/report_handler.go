package handlers

import (
	"log"
	"net/http"
	"strconv"

	"quizquest/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService     *services.ReportService
	quizService       *services.QuizService
	connectionService *services.ConnectionService
	timerService      *services.TimerService
}

func NewReportHandler(
	reportService *services.ReportService,
	quizService *services.QuizService,
	connectionService *services.ConnectionService,
	timerService *services.TimerService,
) *ReportHandler {
	return &ReportHandler{
		reportService:     reportService,
		quizService:       quizService,
		connectionService: connectionService,
		timerService:      timerService,
	}
}

// SubmitAttempt scores a submission and persists its report. The attempt's
// countdown timer, if any, is cleared best-effort afterwards.
func (h *ReportHandler) SubmitAttempt(c *gin.Context) {
	var req services.AttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Student ID, Quiz ID, and answers are required!")
		return
	}

	report, err := h.reportService.SubmitAttempt(&req)
	if err != nil {
		respondServiceError(c, err, "Failed to submit quiz!")
		return
	}

	if err := h.timerService.ClearTimer(c.Request.Context(), req.QuizID, req.StudentID); err != nil {
		log.Printf("Failed to clear timer for quiz %d, student %d: %v", req.QuizID, req.StudentID, err)
	}

	respondCreated(c, gin.H{
		"message": "Quiz submitted successfully!",
		"report": gin.H{
			"id":         report.ID,
			"score":      report.Score,
			"totalMarks": report.TotalMarks,
			"percentage": report.Percentage,
			"grade":      report.Grade,
			"timeSpent":  report.TimeSpent,
		},
	})
}

func (h *ReportHandler) GetTeacherReports(c *gin.Context) {
	teacherID, err := strconv.ParseUint(c.Param("teacherId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid teacher ID")
		return
	}

	reports, err := h.reportService.ListTeacherReports(uint(teacherID))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch reports!")
		return
	}

	respondOK(c, gin.H{"reports": reports})
}

func (h *ReportHandler) GetStudentReports(c *gin.Context) {
	studentID, err := strconv.ParseUint(c.Param("studentId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid student ID")
		return
	}

	reports, err := h.reportService.ListStudentReports(uint(studentID))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch student reports!")
		return
	}

	respondOK(c, gin.H{"reports": reports})
}

func (h *ReportHandler) AddReport(c *gin.Context) {
	var req services.AddReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Required fields are missing!")
		return
	}

	report, err := h.reportService.AddReport(&req)
	if err != nil {
		respondServiceError(c, err, "Failed to save report!")
		return
	}

	respondCreated(c, gin.H{
		"message": "Report saved successfully!",
		"report":  report,
	})
}

func (h *ReportHandler) UpdateReport(c *gin.Context) {
	reportID, err := strconv.ParseUint(c.Param("reportId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid report ID")
		return
	}

	var req services.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.reportService.UpdateReport(uint(reportID), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to update report!")
		return
	}

	respondOK(c, gin.H{
		"message": "Report updated successfully!",
		"report":  report,
	})
}

func (h *ReportHandler) DeleteReport(c *gin.Context) {
	reportID, err := strconv.ParseUint(c.Param("reportId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid report ID")
		return
	}

	if err := h.reportService.DeleteReport(uint(reportID)); err != nil {
		respondServiceError(c, err, "Failed to delete report!")
		return
	}

	respondOK(c, gin.H{"message": "Report deleted successfully!"})
}

func (h *ReportHandler) GetAnalytics(c *gin.Context) {
	teacherID, err := strconv.ParseUint(c.Param("teacherId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid teacher ID")
		return
	}

	analytics, err := h.reportService.Analytics(uint(teacherID), c.Query("quizFilter"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch analytics!")
		return
	}

	quizzes, err := h.quizService.ListTeacherQuizzes(uint(teacherID))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch analytics!")
		return
	}
	titles := make([]string, 0, len(quizzes))
	for _, quiz := range quizzes {
		titles = append(titles, quiz.Title)
	}

	respondOK(c, gin.H{
		"analytics": analytics,
		"quizzes":   titles,
	})
}

func (h *ReportHandler) GetStudentDashboard(c *gin.Context) {
	studentID, err := strconv.ParseUint(c.Param("studentId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid student ID")
		return
	}

	quizzes, err := h.quizService.ListStudentQuizzes(uint(studentID))
	if err != nil {
		respondServiceError(c, err, "Error loading student dashboard")
		return
	}

	teachers, err := h.connectionService.TeachersForStudent(uint(studentID))
	if err != nil {
		respondServiceError(c, err, "Error loading student dashboard")
		return
	}

	dashboard, err := h.reportService.StudentDashboard(uint(studentID), quizzes, len(teachers))
	if err != nil {
		respondServiceError(c, err, "Error loading student dashboard")
		return
	}

	respondOK(c, gin.H{
		"stats": gin.H{
			"totalQuizzesAttempted": dashboard.TotalQuizzesAttempted,
			"averageScore":          dashboard.AverageScore,
			"pendingQuizzes":        dashboard.PendingQuizzes,
			"totalTeachers":         dashboard.TotalTeachers,
		},
		"recentActivities": dashboard.RecentActivities,
		"upcomingQuizzes":  dashboard.UpcomingQuizzes,
	})
}
