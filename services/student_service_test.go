package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"quizquest/models"
	"quizquest/services"
)

func addStudent(t *testing.T, db *gorm.DB, teacherID uint, name, email string) *models.Student {
	t.Helper()
	student, err := services.NewStudentService(db).AddStudent(&services.AddStudentRequest{
		Name:      name,
		Email:     email,
		Course:    "Math",
		TeacherID: teacherID,
	})
	require.NoError(t, err)
	return student
}

func TestStudentService_AddStudent(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, models.RoleTeacher, "Ms. Lee", "lee@school.test")

	student := addStudent(t, db, teacher.ID, "Sam", "sam@school.test")
	require.False(t, student.Attendance, "new roster entries start absent")
	require.False(t, student.Allowed, "new roster entries start blocked")

	_, err := services.NewStudentService(db).AddStudent(&services.AddStudentRequest{
		Name: "Sam Again", Email: "sam@school.test", Course: "Math", TeacherID: teacher.ID,
	})
	require.ErrorIs(t, err, services.ErrStudentExists)
}

func TestStudentService_AddStudent_SameEmailDifferentTeacher(t *testing.T) {
	db := newTestDB(t)
	lee := createUser(t, db, models.RoleTeacher, "Ms. Lee", "lee@school.test")
	roy := createUser(t, db, models.RoleTeacher, "Mr. Roy", "roy@school.test")

	addStudent(t, db, lee.ID, "Sam", "sam@school.test")
	addStudent(t, db, roy.ID, "Sam", "sam@school.test") // uniqueness is per teacher
}

func TestStudentService_UpdateStudent_Gate(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, models.RoleTeacher, "Ms. Lee", "lee@school.test")
	student := addStudent(t, db, teacher.ID, "Sam", "sam@school.test")
	studentService := services.NewStudentService(db)

	boolPtr := func(b bool) *bool { return &b }

	// Granting access while absent is rejected and nothing persists
	_, err := studentService.UpdateStudent(student.ID, &services.UpdateStudentRequest{
		Allowed: boolPtr(true),
	})
	require.ErrorIs(t, err, models.ErrStudentNotPresent)

	var stored models.Student
	require.NoError(t, db.First(&stored, student.ID).Error)
	require.False(t, stored.Allowed)

	// Present first, then allowed, in one request
	updated, err := studentService.UpdateStudent(student.ID, &services.UpdateStudentRequest{
		Attendance: boolPtr(true),
		Allowed:    boolPtr(true),
	})
	require.NoError(t, err)
	require.True(t, updated.Attendance)
	require.True(t, updated.Allowed)

	// Marking absent revokes access even without an explicit allowed change
	updated, err = studentService.UpdateStudent(student.ID, &services.UpdateStudentRequest{
		Attendance: boolPtr(false),
	})
	require.NoError(t, err)
	require.False(t, updated.Attendance)
	require.False(t, updated.Allowed)
}

func TestStudentService_BulkUpdate_RollsBackOnGateViolation(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, models.RoleTeacher, "Ms. Lee", "lee@school.test")
	first := addStudent(t, db, teacher.ID, "Sam", "sam@school.test")
	second := addStudent(t, db, teacher.ID, "Ann", "ann@school.test")
	studentService := services.NewStudentService(db)

	boolPtr := func(b bool) *bool { return &b }

	err := studentService.BulkUpdate(&services.BulkUpdateRequest{
		TeacherID: teacher.ID,
		Updates: []services.BulkStudentUpdate{
			{StudentID: first.ID, Attendance: boolPtr(true), Allowed: boolPtr(true)},
			{StudentID: second.ID, Allowed: boolPtr(true)}, // absent, must fail
		},
	})
	require.ErrorIs(t, err, models.ErrStudentNotPresent)

	// The valid first update was rolled back with the batch
	var stored models.Student
	require.NoError(t, db.First(&stored, first.ID).Error)
	require.False(t, stored.Attendance)
	require.False(t, stored.Allowed)
}

func TestStudentService_BulkUpdate(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, models.RoleTeacher, "Ms. Lee", "lee@school.test")
	other := createUser(t, db, models.RoleTeacher, "Mr. Roy", "roy@school.test")
	first := addStudent(t, db, teacher.ID, "Sam", "sam@school.test")
	second := addStudent(t, db, teacher.ID, "Ann", "ann@school.test")
	foreign := addStudent(t, db, other.ID, "Zed", "zed@school.test")
	studentService := services.NewStudentService(db)

	boolPtr := func(b bool) *bool { return &b }

	err := studentService.BulkUpdate(&services.BulkUpdateRequest{
		TeacherID: teacher.ID,
		Updates: []services.BulkStudentUpdate{
			{StudentID: first.ID, Attendance: boolPtr(true), Allowed: boolPtr(true)},
			{StudentID: second.ID, Attendance: boolPtr(true)},
		},
	})
	require.NoError(t, err)

	var stored models.Student
	require.NoError(t, db.First(&stored, first.ID).Error)
	require.True(t, stored.Allowed)
	stored = models.Student{}
	require.NoError(t, db.First(&stored, second.ID).Error)
	require.True(t, stored.Attendance)
	require.False(t, stored.Allowed)

	// Another teacher's roster entry is out of reach
	err = studentService.BulkUpdate(&services.BulkUpdateRequest{
		TeacherID: teacher.ID,
		Updates:   []services.BulkStudentUpdate{{StudentID: foreign.ID, Attendance: boolPtr(true)}},
	})
	require.ErrorIs(t, err, services.ErrStudentNotFound)
}

func TestStudentService_ListForTeacher_MergesConnections(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, models.RoleTeacher, "Ms. Lee", "lee@school.test")
	rostered := createUser(t, db, models.RoleStudent, "Sam", "sam@school.test")
	linkedOnly := createUser(t, db, models.RoleStudent, "Ann", "ann@school.test")

	addStudent(t, db, teacher.ID, rostered.Name, rostered.Email)
	for _, studentID := range []uint{rostered.ID, linkedOnly.ID} {
		require.NoError(t, db.Create(&models.Connection{
			StudentID: studentID,
			TeacherID: teacher.ID,
			Status:    models.ConnectionApproved,
		}).Error)
	}

	students, err := services.NewStudentService(db).ListForTeacher(teacher.ID)
	require.NoError(t, err)
	require.Len(t, students, 2, "rostered student is not duplicated by the connection")

	byEmail := make(map[string]models.Student, len(students))
	for _, s := range students {
		byEmail[s.Email] = s
	}
	require.Contains(t, byEmail, "ann@school.test")
	require.False(t, byEmail["ann@school.test"].Allowed, "connection-only students start blocked")
	require.Equal(t, "General", byEmail["ann@school.test"].Course)
}

func TestStudentService_DeleteStudent(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, models.RoleTeacher, "Ms. Lee", "lee@school.test")
	student := addStudent(t, db, teacher.ID, "Sam", "sam@school.test")
	studentService := services.NewStudentService(db)

	require.NoError(t, studentService.DeleteStudent(student.ID))
	require.ErrorIs(t, studentService.DeleteStudent(student.ID), services.ErrStudentNotFound)
}

func TestStudentService_SearchStudents(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, models.RoleTeacher, "Ms. Lee", "lee@school.test")
	sam := createUser(t, db, models.RoleStudent, "Sam Carter", "sam@school.test")
	createUser(t, db, models.RoleStudent, "Ann Blake", "ann@school.test")
	createUser(t, db, models.RoleTeacher, "Sam Senior", "senior@school.test") // teachers never match

	require.NoError(t, db.Create(&models.Connection{
		StudentID: sam.ID,
		TeacherID: teacher.ID,
		Status:    models.ConnectionPending,
	}).Error)

	results, err := services.NewStudentService(db).SearchStudents("sam", teacher.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Sam Carter", results[0].Name)
	require.True(t, results[0].IsLinked, "pending connection counts as linked")

	results, err = services.NewStudentService(db).SearchStudents("school.test", teacher.ID)
	require.NoError(t, err)
	require.Len(t, results, 2)
}
