package service

import (
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/student-dashboard-api/internal/database"
	"github.com/noah-isme/student-dashboard-api/internal/models"
	"github.com/noah-isme/student-dashboard-api/internal/repository"
)

// fixtureNow is a Thursday afternoon.
var fixtureNow = time.Date(2024, time.March, 14, 15, 30, 0, 0, time.UTC)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

type fixture struct {
	t             *testing.T
	db            *gorm.DB
	redis         *miniredis.Miniredis
	client        *redis.Client
	cache         *DashboardCache
	notifications *notificationService
	dashboard     *dashboardService
	seq           int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := NewDashboardCache(client, time.Minute, testLogger())
	notifications := NewNotificationService(repository.NewNotificationRepository(db), cache, client, "dashboard", nil, testLogger()).(*notificationService)
	notifications.now = func() time.Time { return fixtureNow }

	dashboard := NewDashboardService(NewDashboardRepositories(db), notifications, nil, cache, time.UTC, testLogger()).(*dashboardService)
	dashboard.now = func() time.Time { return fixtureNow }

	return &fixture{
		t:             t,
		db:            db,
		redis:         server,
		client:        client,
		cache:         cache,
		notifications: notifications,
		dashboard:     dashboard,
	}
}

func (f *fixture) next() int {
	f.seq++
	return f.seq
}

func (f *fixture) create(value interface{}) {
	f.t.Helper()
	require.NoError(f.t, f.db.Create(value).Error)
}

func (f *fixture) student(group string, gpa float64) models.Student {
	f.t.Helper()
	n := f.next()

	user := models.User{Email: fmt.Sprintf("student%d@example.com", n), FirstName: "Student", LastName: fmt.Sprint(n)}
	f.create(&user)

	student := models.Student{UserID: user.ID, StudentNumber: fmt.Sprintf("S-%03d", n), Group: group, GPA: gpa}
	f.create(&student)
	return student
}

func (f *fixture) course(name string) models.Course {
	f.t.Helper()
	course := models.Course{Name: name, Code: fmt.Sprintf("C-%d", f.next()), Duration: 6, Format: "Online", Level: "Basic", Access: "Open"}
	f.create(&course)
	return course
}

func (f *fixture) enroll(student models.Student, course models.Course, status string, at time.Time) {
	f.t.Helper()
	f.create(&models.Enrollment{StudentID: student.ID, CourseID: course.ID, Status: status, EnrolledAt: at})
}

func (f *fixture) assignment(course models.Course, due time.Time) models.Assignment {
	f.t.Helper()
	assignment := models.Assignment{CourseID: course.ID, Title: fmt.Sprintf("Homework %d", f.next()), DueDate: due, MaxPoints: 100}
	f.create(&assignment)
	return assignment
}

func (f *fixture) grade(student models.Student, points, max float64, at time.Time) models.Grade {
	f.t.Helper()
	grade := models.Grade{StudentID: student.ID, CourseID: 1, Points: points, MaxPoints: max, RecordedAt: at}
	f.create(&grade)
	return grade
}

func day(month time.Month, d, hour int) time.Time {
	return time.Date(2024, month, d, hour, 0, 0, 0, time.UTC)
}
