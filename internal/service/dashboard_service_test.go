package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/student-dashboard-api/internal/models"
)

func TestBuildDashboardComposesSectionsAndCaches(t *testing.T) {
	f := newFixture(t)
	student := f.student("IT-21", 8.5)
	f.student("IT-21", 9.1)
	course := f.course("Go Backend")
	f.enroll(student, course, models.EnrollmentStatusActive, day(time.January, 15, 0))
	f.assignment(course, fixtureNow.AddDate(0, 0, -1))
	f.create(&models.Reward{StudentID: student.ID, Type: "marks", Points: 5, EarnedAt: day(time.March, 14, 9)})
	f.create(&models.Reward{StudentID: student.ID, Type: "homework", Points: 7, EarnedAt: day(time.March, 1, 9)})
	f.create(&models.Notification{StudentID: student.ID, Title: "Welcome", Message: "hi"})

	ctx := context.Background()
	view, cacheHit, err := f.dashboard.BuildDashboard(ctx, student.ID)
	require.NoError(t, err)
	require.False(t, cacheHit)

	require.Equal(t, "Student 1", view.Profile.DisplayName)
	require.Equal(t, "IT-21", view.Profile.Group)
	require.Equal(t, models.DefaultAvatarURL, view.Profile.AvatarURL)
	require.Equal(t, map[string]int{"marks": 5, "homework": 7}, view.Profile.RewardTotals)
	require.Equal(t, 12, view.Profile.TotalPoints)
	require.Equal(t, int64(1), view.Profile.UnreadNotifications)

	require.Len(t, view.ProgressGPA.Points, 7)
	require.Len(t, view.Attendance.Points, 7)
	require.Equal(t, 1, view.Homework.Total)
	require.Equal(t, "Group", view.Leaderboard.SelectedFilter)
	require.Len(t, view.Leaderboard.Entries, 2)
	require.Equal(t, 2, view.Rating.FlowRank)
	require.Equal(t, "Today", view.Rewards.SelectedPeriod)
	require.Equal(t, 5, view.Rewards.TotalPoints)
	require.True(t, view.CourseInfo.HasCourse)
	require.Len(t, view.Notifications, 1)
	require.Len(t, view.Calendar.Days, 7)
	require.True(t, fixtureNow.Equal(view.GeneratedAt))
	require.True(t, f.redis.Exists(dashboardCacheKey(student.ID)))

	f.create(&models.Notification{StudentID: student.ID, Title: "Second", Message: "hi"})

	cached, cacheHit, err := f.dashboard.BuildDashboard(ctx, student.ID)
	require.NoError(t, err)
	require.True(t, cacheHit)
	require.Len(t, cached.Notifications, 1, "cached composite is served until invalidated")
	require.Equal(t, view.Profile, cached.Profile)
}

func TestBuildDashboardUnknownStudent(t *testing.T) {
	f := newFixture(t)

	_, cacheHit, err := f.dashboard.BuildDashboard(context.Background(), 42)
	require.ErrorIs(t, err, ErrStudentNotFound)
	require.False(t, cacheHit)
	require.False(t, f.redis.Exists(dashboardCacheKey(42)))
}

func TestBuildDashboardWithoutRedis(t *testing.T) {
	f := newFixture(t)
	f.dashboard.cache = NewDashboardCache(nil, time.Minute, testLogger())
	student := f.student("", 0)

	_, cacheHit, err := f.dashboard.BuildDashboard(context.Background(), student.ID)
	require.NoError(t, err)
	require.False(t, cacheHit)

	_, cacheHit, err = f.dashboard.BuildDashboard(context.Background(), student.ID)
	require.NoError(t, err)
	require.False(t, cacheHit)
}

func TestResolveStudentID(t *testing.T) {
	f := newFixture(t)
	student := f.student("", 0)

	id, err := f.dashboard.ResolveStudentID(context.Background(), student.UserID)
	require.NoError(t, err)
	require.Equal(t, student.ID, id)

	_, err = f.dashboard.ResolveStudentID(context.Background(), 999)
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestDashboardCacheDiscardsCorruptEntries(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.redis.Set(dashboardCacheKey(7), "{not json"))

	_, ok := f.cache.Get(context.Background(), 7)
	require.False(t, ok)
}
