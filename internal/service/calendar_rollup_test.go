package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/student-dashboard-api/internal/models"
)

func TestCalendarRendersWeekAndTargetDaySchedule(t *testing.T) {
	f := newFixture(t)
	student := f.student("", 0)
	course := f.course("Networks")
	dropped := f.course("Dropped")
	f.enroll(student, course, models.EnrollmentStatusActive, day(time.January, 10, 0))
	f.enroll(student, dropped, models.EnrollmentStatusDropped, day(time.January, 10, 0))

	entries := []models.Schedule{
		{CourseID: course.ID, Title: "Routing lab", Type: "Workshop", StartTime: day(time.March, 14, 13), EndTime: day(time.March, 14, 15), Location: "Lab 2"},
		{CourseID: course.ID, Title: "TCP basics", Type: "LECTURE", StartTime: day(time.March, 14, 9), EndTime: day(time.March, 14, 10).Add(30 * time.Minute), Location: "Hall A"},
		{CourseID: course.ID, Title: "Tomorrow", Type: "Lecture", StartTime: day(time.March, 15, 9), EndTime: day(time.March, 15, 10)},
		{CourseID: dropped.ID, Title: "Dropped", Type: "Lecture", StartTime: day(time.March, 14, 11), EndTime: day(time.March, 14, 12)},
	}
	for i := range entries {
		f.create(&entries[i])
	}

	result, err := f.dashboard.GetCalendar(context.Background(), student.ID, time.Time{})
	require.NoError(t, err)
	require.Equal(t, "March", result.SelectedMonth)
	require.Equal(t, "2024-03-14", result.SelectedDate)

	require.Len(t, result.Days, 7)
	require.Equal(t, "Sun", result.Days[0].DayName)
	require.Equal(t, 10, result.Days[0].DayNumber)
	require.Equal(t, 16, result.Days[6].DayNumber)
	for i, d := range result.Days {
		require.Equal(t, i == 4, d.IsToday, d.Date)
	}

	require.Len(t, result.Schedule, 2)
	require.Equal(t, "09:00 - 10:30", result.Schedule[0].TimeRange)
	require.Equal(t, "light-green", result.Schedule[0].ColorTag)
	require.Equal(t, "Networks", result.Schedule[0].CourseName)
	require.Equal(t, "13:00 - 15:00", result.Schedule[1].TimeRange)
	require.Equal(t, "blue", result.Schedule[1].ColorTag)
}

func TestCalendarForOtherWeekHasNoToday(t *testing.T) {
	f := newFixture(t)
	student := f.student("", 0)

	result, err := f.dashboard.GetCalendar(context.Background(), student.ID, day(time.April, 2, 0))
	require.NoError(t, err)
	require.Equal(t, "April", result.SelectedMonth)
	require.Equal(t, "2024-03-31", result.Days[0].Date)
	require.Empty(t, result.Schedule)
	for _, d := range result.Days {
		require.False(t, d.IsToday)
	}
}

func TestScheduleColorTagDefaultsToBlue(t *testing.T) {
	require.Equal(t, "blue", scheduleColorTag("Seminar"))
	require.Equal(t, "light-green", scheduleColorTag(" lecture "))
}
