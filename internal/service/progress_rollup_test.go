package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/student-dashboard-api/internal/models"
)

func TestProgressGPAWeekWithoutGradesYieldsSevenZeros(t *testing.T) {
	f := newFixture(t)
	student := f.student("", 0)

	result, err := f.dashboard.GetProgressGPA(context.Background(), student.ID, "Week")
	require.NoError(t, err)
	require.Equal(t, "Week", result.SelectedPeriod)
	require.Equal(t, trendModeWeekday, result.Mode)
	require.Len(t, result.Points, 7)

	expected := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	for i, point := range result.Points {
		require.Equal(t, expected[i], point.Label)
		require.Zero(t, point.Value)
	}
	require.Zero(t, result.Average)
}

func TestProgressGPAWeekdayBuckets(t *testing.T) {
	f := newFixture(t)
	student := f.student("", 0)
	other := f.student("", 0)

	f.grade(student, 80, 100, day(time.March, 11, 9))  // Monday
	f.grade(student, 90, 100, day(time.March, 11, 12)) // Monday
	f.grade(student, 7, 10, day(time.March, 13, 10))   // Wednesday
	f.grade(student, 10, 100, day(time.March, 1, 10))  // outside the week
	f.grade(other, 100, 100, day(time.March, 12, 10))

	result, err := f.dashboard.GetProgressGPA(context.Background(), student.ID, "unknown")
	require.NoError(t, err)
	require.Equal(t, "Week", result.SelectedPeriod)
	require.Len(t, result.Points, 7)
	require.Equal(t, 85.0, result.Points[time.Monday].Value)
	require.Equal(t, 0.0, result.Points[time.Tuesday].Value)
	require.Equal(t, 70.0, result.Points[time.Wednesday].Value)
	require.Equal(t, 80.0, result.Average)
}

func TestProgressGPAMonthlyModeIsChronologicalWithoutZeroFill(t *testing.T) {
	f := newFixture(t)
	student := f.student("", 0)

	f.grade(student, 60, 100, day(time.January, 20, 10))
	f.grade(student, 70, 100, time.Date(2023, time.November, 5, 10, 0, 0, 0, time.UTC))
	f.grade(student, 90, 100, time.Date(2023, time.November, 25, 10, 0, 0, 0, time.UTC))

	result, err := f.dashboard.GetProgressGPA(context.Background(), student.ID, "year")
	require.NoError(t, err)
	require.Equal(t, trendModeMonthly, result.Mode)
	require.Len(t, result.Points, 2)
	require.Equal(t, "Nov", result.Points[0].Label)
	require.Equal(t, 80.0, result.Points[0].Value)
	require.Equal(t, "Jan", result.Points[1].Label)
	require.Equal(t, 60.0, result.Points[1].Value)
}

func TestProgressGPAYearMergesSameMonthAcrossYears(t *testing.T) {
	f := newFixture(t)
	student := f.student("", 0)

	f.grade(student, 80, 100, time.Date(2023, time.March, 20, 10, 0, 0, 0, time.UTC))
	f.grade(student, 50, 100, day(time.January, 15, 10))
	f.grade(student, 40, 100, day(time.March, 10, 10))

	result, err := f.dashboard.GetProgressGPA(context.Background(), student.ID, "Year")
	require.NoError(t, err)
	require.Equal(t, trendModeMonthly, result.Mode)
	require.Len(t, result.Points, 2)
	require.Equal(t, "Mar", result.Points[0].Label)
	require.Equal(t, 60.0, result.Points[0].Value)
	require.Equal(t, "Jan", result.Points[1].Label)
	require.Equal(t, 50.0, result.Points[1].Value)
}

func TestAttendanceTrendUsesAcademicScaffold(t *testing.T) {
	f := newFixture(t)
	student := f.student("", 0)

	records := []models.Attendance{
		{StudentID: student.ID, ScheduleID: 1, Date: day(time.February, 20, 9), Status: models.AttendanceStatusPresent},
		{StudentID: student.ID, ScheduleID: 1, Date: day(time.February, 21, 9), Status: models.AttendanceStatusAbsent},
		{StudentID: student.ID, ScheduleID: 1, Date: day(time.March, 1, 9), Status: models.AttendanceStatusPresent},
		{StudentID: student.ID, ScheduleID: 1, Date: day(time.January, 5, 9), Status: models.AttendanceStatusPresent},
	}
	for i := range records {
		f.create(&records[i])
	}

	result, err := f.dashboard.GetAttendance(context.Background(), student.ID, "")
	require.NoError(t, err)
	require.Equal(t, "Month", result.SelectedPeriod)
	require.Len(t, result.Points, 7)
	require.Equal(t, "Aug", result.Points[0].Label)
	require.Equal(t, "Feb", result.Points[6].Label)
	require.Equal(t, 50.0, result.Points[6].Value)
	require.Equal(t, 0.0, result.Points[5].Value, "January is outside the monthly window")
	require.Equal(t, 66.7, result.Overall)
}

func TestRollupsHonourCancellation(t *testing.T) {
	f := newFixture(t)
	student := f.student("", 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.dashboard.GetProgressGPA(ctx, student.ID, "Week")
	require.ErrorIs(t, err, context.Canceled)
	_, err = f.dashboard.GetHomework(ctx, student.ID)
	require.ErrorIs(t, err, context.Canceled)
}
