package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/noah-isme/student-dashboard-api/internal/dto"
	"github.com/noah-isme/student-dashboard-api/internal/period"
)

const (
	trendModeWeekday = "weekday"
	trendModeMonthly = "monthly"
)

// attendanceScaffold is the academic-year month order shown on the attendance chart.
var attendanceScaffold = []time.Month{
	time.August,
	time.September,
	time.October,
	time.November,
	time.December,
	time.January,
	time.February,
}

func (s *dashboardService) GetProgressGPA(ctx context.Context, studentID uint, periodToken string) (result dto.ProgressGPA, err error) {
	ctx, done := s.observe(ctx, "progress_gpa")
	defer func() { done(err) }()

	if err := ctx.Err(); err != nil {
		return dto.ProgressGPA{}, err
	}

	window := period.Resolve(periodToken, s.clock(), period.Week)
	grades, err := s.repos.Grades.ListByStudentInWindow(ctx, studentID, window)
	if err != nil {
		return dto.ProgressGPA{}, err
	}
	if err := ctx.Err(); err != nil {
		return dto.ProgressGPA{}, err
	}

	samples := make([]trendSample, 0, len(grades))
	for _, grade := range grades {
		samples = append(samples, trendSample{at: grade.RecordedAt.In(s.location), value: grade.Percentage()})
	}

	result = dto.ProgressGPA{
		SelectedPeriod: string(window.Period),
		Average:        round1(meanOf(samples)),
	}

	switch window.Period {
	case period.Month, period.Year, period.All:
		result.Mode = trendModeMonthly
		result.Points = monthlyTrend(samples)
	default:
		result.Mode = trendModeWeekday
		result.Points = weekdayTrend(samples)
	}

	return result, nil
}

func (s *dashboardService) GetAttendance(ctx context.Context, studentID uint, periodToken string) (result dto.AttendanceTrend, err error) {
	ctx, done := s.observe(ctx, "attendance")
	defer func() { done(err) }()

	if err := ctx.Err(); err != nil {
		return dto.AttendanceTrend{}, err
	}

	window := period.Resolve(periodToken, s.clock(), period.Month)
	records, err := s.repos.Attendance.ListByStudentInWindow(ctx, studentID, window)
	if err != nil {
		return dto.AttendanceTrend{}, err
	}
	if err := ctx.Err(); err != nil {
		return dto.AttendanceTrend{}, err
	}

	type tally struct{ present, total int }
	byMonth := make(map[time.Month]*tally, len(attendanceScaffold))
	for _, month := range attendanceScaffold {
		byMonth[month] = &tally{}
	}

	var overall tally
	for _, record := range records {
		overall.total++
		if record.IsPresent() {
			overall.present++
		}

		bucket, ok := byMonth[record.Date.In(s.location).Month()]
		if !ok {
			continue
		}
		bucket.total++
		if record.IsPresent() {
			bucket.present++
		}
	}

	result = dto.AttendanceTrend{
		SelectedPeriod: string(window.Period),
		Points:         make([]dto.ChartPoint, 0, len(attendanceScaffold)),
		Overall:        percentOf(overall.present, overall.total),
	}
	for _, month := range attendanceScaffold {
		bucket := byMonth[month]
		result.Points = append(result.Points, dto.ChartPoint{
			Label: monthLabel(month),
			Value: percentOf(bucket.present, bucket.total),
		})
	}

	return result, nil
}

type trendSample struct {
	at    time.Time
	value float64
}

// weekdayTrend always yields seven points, Sunday first.
func weekdayTrend(samples []trendSample) []dto.ChartPoint {
	var sums, counts [7]float64
	for _, sample := range samples {
		day := sample.at.Weekday()
		sums[day] += sample.value
		counts[day]++
	}

	points := make([]dto.ChartPoint, 0, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		value := 0.0
		if counts[day] > 0 {
			value = round1(sums[day] / counts[day])
		}
		points = append(points, dto.ChartPoint{Label: day.String()[:3], Value: value})
	}

	return points
}

// monthlyTrend yields one point per calendar month present in samples. Samples from the same
// month of different years share a bucket; buckets are ordered by their earliest sample.
func monthlyTrend(samples []trendSample) []dto.ChartPoint {
	type bucket struct {
		month    time.Month
		earliest time.Time
		sum      float64
		count    float64
	}

	buckets := map[time.Month]*bucket{}
	for _, sample := range samples {
		month := sample.at.Month()
		b, ok := buckets[month]
		if !ok {
			b = &bucket{month: month, earliest: sample.at}
			buckets[month] = b
		}
		if sample.at.Before(b.earliest) {
			b.earliest = sample.at
		}
		b.sum += sample.value
		b.count++
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].earliest.Before(ordered[j].earliest)
	})

	points := make([]dto.ChartPoint, 0, len(ordered))
	for _, b := range ordered {
		points = append(points, dto.ChartPoint{Label: monthLabel(b.month), Value: round1(b.sum / b.count)})
	}

	return points
}

func meanOf(samples []trendSample) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, sample := range samples {
		sum += sample.value
	}
	return sum / float64(len(samples))
}

func percentOf(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}

func monthLabel(month time.Month) string {
	return month.String()[:3]
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
