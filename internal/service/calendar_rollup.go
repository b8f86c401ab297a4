package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/student-dashboard-api/internal/dto"
	"github.com/noah-isme/student-dashboard-api/internal/models"
	"github.com/noah-isme/student-dashboard-api/internal/period"
)

var scheduleColorTags = map[string]string{
	"workshop": colorBlue,
	"lecture":  "light-green",
}

func (s *dashboardService) GetCalendar(ctx context.Context, studentID uint, target time.Time) (result dto.CalendarView, err error) {
	ctx, done := s.observe(ctx, "calendar")
	defer func() { done(err) }()

	if err := ctx.Err(); err != nil {
		return dto.CalendarView{}, err
	}

	now := s.clock()
	if target.IsZero() {
		target = now
	}
	target = target.In(s.location)

	courseIDs, err := s.repos.Enrollments.ListVisibleCourseIDs(ctx, studentID)
	if err != nil {
		return dto.CalendarView{}, err
	}

	dayStart := period.StartOfDay(target)
	entries, err := s.repos.Schedules.ListByCoursesBetween(ctx, courseIDs, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return dto.CalendarView{}, err
	}
	if err := ctx.Err(); err != nil {
		return dto.CalendarView{}, err
	}

	result = dto.CalendarView{
		SelectedDate:  target.Format("2006-01-02"),
		SelectedMonth: target.Month().String(),
		Days:          weekStrip(target, now),
		Schedule:      make([]dto.ScheduleItem, 0, len(entries)),
	}
	for _, entry := range entries {
		result.Schedule = append(result.Schedule, s.scheduleItem(entry))
	}

	return result, nil
}

// weekStrip renders the Sunday-first week containing target.
func weekStrip(target, now time.Time) []dto.CalendarDay {
	start := period.StartOfWeek(target)
	days := make([]dto.CalendarDay, 0, 7)
	for offset := 0; offset < 7; offset++ {
		day := start.AddDate(0, 0, offset)
		days = append(days, dto.CalendarDay{
			DayName:   day.Weekday().String()[:3],
			DayNumber: day.Day(),
			Date:      day.Format("2006-01-02"),
			IsToday:   period.SameDay(day, now),
		})
	}
	return days
}

func (s *dashboardService) scheduleItem(entry models.Schedule) dto.ScheduleItem {
	return dto.ScheduleItem{
		TimeRange:  fmt.Sprintf("%s - %s", entry.StartTime.In(s.location).Format("15:04"), entry.EndTime.In(s.location).Format("15:04")),
		Type:       entry.Type,
		Title:      entry.Title,
		ColorTag:   scheduleColorTag(entry.Type),
		CourseName: entry.Course.Name,
		Location:   entry.Location,
	}
}

func scheduleColorTag(kind string) string {
	if tag, ok := scheduleColorTags[strings.ToLower(strings.TrimSpace(kind))]; ok {
		return tag
	}
	return colorBlue
}
