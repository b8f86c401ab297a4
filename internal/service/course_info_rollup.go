package service

import (
	"context"
	"fmt"

	"github.com/noah-isme/student-dashboard-api/internal/dto"
	"github.com/noah-isme/student-dashboard-api/internal/models"
)

func (s *dashboardService) GetCourseInfo(ctx context.Context, studentID uint) (result dto.CourseInfo, err error) {
	ctx, done := s.observe(ctx, "course_info")
	defer func() { done(err) }()

	if err := ctx.Err(); err != nil {
		return dto.CourseInfo{}, err
	}

	enrollments, err := s.repos.Enrollments.ListByStudent(ctx, studentID, models.EnrollmentStatusActive)
	if err != nil {
		return dto.CourseInfo{}, err
	}
	if len(enrollments) == 0 {
		return dto.CourseInfo{HasCourse: false}, nil
	}

	enrollment := enrollments[0]
	course := enrollment.Course

	return dto.CourseInfo{
		HasCourse:   true,
		CourseName:  course.Name,
		Format:      course.Format,
		Duration:    formatMonths(course.Duration),
		Access:      course.Access,
		Level:       course.Level,
		NextPayment: enrollment.EnrolledAt.In(s.location).AddDate(0, 2, 0).Format("02.01.2006"),
	}, nil
}

func formatMonths(months int) string {
	if months == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", months)
}
