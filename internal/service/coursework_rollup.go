package service

import (
	"context"
	"time"

	"github.com/noah-isme/student-dashboard-api/internal/dto"
	"github.com/noah-isme/student-dashboard-api/internal/models"
)

const (
	homeworkStatusChecked = "Checked"
	homeworkStatusPending = "Pending"
	homeworkStatusOverdue = "Overdue"
	homeworkStatusCurrent = "Current"

	testStatusSuccessful = "Successfully"
	testStatusPending    = "Pending"
	testStatusFailed     = "Failed"

	colorGreen  = "green"
	colorOrange = "orange"
	colorRed    = "red"
	colorBlue   = "blue"

	// homeworkHorizon bounds how far ahead untouched assignments become visible.
	homeworkHorizon = 7 * 24 * time.Hour
	testPassPercent = 60.0
)

func (s *dashboardService) GetHomework(ctx context.Context, studentID uint) (result dto.HomeworkSummary, err error) {
	ctx, done := s.observe(ctx, "homework")
	defer func() { done(err) }()

	if err := ctx.Err(); err != nil {
		return dto.HomeworkSummary{}, err
	}

	courseIDs, err := s.repos.Enrollments.ListVisibleCourseIDs(ctx, studentID)
	if err != nil {
		return dto.HomeworkSummary{}, err
	}

	assignments, err := s.repos.Assignments.ListActiveByCourses(ctx, courseIDs)
	if err != nil {
		return dto.HomeworkSummary{}, err
	}

	assignmentIDs := make([]uint, 0, len(assignments))
	for _, assignment := range assignments {
		assignmentIDs = append(assignmentIDs, assignment.ID)
	}

	submissions, err := s.repos.Submissions.ListByStudent(ctx, studentID, assignmentIDs)
	if err != nil {
		return dto.HomeworkSummary{}, err
	}

	grades, err := s.repos.Grades.ListForAssignments(ctx, studentID, assignmentIDs)
	if err != nil {
		return dto.HomeworkSummary{}, err
	}
	if err := ctx.Err(); err != nil {
		return dto.HomeworkSummary{}, err
	}

	return bucketHomework(s.clock(), assignments, submissions, grades), nil
}

// bucketHomework assigns each visible assignment to exactly one status, in priority order.
func bucketHomework(now time.Time, assignments []models.Assignment, submissions []models.Submission, grades []models.Grade) dto.HomeworkSummary {
	latest := make(map[uint]models.Submission, len(submissions))
	for _, submission := range submissions {
		current, seen := latest[submission.AssignmentID]
		if !seen || submission.SubmittedAt.After(current.SubmittedAt) {
			latest[submission.AssignmentID] = submission
		}
	}

	graded := make(map[uint]struct{}, len(grades))
	for _, grade := range grades {
		if grade.AssignmentID != nil {
			graded[*grade.AssignmentID] = struct{}{}
		}
	}

	horizon := now.Add(homeworkHorizon)
	var checked, pending, overdue, current int

	for _, assignment := range assignments {
		submission, submitted := latest[assignment.ID]
		_, hasGrade := graded[assignment.ID]

		switch {
		case hasGrade || (submitted && submission.IsGraded()):
			checked++
		case submitted:
			pending++
		case assignment.DueDate.Before(now):
			overdue++
		case !assignment.DueDate.After(horizon):
			current++
		}
	}

	return dto.HomeworkSummary{
		Total: checked + pending + overdue + current,
		Buckets: []dto.StatusBucket{
			{Status: homeworkStatusChecked, Count: checked, Color: colorGreen},
			{Status: homeworkStatusPending, Count: pending, Color: colorOrange},
			{Status: homeworkStatusOverdue, Count: overdue, Color: colorRed},
			{Status: homeworkStatusCurrent, Count: current, Color: colorBlue},
		},
	}
}

func (s *dashboardService) GetTests(ctx context.Context, studentID uint) (result dto.TestSummary, err error) {
	ctx, done := s.observe(ctx, "test")
	defer func() { done(err) }()

	if err := ctx.Err(); err != nil {
		return dto.TestSummary{}, err
	}

	courseIDs, err := s.repos.Enrollments.ListVisibleCourseIDs(ctx, studentID)
	if err != nil {
		return dto.TestSummary{}, err
	}

	tests, err := s.repos.Tests.ListByCourses(ctx, courseIDs)
	if err != nil {
		return dto.TestSummary{}, err
	}

	testIDs := make([]uint, 0, len(tests))
	for _, test := range tests {
		testIDs = append(testIDs, test.ID)
	}

	grades, err := s.repos.Grades.ListForTests(ctx, studentID, testIDs)
	if err != nil {
		return dto.TestSummary{}, err
	}
	if err := ctx.Err(); err != nil {
		return dto.TestSummary{}, err
	}

	return bucketTests(s.clock(), tests, grades), nil
}

func bucketTests(now time.Time, tests []models.Test, grades []models.Grade) dto.TestSummary {
	results := make(map[uint]models.Grade, len(grades))
	for _, grade := range grades {
		if grade.TestID == nil {
			continue
		}
		current, seen := results[*grade.TestID]
		if !seen || grade.RecordedAt.After(current.RecordedAt) {
			results[*grade.TestID] = grade
		}
	}

	var successful, pending, failed, awaiting int
	for _, test := range tests {
		grade, hasResult := results[test.ID]

		switch {
		case hasResult && grade.Percentage() >= testPassPercent:
			successful++
		case hasResult:
			failed++
		case test.TestDate.After(now):
			pending++
		default:
			awaiting++
		}
	}

	return dto.TestSummary{
		Total:          len(tests),
		AwaitingResult: awaiting,
		Buckets: []dto.StatusBucket{
			{Status: testStatusSuccessful, Count: successful, Color: colorGreen},
			{Status: testStatusPending, Count: pending, Color: colorOrange},
			{Status: testStatusFailed, Count: failed, Color: colorRed},
		},
	}
}
