package service

import (
	"context"
	"sort"
	"strings"

	"github.com/noah-isme/student-dashboard-api/internal/dto"
	"github.com/noah-isme/student-dashboard-api/internal/models"
)

const (
	leaderboardFilterGroup = "Group"
	leaderboardFilterAll   = "All"
	leaderboardSize        = 10
)

func (s *dashboardService) GetRating(ctx context.Context, studentID uint) (dto.RatingSummary, error) {
	student, err := s.loadStudent(ctx, studentID)
	if err != nil {
		return dto.RatingSummary{}, err
	}
	return s.rating(ctx, student)
}

func (s *dashboardService) rating(ctx context.Context, student models.Student) (result dto.RatingSummary, err error) {
	ctx, done := s.observe(ctx, "rating")
	defer func() { done(err) }()

	if err := ctx.Err(); err != nil {
		return dto.RatingSummary{}, err
	}

	flow, err := s.repos.Students.ListCohort(ctx, "")
	if err != nil {
		return dto.RatingSummary{}, err
	}
	flow = rankCohort(withMember(flow, student))

	result = dto.RatingSummary{
		FlowRank: rankOf(flow, student.ID),
		FlowSize: len(flow),
		Score:    student.GPA,
	}
	result.FlowPercentile = round1(100 - float64(result.FlowRank-1)/float64(result.FlowSize)*100)

	if student.HasGroup() {
		group, err := s.repos.Students.ListCohort(ctx, student.Group)
		if err != nil {
			return dto.RatingSummary{}, err
		}
		group = rankCohort(withMember(group, student))

		rank := rankOf(group, student.ID)
		result.GroupRank = &rank
		result.GroupSize = len(group)
	}

	if err := ctx.Err(); err != nil {
		return dto.RatingSummary{}, err
	}

	return result, nil
}

func (s *dashboardService) GetLeaderboard(ctx context.Context, studentID uint, filter string) (dto.Leaderboard, error) {
	student, err := s.loadStudent(ctx, studentID)
	if err != nil {
		return dto.Leaderboard{}, err
	}
	return s.leaderboard(ctx, student, filter)
}

func (s *dashboardService) leaderboard(ctx context.Context, student models.Student, filter string) (result dto.Leaderboard, err error) {
	ctx, done := s.observe(ctx, "leaderboard")
	defer func() { done(err) }()

	if err := ctx.Err(); err != nil {
		return dto.Leaderboard{}, err
	}

	selected := leaderboardFilterAll
	group := ""
	if strings.EqualFold(strings.TrimSpace(filter), leaderboardFilterGroup) && student.HasGroup() {
		selected = leaderboardFilterGroup
		group = student.Group
	}

	cohort, err := s.repos.Students.ListCohort(ctx, group)
	if err != nil {
		return dto.Leaderboard{}, err
	}
	if err := ctx.Err(); err != nil {
		return dto.Leaderboard{}, err
	}

	cohort = rankCohort(cohort)
	if len(cohort) > leaderboardSize {
		cohort = cohort[:leaderboardSize]
	}

	result = dto.Leaderboard{
		SelectedFilter: selected,
		Entries:        make([]dto.LeaderboardEntry, 0, len(cohort)),
	}
	for i, member := range cohort {
		result.Entries = append(result.Entries, dto.LeaderboardEntry{
			Rank:        i + 1,
			StudentID:   member.ID,
			DisplayName: member.DisplayName(),
			Score:       member.GPA,
			AvatarURL:   s.avatars.AvatarURL(member.User.Avatar),
			IsCurrent:   member.ID == student.ID,
		})
	}

	return result, nil
}

// rankCohort orders students by score descending; ties keep store order.
func rankCohort(students []models.Student) []models.Student {
	ranked := make([]models.Student, len(students))
	copy(ranked, students)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].GPA > ranked[j].GPA
	})
	return ranked
}

// withMember inserts student at its id position when the cohort query did not return it,
// e.g. for an inactive student. cohort must be ordered by id.
func withMember(cohort []models.Student, student models.Student) []models.Student {
	at := len(cohort)
	for i, member := range cohort {
		if member.ID == student.ID {
			return cohort
		}
		if member.ID > student.ID && at == len(cohort) {
			at = i
		}
	}

	merged := make([]models.Student, 0, len(cohort)+1)
	merged = append(merged, cohort[:at]...)
	merged = append(merged, student)
	return append(merged, cohort[at:]...)
}

func rankOf(ranked []models.Student, studentID uint) int {
	for i, member := range ranked {
		if member.ID == studentID {
			return i + 1
		}
	}
	return 0
}
