package service

import (
	"context"
	"strings"

	"github.com/noah-isme/student-dashboard-api/internal/dto"
	"github.com/noah-isme/student-dashboard-api/internal/period"
)

const rewardListLimit = 10

var rewardIconTags = map[string]string{
	"marks":    "checkmark",
	"homework": "diamond",
	"test":     "trophy",
}

func (s *dashboardService) GetRewards(ctx context.Context, studentID uint, periodToken string) (result dto.RewardsSummary, err error) {
	ctx, done := s.observe(ctx, "rewards")
	defer func() { done(err) }()

	if err := ctx.Err(); err != nil {
		return dto.RewardsSummary{}, err
	}

	window := period.Resolve(periodToken, s.clock(), period.Today)
	rewards, err := s.repos.Rewards.ListByStudentInWindow(ctx, studentID, window, rewardListLimit)
	if err != nil {
		return dto.RewardsSummary{}, err
	}
	if err := ctx.Err(); err != nil {
		return dto.RewardsSummary{}, err
	}

	result = dto.RewardsSummary{
		SelectedPeriod: string(window.Period),
		Items:          make([]dto.RewardItem, 0, len(rewards)),
	}
	for _, reward := range rewards {
		result.Items = append(result.Items, dto.RewardItem{
			Type:          reward.Type,
			Description:   reward.Description,
			FormattedDate: reward.EarnedAt.In(s.location).Format("02.01.2006"),
			Points:        reward.Points,
			IconTag:       rewardIconTag(reward.Type),
		})
		result.TotalPoints += reward.Points
	}

	return result, nil
}

func rewardIconTag(kind string) string {
	if tag, ok := rewardIconTags[strings.ToLower(strings.TrimSpace(kind))]; ok {
		return tag
	}
	return "star"
}
