package dto

import "time"

// DashboardView is the composite view model returned by the dashboard endpoint.
type DashboardView struct {
	Profile       ProfileHeader      `json:"profile"`
	ProgressGPA   ProgressGPA        `json:"progress_gpa"`
	Attendance    AttendanceTrend    `json:"attendance"`
	Homework      HomeworkSummary    `json:"homework"`
	Test          TestSummary        `json:"test"`
	Calendar      CalendarView       `json:"calendar"`
	Rating        RatingSummary      `json:"rating"`
	Rewards       RewardsSummary     `json:"rewards"`
	Leaderboard   Leaderboard        `json:"leaderboard"`
	CourseInfo    CourseInfo         `json:"course_info"`
	Notifications []NotificationItem `json:"notifications"`
	GeneratedAt   time.Time          `json:"generated_at"`
}

// ProfileHeader summarises the student shown above the dashboard sections.
type ProfileHeader struct {
	StudentID           uint           `json:"student_id"`
	DisplayName         string         `json:"display_name"`
	Group               string         `json:"group"`
	AvatarURL           string         `json:"avatar_url"`
	GPA                 float64        `json:"gpa"`
	RewardTotals        map[string]int `json:"reward_totals"`
	TotalPoints         int            `json:"total_points"`
	UnreadNotifications int64          `json:"unread_notifications"`
}

// ChartPoint is a single labelled value of a trend chart.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ProgressGPA is the grade trend over the selected period.
type ProgressGPA struct {
	SelectedPeriod string       `json:"selected_period"`
	Mode           string       `json:"mode"`
	Points         []ChartPoint `json:"points"`
	Average        float64      `json:"average"`
}

// AttendanceTrend is the monthly presence rate over the academic scaffold.
type AttendanceTrend struct {
	SelectedPeriod string       `json:"selected_period"`
	Points         []ChartPoint `json:"points"`
	Overall        float64      `json:"overall"`
}

// StatusBucket counts items sharing a display status.
type StatusBucket struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
	Color  string `json:"color"`
}

// HomeworkSummary buckets visible assignments by status.
type HomeworkSummary struct {
	Total   int            `json:"total"`
	Buckets []StatusBucket `json:"buckets"`
}

// TestSummary buckets visible tests by outcome.
type TestSummary struct {
	Total          int            `json:"total"`
	AwaitingResult int            `json:"awaiting_result"`
	Buckets        []StatusBucket `json:"buckets"`
}

// CalendarDay is one day of the rendered week strip.
type CalendarDay struct {
	DayName   string `json:"day_name"`
	DayNumber int    `json:"day_number"`
	Date      string `json:"date"`
	IsToday   bool   `json:"is_today"`
}

// ScheduleItem is a display-ready class occurrence.
type ScheduleItem struct {
	TimeRange  string `json:"time_range"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	ColorTag   string `json:"color_tag"`
	CourseName string `json:"course_name"`
	Location   string `json:"location"`
}

// CalendarView is the week around the selected date with that day's schedule.
type CalendarView struct {
	SelectedDate  string         `json:"selected_date"`
	SelectedMonth string         `json:"selected_month"`
	Days          []CalendarDay  `json:"days"`
	Schedule      []ScheduleItem `json:"schedule"`
}

// RatingSummary places the student within the group and flow cohorts.
type RatingSummary struct {
	GroupRank      *int    `json:"group_rank,omitempty"`
	GroupSize      int     `json:"group_size"`
	FlowRank       int     `json:"flow_rank"`
	FlowSize       int     `json:"flow_size"`
	FlowPercentile float64 `json:"flow_percentile"`
	Score          float64 `json:"score"`
}

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Rank        int     `json:"rank"`
	StudentID   uint    `json:"student_id"`
	DisplayName string  `json:"display_name"`
	Score       float64 `json:"score"`
	AvatarURL   string  `json:"avatar_url"`
	IsCurrent   bool    `json:"is_current"`
}

// Leaderboard lists the top of the selected cohort.
type Leaderboard struct {
	SelectedFilter string             `json:"selected_filter"`
	Entries        []LeaderboardEntry `json:"entries"`
}

// RewardItem is a display-ready reward row.
type RewardItem struct {
	Type          string `json:"type"`
	Description   string `json:"description"`
	FormattedDate string `json:"formatted_date"`
	Points        int    `json:"points"`
	IconTag       string `json:"icon_tag"`
}

// RewardsSummary lists recent rewards in the selected period.
type RewardsSummary struct {
	SelectedPeriod string       `json:"selected_period"`
	Items          []RewardItem `json:"items"`
	TotalPoints    int          `json:"total_points"`
}

// CourseInfo describes the student's current course.
type CourseInfo struct {
	HasCourse   bool   `json:"has_course"`
	CourseName  string `json:"course_name"`
	Format      string `json:"format"`
	Duration    string `json:"duration"`
	Access      string `json:"access"`
	Level       string `json:"level"`
	NextPayment string `json:"next_payment"`
}

// PeriodQuery captures the optional period token of trend endpoints.
type PeriodQuery struct {
	Period string `query:"period" validate:"omitempty,max=32"`
}

// LeaderboardQuery captures the cohort filter.
type LeaderboardQuery struct {
	Filter string `query:"filter" validate:"omitempty,max=32"`
}

// CalendarQuery captures the selected calendar date.
type CalendarQuery struct {
	Date string `query:"date" validate:"omitempty,datetime=2006-01-02"`
}
