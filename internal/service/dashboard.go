package service

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/arogyalab/backend/internal/catalog"
	"github.com/arogyalab/backend/internal/diet"
	"github.com/arogyalab/backend/internal/models"
	"github.com/arogyalab/backend/internal/trends"
)

// Milestone is a single achievement flag on the dashboard.
type Milestone struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Achieved    bool   `json:"achieved"`
}

// Dashboard is the aggregate view assembled for one user.
type Dashboard struct {
	User           *models.User            `json:"user"`
	Reports        []models.HealthReport   `json:"reports"`
	ReportCount    int                     `json:"report_count"`
	Conditions     []string                `json:"conditions"`
	Parameters     []string                `json:"parameters"`
	Trends         map[string][]float64    `json:"trends"`
	TrendLabels    []string                `json:"trend_labels"`
	Comparison     map[string]trends.Delta `json:"comparison"`
	DietChart      []diet.MealEntry        `json:"diet_chart"`
	Milestones     []Milestone             `json:"milestones"`
	WellnessScore  int                     `json:"wellness_score"`
	WellnessTip    string                  `json:"wellness_tip"`
	UnreadMessages int64                   `json:"unread_messages"`
	Activities     []models.ActivityLog    `json:"activities"`
	LatestActivity *models.ActivityLog     `json:"latest_activity"`
}

var wellnessTips = []string{
	"Drink at least 8 glasses of water a day.",
	"Aim for 30 minutes of moderate exercise most days.",
	"Fill half your plate with vegetables at every meal.",
	"Keep a consistent sleep schedule, even on weekends.",
	"Take short walking breaks if you sit for long stretches.",
	"Limit added sugar and prefer whole fruits instead.",
}

// DashboardService assembles the dashboard from reports, activity and
// messages, and refreshes the stored diet chart as a side effect.
type DashboardService struct {
	db         *gorm.DB
	foods      *catalog.FoodCatalog
	tests      *catalog.LabTestCatalog
	reports    *ReportService
	activities *ActivityService
	messages   *MessageService
}

func NewDashboardService(db *gorm.DB, foods *catalog.FoodCatalog, tests *catalog.LabTestCatalog, reports *ReportService, activities *ActivityService, messages *MessageService) *DashboardService {
	return &DashboardService{
		db:         db,
		foods:      foods,
		tests:      tests,
		reports:    reports,
		activities: activities,
		messages:   messages,
	}
}

// Build assembles the dashboard. The diet chart is recomputed from the
// latest report's conditions and the user's current goal, then persisted
// back onto that report so doctors see the same plan the patient does.
func (s *DashboardService) Build(userID uuid.UUID) (*Dashboard, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	reports, err := s.reports.ListReports(userID)
	if err != nil {
		return nil, err
	}

	history := make([]trends.ReportValues, 0, len(reports))
	for _, r := range reports {
		history = append(history, trends.ReportValues{
			Values:    r.ExtractedValues,
			Timestamp: r.CreatedAt,
		})
	}
	series, labels := trends.Build(history)
	comparison := trends.Compare(history)

	conditions := []string{}
	dietChart := diet.BuildDietChart(conditions, user.Goal, s.foods)
	if len(reports) > 0 {
		latest := &reports[0]
		conditions = latest.Conditions
		dietChart = diet.BuildDietChart(conditions, user.Goal, s.foods)

		latest.DietPlan = models.JSONBDietPlan(dietChart)
		if err := s.db.Save(latest).Error; err != nil {
			return nil, err
		}
	}

	activities, err := s.activities.List(userID)
	if err != nil {
		return nil, err
	}
	var latestActivity *models.ActivityLog
	if len(activities) > 0 {
		latestActivity = &activities[0]
	}

	unread, err := s.messages.UnreadCount(userID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		User:           &user,
		Reports:        reports,
		ReportCount:    len(reports),
		Conditions:     conditions,
		Parameters:     s.tests.ParameterNames(),
		Trends:         series,
		TrendLabels:    labels,
		Comparison:     comparison,
		DietChart:      dietChart,
		Milestones:     buildMilestones(reports, activities),
		WellnessScore:  87,
		WellnessTip:    wellnessTips[rand.Intn(len(wellnessTips))],
		UnreadMessages: unread,
		Activities:     activities,
		LatestActivity: latestActivity,
	}, nil
}

func buildMilestones(reports []models.HealthReport, activities []models.ActivityLog) []Milestone {
	stepMaster := false
	for _, a := range activities {
		if a.Steps >= 10000 {
			stepMaster = true
			break
		}
	}

	return []Milestone{
		{
			Title:       "First Report Uploaded",
			Description: "Upload your first lab report",
			Achieved:    len(reports) >= 1,
		},
		{
			Title:       "Step Master",
			Description: "Log 10,000 steps in a single day",
			Achieved:    stepMaster,
		},
		{
			Title:       "7-Day Streak",
			Description: "Log activity on 7 consecutive days",
			Achieved:    hasConsecutiveDays(activities, 7),
		},
		{
			Title:       "Diet Pro",
			Description: "Upload 7 or more reports",
			Achieved:    len(reports) >= 7,
		},
	}
}

// hasConsecutiveDays checks for a run of n distinct consecutive dates in
// the activity log.
func hasConsecutiveDays(activities []models.ActivityLog, n int) bool {
	if len(activities) == 0 {
		return false
	}

	seen := make(map[string]time.Time)
	for _, a := range activities {
		day := a.Date.Format("2006-01-02")
		if _, ok := seen[day]; !ok {
			seen[day] = a.Date.Truncate(24 * time.Hour)
		}
	}

	for _, start := range seen {
		run := 1
		next := start
		for {
			next = next.AddDate(0, 0, 1)
			if _, ok := seen[next.Format("2006-01-02")]; !ok {
				break
			}
			run++
			if run >= n {
				return true
			}
		}
	}
	return n <= 1
}
