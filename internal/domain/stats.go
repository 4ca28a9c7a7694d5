package domain

// StatsTotals holds the scalar aggregates over users_nutrition.
// Averages are nil on an empty table.
type StatsTotals struct {
	TotalUsers  int64  `json:"total_users"`
	Buyers      int64  `json:"buyers"`
	Leads       int64  `json:"leads"`
	AvgCalories *int64 `json:"avg_calories"`
	AvgProtein  *int64 `json:"avg_protein"`
	AvgFats     *int64 `json:"avg_fats"`
	AvgCarbs    *int64 `json:"avg_carbs"`
}

type GoalCount struct {
	Goal  string `json:"goal"`
	Count int64  `json:"count"`
}

type FunnelCount struct {
	Stage int64 `json:"stage"`
	Count int64 `json:"count"`
}

type Stats struct {
	StatsTotals
	GoalDistribution   []GoalCount   `json:"goal_distribution"`
	FunnelDistribution []FunnelCount `json:"funnel_distribution"`
}
