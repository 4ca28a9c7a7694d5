package domain

import "time"

// NutritionUser is a row of users_nutrition as shown in lists.
type NutritionUser struct {
	ChatID      int64      `json:"chat_id"`
	Username    *string    `json:"username"`
	FirstName   *string    `json:"first_name"`
	Sex         *string    `json:"sex"`
	Age         *float64   `json:"age"`
	Weight      *float64   `json:"weight"`
	Height      *float64   `json:"height"`
	Goal        *string    `json:"goal"`
	Calories    *float64   `json:"calories"`
	Protein     *float64   `json:"protein"`
	Fats        *float64   `json:"fats"`
	Carbs       *float64   `json:"carbs"`
	FunnelStage *int64     `json:"funnel_stage"`
	IsBuyer     *bool      `json:"is_buyer"`
	GetFood     *bool      `json:"get_food"`
	CreatedAt   *time.Time `json:"created_at"`
}

// NutritionUserDetail adds the questionnaire fields only the detail view needs.
type NutritionUserDetail struct {
	NutritionUser
	ActivityLevel *string `json:"activity_level"`
	Allergies     *string `json:"allergies"`
	ExcludedFoods *string `json:"excluded_foods"`
	Language      *string `json:"language"`
}

type UserStatus string

const (
	UserStatusBuyer UserStatus = "buyer"
	UserStatusLead  UserStatus = "lead"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// UserFilter is the normalized form of the /api/users query string.
// Empty strings and a nil FunnelStage mean "no filter".
type UserFilter struct {
	Search      string
	Status      UserStatus
	Goal        string
	FunnelStage *int
	Sort        string
	Order       SortOrder
}

const (
	DefaultRecentDays  = 7
	MinRecentDays      = 1
	MaxRecentDays      = 365
	DefaultRecentLimit = 20
	MinRecentLimit     = 1
	MaxRecentLimit     = 100
)

// RecentQuery is the clamped /api/users/recent window.
type RecentQuery struct {
	Days  int
	Limit int
}
