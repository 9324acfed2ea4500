package models

import (
	"time"
)

// FoodFilter defines filtering options for food queries.
type FoodFilter struct {
	Cuisine    string // Exact match; empty means all cuisines
	SearchTerm string // Case-insensitive match on name and cuisine
}

// FoodList is a page of foods.
type FoodList struct {
	Foods      []*Food
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// CatalogStats contains aggregate statistics about a catalog.
type CatalogStats struct {
	TotalFoods      int
	Cuisines        []CuisineCount
	AvgCalories     float64
	AvgProtein      float64
	AvgCarbs        float64
	AvgFat          float64
	UnbalancedFoods int // Foods outside the energy-balance tolerance
	MaxID           int
}

// GenerationRun records one invocation of the generator.
type GenerationRun struct {
	ID         string
	DataPath   string
	Seed       int64
	Requested  int
	Generated  int
	Adjusted   int // Foods whose calories were re-derived from macros
	DryRun     bool
	FirstID    string
	LastID     string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns how long the run took.
func (r *GenerationRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
