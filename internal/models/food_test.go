package models

import (
	"testing"
)

func TestExpectedCalories(t *testing.T) {
	tests := []struct {
		name    string
		protein float64
		carbs   float64
		fat     float64
		want    int
	}{
		{"All zero", 0, 0, 0, 0},
		{"Protein only", 10, 0, 0, 40},
		{"Carbs only", 0, 10, 0, 40},
		{"Fat only", 0, 0, 10, 90},
		{"Butter chicken", 27, 10, 38, 490},
		{"Fractional macros round", 0.5, 0.5, 0.5, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpectedCalories(tt.protein, tt.carbs, tt.fat); got != tt.want {
				t.Errorf("ExpectedCalories() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFood_IsEnergyBalanced(t *testing.T) {
	tests := []struct {
		name      string
		food      Food
		tolerance int
		wantDelta int
		want      bool
	}{
		{
			name:      "Exact match",
			food:      Food{Calories: 490, Protein: 27, Carbs: 10, Fat: 38},
			tolerance: 100,
			wantDelta: 0,
			want:      true,
		},
		{
			name:      "Over by tolerance",
			food:      Food{Calories: 590, Protein: 27, Carbs: 10, Fat: 38},
			tolerance: 100,
			wantDelta: 100,
			want:      true,
		},
		{
			name:      "Under beyond tolerance",
			food:      Food{Calories: 150, Protein: 27, Carbs: 10, Fat: 38},
			tolerance: 100,
			wantDelta: 340,
			want:      false,
		},
		{
			name:      "Zero tolerance",
			food:      Food{Calories: 41, Protein: 10},
			tolerance: 0,
			wantDelta: 1,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.food.EnergyDelta(); got != tt.wantDelta {
				t.Errorf("Food.EnergyDelta() = %v, want %v", got, tt.wantDelta)
			}
			if got := tt.food.IsEnergyBalanced(tt.tolerance); got != tt.want {
				t.Errorf("Food.IsEnergyBalanced() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCatalog_HasCuisine(t *testing.T) {
	c := &Catalog{Cuisines: []string{"Italian", "Thai"}}

	if !c.HasCuisine("Thai") {
		t.Error("expected Thai to be a catalog cuisine")
	}
	if c.HasCuisine("thai") {
		t.Error("cuisine lookup should be case-sensitive")
	}
	if c.HasCuisine("Greek") {
		t.Error("expected Greek not to be a catalog cuisine")
	}
}

func TestDistribution(t *testing.T) {
	foods := []Food{
		{Cuisine: "Thai"},
		{Cuisine: "Italian"},
		{Cuisine: "Thai"},
		{Cuisine: "Korean"},
		{Cuisine: "Greek"},
	}

	got := Distribution(foods, []string{"Italian", "Thai", "Spanish"})
	want := []CuisineCount{
		{"Italian", 1},
		{"Thai", 2},
		{"Spanish", 0},
		{"Greek", 1},
		{"Korean", 1},
	}

	if len(got) != len(want) {
		t.Fatalf("Distribution() returned %d entries, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Distribution()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDistribution_Empty(t *testing.T) {
	got := Distribution(nil, nil)
	if len(got) != 0 {
		t.Errorf("Distribution(nil, nil) = %v, want empty", got)
	}
}
