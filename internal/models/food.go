package models

import (
	"math"
	"sort"
)

// Energy contributed per gram of each macronutrient, in kcal.
const (
	KcalPerGramProtein = 4
	KcalPerGramCarbs   = 4
	KcalPerGramFat     = 9
)

// Food is a single catalog entry.
type Food struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Cuisine     string  `json:"cuisine" yaml:"cuisine"`
	Calories    int     `json:"calories" yaml:"calories"`
	Protein     float64 `json:"protein" yaml:"protein"`
	Carbs       float64 `json:"carbs" yaml:"carbs"`
	Fat         float64 `json:"fat" yaml:"fat"`
	Image       string  `json:"image" yaml:"image"`
	Description string  `json:"description" yaml:"description"`
}

// ExpectedCalories returns the energy implied by the given macros, rounded to
// the nearest kcal.
func ExpectedCalories(protein, carbs, fat float64) int {
	kcal := KcalPerGramProtein*protein + KcalPerGramCarbs*carbs + KcalPerGramFat*fat
	return int(math.Round(kcal))
}

// ExpectedCalories returns the energy implied by the food's macros.
func (f *Food) ExpectedCalories() int {
	return ExpectedCalories(f.Protein, f.Carbs, f.Fat)
}

// EnergyDelta returns the absolute difference between the stated calories
// and the macro-derived calories.
func (f *Food) EnergyDelta() int {
	d := f.Calories - f.ExpectedCalories()
	if d < 0 {
		return -d
	}
	return d
}

// IsEnergyBalanced reports whether the stated calories are within tolerance
// of the macro-derived calories.
func (f *Food) IsEnergyBalanced(tolerance int) bool {
	return f.EnergyDelta() <= tolerance
}

// Catalog is the in-memory form of a catalog document.
type Catalog struct {
	Foods    []Food   `json:"foods" yaml:"foods"`
	Cuisines []string `json:"cuisines" yaml:"cuisines"`
}

// HasCuisine reports whether name is one of the catalog's cuisines.
func (c *Catalog) HasCuisine(name string) bool {
	for _, cuisine := range c.Cuisines {
		if cuisine == name {
			return true
		}
	}
	return false
}

// CuisineCount pairs a cuisine with a number of foods.
type CuisineCount struct {
	Cuisine string
	Count   int
}

// Distribution counts foods per cuisine. Cuisines listed in order appear first
// in that order (including those with zero foods); any other cuisines follow
// alphabetically.
func Distribution(foods []Food, order []string) []CuisineCount {
	counts := make(map[string]int, len(order))
	for _, f := range foods {
		counts[f.Cuisine]++
	}

	result := make([]CuisineCount, 0, len(counts))
	seen := make(map[string]bool, len(order))
	for _, cuisine := range order {
		if seen[cuisine] {
			continue
		}
		seen[cuisine] = true
		result = append(result, CuisineCount{Cuisine: cuisine, Count: counts[cuisine]})
	}

	var rest []string
	for cuisine := range counts {
		if !seen[cuisine] {
			rest = append(rest, cuisine)
		}
	}
	sort.Strings(rest)
	for _, cuisine := range rest {
		result = append(result, CuisineCount{Cuisine: cuisine, Count: counts[cuisine]})
	}

	return result
}
