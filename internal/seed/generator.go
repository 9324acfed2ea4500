package seed

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/breadcrumb/foodseed/internal/models"
	"github.com/breadcrumb/foodseed/internal/util"
)

// MaxValue bounds every configured range and the perturbation. Real foods
// stay far below it and it keeps the rand.Intn arguments positive.
const MaxValue = 100_000

// Range is an inclusive integer range.
type Range struct {
	Min int
	Max int
}

func (r Range) validate(name string) error {
	if r.Min < 0 {
		return fmt.Errorf("%s: min must be non-negative", name)
	}
	if r.Max < r.Min {
		return fmt.Errorf("%s: max %d is below min %d", name, r.Max, r.Min)
	}
	if r.Max > MaxValue {
		return fmt.Errorf("%s: max %d exceeds %d", name, r.Max, MaxValue)
	}
	return nil
}

// Config configures the food generator.
type Config struct {
	RandomSeed int64 // 0 seeds from the clock

	Calories Range
	Protein  Range
	Carbs    Range
	Fat      Range

	// Tolerance is the largest allowed gap between calories and the
	// macro-derived energy.
	Tolerance int
	// Perturbation bounds the random offset added when calories are re-derived
	// from macros.
	Perturbation int
	// MaxAdjustments caps the resampling loop. Once hit, calories are set to
	// the macro-derived value exactly.
	MaxAdjustments int
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		RandomSeed:     0,
		Calories:       Range{Min: 150, Max: 650},
		Protein:        Range{Min: 5, Max: 40},
		Carbs:          Range{Min: 10, Max: 80},
		Fat:            Range{Min: 5, Max: 40},
		Tolerance:      100,
		Perturbation:   50,
		MaxAdjustments: 16,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	var errs []error

	ranges := []struct {
		name string
		r    Range
	}{
		{"calories", c.Calories},
		{"protein", c.Protein},
		{"carbs", c.Carbs},
		{"fat", c.Fat},
	}
	for _, rr := range ranges {
		if err := rr.r.validate(rr.name); err != nil {
			errs = append(errs, err)
		}
	}

	if c.Tolerance < 0 {
		errs = append(errs, errors.New("tolerance must be non-negative"))
	}
	if c.Perturbation < 0 || c.Perturbation > MaxValue {
		errs = append(errs, fmt.Errorf("perturbation must be between 0 and %d", MaxValue))
	}
	if c.MaxAdjustments < 0 {
		errs = append(errs, errors.New("max_adjustments must be non-negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Stats summarizes the energy adjustments made by a generator.
type Stats struct {
	Generated int // Foods produced
	Adjusted  int // Foods whose calories had to be re-derived
	Capped    int // Foods that hit MaxAdjustments and took the exact value
}

// Generator produces synthetic foods for a catalog.
type Generator struct {
	cfg   Config
	vocab Vocabulary
	seed  int64
	rng   *rand.Rand
	stats Stats
}

// NewGenerator creates a new food generator. A nil vocabulary uses
// DefaultVocabulary.
func NewGenerator(cfg Config, vocab Vocabulary) *Generator {
	if vocab == nil {
		vocab = DefaultVocabulary
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:   cfg,
		vocab: vocab,
		seed:  seed,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the effective random seed, useful for reproducing a run.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Stats returns adjustment statistics accumulated across Generate calls.
func (g *Generator) Stats() Stats {
	return g.stats
}

// Generate creates n foods, appends them to the catalog and returns them.
// The catalog is left untouched when an error is returned.
func (g *Generator) Generate(catalog *models.Catalog, n int) ([]models.Food, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}

	maxID, err := g.checkCatalog(catalog)
	if err != nil {
		return nil, err
	}

	if n == 0 {
		return nil, nil
	}

	slog.Debug("generating foods",
		"count", n,
		"cuisines", len(catalog.Cuisines),
		"first_id", maxID+1,
		"seed", g.seed,
	)

	ids := util.NewSequenceGenerator(maxID)
	foods := make([]models.Food, 0, n)
	for i := 0; i < n; i++ {
		cuisine := catalog.Cuisines[g.rng.Intn(len(catalog.Cuisines))]
		foods = append(foods, g.generateFood(cuisine, ids))
	}

	catalog.Foods = append(catalog.Foods, foods...)

	slog.Debug("foods generated",
		"count", len(foods),
		"adjusted", g.stats.Adjusted,
		"capped", g.stats.Capped,
	)

	return foods, nil
}

// checkCatalog validates the catalog and returns the highest existing ID.
func (g *Generator) checkCatalog(catalog *models.Catalog) (int, error) {
	if catalog == nil || len(catalog.Cuisines) == 0 {
		return 0, ErrNoCuisines
	}

	var unknown []string
	for _, cuisine := range catalog.Cuisines {
		if _, ok := g.vocab.Lookup(cuisine); !ok {
			unknown = append(unknown, cuisine)
		}
	}
	if len(unknown) > 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCuisine, strings.Join(unknown, ", "))
	}

	maxID := 0
	for i, f := range catalog.Foods {
		seq, err := util.ParseSequence(f.ID)
		if err != nil {
			return 0, fmt.Errorf("%w: food %d has id %q", ErrInvalidID, i, f.ID)
		}
		if f.Cuisine == "" {
			return 0, fmt.Errorf("%w: food %s", ErrMissingCuisine, f.ID)
		}
		if seq > maxID {
			maxID = seq
		}
	}

	return maxID, nil
}

func (g *Generator) generateFood(cuisine string, ids *util.SequenceGenerator) models.Food {
	name := g.generateName(cuisine)

	calories := g.sample(g.cfg.Calories)
	protein := g.sample(g.cfg.Protein)
	carbs := g.sample(g.cfg.Carbs)
	fat := g.sample(g.cfg.Fat)

	expected := models.ExpectedCalories(float64(protein), float64(carbs), float64(fat))
	calories = g.balanceCalories(calories, expected)

	description := g.generateDescription(cuisine, name)

	g.stats.Generated++

	return models.Food{
		ID:          ids.Next(),
		Name:        name,
		Cuisine:     cuisine,
		Calories:    calories,
		Protein:     float64(protein),
		Carbs:       float64(carbs),
		Fat:         float64(fat),
		Image:       "",
		Description: description,
	}
}

// balanceCalories re-derives calories from the macro energy until the gap is
// within tolerance, giving up after MaxAdjustments attempts.
func (g *Generator) balanceCalories(calories, expected int) int {
	if abs(calories-expected) <= g.cfg.Tolerance {
		return calories
	}

	g.stats.Adjusted++
	for attempt := 0; abs(calories-expected) > g.cfg.Tolerance; attempt++ {
		if attempt >= g.cfg.MaxAdjustments {
			g.stats.Capped++
			return expected
		}
		calories = expected + g.rng.Intn(2*g.cfg.Perturbation+1) - g.cfg.Perturbation
		if calories < 0 {
			calories = 0
		}
	}

	return calories
}

func (g *Generator) generateName(cuisine string) string {
	cv, _ := g.vocab.Lookup(cuisine)

	parts := nameParts{
		Cuisine:   cuisine,
		Term:      g.pick(cv.Terms),
		Adjective: g.pick(cv.Adjectives),
		Base:      g.pick(cv.Bases),
	}

	return nameTemplates[g.rng.Intn(len(nameTemplates))](parts)
}

func (g *Generator) generateDescription(cuisine, name string) string {
	parts := descriptionParts{
		Cuisine: cuisine,
		Name:    name,
		Method:  g.pick(CookingMethods),
		Sauce:   g.pick(Sauces),
		Garnish: g.pick(Garnishes),
	}

	return descriptionTemplates[g.rng.Intn(len(descriptionTemplates))](parts)
}

func (g *Generator) pick(words []string) string {
	return words[g.rng.Intn(len(words))]
}

func (g *Generator) sample(r Range) int {
	return r.Min + g.rng.Intn(r.Max-r.Min+1)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
