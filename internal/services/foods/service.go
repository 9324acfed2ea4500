// Package foods orchestrates catalog generation, mirroring and statistics.
package foods

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/breadcrumb/foodseed/internal/catalog"
	"github.com/breadcrumb/foodseed/internal/database"
	"github.com/breadcrumb/foodseed/internal/models"
	"github.com/breadcrumb/foodseed/internal/repository"
	"github.com/breadcrumb/foodseed/internal/seed"
	"github.com/breadcrumb/foodseed/internal/util"
)

// Service provides catalog operations on one catalog file.
type Service struct {
	path  string
	cfg   seed.Config
	vocab seed.Vocabulary

	db    *database.DB
	foods *repository.FoodRepository
	runs  *repository.RunRepository

	now func() time.Time
}

// NewService creates a catalog service for the file at path. db may be nil,
// in which case mirror operations return ErrNoMirror.
func NewService(path string, cfg seed.Config, db *database.DB) *Service {
	s := &Service{
		path:  path,
		cfg:   cfg,
		vocab: seed.DefaultVocabulary,
		db:    db,
		now:   time.Now,
	}
	if db != nil {
		s.foods = repository.NewFoodRepository(db.DB)
		s.runs = repository.NewRunRepository(db.DB)
	}
	return s
}

// Path returns the catalog file path.
func (s *Service) Path() string {
	return s.path
}

// HasMirror reports whether a mirror database is attached.
func (s *Service) HasMirror() bool {
	return s.db != nil
}

// Generate appends in.Count synthetic foods to the catalog file.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (*GenerateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started := s.now()

	doc, err := catalog.Load(s.path)
	if err != nil {
		return nil, err
	}

	cfg := s.cfg
	if in.Seed != 0 {
		cfg.RandomSeed = in.Seed
	}
	gen := seed.NewGenerator(cfg, s.vocab)

	foods, err := gen.Generate(&doc.Catalog, in.Count)
	if err != nil {
		return nil, fmt.Errorf("generating foods: %w", err)
	}

	result := &GenerateResult{
		RunID:        util.NewID(),
		Path:         s.path,
		Seed:         gen.Seed(),
		Added:        len(foods),
		Foods:        foods,
		Distribution: models.Distribution(foods, doc.Catalog.Cuisines),
		Adjusted:     gen.Stats().Adjusted,
		DryRun:       in.DryRun,
	}

	if !in.DryRun && len(foods) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if in.Backup {
			backup, err := catalog.Backup(s.path)
			if err != nil {
				return nil, err
			}
			result.BackupPath = backup
		}

		if err := doc.Save(); err != nil {
			return nil, fmt.Errorf("saving catalog: %w", err)
		}
	}

	slog.Info("generation finished",
		"run_id", result.RunID,
		"path", s.path,
		"added", result.Added,
		"adjusted", result.Adjusted,
		"seed", result.Seed,
		"dry_run", in.DryRun,
	)

	if s.db == nil {
		return result, nil
	}

	run := &models.GenerationRun{
		ID:         result.RunID,
		DataPath:   s.path,
		Seed:       result.Seed,
		Requested:  in.Count,
		Generated:  result.Added,
		Adjusted:   result.Adjusted,
		DryRun:     in.DryRun,
		StartedAt:  started,
		FinishedAt: s.now(),
	}
	if len(foods) > 0 {
		run.FirstID = foods[0].ID
		run.LastID = foods[len(foods)-1].ID
	}

	err = s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		if in.Sync && !in.DryRun {
			if err := s.foods.ReplaceAll(ctx, tx, &doc.Catalog); err != nil {
				return err
			}
			result.Synced = true
		}
		return s.runs.Create(ctx, tx, run)
	})
	if err != nil {
		// The catalog file is already written; the mirror can be rebuilt.
		result.Synced = false
		return result, fmt.Errorf("recording run in mirror: %w", err)
	}

	return result, nil
}

// Sync rebuilds the mirror from the catalog file.
func (s *Service) Sync(ctx context.Context) (*SyncResult, error) {
	if s.db == nil {
		return nil, ErrNoMirror
	}

	doc, err := catalog.Load(s.path)
	if err != nil {
		return nil, err
	}

	err = s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		return s.foods.ReplaceAll(ctx, tx, &doc.Catalog)
	})
	if err != nil {
		return nil, fmt.Errorf("syncing mirror: %w", err)
	}

	slog.Info("mirror synced", "path", s.path, "foods", len(doc.Catalog.Foods))

	return &SyncResult{
		Path:     s.path,
		Foods:    len(doc.Catalog.Foods),
		Cuisines: len(doc.Catalog.Cuisines),
	}, nil
}

// Stats computes aggregate statistics over the catalog file.
func (s *Service) Stats(ctx context.Context) (*models.CatalogStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := catalog.Load(s.path)
	if err != nil {
		return nil, err
	}

	return computeStats(&doc.Catalog, s.cfg.Tolerance), nil
}

// LatestRun returns the most recent generation run recorded in the mirror.
func (s *Service) LatestRun(ctx context.Context) (*models.GenerationRun, error) {
	if s.db == nil {
		return nil, ErrNoMirror
	}
	return s.runs.Latest(ctx)
}

// ListFoods returns a page of mirrored foods.
func (s *Service) ListFoods(ctx context.Context, filter models.FoodFilter, page models.Pagination) (*models.FoodList, error) {
	if s.db == nil {
		return nil, ErrNoMirror
	}
	return s.foods.List(ctx, filter, page)
}

// Cuisines returns the mirrored cuisine list in catalog order.
func (s *Service) Cuisines(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, ErrNoMirror
	}
	return s.foods.Cuisines(ctx)
}

// CountByCuisine returns mirrored food counts per cuisine.
func (s *Service) CountByCuisine(ctx context.Context) ([]models.CuisineCount, error) {
	if s.db == nil {
		return nil, ErrNoMirror
	}
	return s.foods.CountByCuisine(ctx)
}

func computeStats(c *models.Catalog, tolerance int) *models.CatalogStats {
	stats := &models.CatalogStats{
		TotalFoods: len(c.Foods),
		Cuisines:   models.Distribution(c.Foods, c.Cuisines),
	}
	if len(c.Foods) == 0 {
		return stats
	}

	var calories, protein, carbs, fat float64
	for i := range c.Foods {
		f := &c.Foods[i]
		calories += float64(f.Calories)
		protein += f.Protein
		carbs += f.Carbs
		fat += f.Fat

		if !f.IsEnergyBalanced(tolerance) {
			stats.UnbalancedFoods++
		}
		if seq, err := util.ParseSequence(f.ID); err == nil && seq > stats.MaxID {
			stats.MaxID = seq
		}
	}

	n := float64(len(c.Foods))
	stats.AvgCalories = calories / n
	stats.AvgProtein = protein / n
	stats.AvgCarbs = carbs / n
	stats.AvgFat = fat / n

	return stats
}
