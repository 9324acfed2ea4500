package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/breadcrumb/foodseed/internal/models"
	"github.com/breadcrumb/foodseed/internal/testutil"
	"github.com/breadcrumb/foodseed/internal/util"
)

func TestRunRepository_CreateAndLatest(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRunRepository(db.SQL())
	ctx := context.Background()

	if _, err := repo.Latest(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty table, got %v", err)
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	runs := []*models.GenerationRun{
		{
			ID: util.NewID(), DataPath: "foods.json", Seed: 1,
			Requested: 500, Generated: 500, Adjusted: 211,
			FirstID: "101", LastID: "600",
			StartedAt: base, FinishedAt: base.Add(120 * time.Millisecond),
		},
		{
			ID: util.NewID(), DataPath: "foods.json", Seed: 2,
			Requested: 3, Generated: 3, DryRun: true,
			FirstID: "601", LastID: "603",
			StartedAt: base.Add(time.Hour), FinishedAt: base.Add(time.Hour + time.Millisecond),
		},
	}
	for _, run := range runs {
		if err := repo.Create(ctx, nil, run); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	db.AssertRowCount(t, "generation_runs", 2)

	latest, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.ID != runs[1].ID {
		t.Errorf("Latest.ID = %s, want %s", latest.ID, runs[1].ID)
	}
	if !latest.DryRun || latest.Seed != 2 || latest.FirstID != "601" {
		t.Errorf("unexpected run %+v", latest)
	}
	if !latest.StartedAt.Equal(runs[1].StartedAt) {
		t.Errorf("StartedAt = %v, want %v", latest.StartedAt, runs[1].StartedAt)
	}
	if latest.Duration() != time.Millisecond {
		t.Errorf("Duration = %v, want 1ms", latest.Duration())
	}

	all, err := repo.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[1].Adjusted != 211 {
		t.Errorf("List = %+v", all)
	}
}

func TestRunRepository_CreateRequiresID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRunRepository(db.SQL())

	if err := repo.Create(context.Background(), nil, &models.GenerationRun{}); err == nil {
		t.Fatal("expected error for empty id")
	}
}
