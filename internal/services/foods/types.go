package foods

import (
	"errors"

	"github.com/breadcrumb/foodseed/internal/models"
)

// ErrNoMirror is returned by operations that need the SQLite mirror when the
// service was built without one.
var ErrNoMirror = errors.New("no catalog mirror configured")

// GenerateInput contains the options for one generation run.
type GenerateInput struct {
	Count  int
	Seed   int64 // 0 keeps the configured seed
	DryRun bool  // Generate but do not write the catalog
	Backup bool  // Copy the catalog to <path>.bak before writing
	Sync   bool  // Rebuild the mirror from the written catalog
}

// GenerateResult describes a completed generation run.
type GenerateResult struct {
	RunID        string
	Path         string
	Seed         int64
	Added        int
	Foods        []models.Food
	Distribution []models.CuisineCount // New foods per cuisine, catalog order
	Adjusted     int
	BackupPath   string
	DryRun       bool
	Synced       bool
}

// SyncResult describes a mirror rebuild.
type SyncResult struct {
	Path     string
	Foods    int
	Cuisines int
}
