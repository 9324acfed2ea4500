// Package repository provides the data access layer for the catalog mirror.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/breadcrumb/foodseed/internal/models"
	"github.com/breadcrumb/foodseed/internal/util"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// FoodRepository handles food data access.
type FoodRepository struct {
	db *sql.DB
}

// NewFoodRepository creates a new food repository.
func NewFoodRepository(db *sql.DB) *FoodRepository {
	return &FoodRepository{db: db}
}

func (r *FoodRepository) getExecer(tx *sql.Tx) execer {
	if tx != nil {
		return tx
	}
	return r.db
}

// ReplaceAll clears the mirror and loads every food and cuisine of the
// catalog in file order. Pass a transaction to make the swap atomic.
func (r *FoodRepository) ReplaceAll(ctx context.Context, tx *sql.Tx, catalog *models.Catalog) error {
	ex := r.getExecer(tx)

	if _, err := ex.ExecContext(ctx, `DELETE FROM foods`); err != nil {
		return fmt.Errorf("clearing foods: %w", err)
	}
	if _, err := ex.ExecContext(ctx, `DELETE FROM cuisines`); err != nil {
		return fmt.Errorf("clearing cuisines: %w", err)
	}

	for i, name := range catalog.Cuisines {
		if _, err := ex.ExecContext(ctx,
			`INSERT OR IGNORE INTO cuisines (position, name) VALUES (?, ?)`, i, name,
		); err != nil {
			return fmt.Errorf("inserting cuisine %q: %w", name, err)
		}
	}

	query := `
		INSERT INTO foods (
			position, id, seq, name, cuisine, calories,
			protein, carbs, fat, image, description
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for i := range catalog.Foods {
		f := &catalog.Foods[i]
		seq, err := util.ParseSequence(f.ID)
		if err != nil {
			return fmt.Errorf("food %d: %w", i, err)
		}

		if _, err := ex.ExecContext(ctx, query,
			i, f.ID, seq, f.Name, f.Cuisine, f.Calories,
			f.Protein, f.Carbs, f.Fat, f.Image, f.Description,
		); err != nil {
			return fmt.Errorf("inserting food %s: %w", f.ID, err)
		}
	}

	return nil
}

// GetByID retrieves the first food with the given ID.
func (r *FoodRepository) GetByID(ctx context.Context, id string) (*models.Food, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, cuisine, calories, protein, carbs, fat, image, description
		FROM foods
		WHERE id = ?
		ORDER BY position
		LIMIT 1`, id)

	food, err := scanFood(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("food %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return food, nil
}

// likeEscaper makes LIKE wildcards in search terms match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// List retrieves a page of foods ordered by numeric ID.
func (r *FoodRepository) List(ctx context.Context, filter models.FoodFilter, page models.Pagination) (*models.FoodList, error) {
	var conditions []string
	var args []any

	if filter.Cuisine != "" {
		conditions = append(conditions, "cuisine = ?")
		args = append(args, filter.Cuisine)
	}
	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		conditions = append(conditions, `(name LIKE ? ESCAPE '\' OR cuisine LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')`)
		pattern := "%" + likeEscaper.Replace(term) + "%"
		args = append(args, pattern, pattern, pattern)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM foods %s", whereClause)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting foods: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, cuisine, calories, protein, carbs, fat, image, description
		FROM foods
		%s
		ORDER BY seq, position
		LIMIT ? OFFSET ?`, whereClause)

	args = append(args, page.Limit(), page.Offset())
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying foods: %w", err)
	}
	defer rows.Close()

	var foods []*models.Food
	for rows.Next() {
		food, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		foods = append(foods, food)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating foods: %w", err)
	}

	return &models.FoodList{
		Foods:      foods,
		Total:      total,
		Page:       page.Page,
		PageSize:   page.Limit(),
		TotalPages: page.TotalPages(total),
	}, nil
}

// Count returns the number of mirrored foods.
func (r *FoodRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM foods`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting foods: %w", err)
	}
	return n, nil
}

// Cuisines returns the catalog's cuisine list in file order.
func (r *FoodRepository) Cuisines(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM cuisines ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying cuisines: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning cuisine: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cuisines: %w", err)
	}

	return names, nil
}

// CountByCuisine returns food counts per cuisine: listed cuisines first in
// catalog order (zero counts included), then any others alphabetically.
func (r *FoodRepository) CountByCuisine(ctx context.Context) ([]models.CuisineCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, n FROM (
			SELECT c.name AS name, COUNT(f.position) AS n, 0 AS listed, c.position AS ord
			FROM cuisines c
			LEFT JOIN foods f ON f.cuisine = c.name
			GROUP BY c.name
			UNION ALL
			SELECT f.cuisine, COUNT(*), 1, 0
			FROM foods f
			WHERE f.cuisine NOT IN (SELECT name FROM cuisines)
			GROUP BY f.cuisine
		)
		ORDER BY listed, ord, name`)
	if err != nil {
		return nil, fmt.Errorf("counting by cuisine: %w", err)
	}
	defer rows.Close()

	var counts []models.CuisineCount
	for rows.Next() {
		var cc models.CuisineCount
		if err := rows.Scan(&cc.Cuisine, &cc.Count); err != nil {
			return nil, fmt.Errorf("scanning cuisine count: %w", err)
		}
		counts = append(counts, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cuisine counts: %w", err)
	}

	return counts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFood(s scanner) (*models.Food, error) {
	var f models.Food
	err := s.Scan(
		&f.ID, &f.Name, &f.Cuisine, &f.Calories,
		&f.Protein, &f.Carbs, &f.Fat, &f.Image, &f.Description,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning food: %w", err)
	}
	return &f, nil
}
