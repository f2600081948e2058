package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"ledger-backend/internal/models"
)

// LabelRepository serves both purchase reference tables, type and classe.
type LabelRepository struct {
	DB *pgxpool.Pool
}

func NewLabelRepository(db *pgxpool.Pool) *LabelRepository {
	return &LabelRepository{DB: db}
}

// table maps a kind to its table and name column. Kinds are a closed set so
// the identifiers are never user supplied.
func table(kind models.LabelKind) (string, string, error) {
	switch kind {
	case models.LabelType:
		return `"type"`, "type_name", nil
	case models.LabelClass:
		return "classe", "classe_name", nil
	}
	return "", "", fmt.Errorf("unknown label kind %q", kind)
}

func (r *LabelRepository) List(ctx context.Context, kind models.LabelKind) ([]models.Label, error) {
	tbl, col, err := table(kind)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, fmt.Sprintf(`SELECT id, %s FROM %s ORDER BY %s ASC`, col, tbl, col))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := []models.Label{}
	for rows.Next() {
		l := models.Label{Kind: kind}
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

// Create inserts name, or returns the existing row when it is already listed.
func (r *LabelRepository) Create(ctx context.Context, kind models.LabelKind, name string) (*models.Label, error) {
	tbl, col, err := table(kind)
	if err != nil {
		return nil, err
	}

	l := models.Label{Kind: kind}
	err = r.DB.QueryRow(ctx, fmt.Sprintf(
		`INSERT INTO %[1]s(%[2]s) VALUES($1)
         ON CONFLICT (%[2]s) DO UPDATE SET %[2]s = EXCLUDED.%[2]s
         RETURNING id, %[2]s`, tbl, col), name,
	).Scan(&l.ID, &l.Name)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
