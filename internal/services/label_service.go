package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"ledger-backend/internal/cache"
	"ledger-backend/internal/models"
)

var lower = cases.Lower(language.French)

// NormalizeLabel is the stored and compared form of a type or class name.
func NormalizeLabel(name string) string {
	return lower.String(strings.TrimSpace(name))
}

type LabelService struct {
	Repo LabelStore
}

func NewLabelService(repo LabelStore) *LabelService {
	return &LabelService{Repo: repo}
}

func (s *LabelService) List(ctx context.Context, kind models.LabelKind) ([]models.Label, error) {
	if !kind.Valid() {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown label kind %q", kind)}
	}

	var labels []models.Label
	if cache.GetJSON(ctx, cache.LabelsKey(string(kind)), &labels) {
		return labels, nil
	}
	labels, err := s.Repo.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, cache.LabelsKey(string(kind)), labels)
	return labels, nil
}

// Create adds a name to a reference list. An existing name returns its row.
func (s *LabelService) Create(ctx context.Context, kind models.LabelKind, name string) (*models.Label, error) {
	if !kind.Valid() {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown label kind %q", kind)}
	}
	name = NormalizeLabel(name)
	if name == "" {
		return nil, &ValidationError{Fields: []string{"name"}}
	}

	label, err := s.Repo.Create(ctx, kind, name)
	if err != nil {
		return nil, err
	}
	cache.InvalidateLabelCaches(ctx)
	return label, nil
}
