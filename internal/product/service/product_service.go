package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pollos/internal/commons"
	"pollos/internal/domain"

	"go.uber.org/zap"
)

type ProductRepository interface {
	ListActive(ctx context.Context) ([]domain.Product, error)
	Count(ctx context.Context) (int, error)
	Seed(ctx context.Context, products []domain.Product) error
}

// SeedFile is the layout of the catalog seed YAML.
type SeedFile struct {
	Products []SeedProduct `yaml:"products"`
}

type SeedProduct struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
	Image       string  `yaml:"image"`
	Category    string  `yaml:"category"`
	Inactive    bool    `yaml:"inactive"`
}

type ProductService struct {
	repo   ProductRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewProductService(repo ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger, now: time.Now}
}

func (s *ProductService) ListActive(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}
	return products, nil
}

// SeedIfEmpty loads the catalog from the YAML file at path when the store
// holds no products yet. It returns the number of products inserted.
func (s *ProductService) SeedIfEmpty(ctx context.Context, path string) (int, error) {
	if path == "" {
		return 0, nil
	}

	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Debug("catalog already populated, skipping seed", zap.Int("products", n))
		return 0, nil
	}

	file, err := commons.LoadYAML[SeedFile](path)
	if err != nil {
		return 0, fmt.Errorf("loading catalog seed: %w", err)
	}

	now := s.now().Truncate(time.Second)
	products := make([]domain.Product, 0, len(file.Products))
	for i, p := range file.Products {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return 0, fmt.Errorf("catalog seed entry %d has no name", i)
		}
		if p.Price < 0 {
			return 0, fmt.Errorf("catalog seed entry %q has a negative price", name)
		}
		products = append(products, domain.Product{
			Name:        name,
			Description: strings.TrimSpace(p.Description),
			Price:       p.Price,
			Image:       strings.TrimSpace(p.Image),
			Category:    strings.TrimSpace(p.Category),
			IsActive:    !p.Inactive,
			CreatedAt:   now,
		})
	}

	if err := s.repo.Seed(ctx, products); err != nil {
		return 0, err
	}

	s.logger.Info("catalog seeded", zap.String("file", path), zap.Int("products", len(products)))
	return len(products), nil
}
