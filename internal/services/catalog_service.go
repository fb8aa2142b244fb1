package services

import (
	"context"
	"errors"

	"nkeinfinity/internal/apiclient"
	"nkeinfinity/internal/domain"
)

// ErrNotFound is returned for ids the backend does not know.
var ErrNotFound = errors.New("not found")

// CatalogService serves the public product pages.
type CatalogService struct {
	API *apiclient.Client
}

func NewCatalogService(api *apiclient.Client) *CatalogService {
	return &CatalogService{API: api}
}

func (s *CatalogService) Categories() []string { return domain.Categories }

// Products lists the public catalogue, narrowed to one category when
// category is a known one.
func (s *CatalogService) Products(ctx context.Context, category string) ([]domain.Product, error) {
	if domain.IsCategory(category) {
		return s.API.ProductsByCategory(ctx, category)
	}
	return s.API.PublicProducts(ctx)
}

func (s *CatalogService) Product(ctx context.Context, id string) (domain.Product, error) {
	all, err := s.API.PublicProducts(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, ErrNotFound
}

// Catalogue fetches the category catalogue. Failures read as "no catalogue".
func (s *CatalogService) Catalogue(ctx context.Context, category string) *domain.Catalogue {
	if category == "" {
		return nil
	}
	c, err := s.API.Catalogue(ctx, category)
	if err != nil || c == nil || c.URL == "" {
		return nil
	}
	return c
}
