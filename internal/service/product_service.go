package service

import (
	"context"

	"storefront_api/internal/logger"
	"storefront_api/internal/model"
	"storefront_api/internal/repository"
)

// ProductService defines operations for the product catalogue
type ProductService interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id int) (*model.Product, error)
	Create(ctx context.Context, req model.CreateProductRequest) (*model.Product, error)
	Update(ctx context.Context, id int, patch model.ProductPatch) (*model.Product, error)
	Delete(ctx context.Context, id int) (*model.Product, error)
}

type productService struct {
	repo repository.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	return s.repo.FindAll(ctx)
}

func (s *productService) Get(ctx context.Context, id int) (*model.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *productService) Create(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	p, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info().Int("product_id", p.ID).Str("price", p.Price.StringFixed(2)).Msg("product created")
	return p, nil
}

func (s *productService) Update(ctx context.Context, id int, patch model.ProductPatch) (*model.Product, error) {
	return s.repo.Update(ctx, id, patch)
}

func (s *productService) Delete(ctx context.Context, id int) (*model.Product, error) {
	p, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info().Int("product_id", id).Msg("product deleted")
	return p, nil
}
