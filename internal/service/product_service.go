package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"canteen-service/internal/entity"
	"canteen-service/internal/repository"
)

const productCacheTTL = 1 * time.Minute

// ProductService serves the catalog with a redis cache in front of
// single-product reads. A nil redis client disables caching.
type ProductService struct {
	productRepo repository.ProductRepository
	rdb         *redis.Client
}

func NewProductService(productRepo repository.ProductRepository, rdb *redis.Client) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		rdb:         rdb,
	}
}

// GetProduct retrieves a product, preferring the cache.
func (p *ProductService) GetProduct(ctx context.Context, productID int) (*entity.Product, error) {
	key := fmt.Sprintf("product:%d", productID)
	if p.rdb != nil {
		cached, err := p.rdb.Get(ctx, key).Result()
		if err == nil {
			var product entity.Product
			if err := json.Unmarshal([]byte(cached), &product); err == nil {
				return &product, nil
			}
			logger.Warn().Msgf("Dropping unreadable cache entry for product %d", productID)
		} else if !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msgf("Error reading product %d from cache", productID)
		}
	}

	product, err := p.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	p.cacheProduct(ctx, product)
	return product, nil
}

func (p *ProductService) ListProducts(ctx context.Context, shopID, categoryID *int) ([]entity.Product, error) {
	return p.productRepo.ListProducts(ctx, shopID, categoryID)
}

func (p *ProductService) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if product.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}

	created, err := p.productRepo.CreateProduct(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating product")
		return nil, err
	}

	p.cacheProduct(ctx, created)
	return created, nil
}

// UpdateProduct applies a partial update and refreshes the cache so a
// price change is visible to the next checkout immediately. Orders
// placed before the change keep their snapshotted prices.
func (p *ProductService) UpdateProduct(ctx context.Context, id int, update *entity.ProductUpdate) (*entity.Product, error) {
	if update.Price != nil && *update.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}

	updated, err := p.productRepo.UpdateProduct(ctx, id, update)
	if err != nil {
		return nil, err
	}

	p.cacheProduct(ctx, updated)
	return updated, nil
}

func (p *ProductService) cacheProduct(ctx context.Context, product *entity.Product) {
	if p.rdb == nil {
		return
	}
	data, err := json.Marshal(product)
	if err != nil {
		return
	}
	key := fmt.Sprintf("product:%d", product.ID)
	if err := p.rdb.Set(ctx, key, data, productCacheTTL).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error setting product %d in cache", product.ID)
	}
}
