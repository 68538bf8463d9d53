package service

import (
	"context"
	"fmt"

	"canteen-service/internal/entity"
	"canteen-service/internal/repository"
)

type ShopService struct {
	shopRepo repository.ShopRepository
}

func NewShopService(shopRepo repository.ShopRepository) *ShopService {
	return &ShopService{shopRepo: shopRepo}
}

func (s *ShopService) ListShops(ctx context.Context) ([]entity.Shop, error) {
	return s.shopRepo.ListShops(ctx)
}

func (s *ShopService) RenameShop(ctx context.Context, id int, name string) (*entity.Shop, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: shop name is required", ErrValidation)
	}
	return s.shopRepo.RenameShop(ctx, id, name)
}

func (s *ShopService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.shopRepo.ListCategories(ctx)
}
