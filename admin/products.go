// Package admin keeps the product and order listings shown to the shop
// administrator. Local listings change only after the commerce API confirms.
package admin

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/vikas-mobiles/be/clients"
	"github.com/vikas-mobiles/be/models"
)

type ProductAPI interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, req models.CreateProductRequest, image clients.ImageUpload) (*models.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

// ProductBoard caches the last fetched product listing. The storefront
// catalog reads from the same board.
type ProductBoard struct {
	mu       sync.RWMutex
	api      ProductAPI
	products []models.Product
	log      *logrus.Entry
}

func NewProductBoard(api ProductAPI, log *logrus.Entry) *ProductBoard {
	return &ProductBoard{api: api, log: log}
}

// Refresh replaces the listing with the remote one. On error the listing is kept.
func (b *ProductBoard) Refresh(ctx context.Context) ([]models.Product, error) {
	products, err := b.api.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh products: %w", err)
	}

	b.mu.Lock()
	b.products = products
	b.mu.Unlock()

	b.log.WithField("count", len(products)).Debug("refreshed products")
	return b.List(), nil
}

// List returns a copy of the cached listing.
func (b *ProductBoard) List() []models.Product {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]models.Product(nil), b.products...)
}

func (b *ProductBoard) Get(productID string) (models.Product, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, p := range b.products {
		if p.ID == productID {
			return p, true
		}
	}
	return models.Product{}, false
}

// Lookup finds a product in the cached listing, refreshing once on a miss.
func (b *ProductBoard) Lookup(ctx context.Context, productID string) (models.Product, bool, error) {
	if p, ok := b.Get(productID); ok {
		return p, true, nil
	}
	if _, err := b.Refresh(ctx); err != nil {
		return models.Product{}, false, err
	}
	p, ok := b.Get(productID)
	return p, ok, nil
}

// Create adds a product remotely and appends the created record to the listing.
func (b *ProductBoard) Create(ctx context.Context, req models.CreateProductRequest, image clients.ImageUpload) (*models.Product, error) {
	product, err := b.api.CreateProduct(ctx, req, image)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	b.mu.Lock()
	b.products = append(b.products, *product)
	b.mu.Unlock()

	b.log.WithFields(logrus.Fields{"product_id": product.ID, "name": product.Name}).Info("product created")
	return product, nil
}

// Delete removes a product remotely, then from the listing.
func (b *ProductBoard) Delete(ctx context.Context, productID string) error {
	if err := b.api.DeleteProduct(ctx, productID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	b.mu.Lock()
	for i, p := range b.products {
		if p.ID == productID {
			b.products = append(b.products[:i:i], b.products[i+1:]...)
			break
		}
	}
	b.mu.Unlock()

	b.log.WithField("product_id", productID).Info("product deleted")
	return nil
}
