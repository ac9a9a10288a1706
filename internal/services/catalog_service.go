package services

import (
	"github.com/samber/lo"

	"github.com/adyen/shopcheck/internal/models"
)

// CatalogService serves the fixed storefront catalog
type CatalogService interface {
	Products() []models.Product
	Search(term string) []models.Product
	Product(id int) (models.Product, bool)
	Categories() []string
	Brands() []string
}

// CatalogServiceImpl implements CatalogService over an in-memory product list
type CatalogServiceImpl struct {
	products []models.Product
}

// NewCatalogService creates a catalog over products, listed in the given order
func NewCatalogService(products []models.Product) CatalogService {
	return &CatalogServiceImpl{products: products}
}

// NewDefaultCatalogService creates a catalog over SeedProducts
func NewDefaultCatalogService() CatalogService {
	return NewCatalogService(SeedProducts())
}

// Products returns every product
func (s *CatalogServiceImpl) Products() []models.Product {
	return s.products
}

// Search returns the products whose name or category contains term
func (s *CatalogServiceImpl) Search(term string) []models.Product {
	return lo.Filter(s.products, func(p models.Product, _ int) bool {
		return p.Matches(term)
	})
}

// Product looks up a product by id
func (s *CatalogServiceImpl) Product(id int) (models.Product, bool) {
	return lo.Find(s.products, func(p models.Product) bool {
		return p.ID == id
	})
}

// Categories returns the distinct categories in catalog order
func (s *CatalogServiceImpl) Categories() []string {
	return lo.Uniq(lo.Map(s.products, func(p models.Product, _ int) string { return p.Category }))
}

// Brands returns the distinct brands in catalog order
func (s *CatalogServiceImpl) Brands() []string {
	return lo.Uniq(lo.Map(s.products, func(p models.Product, _ int) string { return p.Brand }))
}

// SeedProducts is the catalog the local storefront starts with. The first
// entries match the names and prices of the live site.
func SeedProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Blue Top", Category: "Women > Tops", Brand: "Polo", Price: 500},
		{ID: 2, Name: "Men Tshirt", Category: "Men > Tshirts", Brand: "H&M", Price: 400},
		{ID: 3, Name: "Sleeveless Dress", Category: "Women > Dress", Brand: "Madame", Price: 1000},
		{ID: 4, Name: "Stylish Dress", Category: "Women > Dress", Brand: "Madame", Price: 1500},
		{ID: 5, Name: "Winter Top", Category: "Women > Tops", Brand: "Mast & Harbour", Price: 600},
		{ID: 6, Name: "Summer White Top", Category: "Women > Tops", Brand: "H&M", Price: 400},
		{ID: 7, Name: "Madame Top For Women", Category: "Women > Tops", Brand: "Madame", Price: 1000},
		{ID: 8, Name: "Fancy Green Top", Category: "Women > Tops", Brand: "Polo", Price: 700},
		{ID: 11, Name: "Pure Cotton V-Neck T-Shirt", Category: "Men > Tshirts", Brand: "Babyhug", Price: 1299},
		{ID: 12, Name: "Grunt Blue Slim Fit Jeans", Category: "Men > Jeans", Brand: "Allen Solly Junior", Price: 1400},
		{ID: 13, Name: "Soft Stretch Jeans", Category: "Men > Jeans", Brand: "Kookie Kids", Price: 799},
		{ID: 14, Name: "Green Side Placket Detail T-Shirt", Category: "Men > Tshirts", Brand: "Biba", Price: 1000},
		{ID: 15, Name: "Beautiful Peacock Blue Cotton Linen Saree", Category: "Women > Saree", Brand: "Biba", Price: 5000},
		{ID: 16, Name: "Lace Top For Women", Category: "Women > Tops", Brand: "Polo", Price: 1400},
		{ID: 21, Name: "Little Girls Mr. Panda Shirt", Category: "Kids > Tops & Shirts", Brand: "Allen Solly Junior", Price: 543},
		{ID: 22, Name: "Rose Pink Embroidered Maxi Dress", Category: "Women > Dress", Brand: "Kookie Kids", Price: 1500},
	}
}
