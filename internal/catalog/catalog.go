// Package catalog is CRUD over customers and products.
package catalog

import (
	"errors"
	"strings"

	"shopledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// --- Customers ---

func (s *Service) AddCustomer(name, phone, email string) (*models.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "is required"}
	}

	customer := models.Customer{
		Name:  name,
		Phone: strings.TrimSpace(phone),
		Email: strings.TrimSpace(email),
	}
	if err := s.db.Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *Service) ListCustomers() ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.Order("created_at DESC, id DESC").Find(&customers).Error
	return customers, err
}

// DeleteCustomer is idempotent: deleting an absent id is a no-op success.
// The customer's sales survive with their customer_id nulled out.
func (s *Service) DeleteCustomer(id uint) error {
	return s.db.Delete(&models.Customer{}, id).Error
}

// --- Products ---

func (s *Service) AddProduct(name, sku string, costPrice, salePrice decimal.Decimal, stock int) (*models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "is required"}
	}
	if !salePrice.IsPositive() {
		return nil, &models.ValidationError{Field: "sale_price", Reason: "must be greater than zero"}
	}

	product := models.Product{
		Name:      name,
		CostPrice: costPrice,
		SalePrice: salePrice,
		Stock:     stock,
	}
	// Blank SKU stays NULL so the unique index only bites real duplicates.
	if trimmed := strings.TrimSpace(sku); trimmed != "" {
		product.SKU = &trimmed
	}

	if err := s.db.Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Service) ListProducts() ([]models.Product, error) {
	var products []models.Product
	err := s.db.Order("created_at DESC, id DESC").Find(&products).Error
	return products, err
}

func (s *Service) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// ProductUpdate carries a partial update; nil fields are left untouched.
type ProductUpdate struct {
	Name      *string          `json:"name"`
	SKU       *string          `json:"sku"`
	CostPrice *decimal.Decimal `json:"cost_price"`
	SalePrice *decimal.Decimal `json:"sale_price"`
	Stock     *int             `json:"stock"`
}

func (s *Service) UpdateProduct(id uint, upd ProductUpdate) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, &models.ValidationError{Field: "name", Reason: "is required"}
		}
		updates["name"] = name
	}
	if upd.SKU != nil {
		if trimmed := strings.TrimSpace(*upd.SKU); trimmed == "" {
			updates["sku"] = nil
		} else {
			updates["sku"] = trimmed
		}
	}
	if upd.CostPrice != nil {
		updates["cost_price"] = *upd.CostPrice
	}
	if upd.SalePrice != nil {
		if !upd.SalePrice.IsPositive() {
			return nil, &models.ValidationError{Field: "sale_price", Reason: "must be greater than zero"}
		}
		updates["sale_price"] = *upd.SalePrice
	}
	if upd.Stock != nil {
		updates["stock"] = *upd.Stock
	}

	if len(updates) == 0 {
		return product, nil
	}
	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetProduct(id)
}

// DeleteProduct is idempotent. Deleting a product referenced by historical
// sale items is permitted; those rows keep their own price/quantity snapshot.
func (s *Service) DeleteProduct(id uint) error {
	return s.db.Delete(&models.Product{}, id).Error
}
