// Package sales turns a session-held cart into a durable sale.
package sales

import (
	"context"
	"errors"

	"shopledger/internal/cart"
	"shopledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrProductNotFound = errors.New("product not found")
)

const listLimit = 200

type Service struct {
	db    *gorm.DB
	carts cart.Store
}

func New(db *gorm.DB, carts cart.Store) *Service {
	return &Service{db: db, carts: carts}
}

// AddItem snapshots the product's current name and sale price into the
// session's cart. Later price changes do not touch lines already added.
func (s *Service) AddItem(ctx context.Context, sessionID string, productID uint, quantity int) (*cart.Cart, error) {
	if quantity < 1 {
		return nil, &models.ValidationError{Field: "quantity", Reason: "must be positive"}
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.Add(cart.Item{
		ProductID: product.ID,
		Name:      product.Name,
		Quantity:  quantity,
		UnitPrice: product.SalePrice,
	})
	if err := s.carts.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) GetCart(ctx context.Context, sessionID string) (*cart.Cart, error) {
	return s.carts.Get(ctx, sessionID)
}

func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	return s.carts.Clear(ctx, sessionID)
}

// Finalize converts the cart into a Sale plus its SaleItems and applies the
// stock decrements, all inside one transaction: either everything commits or
// nothing does. Product rows are locked and decremented in SQL, so two
// concurrent finalizes touching the same product cannot lose an update.
// Stock is allowed to go negative; there is no out-of-stock rejection.
func (s *Service) Finalize(ctx context.Context, sessionID string, customerID *uint, paymentMethod string, userID *uint) (*models.Sale, error) {
	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.Empty() {
		return nil, ErrEmptyCart
	}

	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	sale := models.Sale{
		CustomerID:    customerID,
		PaymentMethod: paymentMethod,
		UserID:        userID,
		Total:         decimal.Zero,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		total := decimal.Zero
		for _, it := range c.Items {
			item := models.SaleItem{
				SaleID:    sale.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice, // cart snapshot, not a fresh lookup
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))

			// Decrement in SQL so concurrent finalizes on the same product
			// serialize at the row instead of losing an update.
			res := tx.Model(&models.Product{}).Where("id = ?", it.ProductID).
				UpdateColumn("stock", gorm.Expr("stock - ?", it.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrProductNotFound
			}
		}

		sale.Total = total
		return tx.Model(&sale).UpdateColumn("total", total).Error
	})
	if err != nil {
		return nil, err
	}

	// The sale is durable; only then does the cart go away.
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		return nil, err
	}
	return &sale, nil
}

// ListSales returns the most recent sales, newest first, capped at 200.
func (s *Service) ListSales(limit int) ([]models.Sale, error) {
	if limit < 1 || limit > listLimit {
		limit = listLimit
	}
	var salesList []models.Sale
	err := s.db.Preload("Customer").Preload("Items").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&salesList).Error
	return salesList, err
}
