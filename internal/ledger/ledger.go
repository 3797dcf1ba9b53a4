// Package ledger tracks operating expenses.
package ledger

import (
	"strings"

	"shopledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) AddExpense(description string, amount decimal.Decimal, userID *uint) (*models.Expense, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, &models.ValidationError{Field: "description", Reason: "is required"}
	}
	if !amount.IsPositive() {
		return nil, &models.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}

	expense := models.Expense{
		Description: description,
		Amount:      amount,
		UserID:      userID,
	}
	if err := s.db.Create(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *Service) ListExpenses() ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.Order("created_at DESC, id DESC").Find(&expenses).Error
	return expenses, err
}

// DeleteExpense is a no-op success when the id does not exist.
func (s *Service) DeleteExpense(id uint) error {
	return s.db.Delete(&models.Expense{}, id).Error
}
