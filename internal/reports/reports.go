// Package reports computes the dashboard aggregates and the printable
// summary. Everything is read-only and computed at call time; there is no
// caching. Calendar windows use the server's local date.
package reports

import (
	"time"

	"shopledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const exportLimit = 200

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// TopProduct is one row of the monthly best-seller ranking.
type TopProduct struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
}

// Dashboard is the landing-page payload.
type Dashboard struct {
	DailyRevenue    decimal.Decimal `json:"daily_revenue"`
	MonthlyRevenue  decimal.Decimal `json:"monthly_revenue"`
	MonthlyExpenses decimal.Decimal `json:"monthly_expenses"`
	ApproxProfit    decimal.Decimal `json:"approx_profit"`
	TopProducts     []TopProduct    `json:"top_products"`
}

func (s *Service) Dashboard() (*Dashboard, error) {
	daily, err := s.DailyRevenue()
	if err != nil {
		return nil, err
	}
	monthly, err := s.MonthlyRevenue()
	if err != nil {
		return nil, err
	}
	expenses, err := s.MonthlyExpenses()
	if err != nil {
		return nil, err
	}
	profit, err := s.ApproxMonthlyProfit()
	if err != nil {
		return nil, err
	}
	top, err := s.TopProducts(5)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		DailyRevenue:    daily,
		MonthlyRevenue:  monthly,
		MonthlyExpenses: expenses,
		ApproxProfit:    profit,
		TopProducts:     top,
	}, nil
}

// DailyRevenue sums Sale.Total over [00:00:00, 23:59:59] of today.
func (s *Service) DailyRevenue() (decimal.Decimal, error) {
	start, end := dayBounds(s.now())
	return s.RevenueBetween(start, end)
}

// MonthlyRevenue sums Sale.Total from day 1 of the current month to now.
func (s *Service) MonthlyRevenue() (decimal.Decimal, error) {
	return s.RevenueBetween(monthStart(s.now()), s.now())
}

// RevenueBetween is the shared aggregate behind the daily and monthly
// figures (and the assistant's report tool).
func (s *Service) RevenueBetween(start, end time.Time) (decimal.Decimal, error) {
	// COALESCE ensures we get 0 instead of NULL if no sales exist
	var row struct{ Total decimal.Decimal }
	err := s.db.Model(&models.Sale{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(total), 0) AS total").
		Scan(&row).Error
	return row.Total, err
}

// SalesCountBetween counts sales in a window.
func (s *Service) SalesCountBetween(start, end time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&models.Sale{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&count).Error
	return count, err
}

func (s *Service) MonthlyExpenses() (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	err := s.db.Model(&models.Expense{}).
		Where("created_at >= ?", monthStart(s.now())).
		Select("COALESCE(SUM(amount), 0) AS total").
		Scan(&row).Error
	return row.Total, err
}

// ApproxMonthlyProfit is gross margin minus expenses for the current month.
// Margin uses the product's current cost price, not a snapshot taken at sale
// time, so it is an estimate rather than an accounting-grade figure.
func (s *Service) ApproxMonthlyProfit() (decimal.Decimal, error) {
	var row struct{ Margin decimal.Decimal }
	err := s.db.Table("sale_items").
		Select("COALESCE(SUM((sale_items.unit_price - products.cost_price) * sale_items.quantity), 0) AS margin").
		Joins("JOIN products ON products.id = sale_items.product_id").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.created_at >= ?", monthStart(s.now())).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}

	expenses, err := s.MonthlyExpenses()
	if err != nil {
		return decimal.Zero, err
	}
	return row.Margin.Sub(expenses), nil
}

// TopProducts ranks products by units sold this month, descending.
// Ties break by product id ascending so the order is deterministic.
func (s *Service) TopProducts(limit int) ([]TopProduct, error) {
	if limit < 1 {
		limit = 5
	}
	var rows []TopProduct
	err := s.db.Table("sale_items").
		Select("products.id AS product_id, products.name AS name, SUM(sale_items.quantity) AS quantity").
		Joins("JOIN products ON products.id = sale_items.product_id").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.created_at >= ?", monthStart(s.now())).
		Group("products.id, products.name").
		Order("SUM(sale_items.quantity) DESC, products.id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// RecentSales feeds the printable report: newest first, at most 200.
func (s *Service) RecentSales() ([]models.Sale, error) {
	var salesList []models.Sale
	err := s.db.Preload("Customer").
		Order("created_at DESC, id DESC").
		Limit(exportLimit).
		Find(&salesList).Error
	return salesList, err
}

func (s *Service) RecentExpenses() ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.Order("created_at DESC, id DESC").
		Limit(exportLimit).
		Find(&expenses).Error
	return expenses, err
}

func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.Add(24*time.Hour - time.Second)
	return start, end
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
