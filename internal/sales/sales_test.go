package sales

import (
	"context"
	"fmt"
	"testing"
	"time"

	"shopledger/internal/cart"
	"shopledger/internal/catalog"
	"shopledger/internal/database"
	"shopledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db      *gorm.DB
	svc     *Service
	catalog *catalog.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return &fixture{
		db:      db,
		svc:     New(db, cart.NewMemoryStore(time.Minute)),
		catalog: catalog.New(db),
	}
}

func (f *fixture) product(t *testing.T, name, price string, stock int) *models.Product {
	t.Helper()
	p, err := f.catalog.AddProduct(name, "", decimal.Zero, decimal.RequireFromString(price), stock)
	require.NoError(t, err)
	return p
}

func TestAddItemValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Coffee", "9.90", 10)

	_, err := f.svc.AddItem(ctx, "s1", p.ID, 0)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = f.svc.AddItem(ctx, "s1", 4242, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	c, err := f.svc.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, c.Empty(), "failed adds leave the cart untouched")
}

func TestAddItemSnapshotsPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Coffee", "9.90", 10)

	_, err := f.svc.AddItem(ctx, "s1", p.ID, 2)
	require.NoError(t, err)

	// Reprice after the item is in the cart: the customer keeps 9.90.
	newPrice := decimal.RequireFromString("14.00")
	_, err = f.catalog.UpdateProduct(p.ID, catalog.ProductUpdate{SalePrice: &newPrice})
	require.NoError(t, err)

	sale, err := f.svc.Finalize(ctx, "s1", nil, "cash", nil)
	require.NoError(t, err)
	assert.Equal(t, "19.80", sale.Total.StringFixed(2))

	var items []models.SaleItem
	require.NoError(t, f.db.Where("sale_id = ?", sale.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, "9.90", items[0].UnitPrice.StringFixed(2))
}

func TestFinalizeTotalsAndStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	coffee := f.product(t, "Coffee", "9.90", 10)
	tea := f.product(t, "Tea", "3.50", 1)

	_, err := f.svc.AddItem(ctx, "s1", coffee.ID, 2)
	require.NoError(t, err)
	_, err = f.svc.AddItem(ctx, "s1", tea.ID, 3) // only 1 in stock; sells anyway
	require.NoError(t, err)
	_, err = f.svc.AddItem(ctx, "s1", coffee.ID, 1) // same product, second line
	require.NoError(t, err)

	userID := uint(1)
	sale, err := f.svc.Finalize(ctx, "s1", nil, "card", &userID)
	require.NoError(t, err)

	// 2*9.90 + 3*3.50 + 1*9.90 = 40.20
	assert.Equal(t, "40.20", sale.Total.StringFixed(2))

	var items []models.SaleItem
	require.NoError(t, f.db.Where("sale_id = ?", sale.ID).Order("id").Find(&items).Error)
	require.Len(t, items, 3)

	itemSum := decimal.Zero
	for _, it := range items {
		itemSum = itemSum.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	assert.Equal(t, sale.Total.StringFixed(2), itemSum.StringFixed(2), "total equals the sum over its items")

	var gotCoffee, gotTea models.Product
	require.NoError(t, f.db.First(&gotCoffee, coffee.ID).Error)
	require.NoError(t, f.db.First(&gotTea, tea.ID).Error)
	assert.Equal(t, 7, gotCoffee.Stock)
	assert.Equal(t, -2, gotTea.Stock, "stock may go negative")

	var persisted models.Sale
	require.NoError(t, f.db.First(&persisted, sale.ID).Error)
	assert.Equal(t, "card", persisted.PaymentMethod)
	require.NotNil(t, persisted.UserID)
	assert.Equal(t, uint(1), *persisted.UserID)
}

func TestFinalizeEmptyCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Coffee", "9.90", 10)

	_, err := f.svc.Finalize(ctx, "never-used", nil, "cash", nil)
	assert.ErrorIs(t, err, ErrEmptyCart)

	var saleCount, itemCount int64
	require.NoError(t, f.db.Model(&models.Sale{}).Count(&saleCount).Error)
	require.NoError(t, f.db.Model(&models.SaleItem{}).Count(&itemCount).Error)
	assert.Zero(t, saleCount)
	assert.Zero(t, itemCount)

	var got models.Product
	require.NoError(t, f.db.First(&got, p.ID).Error)
	assert.Equal(t, 10, got.Stock, "no stock change on a failed finalize")
}

func TestFinalizeClearsCartAndDefaultsPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Coffee", "9.90", 10)

	_, err := f.svc.AddItem(ctx, "s1", p.ID, 1)
	require.NoError(t, err)

	sale, err := f.svc.Finalize(ctx, "s1", nil, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "cash", sale.PaymentMethod)

	c, err := f.svc.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, c.Empty(), "cart is discarded once the sale is durable")

	_, err = f.svc.Finalize(ctx, "s1", nil, "cash", nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestFinalizeKeepsCustomerReference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "Coffee", "9.90", 10)

	customer, err := f.catalog.AddCustomer("Maria", "", "")
	require.NoError(t, err)

	_, err = f.svc.AddItem(ctx, "s1", p.ID, 1)
	require.NoError(t, err)

	sale, err := f.svc.Finalize(ctx, "s1", &customer.ID, "pix", nil)
	require.NoError(t, err)
	require.NotNil(t, sale.CustomerID)
	assert.Equal(t, customer.ID, *sale.CustomerID)

	listed, err := f.svc.ListSales(10)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].Customer)
	assert.Equal(t, "Maria", listed[0].Customer.Name)
}
