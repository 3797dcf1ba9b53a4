package catalog

import (
	"fmt"
	"testing"

	"shopledger/internal/database"
	"shopledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return New(db)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCustomerRoundTrip(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.AddCustomer("Maria Silva", "555-0101", "maria@example.com")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	customers, err := svc.ListCustomers()
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Maria Silva", customers[0].Name)
	assert.Equal(t, "555-0101", customers[0].Phone)
	assert.Equal(t, "maria@example.com", customers[0].Email)
}

func TestAddCustomerRequiresName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddCustomer("   ", "", "")
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)

	customers, err := svc.ListCustomers()
	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestDeleteCustomerIdempotent(t *testing.T) {
	svc := newTestService(t)

	// Deleting an id that never existed succeeds, twice.
	assert.NoError(t, svc.DeleteCustomer(999))
	assert.NoError(t, svc.DeleteCustomer(999))

	created, err := svc.AddCustomer("Ana", "", "")
	require.NoError(t, err)
	assert.NoError(t, svc.DeleteCustomer(created.ID))
	assert.NoError(t, svc.DeleteCustomer(created.ID))

	customers, err := svc.ListCustomers()
	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestAddProductRejectsNonPositivePrice(t *testing.T) {
	svc := newTestService(t)

	for _, price := range []string{"0", "-1.50"} {
		_, err := svc.AddProduct("Coffee", "", dec("2.00"), dec(price), 10)
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr, "price %s", price)
	}

	products, err := svc.ListProducts()
	require.NoError(t, err)
	assert.Empty(t, products, "nothing may persist on validation failure")
}

func TestAddProductDefaultsAndSKU(t *testing.T) {
	svc := newTestService(t)

	p, err := svc.AddProduct("Coffee", "  ", decimal.Zero, dec("9.90"), 0)
	require.NoError(t, err)
	assert.Nil(t, p.SKU, "blank sku stays null")
	assert.Equal(t, "0.00", p.CostPrice.StringFixed(2))
	assert.Equal(t, 0, p.Stock)

	withSKU, err := svc.AddProduct("Tea", "TEA-01", dec("1.00"), dec("3.00"), 5)
	require.NoError(t, err)
	require.NotNil(t, withSKU.SKU)
	assert.Equal(t, "TEA-01", *withSKU.SKU)

	// SKU is unique at the persistence layer.
	_, err = svc.AddProduct("Other Tea", "TEA-01", dec("1.00"), dec("3.00"), 5)
	assert.Error(t, err)
}

func TestUpdateProductPartial(t *testing.T) {
	svc := newTestService(t)

	p, err := svc.AddProduct("Coffee", "COF-01", dec("2.00"), dec("9.90"), 10)
	require.NoError(t, err)

	newPrice := dec("11.50")
	updated, err := svc.UpdateProduct(p.ID, ProductUpdate{SalePrice: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, "11.50", updated.SalePrice.StringFixed(2))
	assert.Equal(t, "Coffee", updated.Name, "untouched fields survive")

	badPrice := dec("0")
	_, err = svc.UpdateProduct(p.ID, ProductUpdate{SalePrice: &badPrice})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = svc.UpdateProduct(4242, ProductUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProductIdempotent(t *testing.T) {
	svc := newTestService(t)

	p, err := svc.AddProduct("Coffee", "", dec("2.00"), dec("9.90"), 10)
	require.NoError(t, err)

	assert.NoError(t, svc.DeleteProduct(p.ID))
	assert.NoError(t, svc.DeleteProduct(p.ID))
}

func TestExportProductsXLSX(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddProduct("Coffee", "COF-01", dec("2.00"), dec("9.90"), 10)
	require.NoError(t, err)
	_, err = svc.AddProduct("Tea", "", dec("1.00"), dec("3.00"), 5)
	require.NoError(t, err)

	file, err := svc.ExportProductsXLSX()
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	// Header row plus one row per product.
	assert.Len(t, file.Sheets[0].Rows, 3)
}
