package ledger

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

func TestAddExpenseValidation(t *testing.T) {
	svc := newTestService(t)

	var verr *models.ValidationError

	_, err := svc.AddExpense("  ", decimal.RequireFromString("10.00"), nil)
	require.ErrorAs(t, err, &verr)

	_, err = svc.AddExpense("Rent", decimal.Zero, nil)
	require.ErrorAs(t, err, &verr)

	_, err = svc.AddExpense("Rent", decimal.RequireFromString("-5.00"), nil)
	require.ErrorAs(t, err, &verr)

	expenses, err := svc.ListExpenses()
	require.NoError(t, err)
	assert.Empty(t, expenses)
}

func TestAddExpenseRecordsCreator(t *testing.T) {
	svc := newTestService(t)

	userID := uint(7)
	created, err := svc.AddExpense("Electricity", decimal.RequireFromString("120.40"), &userID)
	require.NoError(t, err)
	require.NotNil(t, created.UserID)
	assert.Equal(t, uint(7), *created.UserID)

	expenses, err := svc.ListExpenses()
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Electricity", expenses[0].Description)
	assert.Equal(t, "120.40", expenses[0].Amount.StringFixed(2))
}

func TestDeleteExpenseIdempotent(t *testing.T) {
	svc := newTestService(t)

	assert.NoError(t, svc.DeleteExpense(123))
	assert.NoError(t, svc.DeleteExpense(123))

	created, err := svc.AddExpense("Rent", decimal.RequireFromString("800.00"), nil)
	require.NoError(t, err)
	assert.NoError(t, svc.DeleteExpense(created.ID))
	assert.NoError(t, svc.DeleteExpense(created.ID))

	expenses, err := svc.ListExpenses()
	require.NoError(t, err)
	assert.Empty(t, expenses)
}
