package handlers

import (
	"net/http"
	"strconv"

	"shopledger/internal/ledger"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ExpenseInput struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
}

func ListExpenses(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		expenses, err := svc.ListExpenses()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, expenses)
	}
}

func AddExpense(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ExpenseInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		expense, err := svc.AddExpense(input.Description, input.Amount, currentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, expense)
	}
}

func DeleteExpense(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expense ID"})
			return
		}

		if err := svc.DeleteExpense(uint(id)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
	}
}
