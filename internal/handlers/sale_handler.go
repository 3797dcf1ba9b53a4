package handlers

import (
	"net/http"
	"strconv"

	"shopledger/internal/sales"

	"github.com/gin-gonic/gin"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CheckoutInput struct {
	CustomerID    *uint  `json:"customer_id"`
	PaymentMethod string `json:"payment_method"`
}

func GetCart(svc *sales.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartState, err := svc.GetCart(c.Request.Context(), currentSessionID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items":    cartState.Items,
			"subtotal": cartState.Subtotal(),
		})
	}
}

func AddCartItem(svc *sales.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		cartState, err := svc.AddItem(c.Request.Context(), currentSessionID(c), input.ProductID, input.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items":    cartState.Items,
			"subtotal": cartState.Subtotal(),
		})
	}
}

func ClearCart(svc *sales.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.ClearCart(c.Request.Context(), currentSessionID(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

func Checkout(svc *sales.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CheckoutInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		sale, err := svc.Finalize(c.Request.Context(), currentSessionID(c), input.CustomerID, input.PaymentMethod, currentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Sale recorded",
			"sale_id": sale.ID,
			"total":   sale.Total,
		})
	}
}

func ListSales(svc *sales.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))
		salesList, err := svc.ListSales(limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, salesList)
	}
}
