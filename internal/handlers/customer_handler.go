package handlers

import (
	"net/http"
	"strconv"

	"shopledger/internal/catalog"

	"github.com/gin-gonic/gin"
)

type CustomerInput struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func ListCustomers(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		customers, err := svc.ListCustomers()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, customers)
	}
}

func AddCustomer(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CustomerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		customer, err := svc.AddCustomer(input.Name, input.Phone, input.Email)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, customer)
	}
}

func DeleteCustomer(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
			return
		}

		if err := svc.DeleteCustomer(uint(id)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
	}
}
