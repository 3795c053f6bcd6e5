package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/up2ustore/bundles-backend/internal/models"
	"github.com/up2ustore/bundles-backend/internal/repositories"
	"github.com/up2ustore/bundles-backend/internal/services"
	"github.com/up2ustore/bundles-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService services.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService services.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// CreateTransaction handles POST /api/transactions
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields"})
		return
	}

	transaction, err := h.transactionService.CreateTransaction(c, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields"})
		case errors.Is(err, repositories.ErrDuplicateReference):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Transaction with this reference already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating transaction"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Transaction created successfully",
		"transaction": transaction.ID.Hex(),
	})
}

// GetTransactions handles GET /api/transactions
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	transactions, stats, err := h.transactionService.ListTransactions(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching transactions"})
		return
	}

	if transactions == nil {
		transactions = []*models.Transaction{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"stats":        stats,
		"transactions": transactions,
	})
}

// GetTransactionByID handles GET /api/transactions/:id
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid ID format"})
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(c, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Transaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "transaction": transaction})
}

// GetTransactionsByPhone handles GET /api/transactions/phone/:phone
func (h *TransactionHandler) GetTransactionsByPhone(c *gin.Context) {
	phone := utils.NormalizePhone(c.Param("phone"))

	transactions, err := h.transactionService.GetTransactionsByPhone(c, phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching transactions"})
		return
	}

	if transactions == nil {
		transactions = []*models.Transaction{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "transactions": transactions})
}

// GetSummary handles GET /api/admin/summary. Admin dashboards that only
// need the counters get them without the full transaction dump.
func (h *TransactionHandler) GetSummary(c *gin.Context) {
	_, stats, err := h.transactionService.ListTransactions(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
