package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/up2ustore/bundles-backend/internal/models"
	"github.com/up2ustore/bundles-backend/internal/repositories"
	"github.com/up2ustore/bundles-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTransactionRouter(service services.TransactionService) *gin.Engine {
	router := gin.New()
	handler := NewTransactionHandler(service)
	router.POST("/api/transactions", handler.CreateTransaction)
	router.GET("/api/transactions", handler.GetTransactions)
	router.GET("/api/transactions/:id", handler.GetTransactionByID)
	router.GET("/api/transactions/phone/:phone", handler.GetTransactionsByPhone)
	return router
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 with the storage id", func(t *testing.T) {
		id := primitive.NewObjectID()
		service := &StubTransactionService{
			CreateFn: func(ctx context.Context, req *models.CreateTransactionRequest) (*models.Transaction, error) {
				return &models.Transaction{ID: id, Reference: req.Reference, Status: models.StatusPending}, nil
			},
		}
		router := newTransactionRouter(service)

		body := `{"reference":"ref_abc","phone":"0551234567","amount":4.6,"bundle":{"id":1,"name":"MTN Lite","data":"1GB","price":4.6,"validity":"1 day"}}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var resp struct {
			Success     bool   `json:"success"`
			Transaction string `json:"transaction"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if !resp.Success || resp.Transaction != id.Hex() {
			t.Errorf("unexpected response: %+v", resp)
		}
	})

	t.Run("returns 400 on missing fields", func(t *testing.T) {
		service := &StubTransactionService{
			CreateFn: func(ctx context.Context, req *models.CreateTransactionRequest) (*models.Transaction, error) {
				return nil, services.ErrMissingFields
			},
		}
		router := newTransactionRouter(service)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(`{"phone":"0551234567"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("returns 409 on duplicate reference", func(t *testing.T) {
		service := &StubTransactionService{
			CreateFn: func(ctx context.Context, req *models.CreateTransactionRequest) (*models.Transaction, error) {
				return nil, repositories.ErrDuplicateReference
			},
		}
		router := newTransactionRouter(service)

		body := `{"reference":"ref_dup","phone":"0551234567","amount":4.6,"bundle":{"id":1}}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestTransactionHandler_GetTransactions(t *testing.T) {
	service := &StubTransactionService{
		ListFn: func(ctx context.Context) ([]*models.Transaction, *models.TransactionStats, error) {
			return []*models.Transaction{
					{Reference: "ref_1", Status: models.StatusSuccess, Amount: 10},
				}, &models.TransactionStats{
					Total: 1, Successful: 1, TotalRevenue: 10,
				}, nil
		},
	}
	router := newTransactionRouter(service)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/transactions", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Success      bool                     `json:"success"`
		Stats        models.TransactionStats  `json:"stats"`
		Transactions []map[string]interface{} `json:"transactions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Stats.Total != 1 || resp.Stats.TotalRevenue != 10 {
		t.Errorf("unexpected stats: %+v", resp.Stats)
	}
	if len(resp.Transactions) != 1 {
		t.Errorf("expected 1 transaction, got %d", len(resp.Transactions))
	}
}

func TestTransactionHandler_GetTransactionByID(t *testing.T) {
	t.Run("returns 404 when not found", func(t *testing.T) {
		service := &StubTransactionService{
			GetFn: func(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
				return nil, repositories.ErrNotFound
			},
		}
		router := newTransactionRouter(service)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/transactions/"+primitive.NewObjectID().Hex(), nil))

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("returns 400 for a malformed id", func(t *testing.T) {
		service := &StubTransactionService{
			GetFn: func(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
				t.Fatal("service must not be called for malformed ids")
				return nil, nil
			},
		}
		router := newTransactionRouter(service)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/transactions/not-an-object-id", nil))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestTransactionHandler_GetTransactionsByPhone(t *testing.T) {
	var gotPhone string
	service := &StubTransactionService{
		PhoneFn: func(ctx context.Context, phone string) ([]*models.Transaction, error) {
			gotPhone = phone
			return nil, nil
		},
	}
	router := newTransactionRouter(service)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/transactions/phone/055-123-4567", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotPhone != "0551234567" {
		t.Errorf("expected normalized phone, got %q", gotPhone)
	}
	if !strings.Contains(w.Body.String(), `"transactions":[]`) {
		t.Errorf("expected empty array, got %s", w.Body.String())
	}
}
