package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/up2ustore/bundles-backend/internal/catalog"
)

// BundleHandler serves the bundle catalog
type BundleHandler struct{}

// NewBundleHandler creates a new BundleHandler
func NewBundleHandler() *BundleHandler {
	return &BundleHandler{}
}

// GetBundles handles GET /api/bundles
func (h *BundleHandler) GetBundles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "bundles": catalog.Bundles()})
}
