// Package api exposes the import pipeline and stored results over HTTP.
package api

import (
	"github.com/gin-gonic/gin"

	"ptoimport/internal/config"
	"ptoimport/internal/store"
)

// Handler holds the API dependencies.
type Handler struct {
	store *store.Store
	cfg   *config.AppConfig
}

// NewHandler creates the API handler.
func NewHandler(st *store.Store, cfg *config.AppConfig) *Handler {
	return &Handler{store: st, cfg: cfg}
}

// RegisterRoutes registers all API routes on the group.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.Health)

	router.POST("/import", h.Import)
	router.GET("/imports", h.ListImports)

	router.GET("/employees", h.ListEmployees)
	router.GET("/employees/:id/entries", h.GetEmployeeEntries)
}
