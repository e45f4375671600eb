package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports liveness.
// GET /api/health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListEmployees returns all imported employee-years.
// GET /api/employees
func (h *Handler) ListEmployees(c *gin.Context) {
	employees, err := h.store.ListEmployees()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

// GetEmployeeEntries returns one employee's PTO entries and monthly
// acknowledgements.
// GET /api/employees/:id/entries
func (h *Handler) GetEmployeeEntries(c *gin.Context) {
	id := c.Param("id")

	entries, err := h.store.ListEntries(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	acks, err := h.store.ListAcknowledgements(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries":          entries,
		"acknowledgements": acks,
	})
}
