package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPortfolio handles GET /api/portfolio
func (h *Handler) GetPortfolio(c *gin.Context) {
	p, err := h.portfolio.Portfolio(c.Request.Context(), userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// ListPrices handles GET /api/prices
func (h *Handler) ListPrices(c *gin.Context) {
	quotes, err := h.prices.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quotes)
}

// InternalHeldSymbols handles GET /api/internal/all-holdings
func (h *Handler) InternalHeldSymbols(c *gin.Context) {
	symbols, err := h.prices.HeldSymbols(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, symbols)
}

// InternalPrices handles GET /api/internal/prices
func (h *Handler) InternalPrices(c *gin.Context) {
	quotes, err := h.prices.ListByFreshness(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quotes)
}
