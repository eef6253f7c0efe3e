package handlers

import (
	"net/http"

	"github.com/atharvakonge/crypto-portfolio-api/internal/models"
	"github.com/gin-gonic/gin"
)

// ListHoldings handles GET /api/wallets/:id/holdings
func (h *Handler) ListHoldings(c *gin.Context) {
	walletID, err := pathID(c, "id", "wallet")
	if err != nil {
		h.respondError(c, err)
		return
	}

	holdings, err := h.holdings.List(c.Request.Context(), userID(c), walletID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, holdings)
}

// UpsertHolding handles POST /api/wallets/:id/holdings
func (h *Handler) UpsertHolding(c *gin.Context) {
	walletID, err := pathID(c, "id", "wallet")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req models.UpsertHoldingRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	holding, err := h.holdings.Upsert(c.Request.Context(), userID(c), walletID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.log.WithFields(requestFields(c)).WithFields(map[string]any{
		"wallet_id":   walletID,
		"coin_symbol": holding.CoinSymbol,
	}).Info("holding saved")
	c.JSON(http.StatusCreated, holding)
}

// DeleteHolding handles DELETE /api/wallets/:id/holdings/:holdingId
func (h *Handler) DeleteHolding(c *gin.Context) {
	walletID, err := pathID(c, "id", "wallet")
	if err != nil {
		h.respondError(c, err)
		return
	}
	holdingID, err := pathID(c, "holdingId", "holding")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.holdings.Delete(c.Request.Context(), userID(c), walletID, holdingID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "holding deleted"})
}
