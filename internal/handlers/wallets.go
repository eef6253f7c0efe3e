package handlers

import (
	"net/http"
	"strconv"

	"github.com/atharvakonge/crypto-portfolio-api/internal/common"
	"github.com/atharvakonge/crypto-portfolio-api/internal/models"
	"github.com/gin-gonic/gin"
)

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name, label string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.Validation("invalid " + label + " id")
	}
	return id, nil
}

// ListWallets handles GET /api/wallets
func (h *Handler) ListWallets(c *gin.Context) {
	wallets, err := h.wallets.List(c.Request.Context(), userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, wallets)
}

// CreateWallet handles POST /api/wallets
func (h *Handler) CreateWallet(c *gin.Context) {
	var req models.CreateWalletRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	wallet, err := h.wallets.Create(c.Request.Context(), userID(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.log.WithFields(requestFields(c)).WithField("wallet_id", wallet.ID).Info("wallet created")
	c.JSON(http.StatusCreated, wallet)
}

// DeleteWallet handles DELETE /api/wallets/:id
func (h *Handler) DeleteWallet(c *gin.Context) {
	walletID, err := pathID(c, "id", "wallet")
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.wallets.Delete(c.Request.Context(), userID(c), walletID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "wallet deleted"})
}
