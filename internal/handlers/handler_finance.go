package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swiftparcel/parcel_broker_app/internal/core/domain"
	portssvc "github.com/swiftparcel/parcel_broker_app/internal/core/ports/services"
	"github.com/swiftparcel/parcel_broker_app/internal/dto"
	"github.com/swiftparcel/parcel_broker_app/internal/middleware"
)

// financeHandler exposes balances, ledger history and manual adjustments.
type financeHandler struct {
	ledgerService  portssvc.LedgerSvcFacade
	billingService portssvc.BillingSvcFacade
	userService    portssvc.UserSvcFacade
}

func newFinanceHandler(ls portssvc.LedgerSvcFacade, bs portssvc.BillingSvcFacade, us portssvc.UserSvcFacade) *financeHandler {
	return &financeHandler{
		ledgerService:  ls,
		billingService: bs,
		userService:    us,
	}
}

// registerFinanceRoutes registers routes related to billing and the ledger.
func registerFinanceRoutes(rg *gin.RouterGroup, ls portssvc.LedgerSvcFacade, bs portssvc.BillingSvcFacade, us portssvc.UserSvcFacade) {
	h := newFinanceHandler(ls, bs, us)

	finance := rg.Group("/finance")
	{
		finance.GET("/balance", h.getBalance)
		finance.GET("/ledger", h.listLedger)
		finance.POST("/adjust", h.adjustBalance)
		finance.PATCH("/accounts/:id/pricing", h.updateAccountPricing)
	}
}

// getBalance godoc
// @Summary Get billing account balance
// @Description Returns the balance and purchasing power of the caller's billing account.
// @Tags finance
// @Produce json
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /finance/balance [get]
func (h *financeHandler) getBalance(c *gin.Context) {
	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	account, err := h.billingService.ResolveBillingAccountByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(account))
}

// listLedger godoc
// @Summary List ledger entries
// @Description Returns a newest-first page of ledger entries. Staff may pass any accountId; everyone else sees their own billing account.
// @Tags finance
// @Produce json
// @Param accountId query string false "Account ID (staff only)"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListLedgerResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /finance/ledger [get]
func (h *financeHandler) listLedger(c *gin.Context) {
	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	var params dto.ListLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	account, err := h.billingService.ResolveBillingAccountByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	accountID := account.AccountID
	if params.AccountID != "" && params.AccountID != account.AccountID {
		if _, err := h.userService.RequireRole(c.Request.Context(), userID, domain.RoleStaff, domain.RoleAdmin); err != nil {
			respondError(c, err)
			return
		}
		accountID = params.AccountID
	}

	page, err := h.ledgerService.ListEntries(c.Request.Context(), accountID, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// adjustBalance godoc
// @Summary Record a manual ledger entry
// @Description Appends a staff-entered credit or debit. A user ID resolves to that user's billing account.
// @Tags finance
// @Accept json
// @Produce json
// @Param adjustment body dto.AdjustBalanceRequest true "Adjustment details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse "Insufficient funds"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /finance/adjust [post]
func (h *financeHandler) adjustBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	if _, err := h.userService.RequireRole(c.Request.Context(), userID, domain.RoleStaff, domain.RoleAdmin); err != nil {
		respondError(c, err)
		return
	}

	var req dto.AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	if (req.AccountID == "") == (req.UserID == "") {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Exactly one of accountID or userID must be set"})
		return
	}

	accountID := req.AccountID
	if req.UserID != "" {
		account, err := h.billingService.ResolveBillingAccountByUserID(c.Request.Context(), req.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		accountID = account.AccountID
	}

	params := portssvc.AppendEntryParams{
		AccountID:   accountID,
		EntryType:   req.EntryType,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		ActorUserID: userID,
	}

	var entry *domain.LedgerEntry
	var err error
	if req.EntryType == domain.EntryDebit {
		entry, err = h.ledgerService.AppendDebitGuarded(c.Request.Context(), params)
	} else {
		entry, err = h.ledgerService.Append(c.Request.Context(), params)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Manual ledger entry recorded",
		slog.String("account_id", accountID),
		slog.String("entry_id", entry.EntryID),
		slog.String("amount", entry.Amount.String()))
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// updateAccountPricing godoc
// @Summary Update account pricing
// @Description Replaces an account's markup rule and credit limit. Staff only.
// @Tags finance
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param pricing body dto.UpdateAccountPricingRequest true "Markup and credit limit"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /finance/accounts/{id}/pricing [patch]
func (h *financeHandler) updateAccountPricing(c *gin.Context) {
	userID, ok := requestingUserID(c)
	if !ok {
		return
	}

	if _, err := h.userService.RequireRole(c.Request.Context(), userID, domain.RoleStaff, domain.RoleAdmin); err != nil {
		respondError(c, err)
		return
	}

	var req dto.UpdateAccountPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	account, err := h.billingService.UpdateAccountPricing(c.Request.Context(), c.Param("id"), req.Markup.ToDomainMarkup(), req.CreditLimit, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
