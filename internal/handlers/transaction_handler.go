package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"moneynote/internal/envelope"
	apperrors "moneynote/internal/errors"
	"moneynote/internal/llm"
	"moneynote/internal/models"
	"moneynote/internal/pagination"
	"moneynote/internal/services"
)

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	transactionService services.TransactionServicer
	analyzer           llm.Analyzer
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService services.TransactionServicer, analyzer llm.Analyzer) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		analyzer:           analyzer,
	}
}

// ListTransactionsRequest represents the list query parameters
type ListTransactionsRequest struct {
	pagination.PageRequest
	Type       string `form:"type" binding:"omitempty,category_type"`
	CategoryID *uint  `form:"category_id"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
}

// CreateTransactionRequest represents the request payload for creating a
// transaction. Either category_id or category_name must be set; the name
// path (used by chat-based entry) also needs a type hint.
type CreateTransactionRequest struct {
	CategoryID      *uint            `json:"category_id"`
	CategoryName    string           `json:"category_name" binding:"max=50"`
	Type            string           `json:"type"`
	Amount          *decimal.Decimal `json:"amount" binding:"required"`
	TransactionDate string           `json:"transaction_date" binding:"required"`
	Note            *string          `json:"note"`
}

// UpdateTransactionRequest represents the request payload for updating a
// transaction. Omitted fields are left unchanged.
type UpdateTransactionRequest struct {
	CategoryID      *uint            `json:"category_id"`
	Amount          *decimal.Decimal `json:"amount"`
	TransactionDate *string          `json:"transaction_date"`
	Note            *string          `json:"note"`
}

// AnalyzeTransactionRequest represents the free-text analyze payload
type AnalyzeTransactionRequest struct {
	Text string `json:"text" binding:"required"`
}

// ListTransactions returns a page of the user's transactions
// @Summary     List transactions
// @Description List transactions with their categories, newest first, optionally filtered by category type, category, and date range
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       per_page query int false "Page size"
// @Param       type query string false "Filter by joined category type (income/expense)"
// @Param       category_id query int false "Filter by category"
// @Param       start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Success     200 {object} envelope.Envelope{data=pagination.PageResponse[models.Transaction]} "Transactions"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.TransactionFilter{CategoryID: req.CategoryID}
	if req.Type != "" {
		categoryType := models.CategoryType(req.Type)
		filter.Type = &categoryType
	}
	if req.StartDate != "" {
		start, err := models.ParseDate(req.StartDate)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		filter.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := models.ParseDate(req.EndDate)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		filter.EndDate = &end
	}

	result, err := h.transactionService.ListTransactions(userID, req.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	envelope.OK(c, result)
}

// GetSummary returns the user's income and expense totals
// @Summary     Transaction summary
// @Description Sum of amounts grouped by the joined category's type, as decimal strings
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} envelope.Envelope{data=services.Summary} "Totals"
// @Router      /transactions/summary [get]
func (h *TransactionHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.transactionService.GetSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	envelope.OK(c, summary)
}

// CreateTransaction creates a transaction
// @Summary     Create a transaction
// @Description Create a transaction from a category ID, or from a category name plus type hint (chat entry path)
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     200 {object} envelope.Envelope{data=models.Transaction} "Created transaction with embedded category"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseTransactionDate(req.TransactionDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	input := services.TransactionInput{
		Amount: *req.Amount,
		Date:   date,
		Note:   req.Note,
	}
	if req.CategoryID != nil {
		input.CategoryID = *req.CategoryID
	}
	if req.CategoryName != "" {
		hint, ok := mapTypeHint(req.Type)
		if !ok {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "a valid type hint is required with category_name"))
			return
		}
		input.CategoryName = req.CategoryName
		input.TypeHint = hint
	}

	transaction, err := h.transactionService.CreateTransaction(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	envelope.OK(c, transaction)
}

// UpdateTransaction applies a partial update to an owned transaction
// @Summary     Update a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to change"
// @Success     200 {object} envelope.Envelope{data=models.Transaction} "Updated transaction"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.TransactionUpdate{
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Note:       req.Note,
	}
	if req.TransactionDate != nil {
		date, err := parseTransactionDate(*req.TransactionDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		update.Date = &date
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, transactionID, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	envelope.OK(c, transaction)
}

// DeleteTransaction deletes an owned transaction
// @Summary     Delete a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} envelope.Envelope "Deleted"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	envelope.OK(c, nil)
}

// AnalyzeTransaction extracts a transaction guess from free text
// @Summary     Analyze free text
// @Description Ask the model for a structured transaction guess; the guess is advisory and nothing is persisted
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AnalyzeTransactionRequest true "Free text"
// @Success     200 {object} envelope.Envelope "Transaction guess"
// @Router      /transactions/analyze [post]
func (h *TransactionHandler) AnalyzeTransaction(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req AnalyzeTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	guess, err := h.analyzer.AnalyzeTransaction(c.Request.Context(), req.Text)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(
			apperrors.Wrap(apperrors.ErrInternalServer, err),
			"could not understand the transaction text"))
		return
	}

	envelope.OK(c, gin.H{"transaction": guess})
}

// parseTransactionDate accepts "YYYY-MM-DD", tolerating a trailing time
// component the way the analyze path produces dates.
func parseTransactionDate(s string) (models.Date, error) {
	if len(s) > 10 {
		s = s[:10]
	}
	date, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return date, nil
}

// mapTypeHint converts the chat path's type hint into a category type.
// Both the Chinese labels the model emits and the storage values are accepted.
func mapTypeHint(hint string) (models.CategoryType, bool) {
	switch hint {
	case "支出", "expense":
		return models.CategoryTypeExpense, true
	case "收入", "income":
		return models.CategoryTypeIncome, true
	}
	return "", false
}
