// Package client provides an HTTP client for the MoneyNote API with a
// persisted session, typed errors, and per-operation loading flags.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// codeUnauthorized is the envelope error code the server emits for missing or
// invalid session tokens.
const codeUnauthorized = 1002

// User represents an account on the server.
type User struct {
	ID     uint    `json:"id"`
	Email  string  `json:"email"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

// Category represents an income or expense category. UserID 0 marks a global
// default shared by every user.
type Category struct {
	ID     uint   `json:"id"`
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Icon   string `json:"icon"`
	Sort   int    `json:"sort"`
}

// Transaction represents a single income or expense entry.
type Transaction struct {
	ID              uint            `json:"id"`
	UserID          uint            `json:"user_id"`
	CategoryID      uint            `json:"category_id"`
	Amount          decimal.Decimal `json:"amount"`
	Note            *string         `json:"note"`
	TransactionDate string          `json:"transaction_date"`
	Category        Category        `json:"category"`
}

// PageMeta describes the position of a page within the full result set.
type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// TransactionPage is one page of transactions with pagination metadata.
type TransactionPage struct {
	Data       []Transaction `json:"data"`
	Pagination PageMeta      `json:"pagination"`
}

// Summary is the user's income and expense totals.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
}

// TransactionGuess is the server's advisory reading of a free-text entry.
// Nothing is persisted until the caller confirms it with CreateTransaction.
type TransactionGuess struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Date        string          `json:"date"`
}

// CreateCategoryParams are the inputs for CreateCategory.
type CreateCategoryParams struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Icon string `json:"icon"`
	Sort *int   `json:"sort,omitempty"`
}

// UpdateCategoryParams are the inputs for UpdateCategory. Nil fields are left
// unchanged.
type UpdateCategoryParams struct {
	Name *string `json:"name,omitempty"`
	Type *string `json:"type,omitempty"`
	Icon *string `json:"icon,omitempty"`
	Sort *int    `json:"sort,omitempty"`
}

// ListTransactionsParams are the optional filters for ListTransactions.
type ListTransactionsParams struct {
	Page       int
	PerPage    int
	Type       string
	CategoryID uint
	StartDate  string // YYYY-MM-DD
	EndDate    string // YYYY-MM-DD
}

// CreateTransactionParams are the inputs for CreateTransaction. Set either
// CategoryID, or CategoryName plus Type for the resolve-or-create path.
type CreateTransactionParams struct {
	CategoryID      *uint           `json:"category_id,omitempty"`
	CategoryName    string          `json:"category_name,omitempty"`
	Type            string          `json:"type,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate string          `json:"transaction_date"`
	Note            *string         `json:"note,omitempty"`
}

// UpdateTransactionParams are the inputs for UpdateTransaction. Nil fields
// are left unchanged.
type UpdateTransactionParams struct {
	CategoryID      *uint            `json:"category_id,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	TransactionDate *string          `json:"transaction_date,omitempty"`
	Note            *string          `json:"note,omitempty"`
}

// Client communicates with the MoneyNote API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *SessionStore
	loading    *loadingState
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithStorage replaces the default in-memory session storage.
func WithStorage(storage Storage) Option {
	return func(c *Client) { c.session = NewSessionStore(storage) }
}

// New creates a MoneyNote API client. The default HTTP client has a fixed
// timeout and performs no retries.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		session:    NewSessionStore(NewMemoryStorage()),
		loading:    newLoadingState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the client's session store.
func (c *Client) Session() *SessionStore {
	return c.session
}

// envelope mirrors the server's uniform response shape.
type envelope struct {
	ErrorCode int             `json:"error_code"`
	ErrorMsg  string          `json:"error_msg"`
	Data      json.RawMessage `json:"data"`
}

// do performs one API call: it flips the operation's loading flag, injects
// the bearer token for authenticated calls, and unwraps the envelope into
// out. An unauthorized response clears the stored session before returning.
func (c *Client) do(ctx context.Context, op, method, path string, authed bool, body, out any) error {
	c.loading.set(op, true)
	defer c.loading.set(op, false)

	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindEnvelope, Message: "encoding request body", Raw: err}
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "creating request", Raw: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authed {
		session, err := c.session.Load()
		if err != nil {
			return &Error{Kind: KindAuth, Code: codeUnauthorized, Message: "loading session", Raw: err}
		}
		if session == nil {
			return &Error{Kind: KindAuth, Code: codeUnauthorized, Message: "not logged in"}
		}
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "performing request", Raw: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		_ = c.session.Clear()
		return &Error{Kind: KindAuth, Code: codeUnauthorized, Message: "unauthorized"}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &Error{Kind: KindEnvelope, Message: fmt.Sprintf("decoding response (status %d)", resp.StatusCode), Raw: err}
	}

	if env.ErrorCode != 0 {
		if env.ErrorCode == codeUnauthorized {
			_ = c.session.Clear()
			return &Error{Kind: KindAuth, Code: env.ErrorCode, Message: env.ErrorMsg}
		}
		return &Error{Kind: KindBusiness, Code: env.ErrorCode, Message: env.ErrorMsg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &Error{Kind: KindEnvelope, Message: "decoding envelope data", Raw: err}
		}
	}
	return nil
}

// SendCode asks the server to email a one-time login code.
func (c *Client) SendCode(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, OpSendCode, http.MethodPost, "/api/v1/auth/send-code", false, body, nil)
}

// VerifyCode exchanges an emailed code for a session. The session is
// persisted in the client's session store before returning.
func (c *Client) VerifyCode(ctx context.Context, email, code string) (*Session, error) {
	body := map[string]string{"email": email, "code": code}

	var result Session
	if err := c.do(ctx, OpVerifyCode, http.MethodPost, "/api/v1/auth/verify-code", false, body, &result); err != nil {
		return nil, err
	}
	if err := c.session.Set(result.Token, result.User); err != nil {
		return nil, &Error{Kind: KindEnvelope, Message: "persisting session", Raw: err}
	}
	return &result, nil
}

// Logout invalidates the session on the server and clears the local store.
// The local session is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, OpLogout, http.MethodPost, "/api/v1/auth/logout", true, nil, nil)
	if clearErr := c.session.Clear(); clearErr != nil && err == nil {
		err = &Error{Kind: KindEnvelope, Message: "clearing session", Raw: clearErr}
	}
	return err
}

// GetProfile fetches the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, OpGetProfile, http.MethodGet, "/api/v1/user/profile", true, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListCategories fetches the user's categories plus the global defaults.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, OpListCategories, http.MethodGet, "/api/v1/categories", true, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category, or returns the existing one when a
// visible category with the same name and type already exists.
func (c *Client) CreateCategory(ctx context.Context, params CreateCategoryParams) (*Category, error) {
	var category Category
	if err := c.do(ctx, OpCreateCategory, http.MethodPost, "/api/v1/categories", true, params, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory applies a partial update to an owned category.
func (c *Client) UpdateCategory(ctx context.Context, id uint, params UpdateCategoryParams) (*Category, error) {
	var category Category
	path := "/api/v1/categories/" + strconv.FormatUint(uint64(id), 10)
	if err := c.do(ctx, OpUpdateCategory, http.MethodPut, path, true, params, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory deletes an owned category. The server rejects the delete
// while any transaction references the category.
func (c *Client) DeleteCategory(ctx context.Context, id uint) error {
	path := "/api/v1/categories/" + strconv.FormatUint(uint64(id), 10)
	return c.do(ctx, OpDeleteCategory, http.MethodDelete, path, true, nil, nil)
}

// ListTransactions fetches one page of the user's transactions, newest first.
func (c *Client) ListTransactions(ctx context.Context, params ListTransactionsParams) (*TransactionPage, error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(params.PerPage))
	}
	if params.Type != "" {
		query.Set("type", params.Type)
	}
	if params.CategoryID != 0 {
		query.Set("category_id", strconv.FormatUint(uint64(params.CategoryID), 10))
	}
	if params.StartDate != "" {
		query.Set("start_date", params.StartDate)
	}
	if params.EndDate != "" {
		query.Set("end_date", params.EndDate)
	}

	path := "/api/v1/transactions"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var page TransactionPage
	if err := c.do(ctx, OpListTransactions, http.MethodGet, path, true, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetSummary fetches the user's income and expense totals.
func (c *Client) GetSummary(ctx context.Context) (*Summary, error) {
	var summary Summary
	if err := c.do(ctx, OpGetSummary, http.MethodGet, "/api/v1/transactions/summary", true, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// CreateTransaction creates a transaction.
func (c *Client) CreateTransaction(ctx context.Context, params CreateTransactionParams) (*Transaction, error) {
	var transaction Transaction
	if err := c.do(ctx, OpCreateTransaction, http.MethodPost, "/api/v1/transactions", true, params, &transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}

// UpdateTransaction applies a partial update to an owned transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id uint, params UpdateTransactionParams) (*Transaction, error) {
	var transaction Transaction
	path := "/api/v1/transactions/" + strconv.FormatUint(uint64(id), 10)
	if err := c.do(ctx, OpUpdateTransaction, http.MethodPut, path, true, params, &transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}

// DeleteTransaction deletes an owned transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id uint) error {
	path := "/api/v1/transactions/" + strconv.FormatUint(uint64(id), 10)
	return c.do(ctx, OpDeleteTransaction, http.MethodDelete, path, true, nil, nil)
}

// AnalyzeTransaction asks the server for an advisory transaction guess from
// free text. Nothing is persisted.
func (c *Client) AnalyzeTransaction(ctx context.Context, text string) (*TransactionGuess, error) {
	body := map[string]string{"text": text}

	var result struct {
		Transaction TransactionGuess `json:"transaction"`
	}
	if err := c.do(ctx, OpAnalyzeTransaction, http.MethodPost, "/api/v1/transactions/analyze", true, body, &result); err != nil {
		return nil, err
	}
	return &result.Transaction, nil
}
