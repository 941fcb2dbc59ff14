package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"moneynote/internal/handlers"
	"moneynote/internal/llm"
	"moneynote/internal/logger"
	"moneynote/internal/middleware"
	"moneynote/internal/models"
	"moneynote/internal/services"
	"moneynote/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Mailer   *captureMailer
	Analyzer *stubAnalyzer
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// captureMailer records verification codes instead of sending email.
type captureMailer struct {
	mu    sync.Mutex
	codes map[string]string
}

func newCaptureMailer() *captureMailer {
	return &captureMailer{codes: make(map[string]string)}
}

func (m *captureMailer) SendVerificationCode(to, code string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[to] = code
	return nil
}

// lastCode returns the most recent code sent to the address.
func (m *captureMailer) lastCode(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[to]
}

// stubAnalyzer returns a canned guess instead of calling a model endpoint.
type stubAnalyzer struct {
	guess *llm.Guess
	err   error
}

func (a *stubAnalyzer) AnalyzeTransaction(_ context.Context, _ string) (*llm.Guess, error) {
	if a.err != nil {
		return nil, a.err
	}
	if a.guess != nil {
		return a.guess, nil
	}
	return &llm.Guess{
		Amount:      decimal.NewFromInt(25),
		Category:    "餐饮",
		Description: "咖啡",
		Type:        "支出",
		Date:        time.Now().Format("2006-01-02"),
	}, nil
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.VerificationCode{},
		&models.UserToken{},
		&models.Category{},
		&models.Transaction{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// seedGlobalCategories inserts the shared default categories every user sees.
func seedGlobalCategories(t *testing.T, db *gorm.DB) {
	t.Helper()
	defaults := []models.Category{
		{UserID: models.GlobalOwnerID, Name: "工资", Type: models.CategoryTypeIncome, Icon: "money", Sort: 1},
		{UserID: models.GlobalOwnerID, Name: "餐饮", Type: models.CategoryTypeExpense, Icon: "coffee", Sort: 1},
		{UserID: models.GlobalOwnerID, Name: "交通", Type: models.CategoryTypeExpense, Icon: "car", Sort: 3},
	}
	for i := range defaults {
		if err := db.Create(&defaults[i]).Error; err != nil {
			t.Fatalf("failed to seed global category: %v", err)
		}
	}
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	seedGlobalCategories(t, db)

	mailer := newCaptureMailer()
	analyzer := &stubAnalyzer{}

	// Services
	authService := services.NewAuthService(db, mailer, 10*time.Minute, 30*24*time.Hour)
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db, categoryService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, analyzer)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/send-code", authHandler.SendCode)
	auth.POST("/verify-code", authHandler.VerifyCode)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.Auth(authService))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/user/profile", authHandler.GetProfile)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	transactions := protected.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/summary", transactionHandler.GetSummary)
	transactions.POST("/analyze", transactionHandler.AnalyzeTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	return &testApp{DB: db, Router: router, Mailer: mailer, Analyzer: analyzer}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// envelopeData asserts the envelope error code and returns the data field.
func envelopeData(t *testing.T, rec *httptest.ResponseRecorder, wantCode int) interface{} {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected HTTP 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	code, ok := result["error_code"].(float64)
	if !ok {
		t.Fatalf("expected numeric error_code, got: %v", result)
	}
	if int(code) != wantCode {
		t.Fatalf("expected error_code %d, got %d (error_msg: %v)", wantCode, int(code), result["error_msg"])
	}
	return result["data"]
}

// loginUser runs the full code flow for the email and returns the session
// token and user ID.
func (app *testApp) loginUser(t *testing.T, email string) (token string, userID float64) {
	t.Helper()

	rec := app.request("POST", "/api/v1/auth/send-code", fmt.Sprintf(`{"email":%q}`, email), "")
	envelopeData(t, rec, 0)

	code := app.Mailer.lastCode(email)
	if code == "" {
		t.Fatalf("no verification code captured for %s", email)
	}

	body := fmt.Sprintf(`{"email":%q,"code":%q}`, email, code)
	rec = app.request("POST", "/api/v1/auth/verify-code", body, "")
	data := envelopeData(t, rec, 0).(map[string]interface{})

	user := data["user"].(map[string]interface{})
	return data["token"].(string), user["id"].(float64)
}
