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
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/services"
	"fintrack/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Prices *stubResolver
}

// stubResolver serves prices from a fixed table, standing in for the
// cache-backed market resolver.
type stubResolver struct {
	mu     sync.Mutex
	prices map[string]float64
	calls  int
}

func newStubResolver() *stubResolver {
	return &stubResolver{prices: map[string]float64{}}
}

func (s *stubResolver) Set(ticker string, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[strings.ToUpper(ticker)] = price
}

func (s *stubResolver) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices = map[string]float64{}
}

func (s *stubResolver) CurrentPrice(_ context.Context, ticker string) *float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if price, ok := s.prices[strings.ToUpper(ticker)]; ok {
		return &price
	}
	return nil
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
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
		&models.Category{},
		&models.Transaction{},
		&models.Investment{},
		&models.InvestmentLot{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite database and a stub price resolver.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	prices := newStubResolver()

	return &testApp{
		DB:     db,
		Router: buildRouter(db, prices),
		Prices: prices,
	}
}

// buildRouter wires services and handlers onto the same routes the server
// exposes.
func buildRouter(db *gorm.DB, prices services.PriceResolver) *gin.Engine {
	investmentService := services.NewInvestmentService(db, prices)
	transactionService := services.NewTransactionService(db)
	dashboardService := services.NewDashboardService(db, prices)

	investmentHandler := handlers.NewInvestmentHandler(investmentService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware())

	investments := v1.Group("/investments")
	investments.POST("", investmentHandler.AddInvestment)
	investments.GET("", investmentHandler.GetInvestments)
	investments.GET("/price/:ticker", investmentHandler.GetPrice)
	investments.GET("/:id/details", investmentHandler.GetInvestmentDetails)
	investments.POST("/:id/transactions", investmentHandler.AddLot)
	investments.PUT("/:id/transactions/:transactionId", investmentHandler.UpdateLot)
	investments.DELETE("/:id/transactions/:transactionId", investmentHandler.DeleteLot)

	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	dashboard := v1.Group("/dashboard")
	dashboard.GET("/monthly", dashboardHandler.GetMonthlyDashboard)
	dashboard.GET("/yearly", dashboardHandler.GetYearlyDashboard)
	dashboard.GET("/investments", dashboardHandler.GetInvestmentsSummary)

	return router
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

// userCounter keeps generated emails unique across tests sharing a database.
var userCounter atomic.Int64

// createUser persists a user and mints a token for them.
func (app *testApp) createUser(t *testing.T) (*models.User, string) {
	t.Helper()

	n := userCounter.Add(1)
	user := &models.User{
		Username: fmt.Sprintf("user%d", n),
		Email:    fmt.Sprintf("user%d@example.com", n),
		Password: "not-a-real-hash",
	}
	if err := app.DB.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	token, err := middleware.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	return user, token
}

// createCategory persists a category owned by the user.
func (app *testApp) createCategory(t *testing.T, userID uint) *models.Category {
	t.Helper()
	category := &models.Category{UserID: userID, Name: "General"}
	if err := app.DB.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return category
}

// addInvestment creates an investment over the API and returns its ID.
func (app *testApp) addInvestment(t *testing.T, token, name, ticker string) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"ticker":%q}`, name, ticker)
	rec := app.request("POST", "/api/v1/investments", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add investment failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["investment"].(map[string]interface{})["id"].(float64)
}

// addLot creates a lot over the API.
func (app *testApp) addLot(t *testing.T, token string, investmentID float64, date string, amount, price, tax float64) {
	t.Helper()
	body := fmt.Sprintf(`{"date":%q,"amount_invested":%v,"price_per_unit":%v,"tax":%v}`, date, amount, price, tax)
	path := fmt.Sprintf("/api/v1/investments/%.0f/transactions", investmentID)
	rec := app.request("POST", path, body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add lot failed: %d %s", rec.Code, rec.Body.String())
	}
}

// day builds a lot date string for request bodies.
func day(year, month, dayOfMonth int) string {
	return time.Date(year, time.Month(month), dayOfMonth, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}
