package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rmadesk/rma-portal/internal/auth"
	dbpkg "github.com/rmadesk/rma-portal/internal/db"
	"github.com/rmadesk/rma-portal/internal/models"
	"github.com/rmadesk/rma-portal/internal/routes"
	"github.com/rmadesk/rma-portal/internal/storage"
)

const testPassword = "password1234"

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *auth.TokenManager
	store  auth.TokenStore
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// A named in-memory database keeps gorm's pooled connections on the
	// same store while isolating each test from its neighbours.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := dbpkg.Migrate(testDB); err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}

	tokens := auth.NewTokenManager("test-secret", 60)
	store := auth.NewMemoryTokenStore()
	photos := storage.NewLocalStorage(t.TempDir())

	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, testDB, tokens, store, photos)

	return &testEnv{router: r, db: testDB, tokens: tokens, store: store}
}

// --------- Seed helpers ---------

func seedCustomer(t *testing.T, db *gorm.DB, email string) models.Customer {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	customer := models.Customer{
		FirstName:    "Jamie",
		LastName:     "Fletcher",
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        "555-0100",
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	return customer
}

func seedAdmin(t *testing.T, db *gorm.DB, email string) models.Admin {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	admin := models.Admin{
		FirstName:    "Robin",
		LastName:     "Okafor",
		Email:        email,
		PasswordHash: string(hashed),
		Role:         "super_admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	return admin
}

func seedRma(t *testing.T, db *gorm.DB, customerID uint, status, returnReason string) models.RmaRequest {
	t.Helper()

	req := models.RmaRequest{
		RmaNumber:          fmt.Sprintf("RMA-2026-%06d", nextRmaSeq()),
		CustomerID:         customerID,
		ProductCode:        "PC-100",
		ProductName:        "Cordless Drill",
		SerialNumber:       "SN-1",
		Quantity:           1,
		SalesDocumentNo:    "SD-1",
		ReturnReason:       returnReason,
		ProblemDescription: "Does not power on.",
		Status:             status,
	}
	if err := db.Create(&req).Error; err != nil {
		t.Fatalf("failed to seed rma request: %v", err)
	}
	return req
}

var rmaSeq int

func nextRmaSeq() int {
	rmaSeq++
	return rmaSeq
}

// --------- Token helpers ---------

func bearerToken(t *testing.T, env *testEnv, principalID uint, principalType string) string {
	t.Helper()

	token, jti, err := env.tokens.Generate(principalID, principalType)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if err := env.store.Save(context.Background(), jti, env.tokens.TTL()); err != nil {
		t.Fatalf("failed to save token: %v", err)
	}
	return token
}

func customerToken(t *testing.T, env *testEnv, customerID uint) string {
	return bearerToken(t, env, customerID, auth.PrincipalCustomer)
}

func adminToken(t *testing.T, env *testEnv, adminID uint) string {
	return bearerToken(t, env, adminID, auth.PrincipalAdmin)
}

// --------- Request helpers ---------

func doJSON(env *testEnv, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, req)
	return recorder
}

func doGet(env *testEnv, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response body %q: %v", recorder.Body.String(), err)
	}
	return out
}

func fieldErrors(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	body := decodeBody(t, recorder)
	errs, ok := body["errors"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected validation errors in body, got %q", recorder.Body.String())
	}
	return errs
}
