package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"finance-manager/internal/config"
	"finance-manager/internal/database"

	"github.com/gin-gonic/gin"
)

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			Issuer:      "finance-manager-test",
			ExpireHours: 1,
		},
		Security: config.SecurityConfig{BcryptCost: 4},
	}

	db, err := database.Init(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("init test db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return SetupRouter(cfg, db)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp struct {
		Code int                    `json:"code"`
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return resp.Data
}

// registerAndLogin creates a fresh user and returns a bearer token.
func registerAndLogin(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username":         username,
		"password":         "Password123",
		"confirm_password": "Password123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": "Password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}

	token, _ := decodeData(t, w)["token"].(string)
	if token == "" {
		t.Fatal("login returned no token")
	}
	return token
}

func TestTransactionLifecycle(t *testing.T) {
	r := setupServer(t)
	token := registerAndLogin(t, r, "alice")

	// create income and expense
	w := doJSON(t, r, http.MethodPost, "/api/transactions", token, gin.H{
		"category":   "Salary",
		"kind":       "income",
		"amount":     5000000,
		"occurredOn": "2025-01-10",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/transactions", token, gin.H{
		"category":   "Rent",
		"kind":       "expense",
		"amount":     2000000,
		"occurredOn": "2025-02-01",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}

	// list: two records, most recent date first
	w = doJSON(t, r, http.MethodGet, "/api/transactions", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	data := decodeData(t, w)
	items, _ := data["transactions"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("got %d transactions, want 2", len(items))
	}
	first, _ := items[0].(map[string]interface{})
	if first["occurredOn"] != "2025-02-01" {
		t.Errorf("first record date = %v, want 2025-02-01", first["occurredOn"])
	}

	// summary: income 5,000,000 / expense 2,000,000 / balance 3,000,000
	w = doJSON(t, r, http.MethodGet, "/api/stats/summary", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("summary status = %d", w.Code)
	}
	data = decodeData(t, w)
	if data["totalIncome"] != "5000000" {
		t.Errorf("totalIncome = %v, want 5000000", data["totalIncome"])
	}
	if data["totalExpense"] != "2000000" {
		t.Errorf("totalExpense = %v, want 2000000", data["totalExpense"])
	}
	if data["balance"] != "3000000" {
		t.Errorf("balance = %v, want 3000000", data["balance"])
	}

	// monthly series: always twelve buckets
	w = doJSON(t, r, http.MethodGet, "/api/stats/monthly?year=2025", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("monthly status = %d", w.Code)
	}
	data = decodeData(t, w)
	series, _ := data["series"].([]interface{})
	if len(series) != 12 {
		t.Errorf("got %d buckets, want 12", len(series))
	}
}

func TestCreateTransaction_MissingField(t *testing.T) {
	r := setupServer(t)
	token := registerAndLogin(t, r, "carol")

	// no category
	w := doJSON(t, r, http.MethodPost, "/api/transactions", token, gin.H{
		"kind":       "income",
		"amount":     100,
		"occurredOn": "2025-01-10",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400, body = %s", w.Code, w.Body.String())
	}

	// no amount
	w = doJSON(t, r, http.MethodPost, "/api/transactions", token, gin.H{
		"category":   "Food",
		"kind":       "expense",
		"occurredOn": "2025-01-10",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400, body = %s", w.Code, w.Body.String())
	}
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	r := setupServer(t)
	token := registerAndLogin(t, r, "dave")

	w := doJSON(t, r, http.MethodPut, "/api/transactions/42", token, gin.H{
		"amount": 10,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404, body = %s", w.Code, w.Body.String())
	}
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	r := setupServer(t)
	token := registerAndLogin(t, r, "erin")

	w := doJSON(t, r, http.MethodDelete, "/api/transactions/42", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404, body = %s", w.Code, w.Body.String())
	}
}

func TestUpload_EmptyPayload(t *testing.T) {
	r := setupServer(t)
	token := registerAndLogin(t, r, "frank")

	w := doJSON(t, r, http.MethodPost, "/api/transactions/upload", token, gin.H{
		"transactions": []interface{}{},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400, body = %s", w.Code, w.Body.String())
	}

	// store unchanged
	w = doJSON(t, r, http.MethodGet, "/api/transactions", token, nil)
	data := decodeData(t, w)
	if items, _ := data["transactions"].([]interface{}); len(items) != 0 {
		t.Errorf("store changed by empty upload: %d records", len(items))
	}
}

func TestUpload_BatchSharesOwner(t *testing.T) {
	r := setupServer(t)
	token := registerAndLogin(t, r, "grace")

	w := doJSON(t, r, http.MethodPost, "/api/transactions/upload", token, gin.H{
		"transactions": []gin.H{
			{"date": "2025-10-01", "category": "Salary", "type": "income", "amount": 5000000, "note": "October"},
			{"date": "2025-10-02", "category": "Food", "type": "expense", "amount": 25000},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/transactions", token, nil)
	data := decodeData(t, w)
	items, _ := data["transactions"].([]interface{})
	if len(items) != 2 {
		t.Errorf("got %d transactions, want 2", len(items))
	}
}

func TestOwnerIsolation(t *testing.T) {
	r := setupServer(t)
	aliceToken := registerAndLogin(t, r, "alice2")
	bobToken := registerAndLogin(t, r, "bob2")

	w := doJSON(t, r, http.MethodPost, "/api/transactions", aliceToken, gin.H{
		"category":   "Salary",
		"kind":       "income",
		"amount":     100,
		"occurredOn": "2025-01-10",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}

	// bob sees nothing of alice's ledger
	w = doJSON(t, r, http.MethodGet, "/api/transactions", bobToken, nil)
	data := decodeData(t, w)
	if items, _ := data["transactions"].([]interface{}); len(items) != 0 {
		t.Errorf("cross-owner leak: %d records", len(items))
	}

	// and cannot request it explicitly either
	w = doJSON(t, r, http.MethodGet, "/api/transactions?ownerId=1", bobToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("cross-owner list status = %d, want 403", w.Code)
	}

	// nor delete alice's record by guessing the id
	w = doJSON(t, r, http.MethodDelete, "/api/transactions/1", bobToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("cross-owner delete status = %d, want 404", w.Code)
	}
}

func TestRequiresAuthentication(t *testing.T) {
	r := setupServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/transactions", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/transactions", "bogus-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	r := setupServer(t)
	token := registerAndLogin(t, r, "harry")

	w := doJSON(t, r, http.MethodPost, "/api/auth/logout", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/transactions", token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("revoked token status = %d, want 401", w.Code)
	}
}
