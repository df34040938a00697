package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/iEkal8fGe/warehouse/internal/auth"
	api "github.com/iEkal8fGe/warehouse/internal/http"
	handler "github.com/iEkal8fGe/warehouse/internal/http/handlers"
	rl "github.com/iEkal8fGe/warehouse/internal/http/rate_limiter"
	"github.com/iEkal8fGe/warehouse/internal/models"
	"github.com/iEkal8fGe/warehouse/internal/repo"
)

const (
	testPassword = "secret"
	testAPIKey   = "sync-key"
)

var (
	adminToken    string
	employeeToken string

	userRepo      *repo.InMemoryUserRepository
	warehouseRepo *repo.InMemoryWarehouseRepository
	productRepo   *repo.InMemoryProductRepository
	orderRepo     *repo.InMemoryOrderRepository
	supplyRepo    *repo.InMemorySupplyRepository
	inventoryRepo *repo.InMemoryInventoryRepository

	adminID    int
	employeeID int
	// employees are assigned to warehouse mainWarehouseID; otherWarehouseID
	// exercises the cross-warehouse 404 behavior.
	mainWarehouseID  int
	otherWarehouseID int
)

func init() {
	auth.SetSecret("test-secret")
	rl.SetLimits(1000, 1000)

	setupTestRepos()
	r := api.NewRouter()

	var err error
	adminToken, err = generateToken(r, "admin", testPassword)
	if err != nil {
		panic(fmt.Sprintf("error generating admin token: %v", err))
	}
	employeeToken, err = generateToken(r, "picker", testPassword)
	if err != nil {
		panic(fmt.Sprintf("error generating employee token: %v", err))
	}
}

func setupTestRepos() {
	userRepo = repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	warehouseRepo = repo.NewInMemoryWarehouseRepository()
	handler.SetWarehouseRepo(warehouseRepo)

	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	orderRepo = repo.NewInMemoryOrderRepository()
	orderRepo.SetProductRepository(productRepo)
	handler.SetOrderRepo(orderRepo)

	inventoryRepo = repo.NewInMemoryInventoryRepository()
	inventoryRepo.SetProductRepository(productRepo)
	handler.SetInventoryRepo(inventoryRepo)

	supplyRepo = repo.NewInMemorySupplyRepository()
	supplyRepo.SetRepositories(inventoryRepo, productRepo)
	handler.SetSupplyRepo(supplyRepo)

	handler.SetRevoker(auth.NewMemoryRevoker())
	handler.SetExternalAPIKey(testAPIKey)

	seedBaseData()
}

func seedBaseData() {
	ctx := context.Background()

	main, _ := warehouseRepo.Create(ctx, models.Warehouse{
		Name: "Central", State: "TX", City: "Austin", IsActive: true,
	})
	mainWarehouseID = main.ID
	other, _ := warehouseRepo.Create(ctx, models.Warehouse{
		Name: "North", State: "IL", City: "Chicago", IsActive: true,
	})
	otherWarehouseID = other.ID

	hash, _ := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.DefaultCost)
	admin, _ := userRepo.Create(ctx, models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	})
	adminID = admin.ID

	employee, _ := userRepo.Create(ctx, models.User{
		Username:     "picker",
		PasswordHash: string(hash),
		Role:         models.RoleEmployee,
		IsActive:     true,
		WarehouseID:  &mainWarehouseID,
	})
	employeeID = employee.ID
}

// clearCatalogData drops everything except the seeded users and warehouses.
func clearCatalogData() {
	productRepo.Clear()
	orderRepo.Clear()
	supplyRepo.Clear()
	inventoryRepo.Clear()
}

func generateToken(r http.Handler, username, password string) (string, error) {
	w := login(r, username, password)
	if w.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d: %s", w.Code, w.Body.String())
	}

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.AccessToken, nil
}

func login(r http.Handler, username, password string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doJSON drives the router with an optional JSON body and bearer token.
func doJSON(r http.Handler, method, path string, payload any, token string) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, p handler.ProductCreateRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/api/v1/products", p, adminToken)
}

func createSupply(r http.Handler, s handler.SupplyCreateRequest, token string) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/api/v1/supplies", s, token)
}

func detail(w *httptest.ResponseRecorder) string {
	var body struct {
		Detail string `json:"detail"`
	}
	json.NewDecoder(w.Body).Decode(&body)
	return body.Detail
}
