package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/jhoicas/stock-control/internal/application/analytics"
	"github.com/jhoicas/stock-control/internal/application/auth"
	"github.com/jhoicas/stock-control/internal/application/dto"
	"github.com/jhoicas/stock-control/internal/application/inventory"
	"github.com/jhoicas/stock-control/internal/application/usecase"
	"github.com/jhoicas/stock-control/internal/domain/entity"
	"github.com/jhoicas/stock-control/internal/infrastructure/export"
	"github.com/jhoicas/stock-control/internal/infrastructure/security"
	apphttp "github.com/jhoicas/stock-control/internal/interfaces/http"
	"github.com/jhoicas/stock-control/internal/testutil/memstore"
)

type testServer struct {
	app   *fiber.App
	store *memstore.Store
	admin string // token del administrador sembrado
	user  string // token de un usuario común
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memstore.New()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)

	authUC := auth.NewAuthUseCase(store.Users(), hasher, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	userUC := usecase.NewUserUseCase(store.Users(), hasher)
	_, err := userUC.EnsureAdmin(context.Background(), usecase.SeedAdmin{Name: "Administrador", Email: "admin@sistema.com", Password: "admin123"})
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:           authUC,
		ProductUC:        usecase.NewProductUseCase(store.Products(), entity.DefaultMinQuantity),
		UserUC:           userUC,
		RegisterMovement: inventory.NewRegisterMovementUseCase(store.TxRunner(), nil),
		History:          inventory.NewHistoryUseCase(store.Movements(), 100),
		LowStock:         inventory.NewLowStockUseCase(store.Products()),
		ReportUC:         appanalytics.NewReportUseCase(store.Products(), store.Movements(), nil, export.NewXMLExporter()),
		Cookie:           apphttp.SessionCookie{Name: testCookie, TTL: time.Hour},
	})

	s := &testServer{app: app, store: store}
	s.admin = s.login(t, "admin@sistema.com", "admin123")
	s.call(t, http.MethodPost, "/api/users", s.admin, dto.CreateUserRequest{Name: "Ana", Email: "ana@x.com", Password: "123456"}, http.StatusCreated, nil)
	s.user = s.login(t, "ana@x.com", "123456")
	return s
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	var out dto.LoginResponse
	s.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password}, http.StatusOK, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

// call ejecuta la petición, verifica el status y decodifica el JSON en out si no es nil.
func (s *testServer) call(t *testing.T, method, path, token string, body any, wantStatus int, out any) []byte {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, wantStatus, resp.StatusCode, "%s %s: %s", method, path, raw)
	if out != nil {
		require.NoError(t, json.Unmarshal(raw, out))
	}
	return raw
}

func (s *testServer) createProduct(t *testing.T, name string, qty, min int) dto.ProductResponse {
	t.Helper()
	var p dto.ProductResponse
	s.call(t, http.MethodPost, "/api/products", s.user, dto.CreateProductRequest{
		Name: name, Price: decimal.NewFromInt(2), Quantity: qty, MinQuantity: &min,
	}, http.StatusCreated, &p)
	return p
}

func TestLogin_CookieYMe(t *testing.T) {
	s := newTestServer(t)

	b, _ := json.Marshal(dto.LoginRequest{Email: "ADMIN@sistema.com", Password: "admin123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == testCookie {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: session.Value})
	resp, err = s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var me dto.UserResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, "admin@sistema.com", me.Email)
	assert.True(t, me.IsAdmin)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	s := newTestServer(t)
	raw := s.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@sistema.com", Password: "mala"}, http.StatusUnauthorized, nil)
	assert.Contains(t, string(raw), "INVALID_CREDENTIALS")
}

func TestLogout_LimpiaCookie(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Set-Cookie"), testCookie+"=;")
}

func TestRutasProtegidas_SinSesion(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/api/products", "/api/inventory/movements", "/api/reports/summary", "/api/users", "/api/auth/me"} {
		s.call(t, http.MethodGet, path, "", nil, http.StatusUnauthorized, nil)
	}
}

func TestProductos_EntradaSalidaYStockBajo(t *testing.T) {
	s := newTestServer(t)
	p := s.createProduct(t, "Caneta", 10, 5)
	path := "/api/products/" + itoa(p.ID)

	var res dto.MovementResultResponse
	s.call(t, http.MethodPost, path+"/outbound", s.user, dto.RegisterMovementRequest{Quantity: 6, Notes: "venta"}, http.StatusCreated, &res)
	assert.Equal(t, 4, res.Product.Quantity)
	assert.True(t, res.Product.LowStock)
	assert.Equal(t, "saida", res.Movement.Type)

	raw := s.call(t, http.MethodPost, path+"/outbound", s.user, dto.RegisterMovementRequest{Quantity: 10}, http.StatusConflict, nil)
	assert.Contains(t, string(raw), "INSUFFICIENT_STOCK")

	s.call(t, http.MethodPost, path+"/inbound", s.user, dto.RegisterMovementRequest{Quantity: 0}, http.StatusBadRequest, nil)
	s.call(t, http.MethodPost, "/api/products/999/inbound", s.user, dto.RegisterMovementRequest{Quantity: 1}, http.StatusNotFound, nil)
	s.call(t, http.MethodPost, "/api/products/abc/inbound", s.user, dto.RegisterMovementRequest{Quantity: 1}, http.StatusBadRequest, nil)

	var got dto.ProductResponse
	s.call(t, http.MethodGet, path, s.user, nil, http.StatusOK, &got)
	assert.Equal(t, 4, got.Quantity)
	assert.Equal(t, 1, s.store.MovementCount())

	var low []dto.LowStockItemDTO
	s.call(t, http.MethodGet, "/api/inventory/low-stock", s.user, nil, http.StatusOK, &low)
	require.Len(t, low, 1)
	assert.Equal(t, 1, low[0].Shortfall)

	var list dto.MovementListResponse
	s.call(t, http.MethodGet, "/api/inventory/movements?type=saida&limit=10", s.user, nil, http.StatusOK, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Caneta", list.Items[0].ProductName)
	assert.Equal(t, "Ana", list.Items[0].UserName)
}

func TestProductos_EdicionSoloAdministrador(t *testing.T) {
	s := newTestServer(t)
	p := s.createProduct(t, "Lápis", 10, 5)
	path := "/api/products/" + itoa(p.ID)
	min := 20

	raw := s.call(t, http.MethodPut, path, s.user, dto.UpdateProductRequest{MinQuantity: &min}, http.StatusForbidden, nil)
	assert.Contains(t, string(raw), "FORBIDDEN")

	var got dto.ProductResponse
	s.call(t, http.MethodGet, path, s.user, nil, http.StatusOK, &got)
	assert.Equal(t, 5, got.MinQuantity)

	s.call(t, http.MethodPut, path, s.admin, dto.UpdateProductRequest{MinQuantity: &min}, http.StatusOK, &got)
	assert.Equal(t, 20, got.MinQuantity)
	assert.True(t, got.LowStock)
}

func TestProductos_Validacion(t *testing.T) {
	s := newTestServer(t)
	raw := s.call(t, http.MethodPost, "/api/products", s.user, dto.CreateProductRequest{Name: " ", Price: decimal.NewFromInt(1)}, http.StatusBadRequest, nil)
	assert.Contains(t, string(raw), "VALIDATION")

	p := s.createProduct(t, "Caneta", 10, 5)
	raw = s.call(t, http.MethodPost, "/api/products/"+itoa(p.ID)+"/inbound", s.user, dto.RegisterMovementRequest{Quantity: math.MaxInt}, http.StatusBadRequest, nil)
	assert.Contains(t, string(raw), "VALIDATION")
	s.call(t, http.MethodPost, "/api/products", s.user, dto.CreateProductRequest{Name: "Caro", Price: decimal.RequireFromString("10000000000")}, http.StatusBadRequest, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.user)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUsuarios_DuplicadoYDesactivacion(t *testing.T) {
	s := newTestServer(t)

	s.call(t, http.MethodGet, "/api/users", s.user, nil, http.StatusForbidden, nil)
	s.call(t, http.MethodPost, "/api/users", s.user, dto.CreateUserRequest{Name: "X", Email: "x@x.com", Password: "1"}, http.StatusForbidden, nil)

	raw := s.call(t, http.MethodPost, "/api/users", s.admin, dto.CreateUserRequest{Name: "Otra", Email: " ANA@x.com", Password: "1"}, http.StatusConflict, nil)
	assert.Contains(t, string(raw), "EMAIL_EXISTS")
	assert.Equal(t, 2, s.store.UserCount())

	var list dto.UserListResponse
	s.call(t, http.MethodGet, "/api/users", s.admin, nil, http.StatusOK, &list)
	require.Equal(t, 2, list.Total)

	var ana dto.UserResponse
	for _, u := range list.Items {
		if u.Email == "ana@x.com" {
			ana = u
		}
	}
	require.NotZero(t, ana.ID)
	s.call(t, http.MethodDelete, "/api/users/"+itoa(ana.ID), s.admin, nil, http.StatusNoContent, nil)

	// el token sigue vigente pero el usuario ya no está activo
	s.call(t, http.MethodGet, "/api/products", s.user, nil, http.StatusUnauthorized, nil)
	s.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "ana@x.com", Password: "123456"}, http.StatusUnauthorized, nil)

	var admin dto.UserResponse
	s.call(t, http.MethodGet, "/api/auth/me", s.admin, nil, http.StatusOK, &admin)
	raw = s.call(t, http.MethodDelete, "/api/users/"+itoa(admin.ID), s.admin, nil, http.StatusConflict, nil)
	assert.Contains(t, string(raw), "CONFLICT")
}

func TestReportes(t *testing.T) {
	s := newTestServer(t)
	s.createProduct(t, "A", 10, 5)
	p := s.createProduct(t, "B", 5, 5)
	s.call(t, http.MethodPost, "/api/products/"+itoa(p.ID)+"/inbound", s.user, dto.RegisterMovementRequest{Quantity: 1}, http.StatusCreated, nil)

	var r dto.ReportSummaryDTO
	s.call(t, http.MethodGet, "/api/reports/summary", s.user, nil, http.StatusOK, &r)
	assert.Equal(t, 2, r.TotalProducts)
	assert.True(t, decimal.NewFromInt(32).Equal(r.TotalValue))
	assert.Equal(t, 0, r.LowStockCount)
	assert.Equal(t, 2, r.OKCount)
	assert.Equal(t, 1, r.MovementsToday)

	raw := s.call(t, http.MethodGet, "/api/reports/stock.xml", s.user, nil, http.StatusOK, nil)
	assert.Contains(t, string(raw), "<StockReport")

	// sin generador PDF configurado
	s.call(t, http.MethodGet, "/api/reports/stock.pdf", s.user, nil, http.StatusInternalServerError, nil)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
