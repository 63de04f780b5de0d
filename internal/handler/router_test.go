package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront_api/internal/model"
	"storefront_api/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const routerSecret = "router-secret"

type stubAuth struct{ tokens *utils.TokenService }

func (s *stubAuth) Login(ctx context.Context, username, password string) (string, error) {
	if username != "alice" || password != "pw" {
		return "", model.ErrInvalidCredentials
	}
	return s.tokens.Issue(2, "alice", false)
}

type stubUsers struct {
	createdBy *int
}

func (s *stubUsers) List(ctx context.Context) ([]model.User, error) {
	return []model.User{{ID: 1, Username: "root", IsAdmin: true}}, nil
}

func (s *stubUsers) Get(ctx context.Context, id int) (*model.User, error) {
	if id != 2 {
		return nil, model.NotFoundByID("User", id)
	}
	return &model.User{ID: 2, Username: "alice", Email: "alice@example.com", PasswordHash: "secret"}, nil
}

func (s *stubUsers) Create(ctx context.Context, req model.CreateUserRequest, actorID *int) (*model.User, error) {
	s.createdBy = actorID
	if req.IsAdmin && actorID == nil {
		return nil, model.UnauthorizedError("only admins can create admins")
	}
	return &model.User{ID: 3, Username: req.Username, Email: req.Email, IsAdmin: req.IsAdmin}, nil
}

func (s *stubUsers) Update(ctx context.Context, id int, patch model.UserPatch, actorID *int) (*model.User, error) {
	return s.Get(ctx, id)
}

func (s *stubUsers) Delete(ctx context.Context, id int) (*model.User, error) {
	return s.Get(ctx, id)
}

type stubProducts struct{}

func (s *stubProducts) List(ctx context.Context) ([]model.Product, error) {
	return []model.Product{{ID: 1, Name: "Mug", Price: decimal.RequireFromString("9.50")}}, nil
}

func (s *stubProducts) Get(ctx context.Context, id int) (*model.Product, error) {
	return nil, model.NotFoundByID("Product", id)
}

func (s *stubProducts) Create(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	return &model.Product{ID: 2, Name: req.Name, Price: req.Price}, nil
}

func (s *stubProducts) Update(ctx context.Context, id int, patch model.ProductPatch) (*model.Product, error) {
	return nil, model.NotFoundByID("Product", id)
}

func (s *stubProducts) Delete(ctx context.Context, id int) (*model.Product, error) {
	return nil, model.NotFoundByID("Product", id)
}

type stubOrders struct{}

func (s *stubOrders) Create(ctx context.Context, userID int, req model.CreateOrderRequest) (*model.OrderWithItems, error) {
	if len(req.Items) > 1 {
		return nil, errors.New("connection reset")
	}
	return &model.OrderWithItems{Order: &model.Order{ID: 1, UserID: userID, Status: model.OrderStatusActive}, Items: []model.OrderItem{}}, nil
}

func (s *stubOrders) CurrentForUser(ctx context.Context, userID int) (*model.OrderWithItems, error) {
	return nil, nil
}

func (s *stubOrders) List(ctx context.Context) ([]model.Order, error) {
	return []model.Order{}, nil
}

func (s *stubOrders) Update(ctx context.Context, id int, patch model.OrderPatch) (*model.Order, error) {
	return nil, model.NotFoundByID("Order", id)
}

func (s *stubOrders) Delete(ctx context.Context, id int) (*model.Order, error) {
	return nil, model.NotFoundByID("Order", id)
}

func (s *stubOrders) UpdateItem(ctx context.Context, id int, patch model.OrderItemPatch) (*model.OrderItem, error) {
	return nil, model.NotFoundByID("OrderItem", id)
}

func (s *stubOrders) DeleteItem(ctx context.Context, id int) (*model.OrderItem, error) {
	return nil, model.NotFoundByID("OrderItem", id)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

type fixture struct {
	router *gin.Engine
	tokens *utils.TokenService
	users  *stubUsers
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens := utils.NewTokenService(routerSecret, time.Hour)
	users := &stubUsers{}
	r := NewRouter(Services{
		Auth:     &stubAuth{tokens: tokens},
		Users:    users,
		Products: &stubProducts{},
		Orders:   &stubOrders{},
	}, tokens, stubPinger{})
	return &fixture{router: r, tokens: tokens, users: users}
}

func (f *fixture) token(t *testing.T, id int, admin bool) string {
	t.Helper()
	tok, err := f.tokens.Issue(id, "someone", admin)
	require.NoError(t, err)
	return tok
}

func (f *fixture) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["error"].(string)
	return msg
}

func TestLogin(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/login", "", gin.H{"username": "alice", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	claims, err := f.tokens.Validate(body["token"])
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)

	w = f.do(http.MethodPost, "/login", "", gin.H{"username": "alice", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid username or password", errorOf(t, w))

	w = f.do(http.MethodPost, "/login", "", gin.H{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "password is required", errorOf(t, w))
}

func TestLogin_MissingSigningKey(t *testing.T) {
	tokens := utils.NewTokenService("", time.Hour)
	r := NewRouter(Services{Auth: &stubAuth{tokens: tokens}}, tokens, nil)
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"username":"alice","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "No JWT Key Available", errorOf(t, w))
}

func TestUsers_Access(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/users/2", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token required", errorOf(t, w))

	w = f.do(http.MethodGet, "/users/2", f.token(t, 3, false), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Unauthorized access", errorOf(t, w))

	w = f.do(http.MethodGet, "/users/2", f.token(t, 2, false), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")

	w = f.do(http.MethodGet, "/users", f.token(t, 2, false), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access restricted to admins", errorOf(t, w))

	w = f.do(http.MethodGet, "/users/9", f.token(t, 1, true), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found with ID: 9", errorOf(t, w))
}

func TestUsers_CreatePassesActor(t *testing.T) {
	f := newFixture(t)
	body := gin.H{"username": "bob", "email": "bob@example.com", "password": "pw", "is_admin": true}

	w := f.do(http.MethodPost, "/users", "", body)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, f.users.createdBy)

	w = f.do(http.MethodPost, "/users", f.token(t, 1, true), body)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, f.users.createdBy)
	assert.Equal(t, 1, *f.users.createdBy)

	w = f.do(http.MethodPost, "/users", "", gin.H{"username": "bob", "email": "not-an-email", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email must be a valid email", errorOf(t, w))
}

func TestProducts(t *testing.T) {
	f := newFixture(t)
	body := gin.H{"name": "Lamp", "price": 12.5}

	w := f.do(http.MethodGet, "/products", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodPost, "/products", f.token(t, 2, false), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(http.MethodPost, "/products", f.token(t, 1, true), body)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodPost, "/products", f.token(t, 1, true), gin.H{"name": "Free", "price": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPost, "/products", f.token(t, 1, true), gin.H{"name": "Yacht", "price": 1e12})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "price must be less than 100000000", errorOf(t, w))

	w = f.do(http.MethodDelete, "/products/77", f.token(t, 1, true), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found with ID: 77", errorOf(t, w))

	w = f.do(http.MethodGet, "/products/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrders(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/orders/current/2", f.token(t, 2, false), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No active order found", errorOf(t, w))

	w = f.do(http.MethodPost, "/orders/2", f.token(t, 2, false), gin.H{"items": []gin.H{{"product_id": 1, "quantity": 1}}})
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodPost, "/orders/2", f.token(t, 2, false), gin.H{"items": []gin.H{{"product_id": 1, "quantity": 0}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodPost, "/orders/2", f.token(t, 2, false), gin.H{"items": []gin.H{
		{"product_id": 1, "quantity": 1}, {"product_id": 2, "quantity": 1},
	}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to create order", errorOf(t, w))

	w = f.do(http.MethodPost, "/orders/3", f.token(t, 2, false), gin.H{})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(http.MethodDelete, "/order-items/4", f.token(t, 1, true), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	tokens := utils.NewTokenService(routerSecret, time.Hour)
	r := NewRouter(Services{}, tokens, stubPinger{err: errors.New("down")})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
