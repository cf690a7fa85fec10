package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"store-pos/internal/middleware"
	"store-pos/internal/model"
	"store-pos/internal/repository"
	"store-pos/internal/reqctx"
	"store-pos/internal/service"
	"store-pos/internal/testdb"
	"store-pos/pkg/jwt"
	"store-pos/pkg/logger"
)

type testApp struct {
	app  *fiber.App
	db   *gorm.DB
	auth service.AuthService
}

func newTestApp(t *testing.T) *testApp {
	db := testdb.New(t)
	log := logger.Discard()

	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	clientRepo := repository.NewClientRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	userRepo := repository.NewUserRepo(db)

	auth := service.NewAuthService(userRepo, jwt.NewManager("test-secret", time.Hour), nil)
	products := service.NewProductService(productRepo, categoryRepo, nil)
	categories := service.NewCategoryService(categoryRepo, productRepo, db, nil)

	h := Handlers{
		Auth:      NewAuthHandler(auth, "session", log),
		Dashboard: NewDashboardHandler(service.NewDashboardService(productRepo, categoryRepo, supplierRepo, clientRepo, saleRepo, time.Local, nil), log),
		Product:   NewProductHandler(products, categories, log),
		Category:  NewCategoryHandler(categories, log),
		Supplier:  NewSupplierHandler(service.NewSupplierService(supplierRepo), log),
		Client:    NewClientHandler(service.NewClientService(clientRepo), log),
		Sale:      NewSaleHandler(service.NewSaleService(saleRepo, productRepo, clientRepo, db, nil, log, nil), log),
		Report:    NewReportHandler(service.NewReportService(saleRepo, time.Local, nil), log),
		Portal:    NewPortalHandler(service.NewPortalService(clientRepo, saleRepo), log),
		Role:      NewRoleHandler(),
		User:      NewUserHandler(service.NewUserService(userRepo, clientRepo, db, nil), log),
	}

	app := fiber.New()
	RegisterRoutes(app, h,
		middleware.LoadSession(auth, "session", log),
		middleware.LoginRateLimiter(nil, 0, 0, log),
		nil,
	)
	return &testApp{app: app, db: db, auth: auth}
}

// login creates an account with role and returns its bearer token.
func (a *testApp) login(t *testing.T, username string, role model.Role) (*model.User, string) {
	u := testdb.User(t, a.db, username, role)
	res, err := a.auth.Login(username, "secret123")
	require.NoError(t, err)
	return u, res.Token
}

func (a *testApp) do(t *testing.T, method, path, token string, body io.Reader, contentType string) (int, Envelope) {
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)

	var env Envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return resp.StatusCode, env
}

func (a *testApp) get(t *testing.T, path, token string) (int, Envelope) {
	return a.do(t, http.MethodGet, path, token, nil, "")
}

func (a *testApp) postJSON(t *testing.T, path, token string, payload interface{}) (int, Envelope) {
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	return a.do(t, http.MethodPost, path, token, strings.NewReader(string(b)), fiber.MIMEApplicationJSON)
}

func (a *testApp) postForm(t *testing.T, path, token string, form url.Values) (int, Envelope) {
	return a.do(t, http.MethodPost, path, token, strings.NewReader(form.Encode()), fiber.MIMEApplicationForm)
}

func texts(env Envelope) []string {
	out := make([]string, len(env.Messages))
	for i, m := range env.Messages {
		out[i] = m.Text
	}
	return out
}

func TestUnauthenticatedIsSentToLogin(t *testing.T) {
	a := newTestApp(t)

	for _, path := range []string{"/dashboard", "/products", "/reports/sales", "/portal"} {
		status, env := a.get(t, path, "")
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Equal(t, "/login", env.Redirect, path)
		require.Len(t, env.Messages, 1, path)
		assert.Equal(t, reqctx.LevelError, env.Messages[0].Level, path)
		assert.Equal(t, "Please log in to continue.", env.Messages[0].Text, path)
	}
}

func TestCategoryDeleteRequiresAdministrator(t *testing.T) {
	a := newTestApp(t)
	_, seller := a.login(t, "seller1", model.RoleSeller)
	_, admin := a.login(t, "admin1", model.RoleAdministrator)
	cat := testdb.Category(t, a.db, "Drinks")
	path := "/categories/" + cat.ID.String() + "/delete"

	status, env := a.postForm(t, path, seller, url.Values{})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "/dashboard", env.Redirect)
	assert.Contains(t, texts(env), "Access denied. Required role: Administrator")

	var n int64
	require.NoError(t, a.db.Model(&model.Category{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	// the confirmation page never deletes
	status, _ = a.get(t, path, admin)
	assert.Equal(t, http.StatusOK, status)
	require.NoError(t, a.db.Model(&model.Category{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	status, env = a.postForm(t, path, admin, url.Values{})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "/categories", env.Redirect)
	require.NoError(t, a.db.Model(&model.Category{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)

	status, _ = a.postForm(t, path, admin, url.Values{})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMissingProfileIsDistinct(t *testing.T) {
	a := newTestApp(t)
	_, token := a.login(t, "orphan", "")

	status, env := a.get(t, "/suppliers", token)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, texts(env), "Your account has no profile assigned. Contact the administrator.")

	// operations open to any authenticated user do not need a profile
	status, _ = a.get(t, "/products", token)
	assert.Equal(t, http.StatusOK, status)
}

func TestClientCannotSeeOtherClientsSale(t *testing.T) {
	a := newTestApp(t)
	cat := testdb.Category(t, a.db, "Drinks")
	water := testdb.Product(t, a.db, cat, "Water", "1.25", 50)
	seller := testdb.User(t, a.db, "manager1", model.RoleManager)
	ana := testdb.Client(t, a.db, "Ana", "Lopez")
	luis := testdb.Client(t, a.db, "Luis", "Perez")
	own := testdb.Sale(t, a.db, seller, ana, water, 1, time.Now())
	other := testdb.Sale(t, a.db, seller, luis, water, 1, time.Now())

	user, token := a.login(t, "ana", model.RoleClient)
	require.NoError(t, a.db.Model(&model.Client{}).Where("id = ?", ana.ID).Update("user_id", user.ID).Error)

	status, _ := a.get(t, "/portal/sales/"+own.ID.String(), token)
	assert.Equal(t, http.StatusOK, status)

	status, env := a.get(t, "/portal/sales/"+other.ID.String(), token)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Nil(t, env.Data)

	status, _ = a.get(t, "/portal/sales/not-a-uuid", token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPortalWithoutClientRecord(t *testing.T) {
	a := newTestApp(t)
	_, token := a.login(t, "walkin", model.RoleClient)

	status, env := a.get(t, "/portal", token)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "/login", env.Redirect)
	assert.Contains(t, texts(env), "Your account is not associated with a client.")
}

func TestRegisterSaleFromForm(t *testing.T) {
	a := newTestApp(t)
	_, manager := a.login(t, "manager1", model.RoleManager)
	_, seller := a.login(t, "seller1", model.RoleSeller)
	cat := testdb.Category(t, a.db, "Drinks")
	water := testdb.Product(t, a.db, cat, "Water", "1.25", 5)

	form := url.Values{}
	form.Set("total", "2.50")
	form.Set("items[0][product_id]", water.ID.String())
	form.Set("items[0][quantity]", "2")

	status, _ := a.postForm(t, "/sales/new", seller, form)
	assert.Equal(t, http.StatusForbidden, status)

	status, env := a.postForm(t, "/sales/new", manager, form)
	require.Equal(t, http.StatusCreated, status, texts(env))
	assert.Equal(t, "/dashboard", env.Redirect)
	require.Len(t, env.Messages, 1)
	assert.True(t, strings.HasPrefix(env.Messages[0].Text, "Sale #"))

	form.Set("items[0][quantity]", "4")
	status, env = a.postForm(t, "/sales/new", manager, form)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "/sales/new", env.Redirect)
	assert.Contains(t, texts(env), "Insufficient stock for Water. Available quantity: 3")

	var fresh model.Product
	require.NoError(t, a.db.First(&fresh, "id = ?", water.ID).Error)
	assert.Equal(t, 3, fresh.Stock)
}

func TestRegisterSaleValidationErrors(t *testing.T) {
	a := newTestApp(t)
	_, manager := a.login(t, "manager1", model.RoleManager)

	status, env := a.postJSON(t, "/sales/new", manager, map[string]interface{}{
		"items": []map[string]interface{}{{"product_id": "", "quantity": 0}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Errors, "items[0].product_id")
	assert.Contains(t, env.Errors, "items[0].quantity")
}

func TestReportFallsBackOnMalformedDates(t *testing.T) {
	a := newTestApp(t)
	_, seller := a.login(t, "seller1", model.RoleSeller)

	status, env := a.get(t, "/reports/sales?fecha_inicio=2024-02-30&fecha_fin=2024-03-01", seller)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, texts(env), "Invalid date format. Showing today's sales.")

	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, today, data["fecha_inicio"])
	assert.Equal(t, today, data["fecha_fin"])
	assert.EqualValues(t, 0, data["numero_ventas"])

	status, env = a.get(t, "/reports/sales?fecha_inicio=2024-01-01&fecha_fin=2024-01-31", seller)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, env.Messages)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	a := newTestApp(t)
	testdb.User(t, a.db, "manager1", model.RoleManager)

	status, env := a.postJSON(t, "/login", "", map[string]string{"username": "manager1", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, texts(env), "Incorrect username or password")

	b, _ := json.Marshal(map[string]string{"username": "manager1", "password": "secret123"})
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(string(b)))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == "session" {
			session = ck
		}
	}
	require.NotNil(t, session)

	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: session.Value})
	resp, err = a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: session.Value})
	resp, err = a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: session.Value})
	resp, err = a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProductEditGuardAndValidation(t *testing.T) {
	a := newTestApp(t)
	_, seller := a.login(t, "seller1", model.RoleSeller)
	_, manager := a.login(t, "manager1", model.RoleManager)
	cat := testdb.Category(t, a.db, "Drinks")

	status, env := a.postJSON(t, "/products/new", seller, map[string]interface{}{
		"name": "Tea", "price": "3.10", "stock": 4, "category_id": cat.ID.String(),
	})
	require.Equal(t, http.StatusCreated, status, texts(env))
	assert.Equal(t, "/products", env.Redirect)
	id := env.Data.(map[string]interface{})["id"].(string)

	status, _ = a.get(t, "/products/"+id+"/edit", seller)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = a.postJSON(t, "/products/"+id+"/edit", manager, map[string]interface{}{
		"name": "", "price": "-1", "stock": 4, "category_id": cat.ID.String(),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "This field is required.", env.Errors["name"])
	assert.Equal(t, "Enter a valid amount.", env.Errors["price"])

	status, _ = a.get(t, "/products/00000000-0000-4000-8000-000000000000/edit", manager)
	assert.Equal(t, http.StatusNotFound, status)
}
