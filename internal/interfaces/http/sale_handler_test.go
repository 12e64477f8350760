package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novasalud/clinic-api/internal/application/dto"
	"github.com/novasalud/clinic-api/internal/application/sales"
	"github.com/novasalud/clinic-api/internal/domain"
)

// fakeSales registra lo que recibe y devuelve lo configurado.
type fakeSales struct {
	gotHeader sales.Header
	gotID     int64
	createErr error
	receipt   []byte
}

func (f *fakeSales) Create(ctx context.Context, h sales.Header) (sales.Result, error) {
	f.gotHeader = h
	if f.createErr != nil {
		return sales.Result{}, f.createErr
	}
	return sales.Result{SaleID: 42, Total: h.Total()}, nil
}

func (f *fakeSales) Update(ctx context.Context, id int64, h sales.Header) (sales.Result, error) {
	f.gotID, f.gotHeader = id, h
	return sales.Result{SaleID: id, Total: h.Total()}, nil
}

func (f *fakeSales) Delete(ctx context.Context, id int64) error {
	f.gotID = id
	return domain.NotFound("venta", id)
}

func (f *fakeSales) Get(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	return &dto.SaleResponse{ID: id}, nil
}

func (f *fakeSales) GetDetails(ctx context.Context, id int64) ([]dto.SaleDetailResponse, error) {
	return []dto.SaleDetailResponse{}, nil
}

func (f *fakeSales) List(ctx context.Context, page dto.PageRequest) (*dto.SaleListResponse, error) {
	return &dto.SaleListResponse{Items: []dto.SaleResponse{}}, nil
}

func (f *fakeSales) FormData(ctx context.Context) (*dto.SaleFormDataResponse, error) {
	return &dto.SaleFormDataResponse{}, nil
}

func (f *fakeSales) Receipt(ctx context.Context, id int64) ([]byte, error) {
	return f.receipt, nil
}

func newSalesApp(svc SaleService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zerolog.Nop())})
	h := NewSaleHandler(svc)
	auth := func(c *fiber.Ctx) error {
		c.Locals(LocalUserID, int64(5))
		return c.Next()
	}
	app.Post("/api/sales", auth, h.Create)
	app.Put("/api/sales/:id", auth, h.Update)
	app.Delete("/api/sales/:id", auth, h.Delete)
	app.Get("/api/sales/:id/receipt", auth, h.Receipt)
	return app
}

func send(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var errBody dto.ErrorResponse
	if resp.StatusCode >= 400 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	}
	return resp, errBody
}

func TestSaleHandler_CreateUsaVendedorAutenticado(t *testing.T) {
	svc := &fakeSales{}
	app := newSalesApp(svc)

	body := `{"client_id":1,"date":"2024-03-01","total":999,
		"items":[{"product_id":3,"quantity":2,"unit_price":"2.50"}]}`
	resp, _ := send(t, app, http.MethodPost, "/api/sales", body)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.SaleResultResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, int64(42), out.SaleID)
	assert.True(t, decimal.RequireFromString("5").Equal(out.Total))

	assert.Equal(t, int64(5), svc.gotHeader.SellerID)
	require.NotNil(t, svc.gotHeader.ClaimedTotal)
	assert.Equal(t, 2024, svc.gotHeader.Date.Year())
}

func TestSaleHandler_CreateValidaCuerpo(t *testing.T) {
	app := newSalesApp(&fakeSales{})

	resp, body := send(t, app, http.MethodPost, "/api/sales", `{"client_id":1,"date":"2024-03-01","items":[{"product_id":3,"quantity":0,"unit_price":1}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body.Code)
	require.NotEmpty(t, body.Fields)
	assert.Equal(t, "items[0].quantity", body.Fields[0].Field)
}

func TestSaleHandler_CreateCuerpoIlegible(t *testing.T) {
	app := newSalesApp(&fakeSales{})
	resp, body := send(t, app, http.MethodPost, "/api/sales", `{"client_id":`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", body.Code)
}

func TestSaleHandler_CreateFechaInvalida(t *testing.T) {
	app := newSalesApp(&fakeSales{})
	resp, body := send(t, app, http.MethodPost, "/api/sales", `{"client_id":1,"date":"ayer","items":[{"product_id":3,"quantity":1,"unit_price":1}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "date", body.Fields[0].Field)
}

func TestSaleHandler_StockInsuficienteEs409(t *testing.T) {
	svc := &fakeSales{createErr: &domain.InsufficientStockError{ProductID: 3, ProductName: "Jarabe", Requested: 2, Available: 1}}
	app := newSalesApp(svc)

	resp, body := send(t, app, http.MethodPost, "/api/sales", `{"client_id":1,"date":"2024-03-01","items":[{"product_id":3,"quantity":2,"unit_price":1}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Contains(t, body.Message, "Jarabe")
}

func TestSaleHandler_UpdateIDInvalido(t *testing.T) {
	app := newSalesApp(&fakeSales{})
	resp, body := send(t, app, http.MethodPut, "/api/sales/abc", `{}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "id", body.Fields[0].Field)
}

func TestSaleHandler_DeleteInexistente(t *testing.T) {
	svc := &fakeSales{}
	app := newSalesApp(svc)
	resp, body := send(t, app, http.MethodDelete, "/api/sales/9", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Code)
	assert.Equal(t, int64(9), svc.gotID)
}

func TestSaleHandler_ReceiptPDF(t *testing.T) {
	app := newSalesApp(&fakeSales{receipt: []byte("%PDF-1.3")})
	resp, _ := send(t, app, http.MethodGet, "/api/sales/4/receipt", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "venta-4.pdf")
}
