package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Swasthya-api/internal/application/documents"
	"github.com/jhoicas/Swasthya-api/internal/application/dto"
	"github.com/jhoicas/Swasthya-api/internal/application/usecase"
	"github.com/jhoicas/Swasthya-api/internal/domain"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Swasthya-api/internal/interfaces/http"
)

// memDocs almacén de documentos en memoria; Run ejecuta sin inventario (los formularios de
// demanda no mueven existencias).
type memDocs struct {
	recs    map[string]repository.DocumentRecord
	counter int
}

func (m *memDocs) Run(_ context.Context, fn func(repository.DocumentStore, repository.ItemRepository, repository.InventoryMovementRepository) error) error {
	return fn(m, nil, nil)
}
func (m *memDocs) NextNumber(context.Context, entity.DocKind, string) (int, error) {
	m.counter++
	return m.counter, nil
}
func (m *memDocs) Insert(_ context.Context, rec *repository.DocumentRecord) error {
	m.recs[rec.ID] = *rec
	return nil
}
func (m *memDocs) Get(_ context.Context, kind entity.DocKind, id string) (*repository.DocumentRecord, error) {
	rec, ok := m.recs[id]
	if !ok || rec.Kind != kind {
		return nil, nil
	}
	return &rec, nil
}
func (m *memDocs) GetForUpdate(ctx context.Context, kind entity.DocKind, id string) (*repository.DocumentRecord, error) {
	return m.Get(ctx, kind, id)
}
func (m *memDocs) List(_ context.Context, f repository.DocumentFilter) ([]*repository.DocumentRecord, error) {
	var out []*repository.DocumentRecord
	for _, r := range m.recs {
		if r.Kind == f.Kind && (f.Status == "" || r.Status == f.Status) {
			r := r
			out = append(out, &r)
		}
	}
	return out, nil
}
func (m *memDocs) Update(_ context.Context, rec *repository.DocumentRecord, expected int) error {
	cur, ok := m.recs[rec.ID]
	if !ok || cur.Version != expected {
		return domain.ErrConflict
	}
	m.recs[rec.ID] = *rec
	return nil
}

func newRouterApp() *fiber.App {
	docs := &memDocs{recs: map[string]repository.DocumentRecord{}}
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		CalculatorUC: usecase.NewCalculatorUseCase(),
		Documents:    documents.NewRegistry(docs, docs, "2081/082", nil),
		JWTSecret:    testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, role string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	resp.Body.Close()
	return resp, out
}

func TestDemandForm_FlujoCompleto(t *testing.T) {
	app := newRouterApp()

	resp, out := call(t, app, http.MethodPost, "/api/demand-forms", "staff", map[string]any{
		"date":         "2081/5/1",
		"requested_by": "Ram",
		"items":        []map[string]any{{"name": "Mask", "quantity": 10, "rate": "5"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, out)
	doc := out["document"].(map[string]any)
	id := doc["id"].(string)
	assert.Equal(t, "Pending", doc["status"])
	assert.Equal(t, "2081/05/01", doc["date"])
	assert.Equal(t, "50", out["totals"].(map[string]any)["grand_total"])
	assert.Empty(t, out["allowed_actions"], "staff no verifica")

	// acción de otro rol
	resp, out = call(t, app, http.MethodPost, "/api/demand-forms/"+id+"/transition", "staff",
		dto.TransitionRequest{Action: "verify", Version: 1})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, out)

	resp, out = call(t, app, http.MethodPost, "/api/demand-forms/"+id+"/transition", "storekeeper",
		dto.TransitionRequest{Action: "verify", Version: 1})
	require.Equal(t, http.StatusOK, resp.StatusCode, out)
	assert.Equal(t, "Verified", out["document"].(map[string]any)["status"])

	// versión vieja
	resp, out = call(t, app, http.MethodPost, "/api/demand-forms/"+id+"/transition", "admin",
		dto.TransitionRequest{Action: "approve", Version: 1})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "VERSION_CONFLICT", out["code"])

	// salto ilegal
	resp, out = call(t, app, http.MethodPost, "/api/demand-forms/"+id+"/transition", "admin",
		dto.TransitionRequest{Action: "issue", Version: 2})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", out["code"])

	resp, _ = call(t, app, http.MethodPost, "/api/demand-forms/"+id+"/transition", "admin",
		dto.TransitionRequest{Action: "approve", Version: 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, out = call(t, app, http.MethodGet, "/api/demand-forms?status=Approved", "staff", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, out["items"], 1)

	resp, _ = call(t, app, http.MethodGet, "/api/demand-forms/nope", "staff", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDocument_ErroresDeEntrada(t *testing.T) {
	app := newRouterApp()

	resp, out := call(t, app, http.MethodPost, "/api/demand-forms", "staff", map[string]any{
		"date": "2082/04/01", "requested_by": "Ram",
		"items": []map[string]any{{"name": "Mask", "quantity": 1}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "OUTSIDE_FISCAL_YEAR", out["code"])

	resp, out = call(t, app, http.MethodPost, "/api/issue-reports", "staff", map[string]any{
		"date": "2081/05/01", "recipient": "Ram",
		"items": []map[string]any{{"name": "Mask", "quantity": 1}},
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, out)

	resp, _ = call(t, app, http.MethodPost, "/api/demand-forms", "", map[string]any{})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCalculator(t *testing.T) {
	app := newRouterApp()
	resp, out := call(t, app, http.MethodPost, "/api/calculator/lines", "staff", dto.CalculatorRequest{
		Kind:  string(entity.KindPurchaseOrder),
		Lines: []dto.CalculatorLine{{Name: "Glove", Quantity: "10", Rate: "100", TaxPercent: "13"}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, out)
	assert.Equal(t, "1130", out["totals"].(map[string]any)["grand_total"])

	resp, _ = call(t, app, http.MethodPost, "/api/calculator/lines", "staff", dto.CalculatorRequest{Kind: "otro"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRabies_ModuloDeshabilitado(t *testing.T) {
	resp, out := call(t, newRouterApp(), http.MethodGet, "/api/rabies/due", "staff", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "MODULE_DISABLED", out["code"])
}

func TestUsers_SoloAdmin(t *testing.T) {
	resp, out := call(t, newRouterApp(), http.MethodGet, "/api/users", "storekeeper", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", out["code"])
}
