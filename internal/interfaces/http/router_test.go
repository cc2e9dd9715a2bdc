package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/logbook-api/internal/application/dto"
	"github.com/jhoicas/logbook-api/internal/application/logbook"
	"github.com/jhoicas/logbook-api/internal/domain"
	"github.com/jhoicas/logbook-api/internal/domain/entity"
	apphttp "github.com/jhoicas/logbook-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/logbook-api/pkg/jwt"
	"github.com/jhoicas/logbook-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de los casos de uso
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	entries  map[string]*dto.LogEntryResponse
	lastPage dto.PageRequest
	lastIn   dto.CreateLogEntryRequest
	err      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: map[string]*dto.LogEntryResponse{}}
}

func (s *fakeStore) Create(_ context.Context, in dto.CreateLogEntryRequest) (*dto.LogEntryResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	for _, e := range s.entries {
		if e.BookingID == in.BookingID {
			return nil, domain.ErrDuplicate
		}
	}
	s.lastIn = in
	out := &dto.LogEntryResponse{
		ID: fmt.Sprintf("id-%d", len(s.entries)+1), BookingID: in.BookingID,
		CustomerName: in.CustomerName, PropertyType: in.PropertyType, Status: string(entity.LogStatusIssued),
	}
	s.entries[out.ID] = out
	return out, nil
}

func (s *fakeStore) Get(_ context.Context, id string) (*dto.LogEntryResponse, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (s *fakeStore) List(_ context.Context, page dto.PageRequest) (*dto.LogEntryListResponse, error) {
	s.lastPage = page
	data := make([]dto.LogEntryResponse, 0, len(s.entries))
	for _, e := range s.entries {
		data = append(data, *e)
	}
	return &dto.LogEntryListResponse{Success: true, Data: data, Pagination: dto.NewPagination(len(data), page)}, nil
}

func (s *fakeStore) Patch(_ context.Context, in dto.PatchLogEntryRequest) (*dto.LogEntryResponse, error) {
	e, ok := s.entries[in.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if in.CustomerName != nil {
		e.CustomerName = *in.CustomerName
	}
	return e, nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := s.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

type fakeVerifier struct {
	err        error
	verifiedBy string
}

func (v *fakeVerifier) Verify(_ context.Context, id, verifiedBy string, _ dto.VerifyLogEntryRequest) (*logbook.VerificationResult, error) {
	if v.err != nil {
		return nil, v.err
	}
	v.verifiedBy = verifiedBy
	now := time.Now()
	return &logbook.VerificationResult{
		Entry: &entity.LogEntry{
			ID: id, BookingID: "BK-1", Status: entity.LogStatusVerified,
			GrandTotal: decimal.RequireFromString("1249.86"), VerifiedAt: &now, VerifiedBy: verifiedBy,
		},
		Adjustments: []logbook.StockAdjustment{{ItemID: "it-1", Claimed: 2, Before: 5, After: 3, Status: "inStock"}},
		Untracked:   1,
	}, nil
}

type fakeReceipts struct{}

func (fakeReceipts) Download(_ context.Context, id string) ([]byte, string, error) {
	if id != "id-1" {
		return nil, "", domain.ErrNotFound
	}
	return []byte("%PDF-1.3 test"), "logbook_BK-1.pdf", nil
}

type fakeCatalog struct{}

func (fakeCatalog) Create(_ context.Context, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	return &dto.InventoryItemResponse{ID: "it-1", Model: in.Model, QuantityInStock: in.QuantityInStock, Status: "inStock"}, nil
}

func (fakeCatalog) GetByID(_ context.Context, id string) (*dto.InventoryItemResponse, error) {
	return nil, domain.ErrNotFound
}

func (fakeCatalog) List(_ context.Context, page dto.PageRequest) (*dto.InventoryItemListResponse, error) {
	return &dto.InventoryItemListResponse{Success: true, Data: []dto.InventoryItemResponse{}, Pagination: dto.NewPagination(0, page)}, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app      *fiber.App
	store    *fakeStore
	verifier *fakeVerifier
}

func newTestEnv() *testEnv {
	env := &testEnv{store: newFakeStore(), verifier: &fakeVerifier{}}
	env.app = fiber.New()
	apphttp.Router(env.app, apphttp.RouterDeps{
		LogBook:   env.store,
		Verifier:  env.verifier,
		Receipts:  fakeReceipts{},
		Inventory: fakeCatalog{},
		JWTSecret: testJWTSecret,
		Log:       logger.Nop(),
	})
	return env
}

func (env *testEnv) do(t *testing.T, method, target, role string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func validCreateBody(bookingID string) map[string]any {
	return map[string]any{
		"bookingId":    bookingID,
		"customerName": "Asha Rao",
		"mobileNo":     "9800000000",
		"propertyType": "room",
		"totalAmount":  1000,
		"itemsIssued": []map[string]any{
			{"category": "linen", "subCategory": "towel", "brand": "B", "model": "T-1", "quantity": 2, "condition": "good"},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestLogBook_SinToken_Retorna401(t *testing.T) {
	env := newTestEnv()
	resp, _ := env.do(t, http.MethodGet, "/api/logbook", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogBook_CreateRetorna201(t *testing.T) {
	env := newTestEnv()
	resp, body := env.do(t, http.MethodPost, "/api/logbook", pkgjwt.RoleStaff, validCreateBody("BK-1"))

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Log book entry created successfully", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "BK-1", data["bookingId"])
	assert.Equal(t, "Issued", data["status"])
	assert.True(t, env.store.lastIn.TotalAmount.Equal(decimal.NewFromInt(1000)))
}

func TestLogBook_CreateRechazaStatus(t *testing.T) {
	env := newTestEnv()
	in := validCreateBody("BK-1")
	in["status"] = "Verified"
	resp, body := env.do(t, http.MethodPost, "/api/logbook", pkgjwt.RoleStaff, in)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
	assert.Contains(t, body["fields"], "status")
}

func TestLogBook_CreateCamposFaltantes(t *testing.T) {
	env := newTestEnv()
	in := validCreateBody("")
	delete(in, "customerName")
	resp, body := env.do(t, http.MethodPost, "/api/logbook", pkgjwt.RoleStaff, in)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	fields := body["fields"].(map[string]any)
	assert.Contains(t, fields, "bookingId")
	assert.Contains(t, fields, "customerName")
}

func TestLogBook_CreateJSONInvalido(t *testing.T) {
	env := newTestEnv()
	resp, body := env.do(t, http.MethodPost, "/api/logbook", pkgjwt.RoleStaff, `{"bookingId":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
}

func TestLogBook_CreateDuplicadoRetorna409(t *testing.T) {
	env := newTestEnv()
	resp, _ := env.do(t, http.MethodPost, "/api/logbook", pkgjwt.RoleStaff, validCreateBody("BK-1"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := env.do(t, http.MethodPost, "/api/logbook", pkgjwt.RoleStaff, validCreateBody("BK-1"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", body["error"])
}

func TestLogBook_ErrorInternoNoExponeDetalle(t *testing.T) {
	env := newTestEnv()
	env.store.err = fmt.Errorf("%w: %w", domain.ErrPersistence, errors.New("dial tcp 10.0.0.5:5432"))
	resp, body := env.do(t, http.MethodPost, "/api/logbook", pkgjwt.RoleStaff, validCreateBody("BK-1"))

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body["message"], "10.0.0.5")
}

func TestLogBook_ListPaginacionPorDefecto(t *testing.T) {
	env := newTestEnv()
	resp, body := env.do(t, http.MethodGet, "/api/logbook", pkgjwt.RoleStaff, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.PageRequest{Page: 1, Limit: 10}, env.store.lastPage)
	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(1), pagination["page"])
	assert.Equal(t, float64(10), pagination["limit"])
}

func TestLogBook_ListPaginacionInvalida(t *testing.T) {
	env := newTestEnv()
	for _, q := range []string{"page=0", "limit=-1", "page=abc", "limit=1.5"} {
		resp, body := env.do(t, http.MethodGet, "/api/logbook?"+q, pkgjwt.RoleStaff, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
		assert.Equal(t, "VALIDATION_ERROR", body["error"], q)
	}
}

func TestLogBook_GetByID(t *testing.T) {
	env := newTestEnv()
	env.do(t, http.MethodPost, "/api/logbook", pkgjwt.RoleStaff, validCreateBody("BK-1"))

	resp, body := env.do(t, http.MethodGet, "/api/logbook/id-1", pkgjwt.RoleStaff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "BK-1", body["data"].(map[string]any)["bookingId"])

	resp, body = env.do(t, http.MethodGet, "/api/logbook/nope", pkgjwt.RoleStaff, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "NOT_FOUND", body["error"])
}

func TestLogBook_Patch(t *testing.T) {
	env := newTestEnv()
	env.do(t, http.MethodPost, "/api/logbook", pkgjwt.RoleStaff, validCreateBody("BK-1"))

	resp, body := env.do(t, http.MethodPatch, "/api/logbook", pkgjwt.RoleStaff, map[string]any{"_id": "id-1", "customerName": "Ravi"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ravi", body["data"].(map[string]any)["customerName"])

	resp, _ = env.do(t, http.MethodPatch, "/api/logbook", pkgjwt.RoleStaff, map[string]any{"_id": "nope", "customerName": "Ravi"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = env.do(t, http.MethodPatch, "/api/logbook", pkgjwt.RoleStaff, map[string]any{"_id": "id-1", "grandTotal": 5})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["fields"], "grandTotal")
}

func TestLogBook_DeleteSoloAdmin(t *testing.T) {
	env := newTestEnv()
	env.do(t, http.MethodPost, "/api/logbook", pkgjwt.RoleStaff, validCreateBody("BK-1"))

	resp, _ := env.do(t, http.MethodDelete, "/api/logbook?id=id-1", pkgjwt.RoleStaff, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := env.do(t, http.MethodDelete, "/api/logbook?id=id-1", pkgjwt.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Log book entry deleted successfully", body["message"])

	resp, _ = env.do(t, http.MethodDelete, "/api/logbook?id=id-1", pkgjwt.RoleAdmin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(t, http.MethodDelete, "/api/logbook", pkgjwt.RoleAdmin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogBook_Verify(t *testing.T) {
	env := newTestEnv()
	// El cuerpo puede traer el registro completo (status, _id...); esos campos se ignoran.
	resp, body := env.do(t, http.MethodPut, "/api/logbook/id-1", pkgjwt.RoleStaff,
		map[string]any{"_id": "id-1", "status": "Issued", "totalRecoveryAmount": "249.86"})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Log book entry verified and inventory updated successfully", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "Verified", data["status"])
	assert.Equal(t, 1249.86, data["grandTotal"])
	inv := body["inventory"].(map[string]any)
	assert.Len(t, inv["adjustments"], 1)
	assert.Equal(t, float64(1), inv["untracked"])
	assert.Equal(t, testUserID, env.verifier.verifiedBy)
}

func TestLogBook_MontoFueraDeRangoRetorna400(t *testing.T) {
	env := newTestEnv()
	resp, body := env.do(t, http.MethodPut, "/api/logbook/id-1", pkgjwt.RoleStaff,
		`{"electricityReadings":[{"type":"main","total":"1e20000000"}]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
	assert.Empty(t, env.verifier.verifiedBy, "no llega al caso de uso")

	in := validCreateBody("BK-1")
	in["totalAmount"] = "1000000000000"
	resp, body = env.do(t, http.MethodPost, "/api/logbook", pkgjwt.RoleStaff, in)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
}

func TestLogBook_VerifyErrores(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrAlreadyVerified, http.StatusConflict, "ALREADY_VERIFIED"},
		{domain.NewValidationError("eventType", "required for hall"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{fmt.Errorf("%w: boom", domain.ErrPersistence), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		env := newTestEnv()
		env.verifier.err = tc.err
		resp, body := env.do(t, http.MethodPut, "/api/logbook/id-1", pkgjwt.RoleAdmin, nil)
		assert.Equal(t, tc.status, resp.StatusCode, tc.code)
		assert.Equal(t, false, body["success"], tc.code)
		assert.Equal(t, tc.code, body["error"])
		assert.NotEmpty(t, body["message"])
	}
}

func TestLogBook_VerifyRolSinPermiso(t *testing.T) {
	env := newTestEnv()
	resp, _ := env.do(t, http.MethodPut, "/api/logbook/id-1", "guest", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLogBook_Receipt(t *testing.T) {
	env := newTestEnv()
	resp, _ := env.do(t, http.MethodGet, "/api/logbook/id-1/receipt", pkgjwt.RoleStaff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "logbook_BK-1.pdf")

	resp, _ = env.do(t, http.MethodGet, "/api/logbook/nope/receipt", pkgjwt.RoleStaff, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInventory_CreateSoloAdmin(t *testing.T) {
	env := newTestEnv()
	item := map[string]any{"category": "linen", "subCategory": "towel", "brand": "B", "model": "T-1", "quantityInStock": 5, "lowQuantityAlert": 1}

	resp, _ := env.do(t, http.MethodPost, "/api/inventory", pkgjwt.RoleStaff, item)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := env.do(t, http.MethodPost, "/api/inventory", pkgjwt.RoleAdmin, item)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "T-1", body["data"].(map[string]any)["model"])
}

func TestInventory_ListYGet(t *testing.T) {
	env := newTestEnv()
	resp, body := env.do(t, http.MethodGet, "/api/inventory?page=2&limit=5", pkgjwt.RoleStaff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["pagination"].(map[string]any)["page"])

	resp, _ = env.do(t, http.MethodGet, "/api/inventory/x", pkgjwt.RoleStaff, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
