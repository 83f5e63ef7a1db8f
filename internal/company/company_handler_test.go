package company_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AlexKolonitsky/mifort-timesheet/internal/company"
	companyerrors "github.com/AlexKolonitsky/mifort-timesheet/internal/company/errors"
	"github.com/AlexKolonitsky/mifort-timesheet/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeService struct {
	getByIDFn func(ctx context.Context, id string) (*company.CompanyResponse, error)
	createFn  func(ctx context.Context, ownerID string, req company.CreateCompanyRequest) (*company.CompanyResponse, error)
	updateFn  func(ctx context.Context, id string, req company.UpdateCompanyRequest) (*company.CompanyResponse, error)
}

func (f *fakeService) GetByID(ctx context.Context, id string) (*company.CompanyResponse, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeService) GetDefaults(ctx context.Context) company.Defaults {
	return company.BuildDefaultCompany(time.Now().UTC())
}

func (f *fakeService) Create(ctx context.Context, ownerID string, req company.CreateCompanyRequest) (*company.CompanyResponse, error) {
	return f.createFn(ctx, ownerID, req)
}

func (f *fakeService) Update(ctx context.Context, id string, req company.UpdateCompanyRequest) (*company.CompanyResponse, error) {
	return f.updateFn(ctx, id, req)
}

func newTestContext(t *testing.T, method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestHandler_GetDefaults(t *testing.T) {
	handler := company.NewHandler(&fakeService{}, zap.NewNop())
	c, w := newTestContext(t, http.MethodGet, "/companies/default", nil)

	handler.GetDefaults(c)

	assert.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, true, envelope["ok"])

	data := envelope["data"].(map[string]any)
	assert.Len(t, data["periods"], 54)
	assert.Len(t, data["availablePositions"], 12)
}

func TestHandler_GetById(t *testing.T) {
	id := uuid.New().String()
	svc := &fakeService{
		getByIDFn: func(ctx context.Context, gotID string) (*company.CompanyResponse, error) {
			assert.Equal(t, id, gotID)
			return &company.CompanyResponse{ID: gotID, Name: "Acme"}, nil
		},
	}
	handler := company.NewHandler(svc, zap.NewNop())

	c, w := newTestContext(t, http.MethodGet, "/companies/"+id, nil)
	c.Params = gin.Params{{Key: "id", Value: id}}

	handler.GetById(c)

	assert.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, true, envelope["ok"])
	assert.Equal(t, "Acme", envelope["data"].(map[string]any)["name"])
}

func TestHandler_GetById_NotFound(t *testing.T) {
	svc := &fakeService{
		getByIDFn: func(ctx context.Context, id string) (*company.CompanyResponse, error) {
			return nil, companyerrors.ErrCompanyNotFound
		},
	}
	handler := company.NewHandler(svc, zap.NewNop())

	c, w := newTestContext(t, http.MethodGet, "/companies/"+uuid.New().String(), nil)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

	handler.GetById(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, false, envelope["ok"])
	assert.Equal(t, apperror.CodeNotFound, envelope["error"].(map[string]any)["code"])
}

func TestHandler_GetOwn(t *testing.T) {
	companyID := uuid.New().String()
	svc := &fakeService{
		getByIDFn: func(ctx context.Context, gotID string) (*company.CompanyResponse, error) {
			assert.Equal(t, companyID, gotID)
			return &company.CompanyResponse{ID: gotID, Name: "Mine"}, nil
		},
	}
	handler := company.NewHandler(svc, zap.NewNop())

	c, w := newTestContext(t, http.MethodGet, "/companies/my", nil)
	c.Set("company_id", companyID)

	handler.GetOwn(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Mine", decodeEnvelope(t, w)["data"].(map[string]any)["name"])
}

func TestHandler_Create(t *testing.T) {
	ownerID := uuid.New().String()
	svc := &fakeService{
		createFn: func(ctx context.Context, gotOwner string, req company.CreateCompanyRequest) (*company.CompanyResponse, error) {
			assert.Equal(t, ownerID, gotOwner)
			assert.Equal(t, "Acme", req.Name)
			assert.Equal(t, []string{"a@x.com"}, req.Emails)
			return &company.CompanyResponse{ID: uuid.New().String(), Name: req.Name, OwnerID: gotOwner}, nil
		},
	}
	handler := company.NewHandler(svc, zap.NewNop())

	c, w := newTestContext(t, http.MethodPost, "/companies", gin.H{
		"name":   "Acme",
		"emails": []string{"a@x.com"},
	})
	c.Set("user_id", ownerID)

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, true, envelope["ok"])
	assert.Equal(t, "Acme", envelope["data"].(map[string]any)["name"])
}

func TestHandler_Create_MissingName(t *testing.T) {
	handler := company.NewHandler(&fakeService{}, zap.NewNop())

	c, w := newTestContext(t, http.MethodPost, "/companies", gin.H{
		"emails": []string{"a@x.com"},
	})

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, false, envelope["ok"])
	assert.Equal(t, apperror.CodeInvalidInput, envelope["error"].(map[string]any)["code"])
}

func TestHandler_Update(t *testing.T) {
	id := uuid.New().String()
	svc := &fakeService{
		updateFn: func(ctx context.Context, gotID string, req company.UpdateCompanyRequest) (*company.CompanyResponse, error) {
			assert.Equal(t, id, gotID)
			assert.Equal(t, "Renamed", req.Name)
			return &company.CompanyResponse{ID: gotID, Name: req.Name}, nil
		},
	}
	handler := company.NewHandler(svc, zap.NewNop())

	c, w := newTestContext(t, http.MethodPut, "/companies/"+id, gin.H{
		"name": "Renamed",
	})
	c.Params = gin.Params{{Key: "id", Value: id}}

	handler.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Renamed", decodeEnvelope(t, w)["data"].(map[string]any)["name"])
}

func TestHandler_Update_InvalidBody(t *testing.T) {
	handler := company.NewHandler(&fakeService{}, zap.NewNop())

	c, w := newTestContext(t, http.MethodPut, "/companies/"+uuid.New().String(), gin.H{
		"name":   "Acme",
		"emails": []string{"not-an-email"},
	})
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

	handler.Update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decodeEnvelope(t, w)["ok"])
}
