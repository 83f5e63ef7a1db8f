package user_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AlexKolonitsky/mifort-timesheet/internal/user"
	userMock "github.com/AlexKolonitsky/mifort-timesheet/internal/user/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newListContext(t *testing.T, companyID string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/users", nil)
	c.Set("company_id", companyID)
	return c, w
}

func TestHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	companyID := uuid.New()
	mockRepo := userMock.NewMockRepository(ctrl)
	handler := user.NewHandler(mockRepo, zap.NewNop())

	mockRepo.EXPECT().FindAllByCompany(gomock.Any(), companyID.String()).Return([]user.User{
		{
			ID:          uuid.New(),
			CompanyID:   companyID,
			Email:       "a@x.com",
			DisplayName: "a@x.com",
			Role:        user.RoleEmployee,
			Password:    "$2a$10$secret",
			IsActive:    true,
			CreatedAt:   time.Date(2024, 5, 14, 9, 30, 0, 0, time.UTC),
		},
	}, nil)

	c, w := newListContext(t, companyID.String())
	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var envelope map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope["ok"])

	data := envelope["data"].([]any)
	assert.Len(t, data, 1)

	first := data[0].(map[string]any)
	assert.Equal(t, "a@x.com", first["email"])
	assert.Equal(t, user.RoleEmployee, first["role"])
	assert.NotContains(t, w.Body.String(), "secret", "credentials never leave the server")
}

func TestHandler_List_RepoFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMock.NewMockRepository(ctrl)
	handler := user.NewHandler(mockRepo, zap.NewNop())

	mockRepo.EXPECT().FindAllByCompany(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

	c, w := newListContext(t, uuid.New().String())
	handler.List(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var envelope map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, false, envelope["ok"])
}
