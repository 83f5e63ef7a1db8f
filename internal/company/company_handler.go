package company

import (
	"net/http"

	"github.com/AlexKolonitsky/mifort-timesheet/internal/shared/apperror"
	"github.com/AlexKolonitsky/mifort-timesheet/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc    Service
	logger *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("company.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.handler")
	}
	return &Handler{svc: service, logger: l}
}

func writeError(c *gin.Context, err error) {
	if appErr, ok := err.(*apperror.AppError); ok {
		response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
		return
	}

	response.Error(c, http.StatusInternalServerError,
		apperror.CodeInternalError, "Internal server error", nil)
}

// GetDefaults serves the canonical default company structure without
// persisting anything.
func (h *Handler) GetDefaults(c *gin.Context) {
	defaults := h.svc.GetDefaults(c.Request.Context())
	response.Success(c, http.StatusOK, defaults)
}

// GetOwn resolves the company from the authenticated principal's claims.
func (h *Handler) GetOwn(c *gin.Context) {
	companyID := c.GetString("company_id")
	h.logger.Debug("http get own company", zap.String("company_id", companyID))

	resp, err := h.svc.GetByID(c.Request.Context(), companyID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) GetById(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http get company", zap.String("company_id", id))

	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	ownerID := c.GetString("user_id")
	h.logger.Debug("http create company",
		zap.String("name", req.Name),
		zap.String("owner_id", ownerID),
	)

	resp, err := h.svc.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	h.logger.Debug("http update company", zap.String("company_id", id))

	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}
