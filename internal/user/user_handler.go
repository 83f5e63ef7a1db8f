package user

import (
	"net/http"

	"github.com/AlexKolonitsky/mifort-timesheet/internal/shared/apperror"
	"github.com/AlexKolonitsky/mifort-timesheet/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	repo   Repository
	logger *zap.Logger
}

func NewHandler(repo Repository, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("user.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.handler")
	}
	return &Handler{repo: repo, logger: l}
}

// List returns the members of the caller's company.
func (h *Handler) List(c *gin.Context) {
	companyID := c.GetString("company_id")
	h.logger.Debug("http list users", zap.String("company_id", companyID))

	rows, err := h.repo.FindAllByCompany(c.Request.Context(), companyID)
	if err != nil {
		h.logger.Error("list users failed", zap.String("company_id", companyID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError,
			apperror.CodePersistenceError, "Users could not be loaded", nil)
		return
	}

	resp := make([]UserResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, mapToResponse(&rows[i]))
	}

	response.Success(c, http.StatusOK, resp)
}
