package companyerrors

import (
	"net/http"

	"github.com/AlexKolonitsky/mifort-timesheet/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)

	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)

	ErrInvalidOwnerID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid owner ID",
		http.StatusBadRequest,
	)
)
