package http

import (
	"errors"
	"net/http"

	"chama-backend/internal/domain/access"
	contribDomain "chama-backend/internal/domain/contribution"
	groupDomain "chama-backend/internal/domain/group"
	investDomain "chama-backend/internal/domain/investment"
	loanDomain "chama-backend/internal/domain/loan"
	memberDomain "chama-backend/internal/domain/member"
	"chama-backend/internal/domain/money"
	memberUC "chama-backend/internal/usecase/member"

	groupUC "chama-backend/internal/usecase/group"

	"github.com/labstack/echo/v4"
)

// statusFor maps engine errors onto response codes:
// not found, conflict, forbidden, bad input, invalid state transition.
func statusFor(err error) int {
	switch {
	case errors.Is(err, groupDomain.ErrNotFound),
		errors.Is(err, memberDomain.ErrNotFound),
		errors.Is(err, contribDomain.ErrNotFound),
		errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, investDomain.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, memberDomain.ErrDuplicateMember),
		errors.Is(err, contribDomain.ErrDuplicateReceipt),
		errors.Is(err, investDomain.ErrDuplicateReference),
		errors.Is(err, loanDomain.ErrPendingExists),
		errors.Is(err, memberUC.ErrGroupFull):
		return http.StatusConflict

	case errors.Is(err, access.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, money.ErrNotPositive),
		errors.Is(err, money.ErrTooManyPlaces),
		errors.Is(err, groupUC.ErrBadName),
		errors.Is(err, loanDomain.ErrBadTerm),
		errors.Is(err, loanDomain.ErrBadInterestRate),
		errors.Is(err, investDomain.ErrBadExpectedReturn):
		return http.StatusBadRequest

	case errors.Is(err, groupDomain.ErrInvalidTransition),
		errors.Is(err, groupDomain.ErrArchived),
		errors.Is(err, groupDomain.ErrTargetNotReached),
		errors.Is(err, memberDomain.ErrInvalidTransition),
		errors.Is(err, memberDomain.ErrNotActive),
		errors.Is(err, contribDomain.ErrInvalidTransition),
		errors.Is(err, loanDomain.ErrInvalidTransition),
		errors.Is(err, loanDomain.ErrAlreadyProcessed),
		errors.Is(err, loanDomain.ErrNotActive),
		errors.Is(err, loanDomain.ErrSelfApproval),
		errors.Is(err, investDomain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeErr(c echo.Context, err error) error {
	return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
}

// bindAndValidate binds and validates the request body; on failure it writes
// the error response itself and reports false.
func bindAndValidate(c echo.Context, req any) bool {
	if err := c.Bind(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
		return false
	}
	if err := c.Validate(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
		return false
	}
	return true
}
