package http

import (
	"errors"
	"net/http"
	"testing"

	"chama-backend/internal/domain/access"
	contribDomain "chama-backend/internal/domain/contribution"
	groupDomain "chama-backend/internal/domain/group"
	investDomain "chama-backend/internal/domain/investment"
	loanDomain "chama-backend/internal/domain/loan"
	memberDomain "chama-backend/internal/domain/member"
	"chama-backend/internal/domain/money"
	memberUC "chama-backend/internal/usecase/member"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"group not found", groupDomain.ErrNotFound, http.StatusNotFound},
		{"loan not found", loanDomain.ErrNotFound, http.StatusNotFound},
		{"investment not found", investDomain.ErrNotFound, http.StatusNotFound},

		{"duplicate member", memberDomain.ErrDuplicateMember, http.StatusConflict},
		{"duplicate receipt", contribDomain.ErrDuplicateReceipt, http.StatusConflict},
		{"duplicate reference", investDomain.ErrDuplicateReference, http.StatusConflict},
		{"pending loan exists", loanDomain.ErrPendingExists, http.StatusConflict},
		{"group full", memberUC.ErrGroupFull, http.StatusConflict},

		{"forbidden", access.ErrForbidden, http.StatusForbidden},

		{"non-positive amount", money.ErrNotPositive, http.StatusBadRequest},
		{"too many places", money.ErrTooManyPlaces, http.StatusBadRequest},
		{"bad term", loanDomain.ErrBadTerm, http.StatusBadRequest},
		{"bad rate", loanDomain.ErrBadInterestRate, http.StatusBadRequest},

		{"archived group", groupDomain.ErrArchived, http.StatusUnprocessableEntity},
		{"target not reached", groupDomain.ErrTargetNotReached, http.StatusUnprocessableEntity},
		{"contribution settled twice", contribDomain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{"loan already processed", loanDomain.ErrAlreadyProcessed, http.StatusUnprocessableEntity},
		{"self approval", loanDomain.ErrSelfApproval, http.StatusUnprocessableEntity},
		{"inactive member", memberDomain.ErrNotActive, http.StatusUnprocessableEntity},
		{"investment transition", investDomain.ErrInvalidTransition, http.StatusUnprocessableEntity},

		{"unknown error", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Errorf("%s: statusFor = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestStatusFor_WrappedErrors(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), loanDomain.ErrPendingExists)
	if got := statusFor(wrapped); got != http.StatusConflict {
		t.Errorf("wrapped sentinel: statusFor = %d, want 409", got)
	}
}
