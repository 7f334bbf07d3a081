package http

import (
	"net/http"

	"chama-backend/internal/adapter/middleware"
	loanUC "chama-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanHandler struct{ uc *loanUC.Usecase }

func NewLoanHandler(uc *loanUC.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type applyLoanReq struct {
	MemberID     string   `json:"member_id" validate:"required,hex32"`
	Amount       float64  `json:"amount" validate:"required,gt=0,dec2"`
	InterestRate *float64 `json:"interest_rate" validate:"omitempty,gte=0,lte=1"`
	TermMonths   int      `json:"term_months" validate:"required,gt=0"`
	Purpose      string   `json:"purpose"`
}

type repayLoanReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
	Method string  `json:"method"`
	Note   string  `json:"note"`
}

func (h *LoanHandler) ApplyForLoan(c echo.Context) error {
	var req applyLoanReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	in := loanUC.ApplyInput{
		GroupID:    c.Param("group_id"),
		MemberID:   req.MemberID,
		Amount:     decimal.NewFromFloat(req.Amount).Round(2),
		TermMonths: req.TermMonths,
		Purpose:    req.Purpose,
	}
	if req.InterestRate != nil {
		rate := decimal.NewFromFloat(*req.InterestRate)
		in.InterestRate = &rate
	}
	dto, err := h.uc.Apply(c.Request().Context(), middleware.CallerFrom(c), in)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ApproveLoan(c echo.Context) error {
	dto, err := h.uc.Approve(c.Request().Context(), middleware.CallerFrom(c), c.Param("loan_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) RejectLoan(c echo.Context) error {
	dto, err := h.uc.Reject(c.Request().Context(), middleware.CallerFrom(c), c.Param("loan_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) RecordRepayment(c echo.Context) error {
	var req repayLoanReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	dto, err := h.uc.RecordRepayment(c.Request().Context(), middleware.CallerFrom(c), c.Param("loan_id"), loanUC.RepayInput{
		Amount: decimal.NewFromFloat(req.Amount).Round(2),
		Method: req.Method,
		Note:   req.Note,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) ListRepayments(c echo.Context) error {
	out, err := h.uc.ListRepayments(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) MonthlyPayment(c echo.Context) error {
	amount, err := h.uc.MonthlyPayment(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loan_id": c.Param("loan_id"), "monthly_payment": amount})
}

func (h *LoanHandler) RecalculateLoan(c echo.Context) error {
	dto, err := h.uc.Recalculate(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
