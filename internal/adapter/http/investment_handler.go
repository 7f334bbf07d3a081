package http

import (
	"net/http"
	"time"

	"chama-backend/internal/adapter/middleware"
	investUC "chama-backend/internal/usecase/investment"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type InvestmentHandler struct{ uc *investUC.Usecase }

func NewInvestmentHandler(uc *investUC.Usecase) *InvestmentHandler {
	return &InvestmentHandler{uc: uc}
}

type createInvestmentReq struct {
	MemberID       string  `json:"member_id" validate:"required,hex32"`
	ProjectName    string  `json:"project_name" validate:"required,min=3"`
	Amount         float64 `json:"amount" validate:"required,gt=0,dec2"`
	ExpectedReturn float64 `json:"expected_return" validate:"gte=0"`
	MaturityDate   string  `json:"maturity_date"` // RFC 3339, optional
}

type investmentPaymentReq struct {
	Amount          float64 `json:"amount" validate:"required,gt=0,dec2"`
	Method          string  `json:"method"`
	ReferenceNumber string  `json:"reference_number"`
}

func (h *InvestmentHandler) CreateInvestment(c echo.Context) error {
	var req createInvestmentReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	in := investUC.CreateInput{
		GroupID:        c.Param("group_id"),
		MemberID:       req.MemberID,
		ProjectName:    req.ProjectName,
		Amount:         decimal.NewFromFloat(req.Amount).Round(2),
		ExpectedReturn: decimal.NewFromFloat(req.ExpectedReturn).Round(2),
	}
	if req.MaturityDate != "" {
		t, err := time.Parse(time.RFC3339, req.MaturityDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "maturity_date must be RFC 3339"})
		}
		utc := t.UTC()
		in.MaturityDate = &utc
	}
	dto, err := h.uc.Create(c.Request().Context(), middleware.CallerFrom(c), in)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *InvestmentHandler) GetInvestment(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("investment_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *InvestmentHandler) RecordPayment(c echo.Context) error {
	var req investmentPaymentReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	dto, err := h.uc.RecordPayment(c.Request().Context(), middleware.CallerFrom(c), c.Param("investment_id"), investUC.PaymentInput{
		Amount:          decimal.NewFromFloat(req.Amount).Round(2),
		Method:          req.Method,
		ReferenceNumber: req.ReferenceNumber,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *InvestmentHandler) EvaluateMaturity(c echo.Context) error {
	var asOf *time.Time
	if raw := c.QueryParam("as_of"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "as_of must be RFC 3339"})
		}
		utc := t.UTC()
		asOf = &utc
	}
	dto, err := h.uc.EvaluateMaturity(c.Request().Context(), middleware.CallerFrom(c), c.Param("investment_id"), asOf)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// SweepInvestments settles every active investment past its maturity date.
func (h *InvestmentHandler) SweepInvestments(c echo.Context) error {
	var asOf *time.Time
	if raw := c.QueryParam("as_of"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "as_of must be RFC 3339"})
		}
		utc := t.UTC()
		asOf = &utc
	}
	settled, err := h.uc.SweepMaturities(c.Request().Context(), middleware.CallerFrom(c), asOf)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"settled": settled})
}

func (h *InvestmentHandler) WithdrawInvestment(c echo.Context) error {
	dto, err := h.uc.Withdraw(c.Request().Context(), middleware.CallerFrom(c), c.Param("investment_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *InvestmentHandler) RecalculateInvestment(c echo.Context) error {
	dto, err := h.uc.Recalculate(c.Request().Context(), c.Param("investment_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
