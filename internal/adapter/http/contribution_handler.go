package http

import (
	"net/http"

	"chama-backend/internal/adapter/middleware"
	contribUC "chama-backend/internal/usecase/contribution"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ContributionHandler struct{ uc *contribUC.Usecase }

func NewContributionHandler(uc *contribUC.Usecase) *ContributionHandler {
	return &ContributionHandler{uc: uc}
}

type recordContributionReq struct {
	MemberID      string  `json:"member_id" validate:"required,hex32"`
	Amount        float64 `json:"amount" validate:"required,gt=0,dec2"`
	Note          string  `json:"note"`
	ReceiptNumber string  `json:"receipt_number"`
}

func (h *ContributionHandler) RecordContribution(c echo.Context) error {
	var req recordContributionReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	dto, err := h.uc.Record(c.Request().Context(), middleware.CallerFrom(c), contribUC.RecordInput{
		GroupID:       c.Param("group_id"),
		MemberID:      req.MemberID,
		Amount:        decimal.NewFromFloat(req.Amount).Round(2),
		Note:          req.Note,
		ReceiptNumber: req.ReceiptNumber,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ContributionHandler) ConfirmContribution(c echo.Context) error {
	dto, err := h.uc.Confirm(c.Request().Context(), middleware.CallerFrom(c), c.Param("contribution_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContributionHandler) RejectContribution(c echo.Context) error {
	dto, err := h.uc.Reject(c.Request().Context(), middleware.CallerFrom(c), c.Param("contribution_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContributionHandler) ListContributions(c echo.Context) error {
	out, err := h.uc.ListByGroup(c.Request().Context(), c.Param("group_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ContributionHandler) RecalculateBalance(c echo.Context) error {
	amount, err := h.uc.Recalculate(c.Request().Context(), c.Param("group_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"group_id": c.Param("group_id"), "current_amount": amount})
}
