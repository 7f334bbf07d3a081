package http

import (
	"net/http"

	"chama-backend/internal/adapter/middleware"
	groupUC "chama-backend/internal/usecase/group"

	"github.com/shopspring/decimal"

	"github.com/labstack/echo/v4"
)

type GroupHandler struct{ uc *groupUC.Usecase }

func NewGroupHandler(uc *groupUC.Usecase) *GroupHandler { return &GroupHandler{uc: uc} }

type createGroupReq struct {
	Name         string  `json:"name" validate:"required,min=3"`
	Description  string  `json:"description"`
	TargetAmount float64 `json:"target_amount" validate:"required,gt=0,dec2"`
	IsPublic     *bool   `json:"is_public"`
	MaxMembers   int     `json:"max_members" validate:"gte=0"`
}

func (h *GroupHandler) CreateGroup(c echo.Context) error {
	var req createGroupReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	dto, err := h.uc.Create(c.Request().Context(), middleware.CallerFrom(c), groupUC.CreateInput{
		Name:         req.Name,
		Description:  req.Description,
		TargetAmount: decimal.NewFromFloat(req.TargetAmount).Round(2),
		IsPublic:     isPublic,
		MaxMembers:   req.MaxMembers,
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *GroupHandler) GetGroup(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("group_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *GroupHandler) ListGroups(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *GroupHandler) ArchiveGroup(c echo.Context) error {
	dto, err := h.uc.Archive(c.Request().Context(), middleware.CallerFrom(c), c.Param("group_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *GroupHandler) DeleteGroup(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), middleware.CallerFrom(c), c.Param("group_id")); err != nil {
		return writeErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
