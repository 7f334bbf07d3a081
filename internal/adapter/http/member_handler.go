package http

import (
	"net/http"

	"chama-backend/internal/adapter/middleware"
	memberUC "chama-backend/internal/usecase/member"

	"github.com/labstack/echo/v4"
)

type MemberHandler struct{ uc *memberUC.Usecase }

func NewMemberHandler(uc *memberUC.Usecase) *MemberHandler { return &MemberHandler{uc: uc} }

func (h *MemberHandler) JoinGroup(c echo.Context) error {
	dto, err := h.uc.Join(c.Request().Context(), middleware.CallerFrom(c), c.Param("group_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *MemberHandler) ListMembers(c echo.Context) error {
	out, err := h.uc.ListByGroup(c.Request().Context(), c.Param("group_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MemberHandler) ApproveMember(c echo.Context) error {
	dto, err := h.uc.Approve(c.Request().Context(), middleware.CallerFrom(c), c.Param("member_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *MemberHandler) SuspendMember(c echo.Context) error {
	dto, err := h.uc.Suspend(c.Request().Context(), middleware.CallerFrom(c), c.Param("member_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *MemberHandler) ReinstateMember(c echo.Context) error {
	dto, err := h.uc.Reinstate(c.Request().Context(), middleware.CallerFrom(c), c.Param("member_id"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
