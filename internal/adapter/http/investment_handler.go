package http

import (
	"net/http"

	investmentDomain "finvault-backend/internal/domain/investment"
	"finvault-backend/internal/usecase/investment"

	"github.com/labstack/echo/v4"
)

type InvestmentHandler struct{ uc *investment.Usecase }

func NewInvestmentHandler(uc *investment.Usecase) *InvestmentHandler {
	return &InvestmentHandler{uc: uc}
}

type createInvestmentReq struct {
	UserID string  `json:"user_id" validate:"required,hex32"`
	PlanID string  `json:"plan_id" validate:"required,hex32"`
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
}

func (h *InvestmentHandler) CreateInvestment(c echo.Context) error {
	var req createInvestmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	inv, err := h.uc.CreateInvestment(c.Request().Context(), investment.CreateInvestmentInput{
		UserID: req.UserID,
		PlanID: req.PlanID,
		Amount: req.Amount,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, inv)
}

func (h *InvestmentHandler) GetInvestment(c echo.Context) error {
	inv, err := h.uc.Get(c.Request().Context(), c.Param("investment_id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *InvestmentHandler) ListUserInvestments(c echo.Context) error {
	invs, err := h.uc.ListByUser(c.Request().Context(), c.Param("user_id"),
		investmentDomain.Status(c.QueryParam("status")))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, invs)
}

func (h *InvestmentHandler) ListPlans(c echo.Context) error {
	plans, err := h.uc.ActivePlans(c.Request().Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, plans)
}

type updateInvestmentStatusReq struct {
	Status string `json:"status" validate:"required,oneof=completed cancelled"`
}

func (h *InvestmentHandler) UpdateStatus(c echo.Context) error {
	var req updateInvestmentStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	inv, err := h.uc.UpdateStatus(c.Request().Context(), c.Param("investment_id"), investmentDomain.Status(req.Status))
	if err != nil {
		return respondErr(c, err)
	}
	if inv == nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "investment not found"})
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *InvestmentHandler) Mature(c echo.Context) error {
	inv, err := h.uc.Mature(c.Request().Context(), c.Param("investment_id"))
	if err != nil {
		return respondErr(c, err)
	}
	if inv == nil {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "investment is not active"})
	}
	return c.JSON(http.StatusOK, inv)
}
