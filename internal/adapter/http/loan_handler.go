package http

import (
	"net/http"

	loanDomain "finvault-backend/internal/domain/loan"
	"finvault-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	UserID     string  `json:"user_id" validate:"required,hex32"`
	ProductID  string  `json:"product_id" validate:"required,hex32"`
	Amount     float64 `json:"amount" validate:"required,gt=0,dec2"`
	TermMonths int     `json:"term_months" validate:"required,gt=0"`
}

func (h *LoanHandler) CreateApplication(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	l, err := h.uc.CreateApplication(c.Request().Context(), loan.CreateApplicationInput{
		UserID:     req.UserID,
		ProductID:  req.ProductID,
		Amount:     req.Amount,
		TermMonths: req.TermMonths,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	l, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LoanHandler) ListUserLoans(c echo.Context) error {
	loans, err := h.uc.ListByUser(c.Request().Context(), c.Param("user_id"),
		loanDomain.Status(c.QueryParam("status")))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *LoanHandler) ListProducts(c echo.Context) error {
	products, err := h.uc.ActiveProducts(c.Request().Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

type updateLoanStatusReq struct {
	Status          string `json:"status" validate:"required,oneof=approved active rejected closed defaulted"`
	RejectionReason string `json:"rejection_reason"`
}

func (h *LoanHandler) UpdateStatus(c echo.Context) error {
	var req updateLoanStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	l, err := h.uc.UpdateStatus(c.Request().Context(), c.Param("loan_id"),
		loanDomain.Status(req.Status), req.RejectionReason)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

type makePaymentReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
}

func (h *LoanHandler) MakePayment(c echo.Context) error {
	var req makePaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	l, err := h.uc.MakePayment(c.Request().Context(), c.Param("loan_id"), req.Amount)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, l)
}
