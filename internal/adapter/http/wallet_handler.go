package http

import (
	"net/http"

	walletDomain "finvault-backend/internal/domain/wallet"
	"finvault-backend/internal/usecase/ledger"

	"github.com/labstack/echo/v4"
)

type WalletHandler struct{ uc *ledger.Usecase }

func NewWalletHandler(uc *ledger.Usecase) *WalletHandler { return &WalletHandler{uc: uc} }

type createTransactionReq struct {
	UserID       string  `json:"user_id" validate:"required,hex32"`
	WalletID     string  `json:"wallet_id" validate:"required,hex32"`
	Amount       float64 `json:"amount" validate:"required,gt=0,dec2"`
	Type         string  `json:"type" validate:"required,oneof=deposit withdrawal investment loan_payment interest"`
	Description  string  `json:"description"`
	Reference    string  `json:"reference"`
	InvestmentID string  `json:"investment_id" validate:"omitempty,hex32"`
	LoanID       string  `json:"loan_id" validate:"omitempty,hex32"`
	Hold         bool    `json:"hold"`
}

func (h *WalletHandler) CreateTransaction(c echo.Context) error {
	var req createTransactionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	typ := walletDomain.TransactionType(req.Type)
	// Withdrawal pre-check: the caller-facing surface verifies solvency before
	// creating the movement; the ledger re-checks at commit time anyway.
	if typ.Direction() < 0 {
		w, err := h.uc.GetWallet(c.Request().Context(), req.WalletID)
		if err != nil {
			return respondErr(c, err)
		}
		if w.Balance < req.Amount {
			return respondErr(c, &walletDomain.InsufficientBalanceError{Available: w.Balance, Requested: req.Amount})
		}
	}

	txn, err := h.uc.CreateTransaction(c.Request().Context(), ledger.PostInput{
		UserID:       req.UserID,
		WalletID:     req.WalletID,
		Amount:       req.Amount,
		Type:         typ,
		Description:  req.Description,
		Reference:    req.Reference,
		InvestmentID: req.InvestmentID,
		LoanID:       req.LoanID,
		Hold:         req.Hold,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, txn)
}

func (h *WalletHandler) ApproveTransaction(c echo.Context) error {
	txn, err := h.uc.ApproveTransaction(c.Request().Context(), c.Param("transaction_id"))
	if err != nil {
		return respondErr(c, err)
	}
	if txn == nil {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "transaction is not pending"})
	}
	return c.JSON(http.StatusOK, txn)
}

type rejectTransactionReq struct {
	Reason string `json:"reason"`
}

func (h *WalletHandler) RejectTransaction(c echo.Context) error {
	var req rejectTransactionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	txn, err := h.uc.RejectTransaction(c.Request().Context(), c.Param("transaction_id"), req.Reason)
	if err != nil {
		return respondErr(c, err)
	}
	if txn == nil {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "transaction is not pending"})
	}
	return c.JSON(http.StatusOK, txn)
}

type createWalletReq struct {
	UserID   string `json:"user_id" validate:"required,hex32"`
	Currency string `json:"currency" validate:"omitempty,len=3"`
}

func (h *WalletHandler) CreateWallet(c echo.Context) error {
	var req createWalletReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	w, err := h.uc.CreateWallet(c.Request().Context(), req.UserID, req.Currency)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, w)
}

func (h *WalletHandler) GetWallet(c echo.Context) error {
	w, err := h.uc.GetWallet(c.Request().Context(), c.Param("wallet_id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, w)
}

func (h *WalletHandler) GetUserWallet(c echo.Context) error {
	w, err := h.uc.GetWalletByUserID(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, w)
}

func (h *WalletHandler) ListTransactions(c echo.Context) error {
	txns, err := h.uc.ListWalletTransactions(c.Request().Context(), c.Param("wallet_id"),
		walletDomain.TransactionType(c.QueryParam("type")), 100, 0)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, txns)
}

type cryptoDepositReq struct {
	UserID            string  `json:"user_id" validate:"required,hex32"`
	Amount            float64 `json:"amount" validate:"required,gt=0"`
	Currency          string  `json:"currency" validate:"required"`
	ExternalReference string  `json:"external_reference" validate:"required"`
}

// CryptoDeposit is the provider boundary: signature verification happens
// upstream, this endpoint only applies the ledger effect.
func (h *WalletHandler) CryptoDeposit(c echo.Context) error {
	var req cryptoDepositReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	txn, err := h.uc.RecordExternalDeposit(c.Request().Context(), ledger.ExternalDepositInput{
		UserID:            req.UserID,
		Amount:            req.Amount,
		Currency:          req.Currency,
		ExternalReference: req.ExternalReference,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, txn)
}
