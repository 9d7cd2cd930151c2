package http

import (
	"errors"
	"net/http"

	investmentDomain "finvault-backend/internal/domain/investment"
	loanDomain "finvault-backend/internal/domain/loan"
	walletDomain "finvault-backend/internal/domain/wallet"

	"github.com/labstack/echo/v4"
)

// errorStatus maps the ledger's error taxonomy onto HTTP codes: unknown ids →
// 404, illegal transitions → 409, out-of-range input → 400, balance problems →
// 422.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, walletDomain.ErrWalletNotFound),
		errors.Is(err, walletDomain.ErrTransactionNotFound),
		errors.Is(err, investmentDomain.ErrNotFound),
		errors.Is(err, investmentDomain.ErrPlanNotFound),
		errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, loanDomain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, loanDomain.ErrNotActive):
		return http.StatusConflict
	}

	var (
		insufficient *walletDomain.InsufficientBalanceError
		outstanding  *loanDomain.OutstandingBalanceError
		transition   *loanDomain.InvalidTransitionError
	)
	switch {
	case errors.As(err, &insufficient), errors.As(err, &outstanding):
		return http.StatusUnprocessableEntity
	case errors.As(err, &transition):
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

func respondErr(c echo.Context, err error) error {
	return c.JSON(errorStatus(err), ErrorResponse{Error: err.Error()})
}
