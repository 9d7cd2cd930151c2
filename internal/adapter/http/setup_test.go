package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"finvault-backend/internal/adapter/repository/mysql"
	investmentDomain "finvault-backend/internal/domain/investment"
	loanDomain "finvault-backend/internal/domain/loan"
	walletDomain "finvault-backend/internal/domain/wallet"
	"finvault-backend/internal/testutil/dbtest"
	investmentUC "finvault-backend/internal/usecase/investment"
	"finvault-backend/internal/usecase/ledger"
	loanUC "finvault-backend/internal/usecase/loan"
	"finvault-backend/pkg/id"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type testServer struct {
	e  *echo.Echo
	db *gorm.DB

	ledger      *ledger.Usecase
	investments *investmentUC.Usecase
	loans       *loanUC.Usecase
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := dbtest.Open(t)
	wallets := mysql.NewWalletRepository(db)
	transactions := mysql.NewTransactionRepository(db)
	investments := mysql.NewInvestmentRepository(db)
	plans := mysql.NewInvestmentPlanRepository(db)
	loans := mysql.NewLoanRepository(db)
	products := mysql.NewLoanProductRepository(db)
	unit := mysql.NewGormUoW(db)

	ledgerUC := ledger.NewUsecase(unit, wallets, transactions, nil, nil)
	invUC := investmentUC.NewUsecase(unit, investments, plans, nil, nil)
	lnUC := loanUC.NewUsecase(unit, loans, products, nil, nil)

	walletH := NewWalletHandler(ledgerUC)
	investmentH := NewInvestmentHandler(invUC)
	loanH := NewLoanHandler(lnUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	e.GET("/health", NewHandler().Health)
	e.POST("/wallets", walletH.CreateWallet)
	e.GET("/wallets/:wallet_id", walletH.GetWallet)
	e.GET("/wallets/:wallet_id/transactions", walletH.ListTransactions)
	e.POST("/transactions", walletH.CreateTransaction)
	e.POST("/transactions/:transaction_id/approve", walletH.ApproveTransaction)
	e.POST("/transactions/:transaction_id/reject", walletH.RejectTransaction)
	e.POST("/deposits/crypto", walletH.CryptoDeposit)
	e.GET("/investment-plans", investmentH.ListPlans)
	e.POST("/investments", investmentH.CreateInvestment)
	e.GET("/investments/:investment_id", investmentH.GetInvestment)
	e.PATCH("/investments/:investment_id/status", investmentH.UpdateStatus)
	e.POST("/investments/:investment_id/mature", investmentH.Mature)
	e.POST("/loans", loanH.CreateApplication)
	e.GET("/loans/:loan_id", loanH.GetLoan)
	e.PATCH("/loans/:loan_id/status", loanH.UpdateStatus)
	e.POST("/loans/:loan_id/payments", loanH.MakePayment)

	return &testServer{e: e, db: db, ledger: ledgerUC, investments: invUC, loans: lnUC}
}

func (s *testServer) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) seedWallet(t *testing.T, balance float64) *walletDomain.Wallet {
	t.Helper()
	w := &walletDomain.Wallet{WalletID: id.NewID32(), UserID: id.NewID32(), Balance: balance, Currency: "USD"}
	if err := mysql.NewWalletRepository(s.db).Create(context.Background(), w); err != nil {
		t.Fatalf("seed wallet: %v", err)
	}
	return w
}

func (s *testServer) seedPlan(t *testing.T) *investmentDomain.Plan {
	t.Helper()
	p := &investmentDomain.Plan{
		PlanID:        id.NewID32(),
		Name:          "Growth",
		MinAmount:     100,
		MaxAmount:     1000,
		ROIPercentage: 12,
		DurationDays:  30,
		IsActive:      true,
	}
	if err := mysql.NewInvestmentPlanRepository(s.db).Create(context.Background(), p); err != nil {
		t.Fatalf("seed plan: %v", err)
	}
	return p
}

func (s *testServer) seedProduct(t *testing.T) *loanDomain.Product {
	t.Helper()
	p := &loanDomain.Product{
		ProductID:     id.NewID32(),
		Name:          "Personal",
		MinAmount:     500,
		MaxAmount:     10000,
		InterestRate:  10,
		MinTermMonths: 6,
		MaxTermMonths: 36,
		IsActive:      true,
	}
	if err := mysql.NewLoanProductRepository(s.db).Create(context.Background(), p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
