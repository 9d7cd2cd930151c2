package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "finvault-backend/internal/adapter/http"
	"finvault-backend/internal/adapter/middleware"
	"finvault-backend/internal/adapter/repository/mysql"
	"finvault-backend/internal/config"
	"finvault-backend/internal/infrastructure/cache"
	"finvault-backend/internal/infrastructure/db"
	"finvault-backend/internal/scheduler"
	investmentUC "finvault-backend/internal/usecase/investment"
	"finvault-backend/internal/usecase/ledger"
	loanUC "finvault-backend/internal/usecase/loan"
	notificationUC "finvault-backend/internal/usecase/notification"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB, cfg.RedisDialTimeout)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	// repositories + unit of work
	wallets := mysql.NewWalletRepository(gdb)
	transactions := mysql.NewTransactionRepository(gdb)
	investments := mysql.NewInvestmentRepository(gdb)
	plans := mysql.NewInvestmentPlanRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	products := mysql.NewLoanProductRepository(gdb)
	notifications := mysql.NewNotificationRepository(gdb)
	auditor := mysql.NewAuditRepository(gdb)
	unit := mysql.NewGormUoW(gdb)

	// usecases
	notifier := notificationUC.NewService(notifications)
	ledgerUC := ledger.NewUsecase(unit, wallets, transactions, notifier, auditor)
	invUC := investmentUC.NewUsecase(unit, investments, plans, notifier, auditor)
	lnUC := loanUC.NewUsecase(unit, loans, products, notifier, auditor)

	// handlers
	h := httpadp.NewHandler()
	walletH := httpadp.NewWalletHandler(ledgerUC)
	investmentH := httpadp.NewInvestmentHandler(invUC)
	loanH := httpadp.NewLoanHandler(lnUC)
	notificationH := httpadp.NewNotificationHandler(notifier)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	// routes
	e.GET("/health", h.Health)

	e.POST("/wallets", walletH.CreateWallet)
	e.GET("/wallets/:wallet_id", walletH.GetWallet)
	e.GET("/wallets/:wallet_id/transactions", walletH.ListTransactions)
	e.GET("/users/:user_id/wallet", walletH.GetUserWallet)
	e.POST("/transactions", walletH.CreateTransaction)
	e.POST("/transactions/:transaction_id/approve", walletH.ApproveTransaction)
	e.POST("/transactions/:transaction_id/reject", walletH.RejectTransaction)
	e.POST("/deposits/crypto", walletH.CryptoDeposit)

	e.GET("/investment-plans", investmentH.ListPlans)
	e.POST("/investments", investmentH.CreateInvestment)
	e.GET("/investments/:investment_id", investmentH.GetInvestment)
	e.PATCH("/investments/:investment_id/status", investmentH.UpdateStatus)
	e.POST("/investments/:investment_id/mature", investmentH.Mature)
	e.GET("/users/:user_id/investments", investmentH.ListUserInvestments)

	e.GET("/loan-products", loanH.ListProducts)
	e.POST("/loans", loanH.CreateApplication)
	e.GET("/loans/:loan_id", loanH.GetLoan)
	e.PATCH("/loans/:loan_id/status", loanH.UpdateStatus)
	e.POST("/loans/:loan_id/payments", loanH.MakePayment)
	e.GET("/users/:user_id/loans", loanH.ListUserLoans)

	e.GET("/users/:user_id/notifications", notificationH.ListUserNotifications)
	e.POST("/notifications/:notification_id/read", notificationH.MarkRead)

	// background lifecycle work
	runner := scheduler.NewRunner(scheduler.Config{
		DailyInterval:        cfg.DailyInterval,
		DepositSweepInterval: cfg.DepositSweepInterval,
		DepositExpiry:        cfg.DepositExpiry,
	}, invUC, lnUC, ledgerUC)
	go runner.Start(context.Background())

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
