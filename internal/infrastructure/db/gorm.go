package db

import (
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"finvault-backend/internal/domain/audit"
	"finvault-backend/internal/domain/investment"
	"finvault-backend/internal/domain/loan"
	"finvault-backend/internal/domain/notification"
	"finvault-backend/internal/domain/wallet"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

// OpenGormWithDialector exists so tests can inject a mocked connection.
func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Println("gorm: connected")
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all ledger models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&wallet.Wallet{},
		&wallet.Transaction{},
		&investment.Plan{},
		&investment.Investment{},
		&loan.Product{},
		&loan.Loan{},
		&notification.Notification{},
		&audit.Entry{},
	)
}
