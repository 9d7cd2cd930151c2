package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr        string
	RedisDB          int
	RedisDialTimeout time.Duration

	IdempTTLSecs int

	// Scheduler cadences. The daily interval exists so tests and staging can
	// shrink the "once per day" cycle.
	DailyInterval        time.Duration
	DepositSweepInterval time.Duration
	DepositExpiry        time.Duration
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getduration(k string, d time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if p, err := time.ParseDuration(v); err == nil {
			return p
		}
	}
	return d
}

func Load() *Config {
	// Missing .env is fine; env vars win either way.
	_ = godotenv.Load()

	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "finvault"),
		MySQLUser: getenv("MYSQL_USER", "finvault"),
		MySQLPass: getenv("MYSQL_PASS", "finvault"),

		RedisAddr:        getenv("REDIS_ADDR", "redis:6379"),
		RedisDialTimeout: getduration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		IdempTTLSecs:     300,

		DailyInterval:        getduration("DAILY_TASK_INTERVAL", 24*time.Hour),
		DepositSweepInterval: getduration("DEPOSIT_SWEEP_INTERVAL", 10*time.Minute),
		DepositExpiry:        getduration("DEPOSIT_EXPIRY", 24*time.Hour),
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.DepositSweepInterval <= 0 || c.DailyInterval <= 0 {
		return errors.New("scheduler intervals must be positive")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
