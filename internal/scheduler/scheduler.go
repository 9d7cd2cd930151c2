package scheduler

import (
	"context"
	"log"
	"time"

	"finvault-backend/internal/usecase/investment"
	"finvault-backend/internal/usecase/ledger"
	"finvault-backend/internal/usecase/loan"
)

const tickTimeout = 5 * time.Minute

// InvestmentBatches is the slice of the investment usecase the runner drives.
type InvestmentBatches interface {
	ProcessReturns(ctx context.Context) (investment.BatchResult, error)
	NotifyEndingSoon(ctx context.Context) (investment.BatchResult, error)
}

type LoanBatches interface {
	ApplyMonthlyInterest(ctx context.Context) (loan.BatchResult, error)
	ProcessDuePayments(ctx context.Context) (loan.BatchResult, error)
	NotifyOverdue(ctx context.Context) (loan.BatchResult, error)
}

type LedgerBatches interface {
	CancelStaleDeposits(ctx context.Context, maxAge time.Duration) (ledger.BatchResult, error)
}

type Config struct {
	DailyInterval        time.Duration
	DepositSweepInterval time.Duration
	DepositExpiry        time.Duration
}

type Runner struct {
	cfg         Config
	investments InvestmentBatches
	loans       LoanBatches
	ledger      LedgerBatches
	now         func() time.Time
}

func NewRunner(cfg Config, investments InvestmentBatches, loans LoanBatches, ledger LedgerBatches) *Runner {
	return &Runner{cfg: cfg, investments: investments, loans: loans, ledger: ledger, now: time.Now}
}

// Start launches the tickers and blocks until ctx is cancelled.
func (r *Runner) Start(ctx context.Context) {
	daily := time.NewTicker(r.cfg.DailyInterval)
	defer daily.Stop()
	sweep := time.NewTicker(r.cfg.DepositSweepInterval)
	defer sweep.Stop()

	log.Printf("scheduler: started (daily=%s sweep=%s)", r.cfg.DailyInterval, r.cfg.DepositSweepInterval)
	for {
		select {
		case <-ctx.Done():
			log.Printf("scheduler: stopped")
			return
		case <-daily.C:
			r.RunDaily(ctx)
		case <-sweep.C:
			r.RunDepositSweep(ctx)
		}
	}
}

// RunDaily drives the dated lifecycle work: investment accrual and maturity,
// due loan payments, reminders, and monthly interest on the first of the month.
func (r *Runner) RunDaily(ctx context.Context) {
	r.runBatch(ctx, "investment returns", func(ctx context.Context) (int, int, error) {
		res, err := r.investments.ProcessReturns(ctx)
		return res.Processed, res.Failed, err
	})
	r.runBatch(ctx, "due loan payments", func(ctx context.Context) (int, int, error) {
		res, err := r.loans.ProcessDuePayments(ctx)
		return res.Processed, res.Failed, err
	})
	r.runBatch(ctx, "ending-soon reminders", func(ctx context.Context) (int, int, error) {
		res, err := r.investments.NotifyEndingSoon(ctx)
		return res.Processed, res.Failed, err
	})
	r.runBatch(ctx, "overdue reminders", func(ctx context.Context) (int, int, error) {
		res, err := r.loans.NotifyOverdue(ctx)
		return res.Processed, res.Failed, err
	})
	if r.now().Day() == 1 {
		r.runBatch(ctx, "monthly loan interest", func(ctx context.Context) (int, int, error) {
			res, err := r.loans.ApplyMonthlyInterest(ctx)
			return res.Processed, res.Failed, err
		})
	}
}

func (r *Runner) RunDepositSweep(ctx context.Context) {
	r.runBatch(ctx, "stale deposit sweep", func(ctx context.Context) (int, int, error) {
		res, err := r.ledger.CancelStaleDeposits(ctx, r.cfg.DepositExpiry)
		return res.Processed, res.Failed, err
	})
}

func (r *Runner) runBatch(ctx context.Context, name string, fn func(context.Context) (int, int, error)) {
	tctx, cancel := context.WithTimeout(ctx, tickTimeout)
	defer cancel()
	processed, failed, err := fn(tctx)
	if err != nil {
		log.Printf("scheduler: %s failed: %v", name, err)
		return
	}
	log.Printf("scheduler: %s done (processed=%d failed=%d)", name, processed, failed)
}
