package loan

import (
	"context"
	"fmt"
	"log"
	"time"

	"finvault-backend/internal/domain/audit"
	loanDomain "finvault-backend/internal/domain/loan"
	"finvault-backend/internal/domain/notification"
	"finvault-backend/internal/domain/uow"
	walletDomain "finvault-backend/internal/domain/wallet"
	"finvault-backend/internal/usecase/ledger"
	"finvault-backend/pkg/id"
	"finvault-backend/pkg/money"
)

type Usecase struct {
	uow      uow.UnitOfWork
	loans    loanDomain.Repository
	products loanDomain.ProductRepository
	notifier notification.Dispatcher
	auditor  audit.Recorder
}

func NewUsecase(u uow.UnitOfWork, loans loanDomain.Repository, products loanDomain.ProductRepository, notifier notification.Dispatcher, auditor audit.Recorder) *Usecase {
	return &Usecase{uow: u, loans: loans, products: products, notifier: notifier, auditor: auditor}
}

type CreateApplicationInput struct {
	UserID     string
	ProductID  string
	Amount     float64
	TermMonths int
}

// CreateApplication validates against the product and persists a pending loan.
// Flat interest is fixed here: total = principal + principal × rate/100 ×
// term/12; no dates are set until approval.
func (s *Usecase) CreateApplication(ctx context.Context, in CreateApplicationInput) (*loanDomain.Loan, error) {
	product, err := s.products.GetByProductID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, loanDomain.ErrProductInactive
	}
	amount := money.Round2(in.Amount)
	if amount < product.MinAmount || amount > product.MaxAmount {
		return nil, &loanDomain.AmountOutOfRangeError{Min: product.MinAmount, Max: product.MaxAmount, Amount: amount}
	}
	if in.TermMonths < product.MinTermMonths || in.TermMonths > product.MaxTermMonths {
		return nil, &loanDomain.TermOutOfRangeError{Min: product.MinTermMonths, Max: product.MaxTermMonths, Term: in.TermMonths}
	}

	totalInterest := amount * (product.InterestRate / 100) * (float64(in.TermMonths) / 12)
	totalRepayment := money.Round2(amount + totalInterest)

	l := &loanDomain.Loan{
		LoanID:          id.NewID32(),
		UserID:          in.UserID,
		ProductID:       product.ProductID,
		Amount:          amount,
		InterestRate:    product.InterestRate,
		TermMonths:      in.TermMonths,
		Status:          loanDomain.StatusPending,
		ApplicationDate: time.Now().UTC(),
		TotalRepayment:  totalRepayment,
		MonthlyPayment:  money.Round2(totalRepayment / float64(in.TermMonths)),
		RemainingAmount: totalRepayment,
	}
	if err := s.loans.Create(ctx, l); err != nil {
		return nil, err
	}
	s.audit(ctx, l.UserID, "loan.apply", l)
	return l, nil
}

// UpdateStatus is the loan state machine:
//
//	pending  → active    sets dates and disburses the principal, atomically
//	pending  → rejected  stores the reason, no wallet effect
//	active   → closed    only when the remaining amount is exactly zero
//	active   → defaulted marks the loan defaulted, balances untouched
//
// "approved" is accepted as an alias for active. Anything else fails with
// InvalidTransitionError.
func (s *Usecase) UpdateStatus(ctx context.Context, loanID string, status loanDomain.Status, rejectionReason string) (*loanDomain.Loan, error) {
	if status == "approved" {
		status = loanDomain.StatusActive
	}

	var out *loanDomain.Loan
	err := s.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		switch {
		case l.Status == loanDomain.StatusPending && status == loanDomain.StatusActive:
			now := time.Now().UTC()
			end := now.AddDate(0, 0, 30*l.TermMonths)
			l.Status = loanDomain.StatusActive
			l.ApprovalDate = &now
			l.StartDate = &now
			l.EndDate = &end

			// Disbursement commits or rolls back with the status change; a
			// loan can never be active without its principal delivered.
			w, err := r.Wallets.GetByUserIDForUpdate(ctx, l.UserID)
			if err != nil {
				return err
			}
			if _, err := ledger.Post(ctx, r, ledger.PostInput{
				UserID:      l.UserID,
				WalletID:    w.WalletID,
				Amount:      l.Amount,
				Type:        walletDomain.TypeDeposit,
				Description: "Loan disbursement",
				LoanID:      l.LoanID,
			}); err != nil {
				return err
			}

		case l.Status == loanDomain.StatusPending && status == loanDomain.StatusRejected:
			l.Status = loanDomain.StatusRejected
			l.RejectionReason = rejectionReason

		case l.Status == loanDomain.StatusActive && status == loanDomain.StatusClosed:
			if !money.IsZero(l.RemainingAmount) {
				return &loanDomain.OutstandingBalanceError{Remaining: l.RemainingAmount}
			}
			l.Status = loanDomain.StatusClosed

		case l.Status == loanDomain.StatusActive && status == loanDomain.StatusDefaulted:
			l.Status = loanDomain.StatusDefaulted

		default:
			return &loanDomain.InvalidTransitionError{From: l.Status, To: status}
		}

		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch out.Status {
	case loanDomain.StatusActive:
		s.notify(ctx, out.UserID, "Loan Approved",
			fmt.Sprintf("Your loan of %.2f has been approved and disbursed to your wallet.", out.Amount))
	case loanDomain.StatusRejected:
		s.notify(ctx, out.UserID, "Loan Rejected",
			fmt.Sprintf("Your loan application was rejected: %s", out.RejectionReason))
	}
	s.audit(ctx, out.UserID, "loan.update_status", out)
	return out, nil
}

// MakePayment debits the wallet and reduces the remaining amount. Overpayment
// is capped at the remaining amount; a wallet debit failure leaves a failed
// transaction row behind, does not change the loan, and surfaces the error.
// Reaching exactly zero closes the loan in the same operation.
func (s *Usecase) MakePayment(ctx context.Context, loanID string, amount float64) (*loanDomain.Loan, error) {
	if amount <= 0 {
		return nil, loanDomain.ErrNonPositivePayment
	}

	var out *loanDomain.Loan
	var debitErr error
	err := s.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status != loanDomain.StatusActive {
			return loanDomain.ErrNotActive
		}
		effective := money.Round2(amount)
		if effective > l.RemainingAmount {
			effective = l.RemainingAmount
		}

		w, err := r.Wallets.GetByUserIDForUpdate(ctx, l.UserID)
		if err != nil {
			return err
		}
		if w.Balance < effective {
			// The failed attempt must survive the rollback-free path: keep the
			// loan untouched, record the failed movement, surface the error.
			debitErr = &walletDomain.InsufficientBalanceError{Available: w.Balance, Requested: effective}
			return r.Transactions.Create(ctx, &walletDomain.Transaction{
				TransactionID: id.NewID32(),
				UserID:        l.UserID,
				WalletID:      w.WalletID,
				LoanID:        l.LoanID,
				Type:          walletDomain.TypeLoanPayment,
				Amount:        effective,
				Status:        walletDomain.StatusFailed,
				Description:   fmt.Sprintf("Payment for loan %s", l.LoanID),
			})
		}

		if _, err := ledger.Post(ctx, r, ledger.PostInput{
			UserID:      l.UserID,
			WalletID:    w.WalletID,
			Amount:      effective,
			Type:        walletDomain.TypeLoanPayment,
			Description: fmt.Sprintf("Payment for loan %s", l.LoanID),
			LoanID:      l.LoanID,
		}); err != nil {
			return err
		}

		l.RemainingAmount = money.Round2(l.RemainingAmount - effective)
		if money.IsZero(l.RemainingAmount) {
			l.RemainingAmount = 0
			l.Status = loanDomain.StatusClosed
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	if debitErr != nil {
		return nil, debitErr
	}

	if out.Status == loanDomain.StatusClosed {
		s.notify(ctx, out.UserID, "Loan Repaid", "Your loan has been fully repaid and closed.")
	}
	s.audit(ctx, out.UserID, "loan.payment", out)
	return out, nil
}

// CalculateMonthlyInterest compounds one month of interest onto the remaining
// balance: remaining × rate/100/12, on the current remaining amount, not the
// principal. Non-active loans are a no-op returning (nil, nil).
func (s *Usecase) CalculateMonthlyInterest(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out *loanDomain.Loan
	err := s.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status != loanDomain.StatusActive {
			return nil
		}
		monthlyInterest := money.Round2(l.RemainingAmount * (l.InterestRate / 100 / 12))
		l.RemainingAmount = money.Round2(l.RemainingAmount + monthlyInterest)
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DueLoans returns active loans whose start day-of-month equals today's. This
// is the same-day-each-month due model: there is no per-payment schedule.
func (s *Usecase) DueLoans(ctx context.Context) ([]loanDomain.Loan, error) {
	active, err := s.loans.ListByStatus(ctx, loanDomain.StatusActive)
	if err != nil {
		return nil, err
	}
	today := time.Now().UTC().Day()
	due := make([]loanDomain.Loan, 0, len(active))
	for _, l := range active {
		if l.StartDate != nil && l.StartDate.UTC().Day() == today {
			due = append(due, l)
		}
	}
	return due, nil
}

// BatchResult aggregates a scheduler-driven sweep.
type BatchResult struct {
	Processed int
	Failed    int
}

// ApplyMonthlyInterest accrues one month of interest on every active loan.
// Per-loan failures are logged and counted, never fatal to the batch.
func (s *Usecase) ApplyMonthlyInterest(ctx context.Context) (BatchResult, error) {
	active, err := s.loans.ListByStatus(ctx, loanDomain.StatusActive)
	if err != nil {
		return BatchResult{}, err
	}

	var res BatchResult
	for i := range active {
		updated, err := s.CalculateMonthlyInterest(ctx, active[i].LoanID)
		if err != nil {
			log.Printf("loan: monthly interest %s: %v", active[i].LoanID, err)
			res.Failed++
			continue
		}
		res.Processed++
		if updated != nil {
			s.notify(ctx, updated.UserID, "Loan Interest Applied",
				fmt.Sprintf("Monthly interest has been applied to your loan. Your remaining balance is now %.2f.", updated.RemainingAmount))
		}
	}
	return res, nil
}

// ProcessDuePayments reminds holders of loans due today.
func (s *Usecase) ProcessDuePayments(ctx context.Context) (BatchResult, error) {
	due, err := s.DueLoans(ctx)
	if err != nil {
		return BatchResult{}, err
	}

	var res BatchResult
	for i := range due {
		s.notify(ctx, due[i].UserID, "Loan Payment Due",
			fmt.Sprintf("Your monthly loan payment of %.2f is due today. Please make your payment to avoid late fees.", due[i].MonthlyPayment))
		res.Processed++
	}
	return res, nil
}

// NotifyOverdue reminds holders more than three days past this month's due
// day. Without per-payment tracking this is a heuristic on day-of-month only.
func (s *Usecase) NotifyOverdue(ctx context.Context) (BatchResult, error) {
	active, err := s.loans.ListByStatus(ctx, loanDomain.StatusActive)
	if err != nil {
		return BatchResult{}, err
	}

	today := time.Now().UTC().Day()
	var res BatchResult
	for i := range active {
		if active[i].StartDate == nil {
			continue
		}
		daysOverdue := today - active[i].StartDate.UTC().Day()
		if daysOverdue > 3 {
			s.notify(ctx, active[i].UserID, "Loan Payment Overdue",
				fmt.Sprintf("Your loan payment of %.2f is %d days overdue. Please make your payment as soon as possible to avoid additional fees.",
					active[i].MonthlyPayment, daysOverdue))
			res.Processed++
		}
	}
	return res, nil
}

func (s *Usecase) Get(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	return s.loans.GetByLoanID(ctx, loanID)
}

func (s *Usecase) ListByUser(ctx context.Context, userID string, status loanDomain.Status) ([]loanDomain.Loan, error) {
	return s.loans.ListByUserID(ctx, userID, status)
}

func (s *Usecase) GetProduct(ctx context.Context, productID string) (*loanDomain.Product, error) {
	return s.products.GetByProductID(ctx, productID)
}

func (s *Usecase) ActiveProducts(ctx context.Context) ([]loanDomain.Product, error) {
	return s.products.ListActive(ctx)
}

func (s *Usecase) notify(ctx context.Context, userID, title, message string) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, userID, title, message)
	}
}

func (s *Usecase) audit(ctx context.Context, userID, action string, l *loanDomain.Loan) {
	if s.auditor == nil {
		return
	}
	details := fmt.Sprintf(`{"status":%q,"remaining_amount":%.2f}`, l.Status, l.RemainingAmount)
	if err := s.auditor.Record(ctx, userID, action, "loan", l.LoanID, details); err != nil {
		log.Printf("loan: audit %s for %s: %v", action, l.LoanID, err)
	}
}
