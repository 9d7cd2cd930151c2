package investment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"finvault-backend/internal/domain/audit"
	investmentDomain "finvault-backend/internal/domain/investment"
	"finvault-backend/internal/domain/notification"
	"finvault-backend/internal/domain/uow"
	walletDomain "finvault-backend/internal/domain/wallet"
	"finvault-backend/internal/usecase/ledger"
	"finvault-backend/pkg/id"
	"finvault-backend/pkg/money"
)

type Usecase struct {
	uow         uow.UnitOfWork
	investments investmentDomain.Repository
	plans       investmentDomain.PlanRepository
	notifier    notification.Dispatcher
	auditor     audit.Recorder
}

func NewUsecase(u uow.UnitOfWork, investments investmentDomain.Repository, plans investmentDomain.PlanRepository, notifier notification.Dispatcher, auditor audit.Recorder) *Usecase {
	return &Usecase{uow: u, investments: investments, plans: plans, notifier: notifier, auditor: auditor}
}

type CreateInvestmentInput struct {
	UserID string
	PlanID string
	Amount float64
}

// CreateInvestment persists the investment and debits the wallet in one unit
// of work; a precondition failure leaves no partial state behind.
func (s *Usecase) CreateInvestment(ctx context.Context, in CreateInvestmentInput) (*investmentDomain.Investment, error) {
	var out *investmentDomain.Investment
	err := s.uow.WithinWalletTx(ctx, in.UserID, func(r uow.Repos, w *walletDomain.Wallet) error {
		plan, err := r.Plans.GetByPlanID(ctx, in.PlanID)
		if err != nil {
			return err
		}
		if !plan.IsActive {
			return investmentDomain.ErrPlanInactive
		}
		amount := money.Round2(in.Amount)
		if amount < plan.MinAmount || amount > plan.MaxAmount {
			return &investmentDomain.AmountOutOfRangeError{Min: plan.MinAmount, Max: plan.MaxAmount, Amount: amount}
		}
		if w.Balance < amount {
			return &walletDomain.InsufficientBalanceError{Available: w.Balance, Requested: amount}
		}

		now := time.Now().UTC()
		inv := &investmentDomain.Investment{
			InvestmentID:   id.NewID32(),
			UserID:         in.UserID,
			PlanID:         plan.PlanID,
			Amount:         amount,
			Status:         investmentDomain.StatusActive,
			StartDate:      now,
			EndDate:        now.AddDate(0, 0, plan.DurationDays),
			ExpectedReturn: money.Round2(amount * (1 + plan.ROIPercentage/100)),
			CurrentValue:   amount,
		}
		if err := r.Investments.Create(ctx, inv); err != nil {
			return err
		}

		if _, err := ledger.Post(ctx, r, ledger.PostInput{
			UserID:       in.UserID,
			WalletID:     w.WalletID,
			Amount:       amount,
			Type:         walletDomain.TypeInvestment,
			Description:  "Investment in " + plan.Name,
			InvestmentID: inv.InvestmentID,
		}); err != nil {
			return err
		}
		out = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.audit(ctx, out.UserID, "investment.create", out)
	return out, nil
}

// AccrueDailyReturn adds one day of flat return to an active investment:
// plan ROI is annualized, the daily slice is computed on the original
// principal, never on the accrued value. Past the end date the investment is
// matured in the same unit of work. Non-active investments are a no-op,
// returning (nil, nil).
func (s *Usecase) AccrueDailyReturn(ctx context.Context, investmentID string) (*investmentDomain.Investment, error) {
	var out *investmentDomain.Investment
	var matured *payout
	err := s.uow.WithinTx(ctx, func(r uow.Repos) error {
		inv, err := r.Investments.GetByInvestmentIDForUpdate(ctx, investmentID)
		if err != nil {
			return err
		}
		if inv.Status != investmentDomain.StatusActive {
			return nil
		}
		plan, err := r.Plans.GetByPlanID(ctx, inv.PlanID)
		if err != nil {
			return err
		}

		dailyROI := plan.ROIPercentage / 365
		dailyReturn := money.Round2(inv.Amount * dailyROI / 100)
		inv.CurrentValue = money.Round2(inv.CurrentValue + dailyReturn)

		if !time.Now().UTC().Before(inv.EndDate) {
			p, err := completeLocked(ctx, r, inv)
			if err != nil {
				return err
			}
			matured = p
		}
		if err := r.Investments.Save(ctx, inv); err != nil {
			return err
		}
		out = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	if matured != nil {
		s.notifyMatured(ctx, matured)
	}
	return out, nil
}

// Mature pays out an active investment. Already-completed investments are a
// no-op returning (nil, nil), so at-least-once scheduler delivery cannot pay
// twice.
func (s *Usecase) Mature(ctx context.Context, investmentID string) (*investmentDomain.Investment, error) {
	var out *investmentDomain.Investment
	var p *payout
	err := s.uow.WithinTx(ctx, func(r uow.Repos) error {
		inv, err := r.Investments.GetByInvestmentIDForUpdate(ctx, investmentID)
		if err != nil {
			return err
		}
		if inv.Status != investmentDomain.StatusActive {
			return nil
		}
		p, err = completeLocked(ctx, r, inv)
		if err != nil {
			return err
		}
		if err := r.Investments.Save(ctx, inv); err != nil {
			return err
		}
		out = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	if p != nil {
		s.notifyMatured(ctx, p)
		s.audit(ctx, out.UserID, "investment.mature", out)
	}
	return out, nil
}

// UpdateStatus is the administrative transition to completed or cancelled.
// Completing an investment triggers the same payout as maturity; completing an
// already-completed one must not pay again. Unknown investments return
// (nil, nil).
func (s *Usecase) UpdateStatus(ctx context.Context, investmentID string, status investmentDomain.Status) (*investmentDomain.Investment, error) {
	if status != investmentDomain.StatusCompleted && status != investmentDomain.StatusCancelled {
		return nil, &investmentDomain.UnsupportedStatusError{Status: status}
	}

	var out *investmentDomain.Investment
	var p *payout
	err := s.uow.WithinTx(ctx, func(r uow.Repos) error {
		inv, err := r.Investments.GetByInvestmentIDForUpdate(ctx, investmentID)
		if err != nil {
			if errors.Is(err, investmentDomain.ErrNotFound) {
				return nil
			}
			return err
		}
		if status == investmentDomain.StatusCompleted && inv.Status != investmentDomain.StatusCompleted {
			p, err = completeLocked(ctx, r, inv)
			if err != nil {
				return err
			}
		} else {
			inv.Status = status
		}
		if err := r.Investments.Save(ctx, inv); err != nil {
			return err
		}
		out = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out != nil {
		if p != nil {
			s.notifyMatured(ctx, p)
		}
		s.audit(ctx, out.UserID, "investment.update_status", out)
	}
	return out, nil
}

type payout struct {
	userID string
	amount float64
	profit float64
}

// completeLocked freezes the investment at its current value and credits the
// wallet with it. The investment row must already be locked; the caller saves
// it.
func completeLocked(ctx context.Context, r uow.Repos, inv *investmentDomain.Investment) (*payout, error) {
	w, err := r.Wallets.GetByUserIDForUpdate(ctx, inv.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := ledger.Post(ctx, r, ledger.PostInput{
		UserID:       inv.UserID,
		WalletID:     w.WalletID,
		Amount:       inv.CurrentValue,
		Type:         walletDomain.TypeInterest,
		Description:  fmt.Sprintf("Investment return: %.2f", inv.CurrentValue),
		InvestmentID: inv.InvestmentID,
	}); err != nil {
		return nil, err
	}
	inv.Status = investmentDomain.StatusCompleted
	return &payout{
		userID: inv.UserID,
		amount: inv.CurrentValue,
		profit: money.Round2(inv.CurrentValue - inv.Amount),
	}, nil
}

// BatchResult aggregates a scheduler-driven sweep.
type BatchResult struct {
	Processed int
	Failed    int
}

// ProcessReturns runs the daily accrual over every active investment. Each
// investment is its own unit of work; a failure is logged and counted, never
// fatal to the batch.
func (s *Usecase) ProcessReturns(ctx context.Context) (BatchResult, error) {
	active, err := s.investments.ListActive(ctx)
	if err != nil {
		return BatchResult{}, err
	}

	var res BatchResult
	for i := range active {
		if _, err := s.AccrueDailyReturn(ctx, active[i].InvestmentID); err != nil {
			log.Printf("investment: accrue %s: %v", active[i].InvestmentID, err)
			res.Failed++
			continue
		}
		res.Processed++
	}
	return res, nil
}

// NotifyEndingSoon reminds holders of investments maturing within the next
// three days.
func (s *Usecase) NotifyEndingSoon(ctx context.Context) (BatchResult, error) {
	now := time.Now().UTC()
	ending, err := s.investments.ListActiveEndingBetween(ctx, now, now.AddDate(0, 0, 3))
	if err != nil {
		return BatchResult{}, err
	}

	var res BatchResult
	for i := range ending {
		daysLeft := int(ending[i].EndDate.Sub(now).Hours() / 24)
		s.notify(ctx, ending[i].UserID, "Investment Ending Soon",
			fmt.Sprintf("Your investment of %.2f will mature in %d days with an estimated return of %.2f.",
				ending[i].Amount, daysLeft, money.Round2(ending[i].CurrentValue-ending[i].Amount)))
		res.Processed++
	}
	return res, nil
}

func (s *Usecase) Get(ctx context.Context, investmentID string) (*investmentDomain.Investment, error) {
	return s.investments.GetByInvestmentID(ctx, investmentID)
}

func (s *Usecase) ListByUser(ctx context.Context, userID string, status investmentDomain.Status) ([]investmentDomain.Investment, error) {
	return s.investments.ListByUserID(ctx, userID, status)
}

func (s *Usecase) GetPlan(ctx context.Context, planID string) (*investmentDomain.Plan, error) {
	return s.plans.GetByPlanID(ctx, planID)
}

func (s *Usecase) ActivePlans(ctx context.Context) ([]investmentDomain.Plan, error) {
	return s.plans.ListActive(ctx)
}

func (s *Usecase) notifyMatured(ctx context.Context, p *payout) {
	s.notify(ctx, p.userID, "Investment Matured",
		fmt.Sprintf("Your investment has matured with a return of %.2f. %.2f has been credited to your wallet.", p.profit, p.amount))
}

func (s *Usecase) notify(ctx context.Context, userID, title, message string) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, userID, title, message)
	}
}

func (s *Usecase) audit(ctx context.Context, userID, action string, inv *investmentDomain.Investment) {
	if s.auditor == nil {
		return
	}
	details := fmt.Sprintf(`{"status":%q,"current_value":%.2f}`, inv.Status, inv.CurrentValue)
	if err := s.auditor.Record(ctx, userID, action, "investment", inv.InvestmentID, details); err != nil {
		log.Printf("investment: audit %s for %s: %v", action, inv.InvestmentID, err)
	}
}
