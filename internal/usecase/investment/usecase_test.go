package investment

import (
	"context"
	"testing"
	"time"

	"finvault-backend/internal/adapter/repository/mysql"
	investmentDomain "finvault-backend/internal/domain/investment"
	walletDomain "finvault-backend/internal/domain/wallet"
	"finvault-backend/internal/testutil/dbtest"
	"finvault-backend/pkg/id"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type investmentFixture struct {
	uc      *Usecase
	db      *gorm.DB
	wallets *mysql.WalletRepository
	plans   *mysql.InvestmentPlanRepository
}

func newInvestmentFixture(t *testing.T) *investmentFixture {
	t.Helper()
	db := dbtest.Open(t)
	investments := mysql.NewInvestmentRepository(db)
	plans := mysql.NewInvestmentPlanRepository(db)
	unit := mysql.NewGormUoW(db)
	return &investmentFixture{
		uc:      NewUsecase(unit, investments, plans, nil, mysql.NewAuditRepository(db)),
		db:      db,
		wallets: mysql.NewWalletRepository(db),
		plans:   plans,
	}
}

func (f *investmentFixture) seedWallet(t *testing.T, balance float64) *walletDomain.Wallet {
	t.Helper()
	w := &walletDomain.Wallet{WalletID: id.NewID32(), UserID: id.NewID32(), Balance: balance, Currency: "USD"}
	require.NoError(t, f.wallets.Create(context.Background(), w))
	return w
}

func (f *investmentFixture) seedPlan(t *testing.T, min, max, roi float64, days int, active bool) *investmentDomain.Plan {
	t.Helper()
	p := &investmentDomain.Plan{
		PlanID:        id.NewID32(),
		Name:          "Growth",
		MinAmount:     min,
		MaxAmount:     max,
		ROIPercentage: roi,
		DurationDays:  days,
		IsActive:      active,
	}
	require.NoError(t, f.plans.Create(context.Background(), p))
	return p
}

func (f *investmentFixture) balance(t *testing.T, walletID string) float64 {
	t.Helper()
	w, err := f.wallets.GetByWalletID(context.Background(), walletID)
	require.NoError(t, err)
	return w.Balance
}

func TestCreateInvestment_DebitsWalletAndSetsExpectedReturn(t *testing.T) {
	f := newInvestmentFixture(t)
	w := f.seedWallet(t, 1000)
	plan := f.seedPlan(t, 100, 1000, 12, 30, true)
	ctx := context.Background()

	inv, err := f.uc.CreateInvestment(ctx, CreateInvestmentInput{UserID: w.UserID, PlanID: plan.PlanID, Amount: 500})
	require.NoError(t, err)
	assert.Equal(t, investmentDomain.StatusActive, inv.Status)
	assert.Equal(t, 560.0, inv.ExpectedReturn)
	assert.Equal(t, 500.0, inv.CurrentValue)
	assert.Equal(t, 30, int(inv.EndDate.Sub(inv.StartDate).Hours()/24))
	assert.Equal(t, 500.0, f.balance(t, w.WalletID))

	// the debit is on the ledger, linked back to the investment
	txns, err := mysql.NewTransactionRepository(f.db).ListByWalletID(ctx, w.WalletID, walletDomain.TypeInvestment, 0, 0)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, inv.InvestmentID, txns[0].InvestmentID)
	assert.Equal(t, walletDomain.StatusCompleted, txns[0].Status)
	assert.Equal(t, 500.0, txns[0].Amount)
}

func TestCreateInvestment_AmountBoundaries(t *testing.T) {
	f := newInvestmentFixture(t)
	w := f.seedWallet(t, 5000)
	plan := f.seedPlan(t, 100, 1000, 12, 30, true)
	ctx := context.Background()

	// exactly the minimum is allowed
	_, err := f.uc.CreateInvestment(ctx, CreateInvestmentInput{UserID: w.UserID, PlanID: plan.PlanID, Amount: 100})
	require.NoError(t, err)

	// a cent under is not
	_, err = f.uc.CreateInvestment(ctx, CreateInvestmentInput{UserID: w.UserID, PlanID: plan.PlanID, Amount: 99.99})
	var rangeErr *investmentDomain.AmountOutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, 100.0, rangeErr.Min)
	assert.Equal(t, 99.99, rangeErr.Amount)

	// above the maximum is not
	_, err = f.uc.CreateInvestment(ctx, CreateInvestmentInput{UserID: w.UserID, PlanID: plan.PlanID, Amount: 1000.01})
	require.ErrorAs(t, err, &rangeErr)
}

func TestCreateInvestment_Preconditions(t *testing.T) {
	f := newInvestmentFixture(t)
	w := f.seedWallet(t, 200)
	ctx := context.Background()

	inactive := f.seedPlan(t, 100, 1000, 12, 30, false)
	_, err := f.uc.CreateInvestment(ctx, CreateInvestmentInput{UserID: w.UserID, PlanID: inactive.PlanID, Amount: 150})
	assert.ErrorIs(t, err, investmentDomain.ErrPlanInactive)

	_, err = f.uc.CreateInvestment(ctx, CreateInvestmentInput{UserID: w.UserID, PlanID: id.NewID32(), Amount: 150})
	assert.ErrorIs(t, err, investmentDomain.ErrPlanNotFound)

	active := f.seedPlan(t, 100, 1000, 12, 30, true)
	_, err = f.uc.CreateInvestment(ctx, CreateInvestmentInput{UserID: w.UserID, PlanID: active.PlanID, Amount: 300})
	var insufficient *walletDomain.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)

	// a failed create leaves no investment and no debit behind
	invs, err := f.uc.ListByUser(ctx, w.UserID, "")
	require.NoError(t, err)
	assert.Empty(t, invs)
	assert.Equal(t, 200.0, f.balance(t, w.WalletID))
}

func TestAccrueDailyReturn_FlatOnPrincipal(t *testing.T) {
	f := newInvestmentFixture(t)
	w := f.seedWallet(t, 1000)
	plan := f.seedPlan(t, 100, 1000, 12, 30, true)
	ctx := context.Background()

	inv, err := f.uc.CreateInvestment(ctx, CreateInvestmentInput{UserID: w.UserID, PlanID: plan.PlanID, Amount: 500})
	require.NoError(t, err)

	// daily slice: 500 * (12/365)/100 = 0.16 after rounding
	got, err := f.uc.AccrueDailyReturn(ctx, inv.InvestmentID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 500.16, got.CurrentValue)

	// second day accrues on the principal again, not on 500.16
	got, err = f.uc.AccrueDailyReturn(ctx, inv.InvestmentID)
	require.NoError(t, err)
	assert.Equal(t, 500.32, got.CurrentValue)
	assert.Equal(t, investmentDomain.StatusActive, got.Status)

	// wallet untouched while the investment is running
	assert.Equal(t, 500.0, f.balance(t, w.WalletID))
}

func TestAccrueDailyReturn_MaturesPastEndDate(t *testing.T) {
	f := newInvestmentFixture(t)
	w := f.seedWallet(t, 1000)
	plan := f.seedPlan(t, 100, 1000, 12, 30, true)
	ctx := context.Background()

	inv, err := f.uc.CreateInvestment(ctx, CreateInvestmentInput{UserID: w.UserID, PlanID: plan.PlanID, Amount: 500})
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&investmentDomain.Investment{}).
		Where("investment_id = ?", inv.InvestmentID).
		Update("end_date", time.Now().UTC().Add(-time.Hour)).Error)

	got, err := f.uc.AccrueDailyReturn(ctx, inv.InvestmentID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, investmentDomain.StatusCompleted, got.Status)
	assert.Equal(t, 500.16, got.CurrentValue)
	// wallet: 1000 - 500 invested + 500.16 paid out
	assert.Equal(t, 1000.16, f.balance(t, w.WalletID))
}

func TestMature_PaysOutOnceAndIsIdempotent(t *testing.T) {
	f := newInvestmentFixture(t)
	w := f.seedWallet(t, 1000)
	plan := f.seedPlan(t, 100, 1000, 12, 30, true)
	ctx := context.Background()

	inv, err := f.uc.CreateInvestment(ctx, CreateInvestmentInput{UserID: w.UserID, PlanID: plan.PlanID, Amount: 500})
	require.NoError(t, err)

	matured, err := f.uc.Mature(ctx, inv.InvestmentID)
	require.NoError(t, err)
	require.NotNil(t, matured)
	assert.Equal(t, investmentDomain.StatusCompleted, matured.Status)
	assert.Equal(t, 1000.0, f.balance(t, w.WalletID), "500 debited, 500 current value paid back")

	// payout lands as an interest credit linked to the investment
	credits, err := mysql.NewTransactionRepository(f.db).ListByWalletID(ctx, w.WalletID, walletDomain.TypeInterest, 0, 0)
	require.NoError(t, err)
	require.Len(t, credits, 1)
	assert.Equal(t, inv.InvestmentID, credits[0].InvestmentID)

	// a second maturation attempt is a no-op and must not pay again
	again, err := f.uc.Mature(ctx, inv.InvestmentID)
	require.NoError(t, err)
	assert.Nil(t, again)
	assert.Equal(t, 1000.0, f.balance(t, w.WalletID))
}

func TestUpdateStatus(t *testing.T) {
	f := newInvestmentFixture(t)
	w := f.seedWallet(t, 1000)
	plan := f.seedPlan(t, 100, 1000, 12, 30, true)
	ctx := context.Background()

	t.Run("rejects unsupported targets", func(t *testing.T) {
		_, err := f.uc.UpdateStatus(ctx, id.NewID32(), investmentDomain.StatusActive)
		var unsupported *investmentDomain.UnsupportedStatusError
		require.ErrorAs(t, err, &unsupported)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		got, err := f.uc.UpdateStatus(ctx, id.NewID32(), investmentDomain.StatusCancelled)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("cancel does not pay out", func(t *testing.T) {
		inv, err := f.uc.CreateInvestment(ctx, CreateInvestmentInput{UserID: w.UserID, PlanID: plan.PlanID, Amount: 200})
		require.NoError(t, err)
		before := f.balance(t, w.WalletID)

		got, err := f.uc.UpdateStatus(ctx, inv.InvestmentID, investmentDomain.StatusCancelled)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, investmentDomain.StatusCancelled, got.Status)
		assert.Equal(t, before, f.balance(t, w.WalletID))
	})

	t.Run("complete pays out once", func(t *testing.T) {
		inv, err := f.uc.CreateInvestment(ctx, CreateInvestmentInput{UserID: w.UserID, PlanID: plan.PlanID, Amount: 200})
		require.NoError(t, err)
		before := f.balance(t, w.WalletID)

		got, err := f.uc.UpdateStatus(ctx, inv.InvestmentID, investmentDomain.StatusCompleted)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, investmentDomain.StatusCompleted, got.Status)
		assert.Equal(t, before+200, f.balance(t, w.WalletID))

		// completing again changes nothing
		_, err = f.uc.UpdateStatus(ctx, inv.InvestmentID, investmentDomain.StatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, before+200, f.balance(t, w.WalletID))
	})
}

func TestProcessReturns_SweepsActiveInvestments(t *testing.T) {
	f := newInvestmentFixture(t)
	w := f.seedWallet(t, 2000)
	plan := f.seedPlan(t, 100, 1000, 12, 30, true)
	ctx := context.Background()

	a, err := f.uc.CreateInvestment(ctx, CreateInvestmentInput{UserID: w.UserID, PlanID: plan.PlanID, Amount: 500})
	require.NoError(t, err)
	b, err := f.uc.CreateInvestment(ctx, CreateInvestmentInput{UserID: w.UserID, PlanID: plan.PlanID, Amount: 300})
	require.NoError(t, err)

	res, err := f.uc.ProcessReturns(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Processed)
	assert.Equal(t, 0, res.Failed)

	gotA, err := f.uc.Get(ctx, a.InvestmentID)
	require.NoError(t, err)
	assert.Equal(t, 500.16, gotA.CurrentValue)
	gotB, err := f.uc.Get(ctx, b.InvestmentID)
	require.NoError(t, err)
	assert.Equal(t, 300.1, gotB.CurrentValue)
}

type noteDispatcher struct {
	userIDs  []string
	titles   []string
	messages []string
}

func (d *noteDispatcher) Notify(_ context.Context, userID, title, message string) {
	d.userIDs = append(d.userIDs, userID)
	d.titles = append(d.titles, title)
	d.messages = append(d.messages, message)
}

func TestNotifyEndingSoon_WindowAndComposition(t *testing.T) {
	f := newInvestmentFixture(t)
	disp := &noteDispatcher{}
	investments := mysql.NewInvestmentRepository(f.db)
	uc := NewUsecase(mysql.NewGormUoW(f.db), investments, f.plans, disp, nil)
	ctx := context.Background()

	now := time.Now().UTC()
	soon := &investmentDomain.Investment{
		InvestmentID:   id.NewID32(),
		UserID:         id.NewID32(),
		PlanID:         id.NewID32(),
		Amount:         300,
		Status:         investmentDomain.StatusActive,
		StartDate:      now.AddDate(0, 0, -28),
		EndDate:        now.AddDate(0, 0, 2),
		ExpectedReturn: 336,
		CurrentValue:   309.2,
	}
	require.NoError(t, investments.Create(ctx, soon))

	farOff := &investmentDomain.Investment{
		InvestmentID:   id.NewID32(),
		UserID:         id.NewID32(),
		PlanID:         soon.PlanID,
		Amount:         500,
		Status:         investmentDomain.StatusActive,
		StartDate:      now,
		EndDate:        now.AddDate(0, 0, 10),
		ExpectedReturn: 560,
		CurrentValue:   500,
	}
	require.NoError(t, investments.Create(ctx, farOff))

	done := &investmentDomain.Investment{
		InvestmentID:   id.NewID32(),
		UserID:         id.NewID32(),
		PlanID:         soon.PlanID,
		Amount:         200,
		Status:         investmentDomain.StatusCompleted,
		StartDate:      now.AddDate(0, 0, -29),
		EndDate:        now.AddDate(0, 0, 1),
		ExpectedReturn: 224,
		CurrentValue:   224,
	}
	require.NoError(t, investments.Create(ctx, done))

	res, err := uc.NotifyEndingSoon(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 0, res.Failed)

	require.Len(t, disp.titles, 1)
	assert.Equal(t, soon.UserID, disp.userIDs[0])
	assert.Equal(t, "Investment Ending Soon", disp.titles[0])
	assert.Contains(t, disp.messages[0], "300.00")
	assert.Contains(t, disp.messages[0], "9.20", "estimated return is current value minus principal")
}
