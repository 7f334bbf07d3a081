package investment

import (
	"context"
	"errors"
	"testing"
	"time"

	"chama-backend/internal/domain/access"
	groupDomain "chama-backend/internal/domain/group"
	investDomain "chama-backend/internal/domain/investment"
	memberDomain "chama-backend/internal/domain/member"
	"chama-backend/internal/domain/uow"
	"chama-backend/internal/notify"
	"chama-backend/internal/testutil/repomock"
	"chama-backend/internal/testutil/uowmock"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

const (
	adminUser    = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	investorUser = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func activeGroup() *groupDomain.Group {
	return &groupDomain.Group{
		ID:          1,
		GroupID:     "11111111111111111111111111111111",
		Status:      groupDomain.StatusActive,
		AdminUserID: adminUser,
	}
}

func investor() *memberDomain.Member {
	return &memberDomain.Member{
		ID:       5,
		MemberID: "22222222222222222222222222222222",
		UserID:   investorUser,
		GroupRef: 1,
		GroupID:  "11111111111111111111111111111111",
		Status:   memberDomain.StatusActive,
	}
}

func activeInvestment() *investDomain.Investment {
	return &investDomain.Investment{
		ID:             7,
		InvestmentID:   "55555555555555555555555555555555",
		MemberRef:      5,
		MemberID:       "22222222222222222222222222222222",
		GroupRef:       1,
		GroupID:        "11111111111111111111111111111111",
		ProjectName:    "maize mill",
		Amount:         dec("2000.00"),
		ExpectedReturn: dec("10.00"),
		ExpectedAmount: dec("2200.00"),
		TotalPaid:      decimal.Zero,
		Status:         investDomain.StatusActive,
	}
}

func investTxUoW(i *investDomain.Investment, repos uow.Repos) *uowmock.UoW {
	m := uowmock.New()
	m.WithinInvestmentTxFn = func(ctx context.Context, investmentID string, fn func(r uow.Repos, i *investDomain.Investment) error) error {
		if investmentID != i.InvestmentID {
			return gorm.ErrRecordNotFound
		}
		return fn(repos, i)
	}
	m.WithinTxFn = func(ctx context.Context, fn func(r uow.Repos) error) error {
		return fn(repos)
	}
	return m
}

func TestCreate_FixesExpectedAmount(t *testing.T) {
	g := activeGroup()
	m := investor()

	var created *investDomain.Investment
	repos := uow.Repos{
		Members: &repomock.MemberRepo{
			GetByMemberIDFn: func(ctx context.Context, memberID string) (*memberDomain.Member, error) {
				return m, nil
			},
		},
		Investments: &repomock.InvestmentRepo{
			CreateFn: func(ctx context.Context, i *investDomain.Investment) error {
				created = i
				return nil
			},
		},
	}
	mock := uowmock.New()
	mock.WithinGroupTxFn = func(ctx context.Context, groupID string, fn func(r uow.Repos, g *groupDomain.Group) error) error {
		return fn(repos, g)
	}
	u := NewUsecase(mock, notify.NewRecorder())

	caller := access.Caller{UserID: investorUser, Role: access.RoleMember}
	dto, err := u.Create(context.Background(), caller, CreateInput{
		GroupID:        g.GroupID,
		MemberID:       m.MemberID,
		ProjectName:    "maize mill",
		Amount:         dec("2000.00"),
		ExpectedReturn: dec("10.00"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !created.ExpectedAmount.Equal(dec("2200.00")) {
		t.Errorf("expected_amount = %s, want 2200.00", created.ExpectedAmount)
	}
	if dto.Status != string(investDomain.StatusActive) {
		t.Errorf("status = %s, want active", dto.Status)
	}
}

func TestCreate_NegativeReturnRejected(t *testing.T) {
	u := NewUsecase(uowmock.New(), notify.NewRecorder())
	caller := access.Caller{UserID: investorUser, Role: access.RoleMember}

	_, err := u.Create(context.Background(), caller, CreateInput{
		Amount:         dec("2000.00"),
		ExpectedReturn: dec("-1"),
	})
	if !errors.Is(err, investDomain.ErrBadExpectedReturn) {
		t.Fatalf("want ErrBadExpectedReturn, got %v", err)
	}
}

// Payouts accumulate across calls; the investment matures on the payment that
// reaches the expected amount and not a payment sooner.
func TestRecordPayment_MaturesOnGoal(t *testing.T) {
	g := activeGroup()
	m := investor()
	inv := activeInvestment()

	running := decimal.Zero
	repos := uow.Repos{
		Groups: &repomock.GroupRepo{
			GetByGroupIDFn: func(ctx context.Context, groupID string) (*groupDomain.Group, error) {
				return g, nil
			},
		},
		Members: &repomock.MemberRepo{
			GetByMemberIDFn: func(ctx context.Context, memberID string) (*memberDomain.Member, error) {
				return m, nil
			},
		},
		Investments: &repomock.InvestmentRepo{
			SaveFn: func(ctx context.Context, i *investDomain.Investment) error { return nil },
		},
		InvestmentPayments: &repomock.InvestmentPaymentRepo{
			CreateFn: func(ctx context.Context, p *investDomain.Payment) error {
				running = running.Add(p.Amount)
				return nil
			},
			SumByInvestmentFn: func(ctx context.Context, investmentRef uint64) (decimal.Decimal, error) {
				return running, nil
			},
		},
	}
	rec := notify.NewRecorder()
	u := NewUsecase(investTxUoW(inv, repos), rec)

	caller := access.Caller{UserID: investorUser, Role: access.RoleMember}
	for i, amount := range []string{"1000.00", "1000.00"} {
		if _, err := u.RecordPayment(context.Background(), caller, inv.InvestmentID, PaymentInput{Amount: dec(amount)}); err != nil {
			t.Fatalf("payment %d: %v", i+1, err)
		}
		if inv.Status != investDomain.StatusActive {
			t.Fatalf("payment %d: investment matured early (total %s)", i+1, inv.TotalPaid)
		}
	}
	if len(rec.Names()) != 0 {
		t.Fatalf("no event before the goal, got %v", rec.Names())
	}

	if _, err := u.RecordPayment(context.Background(), caller, inv.InvestmentID, PaymentInput{Amount: dec("200.00")}); err != nil {
		t.Fatalf("final payment: %v", err)
	}
	if inv.Status != investDomain.StatusMatured {
		t.Errorf("status = %s, want matured", inv.Status)
	}
	if !inv.TotalPaid.Equal(dec("2200.00")) {
		t.Errorf("total_paid = %s, want 2200.00", inv.TotalPaid)
	}
	names := rec.Names()
	if len(names) != 1 || names[0] != "investment.matured" {
		t.Errorf("events = %v, want [investment.matured]", names)
	}
}

func TestRecordPayment_DuplicateReference(t *testing.T) {
	g := activeGroup()
	m := investor()
	inv := activeInvestment()

	repos := uow.Repos{
		Groups: &repomock.GroupRepo{
			GetByGroupIDFn: func(ctx context.Context, groupID string) (*groupDomain.Group, error) {
				return g, nil
			},
		},
		Members: &repomock.MemberRepo{
			GetByMemberIDFn: func(ctx context.Context, memberID string) (*memberDomain.Member, error) {
				return m, nil
			},
		},
		InvestmentPayments: &repomock.InvestmentPaymentRepo{
			GetByReferenceNumberFn: func(ctx context.Context, ref string) (*investDomain.Payment, error) {
				return &investDomain.Payment{PaymentID: "existing"}, nil
			},
		},
	}
	u := NewUsecase(investTxUoW(inv, repos), notify.NewRecorder())

	caller := access.Caller{UserID: investorUser, Role: access.RoleMember}
	_, err := u.RecordPayment(context.Background(), caller, inv.InvestmentID, PaymentInput{
		Amount: dec("100.00"), ReferenceNumber: "TXN-1",
	})
	if !errors.Is(err, investDomain.ErrDuplicateReference) {
		t.Fatalf("want ErrDuplicateReference, got %v", err)
	}
}

func TestRecordPayment_OnlyActiveInvestments(t *testing.T) {
	g := activeGroup()
	m := investor()
	inv := activeInvestment()
	inv.Status = investDomain.StatusMatured

	repos := uow.Repos{
		Groups: &repomock.GroupRepo{
			GetByGroupIDFn: func(ctx context.Context, groupID string) (*groupDomain.Group, error) {
				return g, nil
			},
		},
		Members: &repomock.MemberRepo{
			GetByMemberIDFn: func(ctx context.Context, memberID string) (*memberDomain.Member, error) {
				return m, nil
			},
		},
	}
	u := NewUsecase(investTxUoW(inv, repos), notify.NewRecorder())

	caller := access.Caller{UserID: investorUser, Role: access.RoleMember}
	_, err := u.RecordPayment(context.Background(), caller, inv.InvestmentID, PaymentInput{Amount: dec("100.00")})
	if !errors.Is(err, investDomain.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
}

func TestEvaluateMaturity_BeforeDateIsNoop(t *testing.T) {
	g := activeGroup()
	inv := activeInvestment()
	due := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	inv.MaturityDate = &due
	asOf := due.AddDate(0, -1, 0)

	repos := uow.Repos{
		Groups: &repomock.GroupRepo{
			GetByGroupIDFn: func(ctx context.Context, groupID string) (*groupDomain.Group, error) {
				return g, nil
			},
		},
	}
	rec := notify.NewRecorder()
	u := NewUsecase(investTxUoW(inv, repos), rec)

	caller := access.Caller{UserID: adminUser, Role: access.RoleMember}
	dto, err := u.EvaluateMaturity(context.Background(), caller, inv.InvestmentID, &asOf)
	if err != nil {
		t.Fatalf("EvaluateMaturity: %v", err)
	}
	if dto.Status != string(investDomain.StatusActive) {
		t.Errorf("status = %s, want active (not yet due)", dto.Status)
	}
	if len(rec.Names()) != 0 {
		t.Errorf("no event before maturity, got %v", rec.Names())
	}
}

func TestEvaluateMaturity_GoalMissedDefaults(t *testing.T) {
	g := activeGroup()
	inv := activeInvestment()
	inv.TotalPaid = dec("1500.00") // short of 2200
	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	inv.MaturityDate = &due
	asOf := due.AddDate(0, 0, 1)

	repos := uow.Repos{
		Groups: &repomock.GroupRepo{
			GetByGroupIDFn: func(ctx context.Context, groupID string) (*groupDomain.Group, error) {
				return g, nil
			},
		},
		Investments: &repomock.InvestmentRepo{
			SaveFn: func(ctx context.Context, i *investDomain.Investment) error { return nil },
		},
	}
	rec := notify.NewRecorder()
	u := NewUsecase(investTxUoW(inv, repos), rec)

	caller := access.Caller{UserID: adminUser, Role: access.RoleMember}
	dto, err := u.EvaluateMaturity(context.Background(), caller, inv.InvestmentID, &asOf)
	if err != nil {
		t.Fatalf("EvaluateMaturity: %v", err)
	}
	if dto.Status != string(investDomain.StatusDefaulted) {
		t.Errorf("status = %s, want defaulted", dto.Status)
	}
	names := rec.Names()
	if len(names) != 1 || names[0] != "investment.defaulted" {
		t.Errorf("events = %v, want [investment.defaulted]", names)
	}
}

func TestSweepMaturities_SettlesEachDueInvestment(t *testing.T) {
	g := activeGroup()
	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	asOf := due.AddDate(0, 0, 1)

	mk := func(id string, paid string) *investDomain.Investment {
		inv := activeInvestment()
		inv.InvestmentID = id
		inv.TotalPaid = dec(paid)
		inv.MaturityDate = &due
		return inv
	}
	invs := map[string]*investDomain.Investment{
		"66666666666666666666666666666666": mk("66666666666666666666666666666666", "2200.00"), // goal met
		"77777777777777777777777777777777": mk("77777777777777777777777777777777", "100.00"),  // goal missed
	}

	repos := uow.Repos{
		Groups: &repomock.GroupRepo{
			GetByGroupIDFn: func(ctx context.Context, groupID string) (*groupDomain.Group, error) {
				return g, nil
			},
		},
		Investments: &repomock.InvestmentRepo{
			ListMaturingFn: func(ctx context.Context, at time.Time) ([]investDomain.Investment, error) {
				out := make([]investDomain.Investment, 0, len(invs))
				for _, i := range invs {
					out = append(out, *i)
				}
				return out, nil
			},
			SaveFn: func(ctx context.Context, i *investDomain.Investment) error { return nil },
		},
	}
	mock := uowmock.New()
	mock.WithinTxFn = func(ctx context.Context, fn func(r uow.Repos) error) error {
		return fn(repos)
	}
	mock.WithinInvestmentTxFn = func(ctx context.Context, investmentID string, fn func(r uow.Repos, i *investDomain.Investment) error) error {
		inv, ok := invs[investmentID]
		if !ok {
			return gorm.ErrRecordNotFound
		}
		return fn(repos, inv)
	}
	rec := notify.NewRecorder()
	u := NewUsecase(mock, rec)

	caller := access.Caller{UserID: adminUser, Role: access.RoleMember}
	settled, err := u.SweepMaturities(context.Background(), caller, &asOf)
	if err != nil {
		t.Fatalf("SweepMaturities: %v", err)
	}
	if settled != 2 {
		t.Errorf("settled = %d, want 2", settled)
	}
	if invs["66666666666666666666666666666666"].Status != investDomain.StatusMatured {
		t.Errorf("goal-met investment must mature")
	}
	if invs["77777777777777777777777777777777"].Status != investDomain.StatusDefaulted {
		t.Errorf("goal-missed investment must default")
	}
}

func TestWithdraw(t *testing.T) {
	g := activeGroup()
	m := investor()

	repos := func() uow.Repos {
		return uow.Repos{
			Groups: &repomock.GroupRepo{
				GetByGroupIDFn: func(ctx context.Context, groupID string) (*groupDomain.Group, error) {
					return g, nil
				},
			},
			Members: &repomock.MemberRepo{
				GetByMemberIDFn: func(ctx context.Context, memberID string) (*memberDomain.Member, error) {
					return m, nil
				},
			},
			Investments: &repomock.InvestmentRepo{
				SaveFn: func(ctx context.Context, i *investDomain.Investment) error { return nil },
			},
		}
	}
	caller := access.Caller{UserID: investorUser, Role: access.RoleMember}

	// matured investments can be withdrawn
	inv := activeInvestment()
	inv.Status = investDomain.StatusMatured
	u := NewUsecase(investTxUoW(inv, repos()), notify.NewRecorder())
	dto, err := u.Withdraw(context.Background(), caller, inv.InvestmentID)
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if dto.Status != string(investDomain.StatusWithdrawn) {
		t.Errorf("status = %s, want withdrawn", dto.Status)
	}

	// active ones cannot
	inv2 := activeInvestment()
	u2 := NewUsecase(investTxUoW(inv2, repos()), notify.NewRecorder())
	if _, err := u2.Withdraw(context.Background(), caller, inv2.InvestmentID); !errors.Is(err, investDomain.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
}

func TestRecalculate_NotFound(t *testing.T) {
	u := NewUsecase(investTxUoW(activeInvestment(), uow.Repos{}), notify.NewRecorder())
	if _, err := u.Recalculate(context.Background(), "nope"); !errors.Is(err, investDomain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
