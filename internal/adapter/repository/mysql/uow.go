package mysql

import (
	"context"

	"chama-backend/internal/domain/group"
	"chama-backend/internal/domain/investment"
	"chama-backend/internal/domain/loan"
	"chama-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func bindRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Groups:             &GroupRepository{db: tx},
		Members:            &MemberRepository{db: tx},
		Contributions:      &ContributionRepository{db: tx},
		Loans:              &LoanRepository{db: tx},
		Repayments:         &RepaymentRepository{db: tx},
		Investments:        &InvestmentRepository{db: tx},
		InvestmentPayments: &InvestmentPaymentRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(bindRepos(tx))
	})
}

func (u *GormUoW) WithinGroupTx(ctx context.Context, groupID string, fn func(r uow.Repos, g *group.Group) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := bindRepos(tx)
		// lock the group row up-front to prevent lost aggregate updates
		g, err := r.Groups.GetByGroupIDForUpdate(ctx, groupID)
		if err != nil {
			return err
		}
		return fn(r, g)
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := bindRepos(tx)
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}

func (u *GormUoW) WithinInvestmentTx(ctx context.Context, investmentID string, fn func(r uow.Repos, i *investment.Investment) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := bindRepos(tx)
		i, err := r.Investments.GetByInvestmentIDForUpdate(ctx, investmentID)
		if err != nil {
			return err
		}
		return fn(r, i)
	})
}
