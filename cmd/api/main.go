package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "chama-backend/internal/adapter/http"
	"chama-backend/internal/adapter/middleware"
	"chama-backend/internal/adapter/repository/mysql"
	"chama-backend/internal/config"
	"chama-backend/internal/domain/contribution"
	"chama-backend/internal/domain/group"
	"chama-backend/internal/domain/investment"
	"chama-backend/internal/domain/loan"
	"chama-backend/internal/domain/member"
	"chama-backend/internal/infrastructure/cache"
	"chama-backend/internal/infrastructure/db"
	"chama-backend/internal/notify"
	contribUC "chama-backend/internal/usecase/contribution"
	groupUC "chama-backend/internal/usecase/group"
	investUC "chama-backend/internal/usecase/investment"
	loanUC "chama-backend/internal/usecase/loan"
	memberUC "chama-backend/internal/usecase/member"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(
		&group.Group{}, &member.Member{}, &contribution.Contribution{},
		&loan.Loan{}, &loan.Repayment{}, &investment.Investment{}, &investment.Payment{},
	); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	uow := mysql.NewGormUoW(gdb)
	sink := notify.NewRedisSink(rdb, cfg.EventChannel)

	groupH := httpadp.NewGroupHandler(groupUC.NewUsecase(uow, sink))
	memberH := httpadp.NewMemberHandler(memberUC.NewUsecase(uow, sink))
	contribH := httpadp.NewContributionHandler(contribUC.NewUsecase(uow, sink))
	loanH := httpadp.NewLoanHandler(loanUC.NewUsecase(uow, sink))
	investH := httpadp.NewInvestmentHandler(investUC.NewUsecase(uow, sink))
	h := httpadp.NewHealthHandler(gdb, rdb)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	api := e.Group("/api",
		middleware.Identity(),
		middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
	)

	api.POST("/groups", groupH.CreateGroup)
	api.GET("/groups", groupH.ListGroups)
	api.GET("/groups/:group_id", groupH.GetGroup)
	api.POST("/groups/:group_id/archive", groupH.ArchiveGroup)
	api.DELETE("/groups/:group_id", groupH.DeleteGroup)

	api.POST("/groups/:group_id/members", memberH.JoinGroup)
	api.GET("/groups/:group_id/members", memberH.ListMembers)
	api.POST("/members/:member_id/approve", memberH.ApproveMember)
	api.POST("/members/:member_id/suspend", memberH.SuspendMember)
	api.POST("/members/:member_id/reinstate", memberH.ReinstateMember)

	api.POST("/groups/:group_id/contributions", contribH.RecordContribution)
	api.GET("/groups/:group_id/contributions", contribH.ListContributions)
	api.POST("/contributions/:contribution_id/confirm", contribH.ConfirmContribution)
	api.POST("/contributions/:contribution_id/reject", contribH.RejectContribution)
	api.POST("/groups/:group_id/recalculate", contribH.RecalculateBalance)

	api.POST("/groups/:group_id/loans", loanH.ApplyForLoan)
	api.GET("/loans/:loan_id", loanH.GetLoan)
	api.POST("/loans/:loan_id/approve", loanH.ApproveLoan)
	api.POST("/loans/:loan_id/reject", loanH.RejectLoan)
	api.POST("/loans/:loan_id/repayments", loanH.RecordRepayment)
	api.GET("/loans/:loan_id/repayments", loanH.ListRepayments)
	api.GET("/loans/:loan_id/monthly-payment", loanH.MonthlyPayment)
	api.POST("/loans/:loan_id/recalculate", loanH.RecalculateLoan)

	api.POST("/groups/:group_id/investments", investH.CreateInvestment)
	api.GET("/investments/:investment_id", investH.GetInvestment)
	api.POST("/investments/:investment_id/payments", investH.RecordPayment)
	api.POST("/investments/:investment_id/evaluate", investH.EvaluateMaturity)
	api.POST("/investments/sweep", investH.SweepInvestments)
	api.POST("/investments/:investment_id/withdraw", investH.WithdrawInvestment)
	api.POST("/investments/:investment_id/recalculate", investH.RecalculateInvestment)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
