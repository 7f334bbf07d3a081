package group

import (
	"context"
	"errors"
	"testing"

	"chama-backend/internal/domain/access"
	groupDomain "chama-backend/internal/domain/group"
	memberDomain "chama-backend/internal/domain/member"
	"chama-backend/internal/domain/money"
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
	founderUser = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	otherUser   = "cccccccccccccccccccccccccccccccc"
)

func TestCreate_Validation(t *testing.T) {
	u := NewUsecase(uowmock.New(), notify.NewRecorder())
	caller := access.Caller{UserID: founderUser, Role: access.RoleMember}

	if _, err := u.Create(context.Background(), caller, CreateInput{Name: "ab", TargetAmount: dec("100")}); !errors.Is(err, ErrBadName) {
		t.Fatalf("short name: want ErrBadName, got %v", err)
	}
	if _, err := u.Create(context.Background(), caller, CreateInput{Name: "  a  ", TargetAmount: dec("100")}); !errors.Is(err, ErrBadName) {
		t.Fatalf("padded short name: want ErrBadName, got %v", err)
	}
	if _, err := u.Create(context.Background(), caller, CreateInput{Name: "village savings", TargetAmount: dec("0")}); !errors.Is(err, money.ErrNotPositive) {
		t.Fatalf("zero target: want ErrNotPositive, got %v", err)
	}
}

func TestCreate_FounderBecomesAdminMember(t *testing.T) {
	var (
		createdGroup  *groupDomain.Group
		createdMember *memberDomain.Member
	)
	repos := uow.Repos{
		Groups: &repomock.GroupRepo{
			CreateFn: func(ctx context.Context, g *groupDomain.Group) error {
				g.ID = 42 // simulate auto-increment
				createdGroup = g
				return nil
			},
		},
		Members: &repomock.MemberRepo{
			CreateFn: func(ctx context.Context, m *memberDomain.Member) error {
				createdMember = m
				return nil
			},
		},
	}
	mock := uowmock.New()
	mock.WithinTxFn = func(ctx context.Context, fn func(r uow.Repos) error) error {
		return fn(repos)
	}
	u := NewUsecase(mock, notify.NewRecorder())

	caller := access.Caller{UserID: founderUser, Role: access.RoleMember}
	dto, err := u.Create(context.Background(), caller, CreateInput{
		Name:         "  village savings  ",
		TargetAmount: dec("50000.00"),
		IsPublic:     true,
		MaxMembers:   20,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.Name != "village savings" {
		t.Errorf("name not trimmed: %q", dto.Name)
	}
	if createdGroup.AdminUserID != founderUser {
		t.Errorf("admin_user_id = %s, want founder", createdGroup.AdminUserID)
	}
	if !createdGroup.CurrentAmount.IsZero() {
		t.Errorf("new group must start at 0, got %s", createdGroup.CurrentAmount)
	}
	if createdMember.UserID != founderUser || !createdMember.IsAdmin || createdMember.Status != memberDomain.StatusActive {
		t.Errorf("founder member row wrong: %+v", createdMember)
	}
	if createdMember.GroupRef != 42 {
		t.Errorf("member group_ref = %d, want 42", createdMember.GroupRef)
	}
	if dto.MemberCount != 1 {
		t.Errorf("member_count = %d, want 1", dto.MemberCount)
	}
}

func archiveUoW(g *groupDomain.Group, repos uow.Repos) *uowmock.UoW {
	m := uowmock.New()
	m.WithinGroupTxFn = func(ctx context.Context, groupID string, fn func(r uow.Repos, gg *groupDomain.Group) error) error {
		if groupID != g.GroupID {
			return gorm.ErrRecordNotFound
		}
		return fn(repos, g)
	}
	return m
}

func TestArchive_RequiresTargetReached(t *testing.T) {
	g := &groupDomain.Group{
		ID:            1,
		GroupID:       "11111111111111111111111111111111",
		TargetAmount:  dec("50000.00"),
		CurrentAmount: dec("100.00"),
		Status:        groupDomain.StatusActive,
		AdminUserID:   founderUser,
	}
	u := NewUsecase(archiveUoW(g, uow.Repos{}), notify.NewRecorder())

	caller := access.Caller{UserID: founderUser, Role: access.RoleMember}
	if _, err := u.Archive(context.Background(), caller, g.GroupID); !errors.Is(err, groupDomain.ErrTargetNotReached) {
		t.Fatalf("want ErrTargetNotReached, got %v", err)
	}
}

func TestArchive_Success(t *testing.T) {
	g := &groupDomain.Group{
		ID:            1,
		GroupID:       "11111111111111111111111111111111",
		TargetAmount:  dec("50000.00"),
		CurrentAmount: dec("50000.00"),
		Status:        groupDomain.StatusActive,
		AdminUserID:   founderUser,
	}
	repos := uow.Repos{
		Groups: &repomock.GroupRepo{},
		Members: &repomock.MemberRepo{
			CountByGroupFn: func(ctx context.Context, groupRef uint64) (int64, error) { return 4, nil },
		},
	}
	rec := notify.NewRecorder()
	u := NewUsecase(archiveUoW(g, repos), rec)

	caller := access.Caller{UserID: founderUser, Role: access.RoleMember}
	dto, err := u.Archive(context.Background(), caller, g.GroupID)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if dto.Status != string(groupDomain.StatusArchived) {
		t.Errorf("status = %s, want archived", dto.Status)
	}
	if dto.MemberCount != 4 {
		t.Errorf("member_count = %d, want 4", dto.MemberCount)
	}
	names := rec.Names()
	if len(names) != 1 || names[0] != "group.archived" {
		t.Errorf("events = %v, want [group.archived]", names)
	}
}

func TestArchive_Forbidden(t *testing.T) {
	g := &groupDomain.Group{
		ID:            1,
		GroupID:       "11111111111111111111111111111111",
		TargetAmount:  dec("100.00"),
		CurrentAmount: dec("100.00"),
		Status:        groupDomain.StatusActive,
		AdminUserID:   founderUser,
	}
	u := NewUsecase(archiveUoW(g, uow.Repos{}), notify.NewRecorder())

	caller := access.Caller{UserID: otherUser, Role: access.RoleMember}
	if _, err := u.Archive(context.Background(), caller, g.GroupID); !errors.Is(err, access.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}

func TestArchive_AlreadyArchived(t *testing.T) {
	g := &groupDomain.Group{
		ID:            1,
		GroupID:       "11111111111111111111111111111111",
		TargetAmount:  dec("100.00"),
		CurrentAmount: dec("100.00"),
		Status:        groupDomain.StatusArchived,
		AdminUserID:   founderUser,
	}
	u := NewUsecase(archiveUoW(g, uow.Repos{}), notify.NewRecorder())

	caller := access.Caller{UserID: founderUser, Role: access.RoleMember}
	if _, err := u.Archive(context.Background(), caller, g.GroupID); !errors.Is(err, groupDomain.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	repos := uow.Repos{
		Groups: &repomock.GroupRepo{
			GetByGroupIDFn: func(ctx context.Context, groupID string) (*groupDomain.Group, error) {
				return nil, gorm.ErrRecordNotFound
			},
		},
	}
	mock := uowmock.New()
	mock.WithinTxFn = func(ctx context.Context, fn func(r uow.Repos) error) error {
		return fn(repos)
	}
	u := NewUsecase(mock, notify.NewRecorder())

	if _, err := u.Get(context.Background(), "nope"); !errors.Is(err, groupDomain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestList_FiltersAndCounts(t *testing.T) {
	rows := []groupDomain.Group{
		{ID: 1, GroupID: "11111111111111111111111111111111", Status: groupDomain.StatusActive},
		{ID: 2, GroupID: "22222222222222222222222222222222", Status: groupDomain.StatusActive},
	}
	var gotStatus groupDomain.Status
	repos := uow.Repos{
		Groups: &repomock.GroupRepo{
			ListFn: func(ctx context.Context, status groupDomain.Status) ([]groupDomain.Group, error) {
				gotStatus = status
				return rows, nil
			},
		},
		Members: &repomock.MemberRepo{
			CountByGroupFn: func(ctx context.Context, groupRef uint64) (int64, error) {
				return int64(groupRef * 10), nil
			},
		},
	}
	mock := uowmock.New()
	mock.WithinTxFn = func(ctx context.Context, fn func(r uow.Repos) error) error {
		return fn(repos)
	}
	u := NewUsecase(mock, notify.NewRecorder())

	out, err := u.List(context.Background(), "active")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotStatus != groupDomain.StatusActive {
		t.Errorf("status filter = %q, want active", gotStatus)
	}
	if len(out) != 2 || out[0].MemberCount != 10 || out[1].MemberCount != 20 {
		t.Errorf("unexpected listing: %+v", out)
	}
}
