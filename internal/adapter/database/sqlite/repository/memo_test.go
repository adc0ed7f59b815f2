package repository_test

import (
	"context"
	"testing"
	"time"

	. "memoapp/pkg/test"

	"memoapp/internal/adapter/database/sqlite/repository"
	"memoapp/internal/core/domain"
	"memoapp/internal/core/port"
	"memoapp/pkg/test/factory"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
)

type MemoRepositoryTestSuite struct {
	suite.Suite
	MemoRepo port.MemoRepository
	UserRepo port.UserRepository
	userID   int
}

func (s *MemoRepositoryTestSuite) SetupTest() {
	db := InitTestDB()

	s.MemoRepo = repository.NewMemoRepository(db)
	s.UserRepo = repository.NewUserRepository(db)

	user, err := s.UserRepo.Create(context.Background(), factory.NewUser[domain.User](map[string]any{
		"UUID":      uuid.New(),
		"Email":     "test@example.com",
		"CreatedAt": time.Now(),
		"UpdatedAt": time.Now(),
	}))

	Expect(err).To(BeNil())
	s.userID = user.ID
}

func TestMemoRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(MemoRepositoryTestSuite))
}

func (s *MemoRepositoryTestSuite) newMemo(title string, status domain.Status) domain.Memo {
	now := time.Now()

	return factory.NewMemo[domain.Memo](map[string]any{
		"Title":     title,
		"Content":   "content of " + title,
		"Category":  "general",
		"Tags":      []string{"one", "two"},
		"Priority":  domain.PriorityMedium,
		"Status":    status,
		"CreatedAt": now,
		"UpdatedAt": now,
		"UserID":    s.userID,
	})
}

func (s *MemoRepositoryTestSuite) TestList_Empty() {
	memos, total, err := s.MemoRepo.List(context.Background(), s.userID, domain.MemoFilter{}, 1, 10)

	Expect(err).To(BeNil())
	Expect(memos).To(BeEmpty())
	Expect(total).To(Equal(0))
}

func (s *MemoRepositoryTestSuite) TestCreate_RoundTripsTags() {
	created, err := s.MemoRepo.Create(context.Background(), s.newMemo("Tagged", domain.StatusActive))

	Expect(err).To(BeNil())
	Expect(created.ID).To(BeNumerically(">", 0))
	Expect(created.Tags).To(Equal([]string{"one", "two"}))

	fetched, err := s.MemoRepo.GetByID(context.Background(), created.ID)

	Expect(err).To(BeNil())
	Expect(fetched.Tags).To(Equal([]string{"one", "two"}))
	Expect(fetched.Title).To(Equal("Tagged"))
}

func (s *MemoRepositoryTestSuite) TestCreate_NullableTimestamps() {
	memo := s.newMemo("Bare", domain.StatusActive)
	memo.Tags = []string{}
	memo.Deadline = nil
	memo.CompletedAt = nil

	created, err := s.MemoRepo.Create(context.Background(), memo)

	Expect(err).To(BeNil())
	Expect(created.Deadline).To(BeNil())
	Expect(created.CompletedAt).To(BeNil())
	Expect(created.Tags).To(BeEmpty())

	deadline := time.Now().Add(48 * time.Hour).UTC()
	withDeadline := s.newMemo("Scheduled", domain.StatusActive)
	withDeadline.Deadline = &deadline

	created, err = s.MemoRepo.Create(context.Background(), withDeadline)

	Expect(err).To(BeNil())
	Expect(created.Deadline).NotTo(BeNil())
	Expect(*created.Deadline).To(BeTemporally("~", deadline, time.Second))
}

func (s *MemoRepositoryTestSuite) TestGetByID_Missing() {
	_, err := s.MemoRepo.GetByID(context.Background(), 9999)

	Expect(err).To(MatchError(domain.ErrNotFound))
}

func (s *MemoRepositoryTestSuite) TestUpdate_PersistsChanges() {
	created, err := s.MemoRepo.Create(context.Background(), s.newMemo("Before", domain.StatusActive))
	Expect(err).To(BeNil())

	created.Title = "After"
	created.Status = domain.StatusArchived
	now := time.Now()
	created.CompletedAt = &now
	created.UpdatedAt = now

	updated, err := s.MemoRepo.Update(context.Background(), created)

	Expect(err).To(BeNil())
	Expect(updated.Title).To(Equal("After"))
	Expect(updated.Status).To(Equal(domain.StatusArchived))
	Expect(updated.CompletedAt).NotTo(BeNil())
}

func (s *MemoRepositoryTestSuite) TestUpdate_MissingIsNotFound() {
	memo := s.newMemo("Ghost", domain.StatusActive)
	memo.ID = 12345

	_, err := s.MemoRepo.Update(context.Background(), memo)

	Expect(err).To(MatchError(domain.ErrNotFound))
}

func (s *MemoRepositoryTestSuite) TestDelete_OnlyArchivedRows() {
	active, err := s.MemoRepo.Create(context.Background(), s.newMemo("Active", domain.StatusActive))
	Expect(err).To(BeNil())

	err = s.MemoRepo.Delete(context.Background(), active.ID)
	Expect(err).To(MatchError(domain.ErrMemoNotArchived))

	archived, err := s.MemoRepo.Create(context.Background(), s.newMemo("Archived", domain.StatusArchived))
	Expect(err).To(BeNil())

	err = s.MemoRepo.Delete(context.Background(), archived.ID)
	Expect(err).To(BeNil())

	_, err = s.MemoRepo.GetByID(context.Background(), archived.ID)
	Expect(err).To(MatchError(domain.ErrNotFound))

	err = s.MemoRepo.Delete(context.Background(), archived.ID)
	Expect(err).To(MatchError(domain.ErrNotFound))
}

func (s *MemoRepositoryTestSuite) TestList_Filters() {
	ctx := context.Background()

	work := s.newMemo("Work memo", domain.StatusActive)
	work.Category = "work"
	work.Priority = domain.PriorityHigh
	work.Tags = []string{"project"}

	home := s.newMemo("Home memo", domain.StatusArchived)
	home.Category = "home"
	home.Priority = domain.PriorityLow
	home.Tags = []string{"chores"}

	_, err := s.MemoRepo.Create(ctx, work)
	Expect(err).To(BeNil())
	_, err = s.MemoRepo.Create(ctx, home)
	Expect(err).To(BeNil())

	byCategory, total, err := s.MemoRepo.List(ctx, s.userID, domain.MemoFilter{Category: "work"}, 1, 10)
	Expect(err).To(BeNil())
	Expect(total).To(Equal(1))
	Expect(byCategory[0].Title).To(Equal("Work memo"))

	byStatus, total, err := s.MemoRepo.List(ctx, s.userID, domain.MemoFilter{Status: domain.StatusArchived}, 1, 10)
	Expect(err).To(BeNil())
	Expect(total).To(Equal(1))
	Expect(byStatus[0].Status).To(Equal(domain.StatusArchived))

	byTag, total, err := s.MemoRepo.List(ctx, s.userID, domain.MemoFilter{Tag: "chores"}, 1, 10)
	Expect(err).To(BeNil())
	Expect(total).To(Equal(1))
	Expect(byTag[0].Title).To(Equal("Home memo"))

	bySearch, total, err := s.MemoRepo.List(ctx, s.userID, domain.MemoFilter{Search: "home"}, 1, 10)
	Expect(err).To(BeNil())
	Expect(total).To(Equal(1))
	Expect(bySearch[0].Title).To(Equal("Home memo"))
}

func (s *MemoRepositoryTestSuite) TestList_ScopedToOwner() {
	ctx := context.Background()

	other, err := s.UserRepo.Create(ctx, domain.User{
		UUID:              uuid.New(),
		Name:              "Other",
		Email:             "other@example.com",
		EncryptedPassword: "irrelevant",
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	})
	Expect(err).To(BeNil())

	mine := s.newMemo("Mine", domain.StatusActive)
	theirs := s.newMemo("Theirs", domain.StatusActive)
	theirs.UserID = other.ID

	_, err = s.MemoRepo.Create(ctx, mine)
	Expect(err).To(BeNil())
	_, err = s.MemoRepo.Create(ctx, theirs)
	Expect(err).To(BeNil())

	memos, total, err := s.MemoRepo.List(ctx, s.userID, domain.MemoFilter{}, 1, 10)

	Expect(err).To(BeNil())
	Expect(total).To(Equal(1))
	Expect(memos[0].Title).To(Equal("Mine"))
}
