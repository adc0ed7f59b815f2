package service_test

import (
	"context"
	"testing"

	"memoapp/internal/adapter/database/memory"
	"memoapp/internal/core/domain"
	"memoapp/internal/core/port"
	"memoapp/internal/core/service"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
)

const testUserID = 42

type MemoServiceTestSuite struct {
	suite.Suite
	svc port.MemoService
}

func (s *MemoServiceTestSuite) SetupTest() {
	s.svc = service.NewMemoService(memory.NewStore())
}

func TestMemoServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(MemoServiceTestSuite))
}

func (s *MemoServiceTestSuite) createMemo(title string, fields ...func(*domain.Memo)) domain.Memo {
	memo := domain.Memo{
		Title:   title,
		Content: "content of " + title,
		UserID:  testUserID,
	}

	for _, f := range fields {
		f(&memo)
	}

	created, err := s.svc.Create(context.Background(), memo)
	Expect(err).To(BeNil())

	return created
}

func (s *MemoServiceTestSuite) TestCreate_EchoesFieldsAndDefaults() {
	memo := domain.Memo{
		Title:    "  Test Memo  ",
		Content:  "  some text  ",
		Category: "work",
		Tags:     []string{"a", "b"},
		UserID:   testUserID,
	}

	created, err := s.svc.Create(context.Background(), memo)

	Expect(err).To(BeNil())
	Expect(created.ID).To(BeNumerically(">", 0))
	Expect(created.Title).To(Equal("Test Memo"))
	Expect(created.Content).To(Equal("some text"))
	Expect(created.Category).To(Equal("work"))
	Expect(created.Tags).To(Equal([]string{"a", "b"}))
	Expect(created.Priority).To(Equal(domain.PriorityMedium))
	Expect(created.Status).To(Equal(domain.StatusActive))
	Expect(created.CompletedAt).To(BeNil())

	fetched, err := s.svc.Get(context.Background(), testUserID, created.ID)

	Expect(err).To(BeNil())
	Expect(fetched.Title).To(Equal("Test Memo"))
	Expect(fetched.Status).To(Equal(domain.StatusActive))
}

func (s *MemoServiceTestSuite) TestGet_OtherUsersMemoIsNotFound() {
	created := s.createMemo("Private")

	_, err := s.svc.Get(context.Background(), testUserID+1, created.ID)

	Expect(err).To(MatchError(domain.ErrNotFound))
}

func (s *MemoServiceTestSuite) TestUpdate_MergesPartialFields() {
	created := s.createMemo("Before")

	title := "After"
	priority := domain.PriorityHigh

	updated, err := s.svc.Update(context.Background(), testUserID, created.ID, domain.MemoPatch{
		Title:    &title,
		Priority: &priority,
	})

	Expect(err).To(BeNil())
	Expect(updated.Title).To(Equal("After"))
	Expect(updated.Priority).To(Equal(domain.PriorityHigh))
	Expect(updated.Content).To(Equal(created.Content))
	Expect(updated.UpdatedAt).To(BeTemporally(">=", created.UpdatedAt))
}

func (s *MemoServiceTestSuite) TestArchive_IsIdempotent() {
	created := s.createMemo("Archive me")

	first, err := s.svc.Archive(context.Background(), testUserID, created.ID)

	Expect(err).To(BeNil())
	Expect(first.Status).To(Equal(domain.StatusArchived))
	Expect(first.CompletedAt).NotTo(BeNil())

	second, err := s.svc.Archive(context.Background(), testUserID, created.ID)

	Expect(err).To(BeNil())
	Expect(second.Status).To(Equal(domain.StatusArchived))
}

func (s *MemoServiceTestSuite) TestArchiveRestore_RoundTrip() {
	created := s.createMemo("Round trip", func(m *domain.Memo) {
		m.Category = "cycle"
		m.Tags = []string{"x", "y"}
		m.Priority = domain.PriorityLow
	})

	archived, err := s.svc.Archive(context.Background(), testUserID, created.ID)
	Expect(err).To(BeNil())
	Expect(archived.Status).To(Equal(domain.StatusArchived))

	restored, err := s.svc.Restore(context.Background(), testUserID, created.ID)

	Expect(err).To(BeNil())
	Expect(restored.Status).To(Equal(domain.StatusActive))
	Expect(restored.CompletedAt).To(BeNil())
	Expect(restored.ID).To(Equal(created.ID))
	Expect(restored.Title).To(Equal(created.Title))
	Expect(restored.Content).To(Equal(created.Content))
	Expect(restored.Category).To(Equal(created.Category))
	Expect(restored.Tags).To(Equal(created.Tags))
	Expect(restored.Priority).To(Equal(created.Priority))
}

func (s *MemoServiceTestSuite) TestPermanentDelete_RequiresPriorArchival() {
	created := s.createMemo("Still active")

	err := s.svc.PermanentlyDelete(context.Background(), testUserID, created.ID)

	Expect(err).To(MatchError(domain.ErrMemoNotArchived))

	_, err = s.svc.Get(context.Background(), testUserID, created.ID)
	Expect(err).To(BeNil())
}

func (s *MemoServiceTestSuite) TestPermanentDelete_IsTerminal() {
	created := s.createMemo("Doomed")

	_, err := s.svc.Archive(context.Background(), testUserID, created.ID)
	Expect(err).To(BeNil())

	err = s.svc.PermanentlyDelete(context.Background(), testUserID, created.ID)
	Expect(err).To(BeNil())

	_, err = s.svc.Get(context.Background(), testUserID, created.ID)
	Expect(err).To(MatchError(domain.ErrNotFound))

	err = s.svc.PermanentlyDelete(context.Background(), testUserID, created.ID)
	Expect(err).To(MatchError(domain.ErrNotFound))

	list, err := s.svc.List(context.Background(), testUserID, domain.MemoFilter{}, 1, 30)
	Expect(err).To(BeNil())

	for _, memo := range list.Memos {
		Expect(memo.ID).NotTo(Equal(created.ID))
	}
}

func (s *MemoServiceTestSuite) TestList_StatusFilterIsStrict() {
	s.createMemo("Active one")
	archived := s.createMemo("Archived one")

	_, err := s.svc.Archive(context.Background(), testUserID, archived.ID)
	Expect(err).To(BeNil())

	activeList, err := s.svc.List(context.Background(), testUserID, domain.MemoFilter{Status: domain.StatusActive}, 1, 30)
	Expect(err).To(BeNil())
	Expect(activeList.Total).To(Equal(1))

	for _, memo := range activeList.Memos {
		Expect(memo.Status).To(Equal(domain.StatusActive))
	}

	archivedList, err := s.svc.List(context.Background(), testUserID, domain.MemoFilter{Status: domain.StatusArchived}, 1, 30)
	Expect(err).To(BeNil())
	Expect(archivedList.Total).To(Equal(1))

	for _, memo := range archivedList.Memos {
		Expect(memo.Status).To(Equal(domain.StatusArchived))
	}
}

func (s *MemoServiceTestSuite) TestList_OmittingStatusReturnsAll() {
	s.createMemo("Active one")
	archived := s.createMemo("Archived one")

	_, err := s.svc.Archive(context.Background(), testUserID, archived.ID)
	Expect(err).To(BeNil())

	list, err := s.svc.List(context.Background(), testUserID, domain.MemoFilter{}, 1, 30)

	Expect(err).To(BeNil())
	Expect(list.Total).To(Equal(2))
}

func (s *MemoServiceTestSuite) TestList_DefaultsAndPagination() {
	for i := 0; i < 35; i++ {
		s.createMemo("Memo")
	}

	list, err := s.svc.List(context.Background(), testUserID, domain.MemoFilter{}, 0, 0)

	Expect(err).To(BeNil())
	Expect(list.Page).To(Equal(1))
	Expect(list.Limit).To(Equal(30))
	Expect(list.Memos).To(HaveLen(30))
	Expect(list.Total).To(Equal(35))
	Expect(list.TotalPages).To(Equal(2))

	second, err := s.svc.List(context.Background(), testUserID, domain.MemoFilter{}, 2, 30)

	Expect(err).To(BeNil())
	Expect(second.Memos).To(HaveLen(5))
}

func (s *MemoServiceTestSuite) TestSearch_EmptyPredicateReturnsNothing() {
	s.createMemo("Should not appear")

	result, err := s.svc.Search(context.Background(), testUserID, domain.MemoFilter{}, 1, 30)

	Expect(err).To(BeNil())
	Expect(result.Memos).To(BeEmpty())
	Expect(result.Total).To(Equal(0))
	Expect(result.TotalPages).To(Equal(0))
}

func (s *MemoServiceTestSuite) TestSearch_FreeTextAcrossTitleContentTags() {
	s.createMemo("Groceries", func(m *domain.Memo) {
		m.Content = "milk and eggs"
		m.Tags = []string{"shopping"}
	})
	s.createMemo("Workout", func(m *domain.Memo) {
		m.Content = "leg day"
	})

	byTitle, err := s.svc.Search(context.Background(), testUserID, domain.MemoFilter{Search: "groc"}, 1, 30)
	Expect(err).To(BeNil())
	Expect(byTitle.Total).To(Equal(1))

	byContent, err := s.svc.Search(context.Background(), testUserID, domain.MemoFilter{Search: "eggs"}, 1, 30)
	Expect(err).To(BeNil())
	Expect(byContent.Total).To(Equal(1))

	byTag, err := s.svc.Search(context.Background(), testUserID, domain.MemoFilter{Search: "shopping"}, 1, 30)
	Expect(err).To(BeNil())
	Expect(byTag.Total).To(Equal(1))
}

func (s *MemoServiceTestSuite) TestLifecycle_FullScenario() {
	ctx := context.Background()

	before, err := s.svc.List(ctx, testUserID, domain.MemoFilter{Status: domain.StatusActive}, 1, 30)
	Expect(err).To(BeNil())

	created := s.createMemo("Test Memo")

	afterCreate, err := s.svc.List(ctx, testUserID, domain.MemoFilter{Status: domain.StatusActive}, 1, 30)
	Expect(err).To(BeNil())
	Expect(afterCreate.Total).To(Equal(before.Total + 1))

	_, err = s.svc.Archive(ctx, testUserID, created.ID)
	Expect(err).To(BeNil())

	activeAfterArchive, err := s.svc.List(ctx, testUserID, domain.MemoFilter{Status: domain.StatusActive}, 1, 30)
	Expect(err).To(BeNil())

	for _, memo := range activeAfterArchive.Memos {
		Expect(memo.ID).NotTo(Equal(created.ID))
	}

	archivedList, err := s.svc.List(ctx, testUserID, domain.MemoFilter{Status: domain.StatusArchived}, 1, 30)
	Expect(err).To(BeNil())

	found := false
	for _, memo := range archivedList.Memos {
		if memo.ID == created.ID {
			found = true
		}
	}
	Expect(found).To(BeTrue())

	err = s.svc.PermanentlyDelete(ctx, testUserID, created.ID)
	Expect(err).To(BeNil())

	_, err = s.svc.Get(ctx, testUserID, created.ID)
	Expect(err).To(MatchError(domain.ErrNotFound))
}
