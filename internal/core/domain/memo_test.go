package domain_test

import (
	"testing"
	"time"

	"memoapp/internal/core/domain"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
)

type MemoTestSuite struct {
	suite.Suite
}

func TestMemoTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(MemoTestSuite))
}

func (s *MemoTestSuite) TestNormalize_TrimsAndDefaults() {
	memo := domain.Memo{
		Title:   "  Buy milk  ",
		Content: " remember the oat one \n",
	}

	memo.Normalize()

	Expect(memo.Title).To(Equal("Buy milk"))
	Expect(memo.Content).To(Equal("remember the oat one"))
	Expect(memo.Priority).To(Equal(domain.PriorityMedium))
	Expect(memo.Status).To(Equal(domain.StatusActive))
	Expect(memo.Tags).To(BeEmpty())
	Expect(memo.Tags).NotTo(BeNil())
}

func (s *MemoTestSuite) TestParsePriority_EmptyDefaultsToMedium() {
	priority, err := domain.ParsePriority("")

	Expect(err).To(BeNil())
	Expect(priority).To(Equal(domain.PriorityMedium))

	_, err = domain.ParsePriority("urgent")

	Expect(err).To(HaveOccurred())
}

func (s *MemoTestSuite) TestParseStatus_RejectsUnknown() {
	status, err := domain.ParseStatus("archived")

	Expect(err).To(BeNil())
	Expect(status).To(Equal(domain.StatusArchived))

	_, err = domain.ParseStatus("deleted")

	Expect(err).To(HaveOccurred())
}

func (s *MemoTestSuite) TestHasTag_IsCaseInsensitive() {
	memo := domain.Memo{Tags: []string{"Work", "urgent"}}

	Expect(memo.HasTag("work")).To(BeTrue())
	Expect(memo.HasTag("URGENT")).To(BeTrue())
	Expect(memo.HasTag("home")).To(BeFalse())
}

func (s *MemoTestSuite) TestFilter_Matches() {
	deadline := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	memo := domain.Memo{
		Title:    "Quarterly report",
		Content:  "Numbers for Q3",
		Category: "work",
		Tags:     []string{"reports"},
		Priority: domain.PriorityHigh,
		Status:   domain.StatusActive,
		Deadline: &deadline,
	}

	Expect(domain.MemoFilter{Category: "work"}.Matches(memo)).To(BeTrue())
	Expect(domain.MemoFilter{Category: "home"}.Matches(memo)).To(BeFalse())
	Expect(domain.MemoFilter{Status: domain.StatusArchived}.Matches(memo)).To(BeFalse())
	Expect(domain.MemoFilter{Priority: domain.PriorityHigh}.Matches(memo)).To(BeTrue())
	Expect(domain.MemoFilter{Tag: "REPORTS"}.Matches(memo)).To(BeTrue())
	Expect(domain.MemoFilter{Search: "quarterly"}.Matches(memo)).To(BeTrue())
	Expect(domain.MemoFilter{Search: "q3"}.Matches(memo)).To(BeTrue())
	Expect(domain.MemoFilter{Search: "missing"}.Matches(memo)).To(BeFalse())

	from := deadline.Add(-time.Hour)
	to := deadline.Add(time.Hour)

	Expect(domain.MemoFilter{DeadlineFrom: &from}.Matches(memo)).To(BeTrue())
	Expect(domain.MemoFilter{DeadlineFrom: &to}.Matches(memo)).To(BeFalse())
	Expect(domain.MemoFilter{DeadlineTo: &to}.Matches(memo)).To(BeTrue())
	Expect(domain.MemoFilter{DeadlineTo: &from}.Matches(memo)).To(BeFalse())
}

func (s *MemoTestSuite) TestFilter_DeadlineFilterExcludesMemosWithoutDeadline() {
	from := time.Now()

	memo := domain.Memo{Title: "No deadline", Content: "x", Status: domain.StatusActive}

	Expect(domain.MemoFilter{DeadlineFrom: &from}.Matches(memo)).To(BeFalse())
}

func (s *MemoTestSuite) TestFilter_IsZero() {
	Expect(domain.MemoFilter{}.IsZero()).To(BeTrue())
	Expect(domain.MemoFilter{Search: "x"}.IsZero()).To(BeFalse())
}

func (s *MemoTestSuite) TestPatch_AppliesOnlyProvidedFields() {
	memo := domain.Memo{
		Title:    "Original",
		Content:  "Body",
		Category: "work",
		Priority: domain.PriorityLow,
		Status:   domain.StatusActive,
	}

	title := "  Renamed  "
	priority := domain.PriorityHigh

	patch := domain.MemoPatch{
		Title:    &title,
		Priority: &priority,
	}

	Expect(patch.IsZero()).To(BeFalse())

	patch.Apply(&memo)

	Expect(memo.Title).To(Equal("Renamed"))
	Expect(memo.Priority).To(Equal(domain.PriorityHigh))
	Expect(memo.Content).To(Equal("Body"))
	Expect(memo.Category).To(Equal("work"))
	Expect(memo.Status).To(Equal(domain.StatusActive))
}

func (s *MemoTestSuite) TestPatch_ZeroPatchChangesNothing() {
	memo := domain.Memo{Title: "Keep", Content: "Keep too"}
	before := memo

	patch := domain.MemoPatch{}

	Expect(patch.IsZero()).To(BeTrue())

	patch.Apply(&memo)

	Expect(memo).To(Equal(before))
}
