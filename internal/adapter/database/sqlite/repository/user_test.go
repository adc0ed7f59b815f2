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

type UserRepositoryTestSuite struct {
	suite.Suite
	Repo port.UserRepository
}

func (s *UserRepositoryTestSuite) SetupTest() {
	s.Repo = repository.NewUserRepository(InitTestDB())
}

func TestUserRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserRepositoryTestSuite))
}

func (s *UserRepositoryTestSuite) newUser(email string) domain.User {
	now := time.Now()

	return factory.NewUser[domain.User](map[string]any{
		"UUID":      uuid.New(),
		"Name":      "Jane Doe",
		"Email":     email,
		"CreatedAt": now,
		"UpdatedAt": now,
	})
}

func (s *UserRepositoryTestSuite) TestCreate_AssignsID() {
	created, err := s.Repo.Create(context.Background(), s.newUser("jane@example.com"))

	Expect(err).To(BeNil())
	Expect(created.ID).To(BeNumerically(">", 0))
	Expect(created.Email).To(Equal("jane@example.com"))
}

func (s *UserRepositoryTestSuite) TestCreate_DuplicateEmail() {
	_, err := s.Repo.Create(context.Background(), s.newUser("dup@example.com"))
	Expect(err).To(BeNil())

	_, err = s.Repo.Create(context.Background(), s.newUser("dup@example.com"))
	Expect(err).To(MatchError(domain.ErrEmailTaken))
}

func (s *UserRepositoryTestSuite) TestGetByEmail_RoundTripsUUID() {
	user := s.newUser("uuid@example.com")

	created, err := s.Repo.Create(context.Background(), user)
	Expect(err).To(BeNil())

	fetched, err := s.Repo.GetByEmail(context.Background(), "uuid@example.com")

	Expect(err).To(BeNil())
	Expect(fetched.ID).To(Equal(created.ID))
	Expect(fetched.UUID).To(Equal(user.UUID))
	Expect(fetched.EncryptedPassword).To(Equal(user.EncryptedPassword))
}

func (s *UserRepositoryTestSuite) TestGetByEmail_Missing() {
	_, err := s.Repo.GetByEmail(context.Background(), "nobody@example.com")

	Expect(err).To(MatchError(domain.ErrNotFound))
}

func (s *UserRepositoryTestSuite) TestGetByID() {
	created, err := s.Repo.Create(context.Background(), s.newUser("byid@example.com"))
	Expect(err).To(BeNil())

	fetched, err := s.Repo.GetByID(context.Background(), created.ID)

	Expect(err).To(BeNil())
	Expect(fetched.Email).To(Equal("byid@example.com"))

	_, err = s.Repo.GetByID(context.Background(), created.ID+100)
	Expect(err).To(MatchError(domain.ErrNotFound))
}
