package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/taskhub-dev/taskhub/internal/database/testutil"
	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/repository"
	"github.com/taskhub-dev/taskhub/pkg/apperrors"
)

type UserServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *UserService
}

func (s *UserServiceTestSuite) SetupTest() {
	s.db = testutil.MustOpenTestDB(s.T())
	s.service = NewUserService(repository.NewUserRepository(s.db))
}

func (s *UserServiceTestSuite) TestCreateByOwnerHashesPassword() {
	user, err := s.service.CreateByOwner(CreateUserInput{
		Email:    "new@example.com",
		Password: "s3cret-pass",
	})
	s.Require().NoError(err)

	s.Equal(models.RoleMember, user.Role)
	s.True(user.IsActive)
	s.NotEqual("s3cret-pass", user.PasswordHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))
}

func (s *UserServiceTestSuite) TestCreateByOwnerDuplicateEmailIsGeneric() {
	_, err := s.service.CreateByOwner(CreateUserInput{Email: "dup@example.com", Password: "pw"})
	s.Require().NoError(err)

	_, err = s.service.CreateByOwner(CreateUserInput{Email: "dup@example.com", Password: "pw"})
	s.ErrorIs(err, apperrors.ErrInvalidUserData)
	appErr := apperrors.From(err)
	s.Equal(400, appErr.StatusCode)
	s.NotContains(appErr.Message, "email")
}

func (s *UserServiceTestSuite) TestCreateByOwnerExplicitRole() {
	user, err := s.service.CreateByOwner(CreateUserInput{
		Email:    "boss@example.com",
		Password: "pw",
		Role:     models.RoleOwner,
	})
	s.Require().NoError(err)
	s.Equal(models.RoleOwner, user.Role)
}

func (s *UserServiceTestSuite) TestListDegradesForMembers() {
	admin, err := s.service.CreateByOwner(CreateUserInput{Email: "admin@example.com", Password: "pw", Role: models.RoleOwner})
	s.Require().NoError(err)
	member, err := s.service.CreateByOwner(CreateUserInput{Email: "member@example.com", Password: "pw"})
	s.Require().NoError(err)

	inactive := &models.User{Email: "gone@example.com", PasswordHash: "h", Role: models.RoleMember}
	s.Require().NoError(s.db.Create(inactive).Error)

	all, err := s.service.List(admin, 0, 0)
	s.Require().NoError(err)
	s.Len(all, 2) // inactive users are hidden

	own, err := s.service.List(member, 0, 0)
	s.Require().NoError(err)
	s.Require().Len(own, 1)
	s.Equal(member.ID, own[0].ID)
}

func (s *UserServiceTestSuite) TestAuthenticate() {
	created, err := s.service.CreateByOwner(CreateUserInput{Email: "login@example.com", Password: "right-pw"})
	s.Require().NoError(err)

	user, err := s.service.Authenticate("login@example.com", "right-pw")
	s.Require().NoError(err)
	s.Equal(created.ID, user.ID)
}

func (s *UserServiceTestSuite) TestAuthenticateWrongEmailAndPasswordMatch() {
	_, err := s.service.CreateByOwner(CreateUserInput{Email: "login@example.com", Password: "right-pw"})
	s.Require().NoError(err)

	_, badPassword := s.service.Authenticate("login@example.com", "wrong-pw")
	s.ErrorIs(badPassword, apperrors.ErrInvalidCredentials)

	_, badEmail := s.service.Authenticate("nobody@example.com", "right-pw")
	s.ErrorIs(badEmail, apperrors.ErrInvalidCredentials)

	// Unknown email and wrong password are indistinguishable.
	s.Equal(apperrors.From(badPassword).Message, apperrors.From(badEmail).Message)
}

func (s *UserServiceTestSuite) TestAuthenticateInactiveUser() {
	user, err := s.service.CreateByOwner(CreateUserInput{Email: "frozen@example.com", Password: "pw"})
	s.Require().NoError(err)
	s.Require().NoError(s.db.Model(user).Update("is_active", false).Error)

	_, err = s.service.Authenticate("frozen@example.com", "pw")
	s.ErrorIs(err, apperrors.ErrInactiveUser)
	s.Equal(403, apperrors.From(err).StatusCode)
}

func (s *UserServiceTestSuite) TestGetByEmail() {
	created, err := s.service.CreateByOwner(CreateUserInput{Email: "sub@example.com", Password: "pw"})
	s.Require().NoError(err)

	user, err := s.service.GetByEmail("sub@example.com")
	s.Require().NoError(err)
	s.Equal(created.ID, user.ID)

	_, err = s.service.GetByEmail("ghost@example.com")
	s.ErrorIs(err, apperrors.ErrUnauthenticated)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
