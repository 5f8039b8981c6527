package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/taskhub-dev/taskhub/internal/database/testutil"
	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/repository"
	"github.com/taskhub-dev/taskhub/pkg/apperrors"
)

type CommentServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *CommentService

	admin *models.User
	alice *models.User
	bob   *models.User
	task  *models.Task
}

func (s *CommentServiceTestSuite) SetupTest() {
	s.db = testutil.MustOpenTestDB(s.T())
	s.service = NewCommentService(
		repository.NewCommentRepository(s.db),
		repository.NewTaskRepository(s.db),
	)

	s.admin = s.createUser("admin@example.com", models.RoleOwner)
	s.alice = s.createUser("alice@example.com", models.RoleMember)
	s.bob = s.createUser("bob@example.com", models.RoleMember)

	s.task = &models.Task{Title: "alice task", OwnerID: s.alice.ID}
	s.Require().NoError(s.db.Create(s.task).Error)
}

func (s *CommentServiceTestSuite) createUser(email string, role models.UserRole) *models.User {
	user := &models.User{Email: email, PasswordHash: "hashed", Role: role, IsActive: true}
	s.Require().NoError(s.db.Create(user).Error)
	return user
}

func (s *CommentServiceTestSuite) TestCreateForcesAuthor() {
	comment, err := s.service.Create(s.alice, s.task.ID, "first!")
	s.Require().NoError(err)
	s.Equal(s.alice.ID, comment.AuthorID)
	s.Equal(s.task.ID, comment.TaskID)
}

func (s *CommentServiceTestSuite) TestCreateOnMissingTask() {
	_, err := s.service.Create(s.alice, 99999, "lost")
	s.ErrorIs(err, apperrors.ErrTaskNotFound)
}

func (s *CommentServiceTestSuite) TestCreateMasksDeniedTaskAccess() {
	// Bob cannot see Alice's task, so commenting reports task-not-found.
	_, err := s.service.Create(s.bob, s.task.ID, "sneaky")
	s.ErrorIs(err, apperrors.ErrTaskNotFound)

	// OWNER role can comment on any task.
	comment, err := s.service.Create(s.admin, s.task.ID, "moderator note")
	s.Require().NoError(err)
	s.Equal(s.admin.ID, comment.AuthorID)
}

func (s *CommentServiceTestSuite) TestListNewestFirstWithAuthorsResolved() {
	old := &models.Comment{Content: "older", TaskID: s.task.ID, AuthorID: s.alice.ID,
		CreatedAt: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)}
	s.Require().NoError(s.db.Create(old).Error)
	recent := &models.Comment{Content: "newer", TaskID: s.task.ID, AuthorID: s.admin.ID,
		CreatedAt: time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)}
	s.Require().NoError(s.db.Create(recent).Error)

	comments, err := s.service.ListForTask(s.alice, s.task.ID, 0, 0)
	s.Require().NoError(err)
	s.Require().Len(comments, 2)
	s.Equal("newer", comments[0].Content)
	s.Equal("admin@example.com", comments[0].Author.Email)
	s.Equal("older", comments[1].Content)
	s.Equal("alice@example.com", comments[1].Author.Email)
}

func (s *CommentServiceTestSuite) TestListMasksDeniedTaskAccess() {
	_, err := s.service.ListForTask(s.bob, s.task.ID, 0, 0)
	s.ErrorIs(err, apperrors.ErrTaskNotFound)
}

func (s *CommentServiceTestSuite) TestUpdateIsAuthorOnly() {
	comment, err := s.service.Create(s.alice, s.task.ID, "draft")
	s.Require().NoError(err)

	updated, err := s.service.Update(s.alice, comment.ID, "final")
	s.Require().NoError(err)
	s.Equal("final", updated.Content)

	// OWNER role gets no edit rights over foreign comments.
	_, err = s.service.Update(s.admin, comment.ID, "rewrite")
	s.ErrorIs(err, apperrors.ErrCommentNotFound)

	_, err = s.service.Update(s.bob, comment.ID, "rewrite")
	s.ErrorIs(err, apperrors.ErrCommentNotFound)
}

func (s *CommentServiceTestSuite) TestUpdateMissingComment() {
	_, err := s.service.Update(s.alice, 99999, "ghost")
	s.ErrorIs(err, apperrors.ErrCommentNotFound)
}

func (s *CommentServiceTestSuite) TestDeleteAllowsAuthorAndModerator() {
	byAuthor, err := s.service.Create(s.alice, s.task.ID, "mine")
	s.Require().NoError(err)
	s.Require().NoError(s.service.Delete(s.alice, byAuthor.ID))

	moderated, err := s.service.Create(s.alice, s.task.ID, "to be moderated")
	s.Require().NoError(err)
	s.Require().NoError(s.service.Delete(s.admin, moderated.ID))

	var count int64
	s.db.Model(&models.Comment{}).Where("task_id = ?", s.task.ID).Count(&count)
	s.Zero(count)
}

func (s *CommentServiceTestSuite) TestDeleteMasksStranger() {
	comment, err := s.service.Create(s.alice, s.task.ID, "keep out")
	s.Require().NoError(err)

	err = s.service.Delete(s.bob, comment.ID)
	s.ErrorIs(err, apperrors.ErrCommentNotFound)
	s.Equal(404, apperrors.From(err).StatusCode)
}

func TestCommentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CommentServiceTestSuite))
}
