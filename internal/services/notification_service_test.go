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

type NotificationServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *NotificationService

	admin *models.User
	alice *models.User

	// Fixed clock for the due-date scan: 2025-06-15 12:00 UTC.
	now time.Time
}

func (s *NotificationServiceTestSuite) SetupTest() {
	s.db = testutil.MustOpenTestDB(s.T())
	s.now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	s.service = NewNotificationService(
		repository.NewNotificationRepository(s.db),
		repository.NewTaskRepository(s.db),
		WithNow(func() time.Time { return s.now }),
	)

	s.admin = s.createUser("admin@example.com", models.RoleOwner)
	s.alice = s.createUser("alice@example.com", models.RoleMember)
}

func (s *NotificationServiceTestSuite) createUser(email string, role models.UserRole) *models.User {
	user := &models.User{Email: email, PasswordHash: "hashed", Role: role, IsActive: true}
	s.Require().NoError(s.db.Create(user).Error)
	return user
}

func (s *NotificationServiceTestSuite) createNotification(userID uint64, read bool) *models.Notification {
	task := &models.Task{Title: "task", OwnerID: userID}
	s.Require().NoError(s.db.Create(task).Error)
	n := &models.Notification{
		Message: "Task 'task' is overdue",
		Type:    models.NotificationOverdue,
		IsRead:  read,
		UserID:  userID,
		TaskID:  task.ID,
	}
	s.Require().NoError(s.db.Create(n).Error)
	return n
}

func (s *NotificationServiceTestSuite) dueTask(title string, ownerID uint64, due time.Time, status models.TaskStatus) *models.Task {
	task := &models.Task{Title: title, Status: status, DueDate: &due, OwnerID: ownerID}
	s.Require().NoError(s.db.Create(task).Error)
	return task
}

func (s *NotificationServiceTestSuite) TestListIsScopedToCaller() {
	s.createNotification(s.alice.ID, false)
	s.createNotification(s.admin.ID, false)

	mine, err := s.service.List(s.alice, false, 0, 0)
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Equal(s.alice.ID, mine[0].UserID)
}

func (s *NotificationServiceTestSuite) TestListUnreadOnly() {
	s.createNotification(s.alice.ID, true)
	unread := s.createNotification(s.alice.ID, false)

	got, err := s.service.List(s.alice, true, 0, 0)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(unread.ID, got[0].ID)

	count, err := s.service.CountUnread(s.alice)
	s.Require().NoError(err)
	s.EqualValues(1, count)
}

func (s *NotificationServiceTestSuite) TestMarkReadIsIdempotent() {
	n := s.createNotification(s.alice.ID, false)

	first, err := s.service.MarkRead(s.alice, n.ID)
	s.Require().NoError(err)
	s.True(first.IsRead)

	again, err := s.service.MarkRead(s.alice, n.ID)
	s.Require().NoError(err)
	s.True(again.IsRead)
}

func (s *NotificationServiceTestSuite) TestRecipientOnlyNoRoleBypass() {
	n := s.createNotification(s.alice.ID, false)

	// OWNER role does not open someone else's inbox.
	_, err := s.service.MarkRead(s.admin, n.ID)
	s.ErrorIs(err, apperrors.ErrNotificationNotFound)
	s.Equal(404, apperrors.From(err).StatusCode)

	err = s.service.Delete(s.admin, n.ID)
	s.ErrorIs(err, apperrors.ErrNotificationNotFound)

	s.Require().NoError(s.service.Delete(s.alice, n.ID))

	_, err = s.service.MarkRead(s.alice, n.ID)
	s.ErrorIs(err, apperrors.ErrNotificationNotFound)
}

func (s *NotificationServiceTestSuite) TestGenerateClassifiesBuckets() {
	s.dueTask("late", s.alice.ID, s.now.Add(-48*time.Hour), models.TaskStatusTodo)
	s.dueTask("tonight", s.alice.ID, s.now.Add(5*time.Hour), models.TaskStatusInProgress)
	s.dueTask("tomorrow", s.alice.ID, s.now.Add(20*time.Hour), models.TaskStatusTodo)
	s.dueTask("next week", s.alice.ID, s.now.Add(120*time.Hour), models.TaskStatusTodo)
	s.dueTask("finished", s.alice.ID, s.now.Add(-48*time.Hour), models.TaskStatusDone)

	result, err := s.service.GenerateDueDateNotifications()
	s.Require().NoError(err)
	s.Equal(1, result.Overdue)
	s.Equal(1, result.DueToday)
	s.Equal(1, result.DueSoon)
	s.Equal(3, result.Total())

	var messages []string
	s.db.Model(&models.Notification{}).Order("id").Pluck("message", &messages)
	s.Equal([]string{
		"Task 'late' is overdue",
		"Task 'tonight' is due today",
		"Task 'tomorrow' is due soon",
	}, messages)
}

func (s *NotificationServiceTestSuite) TestGenerateEndOfDayBoundary() {
	// 23:59:59 today is still "due today"; one second into tomorrow is
	// "due soon".
	endOfDay := time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC)
	s.dueTask("deadline", s.alice.ID, endOfDay, models.TaskStatusTodo)
	s.dueTask("just after", s.alice.ID, endOfDay.Add(time.Second), models.TaskStatusTodo)

	result, err := s.service.GenerateDueDateNotifications()
	s.Require().NoError(err)
	s.Equal(1, result.DueToday)
	s.Equal(1, result.DueSoon)
	s.Zero(result.Overdue)
}

func (s *NotificationServiceTestSuite) TestGenerateIsIdempotentWhileUnread() {
	s.dueTask("late", s.alice.ID, s.now.Add(-time.Hour), models.TaskStatusTodo)

	first, err := s.service.GenerateDueDateNotifications()
	s.Require().NoError(err)
	s.Equal(1, first.Total())

	second, err := s.service.GenerateDueDateNotifications()
	s.Require().NoError(err)
	s.Zero(second.Total())
}

func (s *NotificationServiceTestSuite) TestGenerateRecreatesAfterRead() {
	s.dueTask("late", s.alice.ID, s.now.Add(-time.Hour), models.TaskStatusTodo)

	_, err := s.service.GenerateDueDateNotifications()
	s.Require().NoError(err)

	var n models.Notification
	s.Require().NoError(s.db.First(&n).Error)
	_, err = s.service.MarkRead(s.alice, n.ID)
	s.Require().NoError(err)

	// Dedup only looks at unread rows, so the still-overdue task
	// surfaces again.
	again, err := s.service.GenerateDueDateNotifications()
	s.Require().NoError(err)
	s.Equal(1, again.Overdue)

	var count int64
	s.db.Model(&models.Notification{}).Count(&count)
	s.EqualValues(2, count)
}

func (s *NotificationServiceTestSuite) TestGenerateAddressesTaskOwner() {
	s.dueTask("late", s.alice.ID, s.now.Add(-time.Hour), models.TaskStatusTodo)

	_, err := s.service.GenerateDueDateNotifications()
	s.Require().NoError(err)

	var n models.Notification
	s.Require().NoError(s.db.First(&n).Error)
	s.Equal(s.alice.ID, n.UserID)
	s.False(n.IsRead)
}

func TestNotificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}
