package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskhub-dev/taskhub/internal/database/testutil"
	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/repository"
	"github.com/taskhub-dev/taskhub/internal/services"
)

func TestSchedulerRunsScan(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	user := &models.User{Email: "alice@example.com", PasswordHash: "h", Role: models.RoleMember, IsActive: true}
	require.NoError(t, db.Create(user).Error)
	due := time.Now().UTC().Add(-time.Hour)
	task := &models.Task{Title: "late", DueDate: &due, OwnerID: user.ID}
	require.NoError(t, db.Create(task).Error)

	notifications := services.NewNotificationService(
		repository.NewNotificationRepository(db),
		repository.NewTaskRepository(db),
	)

	s := New(notifications, WithSpec("@every 100ms"))
	require.NoError(t, s.Start())
	defer s.Stop()

	deadline := time.After(3 * time.Second)
	for {
		var count int64
		db.Model(&models.Notification{}).Count(&count)
		if count == 1 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("scan did not run within deadline")
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	notifications := services.NewNotificationService(
		repository.NewNotificationRepository(db),
		repository.NewTaskRepository(db),
	)

	s := New(notifications, WithSpec("not a cron spec"))
	require.Error(t, s.Start())
}
