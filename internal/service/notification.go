package service

import (
	"context"
	"fmt"

	"github.com/blogify/blog-service/internal/mailer"
	"github.com/blogify/blog-service/internal/model"
	"github.com/blogify/blog-service/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type notificationService struct {
	logger *zap.Logger
	repo   *repository.Repository
	mail   mailer.Mailer
}

func newNotificationService(logger *zap.Logger, repo *repository.Repository, mail mailer.Mailer) Notification {
	return &notificationService{
		logger: logger,
		repo:   repo,
		mail:   mail,
	}
}

// DispatchImportantNews fans out one email per subscriber when a post is
// saved published with an important, not-yet-notified news row. The
// notification-sent flag is set after the fan-out attempt regardless of
// per-recipient delivery errors, so the fan-out fires at most once.
func (s *notificationService) DispatchImportantNews(ctx context.Context, post *model.Post) {
	news, err := s.repo.Postgres.News.FindByPostID(ctx, post.ID)
	if err != nil {
		if err != pgx.ErrNoRows {
			s.logger.Sugar().Errorf("failed to find news for post(%d): %s", post.ID, err.Error())
		}
		return
	}

	if !news.IsImportant || news.NotificationSent || post.Status != model.StatusPublished {
		return
	}

	subscribers, err := s.repo.Postgres.User.FindSubscribers(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find important news subscribers: %s", err.Error())
		return
	}

	subject := "Important news: " + post.Title
	body := renderImportantNewsEmail(post)

	for _, subscriber := range subscribers {
		if err := s.mail.Send(subscriber.Email, subject, body); err != nil {
			s.logger.Sugar().Errorf("failed to send important news email to %s: %s", subscriber.Email, err.Error())
		}
	}

	if err := s.repo.Postgres.News.MarkNotificationSent(ctx, post.ID); err != nil {
		s.logger.Sugar().Errorf("failed to mark news(%d) notification as sent: %s", post.ID, err.Error())
	}
}

func renderImportantNewsEmail(post *model.Post) string {
	return fmt.Sprintf(
		`<h1>%s</h1><p>%s</p><p><a href="%s/posts/%s">Read on the site</a></p>`,
		post.Title,
		post.Content,
		viper.GetString("app.site_url"),
		post.Slug,
	)
}
