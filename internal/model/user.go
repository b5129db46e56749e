package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type User struct {
	ID                        uuid.UUID `json:"id"`
	Username                  string    `json:"username"`
	Email                     string    `json:"email"`
	DisplayName               *string   `json:"display_name"`
	AvatarURL                 *string   `json:"avatar_url"`
	Theme                     string    `json:"theme"`
	SubscribedToImportantNews bool      `json:"subscribed_to_important_news"`
	CreatedAt                 time.Time `json:"created_at"`
}

type UserAuthor struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName *string   `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url"`
}
