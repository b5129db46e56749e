package redisrepo

import "fmt"

const (
	SESSION_VIEWED_KEY = "session:%s:viewed:%d" // <sessionID>:<postID>
	SESSION_THEME_KEY  = "session:%s:theme"     // <sessionID>
)

func SessionViewedKey(sessionID string, postID int64) string {
	return fmt.Sprintf(SESSION_VIEWED_KEY, sessionID, postID)
}

func SessionThemeKey(sessionID string) string {
	return fmt.Sprintf(SESSION_THEME_KEY, sessionID)
}
