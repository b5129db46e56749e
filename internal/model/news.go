package model

const (
	NewsTypeAnnouncement = "announcement"
	NewsTypeUpdate       = "update"
	NewsTypeEvent        = "event"
	NewsTypeMaintenance  = "maintenance"
)

func IsValidNewsType(t string) bool {
	switch t {
	case NewsTypeAnnouncement, NewsTypeUpdate, NewsTypeEvent, NewsTypeMaintenance:
		return true
	default:
		return false
	}
}

// News augments a Post: a post is a news item iff its news row exists.
type News struct {
	PostID           int64  `json:"post_id"`
	Type             string `json:"type"`
	IsImportant      bool   `json:"is_important"`
	Pinned           bool   `json:"pinned"`
	NotificationSent bool   `json:"notification_sent"`
}

type NewsPost struct {
	News News     `json:"news"`
	Post FullPost `json:"post"`
}
