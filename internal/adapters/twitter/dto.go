package twitter

import (
	"log/slog"
	"time"

	"github.com/goccy/go-json"

	"github.com/devbush/likewrapped/internal/domain"
)

// createdAtLayout is the timestamp format of v1.1 payloads
const createdAtLayout = time.RubyDate

// apiStatus is the subset of the v1.1 Tweet object we use
type apiStatus struct {
	ID        int64   `json:"id"`
	CreatedAt string  `json:"created_at"`
	FullText  string  `json:"full_text"`
	Text      string  `json:"text"`
	User      apiUser `json:"user"`
}

type apiUser struct {
	ScreenName           string `json:"screen_name"`
	ProfileImageURL      string `json:"profile_image_url"`
	ProfileImageURLHTTPS string `json:"profile_image_url_https"`
}

type apiErrorBody struct {
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
	Error string `json:"error"`
}

func decodeStatuses(body []byte) ([]apiStatus, error) {
	var statuses []apiStatus
	if err := json.Unmarshal(body, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

func mapStatuses(statuses []apiStatus, logger *slog.Logger) []domain.LikeItem {
	likes := make([]domain.LikeItem, 0, len(statuses))
	for _, st := range statuses {
		createdAt, err := time.Parse(createdAtLayout, st.CreatedAt)
		if err != nil {
			logger.Warn("skipping like with unreadable timestamp", "id", st.ID, "created_at", st.CreatedAt)
			continue
		}

		text := st.FullText
		if text == "" {
			text = st.Text
		}

		avatar := st.User.ProfileImageURLHTTPS
		if avatar == "" {
			avatar = st.User.ProfileImageURL
		}

		likes = append(likes, domain.LikeItem{
			ID:        st.ID,
			CreatedAt: createdAt.UTC(),
			Text:      text,
			Author: domain.AuthorRef{
				Handle:    st.User.ScreenName,
				AvatarURL: avatar,
			},
		})
	}
	return likes
}

func oldestID(statuses []apiStatus) int64 {
	var oldest int64
	for _, st := range statuses {
		if oldest == 0 || (st.ID > 0 && st.ID < oldest) {
			oldest = st.ID
		}
	}
	return oldest
}
