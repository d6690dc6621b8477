package content

import "time"

// Post is a transient copy of a post owned by the post service. This core
// never mutates posts; it only assembles them into feeds.
type Post struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"user_id"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
