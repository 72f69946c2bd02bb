package domain

import "time"

type Post struct {
	ID        uint        `json:"id"`
	Title     string      `json:"title"`
	Body      string      `json:"body"` // markdown source
	BodyHTML  string      `json:"body_html,omitempty"`
	Published bool        `json:"published"`
	AuthorID  uint        `json:"author_id"`
	Images    []PostImage `json:"images,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type PostImage struct {
	ID        uint   `json:"id"`
	PostID    uint   `json:"post_id"`
	ObjectKey string `json:"object_key"`
	Position  int    `json:"position"`
}

type Testimonial struct {
	ID         uint      `json:"id"`
	AuthorName string    `json:"author_name"`
	Quote      string    `json:"quote"`
	Published  bool      `json:"published"`
	CreatedAt  time.Time `json:"created_at"`
}
