package domain

import "time"

// Display fallbacks for articles whose metadata is incomplete. The platform
// does not require title, description or category on older posts.
const (
	NoTitle       = "No Title Found"
	NoDescription = "No description available"
	NoCategory    = "Uncategorized"
	NoDate        = "Unknown"
)

type Article struct {
	// ID is the server's key for the article. It is only useful as a stable
	// rendering key; every lookup and mutation goes through the slug.
	ID          string     `json:"_id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Published   *time.Time `json:"published"`
	Content     string     `json:"content"`
}

// DisplayTitle returns the article's title, or a placeholder when the server
// sent none.
func (a Article) DisplayTitle() string {
	if a.Title == "" {
		return NoTitle
	}
	return a.Title
}

func (a Article) DisplayDescription() string {
	if a.Description == "" {
		return NoDescription
	}
	return a.Description
}

func (a Article) DisplayCategory() string {
	if a.Category == "" {
		return NoCategory
	}
	return a.Category
}

// DisplayPublished formats the publication date for display, or "Unknown"
// when the article carries no date.
func (a Article) DisplayPublished() string {
	if a.Published == nil || a.Published.IsZero() {
		return NoDate
	}
	return a.Published.Format("January 2, 2006")
}
