package domain

import "time"

// ContentKind distinguishes the marketing content collections.
type ContentKind string

const (
	ContentPracticeArea ContentKind = "practice_area"
	ContentTeamMember   ContentKind = "team_member"
	ContentHomeCard     ContentKind = "home_card"
)

// ContentItem is a piece of editable marketing content.
type ContentItem struct {
	ID        string
	Kind      ContentKind
	Title     string
	Slug      string
	Summary   string
	Body      string
	Image     string
	Icon      string
	Position  int
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
