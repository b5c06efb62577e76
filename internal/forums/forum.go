package forums

import "github.com/JaimeStill/aspiredu/pkg/listquery"

// Post is a forum post as returned to the analytics suite. Message and
// MessageFormat are only populated when content is requested. Children lists
// the direct replies the requester can see.
type Post struct {
	ID            int64   `json:"id"`
	Discussion    int64   `json:"discussion"`
	Parent        int64   `json:"parent"`
	UserID        int64   `json:"userid"`
	Created       int64   `json:"created"`
	Modified      int64   `json:"modified"`
	Subject       string  `json:"subject"`
	Message       *string `json:"message,omitempty"`
	MessageFormat *int    `json:"messageformat,omitempty"`
	Children      []int64 `json:"children"`

	privateReplyTo int64
}

// Forum is a forum activity with the course module that places it.
type Forum struct {
	ID             int64  `json:"id"`
	Course         int64  `json:"course"`
	Type           string `json:"type"`
	Name           string `json:"name"`
	TimeModified   int64  `json:"timemodified"`
	CMID           int64  `json:"cmid"`
	NumDiscussions int    `json:"numdiscussions"`

	visible     bool
	contextPath string
}

// Discussion is the thread a set of posts belongs to.
type Discussion struct {
	ID          int64
	Forum       int64
	Course      int64
	GroupID     int64
	FirstPost   int64
	ForumType   string
	CMID        int64
	GroupMode   int
	ContextPath string
}

// PostOptions narrows a discussion's posts.
type PostOptions struct {
	Dates          listquery.DateRange
	IncludeContent bool
}

// ForumOptions narrows the forums of a set of courses. An empty CourseIDs
// selects the requester's enrolled courses.
type ForumOptions struct {
	CourseIDs []int64
	Dates     listquery.DateRange
}
