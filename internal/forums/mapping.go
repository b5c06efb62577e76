package forums

import (
	"github.com/JaimeStill/aspiredu/internal/lms"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
	"github.com/JaimeStill/aspiredu/pkg/query"
	"github.com/JaimeStill/aspiredu/pkg/repository"
)

var postProjection = query.
	NewProjectionMap("mdl_forum_posts", "p").
	Project("id", "id").
	Project("discussion", "discussion").
	Project("parent", "parent").
	Project("userid", "userid").
	Project("created", "created").
	Project("modified", "modified").
	Project("subject", "subject").
	Project("message", "message").
	Project("messageformat", "messageformat").
	Project("privatereplyto", "privatereplyto")

var postSort = query.SortField{Field: "id"}

var forumProjection = query.
	NewProjectionMap("mdl_forum", "f").
	Join("JOIN mdl_modules m ON m.name = 'forum'").
	Join("JOIN mdl_course_modules cm ON cm.module = m.id AND cm.instance = f.id AND cm.deletioninprogress = 0").
	Join("JOIN mdl_context ctx ON ctx.contextlevel = 70 AND ctx.instanceid = cm.id").
	Project("id", "id").
	Project("course", "course").
	Project("type", "type").
	Project("name", "name").
	Project("timemodified", "timemodified").
	Project("cm.id", "cmid").
	Project("cm.visible", "visible").
	Project("ctx.path", "path").
	Project("(SELECT COUNT(*) FROM mdl_forum_discussions d WHERE d.forum = f.id)", "numdiscussions")

var forumSort = query.SortField{Field: "id"}

const discussionSQL = `
	SELECT d.id, d.forum, d.course, d.groupid, d.firstpost, f.type, cm.id, cm.groupmode, ctx.path
	FROM mdl_forum_discussions d
	JOIN mdl_forum f ON f.id = d.forum
	JOIN mdl_modules m ON m.name = 'forum'
	JOIN mdl_course_modules cm ON cm.module = m.id AND cm.instance = f.id
	JOIN mdl_context ctx ON ctx.contextlevel = 70 AND ctx.instanceid = cm.id
	WHERE d.id = $1`

const postedSQL = `
	SELECT 1 FROM mdl_forum_posts
	WHERE discussion = $1 AND userid = $2 AND deleted = 0
	LIMIT 1`

func scanPost(s repository.Scanner) (Post, error) {
	var p Post
	var message string
	var format int
	err := s.Scan(
		&p.ID, &p.Discussion, &p.Parent, &p.UserID, &p.Created, &p.Modified,
		&p.Subject, &message, &format, &p.privateReplyTo,
	)
	p.Message = &message
	p.MessageFormat = &format
	return p, err
}

func scanForum(s repository.Scanner) (Forum, error) {
	var f Forum
	var visible int
	err := s.Scan(
		&f.ID, &f.Course, &f.Type, &f.Name, &f.TimeModified,
		&f.CMID, &visible, &f.contextPath, &f.NumDiscussions,
	)
	f.visible = visible == 1
	return f, err
}

func scanDiscussion(s repository.Scanner) (Discussion, error) {
	var d Discussion
	err := s.Scan(
		&d.ID, &d.Forum, &d.Course, &d.GroupID, &d.FirstPost,
		&d.ForumType, &d.CMID, &d.GroupMode, &d.ContextPath,
	)
	return d, err
}

// PostSorter orders posts by created (default), id or modified.
func PostSorter() *listquery.Sorter[Post] {
	return listquery.
		NewSorter("created", listquery.By(func(p Post) int64 { return p.Created })).
		Field("id", listquery.By(func(p Post) int64 { return p.ID })).
		Field("modified", listquery.By(func(p Post) int64 { return p.Modified }))
}

// ForumSorter orders forums by id (default), name or timemodified.
func ForumSorter() *listquery.Sorter[Forum] {
	return listquery.
		NewSorter("id", listquery.By(func(f Forum) int64 { return f.ID })).
		Field("name", listquery.By(func(f Forum) string { return f.Name })).
		Field("timemodified", listquery.By(func(f Forum) int64 { return f.TimeModified }))
}

// PostFilter hides private replies addressed to someone else and, in Q&A
// forums, replies the requester may not read before posting.
type PostFilter struct {
	Discussion Discussion
	// Posted reports whether the requester has posted in the discussion.
	Posted bool
}

func (f PostFilter) Include(p Post, r listquery.Requester) listquery.Decision {
	viewer := r.UserID()
	path := f.Discussion.ContextPath

	if p.privateReplyTo != 0 && p.privateReplyTo != viewer && p.UserID != viewer &&
		!r.Can(lms.CapForumReadPrivate, path) {
		return listquery.Deny(hiddenPost(p.ID))
	}

	if f.Discussion.ForumType == "qanda" && !f.Posted &&
		p.ID != f.Discussion.FirstPost && p.UserID != viewer &&
		!r.Can(lms.CapForumViewQandA, path) {
		return listquery.Deny(hiddenPost(p.ID))
	}

	return listquery.Allow()
}

// linkChildren fills each post's Children with the ids of its direct replies
// that visible accepts, in fetch order.
func linkChildren(posts []Post, visible func(Post) bool) {
	index := make(map[int64]int, len(posts))
	for i := range posts {
		posts[i].Children = make([]int64, 0)
		index[posts[i].ID] = i
	}
	for _, p := range posts {
		if p.Parent == 0 || !visible(p) {
			continue
		}
		if i, ok := index[p.Parent]; ok {
			posts[i].Children = append(posts[i].Children, p.ID)
		}
	}
}

func hiddenPost(id int64) *listquery.Warning {
	return &listquery.Warning{
		Item:        "post",
		ItemID:      id,
		WarningCode: WarningHiddenPost,
		Message:     "You can't see this post",
	}
}

// ForumFilter drops hidden forums and warns about forums whose discussions
// the requester cannot view.
var ForumFilter = listquery.FilterFunc[Forum](func(f Forum, r listquery.Requester) listquery.Decision {
	if !f.visible && !r.Can(lms.CapViewHiddenActivities, f.contextPath) {
		return listquery.Deny(nil)
	}
	if !r.Can(lms.CapForumViewDiscussion, f.contextPath) {
		return listquery.Deny(&listquery.Warning{
			Item:        "forum",
			ItemID:      f.ID,
			WarningCode: WarningNoViewDiscussion,
			Message:     "You can't view discussions in this forum",
		})
	}
	return listquery.Allow()
})
