// Package access holds the fixed visibility table for posts, comments and
// attachments.
//
// Every function here is pure: it looks only at its arguments and never at
// the network, so the same answer drives both "render this content" and
// "render this action". The answers are advisory. The remote service
// re-checks every request and its decision is binding.
package access

import "bulletin/internal/model"

type Decision int

const (
	Denied Decision = iota
	ReadOnly
	ReadWrite
)

func (d Decision) String() string {
	switch d {
	case ReadOnly:
		return "read-only"
	case ReadWrite:
		return "read-write"
	default:
		return "denied"
	}
}

// Affordances is what a view may offer for a single resource.
type Affordances struct {
	CanView   bool
	CanEdit   bool
	CanDelete bool
}

func ownerOrAdmin(id *model.Identity, ownerID int64) bool {
	return id != nil && (id.ID == ownerID || id.IsAdmin())
}

// CanRead reports whether id may read the post body. Public posts are
// readable by everyone, anonymous requesters included.
func CanRead(id *model.Identity, post *model.Post) bool {
	if post == nil {
		return false
	}
	if !post.Secret {
		return true
	}
	return ownerOrAdmin(id, post.AuthorID)
}

// CanWrite covers update and delete. Secrecy plays no part.
func CanWrite(id *model.Identity, post *model.Post) bool {
	if post == nil {
		return false
	}
	return ownerOrAdmin(id, post.AuthorID)
}

func Decide(id *model.Identity, post *model.Post) Decision {
	switch {
	case !CanRead(id, post):
		return Denied
	case CanWrite(id, post):
		return ReadWrite
	default:
		return ReadOnly
	}
}

func ForPost(id *model.Identity, post *model.Post) Affordances {
	w := CanWrite(id, post)
	return Affordances{CanView: CanRead(id, post), CanEdit: w, CanDelete: w}
}

// parentOf returns parent only when it is the post the child points at.
func parentOf(parent *model.Post, postID int64) *model.Post {
	if parent == nil || parent.ID != postID {
		return nil
	}
	return parent
}

func CanReadComment(id *model.Identity, c model.Comment, parent *model.Post) bool {
	return CanRead(id, parentOf(parent, c.PostID))
}

// CanWriteComment requires a readable parent and then applies the
// comment's own ownership.
func CanWriteComment(id *model.Identity, c model.Comment, parent *model.Post) bool {
	p := parentOf(parent, c.PostID)
	if !CanRead(id, p) {
		return false
	}
	return ownerOrAdmin(id, c.AuthorID)
}

func ForComment(id *model.Identity, c model.Comment, parent *model.Post) Affordances {
	w := CanWriteComment(id, c, parent)
	return Affordances{CanView: CanReadComment(id, c, parent), CanEdit: w, CanDelete: w}
}

func attachmentParent(a model.Attachment, parent *model.Post) *model.Post {
	if a.PostID == nil {
		return nil
	}
	return parentOf(parent, *a.PostID)
}

func CanReadAttachment(id *model.Identity, a model.Attachment, parent *model.Post) bool {
	return CanRead(id, attachmentParent(a, parent))
}

// CanWriteAttachment treats the parent post's author as the owner of the
// file.
func CanWriteAttachment(id *model.Identity, a model.Attachment, parent *model.Post) bool {
	p := attachmentParent(a, parent)
	if !CanRead(id, p) {
		return false
	}
	return ownerOrAdmin(id, p.AuthorID)
}

func ForAttachment(id *model.Identity, a model.Attachment, parent *model.Post) Affordances {
	w := CanWriteAttachment(id, a, parent)
	return Affordances{CanView: CanReadAttachment(id, a, parent), CanDelete: w}
}

// CanComment reports whether id may add a comment under parent.
func CanComment(id *model.Identity, parent *model.Post) bool {
	return id != nil && CanRead(id, parent)
}

// CanAttach reports whether id may upload files to parent.
func CanAttach(id *model.Identity, parent *model.Post) bool {
	return CanWrite(id, parent)
}

func CanEditProfile(id *model.Identity, userID int64) bool {
	return ownerOrAdmin(id, userID)
}

// CanChangePassword is owner only. Admins go through the reset flow.
func CanChangePassword(id *model.Identity, userID int64) bool {
	return id.Is(userID)
}

func CanAdminister(id *model.Identity) bool {
	return id.IsAdmin()
}
