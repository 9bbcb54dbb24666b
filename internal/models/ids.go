package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Fullname tags prefixed to every id, e.g. "t3_9f1c...".
const (
	TagComment   = "t1"
	TagUser      = "t2"
	TagPost      = "t3"
	TagCommunity = "t5"
)

var ErrInvalidFullname = errors.New("invalid id")

// TargetKind is the kind of content a vote or spam report points at.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

func (k TargetKind) Valid() bool {
	return k == TargetPost || k == TargetComment
}

// Target identifies a post or a comment.
type Target struct {
	Kind TargetKind
	ID   string
}

// NewID returns a fresh id carrying the given tag.
func NewID(tag string) string {
	return tag + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// HasTag reports whether id starts with tag followed by an underscore and a non-empty suffix.
func HasTag(id, tag string) bool {
	rest, ok := strings.CutPrefix(id, tag+"_")
	return ok && rest != ""
}

// ParseTarget resolves a t3_/t1_ fullname into a Target.
func ParseTarget(fullname string) (Target, error) {
	switch {
	case HasTag(fullname, TagPost):
		return Target{Kind: TargetPost, ID: fullname}, nil
	case HasTag(fullname, TagComment):
		return Target{Kind: TargetComment, ID: fullname}, nil
	}
	return Target{}, ErrInvalidFullname
}
