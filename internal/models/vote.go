package models

import (
	"fmt"
	"time"
)

// VoteValue is +1 (like) or -1 (dislike). Absence of a row means no vote.
type VoteValue int8

const (
	Dislike VoteValue = -1
	Like    VoteValue = 1
)

func (v VoteValue) Valid() bool {
	return v == Like || v == Dislike
}

// Vote tracks one user's vote on one piece of content. The target is a
// (kind, id) pair resolved through the TargetKind dispatch table, so there is
// no foreign key to the content tables.
type Vote struct {
	ID         int        `gorm:"primaryKey" json:"id"`
	UserID     int        `gorm:"not null;uniqueIndex:idx_votes_voter_target,priority:1" json:"user_id"`
	TargetKind TargetKind `gorm:"size:16;not null;uniqueIndex:idx_votes_voter_target,priority:2;index:idx_votes_target,priority:1" json:"target_kind"`
	TargetID   int        `gorm:"not null;uniqueIndex:idx_votes_voter_target,priority:3;index:idx_votes_target,priority:2" json:"target_id"`
	Value      VoteValue  `gorm:"type:smallint;not null;check:chk_votes_value,value IN (-1, 1)" json:"value"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Target identifies a votable, viewable piece of content.
type Target struct {
	Kind TargetKind
	ID   int
}

func (t Target) String() string {
	return fmt.Sprintf("%s:%d", t.Kind, t.ID)
}
