package models

import (
	"errors"
	"fmt"
)

// TargetKind enumerates the content types that carry votes and view counters.
type TargetKind string

const (
	KindArticle TargetKind = "article"
	KindComment TargetKind = "comment"
	KindAlbum   TargetKind = "album"
	KindBand    TargetKind = "band"
)

var ErrUnknownKind = errors.New("unknown target kind")

var kindTables = map[TargetKind]string{
	KindArticle: "posts",
	KindComment: "comments",
	KindAlbum:   "albums",
	KindBand:    "bands",
}

// kindAliases maps URL path segments to kinds.
var kindAliases = map[string]TargetKind{
	"post":    KindArticle,
	"article": KindArticle,
	"comment": KindComment,
	"album":   KindAlbum,
	"band":    KindBand,
}

// ParseTargetKind resolves a kind name or URL alias.
func ParseTargetKind(s string) (TargetKind, error) {
	kind, ok := kindAliases[s]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return kind, nil
}

// Table returns the content table the kind resolves to.
func (k TargetKind) Table() (string, error) {
	table, ok := kindTables[k]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
	return table, nil
}

func (k TargetKind) Valid() bool {
	_, ok := kindTables[k]
	return ok
}
