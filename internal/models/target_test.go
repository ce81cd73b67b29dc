package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTargetKind(t *testing.T) {
	tests := []struct {
		in    string
		want  TargetKind
		table string
	}{
		{"post", KindArticle, "posts"},
		{"article", KindArticle, "posts"},
		{"comment", KindComment, "comments"},
		{"album", KindAlbum, "albums"},
		{"band", KindBand, "bands"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			kind, err := ParseTargetKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)

			table, err := kind.Table()
			require.NoError(t, err)
			assert.Equal(t, tt.table, table)
		})
	}
}

func TestParseTargetKindUnknown(t *testing.T) {
	_, err := ParseTargetKind("label")
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = TargetKind("review").Table()
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.False(t, TargetKind("").Valid())
}

func TestVoteValueValid(t *testing.T) {
	assert.True(t, Like.Valid())
	assert.True(t, Dislike.Valid())
	assert.False(t, VoteValue(0).Valid())
	assert.False(t, VoteValue(2).Valid())
}

func TestTargetString(t *testing.T) {
	assert.Equal(t, "album:7", Target{Kind: KindAlbum, ID: 7}.String())
}
