// Package votes stores likes and dislikes for articles, comments, albums and
// bands. Each voter has at most one vote per target; repeating a vote removes
// it and voting the other way flips it.
package votes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emilythestrangee/metalnews/backend/internal/models"
)

var (
	ErrTargetNotFound = errors.New("vote target not found")
	ErrUnauthorized   = errors.New("voter is not authenticated")
	ErrInvalidValue   = errors.New("vote value must be 1 or -1")
	ErrInvalidKind    = models.ErrUnknownKind
)

// Result tells what a cast did to the voter's row.
type Result int

const (
	Created Result = iota + 1
	Changed
	Removed
)

func (r Result) String() string {
	switch r {
	case Created:
		return "created"
	case Changed:
		return "changed"
	case Removed:
		return "removed"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Tally aggregates the votes on one target.
type Tally struct {
	Likes     int64 `json:"like_count"`
	Dislikes  int64 `json:"dislike_count"`
	SumRating int64 `json:"sum_rating"`
}

type Outcome struct {
	Result Result
	Tally  Tally
}

// transition is the per (voter, target) state machine:
// none -> vote, vote -> opposite vote, vote -> none.
func transition(current *models.VoteValue, requested models.VoteValue) Result {
	switch {
	case current == nil:
		return Created
	case *current != requested:
		return Changed
	default:
		return Removed
	}
}

const defaultMaxRetries = 10

type Store struct {
	db         *gorm.DB
	logger     *zap.Logger
	maxRetries uint64
}

func NewStore(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{
		db:         db,
		logger:     logger.Named("votes"),
		maxRetries: defaultMaxRetries,
	}
}

// Cast applies the voter's vote to the target and returns the target's tally
// as of the same transaction. A concurrent first vote by the same voter is
// retried rather than reported.
func (s *Store) Cast(ctx context.Context, voterID int, target models.Target, value models.VoteValue) (Outcome, error) {
	if voterID <= 0 {
		return Outcome{}, ErrUnauthorized
	}
	if !value.Valid() {
		return Outcome{}, ErrInvalidValue
	}
	table, err := target.Kind.Table()
	if err != nil {
		return Outcome{}, err
	}

	var out Outcome
	op := func() error {
		var err error
		out, err = s.cast(ctx, voterID, target, table, value)
		switch {
		case err == nil:
			return nil
		case isConflict(err):
			s.logger.Debug("concurrent vote, retrying",
				zap.Int("voter_id", voterID), zap.Stringer("target", target))
			return err
		default:
			return backoff.Permanent(err)
		}
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 5 * time.Millisecond
	policy.MaxInterval = 100 * time.Millisecond

	if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(policy, s.maxRetries), ctx)); err != nil {
		return Outcome{}, err
	}
	return out, nil
}

func (s *Store) cast(ctx context.Context, voterID int, target models.Target, table string, value models.VoteValue) (Outcome, error) {
	var out Outcome

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, table, target); err != nil {
			return err
		}

		var (
			existing models.Vote
			current  *models.VoteValue
		)
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND target_kind = ? AND target_id = ?", voterID, target.Kind, target.ID).
			Take(&existing).Error
		switch {
		case err == nil:
			current = &existing.Value
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		out.Result = transition(current, value)
		switch out.Result {
		case Created:
			err = tx.Create(&models.Vote{
				UserID:     voterID,
				TargetKind: target.Kind,
				TargetID:   target.ID,
				Value:      value,
			}).Error
		case Changed:
			err = tx.Model(&existing).Update("value", value).Error
		case Removed:
			err = tx.Delete(&existing).Error
		}
		if err != nil {
			return err
		}

		out.Tally, err = tally(tx, target)
		return err
	})

	return out, err
}

// Tally returns the current likes, dislikes and signed sum for the target.
// A target that does not exist is ErrTargetNotFound, as for Cast.
func (s *Store) Tally(ctx context.Context, target models.Target) (Tally, error) {
	table, err := target.Kind.Table()
	if err != nil {
		return Tally{}, err
	}

	db := s.db.WithContext(ctx)
	if err := exists(db, table, target); err != nil {
		return Tally{}, err
	}
	return tally(db, target)
}

func exists(db *gorm.DB, table string, target models.Target) error {
	var found int64
	if err := db.Table(table).Where("id = ?", target.ID).Count(&found).Error; err != nil {
		return fmt.Errorf("lookup %s: %w", target, err)
	}
	if found == 0 {
		return ErrTargetNotFound
	}
	return nil
}

func tally(db *gorm.DB, target models.Target) (Tally, error) {
	var t Tally
	err := db.Model(&models.Vote{}).
		Select(`COUNT(*) FILTER (WHERE value > 0) AS likes,
			COUNT(*) FILTER (WHERE value < 0) AS dislikes,
			COALESCE(SUM(value), 0) AS sum_rating`).
		Where("target_kind = ? AND target_id = ?", target.Kind, target.ID).
		Scan(&t).Error
	if err != nil {
		return Tally{}, fmt.Errorf("tally %s: %w", target, err)
	}
	return t, nil
}

func isConflict(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
