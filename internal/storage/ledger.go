package storage

import (
	"context"
	"errors"

	"livepoll/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordVote appends one vote to the ledger. Single-choice polls accept one
// vote per user; multi-choice polls accept one vote per user and option.
//
// The existence check only gives a friendly error for the common case. Two
// racing requests can both pass it; the unique index on (user, poll, slot)
// then rejects the later insert, which is reported as ErrDuplicateVote.
func (s *Store) RecordVote(ctx context.Context, userID, pollID, optionID string) (*models.Vote, error) {
	var vote models.Vote
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var poll models.Poll
		// Block a concurrent delete of the poll until this vote commits.
		err := tx.Clauses(clause.Locking{Strength: clause.LockingStrengthShare}).
			First(&poll, "id = ?", pollID).Error
		if err != nil {
			return notFound(err)
		}
		if !poll.IsPublished {
			return ErrPollNotVotable
		}

		var option models.Option
		if err := tx.Where("id = ? AND poll_id = ?", optionID, pollID).First(&option).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidOption
			}
			return err
		}

		slot := models.BallotSlot(&poll, optionID)
		var existing int64
		err = tx.Model(&models.Vote{}).
			Where("user_id = ? AND poll_id = ? AND slot = ?", userID, pollID, slot).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateVote
		}

		vote = models.Vote{
			UserID:   userID,
			PollID:   pollID,
			OptionID: optionID,
			Slot:     slot,
		}
		if err := tx.Create(&vote).Error; err != nil {
			switch {
			case isDuplicateKey(err):
				return ErrDuplicateVote
			case errors.Is(err, gorm.ErrForeignKeyViolated):
				return ErrNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (s *Store) VotesByPoll(ctx context.Context, pollID string) ([]models.Vote, error) {
	var votes []models.Vote
	err := s.db.WithContext(ctx).Where("poll_id = ?", pollID).Order("created_at ASC").Find(&votes).Error
	return votes, err
}

func (s *Store) UserVotesForPoll(ctx context.Context, userID, pollID string) ([]models.Vote, error) {
	var votes []models.Vote
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND poll_id = ?", userID, pollID).
		Order("created_at ASC").
		Find(&votes).Error
	return votes, err
}
