// Package storage is the relational store behind the poll service: users,
// polls, options and the vote ledger, all over gorm.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"livepoll/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrEmailTaken     = errors.New("email already exists")
	ErrDuplicateVote  = errors.New("you have already voted on this poll")
	ErrInvalidOption  = errors.New("invalid option")
	ErrPollNotVotable = errors.New("poll is not accepting votes")
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// isDuplicateKey matches unique violations from both drivers, with or without
// gorm's error translation.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Users

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

// DeleteUser removes a user together with their votes and their polls
// (including every vote and option of those polls). It returns the ids of
// the removed polls.
func (s *Store) DeleteUser(ctx context.Context, userID string) ([]string, error) {
	var pollIDs []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return notFound(err)
		}

		if err := tx.Model(&models.Poll{}).Where("user_id = ?", userID).Pluck("id", &pollIDs).Error; err != nil {
			return err
		}
		if len(pollIDs) > 0 {
			if err := tx.Where("poll_id IN ?", pollIDs).Delete(&models.Vote{}).Error; err != nil {
				return err
			}
			if err := tx.Where("poll_id IN ?", pollIDs).Delete(&models.Option{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", pollIDs).Delete(&models.Poll{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return pollIDs, nil
}

// Polls

func (s *Store) GetPoll(ctx context.Context, id string) (*models.Poll, error) {
	var poll models.Poll
	if err := s.db.WithContext(ctx).First(&poll, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &poll, nil
}

func (s *Store) ListPolls(ctx context.Context) ([]models.Poll, error) {
	var polls []models.Poll
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&polls).Error
	return polls, err
}

func (s *Store) ListPollsByUser(ctx context.Context, userID string) ([]models.Poll, error) {
	var polls []models.Poll
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&polls).Error
	return polls, err
}

// CreatePoll inserts the poll and one option per text in a single
// transaction; either all rows become visible or none.
func (s *Store) CreatePoll(ctx context.Context, poll *models.Poll, optionTexts []string) ([]models.Option, error) {
	options := make([]models.Option, len(optionTexts))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(poll).Error; err != nil {
			return err
		}
		for i, text := range optionTexts {
			options[i] = models.Option{Text: text, PollID: poll.ID, Position: i}
		}
		return tx.Create(&options).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create poll: %w", err)
	}
	return options, nil
}

func (s *Store) SetPublished(ctx context.Context, pollID string, published bool) (*models.Poll, error) {
	res := s.db.WithContext(ctx).Model(&models.Poll{}).
		Where("id = ?", pollID).
		Update("is_published", published)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetPoll(ctx, pollID)
}

// DeletePoll removes the poll's votes, then its options, then the poll row.
func (s *Store) DeletePoll(ctx context.Context, pollID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("poll_id = ?", pollID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("poll_id = ?", pollID).Delete(&models.Option{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", pollID).Delete(&models.Poll{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Options

func (s *Store) GetPollOptions(ctx context.Context, pollID string) ([]models.Option, error) {
	return pollOptions(s.db.WithContext(ctx), pollID)
}

func pollOptions(tx *gorm.DB, pollID string) ([]models.Option, error) {
	var options []models.Option
	err := tx.Where("poll_id = ?", pollID).Order("position ASC").Find(&options).Error
	return options, err
}
