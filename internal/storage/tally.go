package storage

import (
	"context"

	"livepoll/internal/models"
)

// ComputeStats counts the votes of a poll. Every option appears in the
// result, zero counts included, in option order. TotalVotes is the sum of
// the same grouped query, so it always matches the per-option counts.
func (s *Store) ComputeStats(ctx context.Context, pollID string) (models.PollStats, error) {
	tx := s.db.WithContext(ctx)

	options, err := pollOptions(tx, pollID)
	if err != nil {
		return models.PollStats{}, err
	}

	var rows []struct {
		OptionID string
		Count    int64
	}
	err = tx.Model(&models.Vote{}).
		Select("option_id, COUNT(*) AS count").
		Where("poll_id = ?", pollID).
		Group("option_id").
		Scan(&rows).Error
	if err != nil {
		return models.PollStats{}, err
	}

	counts := make(map[string]int64, len(rows))
	var total int64
	for _, r := range rows {
		counts[r.OptionID] = r.Count
		total += r.Count
	}

	stats := models.PollStats{
		TotalVotes:  total,
		OptionVotes: make([]models.OptionCount, len(options)),
	}
	for i, o := range options {
		stats.OptionVotes[i] = models.OptionCount{
			OptionID: o.ID,
			Text:     o.Text,
			Count:    counts[o.ID],
		}
	}
	return stats, nil
}

// UserStats summarises the polls a user owns and the votes those polls got.
func (s *Store) UserStats(ctx context.Context, userID string) (models.UserStats, error) {
	tx := s.db.WithContext(ctx)
	var stats models.UserStats

	if err := tx.Model(&models.Poll{}).Where("user_id = ?", userID).Count(&stats.TotalPolls).Error; err != nil {
		return stats, err
	}
	if err := tx.Model(&models.Poll{}).Where("user_id = ? AND is_published = ?", userID, true).Count(&stats.ActivePolls).Error; err != nil {
		return stats, err
	}
	err := tx.Model(&models.Vote{}).
		Joins("JOIN polls ON polls.id = votes.poll_id").
		Where("polls.user_id = ?", userID).
		Count(&stats.TotalVotes).Error
	return stats, err
}

func (s *Store) SystemStats(ctx context.Context) (models.SystemStats, error) {
	tx := s.db.WithContext(ctx)
	var stats models.SystemStats

	if err := tx.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return stats, err
	}
	if err := tx.Model(&models.Poll{}).Count(&stats.TotalPolls).Error; err != nil {
		return stats, err
	}
	if err := tx.Model(&models.Poll{}).Where("is_published = ?", true).Count(&stats.ActivePolls).Error; err != nil {
		return stats, err
	}
	err := tx.Model(&models.Vote{}).Count(&stats.TotalVotes).Error
	return stats, err
}
