package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"livepoll/internal/metrics"
	"livepoll/internal/models"
	"livepoll/internal/realtime"
	"livepoll/internal/storage"
	"livepoll/internal/utils"

	"golang.org/x/sync/errgroup"
)

// MinOptions is the smallest number of options a poll may have.
const MinOptions = 2

// listConcurrency bounds the per-poll option and stats lookups of a listing.
const listConcurrency = 8

// Publisher receives live updates after a mutation has committed.
type Publisher interface {
	Publish(msg realtime.Message)
}

// PollService coordinates poll creation, voting and deletion: validate,
// commit to storage, recompute stats, then broadcast. A broadcast is sent if
// and only if the storage mutation committed.
type PollService struct {
	store     *storage.Store
	publisher Publisher
	metrics   *metrics.Metrics
}

func NewPollService(store *storage.Store, publisher Publisher, m *metrics.Metrics) *PollService {
	return &PollService{store: store, publisher: publisher, metrics: m}
}

type CreatePollInput struct {
	Question      string
	Options       []string
	AllowMultiple bool
	ShowResults   *bool // nil means true
}

// CreatePoll stores a new, already published poll and announces it.
func (s *PollService) CreatePoll(ctx context.Context, owner *models.User, in CreatePollInput) (*models.PollView, error) {
	question := utils.CleanText(in.Question)
	if question == "" {
		return nil, invalid("question is required")
	}
	texts := make([]string, 0, len(in.Options))
	for _, o := range in.Options {
		text := utils.CleanText(o)
		if text == "" {
			return nil, invalid("options must not be empty")
		}
		texts = append(texts, text)
	}
	if len(texts) < MinOptions {
		return nil, invalid(fmt.Sprintf("at least %d options are required", MinOptions))
	}

	showResults := true
	if in.ShowResults != nil {
		showResults = *in.ShowResults
	}

	poll := &models.Poll{
		Question:      question,
		UserID:        owner.ID,
		IsPublished:   true,
		AllowMultiple: in.AllowMultiple,
		ShowResults:   showResults,
	}
	options, err := s.store.CreatePoll(ctx, poll, texts)
	if err != nil {
		return nil, err
	}

	view := &models.PollView{
		Poll:    *poll,
		Options: options,
		Stats:   zeroStats(options),
	}
	s.publisher.Publish(realtime.PollCreated(view))
	return view, nil
}

// CastVote records a vote and broadcasts the refreshed poll so clients can
// replace their copy without refetching.
func (s *PollService) CastVote(ctx context.Context, voter *models.User, pollID, optionID string) (*models.Vote, *models.PollView, error) {
	if optionID == "" {
		return nil, nil, invalid("optionId is required")
	}

	vote, err := s.store.RecordVote(ctx, voter.ID, pollID, optionID)
	switch {
	case err == nil:
		s.metrics.ObserveVote(metrics.VoteAccepted)
	case errors.Is(err, storage.ErrDuplicateVote):
		s.metrics.ObserveVote(metrics.VoteDuplicate)
		return nil, nil, err
	default:
		s.metrics.ObserveVote(metrics.VoteRejected)
		return nil, nil, err
	}

	// The vote is committed from here on; a failed re-read must not hide it
	// from other clients, so broadcast whatever we can.
	view, err := s.GetPoll(ctx, pollID)
	if err != nil {
		s.publisher.Publish(realtime.VoteCast(pollID, vote, nil))
		return vote, nil, fmt.Errorf("reload poll after vote: %w", err)
	}
	s.publisher.Publish(realtime.VoteCast(pollID, vote, view))
	return vote, view, nil
}

// DeletePoll removes a poll with its options and votes. Only the owner or an
// admin may do so.
func (s *PollService) DeletePoll(ctx context.Context, actor *models.User, pollID string) error {
	poll, err := s.store.GetPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if poll.UserID != actor.ID && !actor.IsAdmin {
		return ErrForbidden
	}
	if err := s.store.DeletePoll(ctx, pollID); err != nil {
		return err
	}
	s.publisher.Publish(realtime.PollDeleted(pollID))
	return nil
}

// SetPublished toggles whether a poll accepts votes.
func (s *PollService) SetPublished(ctx context.Context, actor *models.User, pollID string, published bool) (*models.PollView, error) {
	poll, err := s.store.GetPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if poll.UserID != actor.ID && !actor.IsAdmin {
		return nil, ErrForbidden
	}
	if _, err := s.store.SetPublished(ctx, pollID, published); err != nil {
		return nil, err
	}
	view, err := s.GetPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(realtime.PollUpdated(view))
	return view, nil
}

// DeleteUser removes a user and everything they own. Admins cannot delete
// themselves.
func (s *PollService) DeleteUser(ctx context.Context, admin *models.User, userID string) error {
	if !admin.IsAdmin {
		return ErrForbidden
	}
	if admin.ID == userID {
		return ErrCannotDeleteSelf
	}
	pollIDs, err := s.store.DeleteUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, id := range pollIDs {
		s.publisher.Publish(realtime.PollDeleted(id))
	}
	return nil
}

// GetPoll loads one poll with its options and current stats.
func (s *PollService) GetPoll(ctx context.Context, pollID string) (*models.PollView, error) {
	poll, err := s.store.GetPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, *poll)
}

// ListPolls returns every poll, newest first, or by TrendingScore when
// trending is set.
func (s *PollService) ListPolls(ctx context.Context, trending bool) ([]models.PollView, error) {
	polls, err := s.store.ListPolls(ctx)
	if err != nil {
		return nil, err
	}
	views, err := s.views(ctx, polls)
	if err != nil {
		return nil, err
	}
	if trending {
		now := time.Now()
		sort.SliceStable(views, func(i, j int) bool {
			return utils.TrendingScore(views[i].CreatedAt, views[i].Stats.TotalVotes, now) >
				utils.TrendingScore(views[j].CreatedAt, views[j].Stats.TotalVotes, now)
		})
	}
	return views, nil
}

func (s *PollService) ListUserPolls(ctx context.Context, userID string) ([]models.PollView, error) {
	polls, err := s.store.ListPollsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, polls)
}

func (s *PollService) UserVotes(ctx context.Context, userID, pollID string) ([]models.Vote, error) {
	return s.store.UserVotesForPoll(ctx, userID, pollID)
}

func (s *PollService) view(ctx context.Context, poll models.Poll) (*models.PollView, error) {
	options, err := s.store.GetPollOptions(ctx, poll.ID)
	if err != nil {
		return nil, err
	}
	stats, err := s.store.ComputeStats(ctx, poll.ID)
	if err != nil {
		return nil, err
	}
	return &models.PollView{Poll: poll, Options: options, Stats: stats}, nil
}

// views builds the views of a listing concurrently, keeping input order.
func (s *PollService) views(ctx context.Context, polls []models.Poll) ([]models.PollView, error) {
	out := make([]models.PollView, len(polls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listConcurrency)
	for i := range polls {
		i := i
		g.Go(func() error {
			v, err := s.view(gctx, polls[i])
			if err != nil {
				return err
			}
			out[i] = *v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func zeroStats(options []models.Option) models.PollStats {
	stats := models.PollStats{OptionVotes: make([]models.OptionCount, len(options))}
	for i, o := range options {
		stats.OptionVotes[i] = models.OptionCount{OptionID: o.ID, Text: o.Text}
	}
	return stats
}
