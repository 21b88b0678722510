package realtime

import "livepoll/internal/models"

// Message types sent over live channels.
const (
	TypeConnected   = "CONNECTED"
	TypePollCreated = "POLL_CREATED"
	TypeVoteCast    = "VOTE_CAST"
	TypePollDeleted = "POLL_DELETED"
	TypePollUpdated = "POLL_UPDATED"
)

// Message is the JSON envelope of every live update; Type discriminates.
type Message struct {
	Type    string           `json:"type"`
	Message string           `json:"message,omitempty"`
	PollID  string           `json:"pollId,omitempty"`
	Vote    *models.Vote     `json:"vote,omitempty"`
	Poll    *models.PollView `json:"poll,omitempty"`
}

func Connected() Message {
	return Message{Type: TypeConnected, Message: "WebSocket connection established"}
}

func PollCreated(poll *models.PollView) Message {
	return Message{Type: TypePollCreated, Poll: poll}
}

func VoteCast(pollID string, vote *models.Vote, poll *models.PollView) Message {
	return Message{Type: TypeVoteCast, PollID: pollID, Vote: vote, Poll: poll}
}

func PollDeleted(pollID string) Message {
	return Message{Type: TypePollDeleted, PollID: pollID}
}

func PollUpdated(poll *models.PollView) Message {
	return Message{Type: TypePollUpdated, Poll: poll}
}
