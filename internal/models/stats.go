package models

// OptionCount is the vote count of one option.
type OptionCount struct {
	OptionID string `json:"optionId"`
	Text     string `json:"text"`
	Count    int64  `json:"count"`
}

// PollStats is derived from the votes table on every read and never stored.
type PollStats struct {
	TotalVotes  int64         `json:"totalVotes"`
	OptionVotes []OptionCount `json:"optionVotes"`
}

type UserStats struct {
	TotalPolls  int64 `json:"totalPolls"`
	ActivePolls int64 `json:"activePolls"`
	TotalVotes  int64 `json:"totalVotes"`
}

type SystemStats struct {
	TotalUsers  int64 `json:"totalUsers"`
	TotalPolls  int64 `json:"totalPolls"`
	ActivePolls int64 `json:"activePolls"`
	TotalVotes  int64 `json:"totalVotes"`
}
