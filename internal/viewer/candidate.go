package viewer

import "encoding/json"

type Candidate struct {
	ID            int64
	JobID         int64
	Expression    string
	Tier          string
	SkeletonID    string
	Score         float64
	Status        string
	Violations    json.RawMessage
	SimulationEnv json.RawMessage
	IsSubmitted   int64
}

type CandidateResult struct {
	ID           int64
	JobID        int64
	CandidateID  int64
	SimulationID string
	Response     json.RawMessage
	Status       string
}
