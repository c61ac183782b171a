package api

import (
	"wq_alpha_gen/internal/validator"
	"wq_alpha_gen/internal/viewer"
)

type UploadJobResp struct {
	Message string `json:"message"`
	JobId   int64  `json:"jobId"`
}

type GetJobListResp struct {
	Message string          `json:"message"`
	Jobs    []viewer.GenJob `json:"jobs"`
}

type DeleteJobResp struct {
	Message string `json:"message"`
	JobId   int64  `json:"jobId"`
}

type GetCandidateListResp struct {
	Message    string             `json:"message"`
	JobId      int64              `json:"jobId"`
	Candidates []viewer.Candidate `json:"candidates"`
}

// GeneratedCandidate is the one-shot response item: rendered text plus the
// metadata the display side needs.
type GeneratedCandidate struct {
	Expression string                `json:"expression"`
	Tier       string                `json:"tier"`
	SkeletonID string                `json:"skeletonId"`
	Score      float64               `json:"score"`
	Status     string                `json:"status"`
	Violations []validator.Violation `json:"violations"`
}

type GenerateResp struct {
	Message     string               `json:"message"`
	AcceptedNum int64                `json:"acceptedNum"`
	RejectedNum int64                `json:"rejectedNum"`
	Candidates  []GeneratedCandidate `json:"candidates"`
}
