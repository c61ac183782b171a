package expr

import "wq_alpha_gen/internal/constant"

// Candidate wraps a root expression with its generation metadata. It is
// created by the generator, re-scored and mutated by the optimizer, and
// stamped accepted or rejected by the validator. Rejection is terminal; a
// rejected candidate is discarded, never repaired.
type Candidate struct {
	Root           *Node
	Tier           string
	SkeletonID     string
	Neutralization string // grouping field id, empty when not wrapped
	Normalization  string // normalizing operator id, empty when not wrapped
	Score          float64
	Status         string
}

func NewCandidate(root *Node, tier, skeletonID string) *Candidate {
	return &Candidate{
		Root:       root,
		Tier:       tier,
		SkeletonID: skeletonID,
		Status:     constant.StatusPending,
	}
}

// Clone deep-copies the candidate, including its tree.
func (c *Candidate) Clone() *Candidate {
	out := *c
	out.Root = c.Root.Clone()
	return &out
}

func (c *Candidate) Accepted() bool {
	return c.Status == constant.StatusAccepted
}
