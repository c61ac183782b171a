package model

import "gorm.io/datatypes"

// CandidateResult corresponds to the `candidate_result` table: the platform's
// response to one submitted candidate.
type CandidateResult struct {
	ID           int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID        int64          `gorm:"column:job_id" json:"job_id"`
	CandidateID  int64          `gorm:"column:candidate_id" json:"candidate_id"`
	SimulationID string         `gorm:"column:simulation_id;type:varchar(64)" json:"simulation_id"`
	Response     datatypes.JSON `gorm:"column:response;type:json" json:"response"`
	Status       string         `gorm:"column:status;type:varchar(16)" json:"status"`
}

func (CandidateResult) TableName() string {
	return "candidate_result"
}
