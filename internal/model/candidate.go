package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"time"
)

// Candidate corresponds to the `candidate` table: one generated alpha with
// its rendered expression and validation outcome.
type Candidate struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID         int64          `gorm:"column:job_id" json:"job_id"`
	Expression    string         `gorm:"column:expression;type:longtext;not null" json:"expression"`
	Tier          string         `gorm:"column:tier;type:varchar(32);not null" json:"tier"`
	SkeletonID    string         `gorm:"column:skeleton_id;type:varchar(64)" json:"skeleton_id"`
	Score         float64        `gorm:"column:score" json:"score"`
	Status        string         `gorm:"column:status;type:varchar(16);not null" json:"status"`
	Violations    datatypes.JSON `gorm:"column:violations;type:json" json:"violations"`
	SimulationEnv datatypes.JSON `gorm:"column:simulation_env;type:json;not null" json:"simulation_env"`
	IsSubmitted   int64          `gorm:"column:is_submitted;type:tinyint unsigned;default:0;not null" json:"is_submitted"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

func (c *Candidate) TableName() string {
	return "candidate"
}
