package model

import (
	"gorm.io/gorm"
	"time"
)

// GenJob corresponds to the `gen_job` table: one requested generation batch.
type GenJob struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	JobTitle    string `gorm:"column:job_title;type:varchar(255)" json:"job_title"`
	JobDesc     string `gorm:"column:job_desc;type:varchar(255)" json:"job_desc"`
	Tier        string `gorm:"column:tier;type:varchar(32);not null" json:"tier"`
	Count       int64  `gorm:"column:count;not null" json:"count"`
	Optimize    int64  `gorm:"column:optimize;type:tinyint unsigned;default:0;not null" json:"optimize"`
	Iterations  int64  `gorm:"column:iterations;default:0" json:"iterations"`
	AcceptedNum int64  `gorm:"column:accepted_num;default:0" json:"accepted_num"`
	RejectedNum int64  `gorm:"column:rejected_num;default:0" json:"rejected_num"`
	IsFinished  int64  `gorm:"column:is_finished;type:tinyint unsigned;default:0;not null" json:"is_finished"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

func (j *GenJob) TableName() string {
	return "gen_job"
}
