package repo

import (
	"context"
	"errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"wq_alpha_gen/internal/constant"
	"wq_alpha_gen/internal/model"
)

type JobRepo struct {
}

func NewJobRepo() *JobRepo {
	return &JobRepo{}
}

func (jobRepo *JobRepo) Add(_ context.Context, jobModel *model.GenJob) (int64, error) {
	result := db.Create(jobModel)
	if result.Error != nil {
		log.Errorf("failed to add gen job: %v", result.Error)
		return -1, result.Error
	}
	return jobModel.ID, nil
}

func (jobRepo *JobRepo) FindById(_ context.Context, jobId int64) (*model.GenJob, error) {
	var job model.GenJob
	result := db.First(&job, jobId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			err := fmt.Errorf("not found gen job by jobId %d", jobId)
			log.Error(err)
			return nil, err
		}
		log.Errorf("failed to find gen job by id %d: %v", jobId, result.Error)
		return nil, result.Error
	}
	return &job, nil
}

func (jobRepo *JobRepo) FindAll(_ context.Context) ([]model.GenJob, error) {
	var jobs []model.GenJob
	result := db.Find(&jobs)
	if result.Error != nil {
		log.Errorf("failed to find all gen jobs: %v", result.Error)
		return nil, result.Error
	}
	return jobs, nil
}

func (jobRepo *JobRepo) FindUnfinished(_ context.Context) ([]model.GenJob, error) {
	var jobs []model.GenJob
	result := db.Where("is_finished = ?", constant.UnFinished).Find(&jobs)
	if result.Error != nil {
		log.Errorf("failed to find unfinished gen jobs: %v", result.Error)
		return nil, result.Error
	}
	return jobs, nil
}

func (jobRepo *JobRepo) UpdateFields(_ context.Context, id int64, fields map[string]interface{}) error {
	result := db.Model(&model.GenJob{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		log.Errorf("UpdateFields for GenJob ID %d Error: %v", id, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		err := fmt.Errorf("UpdateFields for GenJob ID %d had no effect or record not found", id)
		log.Error(err.Error())
		return err
	}
	return nil
}

func (jobRepo *JobRepo) DeleteById(_ context.Context, jobId int64) (bool, error) {
	result := db.Delete(&model.GenJob{}, jobId)
	if result.Error != nil {
		log.Errorf("failed to delete gen job by id %d: %v", jobId, result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (jobRepo *JobRepo) DeleteByIdWithTx(_ context.Context, tx *gorm.DB, jobId int64) (bool, error) {
	result := tx.Delete(&model.GenJob{}, jobId)
	if result.Error != nil {
		log.Errorf("failed to delete gen job by id %d: %v", jobId, result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
