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

type CandidateRepo struct {
}

func NewCandidateRepo() *CandidateRepo {
	return &CandidateRepo{}
}

func (candidateRepo *CandidateRepo) AddList(_ context.Context, candidateList []*model.Candidate) (int64, error) {
	listLen := len(candidateList)
	if listLen == 0 {
		return 0, nil
	}

	result := db.CreateInBatches(candidateList, 100)
	if result.Error != nil {
		log.Errorf("failed to add candidate list: %v", result.Error)
		return 0, result.Error
	}
	if result.RowsAffected < int64(listLen) {
		err := fmt.Errorf("expected to insert %d records, but only inserted %d", listLen, result.RowsAffected)
		log.Error(err)
		return result.RowsAffected, err
	}
	return result.RowsAffected, nil
}

func (candidateRepo *CandidateRepo) FindById(_ context.Context, candidateId int64) (*model.Candidate, error) {
	var candidate model.Candidate
	result := db.First(&candidate, candidateId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			err := fmt.Errorf("not found candidate by candidateId %d", candidateId)
			log.Error(err)
			return nil, err
		}
		log.Errorf("failed to find candidate by id %d: %v", candidateId, result.Error)
		return nil, result.Error
	}
	return &candidate, nil
}

func (candidateRepo *CandidateRepo) FindByJobId(_ context.Context, jobId int64) ([]model.Candidate, error) {
	var candidates []model.Candidate
	result := db.Where("job_id = ?", jobId).Find(&candidates)
	if result.Error != nil {
		log.Errorf("failed to find candidates by job_id %d: %v", jobId, result.Error)
		return nil, result.Error
	}
	return candidates, nil
}

// FindSubmittable returns accepted, not yet submitted candidates, oldest
// first, capped at limit.
func (candidateRepo *CandidateRepo) FindSubmittable(_ context.Context, limit int64) ([]model.Candidate, error) {
	var candidates []model.Candidate
	result := db.Where("status = ? AND is_submitted = ?", constant.StatusAccepted, constant.UnSubmitted).
		Order("id asc").Limit(int(limit)).Find(&candidates)
	if result.Error != nil {
		log.Errorf("failed to find submittable candidates: %v", result.Error)
		return nil, result.Error
	}
	return candidates, nil
}

func (candidateRepo *CandidateRepo) UpdateFields(_ context.Context, id int64, fields map[string]interface{}) error {
	result := db.Model(&model.Candidate{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		log.Errorf("UpdateFields for Candidate ID %d Error: %v", id, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		err := fmt.Errorf("UpdateFields for Candidate ID %d had no effect or record not found", id)
		log.Error(err.Error())
		return err
	}
	return nil
}

func (candidateRepo *CandidateRepo) DeleteByJobId(_ context.Context, jobId int64) (bool, error) {
	result := db.Where("job_id = ?", jobId).Delete(&model.Candidate{})
	if result.Error != nil {
		log.Errorf("failed to delete candidates by job_id %d: %v", jobId, result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (candidateRepo *CandidateRepo) DeleteByJobIdWithTx(_ context.Context, tx *gorm.DB, jobId int64) (bool, error) {
	result := tx.Where("job_id = ?", jobId).Delete(&model.Candidate{})
	if result.Error != nil {
		log.Errorf("failed to delete candidates by job_id %d: %v", jobId, result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
