package repo

import (
	"context"
	log "github.com/sirupsen/logrus"
	"wq_alpha_gen/internal/model"
)

type CandidateResultRepo struct {
}

func NewCandidateResultRepo() *CandidateResultRepo {
	return &CandidateResultRepo{}
}

func (resultRepo *CandidateResultRepo) Add(_ context.Context, resultModel *model.CandidateResult) (int64, error) {
	result := db.Create(resultModel)
	if result.Error != nil {
		log.Errorf("failed to add candidate result: %v", result.Error)
		return -1, result.Error
	}
	return resultModel.ID, nil
}

func (resultRepo *CandidateResultRepo) FindByCandidateId(_ context.Context, candidateId int64) ([]model.CandidateResult, error) {
	var results []model.CandidateResult
	queryResult := db.Where("candidate_id = ?", candidateId).Find(&results)
	if queryResult.Error != nil {
		log.Errorf("failed to find results by candidate_id %d: %v", candidateId, queryResult.Error)
		return nil, queryResult.Error
	}
	return results, nil
}
