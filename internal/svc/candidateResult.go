package svc

import (
	"context"
	"encoding/json"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"wq_alpha_gen/internal/model"
	"wq_alpha_gen/internal/repo"
	"wq_alpha_gen/internal/viewer"
)

var candidateResultRepo *repo.CandidateResultRepo

func init() {
	candidateResultRepo = repo.NewCandidateResultRepo()
}

func StoreCandidateResult(resultViewer *viewer.CandidateResult) error {
	resultModel := model.CandidateResult{
		JobID:        resultViewer.JobID,
		CandidateID:  resultViewer.CandidateID,
		SimulationID: resultViewer.SimulationID,
		Response:     datatypes.JSON(resultViewer.Response),
		Status:       resultViewer.Status,
	}
	_, err := candidateResultRepo.Add(context.Background(), &resultModel)
	if err != nil {
		log.Error(err.Error())
		return err
	}
	return nil
}

func FindResultsByCandidateId(candidateId int64) ([]viewer.CandidateResult, error) {
	resultModels, err := candidateResultRepo.FindByCandidateId(context.Background(), candidateId)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	resultViewers := make([]viewer.CandidateResult, 0)
	for _, resultModel := range resultModels {
		resultViewers = append(resultViewers, viewer.CandidateResult{
			ID:           resultModel.ID,
			JobID:        resultModel.JobID,
			CandidateID:  resultModel.CandidateID,
			SimulationID: resultModel.SimulationID,
			Response:     json.RawMessage(resultModel.Response),
			Status:       resultModel.Status,
		})
	}
	return resultViewers, nil
}
