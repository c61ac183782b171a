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

var candidateRepo *repo.CandidateRepo

func init() {
	candidateRepo = repo.NewCandidateRepo()
}

func StoreCandidateList(candidateViewerList []viewer.Candidate) int64 {

	candidateModelList := make([]*model.Candidate, 0)

	for _, candidateViewer := range candidateViewerList {
		candidateModel := model.Candidate{}
		candidateModel.JobID = candidateViewer.JobID
		candidateModel.Expression = candidateViewer.Expression
		candidateModel.Tier = candidateViewer.Tier
		candidateModel.SkeletonID = candidateViewer.SkeletonID
		candidateModel.Score = candidateViewer.Score
		candidateModel.Status = candidateViewer.Status
		candidateModel.Violations = datatypes.JSON(candidateViewer.Violations)
		candidateModel.SimulationEnv = datatypes.JSON(candidateViewer.SimulationEnv)
		candidateModelList = append(candidateModelList, &candidateModel)
	}
	storedNum, err := candidateRepo.AddList(context.Background(), candidateModelList)
	if err != nil {
		log.Warnf("StoreCandidateList Failed reason: %s", err.Error())
		return -1
	}
	log.Infof("StoreCandidateList Success storedNum: %d", storedNum)
	return storedNum
}

func FindCandidateListByJobId(id int64) ([]viewer.Candidate, error) {
	candidateModels, err := candidateRepo.FindByJobId(context.Background(), id)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	candidateViewers := make([]viewer.Candidate, 0)
	for i := range candidateModels {
		candidateViewers = append(candidateViewers, candidateModel2Viewer(&candidateModels[i]))
	}
	return candidateViewers, nil
}

// FindSubmittableCandidates returns accepted, unsubmitted candidates for the
// background submitter.
func FindSubmittableCandidates(limit int64) ([]viewer.Candidate, error) {
	candidateModels, err := candidateRepo.FindSubmittable(context.Background(), limit)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	candidateViewers := make([]viewer.Candidate, 0)
	for i := range candidateModels {
		candidateViewers = append(candidateViewers, candidateModel2Viewer(&candidateModels[i]))
	}
	return candidateViewers, nil
}

func UpdateCandidateSubmitStatus(id int64, submitStatus int64) error {
	err := candidateRepo.UpdateFields(context.Background(), id, map[string]interface{}{
		"is_submitted": submitStatus,
	})
	if err != nil {
		log.Error(err.Error())
		return err
	}
	return nil
}

func candidateModel2Viewer(candidateModel *model.Candidate) viewer.Candidate {
	return viewer.Candidate{
		ID:            candidateModel.ID,
		JobID:         candidateModel.JobID,
		Expression:    candidateModel.Expression,
		Tier:          candidateModel.Tier,
		SkeletonID:    candidateModel.SkeletonID,
		Score:         candidateModel.Score,
		Status:        candidateModel.Status,
		Violations:    json.RawMessage(candidateModel.Violations),
		SimulationEnv: json.RawMessage(candidateModel.SimulationEnv),
		IsSubmitted:   candidateModel.IsSubmitted,
	}
}
