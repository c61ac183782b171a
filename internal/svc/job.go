package svc

import (
	"context"
	log "github.com/sirupsen/logrus"
	"wq_alpha_gen/internal/constant"
	"wq_alpha_gen/internal/model"
	"wq_alpha_gen/internal/repo"
	"wq_alpha_gen/internal/viewer"
)

var jobRepo *repo.JobRepo

func init() {
	jobRepo = repo.NewJobRepo()
}

func UploadJob(jobViewer *viewer.GenJob) (jobId int64, err error) {

	jobModel := model.GenJob{
		JobTitle:   jobViewer.JobTitle,
		JobDesc:    jobViewer.JobDesc,
		Tier:       jobViewer.Tier,
		Count:      jobViewer.Count,
		Optimize:   jobViewer.Optimize,
		Iterations: jobViewer.Iterations,
		IsFinished: constant.UnFinished,
	}
	jobId, err = jobRepo.Add(context.Background(), &jobModel)
	if err != nil {
		log.Error(err.Error())
		return -1, err
	}

	return jobId, nil
}

func GetJobById(id int64) viewer.GenJob {
	jobModel, err := jobRepo.FindById(context.Background(), id)
	if err != nil {
		log.Error(err.Error())
		return viewer.GenJob{}
	}
	return jobModel2Viewer(jobModel)
}

func GetAllJob() ([]viewer.GenJob, error) {
	jobs, err := jobRepo.FindAll(context.Background())
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	jobViewers := make([]viewer.GenJob, 0)
	for i := range jobs {
		jobViewers = append(jobViewers, jobModel2Viewer(&jobs[i]))
	}
	return jobViewers, nil
}

func GetUnfinishedJob() ([]viewer.GenJob, error) {
	jobs, err := jobRepo.FindUnfinished(context.Background())
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	jobViewers := make([]viewer.GenJob, 0)
	for i := range jobs {
		jobViewers = append(jobViewers, jobModel2Viewer(&jobs[i]))
	}
	return jobViewers, nil
}

// FinishJob stamps the final counters and marks the job done.
func FinishJob(jobId int64, acceptedNum, rejectedNum int64) error {
	err := jobRepo.UpdateFields(context.Background(), jobId, map[string]interface{}{
		"accepted_num": acceptedNum,
		"rejected_num": rejectedNum,
		"is_finished":  constant.Finished,
	})
	if err != nil {
		log.Errorf("Error in FinishJob: %s", err.Error())
		return err
	}
	return nil
}

// DeleteJob removes the job and its candidates in one transaction.
func DeleteJob(jobId int64) bool {
	db := repo.GetDbCli()
	tx := db.Begin()

	if _, err := jobRepo.DeleteByIdWithTx(context.Background(), tx, jobId); err != nil {
		tx.Rollback()
		return false
	}
	if _, err := candidateRepo.DeleteByJobIdWithTx(context.Background(), tx, jobId); err != nil {
		tx.Rollback()
		return false
	}
	tx.Commit()
	return true
}

func jobModel2Viewer(jobModel *model.GenJob) viewer.GenJob {
	return viewer.GenJob{
		ID:          jobModel.ID,
		JobTitle:    jobModel.JobTitle,
		JobDesc:     jobModel.JobDesc,
		Tier:        jobModel.Tier,
		Count:       jobModel.Count,
		Optimize:    jobModel.Optimize,
		Iterations:  jobModel.Iterations,
		AcceptedNum: jobModel.AcceptedNum,
		RejectedNum: jobModel.RejectedNum,
		IsFinished:  jobModel.IsFinished,
	}
}
