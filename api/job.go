package api

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"net/http"
	"wq_alpha_gen/configs"
	"wq_alpha_gen/internal/constant"
	"wq_alpha_gen/internal/svc"
	"wq_alpha_gen/internal/viewer"
)

func Hello(ctx *gin.Context) {

	ctx.JSON(http.StatusOK, "Hello")
}

func UploadJob(ctx *gin.Context) {
	jobRequest := UploadJobReq{}
	err := ctx.ShouldBind(&jobRequest)
	if err != nil {
		log.Error(err.Error())
		ctx.JSON(http.StatusBadRequest, UploadJobResp{
			Message: err.Error(),
		})
		return
	}

	if !constant.IsValidTier(jobRequest.Tier) {
		ctx.JSON(http.StatusBadRequest, UploadJobResp{
			Message: "Unknown Tier: " + jobRequest.Tier,
		})
		return
	}
	if jobRequest.Count < 1 {
		ctx.JSON(http.StatusBadRequest, UploadJobResp{
			Message: "Count Must Be At Least 1",
		})
		return
	}
	maxBatch := configs.GetGlobalConfig().GenerateConfig.MaxBatchCount
	if maxBatch > 0 && jobRequest.Count > maxBatch {
		ctx.JSON(http.StatusBadRequest, UploadJobResp{
			Message: "Count Is Over Batch Limit",
		})
		return
	}

	jobViewer := viewer.GenJob{
		JobTitle:   jobRequest.JobTitle,
		JobDesc:    jobRequest.JobDesc,
		Tier:       jobRequest.Tier,
		Count:      jobRequest.Count,
		Iterations: jobRequest.Iterations,
	}
	if jobRequest.Optimize {
		jobViewer.Optimize = 1
	}

	jobId, err := svc.UploadJob(&jobViewer)
	if err != nil {
		log.Error(err.Error())
		ctx.JSON(http.StatusBadGateway, UploadJobResp{
			Message: "UpLoad Job Failed",
		})
		return
	}

	log.Infof("UpLoad Job success, jobId: {%d}", jobId)
	ctx.JSON(http.StatusOK, UploadJobResp{
		Message: "UpLoad Job Success",
		JobId:   jobId,
	})
}

func GetAllJob(ctx *gin.Context) {
	jobs, err := svc.GetAllJob()
	if err != nil {
		log.Error(err.Error())
		ctx.JSON(http.StatusBadGateway, GetJobListResp{
			Message: "Server Error",
		})
		return
	}
	ctx.JSON(http.StatusOK, GetJobListResp{
		Message: "Success",
		Jobs:    jobs,
	})
}

func GetUnfinishedJob(ctx *gin.Context) {
	jobs, err := svc.GetUnfinishedJob()
	if err != nil {
		log.Error(err.Error())
		ctx.JSON(http.StatusBadGateway, GetJobListResp{
			Message: "Server Error",
		})
		return
	}
	ctx.JSON(http.StatusOK, GetJobListResp{
		Message: "Success",
		Jobs:    jobs,
	})
}

func DeleteJob(ctx *gin.Context) {
	deleteRequest := DeleteJobReq{}
	err := ctx.ShouldBind(&deleteRequest)
	if err != nil || deleteRequest.Id <= 0 {
		ctx.JSON(http.StatusBadRequest, DeleteJobResp{
			Message: "Bad Params Job's Id",
		})
		return
	}

	if !svc.DeleteJob(deleteRequest.Id) {
		ctx.JSON(http.StatusBadGateway, DeleteJobResp{
			Message: "Delete Job Failed",
			JobId:   deleteRequest.Id,
		})
		return
	}
	ctx.JSON(http.StatusOK, DeleteJobResp{
		Message: "Success",
		JobId:   deleteRequest.Id,
	})
}
