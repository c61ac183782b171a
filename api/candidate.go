package api

import (
	"errors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"net/http"
	"strconv"
	"wq_alpha_gen/internal/generator"
	"wq_alpha_gen/internal/svc"
)

func GetCandidateListByJob(ctx *gin.Context) {

	jobIdStr := ctx.Query("jobId")
	if jobIdStr == "" {
		ctx.JSON(http.StatusBadRequest, GetCandidateListResp{
			Message: "Need Params Job's Id",
		})
		return
	}

	jobId, err := strconv.Atoi(jobIdStr)
	if err != nil || jobId <= 0 {
		ctx.JSON(http.StatusBadRequest, GetCandidateListResp{
			Message: "Bad Params Job's Id",
		})
		return
	}

	candidates, err := svc.FindCandidateListByJobId(int64(jobId))
	if err != nil {
		log.Error(err.Error())
		ctx.JSON(http.StatusBadGateway, GetCandidateListResp{
			Message: "Server Error",
		})
		return
	}

	log.Info("API|| GetCandidateList Success")
	ctx.JSON(http.StatusOK, GetCandidateListResp{
		Message:    "Success",
		JobId:      int64(jobId),
		Candidates: candidates,
	})
}

// Generate runs one synchronous batch through the engines and returns the
// candidates without storing them.
func Generate(ctx *gin.Context) {
	generateRequest := GenerateReq{}
	err := ctx.ShouldBind(&generateRequest)
	if err != nil {
		log.Error(err.Error())
		ctx.JSON(http.StatusBadRequest, GenerateResp{
			Message: err.Error(),
		})
		return
	}

	results, err := svc.BuildCandidates(generateRequest.Tier, int(generateRequest.Count),
		generateRequest.Optimize, int(generateRequest.Iterations))
	if err != nil {
		if errors.Is(err, generator.ErrUnknownTier) || errors.Is(err, generator.ErrBadCount) {
			ctx.JSON(http.StatusBadRequest, GenerateResp{
				Message: err.Error(),
			})
			return
		}
		log.Error(err.Error())
		ctx.JSON(http.StatusBadGateway, GenerateResp{
			Message: "Server Error",
		})
		return
	}

	resp := GenerateResp{Message: "Success"}
	for _, result := range results {
		if result.Candidate.Accepted() {
			resp.AcceptedNum++
		} else {
			resp.RejectedNum++
		}
		resp.Candidates = append(resp.Candidates, GeneratedCandidate{
			Expression: result.Expression,
			Tier:       result.Candidate.Tier,
			SkeletonID: result.Candidate.SkeletonID,
			Score:      result.Candidate.Score,
			Status:     result.Candidate.Status,
			Violations: result.Report.Violations,
		})
	}
	ctx.JSON(http.StatusOK, resp)
}
