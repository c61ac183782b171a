package svc

import (
	"encoding/json"
	log "github.com/sirupsen/logrus"

	"wq_alpha_gen/configs"
	"wq_alpha_gen/internal/catalog"
	"wq_alpha_gen/internal/constant"
	"wq_alpha_gen/internal/expr"
	"wq_alpha_gen/internal/generator"
	"wq_alpha_gen/internal/optimizer"
	"wq_alpha_gen/internal/validator"
	"wq_alpha_gen/internal/viewer"
)

// The three engines share one read-only catalog built at startup. They are
// pure in-memory computations, so one instance of each serves every job.
var (
	conf         *configs.GlobalConfig
	alphaCatalog *catalog.Catalog
	alphaGen     *generator.Generator
	alphaVal     *validator.Validator
	alphaOpt     *optimizer.Optimizer
)

func init() {
	conf = configs.GetGlobalConfig()
	alphaCatalog = catalog.Default()
	alphaGen = generator.New(alphaCatalog)
	if repeatCap := conf.GenerateConfig.FieldRepeatCap; repeatCap > 0 {
		alphaVal = validator.NewWithRepeatCap(alphaCatalog, repeatCap)
	} else {
		alphaVal = validator.New(alphaCatalog)
	}
	alphaOpt = optimizer.New(alphaCatalog, alphaVal, optimizer.Config{
		Retries:  conf.OptimizeConfig.Retries,
		Patience: conf.OptimizeConfig.Patience,
	})
}

// PipelineResult pairs a finished candidate with its rendering and full
// validation report.
type PipelineResult struct {
	Candidate  *expr.Candidate
	Report     validator.Report
	Expression string
}

// BuildCandidates drives the engines for one batch: generate, optionally
// optimize, always validate. Rejected candidates are kept in the result with
// their reports so the caller can see why; they are never silently repaired.
// The batch may contain fewer accepted candidates than requested - the
// caller decides whether to ask for more.
func BuildCandidates(tier string, count int, optimize bool, iterations int) ([]PipelineResult, error) {

	candidates, err := alphaGen.Generate(tier, count, generator.Options{
		FieldSample: conf.GenerateConfig.FieldSample,
	})
	if err != nil {
		log.Errorf("BuildCandidates generate failed: %s", err.Error())
		return nil, err
	}

	if iterations <= 0 {
		iterations = conf.OptimizeConfig.Iterations
	}

	results := make([]PipelineResult, 0, len(candidates))
	for _, candidate := range candidates {
		if optimize {
			candidate = alphaOpt.Optimize(candidate, iterations)
		} else {
			candidate.Score = optimizer.Score(alphaCatalog, candidate)
		}

		report := alphaVal.Validate(candidate)
		if report.Accepted() {
			candidate.Status = constant.StatusAccepted
		} else {
			candidate.Status = constant.StatusRejected
		}

		expression, err := candidate.Root.Render(alphaCatalog)
		if err != nil {
			log.Errorf("BuildCandidates render failed: %s", err.Error())
			candidate.Status = constant.StatusRejected
		}
		results = append(results, PipelineResult{
			Candidate:  candidate,
			Report:     report,
			Expression: expression,
		})
	}
	return results, nil
}

// RunJob executes one stored generation job and persists its candidates.
func RunJob(job viewer.GenJob) (acceptedNum int64, rejectedNum int64, err error) {

	results, err := BuildCandidates(job.Tier, int(job.Count), job.Optimize == 1, int(job.Iterations))
	if err != nil {
		return 0, 0, err
	}

	candidateViewers := make([]viewer.Candidate, 0, len(results))
	for _, result := range results {
		candidateViewer, err := result.ToViewer(job.ID)
		if err != nil {
			log.Errorf("RunJob convert failed: %s", err.Error())
			continue
		}
		if result.Candidate.Accepted() {
			acceptedNum++
		} else {
			rejectedNum++
		}
		candidateViewers = append(candidateViewers, candidateViewer)
	}

	if storedNum := StoreCandidateList(candidateViewers); storedNum < 0 {
		log.Errorf("RunJob store failed for job %d", job.ID)
	}
	log.Infof("RunJob job %d done, accepted %d rejected %d", job.ID, acceptedNum, rejectedNum)
	return acceptedNum, rejectedNum, nil
}

// ToViewer flattens a pipeline result for storage and display.
func (result PipelineResult) ToViewer(jobId int64) (viewer.Candidate, error) {
	violationsByte, err := json.Marshal(result.Report.Violations)
	if err != nil {
		return viewer.Candidate{}, err
	}
	envByte, err := json.Marshal(constant.DefaultSimulationSettings())
	if err != nil {
		return viewer.Candidate{}, err
	}
	return viewer.Candidate{
		JobID:         jobId,
		Expression:    result.Expression,
		Tier:          result.Candidate.Tier,
		SkeletonID:    result.Candidate.SkeletonID,
		Score:         result.Candidate.Score,
		Status:        result.Candidate.Status,
		Violations:    violationsByte,
		SimulationEnv: envByte,
	}, nil
}
