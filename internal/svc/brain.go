package svc

import (
	"encoding/json"
	"fmt"
	log "github.com/sirupsen/logrus"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"wq_alpha_gen/internal/auth"
	"wq_alpha_gen/internal/constant"
	"wq_alpha_gen/internal/viewer"
)

// simulationPayload is the body posted to /simulations.
type simulationPayload struct {
	Type     string          `json:"type"`
	Settings json.RawMessage `json:"settings"`
	Regular  string          `json:"regular"`
}

// simulationResult is the terminal response polled from the simulation's
// progress URL.
type simulationResult struct {
	Id      string `json:"id"`
	Type    string `json:"type"`
	Status  string `json:"status"`
	Alpha   string `json:"alpha"`
	Message string `json:"message"`
}

type BrainService struct {
	brainAuth *auth.BrainAuth
}

func NewBrainService() *BrainService {
	brainAuth := auth.GetBrainAuth()
	return &BrainService{
		brainAuth: brainAuth,
	}
}

// SubmitCandidate posts one accepted candidate to the platform's simulation
// endpoint and waits for the terminal result. The engines upstream guarantee
// the expression is validator-accepted before it gets here.
func (brainSvc *BrainService) SubmitCandidate(candidate viewer.Candidate) error {
	resp, err := brainSvc.simulate(candidate)
	if err != nil {
		log.Errorf("simulate Failed {%s}", err.Error())
		return err
	}

	result, err := brainSvc.waitResult(resp)
	if err != nil {
		log.Errorf("waitResult Failed: %s", err.Error())
		return err
	}
	if result.Status != constant.StatusComplete {
		err := fmt.Errorf("simulation finished with status %s, message: %s", result.Status, result.Message)
		log.Error(err.Error())
		return err
	}

	if conf.SubmitConfig.NeedStoreRecords {
		responseByte, err := json.Marshal(result)
		if err != nil {
			log.Errorf("marshal simulation result failed: %s", err.Error())
			return err
		}
		if err = StoreCandidateResult(&viewer.CandidateResult{
			JobID:        candidate.JobID,
			CandidateID:  candidate.ID,
			SimulationID: result.Id,
			Response:     responseByte,
			Status:       result.Status,
		}); err != nil {
			log.Errorf("StoreCandidateResult failed: %s", err.Error())
			return err
		}
	}
	return nil
}

func (brainSvc *BrainService) simulate(candidate viewer.Candidate) (*http.Response, error) {
	defer brainSvc.brainAuth.CheckFreshToken()

	payload := simulationPayload{
		Type:     "REGULAR",
		Settings: candidate.SimulationEnv,
		Regular:  candidate.Expression,
	}
	payloadByte, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("marshal simulation payload failed: %s", err.Error())
		return nil, err
	}

	req, err := http.NewRequest("POST", constant.BrainBaseUrl+constant.SimulationsUri,
		strings.NewReader(string(payloadByte)))
	if err != nil {
		log.Errorf("New Simulations Request failed: %s", err.Error())
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := brainSvc.brainAuth.HttpClient.Do(req)
	if err != nil {
		log.Errorf("simulate Request failed: %s", err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Errorf("simulate read body failed: %s", err.Error())
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("simulate code: %d, message: %s", resp.StatusCode, string(body))
	}
	return resp, nil
}

// waitResult polls the simulation's Location URL, honoring Retry-After,
// until the platform reports a terminal status.
func (brainSvc *BrainService) waitResult(resp *http.Response) (*simulationResult, error) {
	location := resp.Header.Get("Location")
	if location == "" {
		return nil, fmt.Errorf("simulate response missing Location header")
	}
	retrySecond, err := strconv.ParseFloat(resp.Header.Get("Retry-After"), 64)
	if err != nil {
		retrySecond = 1
	}

	maxTimes := conf.SubmitConfig.MaxRetryNum
	for i := int64(0); i < maxTimes; i++ {
		time.Sleep(time.Duration(retrySecond * float64(time.Second)))

		pollResp, err := brainSvc.brainAuth.HttpClient.Get(location)
		if err != nil {
			log.Errorf("poll simulation failed: %s", err.Error())
			return nil, err
		}
		body, err := io.ReadAll(pollResp.Body)
		pollResp.Body.Close()
		if err != nil {
			log.Errorf("poll read body failed: %s", err.Error())
			return nil, err
		}

		var result simulationResult
		if err := json.Unmarshal(body, &result); err != nil {
			log.Errorf("poll unmarshal failed: %s", err.Error())
			return nil, err
		}
		if result.Status != "" {
			return &result, nil
		}
	}
	return nil, fmt.Errorf("simulation result not ready after %d polls", maxTimes)
}
