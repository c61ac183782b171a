package submitter

import (
	"context"
	"encoding/json"
	log "github.com/sirupsen/logrus"
	"sync"
	"time"
	"wq_alpha_gen/configs"
	"wq_alpha_gen/internal/constant"
	"wq_alpha_gen/internal/svc"
	"wq_alpha_gen/internal/viewer"
)

// Submitter drains accepted, unsubmitted candidates to the platform in the
// background. Failed submissions cycle through the dead channel until the
// retry budget runs out.

type SubmitTask struct {
	ID            int64
	JobID         int64
	Expression    string
	SimulationEnv json.RawMessage
	RetryNum      int64
}

type SafeChan struct {
	taskChan chan SubmitTask
	once     sync.Once
	isClosed bool
	mutex    sync.Mutex
}

func NewSafeChan(chanLen int64) SafeChan {
	return SafeChan{
		taskChan: make(chan SubmitTask, chanLen),
		once:     sync.Once{},
		isClosed: false,
		mutex:    sync.Mutex{},
	}
}

func (safeChan *SafeChan) Write(task SubmitTask) {
	safeChan.mutex.Lock()
	defer safeChan.mutex.Unlock()
	if safeChan.isClosed {
		return
	}
	safeChan.taskChan <- task
}

func (safeChan *SafeChan) Close() {
	safeChan.mutex.Lock()
	defer safeChan.mutex.Unlock()
	safeChan.once.Do(func() {
		safeChan.isClosed = true
		close(safeChan.taskChan)
	})
}

func (safeChan *SafeChan) GetReadChan() <-chan SubmitTask {
	return safeChan.taskChan
}

type Submitter struct {
	context     context.Context
	cancelFunc  context.CancelFunc
	ScanSecond  int64
	ChannelLen  int64
	MaxRetryNum int64
	TaskChan    SafeChan
	DeadChan    SafeChan
	inFlight    map[int64]struct{}
	mutex       sync.Mutex
	once        sync.Once
	workerNum   int64
}

func NewSubmitter(ctx context.Context, cancelFunc context.CancelFunc) *Submitter {
	conf := configs.GetGlobalConfig()
	channelLen := conf.SubmitConfig.ChannelLen
	if channelLen <= 0 {
		channelLen = 16
	}
	scanSecond := conf.SubmitConfig.ScanSecond
	if scanSecond <= 0 {
		scanSecond = 10
	}
	workerNum := conf.AppConfig.Concurrency
	if workerNum <= 0 {
		workerNum = 1
	}
	return &Submitter{
		context:     ctx,
		cancelFunc:  cancelFunc,
		ScanSecond:  scanSecond,
		ChannelLen:  channelLen,
		MaxRetryNum: conf.SubmitConfig.MaxRetryNum,
		TaskChan:    NewSafeChan(channelLen),
		DeadChan:    NewSafeChan(channelLen),
		inFlight:    make(map[int64]struct{}),
		workerNum:   workerNum,
	}
}

func (s *Submitter) Run() {
	go s.scanCandidates()
	go s.retryTasks()
	for i := int64(0); i < s.workerNum; i++ {
		go s.executeTasks()
	}
}

func (s *Submitter) Stop() {
	s.once.Do(func() {
		s.cancelFunc()
		s.TaskChan.Close()
		s.DeadChan.Close()
	})
}

// scanCandidates feeds accepted candidates into the task channel, skipping
// ones already in flight.
func (s *Submitter) scanCandidates() {
	ticker := time.NewTicker(time.Duration(s.ScanSecond) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.context.Done():
			return
		case <-ticker.C:
		}

		candidates, err := svc.FindSubmittableCandidates(s.ChannelLen)
		if err != nil {
			log.Errorf("Submitter scanCandidates Error: %s", err.Error())
			continue
		}
		for _, candidate := range candidates {
			if !s.tryAcquire(candidate.ID) {
				continue
			}
			s.TaskChan.Write(SubmitTask{
				ID:            candidate.ID,
				JobID:         candidate.JobID,
				Expression:    candidate.Expression,
				SimulationEnv: candidate.SimulationEnv,
			})
		}
	}
}

func (s *Submitter) retryTasks() {
	for task := range s.DeadChan.GetReadChan() {
		task.RetryNum++
		if task.RetryNum > s.MaxRetryNum {
			s.finishTask(task, constant.SubmitFailed)
			continue
		}
		s.TaskChan.Write(task)
	}
}

func (s *Submitter) executeTasks() {
	brainSvc := svc.NewBrainService()
	for {
		select {
		case task := <-s.TaskChan.GetReadChan():
			candidate := viewer.Candidate{
				ID:            task.ID,
				JobID:         task.JobID,
				Expression:    task.Expression,
				SimulationEnv: task.SimulationEnv,
			}
			err := brainSvc.SubmitCandidate(candidate)
			if err != nil {
				log.Errorf("JobId: %d candidate task %d submission failed: %v", task.JobID, task.ID, err)
				s.DeadChan.Write(task)
				continue
			}
			s.finishTask(task, constant.Submitted)
		case <-s.context.Done():
			return
		}
	}
}

func (s *Submitter) finishTask(task SubmitTask, status int64) {
	if err := svc.UpdateCandidateSubmitStatus(task.ID, status); err != nil {
		log.Errorf("Submitter finishTask %d Error: %s", task.ID, err.Error())
	}
	s.release(task.ID)
}

func (s *Submitter) tryAcquire(candidateId int64) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.inFlight[candidateId]; ok {
		return false
	}
	s.inFlight[candidateId] = struct{}{}
	return true
}

func (s *Submitter) release(candidateId int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.inFlight, candidateId)
}
