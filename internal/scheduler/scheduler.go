package scheduler

import (
	"context"
	"github.com/panjf2000/ants"
	log "github.com/sirupsen/logrus"
	"sync"
	"time"
	"wq_alpha_gen/configs"
	"wq_alpha_gen/internal/svc"
	"wq_alpha_gen/internal/viewer"
)

// JobScheduler scans unfinished generation jobs and runs each through the
// generate/optimize/validate pipeline on a worker pool. A job runs at most
// once at a time; the candidate batches themselves are independent, so jobs
// run in parallel freely.

type JobScheduler struct {
	ticker     time.Ticker
	once       sync.Once
	running    map[int64]struct{}
	mutex      sync.Mutex
	ctx        context.Context
	cancelFunc context.CancelFunc
	workerPool *ants.Pool
}

var conf *configs.GlobalConfig

func init() {
	conf = configs.GetGlobalConfig()
}

func NewJobScheduler(ctx context.Context, cancelFunc context.CancelFunc) *JobScheduler {
	workerPool, err := ants.NewPool(5)
	if err != nil {
		log.Errorf("JobScheduler NewJobScheduler Error: %s", err.Error())
		return nil
	}
	scanSecond := conf.ScheduleConfig.TimeSecond
	if scanSecond <= 0 {
		scanSecond = 1
	}
	return &JobScheduler{
		ticker:     *time.NewTicker(time.Duration(scanSecond) * time.Second),
		once:       sync.Once{},
		running:    make(map[int64]struct{}),
		ctx:        ctx,
		cancelFunc: cancelFunc,
		workerPool: workerPool,
	}
}

func (s *JobScheduler) Run() {
	err := s.workerPool.Submit(s.work)
	if err != nil {
		log.Errorf("JobScheduler Run Error: %s", err.Error())
		return
	}
}

func (s *JobScheduler) work() {
	defer func() {
		if r := recover(); r != nil {
			s.Stop()
		}
	}()
	for range s.ticker.C {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		jobs := s.scanPendingJob()
		for _, jobViewer := range jobs {
			if !s.tryAcquire(jobViewer.ID) {
				continue
			}
			job := jobViewer
			err := s.workerPool.Submit(func() {
				s.runJob(job)
			})
			if err != nil {
				log.Errorf("JobScheduler submit job %d Error: %s", job.ID, err.Error())
				s.release(job.ID)
			}
		}
	}
}

func (s *JobScheduler) runJob(job viewer.GenJob) {
	defer s.release(job.ID)

	acceptedNum, rejectedNum, err := svc.RunJob(job)
	if err != nil {
		log.Errorf("JobScheduler runJob %d Error: %s", job.ID, err.Error())
		return
	}
	if err := svc.FinishJob(job.ID, acceptedNum, rejectedNum); err != nil {
		log.Errorf("JobScheduler FinishJob %d Error: %s", job.ID, err.Error())
	}
}

func (s *JobScheduler) scanPendingJob() []viewer.GenJob {
	jobs, err := svc.GetUnfinishedJob()
	if err != nil {
		log.Errorf("JobScheduler scanPendingJob Error: %s", err.Error())
		return nil
	}
	return jobs
}

func (s *JobScheduler) tryAcquire(jobId int64) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.running[jobId]; ok {
		return false
	}
	s.running[jobId] = struct{}{}
	return true
}

func (s *JobScheduler) release(jobId int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.running, jobId)
}

func (s *JobScheduler) Stop() {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("JobScheduler Stop Error: %s", r)
		}
	}()

	s.once.Do(func() {
		s.ticker.Stop()
		s.cancelFunc()
		err := s.workerPool.Release()
		if err != nil {
			log.Errorf("JobScheduler Stop Error: %s", err.Error())
			return
		}
	})

}
