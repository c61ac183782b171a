package main

import (
	"context"
	"fmt"
	log "github.com/sirupsen/logrus"

	"wq_alpha_gen/configs"
	"wq_alpha_gen/internal/scheduler"
	"wq_alpha_gen/internal/submitter"
	"wq_alpha_gen/router"
)

func init() {
	configs.InitGlobalConfig()
}
func main() {

	config := configs.GetGlobalConfig()

	log.Infof("The service %s starting", config.AppConfig.AppName)

	ctx, cancelFunc := context.WithCancel(context.Background())
	jobScheduler := scheduler.NewJobScheduler(ctx, cancelFunc)
	jobScheduler.Run()
	defer func(jobScheduler *scheduler.JobScheduler) {
		jobScheduler.Stop()
	}(jobScheduler)

	if config.SubmitConfig.Enabled {
		submitCtx, submitCancel := context.WithCancel(ctx)
		candidateSubmitter := submitter.NewSubmitter(submitCtx, submitCancel)
		candidateSubmitter.Run()
		defer func(candidateSubmitter *submitter.Submitter) {
			candidateSubmitter.Stop()
		}(candidateSubmitter)
	}

	r := router.SetRouter()
	if err := r.Run(fmt.Sprintf(":%d", config.AppConfig.Port)); err != nil {
		log.Errorf("server run error: %v", err)
	}

}
