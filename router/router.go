package router

import (
	"github.com/gin-gonic/gin"
	"wq_alpha_gen/internal/auth"

	"wq_alpha_gen/api"
)

func SetRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.Use(auth.APIKeyAuthMiddleware())

	alphaGen := r.Group("/alpha_gen")
	alphaGen.GET("/hello", api.Hello)
	alphaGen.POST("/generate", api.Generate)

	jobGroup := alphaGen.Group("/job")
	jobGroup.POST("/upload", api.UploadJob)
	jobGroup.GET("/all", api.GetAllJob)
	jobGroup.GET("/unfinish", api.GetUnfinishedJob)
	jobGroup.POST("/delete", api.DeleteJob)

	candidateGroup := alphaGen.Group("/candidate")
	candidateGroup.GET("/list", api.GetCandidateListByJob)
	return r
}
