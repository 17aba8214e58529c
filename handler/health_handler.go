package handler

import (
	"context"
	"time"

	"main/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func HealthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, 2*time.Second)
	defer cancel()

	mongoStatus := "up"
	if err := utils.MongoClient.Ping(ctx, readpref.Primary()); err != nil {
		mongoStatus = "down"
	}

	utils.Success(c, gin.H{
		"status":    "ok",
		"mongo":     mongoStatus,
		"cpu_usage": utils.GetCPUUsage(),
	})
}
