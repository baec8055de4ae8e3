package main

import (
	"log"

	"github.com/Bukkimarh/cinetrends/api/handlers"
	"github.com/Bukkimarh/cinetrends/db"
	"github.com/Bukkimarh/cinetrends/db/repository"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := LoadConfig()

	con, err := db.NewMongoConn()
	if err != nil {
		log.Fatal(err)
	}

	summariesCollection := con.Database(cfg.Mongo.DBName).Collection("summaries")

	repo := repository.NewMongoRepo(summariesCollection)
	handlers := handlers.NewHandler(repo)

	r := gin.Default()
	r.GET("/summaries", handlers.GetSummariesByEntity)
	r.GET("/summaries/recent", handlers.GetRecentSummaries)
	r.GET("/runs/:id", handlers.GetSummariesByRun)

	r.Run(":" + cfg.Server.Port)
}
