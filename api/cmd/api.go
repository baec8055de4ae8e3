package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
}

type ServerConfig struct {
	Port string
}

type MongoConfig struct {
	URI    string
	DBName string
}

func LoadConfig() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found, using existing environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: os.Getenv("PORT"),
		},
		Mongo: MongoConfig{
			URI:    os.Getenv("MONGO_URI"),
			DBName: os.Getenv("DB_NAME"),
		},
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Mongo.DBName == "" {
		cfg.Mongo.DBName = "cinetrends"
	}
	return cfg
}
