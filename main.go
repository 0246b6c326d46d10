// file: main.go
package main

import (
	"log"

	"github.com/bytehatacademy/alien-recon-portal/config"
	"github.com/bytehatacademy/alien-recon-portal/database"
	"github.com/bytehatacademy/alien-recon-portal/middlewares"
	"github.com/bytehatacademy/alien-recon-portal/routes"
)

func main() {
	config.Load()

	database.Connect()
	database.MigrateTables()
	database.InitRedis()

	if config.App.SeedMissions {
		database.SeedMissions()
	}

	middlewares.InitPrometheus()

	r := routes.SetupRouter()

	log.Printf("Starting server on %s (rank policy: %s, flag prefix: %s)",
		config.App.ListenAddr, config.App.RankPolicy, config.App.FlagPrefix)
	if err := r.Run(config.App.ListenAddr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
