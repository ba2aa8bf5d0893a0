package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"coursebuilder/config"
	"coursebuilder/database"
	"coursebuilder/repository"
	"coursebuilder/routers"
	"coursebuilder/services"
	"coursebuilder/utils"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	store := repository.NewGormStore(database.Database.Db)
	svc := services.New(store, utils.NewPublicationNotifier(config.AppConfig), config.AppConfig.SaltRound)

	if spec := config.AppConfig.IntegrityCron; spec != "" {
		scheduler, err := utils.InitializeIntegrityScheduler(spec, svc.Courses)
		if err != nil {
			log.Fatalf("Failed to start integrity scheduler: %v", err)
		}
		defer scheduler.Stop()
	}

	app := routers.NewApp(svc)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Server shutdown failed: %v", err)
		}
	}()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		log.Fatal(err)
	}
}
