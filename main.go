package main

import (
	"github.com/hyeonss0417/bulletin-board/config"
	"github.com/hyeonss0417/bulletin-board/models"
	"github.com/hyeonss0417/bulletin-board/routes"
	"github.com/hyeonss0417/bulletin-board/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Post{}, &models.Comment{})

	r, err := routes.SetupRouter(db)
	if err != nil {
		utils.Sugar.Fatalf("failed to build router: %v", err)
	}

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
