package main

import (
	"fmt"

	"sales_admin/api"
	"sales_admin/internal/config"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	r := gin.Default()
	api.InitRoutes(r, cfg)

	if err := r.Run(cfg.HTTPAddr); err != nil {
		panic(fmt.Errorf("error trying to start server: %v", err))
	}
}
