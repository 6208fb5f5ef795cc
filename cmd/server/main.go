package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"kgeyst.com/tikzgen/pkg/common"
	"kgeyst.com/tikzgen/pkg/tikzgen/api"
	"kgeyst.com/tikzgen/pkg/tikzgen/server"
)

func main() {
	err := mainImpl()
	if err != nil {
		panic(err)
	}
}

func mainImpl() error {
	config, err := common.LoadConfig("config.yaml")
	if err != nil {
		return err
	}
	port := config.GetIntOrDefault("serverPort", 3050)
	tikzgen, err := api.NewAPI(config)
	if err != nil {
		return err
	}
	defer tikzgen.Stop()
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Mount("/api/v1", server.New(tikzgen, config).Routes())
	return http.ListenAndServe(fmt.Sprintf(":%d", port), r)
}
