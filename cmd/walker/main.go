package main

import (
	"github.com/oliverbestmann/walker/config"
	"github.com/oliverbestmann/walker/orion"
)

func main() {
	cfg, err := config.Load(config.DefaultPath)
	orion.Handle(err, "load config")

	closer, err := orion.SetupLogging(cfg.Logging)
	orion.Handle(err, "setup logging")

	defer closer.Close()

	err = orion.Run(cfg)
	orion.Handle(err, "run walker")
}
