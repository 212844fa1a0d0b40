package main

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wataki/wataki-go/cmd/cli"
	_ "github.com/wataki/wataki-go/pkg/logger"
)

func main() {
	start := time.Now()
	log.Trace().Msgf("Top of execution - %s", start.UTC())
	cli.Execute()
	log.Trace().Msgf("Execution finished - %s", time.Since(start))
}
