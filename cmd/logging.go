package cmd

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/log"
)

var logger = log.New("pathtracer")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// Fatal logs err and exits with a non-zero status
func Fatal(err error) {
	logger.Errorf("error: %v", err)
	os.Exit(1)
}
