package cmd

import (
	"github.com/achilleasa/polaris-bvh/log"
	"github.com/urfave/cli"
)

var logger = log.New("polaris-bvh")

func setupLogging(ctx *cli.Context) error {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}

	// An explicit level overrides the verbosity switches
	if name := ctx.GlobalString("log-level"); name != "" {
		level, err := log.ParseLevel(name)
		if err != nil {
			return err
		}
		log.SetLevel(level)
	}

	return nil
}
