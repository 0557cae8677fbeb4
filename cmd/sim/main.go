package main

import (
	"bufio"
	"os"

	"github.com/tomz197/particles/internal/config"
	"github.com/tomz197/particles/internal/loop"
	loopconfig "github.com/tomz197/particles/internal/loop/config"
	"github.com/tomz197/particles/internal/scene"
	"github.com/tomz197/particles/internal/sim"
	"golang.org/x/term"
)

func main() {
	logger := config.NewLogger(os.Stderr, "sim")
	if err := config.LoadDotEnv(); err != nil {
		logger.Fatal("failed to load .env", "err", err)
	}

	cfg := sim.ConfigFromEnv(loopconfig.ViewWidth, loopconfig.ViewHeight)
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid simulation config", "err", err)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}

	swarm := scene.NewSwarm(cfg, scene.NewHUD(scene.NewRenderer(os.Stdout)))
	runErr := loop.Run(swarm, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{})
	_ = term.Restore(fd, oldState)

	if runErr != nil {
		logger.Fatal("simulation error", "err", runErr)
	}
	logger.Debug("exited", "ticks", swarm.State().Ticks())
}
