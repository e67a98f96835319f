// Command mahjongd runs the authoritative session server for one
// table: it accepts exactly as many players as configured, plays a
// single game to completion, and exits — by design there is no lobby
// and no second session per process.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mahjongcore/internal/config"
	"mahjongcore/internal/engine"
	"mahjongcore/internal/mjlog"
	"mahjongcore/internal/monitor"
	"mahjongcore/internal/server"
)

func main() {
	var configPath string
	var flagPlayers int
	var flagHonors string

	root := &cobra.Command{
		Use:   "mahjongd",
		Short: "Mahjong session server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, flagPlayers, flagHonors)
		},
	}
	root.Flags().StringVar(&configPath, "config", "", "path to config.yaml")
	root.Flags().IntVar(&flagPlayers, "players", 0, "number of players (2-4); 0 prompts interactively")
	root.Flags().StringVar(&flagHonors, "honors", "", "include winds/dragons: y or n; empty prompts interactively")
	root.Flags().StringVar(&config.Conf.ListenAddr, "addr", config.Conf.ListenAddr, "TCP listen address")
	root.Flags().StringVar(&config.Conf.MetricAddr, "metrics-addr", config.Conf.MetricAddr, "debug statsviz endpoint address (blank disables)")

	if err := root.Execute(); err != nil {
		mjlog.Fatal("mahjongd exited with error", "err", err)
	}
}

func run(configPath string, flagPlayers int, flagHonors string) error {
	if err := config.Load(configPath); err != nil {
		return err
	}
	mjlog.Init("mahjongd", config.Conf.Log.Level)

	numPlayers := flagPlayers
	if numPlayers == 0 {
		numPlayers = config.Conf.Table.NumPlayers
	}
	includeHonors := config.Conf.Table.IncludeHonors
	honorsSet := flagHonors != ""
	if honorsSet {
		includeHonors = flagHonors == "y" || flagHonors == "yes"
	}

	scanner := bufio.NewScanner(os.Stdin)
	print := func(s string) { fmt.Print(s) }
	if numPlayers == 0 {
		numPlayers = promptNumPlayers(scanner, print)
	}
	if !honorsSet && config.Conf.Table.NumPlayers == 0 {
		includeHonors = promptIncludeHonors(scanner, print)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	session, err := engine.NewSession(numPlayers, includeHonors, rng)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go monitor.Report(ctx, 30*time.Second)
	if config.Conf.MetricAddr != "" {
		go func() {
			if err := monitor.ServeDebug(ctx, config.Conf.MetricAddr); err != nil {
				mjlog.Warn("debug metrics endpoint stopped", "err", err)
			}
		}()
	}

	srv := server.New(config.Conf.ListenAddr, numPlayers, includeHonors)
	mjlog.Info("session configured", "players", numPlayers, "include_honors", includeHonors, "addr", config.Conf.ListenAddr)

	err = srv.Run(ctx, session)
	if errors.Is(err, server.ErrSessionComplete) {
		mjlog.Info("game complete, server process exiting")
		return nil
	}
	return err
}
