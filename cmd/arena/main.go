// Command arena plays the engine against itself and summarises the
// results.
//
//	arena [flags] play <games> <output.csv>
//	arena analyze <output.csv>
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gobang/automatic"
	"github.com/domino14/gobang/config"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: arena [flags] play <games> <output.csv>")
	fmt.Fprintln(os.Stderr, "       arena analyze <output.csv>")
	os.Exit(2)
}

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(2)
	}
	cfg.AdjustRelativePaths(exPath)
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	args := cfg.Args()
	if len(args) < 2 {
		usage()
	}
	switch args[0] {
	case "play":
		if len(args) != 3 {
			usage()
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			log.Fatal().Str("games", args[1]).Msg("number of games must be a positive integer")
		}
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if err := automatic.StartCompVComp(ctx, cfg, n, cfg.GetInt(config.ConfigThreads), args[2]); err != nil {
			log.Fatal().Err(err).Msg("arena-failed")
		}
		summary, err := automatic.AnalyzeLogFile(args[2])
		if err != nil {
			log.Fatal().Err(err).Msg("could-not-analyze")
		}
		fmt.Print(summary)
	case "analyze":
		summary, err := automatic.AnalyzeLogFile(args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("could-not-analyze")
		}
		fmt.Print(summary)
	default:
		usage()
	}
}
