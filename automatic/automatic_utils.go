package automatic

// Computer vs computer games, written to a CSV file for later analysis.

import (
	"bufio"
	"context"
	"expvar"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/gobang/config"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

type Job struct{}

// StartCompVComp plays numGames games over threads workers and writes one
// CSV row per game to outputFilename. It returns when every game is done,
// or on the first error. Cancelling ctx stops queueing new games.
func StartCompVComp(ctx context.Context, cfg *config.Config, numGames int, threads int,
	outputFilename string) error {

	if IsPlaying.Value() > 0 {
		return ErrAlreadyPlaying
	}
	threads = max(1, threads)

	logfile, err := os.Create(outputFilename)
	if err != nil {
		return err
	}
	defer logfile.Close()
	log.Info().Int("games", numGames).Int("threads", threads).Str("output", outputFilename).
		Msg("starting-comp-v-comp")

	CVCCounter.Set(0)
	jobs := make(chan Job, 100)
	logChan := make(chan string, 100)
	writerDone := make(chan error, 1)

	go func() {
		w := bufio.NewWriter(logfile)
		w.WriteString(csvHeader)
		for msg := range logChan {
			w.WriteString(msg)
		}
		writerDone <- w.Flush()
		log.Debug().Msg("exiting-game-logger")
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 1; i <= numGames; i++ {
			select {
			case jobs <- Job{}:
			case <-gctx.Done():
				log.Info().Int("queued", i-1).Msg("stop-signal-no-more-games")
				return nil
			}
			if i%1000 == 0 {
				log.Info().Int("queued", i).Msg("queued-jobs")
			}
		}
		return nil
	})

	for i := 0; i < threads; i++ {
		g.Go(func() error {
			r, err := NewGameRunner(logChan, cfg)
			if err != nil {
				return err
			}
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for range jobs {
				if _, err := r.PlayGame(gctx); err != nil {
					if gctx.Err() != nil {
						return nil
					}
					return err
				}
				CVCCounter.Add(1)
			}
			return nil
		})
	}

	err = g.Wait()
	close(logChan)
	if werr := <-writerDone; err == nil {
		err = werr
	}
	log.Info().Int64("games", CVCCounter.Value()).Msg("comp-v-comp-finished")
	return err
}
