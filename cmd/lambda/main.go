package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gobang/bot"
	"github.com/domino14/gobang/config"
)

const replyAttempts = 5

var b *bot.Bot
var nc *nats.Conn

func HandleRequest(ctx context.Context, evt bot.LambdaEvent) (string, error) {
	logger := log.With().
		Str("gameID", evt.GameID).
		Logger()

	resp := b.Move(ctx, evt.Request())
	if resp.Error != "" {
		logger.Error().Str("error", resp.Error).Msg("bot-move-failed")
	}
	data := resp.Marshal()

	if evt.ReplyChannel != "" && nc != nil {
		logger.Info().Msg("sending-via-nats")
		err := retry.Do(
			func() error {
				// Only the acknowledgement matters.
				_, err := nc.Request(evt.ReplyChannel, data, 3*time.Second)
				return err
			},
			retry.Context(ctx),
			retry.Attempts(replyAttempts),
			retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
				logger.Err(err).Uint("n", n).
					Msg("did-not-receive-ack-try-again")
				return retry.BackOffDelay(n, err, config)
			}),
		)
		if err != nil {
			logger.Err(err).Msg("reply-failed")
		}
	}
	logger.Info().Msg("exiting-fn")
	if resp.Error != "" {
		return "", errors.New(resp.Error)
	}
	return resp.Move, nil
}

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("bad-config")
	}
	cfg.AdjustRelativePaths(exPath)
	log.Info().Msgf("Loaded config: %v", cfg.SanitizedSettings())
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	b, err = bot.NewBot(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("could-not-create-bot")
	}
	nc, err = nats.Connect(cfg.GetString(config.ConfigNatsURL))
	if err != nil {
		log.Fatal().AnErr("natsConnectErr", err).Msg(":(")
	}
	defer nc.Close()

	lambda.Start(HandleRequest)
}
