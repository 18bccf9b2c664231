package turnplayer

import (
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gobang/board"
	"github.com/domino14/gobang/config"
)

type GameOptions struct {
	BoardSize   int
	EngineFirst bool
}

func (opts *GameOptions) SetDefaults(cfg *config.Config) {
	if opts.BoardSize == 0 {
		opts.BoardSize = cfg.GetInt(config.ConfigBoardSize)
		log.Debug().Msgf("using default board size %v", opts.BoardSize)
	}
	if !opts.EngineFirst {
		opts.EngineFirst = cfg.GetBool(config.ConfigEngineFirst)
	}
}

func (opts *GameOptions) SetBoardSize(fields []string) error {
	if len(fields) != 1 {
		return errors.New("valid format is 'size N'")
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return err
	}
	if n < 5 || n > board.MaxDim {
		return errors.New("board size must be between 5 and 25")
	}
	opts.BoardSize = n
	return nil
}

// SetFirst accepts "ai"/"engine" or "human".
func (opts *GameOptions) SetFirst(who string) error {
	switch strings.ToLower(who) {
	case "ai", "engine", "self":
		opts.EngineFirst = true
	case "human", "opponent", "me":
		opts.EngineFirst = false
	default:
		return errors.New("first player must be ai or human")
	}
	return nil
}

func (opts *GameOptions) FirstPlayer() board.Cell {
	if opts.EngineFirst {
		return board.Self
	}
	return board.Opponent
}
