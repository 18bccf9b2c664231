package bot

import (
	"errors"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gobang/board"
	"github.com/domino14/gobang/game"
	"github.com/domino14/gobang/move"
)

const requestTimeout = 30 * time.Second

type Client struct {
	// NATS connection
	nc      *nats.Conn
	channel string
}

func NewClient(url, channel string) (*Client, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &Client{nc: nc, channel: channel}, nil
}

func (c *Client) Close() {
	c.nc.Close()
}

// MakeRequest encodes the game so far.
func MakeRequest(g *game.Game, maxDepth int) []byte {
	req := &BotRequest{
		BoardSize:   g.Board().Dim(),
		EngineFirst: g.FirstPlayer() == board.Self,
		MaxDepth:    maxDepth,
	}
	for _, m := range g.Moves() {
		req.Moves = append(req.Moves, m.Coords())
	}
	return req.Marshal()
}

// ParseResponse turns a bot reply into a move.
func ParseResponse(data []byte) (move.Move, *BotResponse, error) {
	resp := &BotResponse{}
	if err := resp.Unmarshal(data); err != nil {
		return move.None, nil, err
	}
	if resp.Error != "" {
		return move.None, resp, errors.New("Bot returned: " + resp.Error)
	}
	m, err := move.Parse(resp.Move)
	if err != nil {
		return move.None, resp, err
	}
	return m, resp, nil
}

// RequestMove sends a game to the bot and gets a move back for the side
// on turn.
func (c *Client) RequestMove(g *game.Game, maxDepth int) (move.Move, *BotResponse, error) {
	res, err := c.nc.Request(c.channel, MakeRequest(g, maxDepth), requestTimeout)
	if err != nil {
		if c.nc.LastError() != nil {
			log.Error().Msgf("%v for request", c.nc.LastError())
		}
		log.Error().Msgf("%v for request", err)
		return move.None, nil, err
	}
	log.Debug().Int("bytes", len(res.Data)).Msg("bot-response")
	return ParseResponse(res.Data)
}
