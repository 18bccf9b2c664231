package bot

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Messages are protobuf-encoded. The schema is:
//
//	message BotRequest {
//	  uint32 board_size = 1;
//	  repeated string moves = 2;  // display coordinates, e.g. "H8"
//	  bool engine_first = 3;
//	  uint32 max_depth = 4;       // 0 for the bot's default
//	}
//
//	message BotResponse {
//	  string move = 1;
//	  sint64 score = 2;
//	  uint32 depth = 3;
//	  uint64 nodes = 4;
//	  string error = 5;
//	}

var errWireType = errors.New("unexpected wire type")

type BotRequest struct {
	BoardSize   int
	Moves       []string
	EngineFirst bool
	MaxDepth    int
}

type BotResponse struct {
	Move  string
	Score int
	Depth int
	Nodes uint64
	Error string
}

func (r *BotRequest) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.BoardSize))
	for _, m := range r.Moves {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendString(b, m)
	}
	if r.EngineFirst {
		b = protowire.AppendTag(b, 3, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	if r.MaxDepth > 0 {
		b = protowire.AppendTag(b, 4, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(r.MaxDepth))
	}
	return b
}

func (r *BotRequest) Unmarshal(b []byte) error {
	*r = BotRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1, 3, 4:
			if typ != protowire.VarintType {
				return 0, fmt.Errorf("%w for field %d", errWireType, num)
			}
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			switch num {
			case 1:
				r.BoardSize = int(v)
			case 3:
				r.EngineFirst = protowire.DecodeBool(v)
			case 4:
				r.MaxDepth = int(v)
			}
			return n, nil
		case 2:
			if typ != protowire.BytesType {
				return 0, fmt.Errorf("%w for field %d", errWireType, num)
			}
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			r.Moves = append(r.Moves, s)
			return n, nil
		}
		return -1, nil
	})
}

func (r *BotResponse) Marshal() []byte {
	var b []byte
	if r.Error != "" {
		b = protowire.AppendTag(b, 5, protowire.BytesType)
		return protowire.AppendString(b, r.Error)
	}
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, r.Move)
	b = protowire.AppendTag(b, 2, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(r.Score)))
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.Depth))
	b = protowire.AppendTag(b, 4, protowire.VarintType)
	b = protowire.AppendVarint(b, r.Nodes)
	return b
}

func (r *BotResponse) Unmarshal(b []byte) error {
	*r = BotResponse{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1, 5:
			if typ != protowire.BytesType {
				return 0, fmt.Errorf("%w for field %d", errWireType, num)
			}
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			if num == 1 {
				r.Move = s
			} else {
				r.Error = s
			}
			return n, nil
		case 2, 3, 4:
			if typ != protowire.VarintType {
				return 0, fmt.Errorf("%w for field %d", errWireType, num)
			}
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return 0, protowire.ParseError(n)
			}
			switch num {
			case 2:
				r.Score = int(protowire.DecodeZigZag(v))
			case 3:
				r.Depth = int(v)
			case 4:
				r.Nodes = v
			}
			return n, nil
		}
		return -1, nil
	})
}

// consumeFields walks the fields in b. fn returns how many bytes of the
// value it consumed, or -1 to skip an unknown field.
func consumeFields(b []byte, fn func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		n, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if n < 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
		}
		b = b[n:]
	}
	return nil
}
