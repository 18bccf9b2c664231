package move

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestParse(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		in     string
		exp    Move
		expErr bool
	}
	cases := []testdata{
		{"H8", Move{7, 7}, false},
		{"a1", Move{0, 0}, false},
		{"O15", Move{14, 14}, false},
		{"7,7", Move{7, 7}, false},
		{"3 2", Move{3, 2}, false},
		{"(3, 7)", Move{3, 7}, false},
		{"A0", None, true},
		{"", None, true},
		{"foo", None, true},
		{"7;7", None, true},
	}
	for _, tc := range cases {
		m, err := Parse(tc.in)
		if tc.expErr {
			is.True(errors.Is(err, ErrMalformedMove))
			continue
		}
		is.NoErr(err)
		is.Equal(m, tc.exp)
	}
}

func TestString(t *testing.T) {
	is := is.New(t)
	is.Equal(New(3, 7).String(), "(3, 7)")
	is.Equal(New(7, 7).Coords(), "H8")
	is.Equal(None.String(), "(none)")
	is.Equal(None.Coords(), "-")
	is.True(None.IsNone())
	is.True(!New(0, 0).IsNone())
}
