package stats

import (
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		lengths  []int
		mean     float64
		stdev    float64
		min, max float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638, 10, 23},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891, 10, 124},
		{[]int{1}, 1, 0, 1, 1},
		{[]int{}, 0, 0, 0, 0},
		{[]int{1, 1}, 1, 0, 1, 1},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, l := range c.lengths {
			s.Push(float64(l))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.Equal(s.Min(), c.min)
		is.Equal(s.Max(), c.max)
		is.Equal(s.Iterations(), len(c.lengths))
	}
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(95)*1000, 1959.963984540054))
	is.True(FuzzyEqual(ZVal(0), 0))
}

func TestWinRateInterval(t *testing.T) {
	is := is.New(t)
	p, hw := WinRateInterval(50, 0, 100, 95)
	is.True(FuzzyEqual(p, 0.5))
	is.True(FuzzyEqual(hw*1000, 97.9981992270027))

	p, _ = WinRateInterval(30, 20, 100, 95)
	is.True(FuzzyEqual(p, 0.4))

	p, hw = WinRateInterval(0, 0, 0, 95)
	is.Equal(p, 0.0)
	is.Equal(hw, 0.0)
}
