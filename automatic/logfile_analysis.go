package automatic

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/aybabtme/uniplot/histogram"

	"github.com/domino14/gobang/stats"
)

const (
	histogramBins  = 10
	histogramWidth = 40
)

// AnalyzeLogFile reads an arena CSV file and summarises it: win counts,
// first-player advantage and game lengths.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return analyze(file)
}

func analyze(in io.Reader) (string, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = 7

	// Record looks like:
	// gameID,first,winner,length,opening,p1nodes,p2nodes
	lengths := &stats.Statistic{}
	var lengthSamples []float64
	p1wins, p2wins, draws := 0.0, 0.0, 0.0
	firstWins := 0.0
	gamesPlayed := 0
	var p1nodes, p2nodes uint64
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if record[0] == "gameID" {
			continue
		}
		first, winner := record[1], record[2]
		length, err := strconv.Atoi(record[3])
		if err != nil {
			return "", err
		}
		n1, err := strconv.ParseUint(record[5], 10, 64)
		if err != nil {
			return "", err
		}
		n2, err := strconv.ParseUint(record[6], 10, 64)
		if err != nil {
			return "", err
		}
		p1nodes += n1
		p2nodes += n2
		lengths.Push(float64(length))
		lengthSamples = append(lengthSamples, float64(length))
		switch winner {
		case Player1:
			p1wins++
		case Player2:
			p2wins++
		default:
			draws++
		}
		if winner == first {
			firstWins++
		} else if winner == DrawTag {
			firstWins += 0.5
		}
		gamesPlayed++
	}
	if gamesPlayed == 0 {
		return "Games played: 0\n", nil
	}

	n := float64(gamesPlayed)
	rate, halfWidth := stats.WinRateInterval(p1wins, draws, gamesPlayed, 95)
	var out bytes.Buffer
	fmt.Fprintf(&out, "Games played: %d\n", gamesPlayed)
	fmt.Fprintf(&out, "%s wins: %.1f (%.3f%%)\n", Player1, p1wins, 100.0*p1wins/n)
	fmt.Fprintf(&out, "%s wins: %.1f (%.3f%%)\n", Player2, p2wins, 100.0*p2wins/n)
	fmt.Fprintf(&out, "Draws: %.1f (%.3f%%)\n", draws, 100.0*draws/n)
	fmt.Fprintf(&out, "%s score: %.3f%% ± %.3f%% (95%% confidence)\n", Player1, 100*rate, 100*halfWidth)
	fmt.Fprintf(&out, "Player who went first wins: %.1f (%.3f%%)\n", firstWins, 100.0*firstWins/n)
	fmt.Fprintf(&out, "Game length: mean %.3f  stdev %.3f  min %.0f  max %.0f\n",
		lengths.Mean(), lengths.Stdev(), lengths.Min(), lengths.Max())
	fmt.Fprintf(&out, "Nodes searched: %s %d  %s %d\n", Player1, p1nodes, Player2, p2nodes)
	out.WriteString("\nGame lengths:\n")
	hist := histogram.Hist(histogramBins, lengthSamples)
	if err := histogram.Fprint(&out, hist, histogram.Linear(histogramWidth)); err != nil {
		return "", err
	}
	return out.String(), nil
}
