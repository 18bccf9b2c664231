package negamax

import (
	"gopkg.in/yaml.v3"
)

// PlayLog is one root move and its score at some depth.
type PlayLog struct {
	Move  string `yaml:"move"`
	Score int    `yaml:"score"`
}

// DepthLog is written to the log stream after each completed depth. The
// stream is a YAML sequence of these.
type DepthLog struct {
	Depth int       `yaml:"depth"`
	Plays []PlayLog `yaml:"plays"`
	Best  string    `yaml:"best"`
	Score int       `yaml:"score"`
	Nodes uint64    `yaml:"nodes"`
}

func (s *Solver) writeDepthLog(dl DepthLog) error {
	out, err := yaml.Marshal([]DepthLog{dl})
	if err != nil {
		return err
	}
	_, err = s.logStream.Write(out)
	return err
}
