package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigBoardSize         = "board-size"
	ConfigMaxDepth          = "max-depth"
	ConfigCandidateLimit    = "candidate-limit"
	ConfigDeepeningPolicy   = "deepening-policy"
	ConfigQuickWinExit      = "quick-win-exit"
	ConfigEvalCacheFraction = "eval-cache-fraction"
	ConfigPatternFile       = "pattern-file"
	ConfigEngineFirst       = "engine-first"
	ConfigDBPath            = "db-path"
	ConfigLogDir            = "log-dir"
	ConfigSearchLog         = "search-log"
	ConfigThreads           = "threads"
	ConfigDebug             = "debug"
	ConfigCPUProfile        = "cpu-profile"
	ConfigMemProfile        = "mem-profile"
	ConfigNatsURL           = "nats-url"
	ConfigBotChannel        = "bot-channel"
	ConfigFile              = "config"
)

// Config holds every setting. Values come, in increasing priority, from
// defaults, an optional config file, GOBANG_* environment variables and
// command-line flags.
type Config struct {
	*viper.Viper
	args []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigBoardSize, 15)
	v.SetDefault(ConfigMaxDepth, 4)
	v.SetDefault(ConfigCandidateLimit, 10)
	v.SetDefault(ConfigDeepeningPolicy, "deepest")
	v.SetDefault(ConfigQuickWinExit, true)
	v.SetDefault(ConfigEvalCacheFraction, 0.005)
	v.SetDefault(ConfigPatternFile, "")
	v.SetDefault(ConfigEngineFirst, false)
	v.SetDefault(ConfigDBPath, "./data/games.db")
	v.SetDefault(ConfigLogDir, "./data/logs")
	v.SetDefault(ConfigSearchLog, "")
	v.SetDefault(ConfigThreads, max(1, runtime.NumCPU()-1))
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigCPUProfile, "")
	v.SetDefault(ConfigMemProfile, "")
	v.SetDefault(ConfigNatsURL, "nats://localhost:4222")
	v.SetDefault(ConfigBotChannel, "gobang.bot")
}

// DefaultConfig returns a config with only the defaults set. Tests use it.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{Viper: v}
}

// Load reads the environment, the optional config file and the given
// command-line arguments.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	setDefaults(c.Viper)
	c.SetEnvPrefix("GOBANG")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	fs := pflag.NewFlagSet("gobang", pflag.ContinueOnError)
	fs.Int(ConfigBoardSize, 15, "board dimension (8 and 15 are the usual ones)")
	fs.Int(ConfigMaxDepth, 4, "maximum search depth in plies")
	fs.Int(ConfigCandidateLimit, 10, "moves considered per node; 0 for all")
	fs.String(ConfigDeepeningPolicy, "deepest", "deepest or accumulate")
	fs.Bool(ConfigQuickWinExit, true, "play an immediate five without searching")
	fs.Float64(ConfigEvalCacheFraction, 0.005, "fraction of system memory for the evaluation cache; 0 disables it")
	fs.String(ConfigPatternFile, "", "YAML pattern table; empty for the built-in one")
	fs.Bool(ConfigEngineFirst, false, "the engine moves first in a new game")
	fs.String(ConfigDBPath, "./data/games.db", "sqlite file for archived games")
	fs.String(ConfigLogDir, "./data/logs", "directory for saved move logs")
	fs.String(ConfigSearchLog, "", "file to write a YAML search log to")
	fs.Int(ConfigThreads, max(1, runtime.NumCPU()-1), "arena worker count")
	fs.Bool(ConfigDebug, false, "debug logging")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigMemProfile, "", "write a memory profile to this file")
	fs.String(ConfigNatsURL, "nats://localhost:4222", "NATS server for the bot service")
	fs.String(ConfigBotChannel, "gobang.bot", "NATS subject the bot answers move requests on")
	fs.String(ConfigFile, "", "optional config file (yaml, toml or json)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.args = fs.Args()

	if path := c.GetString(ConfigFile); path != "" {
		c.SetConfigFile(path)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return c.Validate()
}

// Args returns the positional arguments left after flag parsing.
func (c *Config) Args() []string {
	return c.args
}

func (c *Config) Validate() error {
	if n := c.GetInt(ConfigBoardSize); n < 5 || n > 25 {
		return fmt.Errorf("%s must be between 5 and 25, got %d", ConfigBoardSize, n)
	}
	if d := c.GetInt(ConfigMaxDepth); d < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", ConfigMaxDepth, d)
	}
	if f := c.GetFloat64(ConfigEvalCacheFraction); f < 0 || f > 0.5 {
		return fmt.Errorf("%s must be between 0 and 0.5, got %v", ConfigEvalCacheFraction, f)
	}
	return nil
}

// AdjustRelativePaths makes relative data paths relative to basepath.
func (c *Config) AdjustRelativePaths(basepath string) {
	basepath = FindBasePath(basepath)
	for _, key := range []string{ConfigDBPath, ConfigLogDir, ConfigPatternFile} {
		p := c.GetString(key)
		if p != "" && !filepath.IsAbs(p) {
			c.Set(key, filepath.Join(basepath, p))
		}
	}
}

// FindBasePath walks up from path looking for a data directory, and
// returns path unchanged if it finds none.
func FindBasePath(path string) string {
	dir := path
	for {
		if fi, err := os.Stat(filepath.Join(dir, "data")); err == nil && fi.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return path
		}
		dir = parent
	}
}

// SanitizedSettings returns every setting for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}

// Write saves the current settings to the config file in use, or to
// gobang.yaml in the working directory if there is none.
func (c *Config) Write() error {
	if c.ConfigFileUsed() != "" {
		return c.WriteConfig()
	}
	return c.WriteConfigAs("gobang.yaml")
}
