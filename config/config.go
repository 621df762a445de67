package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"othello/game"
	"othello/meta"
)

const (
	ConfigMode          = "mode"
	ConfigMaxDepth      = "max-depth"
	ConfigOpponentDepth = "opponent-depth"
	ConfigEvaluator     = "evaluator"
	ConfigGames         = "games"
	ConfigParallel      = "parallel"
	ConfigPositions     = "positions"
	ConfigDepths        = "depths"
	ConfigSeed          = "seed"
	ConfigOutputDir     = "output-dir"
	ConfigAddr          = "addr"
	ConfigRemote        = "remote"
	ConfigTimeout       = "timeout"
	ConfigLogLevel      = "log-level"
	ConfigConfigFile    = "config"
)

const EnvPrefix = "OTHELLO"

var Modes = []string{"play", "experiment", "pruning", "serve"}

// Config is backed by viper. Precedence: flags, then OTHELLO_* environment
// variables, then the optional YAML config file, then defaults.
type Config struct {
	*viper.Viper
}

func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigMode, "play")
	c.SetDefault(ConfigMaxDepth, meta.DEFAULT_MAX_DEPTH)
	c.SetDefault(ConfigOpponentDepth, -1) // Random opponent
	c.SetDefault(ConfigEvaluator, "weighted-parity")
	c.SetDefault(ConfigGames, 10)
	c.SetDefault(ConfigParallel, meta.PARALLEL_GAMES)
	c.SetDefault(ConfigPositions, 50)
	c.SetDefault(ConfigDepths, []int{1, 2, 3, 4})
	c.SetDefault(ConfigSeed, 1)
	c.SetDefault(ConfigOutputDir, "results")
	c.SetDefault(ConfigAddr, ":8080")
	c.SetDefault(ConfigRemote, "")
	c.SetDefault(ConfigTimeout, 30*time.Second)
	c.SetDefault(ConfigLogLevel, "info")
}

// Load parses args (without the program name) and merges every configuration source.
func (c *Config) Load(args []string) error {
	if c.Viper == nil {
		c.Viper = viper.New()
		c.setDefaults()
	}

	fs := pflag.NewFlagSet("othello", pflag.ContinueOnError)
	fs.String(ConfigMode, c.GetString(ConfigMode), "one of play, experiment, pruning, serve")
	fs.Int(ConfigMaxDepth, c.GetInt(ConfigMaxDepth), "search depth of the minimax agent")
	fs.Int(ConfigOpponentDepth, c.GetInt(ConfigOpponentDepth), "search depth of the opponent, negative for a random opponent")
	fs.String(ConfigEvaluator, c.GetString(ConfigEvaluator), "board evaluator: weighted-parity or disc-parity")
	fs.Int(ConfigGames, c.GetInt(ConfigGames), "games per match up")
	fs.Int(ConfigParallel, c.GetInt(ConfigParallel), "games played at once")
	fs.Int(ConfigPositions, c.GetInt(ConfigPositions), "positions searched by the pruning experiment")
	fs.IntSlice(ConfigDepths, c.GetIntSlice(ConfigDepths), "depths compared by the experiments")
	fs.Uint64(ConfigSeed, c.GetUint64(ConfigSeed), "random seed")
	fs.String(ConfigOutputDir, c.GetString(ConfigOutputDir), "directory for experiment results")
	fs.String(ConfigAddr, c.GetString(ConfigAddr), "listen address of the agent server")
	fs.String(ConfigRemote, c.GetString(ConfigRemote), "URL of an agent server playing white in play mode")
	fs.Duration(ConfigTimeout, c.GetDuration(ConfigTimeout), "timeout of a remote move request")
	fs.String(ConfigLogLevel, c.GetString(ConfigLogLevel), "debug, info, warn, error or disabled")
	fs.String(ConfigConfigFile, "", "optional YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix(EnvPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if path := c.GetString(ConfigConfigFile); path != "" {
		c.SetConfigFile(path)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return c.Validate()
}

func (c *Config) Validate() error {
	var errs []error
	mode := c.GetString(ConfigMode)
	if !lo.Contains(Modes, mode) {
		errs = append(errs, fmt.Errorf("unknown mode %q", mode))
	}
	if c.GetInt(ConfigMaxDepth) < 0 {
		errs = append(errs, fmt.Errorf("max depth must not be negative, got %d", c.GetInt(ConfigMaxDepth)))
	}
	if _, ok := game.Evaluator(c.GetString(ConfigEvaluator)); !ok {
		errs = append(errs, fmt.Errorf("unknown evaluator %q", c.GetString(ConfigEvaluator)))
	}
	if depths, err := c.Depths(); err != nil {
		errs = append(errs, err)
	} else if len(depths) == 0 {
		errs = append(errs, errors.New("depths must not be empty"))
	} else if lo.SomeBy(depths, func(d int) bool { return d < 0 }) {
		errs = append(errs, fmt.Errorf("depths must not be negative, got %v", depths))
	}
	if c.GetInt(ConfigGames) <= 0 {
		errs = append(errs, fmt.Errorf("games must be positive, got %d", c.GetInt(ConfigGames)))
	}
	if _, err := zerolog.ParseLevel(c.GetString(ConfigLogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level: %w", err))
	}
	return errors.Join(errs...)
}

// Depths reads the depth list. Flags and config files yield a list, environment
// variables a comma-separated string such as "2,5".
func (c *Config) Depths() ([]int, error) {
	raw := c.Get(ConfigDepths)
	if s, ok := raw.(string); ok {
		raw = strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '[' || r == ']' })
	}
	depths, err := cast.ToIntSliceE(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid depths %v: %w", c.Get(ConfigDepths), err)
	}
	return depths, nil
}

// LogLevel falls back to info when the configured level cannot be parsed.
func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.GetString(ConfigLogLevel))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// ConfigureLogging installs a console logger at the configured level.
func (c *Config) ConfigureLogging() {
	level := c.LogLevel()
	zerolog.SetGlobalLevel(level)
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// SanitizedSettings returns every setting for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
