// Package config assembles the command line configuration from flags, an
// optional config file and DTREE_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wlattner/dtree/internal/logging"
)

// Config holds every setting of the dtree command.
type Config struct {
	Method        string         `mapstructure:"method"         validate:"oneof=tree bag forest"`
	Train         string         `mapstructure:"train"          validate:"required"`
	Test          string         `mapstructure:"test"           validate:"required"`
	Format        string         `mapstructure:"format"         validate:"oneof=ws csv"`
	Trees         int            `mapstructure:"trees"          validate:"min=1"`
	FeatureRatio  float64        `mapstructure:"feature_ratio"  validate:"gt=0"`
	LegacyClamp   bool           `mapstructure:"legacy_clamp"`
	Workers       int            `mapstructure:"workers"        validate:"min=1"`
	Seed          int64          `mapstructure:"seed"`
	OOB           bool           `mapstructure:"oob"`
	Full          bool           `mapstructure:"full"`
	Predictions   string         `mapstructure:"predictions"`
	VarImportance string         `mapstructure:"var_importance"`
	Profile       bool           `mapstructure:"profile"`
	MetricsFile   string         `mapstructure:"metrics_file"`
	Log           logging.Config `mapstructure:"log"`
}

// Flags declares the command line flags.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("dtree", pflag.ContinueOnError)

	// model/prediction files
	fs.StringP("train", "d", "", "training data")
	fs.StringP("test", "t", "", "test data")
	fs.String("format", "ws", "input format, ws (whitespace separated) or csv")
	fs.StringP("predictions", "p", "", "file to output test set predictions")
	fs.String("var-importance", "", "file to output variable importance estimates")
	// model params
	fs.StringP("method", "m", "forest", "model to fit, tree, bag or forest")
	fs.Int("trees", 15, "number of trees")
	fs.Float64("feature-ratio", 0.2, "fraction of attributes considered at each random forest split")
	fs.Bool("legacy-clamp", false, "raise the random forest feature ratio to at least 1")
	fs.Int64("seed", 0, "random seed, 0 seeds from the clock")
	fs.Bool("oob", false, "estimate accuracy from out of bag examples")
	// output
	fs.BoolP("full", "f", false, "report every test measure instead of the confusion counts")
	fs.String("metrics-file", "", "file to write prometheus metrics to")
	fs.String("log-level", "info", "log level, debug, info, warn or error")
	fs.String("log-format", "text", "log format, text or json")
	fs.String("log-file", "", "file to write logs to, rotated by size")
	// runtime params
	fs.Int("workers", 1, "number of workers for fitting trees")
	fs.Bool("profile", false, "cpu profile")
	fs.StringP("config", "c", "", "config file")

	return fs
}

// key maps a flag name to its configuration key, log-level to log.level and
// feature-ratio to feature_ratio.
func key(flag string) string {
	if rest, ok := strings.CutPrefix(flag, "log-"); ok {
		return "log." + strings.ReplaceAll(rest, "-", "_")
	}
	return strings.ReplaceAll(flag, "-", "_")
}

// Load resolves the configuration from parsed flags. Explicit flags win over
// environment variables, which win over the config file and flag defaults.
// Two positional arguments are taken as the training and test files.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(key(f.Name), f)
	})
	if bindErr != nil {
		return nil, fmt.Errorf("bind flags error: %w", bindErr)
	}

	v.SetEnvPrefix("DTREE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config error: %w", err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unmarshal config error: %w", err)
	}

	if c.Train == "" && c.Test == "" && fs.NArg() == 2 {
		c.Train, c.Test = fs.Arg(0), fs.Arg(1)
	}

	if err := validator.New().Struct(c); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return c, nil
}
