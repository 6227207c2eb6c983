package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/pkg/profile"
	"github.com/spf13/pflag"
	"github.com/xh3b4sd/tracer"

	"github.com/wlattner/dtree/data"
	"github.com/wlattner/dtree/internal/config"
	"github.com/wlattner/dtree/internal/logging"
	"github.com/wlattner/dtree/internal/metrics"
)

func main() {
	fs := config.Flags()
	err := fs.Parse(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fatal("invalid arguments", err.Error())
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Usage of dtree:\n\n")
		fs.PrintDefaults()
		fatal(err.Error())
	}

	logger := logging.New(cfg.Log)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("dtree failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	if cfg.Workers > 1 {
		runtime.GOMAXPROCS(runtime.NumCPU())
	}

	if cfg.Profile {
		defer profile.Start(profile.CPUProfile, profile.Quiet).Stop()
	}

	var m *metrics.Metrics
	if cfg.MetricsFile != "" {
		m = metrics.New()
	}

	train, trainNames, err := loadDataset(cfg.Train, cfg.Format)
	if err != nil {
		return tracer.Mask(err)
	}
	test, _, err := loadDataset(cfg.Test, cfg.Format, data.SkipSelection())
	if err != nil {
		return tracer.Mask(err)
	}
	if test.NumAttributes() != train.NumAttributes() {
		return fmt.Errorf("%s: %w: %d attributes, training data has %d",
			cfg.Test, data.ErrAttributeCount, test.NumAttributes(), train.NumAttributes())
	}
	logger.Info("loaded data", "train", train.Len(), "test", test.Len(), "attributes", train.NumAttributes())

	model := newModel(cfg, logger, m)
	{
		done := logging.Duration(logger, "fit "+cfg.Method)
		if err := model.Fit(train, trainNames); err != nil {
			return tracer.Mask(err)
		}
		done()
	}

	{
		done := logging.Duration(logger, "test")
		model.Test(test)
		done()
	}

	if err := model.Report(os.Stdout); err != nil {
		return tracer.Mask(err)
	}

	if cfg.Predictions != "" {
		if err := writeFile(cfg.Predictions, func(w io.Writer) error {
			return writePred(w, model.Predict(test.Records()))
		}); err != nil {
			return tracer.Mask(err)
		}
	}

	if cfg.VarImportance != "" {
		if err := writeFile(cfg.VarImportance, model.SaveVarImp); err != nil {
			return tracer.Mask(err)
		}
	}

	if m != nil {
		if err := m.WriteToTextfile(cfg.MetricsFile); err != nil {
			return tracer.Mask(err)
		}
	}

	return nil
}

func loadDataset(path, format string, options ...data.Option) (*data.Dataset, []string, error) {
	p, err := loadInput(path, format)
	if err != nil {
		return nil, nil, tracer.Mask(err)
	}

	d, err := data.New(p.Records, options...)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	return d, p.VarNames, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	o, err := os.Create(path)
	if err != nil {
		return tracer.Mask(err)
	}
	defer o.Close()

	if err := write(o); err != nil {
		return tracer.Mask(err)
	}

	return o.Close()
}

func fatal(a ...interface{}) {
	fmt.Fprintln(os.Stderr, a...)
	os.Exit(1)
}

func writePred(w io.Writer, prediction []string) error {
	wtr := bufio.NewWriter(w)

	for _, pred := range prediction {
		_, err := wtr.WriteString(pred)
		if err != nil {
			return err
		}

		err = wtr.WriteByte('\n')
		if err != nil {
			return err
		}
	}

	return wtr.Flush()
}
