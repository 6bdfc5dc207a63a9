// Command automate renders AudioParam automation scripts offline.
//
// Usage:
//
//	automate [flags] script.yaml
//
// The YAML script declares parameters and their automation events. An
// optional JavaScript file can schedule further events through the
// AudioParam interface; each parameter is a global named after it.
//
// Examples:
//
//	automate fade.yaml
//	automate -step 0.01 -analyze fade.yaml
//	automate -js sweep.js -format wav -out sweep.wav -param frequency sweep.yaml
//
// AUTOMATE_SAMPLE_RATE, AUTOMATE_QUANTUM and AUTOMATE_LOG_LEVEL set the
// defaults of -rate, -quantum and the log level; a .env file is honored.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/dop251/goja"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-audioparam/dsp/core"
	"github.com/cwbudde/algo-audioparam/webaudio/bindings"
	"github.com/cwbudde/algo-audioparam/webaudio/param"
	"github.com/cwbudde/algo-audioparam/webaudio/script"
)

type options struct {
	rate    float64
	quantum int
	format  string
	out     string
	param   string
	js      string
	step    float64
	analyze bool
}

func main() {
	envLoaded := godotenv.Load() == nil

	env, err := loadEnvConfig(os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	var opts options
	flag.Float64Var(&opts.rate, "rate", env.sampleRate, "sample rate in Hz (0 uses the script's)")
	flag.IntVar(&opts.quantum, "quantum", env.quantum, "render quantum in frames (0 uses the script's)")
	flag.StringVar(&opts.format, "format", "table", "output format: table or wav")
	flag.StringVar(&opts.out, "out", "automation.wav", "output file for -format wav")
	flag.StringVar(&opts.param, "param", "", "parameter written by -format wav (default: first)")
	flag.StringVar(&opts.js, "js", "", "JavaScript file run against the parameters before rendering")
	flag.Float64Var(&opts.step, "step", 0.1, "time step in seconds between table rows")
	flag.BoolVar(&opts.analyze, "analyze", false, "print the zipper-noise ratio of each parameter")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: automate [flags] script.yaml\n\n")
		fmt.Fprintf(os.Stderr, "Renders AudioParam automation offline.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  automate fade.yaml\n")
		fmt.Fprintf(os.Stderr, "  automate -step 0.01 -analyze fade.yaml\n")
		fmt.Fprintf(os.Stderr, "  automate -js sweep.js -format wav -out sweep.wav sweep.yaml\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := newLogger(env.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	logger.Debug("configuration", zap.Bool("dotenv", envLoaded),
		zap.Float64("rate", opts.rate), zap.Int("quantum", opts.quantum))

	if err := run(flag.Arg(0), opts, logger); err != nil {
		logger.Debug("run failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, opts options, logger *zap.Logger) error {
	doc, err := script.Load(path)
	if err != nil {
		return err
	}
	if opts.rate > 0 {
		doc.SampleRate = opts.rate
	}
	if opts.quantum > 0 {
		doc.Quantum = opts.quantum
	}
	cfg := doc.Config()

	clock := &param.ManualClock{}
	params, err := doc.Build(clock, param.WithLogger(logger))
	if err != nil {
		return err
	}

	if opts.js != "" {
		if err := runJS(opts.js, params, logger); err != nil {
			return err
		}
	}

	r := script.NewRenderer(clock, core.WithSampleRate(cfg.SampleRate), core.WithBlockSize(cfg.BlockSize))
	tracks := r.Render(params, doc.Duration)
	logger.Info("rendered", zap.String("script", path), zap.Int("params", len(tracks)),
		zap.Int("frames", cfg.Frames(doc.Duration)), zap.Float64("sampleRate", cfg.SampleRate))

	switch opts.format {
	case "table":
		if err := writeTable(os.Stdout, tracks, cfg.SampleRate, opts.step); err != nil {
			return err
		}
	case "wav":
		tr, err := pickTrack(tracks, opts.param)
		if err != nil {
			return err
		}
		if err := writeWAV(opts.out, tr, cfg.SampleRate); err != nil {
			return err
		}
		logger.Info("wrote wav", zap.String("file", opts.out), zap.String("param", tr.Name))
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	if opts.analyze {
		return writeAnalysis(os.Stdout, tracks, cfg.SampleRate)
	}
	return nil
}

func runJS(path string, params []*param.Param, logger *zap.Logger) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	b := bindings.New(goja.New(), bindings.WithLogger(logger))
	for _, p := range params {
		if err := b.Define(p.Name(), p); err != nil {
			return fmt.Errorf("binding %q: %w", p.Name(), err)
		}
	}
	return b.Run(path, string(src))
}

func pickTrack(tracks []script.Track, name string) (script.Track, error) {
	if len(tracks) == 0 {
		return script.Track{}, errors.New("script declares no parameters")
	}
	if name == "" {
		return tracks[0], nil
	}
	for _, tr := range tracks {
		if tr.Name == name {
			return tr, nil
		}
	}
	return script.Track{}, fmt.Errorf("no parameter named %q", name)
}
