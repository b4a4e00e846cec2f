package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/menta2k/websafespec"
	"github.com/menta2k/websafespec/internal/config"
	"github.com/menta2k/websafespec/internal/utils"
	"github.com/menta2k/websafespec/pkg/catalog"
	"github.com/menta2k/websafespec/pkg/guide"
	"github.com/menta2k/websafespec/pkg/types"
)

// exit codes
const (
	exitOK = iota
	exitError
	exitInvalidInput
)

func main() {
	app := kingpin.New("websafespec", "Resize photos to platform image specifications")
	app.HelpFlag.Short('h')
	app.Version(websafespec.GetVersion())

	var (
		configPath = app.Flag("config", "Configuration file").Short('c').Envar("WEBSAFESPEC_CONFIG").String()
		verbose    = app.Flag("verbose", "Verbose messages").Short('v').Envar("DEBUG").Bool()
		logJSON    = app.Flag("log-json", "Log in JSON format").Envar("JSON_LOG").Bool()
	)

	specs := app.Command("specs", "List target specs").Default()

	check := app.Command("check", "Compare an image with a target spec")
	var (
		checkImage = check.Arg("image", "Source image").Required().String()
		checkSpec  = check.Flag("spec", "Target spec ID").Short('s').String()
	)

	plan := app.Command("plan", "Show where the image is drawn on the target canvas")
	var (
		planImage  = plan.Arg("image", "Source image").Required().String()
		planSpec   = plan.Flag("spec", "Target spec ID").Short('s').String()
		planPolicy = plan.Flag("policy", policyHelp()).Short('p').Default(string(types.PolicyContain)).String()
	)

	export := app.Command("export", "Resize an image to a target spec and write it")
	var (
		exportImage   = export.Arg("image", "Source image").Required().String()
		exportSpec    = export.Flag("spec", "Target spec ID").Short('s').String()
		exportPolicy  = export.Flag("policy", policyHelp()).Short('p').Required().String()
		exportOut     = export.Flag("output", "Output directory").Short('o').String()
		exportFormat  = export.Flag("format", "Output format: jpg|png|webp").String()
		exportQuality = export.Flag("quality", "JPEG/WebP quality (1-100)").Int()
		exportPrefix  = export.Flag("prefix", "File name prefix").String()
	)

	configCmd := app.Command("config", "Configuration helpers")
	configInit := configCmd.Command("init", "Write the default configuration")
	configInitPath := configInit.Arg("path", "Destination").String()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	initLog(*verbose, *logJSON)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if command == configInit.FullCommand() {
		if err := doConfigInit(*configInitPath); err != nil {
			fail(err)
		}
		os.Exit(exitOK)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fail(err)
	}

	switch command {
	case specs.FullCommand():
		err = withFitter(cfg, doSpecs)
	case check.FullCommand():
		err = withFitter(cfg, func(f *websafespec.Fitter) error {
			return doCheck(f, *checkImage, *checkSpec)
		})
	case plan.FullCommand():
		err = withPolicy(*planPolicy, func(p types.Policy) error {
			return withFitter(cfg, func(f *websafespec.Fitter) error {
				return doPlan(f, *planImage, *planSpec, p)
			})
		})
	case export.FullCommand():
		if *exportFormat != "" {
			cfg.Output.Format = *exportFormat
		}
		if *exportQuality != 0 {
			cfg.Output.Quality = *exportQuality
		}
		if *exportPrefix != "" {
			cfg.Output.Prefix = *exportPrefix
		}
		if *exportOut != "" {
			cfg.Output.Dir = *exportOut
		}
		err = withPolicy(*exportPolicy, func(p types.Policy) error {
			return withFitter(cfg, func(f *websafespec.Fitter) error {
				return doExport(ctx, f, *exportImage, *exportSpec, p, cfg.Output.Dir)
			})
		})
	default:
		err = fmt.Errorf("unknown command: %q", command)
	}

	if err != nil {
		fail(err)
	}
	os.Exit(exitOK)
}

func policyNames() []string {
	var names []string
	for _, p := range types.Policies() {
		names = append(names, string(p))
	}
	return names
}

func policyHelp() string {
	return "Fit policy: " + strings.Join(policyNames(), "|")
}

// withPolicy parses a policy name, case-insensitively, and passes it to fn
func withPolicy(name string, fn func(types.Policy) error) error {
	p, err := types.ParsePolicy(name)
	if err != nil {
		return err
	}
	return fn(p)
}

// initLog installs the default slog logger on stderr.
func initLog(verbose, jsonHandler bool) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if jsonHandler {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}

// loadConfig reads the configuration file, if any, and applies environment
// overrides. Without an explicit path the default location is used when it
// exists.
func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path == "" && utils.FileExists(config.GetConfigPath()) {
		path = config.GetConfigPath()
	}
	if path != "" {
		var err error
		if cfg, err = config.LoadFromFile(path); err != nil {
			return nil, err
		}
		slog.Debug("loaded configuration", "path", path)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func withFitter(cfg *config.Config, fn func(*websafespec.Fitter) error) error {
	opts := websafespec.Options{
		SupportedFormats: cfg.Input.SupportedFormats,
		Filter:           cfg.Render.Filter,
		Background:       cfg.BackgroundColor(),
		Format:           cfg.Output.Format,
		Quality:          cfg.Output.Quality,
		Lossless:         cfg.Output.Lossless,
		Prefix:           cfg.Output.Prefix,
	}
	if cfg.Catalog.Path != "" {
		cat, err := catalog.LoadFromFile(cfg.Catalog.Path)
		if err != nil {
			return err
		}
		opts.Catalog = cat
	}
	f, err := websafespec.NewWithOptions(opts)
	if err != nil {
		return err
	}
	return fn(f)
}

func fail(err error) {
	code := exitError
	if msg := guide.MissingInputMessage(err); msg != "" {
		printPrompt(msg)
		code = exitInvalidInput
	}
	if errors.Is(err, types.ErrUnknownPolicy) || errors.Is(err, types.ErrInvalidSpec) {
		code = exitInvalidInput
	}
	slog.Error(err.Error())
	os.Exit(code)
}
