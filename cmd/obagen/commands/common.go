package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/obagen/internal/config"
	ferrors "git.home.luguber.info/inful/obagen/internal/foundation/errors"
	"git.home.luguber.info/inful/obagen/internal/logfields"
	"git.home.luguber.info/inful/obagen/internal/metrics"
	"git.home.luguber.info/inful/obagen/internal/workspace"
)

// Global carries state shared by all subcommands.
type Global struct {
	Logger *slog.Logger
	RunID  string
	// Out receives user-facing reports. Defaults to stdout.
	Out io.Writer
	// Err receives log output. Defaults to stderr.
	Err io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path" default:"obagen.yaml"`
	Root        string           `help:"Directory to start workspace detection from" default:"." placeholder:"DIR"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	LogFormat   string           `name:"log-format" help:"Log output format (text or json)" placeholder:"FORMAT"`
	MetricsFile string           `name:"metrics-file" help:"Write run metrics in Prometheus text format to this file" placeholder:"PATH"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	GenerateDocExamples GenerateDocExamplesCmd `cmd:"" name:"generate-doc-examples" help:"Splice example programs into guide templates"`
	InlineModules       InlineModulesCmd       `cmd:"" name:"inline-modules" help:"Convert module sources into C string constants"`
	Check               CheckCmd               `cmd:"" help:"Report examples and placeholders that do not line up"`
	Init                InitCmd                `cmd:"" help:"Write a default configuration file"`
}

// AfterApply runs after flag parsing; sets up logging once so config
// loading can already log. prepare refines it with the loaded settings.
func (c *CLI) AfterApply(g *Global) error {
	if g.RunID == "" {
		g.RunID = uuid.NewString()
	}
	if g.Out == nil {
		g.Out = os.Stdout
	}
	if g.Err == nil {
		g.Err = os.Stderr
	}
	level := config.LogLevelInfo
	if c.Verbose {
		level = config.LogLevelDebug
	}
	g.setLogger(level, config.NormalizeLogFormat(c.LogFormat))
	return nil
}

func (g *Global) setLogger(level config.LogLevel, format config.LogFormat) {
	opts := &slog.HandlerOptions{Level: level.SlogLevel()}
	var h slog.Handler
	if format == config.LogFormatJSON {
		h = slog.NewJSONHandler(g.Err, opts)
	} else {
		h = slog.NewTextHandler(g.Err, opts)
	}
	g.Logger = slog.New(h).With(logfields.RunID(g.RunID))
	slog.SetDefault(g.Logger)
}

// run is the resolved environment of one command invocation.
type run struct {
	cfg      *config.Config
	ws       *workspace.Workspace
	recorder *metrics.PrometheusRecorder
}

// prepare loads configuration, applies flag overrides on top and detects
// the workspace. The default configuration file is optional; an explicitly
// named one must exist.
func (c *CLI) prepare(g *Global, o config.Overrides) (*run, error) {
	cfg, err := config.Load(c.Config, c.Config == config.DefaultFile)
	if err != nil {
		return nil, err
	}

	o.MetricsFile = c.MetricsFile
	o.LogFormat = config.LogFormat(c.LogFormat)
	if c.Verbose {
		o.LogLevel = config.LogLevelDebug
	}
	if err := cfg.Apply(o); err != nil {
		return nil, err
	}
	g.setLogger(cfg.Logging.Level, cfg.Logging.Format)

	ws, err := workspace.Detect(c.Root)
	if err != nil {
		return nil, ferrors.FileSystemError("failed to detect workspace").WithCause(err).
			WithContext("file", c.Root).
			Build()
	}
	slog.Debug("Resolved workspace",
		logfields.File(ws.Root),
		slog.Bool("git", ws.InRepo),
		slog.String("commit", ws.ShortCommit()))

	return &run{cfg: cfg, ws: ws, recorder: metrics.NewPrometheusRecorder(nil)}, nil
}

// finish writes the metrics textfile when one is configured. A failure to
// write metrics never masks the command's own error.
func (r *run) finish(err error) error {
	if r.cfg.Metrics.File == "" {
		return err
	}
	path := r.ws.Resolve(r.cfg.Metrics.File)
	if werr := r.recorder.WriteTextfile(path); werr != nil {
		if err != nil {
			slog.Warn("Failed to write metrics", logfields.File(path), logfields.Error(werr))
			return err
		}
		return ferrors.FileSystemError("failed to write metrics").WithCause(werr).
			WithContext("file", path).
			Build()
	}
	slog.Debug("Wrote metrics", logfields.File(path))
	return err
}
