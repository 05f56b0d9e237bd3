package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/obagen/internal/config"
	"git.home.luguber.info/inful/obagen/internal/discovery"
	"git.home.luguber.info/inful/obagen/internal/examples"
	"git.home.luguber.info/inful/obagen/internal/logfields"
	"git.home.luguber.info/inful/obagen/internal/metrics"
	"git.home.luguber.info/inful/obagen/internal/splice"
)

// GenerateDocExamplesCmd implements the 'generate-doc-examples' command.
type GenerateDocExamplesCmd struct {
	Content  string `help:"Directory holding guide templates (<guide>.md)" placeholder:"DIR"`
	Glob     string `help:"Pattern selecting test programs under the examples directory" placeholder:"PATTERN"`
	Examples string `help:"Directory holding test programs" placeholder:"DIR"`
	Lang     string `help:"Info string written after opening code fences" placeholder:"TAG"`
	DryRun   bool   `name:"dry-run" help:"Report substitutions without writing guides"`
}

func (cmd *GenerateDocExamplesCmd) Run(g *Global, root *CLI) error {
	r, err := root.prepare(g, config.Overrides{
		ExamplesDir:   cmd.Examples,
		Glob:          cmd.Glob,
		ContentDir:    cmd.Content,
		FenceLanguage: cmd.Lang,
	})
	if err != nil {
		return err
	}

	report, err := r.generateDocExamples(cmd.DryRun)
	if err == nil {
		printSpliceReport(g, report, cmd.DryRun)
	}
	return r.finish(err)
}

// scrapeExamples discovers test programs and extracts their example blocks.
func (r *run) scrapeExamples() ([]examples.Block, error) {
	dir := r.ws.Resolve(r.cfg.Examples.Dir)

	var paths []string
	err := metrics.TimeStage(r.recorder, "discover", func() error {
		var err error
		paths, err = discovery.Glob(dir, r.cfg.Examples.Glob)
		return err
	})
	if err != nil {
		return nil, err
	}
	slog.Info("Discovered test programs", logfields.File(dir), logfields.Pattern(r.cfg.Examples.Glob), logfields.Count(len(paths)))

	var blocks []examples.Block
	err = metrics.TimeStage(r.recorder, "scrape", func() error {
		var err error
		blocks, err = examples.ScrapeFiles(paths)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.recorder.AddExamplesScraped(len(blocks))
	return blocks, nil
}

func (r *run) splicer(dryRun bool) *splice.Splicer {
	return splice.New(splice.Options{
		ContentDir: r.ws.Resolve(r.cfg.Examples.ContentDir),
		FenceInfo:  r.cfg.Examples.FenceLanguage,
		DryRun:     dryRun,
	}).WithRecorder(r.recorder)
}

func (r *run) generateDocExamples(dryRun bool) (*splice.Report, error) {
	blocks, err := r.scrapeExamples()
	if err != nil {
		return nil, err
	}

	var report *splice.Report
	err = metrics.TimeStage(r.recorder, "splice", func() error {
		var err error
		report, err = r.splicer(dryRun).Splice(blocks)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Spliced examples into guides",
		logfields.Count(report.Replaced()),
		slog.Int("guides", len(report.Guides)),
		slog.Int("unmatched", len(report.Unmatched())),
		slog.Bool("dry_run", dryRun))
	return report, nil
}

func printSpliceReport(g *Global, report *splice.Report, dryRun bool) {
	if dryRun {
		for _, gr := range report.Guides {
			state := "unchanged"
			if gr.Changed {
				state = "would update"
			}
			_, _ = fmt.Fprintf(g.Out, "%s: %s (%d replaced, %d unmatched)\n", gr.Path, state, len(gr.Replaced), len(gr.Unmatched))
		}
	}
	_, _ = fmt.Fprintln(g.Out, report.String())
}
