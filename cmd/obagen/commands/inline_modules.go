package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/obagen/internal/config"
	"git.home.luguber.info/inful/obagen/internal/discovery"
	"git.home.luguber.info/inful/obagen/internal/inline"
	"git.home.luguber.info/inful/obagen/internal/logfields"
	"git.home.luguber.info/inful/obagen/internal/metrics"
)

// InlineModulesCmd implements the 'inline-modules' command.
type InlineModulesCmd struct {
	Dir string `help:"Directory holding module sources" placeholder:"DIR"`
	Raw bool   `help:"Emit literals without escaping backslashes and double quotes"`
}

func (cmd *InlineModulesCmd) Run(g *Global, root *CLI) error {
	r, err := root.prepare(g, config.Overrides{ModulesDir: cmd.Dir, Raw: cmd.Raw})
	if err != nil {
		return err
	}

	outs, err := r.inlineModules()
	if err == nil {
		for _, out := range outs {
			_, _ = fmt.Fprintln(g.Out, r.ws.Rel(out))
		}
		_, _ = fmt.Fprintf(g.Out, "%d modules inlined\n", len(outs))
	}
	return r.finish(err)
}

func (r *run) inlineModules() ([]string, error) {
	mc := r.cfg.Modules
	dir := r.ws.Resolve(mc.Dir)

	paths, err := discovery.Modules(dir, mc.Pattern)
	if err != nil {
		return nil, err
	}
	slog.Info("Discovered modules", logfields.File(dir), logfields.Pattern(mc.Pattern), logfields.Count(len(paths)))

	inliner := inline.New(inline.Options{
		Extension:    mc.Extension,
		OutputSuffix: mc.OutputSuffix,
		Raw:          !mc.EscapeEnabled(),
		HeaderBase:   r.ws.Root,
	}).WithRecorder(r.recorder)

	var outs []string
	err = metrics.TimeStage(r.recorder, "inline", func() error {
		var err error
		outs, err = inliner.InlineFiles(paths)
		return err
	})
	return outs, err
}
