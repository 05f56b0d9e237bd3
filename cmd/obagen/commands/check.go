package commands

import (
	"fmt"

	"git.home.luguber.info/inful/obagen/internal/config"
	ferrors "git.home.luguber.info/inful/obagen/internal/foundation/errors"
)

// CheckCmd implements the 'check' command. It reads guides and test
// programs but never writes.
type CheckCmd struct {
	Content  string `help:"Directory holding guide templates (<guide>.md)" placeholder:"DIR"`
	Glob     string `help:"Pattern selecting test programs under the examples directory" placeholder:"PATTERN"`
	Examples string `help:"Directory holding test programs" placeholder:"DIR"`
}

func (cmd *CheckCmd) Run(g *Global, root *CLI) error {
	r, err := root.prepare(g, config.Overrides{
		ExamplesDir: cmd.Examples,
		Glob:        cmd.Glob,
		ContentDir:  cmd.Content,
	})
	if err != nil {
		return err
	}
	return r.finish(r.check(g))
}

func (r *run) check(g *Global) error {
	blocks, err := r.scrapeExamples()
	if err != nil {
		return err
	}
	findings, err := r.splicer(true).Check(blocks)
	if err != nil {
		return err
	}

	for _, f := range findings {
		_, _ = fmt.Fprintln(g.Out, f.String())
	}
	if len(findings) > 0 {
		return ferrors.NewError(ferrors.CategoryNotFound, fmt.Sprintf("%d mismatches between examples and placeholders", len(findings))).
			WithContext("count", len(findings)).
			Build()
	}
	_, _ = fmt.Fprintf(g.Out, "%d examples all match their placeholders\n", len(blocks))
	return nil
}
