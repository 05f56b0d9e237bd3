package config

import (
	"errors"
	"path"
	"strings"

	ferrors "git.home.luguber.info/inful/obagen/internal/foundation/errors"
)

// Validate checks a configuration after defaults are applied.
func (c *Config) Validate() error {
	if err := validatePattern("examples.glob", c.Examples.Glob); err != nil {
		return err
	}
	if strings.Contains(c.Examples.FenceLanguage, "`") || strings.ContainsAny(c.Examples.FenceLanguage, "\r\n") {
		return invalid("examples.fence_language", "must be a single line without backticks")
	}
	if err := validatePattern("modules.pattern", c.Modules.Pattern); err != nil {
		return err
	}
	if strings.Contains(c.Modules.Pattern, "**") || strings.Contains(c.Modules.Pattern, "/") {
		return invalid("modules.pattern", "must match file names directly inside modules.dir")
	}
	if !strings.HasPrefix(c.Modules.Extension, ".") {
		return invalid("modules.extension", "must start with a dot")
	}
	if strings.ContainsAny(c.Modules.OutputSuffix, `/\`) {
		return invalid("modules.output_suffix", "must not contain path separators")
	}
	return nil
}

func validatePattern(field, pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return invalid(field, "must not be empty")
	}
	for _, seg := range strings.Split(pattern, "/") {
		if seg == "**" {
			continue
		}
		if _, err := path.Match(seg, ""); errors.Is(err, path.ErrBadPattern) {
			return invalid(field, "malformed pattern")
		}
	}
	return nil
}

func invalid(field, reason string) error {
	return ferrors.ConfigError("invalid "+field+": "+reason).
		WithContext("field", field).
		Build()
}
