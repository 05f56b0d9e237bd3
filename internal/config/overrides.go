package config

// Overrides carries command-line values. Empty fields leave the loaded
// configuration untouched.
type Overrides struct {
	ExamplesDir   string
	Glob          string
	ContentDir    string
	FenceLanguage string
	ModulesDir    string
	Raw           bool
	LogLevel      LogLevel
	LogFormat     LogFormat
	MetricsFile   string
}

// Apply merges o into c and re-validates the result.
func (c *Config) Apply(o Overrides) error {
	override(&c.Examples.Dir, o.ExamplesDir)
	override(&c.Examples.Glob, o.Glob)
	override(&c.Examples.ContentDir, o.ContentDir)
	override(&c.Examples.FenceLanguage, o.FenceLanguage)
	override(&c.Modules.Dir, o.ModulesDir)
	override(&c.Metrics.File, o.MetricsFile)
	if o.Raw {
		escape := false
		c.Modules.Escape = &escape
	}
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Logging.Format = o.LogFormat
	}
	if err := c.Logging.normalize(); err != nil {
		return err
	}
	return c.Validate()
}

func override(field *string, value string) {
	if value != "" {
		*field = value
	}
}
