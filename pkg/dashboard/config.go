package dashboard

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DashboardConfig is the dashboard section of .regdash.yaml.
type DashboardConfig struct {
	Dashboard *DashboardTheme `yaml:"dashboard"`
}

// LoadTheme reads the dashboard theme from the config file at path.
// An empty path or a file without a dashboard section yields the default
// theme. On error the default theme is returned alongside the error so the
// caller can log it and carry on.
func LoadTheme(path string) (*DashboardTheme, error) {
	if path == "" {
		return DefaultDashboardTheme(), nil
	}

	// #nosec G304 -- path comes from config discovery or an explicit --config flag
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultDashboardTheme(), fmt.Errorf("reading theme: %w", err)
	}

	var cfg DashboardConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultDashboardTheme(), fmt.Errorf("parsing theme in %s: %w", path, err)
	}
	if cfg.Dashboard == nil {
		return DefaultDashboardTheme(), nil
	}
	return mergeWithDefaults(cfg.Dashboard), nil
}

// mergeWithDefaults fills in missing values from the default theme.
func mergeWithDefaults(theme *DashboardTheme) *DashboardTheme {
	def := DefaultDashboardTheme()

	// Colors
	fill(&theme.Colors.Primary, def.Colors.Primary)
	fill(&theme.Colors.Pass, def.Colors.Pass)
	fill(&theme.Colors.Fail, def.Colors.Fail)
	fill(&theme.Colors.Pending, def.Colors.Pending)
	fill(&theme.Colors.Muted, def.Colors.Muted)
	fill(&theme.Colors.Text, def.Colors.Text)
	fill(&theme.Colors.Border, def.Colors.Border)
	fill(&theme.Colors.Highlight, def.Colors.Highlight)

	// Icons
	fill(&theme.Icons.Pending, def.Icons.Pending)
	fill(&theme.Icons.Pass, def.Icons.Pass)
	fill(&theme.Icons.Fail, def.Icons.Fail)
	fill(&theme.Icons.Select, def.Icons.Select)

	// Title
	fill(&theme.Title.Text, def.Title.Text)
	fill(&theme.Title.Icon, def.Title.Icon)

	return theme
}

func fill(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}
