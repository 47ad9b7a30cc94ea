// Package config handles configuration loading and merging for regdash.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--seed, --filter, --no-color, --summary, etc.)
//  2. Environment variables (REGDASH_SEED, REGDASH_LOG_LEVEL, NO_COLOR, ...)
//  3. YAML config file (.regdash.yaml in the working directory or ~/.config/regdash/.regdash.yaml)
//  4. Hardcoded defaults
//
// Nested keys map to environment variables with dots replaced by
// underscores, so log.level is REGDASH_LOG_LEVEL.
//
// # Key Configuration Options
//
//   - seed: YAML plan of test cases loaded at startup
//   - filter: initial filter (all, pending, pass, fail)
//   - no_color: monochrome dashboard theme
//   - summary: report printed when the session ends (text, markdown, json, none)
//   - exit_code: exit 1 when any test is marked Fail
//   - metrics_textfile: Prometheus textfile written when the session ends
//   - log.*: rotating log file settings
//
// The dashboard section of the same file holds the theme and is read by
// the dashboard package.
//
// # Environment Variables
//
// NO_COLOR follows the no-color.org convention: any non-empty value turns
// colors off regardless of other sources.
package config
