// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - HTTP endpoints (JSON, SVG, PNG), YAML config, rotating log file
// 0.2.0 - Cursor springs, nav bar hit testing, hemisphere lookup
// 0.1.0 - Initial release: moon widget, starfield TUI, headless text mode
