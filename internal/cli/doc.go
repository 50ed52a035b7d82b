// Package cli defines the Cobra command tree. The root command creates a
// project; subcommands list templates, print version information, and
// manage user settings. Commands only parse flags and wire capabilities;
// the work happens in the internal packages.
package cli
