// Package project holds the description of the project being created and
// the one operation that must succeed before anything else runs: creating
// the project directory. Creation failures are typed so the caller can tell
// an existing directory from a permission problem.
package project
