// Package manifest builds, parses, and validates the package.json written
// into a new Functions project. Validation runs the embedded JSON Schema
// and checks version strings with semver.
package manifest
