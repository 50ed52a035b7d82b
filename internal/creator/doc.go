// Package creator runs the create workflow: make the project directory,
// resolve credentials, scaffold files, download .gitignore, install
// dependencies, and report success.
package creator
