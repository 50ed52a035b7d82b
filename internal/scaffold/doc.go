// Package scaffold writes the starter files of a Functions project into an
// existing project directory: the .env credentials file, .nvmrc, either the
// embedded example Function and asset or a fetched template, and
// package.json.
package scaffold
