// Package templates fetches Function templates from a GitHub repository.
// A template is a directory named by its id; Fetch walks it through the
// contents API and returns the files under functions/, assets/, and the
// template's .env as an in-memory Tree. Transient failures are retried with
// exponential backoff.
package templates
