// Package report renders what the user sees: progress steps, warnings,
// errors, and the boxed success message shown once a project is ready.
package report
