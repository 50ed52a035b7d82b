// Package updater tells users when a newer release of the CLI is
// available. The latest GitHub release is checked at most once a day and
// cached under the config directory; the banner is printed from the cache.
package updater
