// Package installer runs a Node.js package manager's install command in a
// freshly scaffolded project. The process is treated as a black box: it
// either exits zero or the install failed.
package installer
