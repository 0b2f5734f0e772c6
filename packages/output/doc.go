// Package output renders probe outcomes.
//
// Three formatters are provided:
//   - plain: the decoded response body followed by a newline, nothing else
//   - console: a colored summary line plus the body
//   - json: a machine-readable report of the whole exchange
package output
