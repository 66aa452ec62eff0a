// Package report assembles scan findings into the output artifact and
// renders it as JSON (the primary format) or as a Markdown summary.
package report
