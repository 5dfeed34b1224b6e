// Package driver runs the Rd-to-markdown pipeline over a package
// directory: scan, alias index, parallel per-file convert+write, and
// outcome collection. It also exposes single-file tokenize/parse entry
// points for the debug subcommands.
package driver
