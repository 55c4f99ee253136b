// Package view provides output formatting and logging for the dmtgen CLI.
//
// Commands write results through a Stream in one of the output formats
// (human, json, yaml or msgpack). Logs go to a separate writer and are
// always human-readable.
package view
