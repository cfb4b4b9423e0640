// Package logging builds slog loggers for montage. The console format renders
// one line per record with a component prefix; the json format is for log
// collection. Output can be mirrored to a file in the configured log
// directory.
package logging
