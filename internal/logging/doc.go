// Package logging provides zerolog setup, component loggers and trace ID
// propagation through context.Context for tablekit commands.
package logging
