package common

import (
	"os"
	"os/signal"
	"syscall"
)

// SignalHandler notifies on SIGINT and SIGTERM.
func SignalHandler() chan os.Signal {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	return c
}
