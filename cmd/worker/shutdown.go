package main

import (
	"io"

	"github.com/ghuser/contracthub/pkg/logger"
)

// resource is something the worker closes on shutdown.
type resource struct {
	name string
	c    io.Closer
}

// closeInOrder closes resources front to back and logs, but does not stop on,
// failures. The event bus must come before anything its handlers use.
func closeInOrder(log logger.Logger, resources ...resource) {
	for _, r := range resources {
		if err := r.c.Close(); err != nil {
			log.Error("failed to close "+r.name, "error", err)
		}
	}
}
