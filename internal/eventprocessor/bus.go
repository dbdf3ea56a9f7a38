// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package eventprocessor

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/utilitrack/internal/config"
)

// defaultOutputBuffer is used when the configured buffer is not positive.
const defaultOutputBuffer = 64

// NewBus creates the in-process pub/sub shared by publishers and the router.
func NewBus(cfg config.EventsConfig, logger watermill.LoggerAdapter) *gochannel.GoChannel {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	buffer := cfg.OutputBuffer
	if buffer <= 0 {
		buffer = defaultOutputBuffer
	}
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: buffer,
	}, logger)
}
