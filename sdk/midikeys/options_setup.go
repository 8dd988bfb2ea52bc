package midikeys

import (
	"github.com/keytone/midikeys/internal/logger"
	"github.com/keytone/midikeys/sdk/contracts"
)

const (
	defaultQueueSize      = 256
	defaultSinkBufferSize = 64
)

// applyDefaultOptions sets default values for SessionOptions if not
// explicitly provided.
func applyDefaultOptions(opts ...contracts.Option) (contracts.SessionOptions, error) {
	options := &contracts.SessionOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}
	if options.QueueSize <= 0 {
		options.QueueSize = defaultQueueSize
	}
	if options.SinkBufferSize <= 0 {
		options.SinkBufferSize = defaultSinkBufferSize
	}
	if options.SinkConfig == nil {
		options.SinkConfig = &contracts.SinkConfig{ClientName: "midikeys"}
	}

	options.Logger.SetLevel(options.LogLevel)
	return *options, nil
}
