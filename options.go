// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package osu

import (
	"log/slog"

	"github.com/kelindar/osu-sdk/internal/codec"
)

// options holds the configuration shared by the decoders and the SDK
type options struct {
	maxFrameData int
	maxFileSize  int64
	logger       *slog.Logger
}

// Option represents a configuration option for decoding
type Option func(*options)

// WithMaxFrameData caps the size of the decompressed replay frame stream, in bytes
func WithMaxFrameData(size int) Option {
	return func(o *options) {
		o.maxFrameData = size
	}
}

// WithMaxFileSize caps the size of the files the SDK reads from disk, in bytes
func WithMaxFileSize(size int64) Option {
	return func(o *options) {
		o.maxFileSize = size
	}
}

// WithLogger sets the logger used by the SDK. Decoders never log.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// newOptions applies the options on top of the defaults
func newOptions(opts []Option) *options {
	o := &options{
		maxFrameData: codec.DefaultLimit,
		logger:       slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(o)
	}
	return o
}
