// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

var (
	ErrInvalidLogLevel   = errors.New("invalid log level")
	ErrInvalidSampleRate = errors.New("trace sample rate must be within [0, 1]")
)
