// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import "errors"

var (
	ErrMissingActor      = errors.New("actor address required")
	ErrMissingSubcommand = errors.New("must specify a subcommand")
	ErrInvalidPlan       = errors.New("invalid plan")
	ErrInvalidStep       = errors.New("invalid step")
	ErrUnknownAction     = errors.New("unknown action")
	ErrUnexpectedResult  = errors.New("step result did not match expectation")
)
