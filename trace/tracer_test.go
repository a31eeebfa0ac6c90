// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisabledTracer(t *testing.T) {
	require := require.New(t)

	tracer, err := New(&Config{AppName: "ammvm"})
	require.NoError(err)
	_, span := tracer.Start(context.Background(), "test")
	require.False(span.IsRecording())
	span.End()
	require.NoError(tracer.Close())
}

func TestEnabledTracer(t *testing.T) {
	require := require.New(t)

	tracer, err := New(&Config{
		Enabled:         true,
		TraceSampleRate: 1,
		AppName:         "ammvm",
		Agent:           "test",
		Version:         "v0.0.0",
	})
	require.NoError(err)
	_, span := tracer.Start(context.Background(), "test")
	require.True(span.IsRecording())
	span.End()
}
