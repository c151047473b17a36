package airplay

import (
	"bytes"
	"context"
	"image/jpeg"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransition(t *testing.T) {
	tests := []struct {
		in   string
		want Transition
	}{
		{"", TransitionNone},
		{"None", TransitionNone},
		{"slideleft", TransitionSlideLeft},
		{"SLIDERIGHT", TransitionSlideRight},
		{"Dissolve", TransitionDissolve},
	}
	for _, tt := range tests {
		got, err := ParseTransition(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		assert.True(t, got.Valid())
	}

	_, err := ParseTransition("Fade")
	assert.Error(t, err)
	assert.False(t, Transition("Fade").Valid())
}

func TestSendFrame(t *testing.T) {
	recv := newFakeReceiver(t, "")
	client := recv.client(t)

	err := client.sendFrame(context.Background(), testImage(64, 36), TransitionSlideRight)
	require.NoError(t, err)

	reqs := recv.received()
	require.Len(t, reqs, 1)
	assert.Equal(t, "PUT", reqs[0].Method)
	assert.Equal(t, pathPhoto, reqs[0].Path)
	assert.Equal(t, "SlideRight", reqs[0].Transition)
	assert.Equal(t, int64(len(reqs[0].Body)), reqs[0].ContentLength)

	decoded, err := jpeg.Decode(bytes.NewReader(reqs[0].Body))
	require.NoError(t, err)
	assert.Equal(t, 64, decoded.Bounds().Dx())
	assert.Equal(t, 36, decoded.Bounds().Dy())
}

func TestSendFrameEncodingFailed(t *testing.T) {
	recv := newFakeReceiver(t, "")
	client := recv.client(t)

	err := client.sendFrame(context.Background(), nil, TransitionNone)
	require.ErrorIs(t, err, ErrEncodingFailed)
	assert.Empty(t, recv.received())
}

func TestSendFrameTransportError(t *testing.T) {
	recv := newFakeReceiver(t, "")
	client := recv.client(t)
	recv.server.Close()

	err := client.sendFrame(context.Background(), testImage(8, 8), TransitionNone)
	require.ErrorIs(t, err, ErrTransport)
}

func TestSendFrameMetrics(t *testing.T) {
	recv := newFakeReceiver(t, "secret")
	metrics := NewMetrics(prometheus.NewRegistry())
	client := recv.client(t, WithPassword("secret"), WithMetrics(metrics))

	require.NoError(t, client.sendFrame(context.Background(), testImage(8, 8), TransitionNone))
	require.Error(t, client.sendFrame(context.Background(), nil, TransitionNone))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.framesSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.frameErrors))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.authChallenges))
	assert.Greater(t, testutil.ToFloat64(metrics.frameBytes), 0.0)
}

func TestSendImageRejectsUnknownTransition(t *testing.T) {
	recv := newFakeReceiver(t, "")
	client := recv.client(t)

	err := client.SendImage(context.Background(), testImage(8, 8), Transition("Bogus"))
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, recv.received(), "nothing goes on the wire")

	_, err = ParseTransition("Bogus")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSendImageNil(t *testing.T) {
	recv := newFakeReceiver(t, "")
	client := recv.client(t)

	err := client.SendImage(context.Background(), nil, TransitionNone)
	require.ErrorIs(t, err, ErrEncodingFailed)
	assert.Empty(t, recv.received())
}
