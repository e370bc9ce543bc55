package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blobstore/replicationworker/pkg/types"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)
	assert.EqualValues(t, DefaultFetchSizeInBytes, cfg.FetchSizeInBytes())
	assert.Equal(t, DefaultConnectionCheckoutTimeout, cfg.ConnectionCheckoutTimeout())
	assert.False(t, cfg.ValidateMessageStream())
	assert.False(t, cfg.IsSSLEnabledColo("dc1"))
}

func TestNewWithOptions(t *testing.T) {
	cfg, err := New(
		WithFetchSizeInBytes(1<<20),
		WithConnectionCheckoutTimeout(2*time.Second),
		WithMaxLagForWaitTimeInBytes(1024),
		WithWaitTimeBetweenReplicas(10*time.Millisecond),
		WithSSLEnabledColos(types.DatacenterID("dc1")),
		WithValidateMessageStream(true),
		WithMaxConnections(8),
	)
	require.NoError(t, err)
	assert.EqualValues(t, 1<<20, cfg.FetchSizeInBytes())
	assert.True(t, cfg.IsSSLEnabledColo("dc1"))
	assert.False(t, cfg.IsSSLEnabledColo("dc2"))
	assert.True(t, cfg.ValidateMessageStream())
	assert.EqualValues(t, 8, cfg.MaxConnections())
}

func TestNewRejectsInvalid(t *testing.T) {
	_, err := New(WithFetchSizeInBytes(0))
	assert.Error(t, err)

	_, err = New(WithMaxConnections(0))
	assert.Error(t, err)

	_, err = New(WithLogger(nil))
	assert.Error(t, err)
}
