package pacer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/blobstore/replicationworker/internal/replication/config"
)

func newTestPacer(t *testing.T) (*Pacer, *int) {
	t.Helper()
	cfg, err := config.New(
		config.WithMaxLagForWaitTimeInBytes(100),
	)
	require.NoError(t, err)

	p := New(cfg)
	calls := 0
	p.sleep = func(ctx context.Context, d time.Duration) { calls++ }
	return p, &calls
}

func TestMaybeSleepIntraColoUnderLagSleepsOnce(t *testing.T) {
	p, calls := newTestPacer(t)
	p.BeginExchange()

	p.MaybeSleep(context.Background(), false, 50)
	require.Equal(t, 1, *calls)

	// Second call in the same exchange must not sleep again.
	p.MaybeSleep(context.Background(), false, 50)
	require.Equal(t, 1, *calls)
}

func TestMaybeSleepResetsPerExchange(t *testing.T) {
	p, calls := newTestPacer(t)

	p.BeginExchange()
	p.MaybeSleep(context.Background(), false, 50)
	require.Equal(t, 1, *calls)

	p.BeginExchange()
	p.MaybeSleep(context.Background(), false, 50)
	require.Equal(t, 2, *calls)
}

func TestMaybeSleepSkipsCrossColo(t *testing.T) {
	p, calls := newTestPacer(t)
	p.BeginExchange()

	p.MaybeSleep(context.Background(), true, 50)
	require.Equal(t, 0, *calls)
}

func TestMaybeSleepSkipsWhenLagAboveThreshold(t *testing.T) {
	p, calls := newTestPacer(t)
	p.BeginExchange()

	p.MaybeSleep(context.Background(), false, 1000)
	require.Equal(t, 0, *calls)
}
