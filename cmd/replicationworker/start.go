package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/soheilhy/cmux"
	"github.com/urfave/cli/v2"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/blobstore/replicationworker/internal/replication/adminserver"
	"github.com/blobstore/replicationworker/internal/replication/clustermap/etcdmap"
	"github.com/blobstore/replicationworker/internal/replication/config"
	"github.com/blobstore/replicationworker/internal/replication/metrics"
	"github.com/blobstore/replicationworker/internal/replication/model"
	"github.com/blobstore/replicationworker/internal/replication/notify"
	"github.com/blobstore/replicationworker/internal/replication/store/pebblestore"
	"github.com/blobstore/replicationworker/internal/replication/transport/grpctransport"
	"github.com/blobstore/replicationworker/internal/replication/workergroup"
	"github.com/blobstore/replicationworker/internal/stats/opentelemetry"
	"github.com/blobstore/replicationworker/pkg/rpc"
	"github.com/blobstore/replicationworker/pkg/rpc/interceptors/logging"
	"github.com/blobstore/replicationworker/pkg/rpc/interceptors/otelgrpc"
	"github.com/blobstore/replicationworker/pkg/types"
	"github.com/blobstore/replicationworker/pkg/util/log"
	"github.com/blobstore/replicationworker/pkg/util/units"
)

func start(c *cli.Context) (err error) {
	logger, err := buildLogger(c)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, logger.Sync()) }()

	localNode, err := types.ParseNodeID(c.String(flagLocalNode.Name))
	if err != nil {
		return err
	}
	localDatacenter := types.DatacenterID(c.String(flagLocalDatacenter.Name))
	localNodeAddr, localPort, err := splitHostPort(c.String(flagListen.Name))
	if err != nil {
		return err
	}
	localPeer := model.PeerNode{ID: localNode, Host: localNodeAddr, Port: localPort, Datacenter: localDatacenter}

	cfg, err := buildConfig(c, logger)
	if err != nil {
		return err
	}

	localStore, err := pebblestore.Open(
		c.String(flagStoragePath.Name),
		pebblestore.WithMaxOpenFiles(c.Int(flagStorageMaxOpenFiles.Name)),
		pebblestore.WithSyncWAL(c.Bool(flagStorageSyncWAL.Name)),
		pebblestore.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("replicationworker: opening local store: %w", err)
	}
	defer func() { err = multierr.Append(err, localStore.Close()) }()

	replicas, err := parseReplicas(c.StringSlice(flagReplica.Name), localStore)
	if err != nil {
		return err
	}

	etcdClient, err := clientv3.New(clientv3.Config{
		Endpoints:   c.StringSlice(flagEtcdEndpoints.Name),
		DialTimeout: c.Duration(flagEtcdDialTimeout.Name),
	})
	if err != nil {
		return fmt.Errorf("replicationworker: connecting to etcd: %w", err)
	}
	defer func() { err = multierr.Append(err, etcdClient.Close()) }()
	resolver := etcdmap.New(etcdClient, etcdmap.WithKeyPrefix(c.String(flagEtcdKeyPrefix.Name)))

	pool := grpctransport.NewPool(c.Int64(flagMaxConnections.Name))

	mp, stopMeterProvider, err := buildMeterProvider(c)
	if err != nil {
		return err
	}
	opentelemetry.SetGlobalMeterProvider(mp)
	defer func() { err = multierr.Append(err, stopMeterProvider(context.Background())) }()

	workerMetrics, err := metrics.New(mp.Meter(appName))
	if err != nil {
		return fmt.Errorf("replicationworker: building metrics: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	group, err := workergroup.New(ctx, cfg, localPeer, replicas, resolver, pool, model.SegmentOffsetTokenFactory{}, notify.NoOp{}, workerMetrics)
	if err != nil {
		return fmt.Errorf("replicationworker: building worker group: %w", err)
	}

	return serve(ctx, cancel, c.String(flagListen.Name), group, logger, mp)
}

func serve(ctx context.Context, cancel context.CancelFunc, listenAddr string, group *workergroup.WorkerGroup, logger *zap.Logger, mp metric.MeterProvider) error {
	lis, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("replicationworker: listening on %s: %w", listenAddr, err)
	}

	mux := cmux.New(lis)
	httpL := mux.Match(cmux.HTTP1Fast())
	grpcL := mux.Match(cmux.Any())

	grpcServer := rpc.NewServer(grpc.ChainUnaryInterceptor(
		logging.UnaryServerInterceptor(logger),
		otelgrpc.UnaryServerInterceptor(mp),
	))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	runners := make([]adminserver.Runner, len(group.Workers()))
	for i, w := range group.Workers() {
		runners[i] = w
	}
	admin := adminserver.New(runners, group.Shutdown)

	logger.Info("serving", zap.String("listen", listenAddr), zap.Int("workers", len(runners)))

	var g errgroup.Group
	quit := make(chan struct{})
	g.Go(func() error {
		defer close(quit)
		group.Run(ctx)
		return nil
	})
	g.Go(func() error {
		err := admin.Run(httpL)
		if err == nil || errors.Is(err, http.ErrServerClosed) || errors.Is(err, cmux.ErrListenerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		err := grpcServer.Serve(grpcL)
		if err == nil || errors.Is(err, cmux.ErrListenerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		err := mux.Serve()
		if err != nil && !strings.Contains(err.Error(), "use of closed") {
			return err
		}
		return nil
	})

	sigC := make(chan os.Signal, 1)
	signal.Notify(sigC, os.Interrupt, syscall.SIGTERM)
	g.Go(func() error {
		select {
		case sig := <-sigC:
			group.Shutdown()
			cancel()
			closeErr := admin.Close(context.Background())
			grpcServer.GracefulStop()
			mux.Close()
			return multierr.Append(fmt.Errorf("caught signal %s", sig), closeErr)
		case <-quit:
			return nil
		}
	})

	return g.Wait()
}

func buildLogger(c *cli.Context) (*zap.Logger, error) {
	return log.NewInternal(log.Options{
		DisableLogToStderr: !c.Bool(flagLogToStderr.Name),
		Path:               c.String(flagLogDir.Name),
		Debug:              c.Bool(flagLogDebug.Name),
		RotateOptions: log.RotateOptions{
			MaxSizeMB:  c.Int(flagLogMaxSizeMB.Name),
			MaxAgeDays: c.Int(flagLogMaxAgeDays.Name),
			MaxBackups: c.Int(flagLogMaxBackups.Name),
		},
	})
}

func buildConfig(c *cli.Context, logger *zap.Logger) (config.Config, error) {
	fetchSize, err := units.FromByteSizeString(c.String(flagFetchSizeInBytes.Name))
	if err != nil {
		return config.Config{}, fmt.Errorf("replicationworker: %s: %w", flagFetchSizeInBytes.Name, err)
	}
	maxLag, err := units.FromByteSizeString(c.String(flagMaxLagForWaitTime.Name))
	if err != nil {
		return config.Config{}, fmt.Errorf("replicationworker: %s: %w", flagMaxLagForWaitTime.Name, err)
	}

	colos := make([]types.DatacenterID, 0, len(c.StringSlice(flagSSLEnabledColos.Name)))
	for _, dc := range c.StringSlice(flagSSLEnabledColos.Name) {
		colos = append(colos, types.DatacenterID(dc))
	}

	return config.New(
		config.WithFetchSizeInBytes(fetchSize),
		config.WithMaxLagForWaitTimeInBytes(maxLag),
		config.WithWaitTimeBetweenReplicas(c.Duration(flagWaitTimeBetweenReplicas.Name)),
		config.WithConnectionCheckoutTimeout(c.Duration(flagConnectionCheckoutTimeout.Name)),
		config.WithIterationInterval(c.Duration(flagIterationInterval.Name)),
		config.WithMaxConnections(c.Int64(flagMaxConnections.Name)),
		config.WithValidateMessageStream(c.Bool(flagValidateMessageStream.Name)),
		config.WithSSLEnabledColos(colos...),
		config.WithLogger(logger),
	)
}

func buildMeterProvider(c *cli.Context) (metric.MeterProvider, opentelemetry.StopMeterProvider, error) {
	switch c.String(flagTelemetryExporter.Name) {
	case "stdout":
		exporter, err := opentelemetry.NewStdoutExporter()
		if err != nil {
			return nil, nil, fmt.Errorf("replicationworker: building stdout exporter: %w", err)
		}
		return opentelemetry.NewMeterProvider(opentelemetry.WithExporter(exporter))
	default:
		return opentelemetry.NewMeterProvider()
	}
}

func splitHostPort(addr string) (host string, port int, err error) {
	h, p, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("replicationworker: invalid address %q: %w", addr, err)
	}
	var portNum int
	if _, err := fmt.Sscanf(p, "%d", &portNum); err != nil {
		return "", 0, fmt.Errorf("replicationworker: invalid port in %q: %w", addr, err)
	}
	return h, portNum, nil
}
