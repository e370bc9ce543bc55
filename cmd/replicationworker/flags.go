package main

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/blobstore/replicationworker/internal/replication/config"
	"github.com/blobstore/replicationworker/pkg/util/log"
	"github.com/blobstore/replicationworker/pkg/util/units"
)

// Flag names and defaults are declared inline rather than through a shared
// flag-description helper: this worker has no analogue of the storage
// node's cluster-wide flag catalog, so one flags.go is plenty.
var (
	flagLocalNode = &cli.StringFlag{
		Name:    "local-node",
		Usage:   "this node's id",
		EnvVars: []string{"REPLICATIONWORKER_LOCAL_NODE"},
		Value:   "1",
	}
	flagLocalDatacenter = &cli.StringFlag{
		Name:    "local-datacenter",
		Usage:   "datacenter this process runs in",
		EnvVars: []string{"REPLICATIONWORKER_LOCAL_DATACENTER"},
		Value:   "dc1",
	}
	flagReplica = &cli.StringSliceFlag{
		Name:    "replica",
		Usage:   "localNode:remoteNode:partition, repeatable; one entry per replica this worker keeps converged",
		EnvVars: []string{"REPLICATIONWORKER_REPLICA"},
	}

	flagListen = &cli.StringFlag{
		Name:    "admin-listen",
		Usage:   "address the admin HTTP/gRPC health endpoints listen on",
		EnvVars: []string{"REPLICATIONWORKER_ADMIN_LISTEN"},
		Value:   "127.0.0.1:9401",
	}

	flagStoragePath = &cli.StringFlag{
		Name:    "storage-path",
		Usage:   "pebble directory backing the local blob store",
		EnvVars: []string{"REPLICATIONWORKER_STORAGE_PATH"},
		Value:   "./data/replicationworker",
	}
	flagStorageMaxOpenFiles = &cli.IntFlag{
		Name:    "storage-max-open-files",
		EnvVars: []string{"REPLICATIONWORKER_STORAGE_MAX_OPEN_FILES"},
		Value:   1000,
	}
	flagStorageSyncWAL = &cli.BoolFlag{
		Name:    "storage-sync-wal",
		EnvVars: []string{"REPLICATIONWORKER_STORAGE_SYNC_WAL"},
		Value:   true,
	}

	flagEtcdEndpoints = &cli.StringSliceFlag{
		Name:    "etcd-endpoints",
		Usage:   "etcd endpoints backing the peer resolver",
		EnvVars: []string{"REPLICATIONWORKER_ETCD_ENDPOINTS"},
		Value:   cli.NewStringSlice("127.0.0.1:2379"),
	}
	flagEtcdDialTimeout = &cli.DurationFlag{
		Name:    "etcd-dial-timeout",
		EnvVars: []string{"REPLICATIONWORKER_ETCD_DIAL_TIMEOUT"},
		Value:   5 * time.Second,
	}
	flagEtcdKeyPrefix = &cli.StringFlag{
		Name:    "etcd-key-prefix",
		EnvVars: []string{"REPLICATIONWORKER_ETCD_KEY_PREFIX"},
		Value:   "/replicationworker/nodes/",
	}

	flagFetchSizeInBytes = &cli.StringFlag{
		Name:    "fetch-size",
		Usage:   "B, KiB, MiB, GiB; per-batch get-request byte budget",
		EnvVars: []string{"REPLICATIONWORKER_FETCH_SIZE"},
		Value:   units.ToByteSizeString(config.DefaultFetchSizeInBytes),
	}
	flagMaxLagForWaitTime = &cli.StringFlag{
		Name:    "max-lag-for-wait-time",
		Usage:   "B, KiB, MiB, GiB; Pacer only sleeps below this lag",
		EnvVars: []string{"REPLICATIONWORKER_MAX_LAG_FOR_WAIT_TIME"},
		Value:   units.ToByteSizeString(config.DefaultMaxLagForWaitTimeInBytes),
	}
	flagWaitTimeBetweenReplicas = &cli.DurationFlag{
		Name:    "wait-time-between-replicas",
		EnvVars: []string{"REPLICATIONWORKER_WAIT_TIME_BETWEEN_REPLICAS"},
		Value:   config.DefaultWaitTimeBetweenReplicas,
	}
	flagConnectionCheckoutTimeout = &cli.DurationFlag{
		Name:    "connection-checkout-timeout",
		EnvVars: []string{"REPLICATIONWORKER_CONNECTION_CHECKOUT_TIMEOUT"},
		Value:   config.DefaultConnectionCheckoutTimeout,
	}
	flagIterationInterval = &cli.DurationFlag{
		Name:    "iteration-interval",
		EnvVars: []string{"REPLICATIONWORKER_ITERATION_INTERVAL"},
		Value:   config.DefaultIterationInterval,
	}
	flagMaxConnections = &cli.Int64Flag{
		Name:    "max-connections",
		EnvVars: []string{"REPLICATIONWORKER_MAX_CONNECTIONS"},
		Value:   config.DefaultMaxConnections,
	}
	flagValidateMessageStream = &cli.BoolFlag{
		Name:    "validate-message-stream",
		EnvVars: []string{"REPLICATIONWORKER_VALIDATE_MESSAGE_STREAM"},
	}
	flagSSLEnabledColos = &cli.StringSliceFlag{
		Name:    "ssl-enabled-colo",
		Usage:   "datacenter names dialed over TLS, repeatable",
		EnvVars: []string{"REPLICATIONWORKER_SSL_ENABLED_COLOS"},
	}

	flagTelemetryExporter = &cli.StringFlag{
		Name:    "telemetry-exporter",
		Usage:   "stdout or noop",
		EnvVars: []string{"REPLICATIONWORKER_TELEMETRY_EXPORTER"},
		Value:   "noop",
	}

	flagLogDir = &cli.StringFlag{
		Name:    "log-dir",
		EnvVars: []string{"REPLICATIONWORKER_LOG_DIR"},
	}
	flagLogToStderr = &cli.BoolFlag{
		Name:    "log-to-stderr",
		EnvVars: []string{"REPLICATIONWORKER_LOG_TO_STDERR"},
		Value:   true,
	}
	flagLogMaxSizeMB = &cli.IntFlag{
		Name:    "log-file-max-size-mb",
		EnvVars: []string{"REPLICATIONWORKER_LOG_FILE_MAX_SIZE_MB"},
		Value:   log.DefaultMaxSizeMB,
	}
	flagLogMaxBackups = &cli.IntFlag{
		Name:    "log-file-max-backups",
		EnvVars: []string{"REPLICATIONWORKER_LOG_FILE_MAX_BACKUPS"},
		Value:   log.DefaultMaxBackups,
	}
	flagLogMaxAgeDays = &cli.IntFlag{
		Name:    "log-file-max-age-days",
		EnvVars: []string{"REPLICATIONWORKER_LOG_FILE_MAX_AGE_DAYS"},
		Value:   log.DefaultMaxAgeDay,
	}
	flagLogDebug = &cli.BoolFlag{
		Name:    "log-debug",
		EnvVars: []string{"REPLICATIONWORKER_LOG_DEBUG"},
	}
)

func appFlags() []cli.Flag {
	return []cli.Flag{
		flagLocalNode,
		flagLocalDatacenter,
		flagReplica,
		flagListen,
		flagStoragePath,
		flagStorageMaxOpenFiles,
		flagStorageSyncWAL,
		flagEtcdEndpoints,
		flagEtcdDialTimeout,
		flagEtcdKeyPrefix,
		flagFetchSizeInBytes,
		flagMaxLagForWaitTime,
		flagWaitTimeBetweenReplicas,
		flagConnectionCheckoutTimeout,
		flagIterationInterval,
		flagMaxConnections,
		flagValidateMessageStream,
		flagSSLEnabledColos,
		flagTelemetryExporter,
		flagLogDir,
		flagLogToStderr,
		flagLogMaxSizeMB,
		flagLogMaxBackups,
		flagLogMaxAgeDays,
		flagLogDebug,
	}
}
