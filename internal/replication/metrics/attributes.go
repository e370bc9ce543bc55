package metrics

import (
	"go.opentelemetry.io/otel/attribute"

	"github.com/blobstore/replicationworker/pkg/verrors"
)

func phaseAttr(phase verrors.Phase) attribute.KeyValue {
	return attribute.String("phase", phase.String())
}

func coloAttr(remoteColo bool) attribute.KeyValue {
	if remoteColo {
		return attribute.String("colo", "cross")
	}
	return attribute.String("colo", "intra")
}
