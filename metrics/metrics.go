package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	namespace = "treelist"
)

const (
	LabelNameRemote = "remote"
	LabelNameKind   = "kind"
	LabelNameGroup  = "group"
	KindFile        = "file"
	KindDir         = "dir"
)

// WriteToTextfile stores all gathered metrics in the text exposition format, e.g. for the node exporter's
// textfile collector. The file is replaced atomically.
func WriteToTextfile(path string, gatherer prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}

	log.Debugf("Wrote metrics to %s", path)

	return nil
}
