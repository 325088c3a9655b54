package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dreitier/treelist/metrics"
	"github.com/dreitier/treelist/report"
	"github.com/dreitier/treelist/storage"
	fs "github.com/dreitier/treelist/storage/fs"
	"github.com/dreitier/treelist/tree"
	log "github.com/sirupsen/logrus"
)

type runner struct {
	client   storage.Client
	settings settings
	out      io.Writer
}

type listing struct {
	entries  []fs.Entry
	duration time.Duration
}

func (r *runner) list(ctx context.Context, remote string) (*listing, error) {
	log.Infof("Fetching data from %s", remote)

	start := time.Now()
	entries, err := r.client.List(ctx, remote)
	if err != nil {
		return nil, err
	}

	result := &listing{
		entries:  storage.Filter(entries, r.settings.paths, r.settings.minSize),
		duration: time.Since(start),
	}

	files, dirs, _ := fs.Totals(result.entries)
	log.Infof("Retrieved %d files in %d directories from %s in %s", files, dirs, remote, result.duration.Round(time.Millisecond))

	return result, nil
}

func (r *runner) unit() report.Unit {
	unit := report.ParseUnit(r.settings.unit)

	if !unit.IsKnown() {
		log.Warnf("Unknown unit %#q, reporting sizes in bytes (expected one of %v)", r.settings.unit, report.Units())
	}

	return unit
}

func (r *runner) runAggregate(ctx context.Context, remote string) error {
	result, err := r.list(ctx, remote)
	if err != nil {
		return err
	}

	log.Infof("Analyzing directory structure at depth %d", r.settings.depth)

	unit := r.unit()
	groups := report.Aggregate(result.entries, r.settings.depth, unit)
	_, _, totalBytes := fs.Totals(result.entries)

	if err = report.Summarize(r.out, groups, unit, totalBytes); err != nil {
		return err
	}

	record := report.AggregateRecord{
		Remote:      report.RemoteName(remote),
		Unit:        string(unit),
		Directories: groups,
	}

	if err = report.Save(r.settings.output, record); err != nil {
		return err
	}

	log.Infof("Saved report to %s", r.settings.output)

	return r.writeMetrics(record.Remote, result, report.GroupByDepth(result.entries, r.settings.depth))
}

func (r *runner) runTree(ctx context.Context, remote string) error {
	var result *listing
	var record report.TreeRecord

	if r.settings.fromReport != "" {
		log.Infof("Loading tree report %s", r.settings.fromReport)

		stored, err := report.LoadTree(r.settings.fromReport)
		if err != nil {
			return err
		}

		record = *stored
		result = &listing{entries: stored.Files}
	} else {
		var err error

		result, err = r.list(ctx, remote)
		if err != nil {
			return err
		}

		record = report.TreeRecord{
			Remote: report.RemoteName(remote),
			Unit:   string(r.unit()),
			Files:  result.entries,
		}

		if err = report.Save(r.settings.output, record); err != nil {
			return err
		}

		log.Infof("Saved tree report to %s", r.settings.output)
	}

	log.Infof("Building tree of %d entries", len(result.entries))
	root := tree.Build(result.entries)

	page, err := tree.RenderHTML(r.settings.template, root)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", r.settings.template, err)
	}

	if err = fs.WriteFileAtomic(r.settings.htmlOutput, []byte(page)); err != nil {
		return err
	}

	log.Infof("Wrote HTML tree to %s", r.settings.htmlOutput)

	if r.settings.printTree {
		title := remote
		if title == "" {
			title = record.Remote
		}

		if _, err = fmt.Fprint(r.out, tree.Preview(root, title)); err != nil {
			return err
		}
	}

	return r.writeMetrics(record.Remote, result, nil)
}

func (r *runner) writeMetrics(remote string, result *listing, groups map[string]int64) error {
	if r.settings.metricsFile == "" {
		return nil
	}

	run := metrics.NewRunMetrics(remote)
	run.ObserveListing(result.entries, result.duration)
	run.ObserveGroups(groups)

	return run.WriteToTextfile(r.settings.metricsFile)
}
