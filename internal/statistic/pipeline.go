package statistic

import (
	"errors"
	"fmt"
	"io"
	"time"

	"chatstats/internal/providers"
	"chatstats/internal/statistic/interfaces"
	"chatstats/internal/structures"
)

// Pipeline runs one full ingest pass: stream-decode the export, fold
// every record into the aggregator, checkpoint periodically, then
// finalize and commit the archive. A decode error aborts the pass and
// leaves the last checkpoint on disk.
type Pipeline struct {
	config  *structures.Config
	flags   *structures.CliFlags
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	archive *ArchiveManager
}

func NewPipeline(flags *structures.CliFlags, config *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, archive *ArchiveManager) interfaces.PipelineInterface {
	return &Pipeline{
		config:  config,
		flags:   flags,
		logger:  logger,
		metrics: metrics,
		archive: archive,
	}
}

func (p *Pipeline) Run() error {
	reader, err := OpenMessageReader(p.flags.IngestFile)
	if err != nil {
		return fmt.Errorf("open export %s: %w", p.flags.IngestFile, err)
	}
	defer reader.Close()

	outDir := p.config.Output.Dir
	if cp, err := p.archive.LoadCheckpoint(outDir); err != nil {
		p.logger.Warnf(providers.TypeApp, "Ignoring unreadable checkpoint: %s", err)
	} else if cp != nil {
		p.logger.Warnf(providers.TypeApp, "Found checkpoint from an interrupted run (%d records); starting over", cp.Processed)
	}

	agg := NewAggregator()
	startedAt := time.Now()
	read := 0

	for {
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("ingest aborted after %d records: %w", read, err)
		}

		agg.Accumulate(rec)
		p.metrics.AddMessagesProcessed(1)
		if rec.AuthorID() == "" {
			p.metrics.IncRecordsSkipped()
		}
		read++

		if read%p.config.Ingest.ProgressEvery == 0 {
			elapsed := time.Since(startedAt).Seconds()
			p.logger.Infof(providers.TypeApp, "%d records | %.0f rec/s | %d users",
				read, float64(read)/elapsed, agg.Users())
		}

		if read%p.config.Ingest.CheckpointEvery == 0 {
			if err := p.saveCheckpoint(outDir, agg); err != nil {
				p.logger.Errorf(providers.TypeApp, "Checkpoint write failed: %s", err)
			}
		}
	}

	p.metrics.SetUsersTotal(agg.Users())
	p.logger.Infof(providers.TypeApp, "Stream drained: %d records, %d skipped, %d users; finalizing",
		agg.Processed(), agg.Skipped(), agg.Users())

	archive := agg.Finalize()

	persistStart := time.Now()
	if err := p.archive.SaveArchive(outDir, archive); err != nil {
		return err
	}
	p.metrics.ObservePersistenceDuration(time.Since(persistStart))
	p.archive.RemoveCheckpoint(outDir)

	p.logger.Infof(providers.TypeApp, "Archive committed to %s in %s", outDir, time.Since(startedAt).Round(time.Millisecond))
	return nil
}

func (p *Pipeline) saveCheckpoint(dir string, agg *Aggregator) error {
	start := time.Now()
	if err := p.archive.SaveCheckpoint(dir, agg.Checkpoint()); err != nil {
		return err
	}
	p.metrics.ObservePersistenceDuration(time.Since(start))
	p.logger.Infof(providers.TypeApp, "Checkpoint written at %d records", agg.Processed()+agg.Skipped())
	return nil
}
