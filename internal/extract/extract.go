// Package extract runs a full extraction: open the archive, prepare the
// output file, build the date matcher and scan every log member.
package extract

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/Sonukumar0009/Farmart/internal/archive"
	"github.com/Sonukumar0009/Farmart/internal/config"
	"github.com/Sonukumar0009/Farmart/internal/matcher"
	"github.com/Sonukumar0009/Farmart/internal/model"
	"github.com/Sonukumar0009/Farmart/internal/output"
	"github.com/Sonukumar0009/Farmart/internal/scanner"
)

// Extractor performs extraction runs against a single configured archive.
// Runs are serialised, so one Extractor can be shared by the CLI, the
// watcher and the HTTP server.
type Extractor struct {
	mu     sync.Mutex
	cfg    config.Config
	filter *archive.Filter
	notify func(model.Event)
	log    *slog.Logger
}

// New creates an Extractor. notify may be nil; logger may be nil.
func New(cfg config.Config, notify func(model.Event), logger *slog.Logger) (*Extractor, error) {
	filter, err := archive.NewFilter(cfg.Include)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger.Debug("member include filter", "patterns", filter.Patterns())
	return &Extractor{
		cfg:    cfg,
		filter: filter,
		notify: notify,
		log:    logger,
	}, nil
}

// Config returns the configuration the extractor was built with.
func (e *Extractor) Config() config.Config { return e.cfg }

// OutputPath returns where a run for date writes its matches.
func (e *Extractor) OutputPath(date string) string {
	return output.Path(e.cfg.OutputDir, date)
}

// Run extracts every line starting with date into the output file.
//
// Archive validation errors (archive.ErrNotFound, archive.ErrInvalidFormat)
// are returned before anything is created on disk. A failure during the scan
// leaves whatever was written so far in the output file.
func (e *Extractor) Run(ctx context.Context, date string) (model.Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rep := model.Report{
		Date:      date,
		Archive:   e.cfg.ArchivePath,
		StartedAt: time.Now(),
	}
	e.emit(model.Event{Type: model.EventRunStarted, Date: date})

	rep, err := e.run(ctx, date, rep)
	rep.FinishedAt = time.Now()
	if err != nil {
		e.log.Debug("extraction failed", "date", date, "err", err)
		e.emit(model.Event{Type: model.EventRunFailed, Date: date, Error: err.Error(), OutputPath: rep.OutputPath})
		return rep, err
	}

	e.log.Debug("extraction finished", "date", date, "output", rep.OutputPath,
		"matched", rep.LinesMatched, "elapsed", rep.Duration())
	e.emit(model.Event{Type: model.EventRunFinished, Date: date, OutputPath: rep.OutputPath, LinesMatched: rep.LinesMatched})
	return rep, nil
}

func (e *Extractor) run(ctx context.Context, date string, rep model.Report) (model.Report, error) {
	zr, err := archive.Open(e.cfg.ArchivePath)
	if err != nil {
		return rep, err
	}
	defer zr.Close()

	outPath, err := output.Prepare(e.cfg.OutputDir, date)
	if err != nil {
		return rep, err
	}
	rep.OutputPath = outPath

	out, err := os.Create(outPath)
	if err != nil {
		return rep, fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	bw := bufio.NewWriter(out)
	sc := scanner.New(matcher.New(date), scanner.Options{
		Decode: e.cfg.Decode,
		Filter: e.filter,
		Notify: e.notify,
		Logger: e.log,
		Date:   date,
	})

	scanned, scanErr := sc.Scan(ctx, zr.File, bw)
	rep.Members = scanned.Members
	rep.MembersScanned = scanned.MembersScanned
	rep.MembersSkipped = scanned.MembersSkipped
	rep.LinesRead = scanned.LinesRead
	rep.LinesMatched = scanned.LinesMatched
	rep.BytesWritten = scanned.BytesWritten

	// Partial output is kept on failure, so flush in both cases.
	flushErr := bw.Flush()
	if scanErr != nil {
		return rep, scanErr
	}
	if flushErr != nil {
		return rep, fmt.Errorf("write output: %w", flushErr)
	}
	if err := out.Close(); err != nil {
		return rep, fmt.Errorf("close output: %w", err)
	}
	return rep, nil
}

func (e *Extractor) emit(ev model.Event) {
	if e.notify == nil {
		return
	}
	ev.Time = time.Now()
	e.notify(ev)
}
