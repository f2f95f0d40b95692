// Package scanner streams matching lines out of ZIP archive members.
package scanner

import (
	"archive/zip"
	"bufio"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Sonukumar0009/Farmart/internal/archive"
	"github.com/Sonukumar0009/Farmart/internal/decode"
	"github.com/Sonukumar0009/Farmart/internal/matcher"
	"github.com/Sonukumar0009/Farmart/internal/model"
)

const (
	readBufferSize = 64 * 1024
	// cancelCheckEvery is how many lines are read between context checks.
	cancelCheckEvery = 4096
)

// Options configures a Scanner. The zero value decodes leniently, scans every
// member with a recognized suffix and reports nothing.
type Options struct {
	Decode decode.Policy
	Filter *archive.Filter
	Notify func(model.Event)
	Logger *slog.Logger
	// Date is copied into emitted events.
	Date string
}

// Scanner filters archive members line by line.
type Scanner struct {
	match  matcher.Matcher
	decode decode.Policy
	filter *archive.Filter
	notify func(model.Event)
	log    *slog.Logger
	date   string
}

// New creates a Scanner that keeps lines accepted by m.
func New(m matcher.Matcher, opts Options) *Scanner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scanner{
		match:  m,
		decode: opts.Decode,
		filter: opts.Filter,
		notify: opts.Notify,
		log:    logger,
		date:   opts.Date,
	}
}

// Scan walks files in order and writes every matching line, terminator
// included, to w. It stops at the first member error. The returned report
// holds the per-member results gathered so far, even on error.
func (s *Scanner) Scan(ctx context.Context, files []*zip.File, w io.Writer) (model.Report, error) {
	var rep model.Report
	cw := &countingWriter{w: w}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			rep.BytesWritten = cw.n
			return rep, err
		}

		kind := archive.Classify(f.Name)
		if kind == model.KindUnsupported || !s.filter.Match(f.Name) {
			s.log.Debug("skipping archive member", "member", f.Name, "kind", kind)
			rep.Add(model.MemberResult{Name: f.Name, Kind: kind, Skipped: true})
			s.emit(model.Event{Type: model.EventMemberSkipped, Member: f.Name})
			continue
		}

		res, err := s.scanMember(ctx, f, kind, cw)
		rep.Add(res)
		if err != nil {
			rep.BytesWritten = cw.n
			return rep, fmt.Errorf("scan %s: %w", f.Name, err)
		}

		s.log.Debug("scanned archive member", "member", f.Name, "lines", res.LinesRead, "matched", res.LinesMatched)
		s.emit(model.Event{Type: model.EventMemberScanned, Member: f.Name, LinesMatched: res.LinesMatched})
	}

	rep.BytesWritten = cw.n
	return rep, nil
}

// scanMember reads a single member. Every stream it opens is closed before it returns.
func (s *Scanner) scanMember(ctx context.Context, f *zip.File, kind model.MemberKind, w io.Writer) (model.MemberResult, error) {
	res := model.MemberResult{Name: f.Name, Kind: kind}

	rc, err := f.Open()
	if err != nil {
		return res, fmt.Errorf("open: %w", err)
	}
	defer rc.Close()

	var r io.Reader = rc
	if kind == model.KindGzip {
		gz, err := gzip.NewReader(rc)
		if errors.Is(err, io.EOF) {
			// Zero-length member: nothing to decompress.
			return res, nil
		}
		if err != nil {
			return res, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	br := bufio.NewReaderSize(r, readBufferSize)
	for {
		raw, readErr := br.ReadBytes('\n')
		if len(raw) > 0 {
			res.LinesRead++

			line, err := s.decode.Decode(raw)
			if err != nil {
				return res, fmt.Errorf("line %d: %w", res.LinesRead, err)
			}
			if s.match.Match(line) {
				if _, err := io.WriteString(w, line); err != nil {
					return res, fmt.Errorf("write output: %w", err)
				}
				res.LinesMatched++
			}

			if res.LinesRead%cancelCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return res, err
				}
			}
		}

		if readErr == io.EOF {
			return res, nil
		}
		if readErr != nil {
			return res, fmt.Errorf("read: %w", readErr)
		}
	}
}

func (s *Scanner) emit(ev model.Event) {
	if s.notify == nil {
		return
	}
	ev.Time = time.Now()
	ev.Date = s.date
	s.notify(ev)
}

// countingWriter tracks how many bytes reach the output.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
