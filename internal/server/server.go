package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sonukumar0009/Farmart/internal/aggregator"
	"github.com/Sonukumar0009/Farmart/internal/archive"
	"github.com/Sonukumar0009/Farmart/internal/extract"
	"github.com/Sonukumar0009/Farmart/internal/hub"
	"github.com/Sonukumar0009/Farmart/internal/output"
)

// Server exposes extraction runs over HTTP.
type Server struct {
	engine     *gin.Engine
	extractor  *extract.Extractor
	hub        *hub.Hub
	aggregator *aggregator.Aggregator
	addr       string
	started    time.Time
}

// New creates the HTTP server.
func New(ext *extract.Extractor, h *hub.Hub, agg *aggregator.Aggregator, addr string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false

	s := &Server{
		engine:     engine,
		extractor:  ext,
		hub:        h,
		aggregator: agg,
		addr:       addr,
		started:    time.Now(),
	}

	s.setupRoutes()
	return s
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

type extractionRequest struct {
	Date string `json:"date"`
}

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.started).Truncate(time.Second).String(),
			"archive": s.extractor.Config().ArchivePath,
			"clients": s.hub.Len(),
		})
	})

	s.engine.GET("/api/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.aggregator.Snapshot())
	})

	s.engine.POST("/api/extractions", s.handleExtract)
	s.engine.GET("/api/extractions/:date", s.handleDownload)

	s.engine.GET("/ws", s.handleWebSocket)

	s.engine.GET("/debug/pprof/", gin.WrapF(pprof.Index))
	s.engine.GET("/debug/pprof/cmdline", gin.WrapF(pprof.Cmdline))
	s.engine.GET("/debug/pprof/profile", gin.WrapF(pprof.Profile))
	s.engine.GET("/debug/pprof/symbol", gin.WrapF(pprof.Symbol))
	s.engine.GET("/debug/pprof/trace", gin.WrapF(pprof.Trace))
	s.engine.GET("/debug/pprof/heap", gin.WrapH(pprof.Handler("heap")))
	s.engine.GET("/debug/pprof/goroutine", gin.WrapH(pprof.Handler("goroutine")))
}

func (s *Server) handleExtract(c *gin.Context) {
	var req extractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}
	if strings.ContainsAny(req.Date, `/\`) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must not contain path separators"})
		return
	}

	rep, err := s.extractor.Run(c.Request.Context(), req.Date)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": output.FailureMessage(err), "report": rep})
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (s *Server) handleDownload(c *gin.Context) {
	path := s.extractor.OutputPath(c.Param("date"))
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, gin.H{"error": "no extraction for this date"})
		return
	}
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.File(path)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, archive.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, archive.ErrInvalidFormat):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Start runs the server until ctx is cancelled, then shuts it down.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
