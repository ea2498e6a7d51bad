package ui

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"benchgraph/adapters/api"
	"benchgraph/adapters/render"
	"benchgraph/app"
	"benchgraph/domain/chart"
	"benchgraph/domain/run"
	"benchgraph/internal"
	apperrors "benchgraph/internal/errors"
)

// ChartServer serves the interactive chart of one capture, its PNG snapshot
// and the series visibility API.
type ChartServer struct {
	router  *gin.Engine
	session *app.ChartSession
	html    *render.HTMLRenderer
	png     *render.PNGRenderer
	logger  *internal.Logger
}

// NewChartServer wires the routes. ginMode is passed to gin.SetMode.
func NewChartServer(session *app.ChartSession, html *render.HTMLRenderer, png *render.PNGRenderer, ginMode string, logger *internal.Logger) *ChartServer {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if ginMode != "" {
		gin.SetMode(ginMode)
	}
	s := &ChartServer{
		router:  gin.New(),
		session: session,
		html:    html.WithSync("/api/series"),
		png:     png,
		logger:  logger.With("ui"),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *ChartServer) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("%s %s %d %.2fms", c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), float64(time.Since(start).Microseconds())/1000)
	})
}

func (s *ChartServer) setupRoutes() {
	s.router.GET("/", s.handleChart)
	s.router.GET("/chart.png", s.handleChartPNG)
	s.router.POST("/reload", s.handleReload)
	s.router.GET("/history.json", s.handleHistory)
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	seriesAPI := http.StripPrefix("/api", api.NewRouter(s.session, s.logger))
	s.router.Any("/api/*path", gin.WrapH(seriesAPI))
}

// Handler exposes the router, mainly for tests
func (s *ChartServer) Handler() http.Handler {
	return s.router
}

// Start serves on addr until ctx is cancelled
func (s *ChartServer) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving chart on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *ChartServer) currentContext(c *gin.Context) (*chart.Context, bool) {
	fig := s.session.Current()
	if fig == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no chart loaded"})
		return nil, false
	}
	rctx := chart.NewContext()
	rctx.AddRoot(fig)
	return rctx, true
}

func (s *ChartServer) handleChart(c *gin.Context) {
	rctx, ok := s.currentContext(c)
	if !ok {
		return
	}
	defer rctx.Reset()

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := s.html.Render(c.Writer, rctx); err != nil {
		s.logger.Error("render chart: %v", err)
	}
}

func (s *ChartServer) handleChartPNG(c *gin.Context) {
	rctx, ok := s.currentContext(c)
	if !ok {
		return
	}
	defer rctx.Reset()

	c.Header("Content-Type", "image/png")
	c.Header("Cache-Control", "no-store")
	c.Status(http.StatusOK)
	if err := s.png.Render(c.Writer, rctx); err != nil {
		s.logger.Error("render png: %v", err)
	}
}

func (s *ChartServer) handleReload(c *gin.Context) {
	res, err := s.session.Reload(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if isInputError(err) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"run_id": res.RunID,
		"series": len(res.Series),
		"rows":   res.Clean.Report.DataRows,
	})
}

func (s *ChartServer) handleHistory(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
		return
	}
	runs, err := s.session.History(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if runs == nil {
		runs = []*run.Record{}
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// isInputError reports failures caused by the capture file rather than the server
func isInputError(err error) bool {
	for _, code := range []string{
		apperrors.CodeFileNotReadable,
		apperrors.CodeUnsupportedExtension,
		apperrors.CodeInvalidInput,
	} {
		if apperrors.HasCode(err, code) {
			return true
		}
	}
	return false
}
