package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	pdd "github.com/alnah/go-pdd"
	"github.com/alnah/go-pdd/internal/metrics"
	"github.com/alnah/go-pdd/web"
)

// GeneratePath is the generation endpoint.
const GeneratePath = "/api/generate-docx"

const defaultBodyLimit = "1M"

// Generator produces documents from validated requests.
type Generator interface {
	Generate(ctx context.Context, req pdd.Request) (*pdd.Result, error)
}

// Compile-time interface check.
var _ Generator = (*pdd.Generator)(nil)

// Config controls routing and request limits.
type Config struct {
	BodyLimit string       // echo size syntax, "1M" when empty
	RateLimit float64      // requests per second per client IP, 0 disables
	Demo      bool         // serve the demo page at /
	Metrics   http.Handler // mounted at /metrics when non-nil
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Server) {
		if r != nil {
			s.recorder = r
		}
	}
}

// Server is the HTTP front of a Generator. It implements http.Handler.
type Server struct {
	cfg      Config
	echo     *echo.Echo
	gen      Generator
	logger   *zap.Logger
	recorder metrics.Recorder
}

// New builds the router. Panics if cfg.BodyLimit is not a valid size,
// as echo does.
func New(gen Generator, cfg Config, opts ...Option) *Server {
	if cfg.BodyLimit == "" {
		cfg.BodyLimit = defaultBodyLimit
	}

	s := &Server{
		cfg:      cfg,
		echo:     echo.New(),
		gen:      gen,
		logger:   zap.NewNop(),
		recorder: metrics.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:     true,
		LogURI:        true,
		LogStatus:     true,
		LogLatency:    true,
		LogRequestID:  true,
		LogRemoteIP:   true,
		LogError:      true,
		HandleError:   true,
		LogValuesFunc: s.logRequest,
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics))
	}

	api := e.Group("/api", middleware.BodyLimit(cfg.BodyLimit))
	if cfg.RateLimit > 0 {
		api.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(cfg.RateLimit),
				Burst:     int(math.Ceil(cfg.RateLimit)),
				ExpiresIn: 3 * time.Minute,
			}),
		}))
	}
	api.POST(strings.TrimPrefix(GeneratePath, "/api"), s.generateDocx)

	if cfg.Demo {
		e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Filesystem: http.FS(web.FS()),
			Skipper:    skipStatic,
		}))
	}

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) generateDocx(c echo.Context) error {
	start := time.Now()
	outcome := metrics.OutcomeError
	defer func() {
		s.recorder.ObserveRequest(outcome, time.Since(start))
	}()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			outcome = metrics.OutcomeInvalidInput
			return he
		}
		return s.generationFailed(c, fmt.Errorf("reading body: %w", err))
	}

	req, err := pdd.DecodeRequest(body)
	if err != nil {
		if errors.Is(err, pdd.ErrInvalidInput) {
			outcome = metrics.OutcomeInvalidInput
			return c.JSON(http.StatusBadRequest, pdd.ErrorResponse{Error: invalidInputMessage(err)})
		}
		return s.generationFailed(c, err)
	}

	res, err := s.gen.Generate(c.Request().Context(), *req)
	if err != nil {
		if errors.Is(err, pdd.ErrInvalidInput) {
			outcome = metrics.OutcomeInvalidInput
			return c.JSON(http.StatusBadRequest, pdd.ErrorResponse{Error: invalidInputMessage(err)})
		}
		return s.generationFailed(c, err)
	}

	outcome = metrics.OutcomeSuccess
	s.recorder.ObserveDocument(len(res.Document))
	return c.JSON(http.StatusOK, res.Response())
}

func invalidInputMessage(err error) string {
	if errors.Is(err, pdd.ErrListsRequired) {
		return MessageListsRequired
	}
	return MessageTitleRequired
}

func (s *Server) generationFailed(c echo.Context, err error) error {
	s.logger.Error("document generation failed",
		zap.String("request_id", requestID(c)),
		zap.Error(err),
	)
	return c.JSON(http.StatusInternalServerError, pdd.ErrorResponse{Error: MessageGenerationFailed})
}

// handleError renders errors as {"error": "..."}. Unexpected errors on the
// generation endpoint use the generic generation message.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	} else {
		s.logger.Error("unhandled error",
			zap.String("request_id", requestID(c)),
			zap.Error(err),
		)
		if c.Request().URL.Path == GeneratePath {
			msg = MessageGenerationFailed
		}
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, pdd.ErrorResponse{Error: msg})
	}
	if err != nil {
		s.logger.Warn("writing error response", zap.Error(err))
	}
}

func (s *Server) logRequest(_ echo.Context, v middleware.RequestLoggerValues) error {
	fields := []zap.Field{
		zap.String("method", v.Method),
		zap.String("uri", v.URI),
		zap.Int("status", v.Status),
		zap.Duration("latency", v.Latency),
		zap.String("request_id", v.RequestID),
		zap.String("remote_ip", v.RemoteIP),
	}
	if v.Error != nil {
		s.logger.Warn("request", append(fields, zap.Error(v.Error))...)
		return nil
	}
	s.logger.Info("request", fields...)
	return nil
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// skipStatic leaves API routes and non-read methods to the router.
func skipStatic(c echo.Context) bool {
	r := c.Request()
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/api/") ||
		r.URL.Path == "/healthz" ||
		r.URL.Path == "/metrics"
}
