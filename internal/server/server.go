// Package server exposes the resize pipeline over HTTP: an image resize
// endpoint, device introspection, health, and Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gogpu/gpuresize"
	"github.com/gogpu/gpuresize/internal/imaging"
)

// maxRequestBytes bounds uploaded image size (64 MiB).
const maxRequestBytes = 64 << 20

// Config controls a Server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// DisableCPUFallback makes resize requests fail with 503 when no GPU
	// is available instead of falling back to the CPU filters.
	DisableCPUFallback bool

	// Logger receives request and lifecycle logs. Nil means the package
	// default from gpuresize.Logger().
	Logger *slog.Logger
}

// Server routes HTTP requests to one resize processor.
type Server struct {
	cfg     Config
	proc    *gpuresize.Processor
	router  *mux.Router
	metrics *metrics
	log     *slog.Logger
	httpSrv *http.Server
}

// New builds a Server around the given processor.
func New(proc *gpuresize.Processor, cfg Config) *Server {
	log := cfg.Logger
	if log == nil {
		log = gpuresize.Logger()
	}
	s := &Server{
		cfg:     cfg,
		proc:    proc,
		router:  mux.NewRouter(),
		metrics: newMetrics(),
		log:     log,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/v1/device", s.handleDevice).Methods(http.MethodGet)
	s.router.HandleFunc("/v1/resize", s.handleResize).Methods(http.MethodPost)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry,
		promhttp.HandlerOpts{})).Methods(http.MethodGet)
}

// Handler returns the root HTTP handler, exported for tests and embedders.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", s.cfg.Addr)
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDevice(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"device_count": s.proc.DeviceCount(),
		"adapter":      s.proc.AdapterName(),
	})
}

// handleResize decodes the uploaded image, resizes it to the requested
// dimensions, and responds with the re-encoded result. Query parameters:
//
//	width, height  target dimensions (required)
//	filter         bilinear (default), approxbilinear, catmullrom
//	format         output format; defaults to the input format
//
// The bilinear filter runs on the GPU when a device is present; other
// filters, and the no-device fallback, run on the CPU.
func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	outW, err1 := strconv.Atoi(r.URL.Query().Get("width"))
	outH, err2 := strconv.Atoi(r.URL.Query().Get("height"))
	if err1 != nil || err2 != nil || outW <= 0 || outH <= 0 {
		s.fail(w, http.StatusBadRequest, "width and height must be positive integers")
		return
	}

	filter := imaging.FilterBilinear
	if f := r.URL.Query().Get("filter"); f != "" {
		var err error
		if filter, err = imaging.ParseFilter(f); err != nil {
			s.fail(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)

	// Raw mode: an octet-stream body is taken as RGBA bytes with declared
	// input dimensions, and the response is raw RGBA too. This is the
	// pipeline boundary without any codec in the way.
	if r.Header.Get("Content-Type") == "application/octet-stream" {
		s.handleResizeRaw(w, r, body, outW, outH, filter, start)
		return
	}

	pix, inW, inH, inFormat, err := imaging.Decode(body)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err.Error())
		return
	}

	out, path, err := s.resize(pix, inW, inH, outW, outH, filter)
	if err != nil {
		s.fail(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = inFormat
	}
	w.Header().Set("Content-Type", "image/"+format)
	if err := imaging.Encode(w, format, out, outW, outH); err != nil {
		// Headers are gone; all we can do is log.
		s.log.Warn("encode response failed", "format", format, "err", err)
		return
	}

	s.metrics.requestsTotal.WithLabelValues("ok").Inc()
	s.metrics.imagesProcessed.Inc()
	s.metrics.processingTime.WithLabelValues(path).Observe(time.Since(start).Seconds())
	s.log.Debug("resize served",
		"in", fmt.Sprintf("%dx%d", inW, inH),
		"out", fmt.Sprintf("%dx%d", outW, outH),
		"path", path,
		"elapsed", time.Since(start))
}

// handleResizeRaw serves the octet-stream variant: in_width and in_height
// query parameters declare the input dimensions, the body is raw RGBA, and
// so is the response.
func (s *Server) handleResizeRaw(w http.ResponseWriter, r *http.Request, body io.Reader, outW, outH int, filter imaging.Filter, start time.Time) {
	inW, err1 := strconv.Atoi(r.URL.Query().Get("in_width"))
	inH, err2 := strconv.Atoi(r.URL.Query().Get("in_height"))
	if err1 != nil || err2 != nil || inW <= 0 || inH <= 0 {
		s.fail(w, http.StatusBadRequest, "in_width and in_height must be positive integers for raw requests")
		return
	}
	pix, err := io.ReadAll(body)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(pix) != inW*inH*4 {
		s.fail(w, http.StatusBadRequest,
			fmt.Sprintf("body is %d bytes, want %d for %dx%d RGBA", len(pix), inW*inH*4, inW, inH))
		return
	}

	out, path, err := s.resize(pix, inW, inH, outW, outH, filter)
	if err != nil {
		s.fail(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(out)

	s.metrics.requestsTotal.WithLabelValues("ok").Inc()
	s.metrics.imagesProcessed.Inc()
	s.metrics.processingTime.WithLabelValues(path).Observe(time.Since(start).Seconds())
}

// resize picks the execution path: GPU for the bilinear filter with a device
// present, CPU otherwise (unless fallback is disabled).
func (s *Server) resize(pix []byte, inW, inH, outW, outH int, filter imaging.Filter) (out []byte, path string, err error) {
	if filter == imaging.FilterBilinear && s.proc.DeviceCount() > 0 {
		out = make([]byte, outW*outH*4)
		if st := s.proc.ResizeImage(pix, inW, inH, outW, outH, out); st == gpuresize.StatusOK {
			return out, "gpu", nil
		} else if s.cfg.DisableCPUFallback {
			return nil, "gpu", fmt.Errorf("gpu resize failed: %s", st)
		} else {
			s.log.Warn("gpu resize failed, falling back to cpu", "status", st)
		}
	}
	if s.cfg.DisableCPUFallback && s.proc.DeviceCount() == 0 {
		return nil, "none", fmt.Errorf("no GPU device available")
	}
	out, err = imaging.Resize(pix, inW, inH, outW, outH, filter)
	return out, "cpu", err
}

func (s *Server) fail(w http.ResponseWriter, code int, msg string) {
	s.metrics.requestsTotal.WithLabelValues("error").Inc()
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
