// Package server exposes qrcodegen's encoder over HTTP.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/qrcodegen/qrcodegen"
	"github.com/qrcodegen/qrcodegen/internal/config"
)

// Server serves generated QR codes over HTTP.
type Server struct {
	cfg *config.Config
	mux *http.ServeMux
}

// New builds a Server with its routes registered.
func New(cfg *config.Config) *Server {
	s := &Server{cfg: cfg, mux: http.NewServeMux()}
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/v1/qrcode", s.handleGenerate)
	return s
}

// ServeHTTP lets Server be used directly as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "ok")
}

// generateRequest is the body accepted by POST /v1/qrcode.
type generateRequest struct {
	Text   string `json:"text"`
	ECL    string `json:"ecl"`
	Format string `json:"format"`
	Scale  int    `json:"scale"`
	Border int    `json:"border"`
}

// moduleMatrix is the "json" format response: the dark/light grid plus the
// parameters that produced it, for callers that want to rasterize or render
// the symbol themselves.
type moduleMatrix struct {
	Version int      `json:"version"`
	Size    int      `json:"size"`
	ECL     int      `json:"ecl"`
	Mask    int      `json:"mask"`
	Modules [][]bool `json:"modules"`
}

// handleGenerate encodes req.Text into a QR code and renders it as SVG,
// PNG, or a JSON module matrix, selected by req.Format.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, "could not read request body", http.StatusBadRequest)
		return
	}

	var req generateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		http.Error(w, "text must not be empty", http.StatusBadRequest)
		return
	}

	ecl, err := s.parseECL(req.ECL)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	qr, err := qrcodegen.EncodeText(req.Text, ecl)
	if err != nil {
		slog.Error("encoding failed", "err", err)
		http.Error(w, "could not encode text as a QR code", http.StatusUnprocessableEntity)
		return
	}

	format := req.Format
	if format == "" {
		format = "svg"
	}
	scale := req.Scale
	if scale <= 0 {
		scale = s.cfg.Encode.Scale
	}
	border := req.Border
	if req.Border <= 0 {
		border = s.cfg.Encode.Border
	}

	slog.Info("qrcode request", "format", format, "ecl", ecl, "version", qr.Version(), "bytes", len(req.Text))

	switch format {
	case "svg":
		svg, err := qr.ToSVG(border)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		fmt.Fprint(w, svg)
	case "png":
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		if err := qr.ToPNG(w, scale, border); err != nil {
			slog.Error("rasterizing failed", "err", err)
		}
	case "json":
		s.writeModuleMatrix(w, qr)
	default:
		http.Error(w, "unsupported format: "+format, http.StatusBadRequest)
	}
}

func (s *Server) writeModuleMatrix(w http.ResponseWriter, qr *qrcodegen.QrCode) {
	matrix := make([][]bool, qr.Size())
	for y := range matrix {
		matrix[y] = make([]bool, qr.Size())
		for x := range matrix[y] {
			dark, err := qr.Module(x, y)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			matrix[y][x] = dark
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(moduleMatrix{
		Version: int(qr.Version()),
		Size:    qr.Size(),
		ECL:     int(qr.ErrorCorrectionLevel()),
		Mask:    int(qr.Mask()),
		Modules: matrix,
	})
}

func (s *Server) parseECL(raw string) (qrcodegen.ECL, error) {
	if raw == "" {
		raw = s.cfg.Encode.ErrorCorrectionLevel
	}
	switch strings.ToLower(raw) {
	case "low", "l":
		return qrcodegen.Low, nil
	case "medium", "m":
		return qrcodegen.Medium, nil
	case "quartile", "q":
		return qrcodegen.Quartile, nil
	case "high", "h":
		return qrcodegen.High, nil
	default:
		return 0, fmt.Errorf("unsupported error correction level: %q", raw)
	}
}
