package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/tilegrid/pkg/buildinfo"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/grid"
	"github.com/matzehuels/tilegrid/pkg/pipeline"
)

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatHTML: "text/html; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatText: "text/plain; charset=utf-8",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// queryFloat parses an optional float query parameter.
func queryFloat(r *http.Request, name string, def float64) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be a number (got %q)", name, v)
	}
	return f, nil
}

type columnsResponse struct {
	Columns   int     `json:"columns"`
	Width     float64 `json:"width"`
	CellWidth float64 `json:"cell_width"`
	Gap       float64 `json:"gap"`
}

func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("width") == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "width is required"))
		return
	}
	width, err := queryFloat(r, "width", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	cellWidth, err := queryFloat(r, "cell_width", grid.DefaultCellWidth)
	if err != nil {
		writeError(w, err)
		return
	}
	gap, err := queryFloat(r, "gap", grid.DefaultGap)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateScreenWidth(width); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, columnsResponse{
		Columns:   grid.ColumnCount(width, cellWidth, gap),
		Width:     width,
		CellWidth: cellWidth,
		Gap:       gap,
	})
}

type geometryRequest struct {
	Col        int     `json:"col"`
	Row        int     `json:"row"`
	ColSpan    int     `json:"col_span"`
	RowSpan    int     `json:"row_span"`
	CellWidth  float64 `json:"cell_width"`
	CellHeight float64 `json:"cell_height"`
}

type geometryResponse struct {
	Placement grid.Placement         `json:"placement"`
	Size      grid.Size              `json:"size"`
	Valid     bool                   `json:"is_valid"`
	Errors    []grid.ValidationError `json:"errors"`
}

func (s *Server) handleGeometry(w http.ResponseWriter, r *http.Request) {
	var req geometryRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.CellWidth == 0 {
		req.CellWidth = grid.DefaultCellWidth
	}
	if req.CellHeight == 0 {
		req.CellHeight = grid.DefaultCellHeight
	}
	if err := errors.ValidateCellSize(req.CellWidth, req.CellHeight); err != nil {
		writeError(w, err)
		return
	}

	it := grid.Item{Col: req.Col, Row: req.Row, ColSpan: req.ColSpan, RowSpan: req.RowSpan}
	errs := grid.ValidatePositionAll(it)
	if errs == nil {
		errs = []grid.ValidationError{}
	}
	writeJSON(w, http.StatusOK, geometryResponse{
		Placement: it.Placement(),
		Size:      grid.PixelSize(req.ColSpan, req.RowSpan, req.CellWidth, req.CellHeight),
		Valid:     len(errs) == 0,
		Errors:    errs,
	})
}

// layoutRequest is the body of /v1/validate and /v1/render.
type layoutRequest struct {
	Items []grid.Item `json:"items"`
	pipeline.Options
}

func (s *Server) decodeLayout(w http.ResponseWriter, r *http.Request) (layoutRequest, error) {
	var req layoutRequest
	if err := decode(w, r, &req); err != nil {
		return req, err
	}
	if err := errors.ValidateItems(req.Items); err != nil {
		return req, err
	}
	return req, nil
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeLayout(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	req.Formats = nil

	res, err := s.runner.Validate(r.Context(), req.Items, req.Options)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Report())
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	req, err := s.decodeLayout(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	req.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), req.Items, req.Options)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Report-Id", res.ID)
	w.Header().Set("X-Column-Count", strconv.Itoa(res.Columns))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid request body: %v", err)
	}
	return nil
}
