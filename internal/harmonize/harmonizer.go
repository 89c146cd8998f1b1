package harmonize

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/weather-harmonizer/internal/domain"
	"github.com/couchcryptid/weather-harmonizer/internal/observability"
	"github.com/couchcryptid/weather-harmonizer/internal/source"
)

// SourceKind selects the loader variant for a source.
type SourceKind int

const (
	// KindScalar is a flat time-of-day feed needing unit conversion.
	KindScalar SourceKind = iota
	// KindNested is the per-station hourly feed, already metric.
	KindNested
)

// SourceSpec describes one upstream file to harmonize.
type SourceSpec struct {
	Path string
	Tag  string
	Kind SourceKind
}

// Outputs names the three artifacts of a run.
type Outputs struct {
	// MergedPath is the pretty-printed array of harmonized observations.
	MergedPath string
	// InspectionPath is a newline-delimited mirror of the same rows.
	InspectionPath string
	// StationsPath is the station directory.
	StationsPath string
}

// Sink optionally receives the harmonized rows after the artifacts are
// written. A nil sink disables publishing.
type Sink interface {
	PublishBatch(ctx context.Context, rows domain.Table) error
}

// Harmonizer sequences loaders, unit conversion, column reconciliation,
// and artifact writing into one run.
type Harmonizer struct {
	scalar  source.Loader
	nested  source.Loader
	sink    Sink
	logger  *slog.Logger
	metrics *observability.Metrics

	nullThreshold float64
	dropHighNull  bool
}

// New creates a Harmonizer. Pass a nil sink to disable publishing.
func New(scalar, nested source.Loader, sink Sink, logger *slog.Logger, metrics *observability.Metrics, nullThreshold float64, dropHighNull bool) *Harmonizer {
	return &Harmonizer{
		scalar:        scalar,
		nested:        nested,
		sink:          sink,
		logger:        logger,
		metrics:       metrics,
		nullThreshold: nullThreshold,
		dropHighNull:  dropHighNull,
	}
}

// redundantColumns are removed from the merged artifact after station
// extraction: they repeat the station directory, or are the raw datetime
// already split into date/Time, or the provenance tag.
var redundantColumns = []string{"station_name", "latitude", "longitude", "dh_utc", "source_file"}

// Run executes one harmonization batch: load every source in order,
// convert scalar sources to metric units, reconcile columns, split out the
// station directory, and persist the artifacts. Prior artifacts at the
// same paths are overwritten.
func (h *Harmonizer) Run(ctx context.Context, specs []SourceSpec, out Outputs) error {
	merged, err := h.loadAll(specs)
	if err != nil {
		return err
	}

	start := time.Now()
	MergeColumns(merged, DefaultMergeRules())

	dropped := DropEmptyColumns(merged)
	if len(dropped) > 0 {
		h.metrics.ColumnsDropped.Add(float64(len(dropped)))
		h.logger.Info("dropped empty columns", "columns", dropped)
	}

	if high := HighNullColumns(merged, h.nullThreshold); len(high) > 0 {
		h.logger.Warn("columns above null-ratio threshold",
			"threshold", h.nullThreshold, "columns", high)
		if h.dropHighNull {
			merged.DropColumns(high...)
			h.metrics.ColumnsDropped.Add(float64(len(high)))
			h.logger.Info("dropped high-null columns", "columns", high)
		}
	}

	stations := ExtractStations(merged)
	h.metrics.StationsExtracted.Set(float64(len(stations)))

	// The directory now carries the station attributes; keeping them on
	// every row would be redundant.
	merged.DropColumns(redundantColumns...)
	h.metrics.RowsHarmonized.Add(float64(len(merged)))
	h.metrics.StageDuration.WithLabelValues("harmonize").Observe(time.Since(start).Seconds())

	if err := h.persist(merged, stations, out); err != nil {
		return err
	}

	if h.sink != nil {
		if err := h.sink.PublishBatch(ctx, merged); err != nil {
			return fmt.Errorf("publish harmonized rows: %w", err)
		}
	}

	h.logger.Info("harmonization complete",
		"rows", len(merged),
		"stations", len(stations),
		"columns", len(merged.Columns()),
	)
	return nil
}

// loadAll runs every loader in spec order and concatenates the batches,
// converting the scalar sources to metric units as they arrive.
func (h *Harmonizer) loadAll(specs []SourceSpec) (domain.Table, error) {
	start := time.Now()
	var merged domain.Table

	for _, spec := range specs {
		var (
			batch domain.Table
			err   error
		)
		switch spec.Kind {
		case KindScalar:
			batch, err = h.scalar.Load(spec.Path, spec.Tag)
			if err == nil {
				domain.ConvertUnits(batch)
			}
		case KindNested:
			batch, err = h.nested.Load(spec.Path, spec.Tag)
		default:
			err = fmt.Errorf("unknown source kind %d", spec.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", spec.Tag, err)
		}

		h.metrics.RowsLoaded.WithLabelValues(spec.Tag).Add(float64(len(batch)))
		merged = append(merged, batch...)
	}

	h.metrics.StageDuration.WithLabelValues("load").Observe(time.Since(start).Seconds())
	return merged, nil
}

func (h *Harmonizer) persist(merged, stations domain.Table, out Outputs) error {
	start := time.Now()

	if err := writeJSONArray(out.StationsPath, stations); err != nil {
		return fmt.Errorf("write station directory: %w", err)
	}
	if err := writeJSONArray(out.MergedPath, merged); err != nil {
		return fmt.Errorf("write merged artifact: %w", err)
	}
	if err := writeNDJSON(out.InspectionPath, merged); err != nil {
		return fmt.Errorf("write inspection artifact: %w", err)
	}

	h.metrics.StageDuration.WithLabelValues("persist").Observe(time.Since(start).Seconds())
	return nil
}

// writeJSONArray writes rows as a pretty-printed JSON array, creating
// parent directories as needed. nil tables still produce a valid empty
// array.
func writeJSONArray(path string, rows domain.Table) error {
	if rows == nil {
		rows = domain.Table{}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// writeNDJSON writes one JSON object per line for lightweight downstream
// scanning.
func writeNDJSON(path string, rows domain.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, rec := range rows {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return f.Close()
}
