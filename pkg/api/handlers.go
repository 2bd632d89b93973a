package api

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kaleidalab/qdakit/pkg/catalog"
	"github.com/kaleidalab/qdakit/pkg/qda"
)

// maxInspectBody caps the request body accepted by the inspect endpoint.
// 512 MiB covers any numeric table at the format's column and row limits.
const maxInspectBody = 512 << 20

// Server holds the API server state
type Server struct {
	catalog *catalog.Catalog
	config  ServerConfig
	metrics *Metrics
	logger  *zap.Logger
}

// NewServer creates a new API server
func NewServer(cat *catalog.Catalog, config ServerConfig, metrics *Metrics, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		catalog: cat,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

// handleHealth reports server liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleInspect decodes a QDA stream posted as the raw request body and
// returns its summary without touching the catalog.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxInspectBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	if len(body) == 0 {
		sendError(w, "Request body is required", http.StatusBadRequest)
		return
	}

	start := time.Now()
	table, err := qda.DecodeBytes(body)
	if err != nil {
		s.metrics.RecordCodecOperation("decode", false, time.Since(start))
		sendError(w, fmt.Sprintf("Invalid QDA stream: %v", err), http.StatusBadRequest)
		return
	}

	s.metrics.RecordCodecOperation("decode", true, time.Since(start))
	sendSuccess(w, table.Summary())
}

// handleListTables returns every catalog entry.
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	entries, err := s.catalog.List()
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to list tables: %v", err), http.StatusInternalServerError)
		return
	}

	sendSuccess(w, map[string]interface{}{"tables": entries, "count": len(entries)})
}

// handleGetTable returns the catalog entry for one table.
func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		sendError(w, "Table id is required", http.StatusBadRequest)
		return
	}

	entry, err := s.catalog.Get(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			sendError(w, "Table not found", http.StatusNotFound)
		} else {
			sendError(w, fmt.Sprintf("Failed to get table: %v", err), http.StatusInternalServerError)
		}
		return
	}

	sendSuccess(w, entry)
}

// handleGetTableData re-decodes a cataloged file and returns its column data.
func (s *Server) handleGetTableData(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		sendError(w, "Table id is required", http.StatusBadRequest)
		return
	}

	entry, err := s.catalog.Get(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			sendError(w, "Table not found", http.StatusNotFound)
		} else {
			sendError(w, fmt.Sprintf("Failed to get table: %v", err), http.StatusInternalServerError)
		}
		return
	}

	start := time.Now()
	table, err := qda.ReadFile(entry.Path)
	if err != nil {
		s.metrics.RecordCodecOperation("decode", false, time.Since(start))
		if errors.Is(err, fs.ErrNotExist) {
			sendError(w, "Cataloged file no longer exists", http.StatusNotFound)
		} else {
			sendError(w, fmt.Sprintf("Failed to read table data: %v", err), http.StatusInternalServerError)
		}
		return
	}
	s.metrics.RecordCodecOperation("decode", true, time.Since(start))

	sendSuccess(w, tableData(table))
}

// handleDeleteTable removes a catalog entry. The file itself is untouched.
func (s *Server) handleDeleteTable(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		sendError(w, "Table id is required", http.StatusBadRequest)
		return
	}

	if err := s.catalog.Remove(id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			sendError(w, "Table not found", http.StatusNotFound)
		} else {
			sendError(w, fmt.Sprintf("Failed to delete table: %v", err), http.StatusInternalServerError)
		}
		return
	}

	sendSuccess(w, map[string]string{"message": "Table removed from catalog"})
}

// tableData converts a decoded table into its JSON shape. Cells are trimmed
// to each column's row count and NaN becomes null, which also blanks the
// placeholder cells of string columns.
func tableData(t *qda.Table) TableData {
	dtypes := make([]string, t.Columns)
	columns := make([][]interface{}, t.Columns)
	for i := 0; i < t.Columns; i++ {
		dtypes[i] = t.Dtypes[i].String()

		col := t.Column(i)
		values := make([]interface{}, len(col))
		for j, v := range col {
			if math.IsNaN(v) {
				values[j] = nil
			} else {
				values[j] = v
			}
		}
		columns[i] = values
	}

	return TableData{
		Name:    t.Name,
		FileID:  t.FileID,
		Headers: append([]string(nil), t.Headers...),
		Dtypes:  dtypes,
		Rows:    append([]int(nil), t.Rows...),
		Columns: columns,
	}
}

// startMetricsUpdater periodically refreshes catalog gauges
func (s *Server) startMetricsUpdater() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		entries, err := s.catalog.List()
		if err != nil {
			s.logger.Warn("catalog stats refresh failed", zap.Error(err))
			continue
		}
		var size int64
		for _, entry := range entries {
			size += entry.Size
		}
		s.metrics.UpdateCatalogStats(len(entries), size)
	}
}
