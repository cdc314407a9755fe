// Package accdb reads Microsoft Access databases through the mdbtools
// command line utilities.
package accdb

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/jefanko/app-updates/internal/config"
	"go.uber.org/zap"
)

// ErrFileNotFound is returned when the database file does not exist
var ErrFileNotFound = errors.New("access database not found")

// systemPrefixes mark tables Access maintains for itself
var systemPrefixes = []string{"MSys", "~", "USys"}

// Table holds one table's contents. When the table could not be read only
// Error and IsSystem are set.
type Table struct {
	Columns  []string                 `json:"columns,omitempty"`
	RowCount int                      `json:"rowCount"`
	Data     []map[string]interface{} `json:"data,omitempty"`
	IsSystem bool                     `json:"isSystem"`
	Error    string                   `json:"error,omitempty"`
}

// Database is the result of reading a whole file
type Database struct {
	FilePath      string           `json:"filePath"`
	FileName      string           `json:"fileName"`
	Tables        map[string]Table `json:"tables"`
	AllTableNames []string         `json:"allTableNames"`
}

// Runner executes a command and returns its standard output
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Reader reads Access files with mdb-tables and mdb-export
type Reader struct {
	tablesBin string
	exportBin string
	timeout   time.Duration
	run       Runner
	logger    *zap.Logger
}

// NewReader creates a Reader using the configured binaries
func NewReader(cfg *config.AccdbConfig, logger *zap.Logger) *Reader {
	r := &Reader{
		tablesBin: cfg.TablesBinary,
		exportBin: cfg.ExportBinary,
		timeout:   time.Duration(cfg.Timeout) * time.Second,
		run:       execRunner,
		logger:    logger,
	}
	if r.tablesBin == "" {
		r.tablesBin = "mdb-tables"
	}
	if r.exportBin == "" {
		r.exportBin = "mdb-export"
	}
	return r
}

// WithRunner replaces the command runner
func (r *Reader) WithRunner(run Runner) *Reader {
	r.run = run
	return r
}

// Read returns every table of the database at path, system tables
// included. A table that fails to export is reported in its Error field and
// does not fail the whole read.
func (r *Reader) Read(ctx context.Context, path string) (*Database, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat access database: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, path)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	names, err := r.tableNames(ctx, path)
	if err != nil {
		return nil, err
	}

	db := &Database{
		FilePath:      path,
		FileName:      filepath.Base(path),
		Tables:        make(map[string]Table, len(names)),
		AllTableNames: names,
	}
	for _, name := range names {
		system := IsSystemTable(name)
		table, err := r.readTable(ctx, path, name)
		if err != nil {
			r.logger.Warn("failed to read access table",
				zap.String("file", db.FileName),
				zap.String("table", name),
				zap.Error(err))
			db.Tables[name] = Table{IsSystem: system, Error: err.Error()}
			continue
		}
		table.IsSystem = system
		db.Tables[name] = table
	}

	r.logger.Info("access database read",
		zap.String("file", db.FileName),
		zap.Int("tables", len(names)))
	return db, nil
}

// IsSystemTable reports whether name is an Access system table
func IsSystemTable(name string) bool {
	for _, prefix := range systemPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func (r *Reader) tableNames(ctx context.Context, path string) ([]string, error) {
	// -1 prints one name per line, -S includes system tables
	out, err := r.run(ctx, r.tablesBin, "-1", "-S", path)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	var names []string
	for _, line := range strings.Split(string(out), "\n") {
		if name := strings.TrimRight(line, "\r"); strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func (r *Reader) readTable(ctx context.Context, path, name string) (Table, error) {
	out, err := r.run(ctx, r.exportBin, "-D", "%Y-%m-%dT%H:%M:%S", path, name)
	if err != nil {
		return Table{}, err
	}

	cr := csv.NewReader(bytes.NewReader(out))
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return Table{Columns: []string{}, Data: []map[string]interface{}{}}, nil
	}
	if err != nil {
		return Table{}, fmt.Errorf("failed to parse export header: %w", err)
	}

	rows := []map[string]interface{}{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("failed to parse export row %d: %w", len(rows)+1, err)
		}
		row := make(map[string]interface{}, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = nil
			}
		}
		rows = append(rows, row)
	}
	return Table{Columns: header, RowCount: len(rows), Data: rows}, nil
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}
