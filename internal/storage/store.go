package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/rootfind/internal/config"
	"github.com/san-kum/rootfind/internal/roots"
)

const (
	metadataFile   = "metadata.json"
	iterationsFile = "iterations.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

var traceHeader = []string{"k", "lower", "upper", "f_lower", "f_upper", "width", "status"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Func        string        `json:"func"`
	Lower       float64       `json:"lower"`
	Upper       float64       `json:"upper"`
	Tolerance   float64       `json:"tolerance"`
	MaxIter     int           `json:"max_iter,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
	Root        float64       `json:"root"`
	Iterations  int           `json:"iterations"`
	Evaluations int           `json:"evaluations"`
	Converged   bool          `json:"converged"`
	Status      roots.Outcome `json:"status"`
	Error       string        `json:"error,omitempty"`
}

// NewRunMetadata describes a finished run. runErr is the error Run
// returned, if any.
func NewRunMetadata(p *config.Problem, res *roots.Result, runErr error) RunMetadata {
	meta := RunMetadata{
		Name:        p.Name,
		Func:        p.Func,
		Lower:       p.Lower,
		Upper:       p.Upper,
		Tolerance:   p.Tolerance,
		MaxIter:     p.MaxIter,
		Timestamp:   time.Now(),
		Root:        res.Root,
		Iterations:  res.Iterations,
		Evaluations: res.Evaluations,
		Converged:   res.Converged,
		Status:      roots.Classify(res.Converged, runErr),
	}
	if runErr != nil {
		meta.Error = runErr.Error()
	}
	return meta
}

// Save writes the run under a fresh id and returns it.
func (s *Store) Save(meta RunMetadata, trace []roots.Iteration) (string, error) {
	name := meta.Name
	if name == "" {
		name = "run"
	}
	meta.ID = fmt.Sprintf("%s_%s", name, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	err := writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return "", err
	}

	err = writeFile(filepath.Join(runDir, iterationsFile), func(w io.Writer) error {
		return WriteTraceCSV(w, trace)
	})
	if err != nil {
		return "", err
	}
	return meta.ID, nil
}

// writeFile creates path, fills it with write and closes it, returning
// the first error including the one from Close.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns all stored runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadTrace(runID string) ([]roots.Iteration, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, iterationsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(traceHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []roots.Iteration{}, nil
	}

	trace := make([]roots.Iteration, 0, len(records)-1)
	for i, record := range records[1:] {
		it, err := parseIteration(record)
		if err != nil {
			return nil, fmt.Errorf("storage: %s line %d: %w", runID, i+2, err)
		}
		trace = append(trace, it)
	}
	return trace, nil
}

func parseIteration(record []string) (roots.Iteration, error) {
	var it roots.Iteration

	k, err := strconv.Atoi(record[0])
	if err != nil {
		return it, err
	}
	it.K = k

	fields := []*float64{&it.Lower, &it.Upper, &it.FLower, &it.FUpper, &it.Width}
	for i, dst := range fields {
		v, err := strconv.ParseFloat(record[i+1], 64)
		if err != nil {
			return it, err
		}
		*dst = v
	}

	if err := it.Status.UnmarshalText([]byte(record[6])); err != nil {
		return it, err
	}
	return it, nil
}
