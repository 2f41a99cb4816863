// Package storage persists simulation runs under a data directory, one
// directory per run holding metadata.json and a positions.csv of sampled
// star trajectories.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/gravsim/internal/gravity"
)

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
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Stars       int                `json:"stars"`
	Steps       int                `json:"steps"`
	Seed        int64              `json:"seed"`
	Spawner     string             `json:"spawner"`
	G           float32            `json:"g"`
	Theta       float32            `json:"theta"`
	Epsilon     float32            `json:"epsilon"`
	Scale       float32            `json:"scale"`
	TimeStep    float32            `json:"time_step"`
	ElapsedSec  float64            `json:"elapsed_sec"`
	Diagnostics map[string]float64 `json:"diagnostics"`
}

// Snapshot records the positions of the tracked stars at one sampled
// step. Every snapshot of a run must track the same stars in the same
// order.
type Snapshot struct {
	Step      int
	Positions []gravity.Vec2
}

// Save writes a run directory and returns its generated id. The ID and
// Timestamp fields of meta are filled in here.
func (s *Store) Save(meta RunMetadata, snapshots []Snapshot) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Spawner, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "positions.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(snapshots) == 0 {
		return runID, nil
	}

	header := []string{"step"}
	for i := range snapshots[0].Positions {
		header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, snap := range snapshots {
		row := []string{strconv.Itoa(snap.Step)}
		for _, pos := range snap.Positions {
			row = append(row,
				strconv.FormatFloat(float64(pos.X), 'f', 4, 32),
				strconv.FormatFloat(float64(pos.Y), 'f', 4, 32),
			)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSnapshots(runID string) ([]Snapshot, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "positions.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Snapshot{}, nil
	}

	snapshots := make([]Snapshot, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 3 || len(record)%2 != 1 {
			continue
		}

		step, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}

		positions := make([]gravity.Vec2, 0, (len(record)-1)/2)
		for i := 1; i+1 < len(record); i += 2 {
			x, errX := strconv.ParseFloat(record[i], 32)
			y, errY := strconv.ParseFloat(record[i+1], 32)
			if errX != nil || errY != nil {
				break
			}
			positions = append(positions, gravity.Vec2{X: float32(x), Y: float32(y)})
		}

		snapshots = append(snapshots, Snapshot{Step: step, Positions: positions})
	}

	return snapshots, nil
}
