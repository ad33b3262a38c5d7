package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/morphogen/internal/ring"
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
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Timestamp time.Time   `json:"timestamp"`
	Cells     int         `json:"cells"`
	Params    ring.Params `json:"params"`
	Dt        float64     `json:"dt"`
	Duration  float64     `json:"duration"`
	MaxGrowth float64     `json:"max_growth"`
	Dominant  string      `json:"dominant"`
}

// Save writes one solved trajectory: metadata.json plus a profiles.csv with
// a row per sample time holding both morphogen profiles.
func (s *Store) Save(meta RunMetadata, times []float64, profiles []ring.Profile) (string, error) {
	if len(times) != len(profiles) {
		return "", fmt.Errorf("storage: %d times but %d profiles", len(times), len(profiles))
	}

	runID := fmt.Sprintf("%s_%d", meta.Name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "profiles.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(profiles) == 0 {
		return runID, nil
	}

	n := len(profiles[0].X)
	header := []string{"time"}
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	for i := 0; i < n; i++ {
		header = append(header, fmt.Sprintf("y%d", i))
	}

	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range profiles {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}

		for _, val := range profiles[i].X {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		for _, val := range profiles[i].Y {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
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
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadProfiles(runID string) ([]ring.Profile, []float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "profiles.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []ring.Profile{}, []float64{}, nil
	}

	n := (len(records[0]) - 1) / 2
	times := make([]float64, 0, len(records)-1)
	profiles := make([]ring.Profile, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != 2*n+1 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		prof := ring.Profile{X: make([]float64, n), Y: make([]float64, n)}
		ok := true
		for j := 0; j < n && ok; j++ {
			if prof.X[j], err = strconv.ParseFloat(record[1+j], 64); err != nil {
				ok = false
			}
		}
		for j := 0; j < n && ok; j++ {
			if prof.Y[j], err = strconv.ParseFloat(record[1+n+j], 64); err != nil {
				ok = false
			}
		}
		if !ok {
			continue
		}

		times = append(times, t)
		profiles = append(profiles, prof)
	}

	return profiles, times, nil
}

// Export writes a run's metadata as indented JSON.
func (s *Store) Export(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
