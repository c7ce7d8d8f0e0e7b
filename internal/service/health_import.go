package service

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"carelink/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrUndecodableFile = errors.New("file could not be decoded as health data")

// metricMapping normalizes wearable export field names to the canonical
// metric types and units used across the rest of the system.
var metricMapping = map[string]struct {
	Type string
	Unit string
}{
	"heart_rate":     {entity.MetricTypeHeartbeat, "bpm"},
	"heartbeat":      {entity.MetricTypeHeartbeat, "bpm"},
	"blood_pressure": {entity.MetricTypeBloodPressure, "mmHg"},
	"temperature":    {entity.MetricTypeTemperature, "°F"},
	"spo2":           {entity.MetricTypeBloodOxygen, "%"},
	"blood_oxygen":   {entity.MetricTypeBloodOxygen, "%"},
	"sugar_level":    {entity.MetricTypeSugarLevel, "mg/dL"},
	"glucose":        {entity.MetricTypeSugarLevel, "mg/dL"},
	"sleep":          {entity.MetricTypeSleepHours, "hours"},
	"sleep_hours":    {entity.MetricTypeSleepHours, "hours"},
	"steps":          {entity.MetricTypeSteps, "steps"},
	"calories":       {entity.MetricTypeCalories, "kcal"},
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// HealthImportService decodes uploaded CSV or JSON exports into health
// metric rows. Entries with unrecognized metric names are skipped, not
// treated as errors.
type HealthImportService struct {
	log *logrus.Logger
}

func NewHealthImportService(log *logrus.Logger) *HealthImportService {
	return &HealthImportService{log: log}
}

type importEntry struct {
	Timestamp string `json:"timestamp"`
	Metric    string `json:"metric"`
	Value     string `json:"value"`
}

// Parse decodes the file content into metrics for the given patient.
// The format is chosen by file extension: .csv uses CSV, .json and
// .txt are treated as JSON.
func (s *HealthImportService) Parse(patientID uuid.UUID, filename string, r io.Reader) ([]entity.HealthMetric, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return s.parseCSV(patientID, r)
	case ".json", ".txt":
		return s.parseJSON(patientID, r)
	default:
		return nil, ErrUndecodableFile
	}
}

// parseCSV expects a header row with timestamp, metric and value
// columns in any order.
func (s *HealthImportService) parseCSV(patientID uuid.UUID, r io.Reader) ([]entity.HealthMetric, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// Exports from wearables are messy; a row with a stray field must not
	// fail the whole file.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, ErrUndecodableFile
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	tsCol, okTS := cols["timestamp"]
	metricCol, okMetric := cols["metric"]
	valueCol, okValue := cols["value"]
	if !okTS || !okMetric || !okValue {
		return nil, ErrUndecodableFile
	}

	var metrics []entity.HealthMetric
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				// Bad row, keep reading the ones after it.
				continue
			}
			return nil, ErrUndecodableFile
		}
		if len(row) <= tsCol || len(row) <= metricCol || len(row) <= valueCol {
			continue
		}

		metric, ok := s.mapEntry(patientID, importEntry{
			Timestamp: row[tsCol],
			Metric:    row[metricCol],
			Value:     row[valueCol],
		})
		if ok {
			metrics = append(metrics, metric)
		}
	}

	return metrics, nil
}

// parseJSON accepts either a bare array of entries or an object with a
// top-level "data" array.
func (s *HealthImportService) parseJSON(patientID uuid.UUID, r io.Reader) ([]entity.HealthMetric, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrUndecodableFile
	}

	var entries []importEntry
	if err := json.Unmarshal(content, &entries); err != nil {
		var wrapper struct {
			Data []importEntry `json:"data"`
		}
		if err := json.Unmarshal(content, &wrapper); err != nil {
			return nil, ErrUndecodableFile
		}
		entries = wrapper.Data
	}

	var metrics []entity.HealthMetric
	for _, e := range entries {
		metric, ok := s.mapEntry(patientID, e)
		if ok {
			metrics = append(metrics, metric)
		}
	}

	return metrics, nil
}

func (s *HealthImportService) mapEntry(patientID uuid.UUID, e importEntry) (entity.HealthMetric, bool) {
	name := strings.ToLower(strings.TrimSpace(e.Metric))
	mapping, ok := metricMapping[name]
	if !ok {
		if name != "" {
			s.log.Debugf("Skipping unrecognized metric %q during import", name)
		}
		return entity.HealthMetric{}, false
	}

	value := strings.TrimSpace(e.Value)
	if value == "" {
		return entity.HealthMetric{}, false
	}

	recordedAt := parseTimestamp(e.Timestamp)

	return entity.HealthMetric{
		PatientID:  patientID,
		MetricType: mapping.Type,
		Value:      value,
		Unit:       mapping.Unit,
		RecordedAt: recordedAt,
		Notes:      "Imported from file",
	}, true
}

func parseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}
