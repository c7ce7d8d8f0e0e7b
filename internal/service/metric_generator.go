package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"carelink/internal/domain/entity"
	"carelink/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const generatedNote = "Auto-generated"

// MetricSample is one synthetic reading produced by the generator.
type MetricSample struct {
	Type  string
	Value string
	Unit  string
}

// SampleMetrics produces a realistic set of readings for the given
// instant. Values shift with the hour of day: resting heart rate at
// night, fasting glucose in the morning, step counts accumulating
// through the day. Sleep hours are only reported in the morning.
func SampleMetrics(at time.Time, rng *rand.Rand) []MetricSample {
	hour := at.Hour()

	var heartbeat int
	switch {
	case hour >= 6 && hour < 12:
		heartbeat = 65 + rng.Intn(11)
	case hour >= 12 && hour < 18:
		heartbeat = 70 + rng.Intn(16)
	case hour >= 18 && hour < 22:
		heartbeat = 68 + rng.Intn(11)
	default:
		heartbeat = 55 + rng.Intn(11)
	}

	systolic := 115 + rng.Intn(11)
	diastolic := 75 + rng.Intn(11)

	temperature := 97.8 + rng.Float64()*1.3

	bloodOxygen := 95 + rng.Intn(6)

	var sugarLevel int
	switch {
	case hour >= 6 && hour < 10:
		sugarLevel = 70 + rng.Intn(31)
	case hour >= 10 && hour < 14:
		sugarLevel = 100 + rng.Intn(41)
	default:
		sugarLevel = 80 + rng.Intn(41)
	}

	var steps int
	switch {
	case hour < 6:
		steps = rng.Intn(501)
	case hour < 12:
		steps = 2000 + rng.Intn(3001)
	case hour < 18:
		steps = 5000 + rng.Intn(5001)
	default:
		steps = 8000 + rng.Intn(7001)
	}

	calories := int(float64(steps)*0.04) + 1500 + rng.Intn(301)

	samples := []MetricSample{
		{entity.MetricTypeHeartbeat, fmt.Sprintf("%d", heartbeat), "bpm"},
		{entity.MetricTypeBloodPressure, fmt.Sprintf("%d/%d", systolic, diastolic), "mmHg"},
		{entity.MetricTypeTemperature, fmt.Sprintf("%.1f", temperature), "°F"},
		{entity.MetricTypeBloodOxygen, fmt.Sprintf("%d", bloodOxygen), "%"},
		{entity.MetricTypeSugarLevel, fmt.Sprintf("%d", sugarLevel), "mg/dL"},
		{entity.MetricTypeSteps, fmt.Sprintf("%d", steps), "steps"},
		{entity.MetricTypeCalories, fmt.Sprintf("%d", calories), "kcal"},
	}

	if hour >= 6 && hour < 9 {
		sleepHours := 6.5 + rng.Float64()*2.0
		samples = append(samples, MetricSample{entity.MetricTypeSleepHours, fmt.Sprintf("%.1f", sleepHours), "hours"})
	}

	return samples
}

// MetricGenerator periodically writes synthetic readings for every
// patient so dashboards stay populated without connected devices.
type MetricGenerator struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientProfileRepository
	metricRepo  repository.HealthMetricRepository
	rng         *rand.Rand
	cron        *cron.Cron
}

func NewMetricGenerator(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientProfileRepository,
	metricRepo repository.HealthMetricRepository,
) *MetricGenerator {
	return &MetricGenerator{
		db:          db,
		log:         log,
		patientRepo: patientRepo,
		metricRepo:  metricRepo,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start schedules the generator on the given cron expression and
// begins running it in the background.
func (g *MetricGenerator) Start(schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if err := g.GenerateForAllPatients(context.Background()); err != nil {
			g.log.Warnf("Metric generation run failed: %+v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule metric generator: %w", err)
	}

	c.Start()
	g.cron = c
	g.log.Infof("Metric generator scheduled: %s", schedule)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (g *MetricGenerator) Stop() {
	if g.cron != nil {
		ctx := g.cron.Stop()
		<-ctx.Done()
		g.log.Info("Metric generator stopped")
	}
}

// GenerateForAllPatients writes one current reading set per patient.
func (g *MetricGenerator) GenerateForAllPatients(ctx context.Context) error {
	patients, err := g.patientRepo.FindAll(g.db.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to list patients: %w", err)
	}

	now := time.Now().UTC()
	var generated int
	for _, patient := range patients {
		if err := g.generateForPatient(ctx, patient.UserID, now); err != nil {
			g.log.Warnf("Failed to generate metrics for patient %s: %+v", patient.UserID, err)
			continue
		}
		generated++
	}

	g.log.Debugf("Generated metrics for %d patients", generated)
	return nil
}

// SeedHistorical backfills readings for a new patient at 4-hour
// intervals over the given number of days, so their dashboard has
// history immediately after signup.
func (g *MetricGenerator) SeedHistorical(ctx context.Context, patientID uuid.UUID, days int) error {
	now := time.Now().UTC()
	var metrics []entity.HealthMetric

	for d := days; d >= 1; d-- {
		day := now.AddDate(0, 0, -d)
		for hour := 0; hour < 24; hour += 4 {
			at := time.Date(day.Year(), day.Month(), day.Day(), hour, g.rng.Intn(60), 0, 0, time.UTC)
			for _, sample := range SampleMetrics(at, g.rng) {
				metrics = append(metrics, entity.HealthMetric{
					PatientID:  patientID,
					MetricType: sample.Type,
					Value:      sample.Value,
					Unit:       sample.Unit,
					RecordedAt: at,
					Notes:      generatedNote,
				})
			}
		}
	}

	if err := g.metricRepo.CreateBatch(g.db.WithContext(ctx), metrics); err != nil {
		return fmt.Errorf("failed to seed historical metrics: %w", err)
	}

	g.log.Infof("Seeded %d historical metrics for patient %s", len(metrics), patientID)
	return nil
}

func (g *MetricGenerator) generateForPatient(ctx context.Context, patientID uuid.UUID, at time.Time) error {
	var metrics []entity.HealthMetric
	for _, sample := range SampleMetrics(at, g.rng) {
		metrics = append(metrics, entity.HealthMetric{
			PatientID:  patientID,
			MetricType: sample.Type,
			Value:      sample.Value,
			Unit:       sample.Unit,
			RecordedAt: at,
			Notes:      generatedNote,
		})
	}
	return g.metricRepo.CreateBatch(g.db.WithContext(ctx), metrics)
}
