package service

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"carelink/internal/domain/entity"
)

func sampleAt(t *testing.T, hour int) map[string]MetricSample {
	t.Helper()

	at := time.Date(2025, time.May, 1, hour, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(42))

	byType := map[string]MetricSample{}
	for _, s := range SampleMetrics(at, rng) {
		byType[s.Type] = s
	}
	return byType
}

func TestSampleMetricsCoverage(t *testing.T) {
	samples := sampleAt(t, 14)

	want := []string{
		entity.MetricTypeHeartbeat,
		entity.MetricTypeBloodPressure,
		entity.MetricTypeTemperature,
		entity.MetricTypeBloodOxygen,
		entity.MetricTypeSugarLevel,
		entity.MetricTypeSteps,
		entity.MetricTypeCalories,
	}
	for _, typ := range want {
		if _, ok := samples[typ]; !ok {
			t.Errorf("missing %s sample", typ)
		}
	}
	if _, ok := samples[entity.MetricTypeSleepHours]; ok {
		t.Error("sleep hours should not be reported in the afternoon")
	}
}

func TestSampleMetricsSleepWindow(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		samples := sampleAt(t, hour)
		_, hasSleep := samples[entity.MetricTypeSleepHours]
		wantSleep := hour >= 6 && hour < 9
		if hasSleep != wantSleep {
			t.Errorf("hour %d: sleep reported = %v, want %v", hour, hasSleep, wantSleep)
		}
	}
}

func TestSampleMetricsRanges(t *testing.T) {
	for hour := 0; hour < 24; hour += 3 {
		samples := sampleAt(t, hour)

		hb, err := strconv.Atoi(samples[entity.MetricTypeHeartbeat].Value)
		if err != nil || hb < 55 || hb > 85 {
			t.Errorf("hour %d: heartbeat %q out of range", hour, samples[entity.MetricTypeHeartbeat].Value)
		}

		bp := samples[entity.MetricTypeBloodPressure].Value
		parts := strings.Split(bp, "/")
		if len(parts) != 2 {
			t.Fatalf("hour %d: blood pressure %q not systolic/diastolic", hour, bp)
		}
		sys, _ := strconv.Atoi(parts[0])
		dia, _ := strconv.Atoi(parts[1])
		if sys < 115 || sys > 125 || dia < 75 || dia > 85 {
			t.Errorf("hour %d: blood pressure %q out of range", hour, bp)
		}

		temp, err := strconv.ParseFloat(samples[entity.MetricTypeTemperature].Value, 64)
		if err != nil || temp < 97.7 || temp > 99.2 {
			t.Errorf("hour %d: temperature %q out of range", hour, samples[entity.MetricTypeTemperature].Value)
		}

		ox, err := strconv.Atoi(samples[entity.MetricTypeBloodOxygen].Value)
		if err != nil || ox < 95 || ox > 100 {
			t.Errorf("hour %d: blood oxygen %q out of range", hour, samples[entity.MetricTypeBloodOxygen].Value)
		}
	}
}

func TestSampleMetricsStepsAccumulate(t *testing.T) {
	night := sampleAt(t, 2)
	evening := sampleAt(t, 20)

	nightSteps, _ := strconv.Atoi(night[entity.MetricTypeSteps].Value)
	eveningSteps, _ := strconv.Atoi(evening[entity.MetricTypeSteps].Value)

	if nightSteps > 500 {
		t.Errorf("night steps = %d, want <= 500", nightSteps)
	}
	if eveningSteps < 8000 {
		t.Errorf("evening steps = %d, want >= 8000", eveningSteps)
	}
}

func TestSampleMetricsFastingGlucose(t *testing.T) {
	morning := sampleAt(t, 7)

	sugar, err := strconv.Atoi(morning[entity.MetricTypeSugarLevel].Value)
	if err != nil || sugar < 70 || sugar > 100 {
		t.Errorf("morning glucose %q outside fasting range", morning[entity.MetricTypeSugarLevel].Value)
	}
}

func TestSampleMetricsUnits(t *testing.T) {
	samples := sampleAt(t, 7)

	wantUnits := map[string]string{
		entity.MetricTypeHeartbeat:     "bpm",
		entity.MetricTypeBloodPressure: "mmHg",
		entity.MetricTypeTemperature:   "°F",
		entity.MetricTypeBloodOxygen:   "%",
		entity.MetricTypeSugarLevel:    "mg/dL",
		entity.MetricTypeSteps:         "steps",
		entity.MetricTypeCalories:      "kcal",
		entity.MetricTypeSleepHours:    "hours",
	}
	for typ, unit := range wantUnits {
		if got := samples[typ].Unit; got != unit {
			t.Errorf("%s unit = %q, want %q", typ, got, unit)
		}
	}
}
