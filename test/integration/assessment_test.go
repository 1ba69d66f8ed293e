package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/optohealth/monitor/internal/domain/monitoring"
	"github.com/optohealth/monitor/internal/domain/patient"
	"github.com/optohealth/monitor/internal/domain/risk"
)

func createTestPatient(t *testing.T, ctx context.Context) *patient.Patient {
	t.Helper()
	repo := patient.NewRepoPG(globalDB.Pool)
	p := &patient.Patient{
		Name:           "Ana Moreira",
		Age:            ptrInt(64),
		WeightKg:       ptrFloat(82),
		HeightCm:       ptrFloat(175),
		ContactEmail:   ptrStr("ana.moreira@example.com"),
		MedicalHistory: []string{"hypertension", "type 2 diabetes"},
	}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("create patient: %v", err)
	}
	return p
}

func recordVitals(t *testing.T, ctx context.Context, patientID uuid.UUID, vs monitoring.VitalSigns, at time.Time) {
	t.Helper()
	repo := monitoring.NewRepoPG(globalDB.Pool)
	err := repo.Create(ctx, &monitoring.Snapshot{
		PatientID:  patientID,
		VitalSigns: vs,
		RecordedAt: at,
	})
	if err != nil {
		t.Fatalf("record vitals: %v", err)
	}
}

func TestPatientRepo(t *testing.T) {
	ctx := context.Background()
	repo := patient.NewRepoPG(globalDB.Pool)

	created := createTestPatient(t, ctx)
	if created.ID == uuid.Nil {
		t.Fatal("expected non-nil ID after create")
	}

	fetched, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get patient: %v", err)
	}
	if fetched.Name != "Ana Moreira" {
		t.Errorf("unexpected name %q", fetched.Name)
	}
	if len(fetched.MedicalHistory) != 2 || fetched.MedicalHistory[0] != "hypertension" {
		t.Errorf("medical history did not round-trip: %v", fetched.MedicalHistory)
	}

	_, err = repo.GetByID(ctx, uuid.New())
	if !errors.Is(err, patient.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestMonitoringRepo_LatestByPatient(t *testing.T) {
	ctx := context.Background()
	repo := monitoring.NewRepoPG(globalDB.Pool)

	p := createTestPatient(t, ctx)

	_, err := repo.LatestByPatient(ctx, p.ID)
	if !errors.Is(err, monitoring.ErrNoSnapshots) {
		t.Fatalf("expected ErrNoSnapshots before any reading, got %v", err)
	}

	base := time.Now().UTC().Truncate(time.Second)
	recordVitals(t, ctx, p.ID, monitoring.VitalSigns{HeartRate: 70}, base.Add(-time.Hour))
	recordVitals(t, ctx, p.ID, monitoring.VitalSigns{HeartRate: 130}, base)

	latest, err := repo.LatestByPatient(ctx, p.ID)
	if err != nil {
		t.Fatalf("latest vitals: %v", err)
	}
	if latest.VitalSigns.HeartRate != 130 {
		t.Errorf("expected newest reading, got heart rate %v", latest.VitalSigns.HeartRate)
	}
}

func TestAssessmentRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := risk.NewRepoPG(globalDB.Pool)

	p := createTestPatient(t, ctx)

	base := time.Now().UTC().Truncate(time.Second)
	for i, level := range []string{risk.RiskLevelLow, risk.RiskLevelLow, risk.RiskLevelHigh} {
		ra := &risk.RiskAssessment{
			PatientID:  p.ID,
			RiskLevel:  level,
			Confidence: 0.8,
			RiskFactors: []risk.RiskFactor{
				{Factor: "Tachycardia", Value: "130 bpm", Severity: risk.SeverityHigh, Explanation: "Heart rate of 130 bpm exceeds the normal range"},
			},
			Probabilities: map[string]float64{risk.RiskLevelLow: 0.2, risk.RiskLevelHigh: 0.8},
			VitalSignsSnapshot: monitoring.VitalSigns{
				HeartRate:     130,
				BloodPressure: monitoring.BloodPressure{Systolic: 150, Diastolic: 95},
			},
			PatientMetadata: risk.PatientMetadata{
				Age: 64, WeightKg: ptrFloat(82), HeightCm: ptrFloat(175), BMI: 26.78,
			},
			AssessmentTimestamp: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, ra); err != nil {
			t.Fatalf("create assessment: %v", err)
		}
	}

	items, err := repo.ListByPatient(ctx, p.ID, 2)
	if err != nil {
		t.Fatalf("list assessments: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected limit to apply, got %d records", len(items))
	}
	if items[0].RiskLevel != risk.RiskLevelHigh {
		t.Errorf("expected most recent assessment first, got %q", items[0].RiskLevel)
	}
	if items[0].AssessmentTimestamp.Before(items[1].AssessmentTimestamp) {
		t.Error("assessments must be ordered most recent first")
	}
	if len(items[0].RiskFactors) != 1 || items[0].RiskFactors[0].Factor != "Tachycardia" {
		t.Errorf("risk factors did not round-trip: %+v", items[0].RiskFactors)
	}
	if items[0].Probabilities[risk.RiskLevelHigh] != 0.8 {
		t.Errorf("probabilities did not round-trip: %v", items[0].Probabilities)
	}
	if items[0].VitalSignsSnapshot.BloodPressure.Systolic != 150 {
		t.Errorf("vitals snapshot did not round-trip: %+v", items[0].VitalSignsSnapshot)
	}
}

// TestAssessPipeline exercises the full pipeline against real storage and a
// stub scoring process.
func TestAssessPipeline(t *testing.T) {
	ctx := context.Background()

	script := filepath.Join(t.TempDir(), "engine.sh")
	stub := `#!/bin/sh
echo '{"riskLevel":"High Risk","confidence":0.87,"probabilities":{"Low Risk":0.13,"High Risk":0.87},"riskFactors":[{"factor":"Tachycardia","value":"130 bpm","severity":"high","explanation":"Heart rate of 130 bpm exceeds the normal range"}]}'
`
	if err := os.WriteFile(script, []byte(stub), 0o755); err != nil {
		t.Fatal(err)
	}

	patientRepo := patient.NewRepoPG(globalDB.Pool)
	vitalsRepo := monitoring.NewRepoPG(globalDB.Pool)
	assessmentRepo := risk.NewRepoPG(globalDB.Pool)
	scorer := risk.NewSubprocessScorer(risk.SubprocessConfig{
		Command: "/bin/sh",
		Args:    []string{script},
	})
	svc := risk.NewService(patientRepo, vitalsRepo, assessmentRepo, scorer)

	p := createTestPatient(t, ctx)

	_, err := svc.Assess(ctx, p.ID)
	if !errors.Is(err, risk.ErrNoVitals) {
		t.Fatalf("expected ErrNoVitals before any reading, got %v", err)
	}

	recordVitals(t, ctx, p.ID, monitoring.VitalSigns{
		HeartRate:        130,
		RespiratoryRate:  22,
		Temperature:      38.1,
		OxygenSaturation: 93,
		BloodPressure:    monitoring.BloodPressure{Systolic: 150, Diastolic: 95},
	}, time.Now().UTC())

	resp, err := svc.Assess(ctx, p.ID)
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	if resp.RiskLevel != risk.RiskLevelHigh {
		t.Errorf("expected %q, got %q", risk.RiskLevelHigh, resp.RiskLevel)
	}
	if resp.PatientID == nil || *resp.PatientID != p.ID {
		t.Errorf("expected patient id in response, got %v", resp.PatientID)
	}

	history, err := svc.History(ctx, p.ID, 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected exactly one audit record, got %d", len(history))
	}
	ra := history[0]
	if ra.VitalSignsSnapshot.HeartRate != 130 {
		t.Errorf("audit record must carry the assessed vitals: %+v", ra.VitalSignsSnapshot)
	}
	if ra.PatientMetadata.Age != 64 {
		t.Errorf("expected metadata age 64, got %d", ra.PatientMetadata.Age)
	}

	_, err = svc.Assess(ctx, uuid.New())
	if !errors.Is(err, risk.ErrPatientNotFound) {
		t.Errorf("expected ErrPatientNotFound, got %v", err)
	}
}
