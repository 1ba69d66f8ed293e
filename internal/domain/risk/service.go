package risk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/optohealth/monitor/internal/domain/monitoring"
	"github.com/optohealth/monitor/internal/domain/patient"
)

// DefaultHistoryLimit bounds History when the caller does not supply a
// limit.
const DefaultHistoryLimit = 10

// Demo profile defaults applied when the caller omits patient info.
const (
	demoDefaultAge      = 50
	demoDefaultWeightKg = 70.0
	demoDefaultHeightCm = 170.0
)

// DemoPatientInfo carries optional profile overrides for a demo
// assessment.
type DemoPatientInfo struct {
	Age      *int     `json:"age,omitempty"`
	WeightKg *float64 `json:"weight,omitempty"`
	HeightCm *float64 `json:"height,omitempty"`
}

// Service orchestrates the risk-assessment pipeline: feature derivation,
// scoring, and the audit trail. It holds no state between calls.
type Service struct {
	patients    patient.Repository
	vitals      monitoring.Repository
	assessments Repository
	scorer      Scorer
}

func NewService(patients patient.Repository, vitals monitoring.Repository, assessments Repository, scorer Scorer) *Service {
	return &Service{patients: patients, vitals: vitals, assessments: assessments, scorer: scorer}
}

// Assess runs the full pipeline for a stored patient: latest vitals lookup,
// feature derivation, scoring, and one audit record. Scoring failures
// propagate unchanged; no default prediction is ever substituted. A failed
// audit write surfaces as PersistenceError so the caller knows the
// assessment was computed but not recorded.
func (s *Service) Assess(ctx context.Context, patientID uuid.UUID) (*AssessmentResponse, error) {
	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPatientNotFound, patientID)
		}
		return nil, fmt.Errorf("look up patient %s: %w", patientID, err)
	}

	snap, err := s.vitals.LatestByPatient(ctx, patientID)
	if err != nil {
		if errors.Is(err, monitoring.ErrNoSnapshots) {
			return nil, fmt.Errorf("%w: %s", ErrNoVitals, patientID)
		}
		return nil, fmt.Errorf("look up vitals for %s: %w", patientID, err)
	}

	now := time.Now()
	profile := Profile{Age: p.Age, BirthDate: p.BirthDate, WeightKg: p.WeightKg, HeightCm: p.HeightCm}

	prediction, err := s.scorer.Score(ctx, DeriveFeatures(profile, snap.VitalSigns, now))
	if err != nil {
		return nil, err
	}

	ra := &RiskAssessment{
		PatientID:          p.ID,
		RiskLevel:          prediction.RiskLevel,
		Confidence:         prediction.Confidence,
		RiskFactors:        prediction.RiskFactors,
		Probabilities:      prediction.Probabilities,
		VitalSignsSnapshot: snap.VitalSigns,
		PatientMetadata: PatientMetadata{
			Age:      AgeYears(profile, now),
			WeightKg: p.WeightKg,
			HeightCm: p.HeightCm,
			// Recomputed on its own so the audit record does not depend on
			// the feature vector contents.
			BMI: BMI(p.WeightKg, p.HeightCm),
		},
		AssessmentTimestamp: now,
	}
	if err := s.assessments.Create(ctx, ra); err != nil {
		return nil, &PersistenceError{Err: err}
	}

	return &AssessmentResponse{
		PatientID:           &p.ID,
		PatientName:         p.Name,
		RiskLevel:           prediction.RiskLevel,
		Confidence:          prediction.Confidence,
		Probabilities:       prediction.Probabilities,
		RiskFactors:         prediction.RiskFactors,
		AssessmentTimestamp: now,
	}, nil
}

// AssessDemo scores ad hoc vitals against an ephemeral profile. Nothing is
// looked up and nothing is persisted: demo inputs are not real patient
// data, so they leave no audit trail.
func (s *Service) AssessDemo(ctx context.Context, vitals *monitoring.VitalSigns, info DemoPatientInfo) (*AssessmentResponse, error) {
	if vitals == nil {
		return nil, ErrVitalsRequired
	}

	age := demoDefaultAge
	if info.Age != nil {
		age = *info.Age
	}
	weight := demoDefaultWeightKg
	if info.WeightKg != nil {
		weight = *info.WeightKg
	}
	height := demoDefaultHeightCm
	if info.HeightCm != nil {
		height = *info.HeightCm
	}
	profile := Profile{Age: &age, WeightKg: &weight, HeightCm: &height}

	now := time.Now()
	prediction, err := s.scorer.Score(ctx, DeriveFeatures(profile, *vitals, now))
	if err != nil {
		return nil, err
	}

	return &AssessmentResponse{
		RiskLevel:           prediction.RiskLevel,
		Confidence:          prediction.Confidence,
		Probabilities:       prediction.Probabilities,
		RiskFactors:         prediction.RiskFactors,
		AssessmentTimestamp: now,
	}, nil
}

// History returns up to limit past assessments for the patient, most
// recent first. Read-only.
func (s *Service) History(ctx context.Context, patientID uuid.UUID, limit int) ([]*RiskAssessment, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.assessments.ListByPatient(ctx, patientID, limit)
}
