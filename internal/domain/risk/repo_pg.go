package risk

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const assessmentCols = `id, patient_id, risk_level, confidence, risk_factors, probabilities,
	vital_signs_snapshot, patient_age, patient_weight, patient_height, patient_bmi,
	assessment_timestamp, created_at`

func scanAssessment(row pgx.Row) (*RiskAssessment, error) {
	var ra RiskAssessment
	var factors, probabilities, snapshot []byte
	err := row.Scan(&ra.ID, &ra.PatientID, &ra.RiskLevel, &ra.Confidence, &factors, &probabilities,
		&snapshot, &ra.PatientMetadata.Age, &ra.PatientMetadata.WeightKg, &ra.PatientMetadata.HeightCm,
		&ra.PatientMetadata.BMI, &ra.AssessmentTimestamp, &ra.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(factors, &ra.RiskFactors); err != nil {
		return nil, fmt.Errorf("decode risk factors: %w", err)
	}
	if err := json.Unmarshal(probabilities, &ra.Probabilities); err != nil {
		return nil, fmt.Errorf("decode probabilities: %w", err)
	}
	if err := json.Unmarshal(snapshot, &ra.VitalSignsSnapshot); err != nil {
		return nil, fmt.Errorf("decode vitals snapshot: %w", err)
	}
	return &ra, nil
}

func (r *repoPG) Create(ctx context.Context, ra *RiskAssessment) error {
	if ra.ID == uuid.Nil {
		ra.ID = uuid.New()
	}
	if ra.RiskFactors == nil {
		ra.RiskFactors = []RiskFactor{}
	}
	factors, err := json.Marshal(ra.RiskFactors)
	if err != nil {
		return fmt.Errorf("encode risk factors: %w", err)
	}
	probabilities, err := json.Marshal(ra.Probabilities)
	if err != nil {
		return fmt.Errorf("encode probabilities: %w", err)
	}
	snapshot, err := json.Marshal(ra.VitalSignsSnapshot)
	if err != nil {
		return fmt.Errorf("encode vitals snapshot: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO risk_assessment (id, patient_id, risk_level, confidence, risk_factors,
			probabilities, vital_signs_snapshot, patient_age, patient_weight, patient_height,
			patient_bmi, assessment_timestamp)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		ra.ID, ra.PatientID, ra.RiskLevel, ra.Confidence, factors,
		probabilities, snapshot, ra.PatientMetadata.Age, ra.PatientMetadata.WeightKg,
		ra.PatientMetadata.HeightCm, ra.PatientMetadata.BMI, ra.AssessmentTimestamp)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]*RiskAssessment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+assessmentCols+` FROM risk_assessment
		WHERE patient_id = $1 ORDER BY assessment_timestamp DESC LIMIT $2`, patientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*RiskAssessment
	for rows.Next() {
		ra, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, ra)
	}
	return items, rows.Err()
}
