package risk

import (
	"time"

	"github.com/google/uuid"

	"github.com/optohealth/monitor/internal/domain/monitoring"
)

// Risk levels produced by the classification model.
const (
	RiskLevelLow  = "Low Risk"
	RiskLevelHigh = "High Risk"
)

// Severity values observed from the scoring engine. The set is open ended;
// critical and high are the ones callers sort and style on.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityModerate = "moderate"
)

// FeatureVector is the fixed input schema of the scoring engine. The JSON
// field names are the wire contract; renaming any of them breaks the engine
// side.
type FeatureVector struct {
	HeartRate            float64 `json:"Heart Rate"`
	RespiratoryRate      float64 `json:"Respiratory Rate"`
	BodyTemperature      float64 `json:"Body Temperature"`
	OxygenSaturation     float64 `json:"Oxygen Saturation"`
	SystolicBP           float64 `json:"Systolic Blood Pressure"`
	DiastolicBP          float64 `json:"Diastolic Blood Pressure"`
	Age                  float64 `json:"Age"`
	DerivedBMI           float64 `json:"Derived_BMI"`
	DerivedHRV           float64 `json:"Derived_HRV"`
	DerivedPulsePressure float64 `json:"Derived_Pulse_Pressure"`
	DerivedMAP           float64 `json:"Derived_MAP"`
}

// RiskFactor is one named, explained contributor to a classification, in
// the significance order the engine produced.
type RiskFactor struct {
	Factor      string `json:"factor"`
	Value       string `json:"value"`
	Severity    string `json:"severity"`
	Explanation string `json:"explanation"`
}

// PredictionResult is the structured output of one scoring invocation.
type PredictionResult struct {
	RiskLevel     string             `json:"riskLevel"`
	Confidence    float64            `json:"confidence"`
	Probabilities map[string]float64 `json:"probabilities"`
	RiskFactors   []RiskFactor       `json:"riskFactors"`
}

// PatientMetadata is the patient state captured alongside an assessment for
// the audit trail.
type PatientMetadata struct {
	Age      int      `json:"age"`
	WeightKg *float64 `json:"weight,omitempty"`
	HeightCm *float64 `json:"height,omitempty"`
	BMI      float64  `json:"bmi"`
}

// RiskAssessment maps to the risk_assessment table. Records are written
// exactly once per real assessment and never updated or deleted.
type RiskAssessment struct {
	ID                  uuid.UUID             `db:"id" json:"id"`
	PatientID           uuid.UUID             `db:"patient_id" json:"patient_id"`
	RiskLevel           string                `db:"risk_level" json:"risk_level"`
	Confidence          float64               `db:"confidence" json:"confidence"`
	RiskFactors         []RiskFactor          `json:"risk_factors"`
	Probabilities       map[string]float64    `json:"probabilities"`
	VitalSignsSnapshot  monitoring.VitalSigns `json:"vital_signs_snapshot"`
	PatientMetadata     PatientMetadata       `json:"patient_metadata"`
	AssessmentTimestamp time.Time             `db:"assessment_timestamp" json:"assessment_timestamp"`
	CreatedAt           time.Time             `db:"created_at" json:"created_at"`
}

// AssessmentResponse is the unified result shape returned by both the real
// and the demo assessment paths.
type AssessmentResponse struct {
	PatientID           *uuid.UUID         `json:"patientId,omitempty"`
	PatientName         string             `json:"patientName,omitempty"`
	RiskLevel           string             `json:"riskLevel"`
	Confidence          float64            `json:"confidence"`
	Probabilities       map[string]float64 `json:"probabilities"`
	RiskFactors         []RiskFactor       `json:"riskFactors"`
	AssessmentTimestamp time.Time          `json:"assessmentTimestamp"`
}
