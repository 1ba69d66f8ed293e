package monitoring

import (
	"time"

	"github.com/google/uuid"
)

// BloodPressure holds one systolic/diastolic reading in mmHg.
type BloodPressure struct {
	Systolic  float64 `json:"systolic"`
	Diastolic float64 `json:"diastolic"`
}

// VitalSigns is one timestamped set of physiological measurements. All
// fields are optional at capture time; absent values are stored as zero and
// normalized to zero again when fed to the risk pipeline.
type VitalSigns struct {
	HeartRate        float64       `json:"heartRate"`
	RespiratoryRate  float64       `json:"respiratoryRate"`
	Temperature      float64       `json:"temperature"`
	OxygenSaturation float64       `json:"oxygenSaturation"`
	BloodPressure    BloodPressure `json:"bloodPressure"`
}

// Snapshot maps to the monitoring_data table: one vitals reading for one
// patient at one point in time.
type Snapshot struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	PatientID  uuid.UUID  `db:"patient_id" json:"patient_id"`
	VitalSigns VitalSigns `json:"vital_signs"`
	RecordedAt time.Time  `db:"recorded_at" json:"recorded_at"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}
