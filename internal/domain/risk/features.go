package risk

import (
	"time"

	"github.com/optohealth/monitor/internal/domain/monitoring"
)

const (
	// defaultAge is assumed when neither a birth date nor a stored age is
	// available.
	defaultAge = 50
	// fallbackBMI is used when weight or height is missing, or height is
	// zero.
	fallbackBMI = 25.0
	// placeholderHRV stands in until a real heart-rate-variability input
	// exists. The model was trained against this constant; do not derive a
	// value here.
	placeholderHRV = 50.0
)

// Profile is the subset of patient attributes the feature deriver needs.
type Profile struct {
	Age       *int
	BirthDate *time.Time
	WeightKg  *float64
	HeightCm  *float64
}

// AgeYears resolves the patient's age in whole years as of now. A birth
// date wins over the stored age field; the year difference is corrected
// down when the anniversary has not yet passed this year.
func AgeYears(p Profile, now time.Time) int {
	if p.BirthDate != nil {
		b := *p.BirthDate
		age := now.Year() - b.Year()
		if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
			age--
		}
		return age
	}
	if p.Age != nil {
		return *p.Age
	}
	return defaultAge
}

// BMI computes weight(kg)/height(m)² with the fallback constant when either
// input is absent or height is zero.
func BMI(weightKg, heightCm *float64) float64 {
	if weightKg == nil || heightCm == nil || *heightCm == 0 {
		return fallbackBMI
	}
	heightM := *heightCm / 100
	return *weightKg / (heightM * heightM)
}

// DeriveFeatures computes the full feature vector from a patient profile
// and a vitals snapshot. It is a total function: missing vitals are already
// zero-valued, and pulse pressure passes through unclamped even when the
// reading is implausible.
func DeriveFeatures(p Profile, v monitoring.VitalSigns, now time.Time) FeatureVector {
	pulsePressure := v.BloodPressure.Systolic - v.BloodPressure.Diastolic
	meanArterialPressure := v.BloodPressure.Diastolic + pulsePressure/3

	return FeatureVector{
		HeartRate:            v.HeartRate,
		RespiratoryRate:      v.RespiratoryRate,
		BodyTemperature:      v.Temperature,
		OxygenSaturation:     v.OxygenSaturation,
		SystolicBP:           v.BloodPressure.Systolic,
		DiastolicBP:          v.BloodPressure.Diastolic,
		Age:                  float64(AgeYears(p, now)),
		DerivedBMI:           BMI(p.WeightKg, p.HeightCm),
		DerivedHRV:           placeholderHRV,
		DerivedPulsePressure: pulsePressure,
		DerivedMAP:           meanArterialPressure,
	}
}
