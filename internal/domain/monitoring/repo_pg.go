package monitoring

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const snapshotCols = `id, patient_id, heart_rate, respiratory_rate, temperature,
	oxygen_saturation, bp_systolic, bp_diastolic, recorded_at, created_at`

func scanSnapshot(row pgx.Row) (*Snapshot, error) {
	var s Snapshot
	err := row.Scan(&s.ID, &s.PatientID,
		&s.VitalSigns.HeartRate, &s.VitalSigns.RespiratoryRate, &s.VitalSigns.Temperature,
		&s.VitalSigns.OxygenSaturation, &s.VitalSigns.BloodPressure.Systolic, &s.VitalSigns.BloodPressure.Diastolic,
		&s.RecordedAt, &s.CreatedAt)
	return &s, err
}

func (r *repoPG) Create(ctx context.Context, s *Snapshot) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO monitoring_data (id, patient_id, heart_rate, respiratory_rate, temperature,
			oxygen_saturation, bp_systolic, bp_diastolic, recorded_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		s.ID, s.PatientID,
		s.VitalSigns.HeartRate, s.VitalSigns.RespiratoryRate, s.VitalSigns.Temperature,
		s.VitalSigns.OxygenSaturation, s.VitalSigns.BloodPressure.Systolic, s.VitalSigns.BloodPressure.Diastolic,
		s.RecordedAt)
	return err
}

func (r *repoPG) LatestByPatient(ctx context.Context, patientID uuid.UUID) (*Snapshot, error) {
	s, err := scanSnapshot(r.pool.QueryRow(ctx, `
		SELECT `+snapshotCols+` FROM monitoring_data
		WHERE patient_id = $1 ORDER BY recorded_at DESC LIMIT 1`, patientID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoSnapshots
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Snapshot, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM monitoring_data WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+snapshotCols+` FROM monitoring_data
		WHERE patient_id = $1 ORDER BY recorded_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}
