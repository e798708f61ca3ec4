package diagnostics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/klinik/klinik/internal/platform/db"
	"github.com/klinik/klinik/internal/platform/validate"
	"github.com/klinik/klinik/pkg/caldate"
)

type labTestRepoPG struct{ pool *pgxpool.Pool }

func NewLabTestRepoPG(pool *pgxpool.Pool) LabTestRepository { return &labTestRepoPG{pool: pool} }

func (r *labTestRepoPG) conn(ctx context.Context) db.Queryable { return db.Conn(ctx, r.pool) }

const labTestSelect = `SELECT l.id, l.test_code, l.patient_id, l.doctor_id, l.test_type, l.test_name,
	l.status, l.priority, l.requested_date, l.sample_collected_at, l.completed_at, l.notes,
	l.created_at, l.updated_at, p.name, p.patient_code, d.name
	FROM lab_tests l
	JOIN patients p ON p.id = l.patient_id
	LEFT JOIN doctors d ON d.id = l.doctor_id`

func scanLabTest(row pgx.Row) (*LabTest, error) {
	var t LabTest
	err := row.Scan(&t.ID, &t.TestCode, &t.PatientID, &t.DoctorID, &t.TestType, &t.TestName,
		&t.Status, &t.Priority, &t.RequestedDate, &t.SampleCollectedAt, &t.CompletedAt, &t.Notes,
		&t.CreatedAt, &t.UpdatedAt, &t.PatientName, &t.PatientCode, &t.DoctorName)
	if err != nil {
		return nil, db.NotFound(err)
	}
	return &t, nil
}

func (r *labTestRepoPG) reload(ctx context.Context, t *LabTest) error {
	stored, err := r.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	*t = *stored
	return nil
}

func (r *labTestRepoPG) Create(ctx context.Context, t *LabTest) error {
	t.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO lab_tests (id, test_code, patient_id, doctor_id, test_type, test_name, status,
			priority, requested_date, sample_collected_at, completed_at, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		t.ID, t.TestCode, t.PatientID, t.DoctorID, t.TestType, t.TestName, t.Status,
		t.Priority, t.RequestedDate, t.SampleCollectedAt, t.CompletedAt, t.Notes)
	if err != nil {
		return err
	}
	return r.reload(ctx, t)
}

func (r *labTestRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*LabTest, error) {
	return scanLabTest(r.conn(ctx).QueryRow(ctx, labTestSelect+` WHERE l.id = $1`, id))
}

func (r *labTestRepoPG) Update(ctx context.Context, t *LabTest) error {
	err := db.Affected(r.conn(ctx).Exec(ctx, `
		UPDATE lab_tests SET test_code=$2, patient_id=$3, doctor_id=$4, test_type=$5, test_name=$6,
			status=$7, priority=$8, requested_date=$9, sample_collected_at=$10, completed_at=$11,
			notes=$12, updated_at=NOW()
		WHERE id = $1`,
		t.ID, t.TestCode, t.PatientID, t.DoctorID, t.TestType, t.TestName,
		t.Status, t.Priority, t.RequestedDate, t.SampleCollectedAt, t.CompletedAt, t.Notes))
	if err != nil {
		return err
	}
	return r.reload(ctx, t)
}

func (r *labTestRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	return db.Affected(r.conn(ctx).Exec(ctx, `DELETE FROM lab_tests WHERE id = $1`, id))
}

func (r *labTestRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*LabTest, int, error) {
	w := &db.Where{}
	for _, k := range []string{"status", "priority", "test_type"} {
		if v := params[k]; v != "" {
			w.Eq("l."+k, v)
		}
	}
	if v := params["patient_id"]; v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, 0, validate.Errorf("invalid patient_id")
		}
		w.Eq("l.patient_id", id)
	}
	if v := params["completed_from"]; v != "" {
		from, err := parseInstant(v)
		if err != nil {
			return nil, 0, err
		}
		w.Gte("l.completed_at", from)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM lab_tests l`+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}
	page, args := w.Page(limit, offset)
	rows, err := r.conn(ctx).Query(ctx, labTestSelect+w.SQL()+` ORDER BY l.requested_date DESC`+page, args...)
	if err != nil {
		return nil, 0, err
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*LabTest, error) { return scanLabTest(row) })
	return items, total, err
}

// parseInstant accepts a timestamp or a bare date, read as local midnight.
func parseInstant(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	d, err := caldate.Parse(v)
	if err != nil {
		return time.Time{}, validate.Errorf("completed_from: %v", err)
	}
	return d.In(time.Local), nil
}
