package examination

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/klinik/klinik/internal/platform/db"
	"github.com/klinik/klinik/internal/platform/validate"
)

type examinationRepoPG struct{ pool *pgxpool.Pool }

func NewExaminationRepoPG(pool *pgxpool.Pool) ExaminationRepository {
	return &examinationRepoPG{pool: pool}
}

func (r *examinationRepoPG) conn(ctx context.Context) db.Queryable { return db.Conn(ctx, r.pool) }

const examCols = `id, appointment_id, patient_id, doctor_id, nurse_id, examination_type,
	subjective, objective, assessment, plan, vital_signs, examination_date, status,
	created_at, updated_at`

func scanExamination(row pgx.Row) (*Examination, error) {
	var e Examination
	err := row.Scan(&e.ID, &e.AppointmentID, &e.PatientID, &e.DoctorID, &e.NurseID, &e.ExaminationType,
		&e.Subjective, &e.Objective, &e.Assessment, &e.Plan, &e.VitalSigns, &e.ExaminationDate, &e.Status,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, db.NotFound(err)
	}
	return &e, nil
}

func (r *examinationRepoPG) Create(ctx context.Context, e *Examination) error {
	e.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO medical_examinations (id, appointment_id, patient_id, doctor_id, nurse_id,
			examination_type, subjective, objective, assessment, plan, vital_signs,
			examination_date, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING created_at, updated_at`,
		e.ID, e.AppointmentID, e.PatientID, e.DoctorID, e.NurseID,
		e.ExaminationType, e.Subjective, e.Objective, e.Assessment, e.Plan, e.VitalSigns,
		e.ExaminationDate, e.Status,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
}

func (r *examinationRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Examination, error) {
	return scanExamination(r.conn(ctx).QueryRow(ctx,
		`SELECT `+examCols+` FROM medical_examinations WHERE id = $1`, id))
}

func (r *examinationRepoPG) Update(ctx context.Context, e *Examination) error {
	err := r.conn(ctx).QueryRow(ctx, `
		UPDATE medical_examinations SET appointment_id=$2, patient_id=$3, doctor_id=$4, nurse_id=$5,
			examination_type=$6, subjective=$7, objective=$8, assessment=$9, plan=$10,
			vital_signs=$11, examination_date=$12, status=$13, updated_at=NOW()
		WHERE id = $1
		RETURNING updated_at`,
		e.ID, e.AppointmentID, e.PatientID, e.DoctorID, e.NurseID,
		e.ExaminationType, e.Subjective, e.Objective, e.Assessment, e.Plan,
		e.VitalSigns, e.ExaminationDate, e.Status,
	).Scan(&e.UpdatedAt)
	return db.NotFound(err)
}

func (r *examinationRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	return db.Affected(r.conn(ctx).Exec(ctx, `DELETE FROM medical_examinations WHERE id = $1`, id))
}

func (r *examinationRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Examination, int, error) {
	w := &db.Where{}
	for _, k := range []string{"appointment_id", "patient_id", "doctor_id", "nurse_id"} {
		v := params[k]
		if v == "" {
			continue
		}
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, 0, validate.Errorf("invalid %s", k)
		}
		w.Eq(k, id)
	}
	for _, k := range []string{"examination_type", "status"} {
		if v := params[k]; v != "" {
			w.Eq(k, v)
		}
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM medical_examinations`+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}
	page, args := w.Page(limit, offset)
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+examCols+` FROM medical_examinations`+w.SQL()+` ORDER BY examination_date DESC`+page, args...)
	if err != nil {
		return nil, 0, err
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Examination, error) { return scanExamination(row) })
	return items, total, err
}
