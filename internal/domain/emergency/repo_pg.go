package emergency

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/klinik/klinik/internal/platform/db"
	"github.com/klinik/klinik/internal/platform/validate"
)

// =========== Case Repository ===========

type caseRepoPG struct{ pool *pgxpool.Pool }

func NewCaseRepoPG(pool *pgxpool.Pool) CaseRepository { return &caseRepoPG{pool: pool} }

func (r *caseRepoPG) conn(ctx context.Context) db.Queryable { return db.Conn(ctx, r.pool) }

const caseSelect = `SELECT c.id, c.case_code, c.patient_id, c.complaint, c.triage, c.bed_id,
	c.doctor_id, c.status, c.admission_time, c.discharge_time, c.notes, c.created_at, c.updated_at,
	p.name, p.patient_code, p.date_of_birth, b.bed_number, d.name
	FROM igd_cases c
	JOIN patients p ON p.id = c.patient_id
	LEFT JOIN beds b ON b.id = c.bed_id
	LEFT JOIN doctors d ON d.id = c.doctor_id`

func scanCase(row pgx.Row) (*Case, error) {
	var c Case
	err := row.Scan(&c.ID, &c.CaseCode, &c.PatientID, &c.Complaint, &c.Triage, &c.BedID,
		&c.DoctorID, &c.Status, &c.AdmissionTime, &c.DischargeTime, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
		&c.PatientName, &c.PatientCode, &c.PatientDateOfBirth, &c.BedNumber, &c.DoctorName)
	if err != nil {
		return nil, db.NotFound(err)
	}
	return &c, nil
}

func (r *caseRepoPG) reload(ctx context.Context, c *Case) error {
	stored, err := r.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	*c = *stored
	return nil
}

func (r *caseRepoPG) Create(ctx context.Context, c *Case) error {
	c.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO igd_cases (id, case_code, patient_id, complaint, triage, bed_id, doctor_id,
			status, admission_time, discharge_time, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		c.ID, c.CaseCode, c.PatientID, c.Complaint, c.Triage, c.BedID, c.DoctorID,
		c.Status, c.AdmissionTime, c.DischargeTime, c.Notes)
	if err != nil {
		return err
	}
	return r.reload(ctx, c)
}

func (r *caseRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Case, error) {
	return scanCase(r.conn(ctx).QueryRow(ctx, caseSelect+` WHERE c.id = $1`, id))
}

func (r *caseRepoPG) Update(ctx context.Context, c *Case) error {
	err := db.Affected(r.conn(ctx).Exec(ctx, `
		UPDATE igd_cases SET case_code=$2, patient_id=$3, complaint=$4, triage=$5, bed_id=$6,
			doctor_id=$7, status=$8, admission_time=$9, discharge_time=$10, notes=$11, updated_at=NOW()
		WHERE id = $1`,
		c.ID, c.CaseCode, c.PatientID, c.Complaint, c.Triage, c.BedID,
		c.DoctorID, c.Status, c.AdmissionTime, c.DischargeTime, c.Notes))
	if err != nil {
		return err
	}
	return r.reload(ctx, c)
}

func (r *caseRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	return db.Affected(r.conn(ctx).Exec(ctx, `DELETE FROM igd_cases WHERE id = $1`, id))
}

func (r *caseRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Case, int, error) {
	w := &db.Where{}
	for _, k := range []string{"status", "triage"} {
		if v := params[k]; v != "" {
			w.Eq("c."+k, v)
		}
	}
	if v := params["patient_id"]; v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, 0, validate.Errorf("invalid patient_id")
		}
		w.Eq("c.patient_id", id)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM igd_cases c`+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}
	page, args := w.Page(limit, offset)
	rows, err := r.conn(ctx).Query(ctx, caseSelect+w.SQL()+` ORDER BY c.admission_time DESC`+page, args...)
	if err != nil {
		return nil, 0, err
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Case, error) { return scanCase(row) })
	return items, total, err
}

// =========== Bed Repository ===========

type bedRepoPG struct{ pool *pgxpool.Pool }

func NewBedRepoPG(pool *pgxpool.Pool) BedRepository { return &bedRepoPG{pool: pool} }

func (r *bedRepoPG) conn(ctx context.Context) db.Queryable { return db.Conn(ctx, r.pool) }

const bedSelect = `SELECT b.id, b.bed_number, b.status, b.patient_id, b.created_at, b.updated_at, p.name
	FROM beds b
	LEFT JOIN patients p ON p.id = b.patient_id`

func scanBed(row pgx.Row) (*Bed, error) {
	var b Bed
	err := row.Scan(&b.ID, &b.BedNumber, &b.Status, &b.PatientID, &b.CreatedAt, &b.UpdatedAt, &b.PatientName)
	if err != nil {
		return nil, db.NotFound(err)
	}
	return &b, nil
}

func (r *bedRepoPG) reload(ctx context.Context, b *Bed) error {
	stored, err := r.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	*b = *stored
	return nil
}

func (r *bedRepoPG) Create(ctx context.Context, b *Bed) error {
	b.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO beds (id, bed_number, status, patient_id) VALUES ($1,$2,$3,$4)`,
		b.ID, b.BedNumber, b.Status, b.PatientID)
	if err != nil {
		return err
	}
	return r.reload(ctx, b)
}

func (r *bedRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Bed, error) {
	return scanBed(r.conn(ctx).QueryRow(ctx, bedSelect+` WHERE b.id = $1`, id))
}

func (r *bedRepoPG) Update(ctx context.Context, b *Bed) error {
	err := db.Affected(r.conn(ctx).Exec(ctx, `
		UPDATE beds SET bed_number=$2, status=$3, patient_id=$4, updated_at=NOW() WHERE id = $1`,
		b.ID, b.BedNumber, b.Status, b.PatientID))
	if err != nil {
		return err
	}
	return r.reload(ctx, b)
}

func (r *bedRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	return db.Affected(r.conn(ctx).Exec(ctx, `DELETE FROM beds WHERE id = $1`, id))
}

func (r *bedRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Bed, int, error) {
	w := &db.Where{}
	if v := params["status"]; v != "" {
		w.Eq("b.status", v)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM beds b`+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}
	page, args := w.Page(limit, offset)
	rows, err := r.conn(ctx).Query(ctx, bedSelect+w.SQL()+` ORDER BY b.bed_number`+page, args...)
	if err != nil {
		return nil, 0, err
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Bed, error) { return scanBed(row) })
	return items, total, err
}

func (r *bedRepoPG) EnsureNumbers(ctx context.Context, numbers []int) (int, error) {
	created := 0
	for _, n := range numbers {
		tag, err := r.conn(ctx).Exec(ctx, `
			INSERT INTO beds (id, bed_number, status) VALUES ($1, $2, 'available')
			ON CONFLICT (bed_number) DO NOTHING`, uuid.New(), n)
		if err != nil {
			return created, err
		}
		created += int(tag.RowsAffected())
	}
	return created, nil
}
