package identity

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/klinik/klinik/internal/platform/db"
	"github.com/klinik/klinik/internal/platform/validate"
)

// =========== Patient Repository ===========

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository { return &patientRepoPG{pool: pool} }

func (r *patientRepoPG) conn(ctx context.Context) db.Queryable { return db.Conn(ctx, r.pool) }

const patientCols = `id, patient_code, name, date_of_birth, gender, phone, address,
	emergency_contact, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.PatientCode, &p.Name, &p.DateOfBirth, &p.Gender, &p.Phone, &p.Address,
		&p.EmergencyContact, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, db.NotFound(err)
	}
	return &p, nil
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patients (id, patient_code, name, date_of_birth, gender, phone, address, emergency_contact)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at`,
		p.ID, p.PatientCode, p.Name, p.DateOfBirth, p.Gender, p.Phone, p.Address, p.EmergencyContact,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	err := r.conn(ctx).QueryRow(ctx, `
		UPDATE patients SET patient_code=$2, name=$3, date_of_birth=$4, gender=$5, phone=$6,
			address=$7, emergency_contact=$8, updated_at=NOW()
		WHERE id = $1
		RETURNING updated_at`,
		p.ID, p.PatientCode, p.Name, p.DateOfBirth, p.Gender, p.Phone, p.Address, p.EmergencyContact,
	).Scan(&p.UpdatedAt)
	return db.NotFound(err)
}

func (r *patientRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	return db.Affected(r.conn(ctx).Exec(ctx, `DELETE FROM patients WHERE id = $1`, id))
}

func (r *patientRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error) {
	w := &db.Where{}
	if q := params["q"]; q != "" {
		w.ILike([]string{"name", "patient_code", "phone"}, q)
	}
	if g := params["gender"]; g != "" {
		w.Eq("gender", g)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients`+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}
	page, args := w.Page(limit, offset)
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patients`+w.SQL()+` ORDER BY name`+page, args...)
	if err != nil {
		return nil, 0, err
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Patient, error) { return scanPatient(row) })
	return items, total, err
}

// =========== Doctor Repository ===========

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository { return &doctorRepoPG{pool: pool} }

func (r *doctorRepoPG) conn(ctx context.Context) db.Queryable { return db.Conn(ctx, r.pool) }

const doctorCols = `id, name, specialization, active, created_at, updated_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	if err := row.Scan(&d.ID, &d.Name, &d.Specialization, &d.Active, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, db.NotFound(err)
	}
	return &d, nil
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO doctors (id, name, specialization, active) VALUES ($1,$2,$3,$4)
		RETURNING created_at, updated_at`,
		d.ID, d.Name, d.Specialization, d.Active,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return scanDoctor(r.conn(ctx).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE id = $1`, id))
}

func (r *doctorRepoPG) Update(ctx context.Context, d *Doctor) error {
	err := r.conn(ctx).QueryRow(ctx, `
		UPDATE doctors SET name=$2, specialization=$3, active=$4, updated_at=NOW()
		WHERE id = $1
		RETURNING updated_at`,
		d.ID, d.Name, d.Specialization, d.Active,
	).Scan(&d.UpdatedAt)
	return db.NotFound(err)
}

func (r *doctorRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	return db.Affected(r.conn(ctx).Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id))
}

func (r *doctorRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Doctor, int, error) {
	w := &db.Where{}
	if s := params["specialization"]; s != "" {
		w.Eq("specialization", s)
	}
	if err := activeFilter(w, params); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM doctors`+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}
	page, args := w.Page(limit, offset)
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+doctorCols+` FROM doctors`+w.SQL()+` ORDER BY name`+page, args...)
	if err != nil {
		return nil, 0, err
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Doctor, error) { return scanDoctor(row) })
	return items, total, err
}

// =========== Nurse Repository ===========

type nurseRepoPG struct{ pool *pgxpool.Pool }

func NewNurseRepoPG(pool *pgxpool.Pool) NurseRepository { return &nurseRepoPG{pool: pool} }

func (r *nurseRepoPG) conn(ctx context.Context) db.Queryable { return db.Conn(ctx, r.pool) }

const nurseCols = `id, name, active, created_at, updated_at`

func scanNurse(row pgx.Row) (*Nurse, error) {
	var n Nurse
	if err := row.Scan(&n.ID, &n.Name, &n.Active, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, db.NotFound(err)
	}
	return &n, nil
}

func (r *nurseRepoPG) Create(ctx context.Context, n *Nurse) error {
	n.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO nurses (id, name, active) VALUES ($1,$2,$3)
		RETURNING created_at, updated_at`,
		n.ID, n.Name, n.Active,
	).Scan(&n.CreatedAt, &n.UpdatedAt)
}

func (r *nurseRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Nurse, error) {
	return scanNurse(r.conn(ctx).QueryRow(ctx, `SELECT `+nurseCols+` FROM nurses WHERE id = $1`, id))
}

func (r *nurseRepoPG) Update(ctx context.Context, n *Nurse) error {
	err := r.conn(ctx).QueryRow(ctx, `
		UPDATE nurses SET name=$2, active=$3, updated_at=NOW() WHERE id = $1
		RETURNING updated_at`,
		n.ID, n.Name, n.Active,
	).Scan(&n.UpdatedAt)
	return db.NotFound(err)
}

func (r *nurseRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	return db.Affected(r.conn(ctx).Exec(ctx, `DELETE FROM nurses WHERE id = $1`, id))
}

func (r *nurseRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Nurse, int, error) {
	w := &db.Where{}
	if err := activeFilter(w, params); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM nurses`+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}
	page, args := w.Page(limit, offset)
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+nurseCols+` FROM nurses`+w.SQL()+` ORDER BY name`+page, args...)
	if err != nil {
		return nil, 0, err
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Nurse, error) { return scanNurse(row) })
	return items, total, err
}

func activeFilter(w *db.Where, params map[string]string) error {
	v, ok := params["active"]
	if !ok {
		return nil
	}
	active, err := strconv.ParseBool(v)
	if err != nil {
		return validate.Errorf("active must be true or false, got %q", v)
	}
	w.Eq("active", active)
	return nil
}
