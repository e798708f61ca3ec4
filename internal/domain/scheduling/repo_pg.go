package scheduling

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/klinik/klinik/internal/platform/db"
	"github.com/klinik/klinik/internal/platform/validate"
	"github.com/klinik/klinik/pkg/caldate"
)

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

func (r *appointmentRepoPG) conn(ctx context.Context) db.Queryable { return db.Conn(ctx, r.pool) }

const appointmentSelect = `SELECT a.id, a.appointment_code, a.patient_id, a.doctor_id, a.department,
	a.appointment_date, a.appointment_time, a.complaint, a.status, a.queue_number, a.notes,
	a.created_at, a.updated_at, p.name, p.patient_code, d.name
	FROM appointments a
	JOIN patients p ON p.id = a.patient_id
	LEFT JOIN doctors d ON d.id = a.doctor_id`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.AppointmentCode, &a.PatientID, &a.DoctorID, &a.Department,
		&a.AppointmentDate, &a.AppointmentTime, &a.Complaint, &a.Status, &a.QueueNumber, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt, &a.PatientName, &a.PatientCode, &a.DoctorName)
	if err != nil {
		return nil, db.NotFound(err)
	}
	return &a, nil
}

// reload replaces a with the stored row so joined names are filled in.
func (r *appointmentRepoPG) reload(ctx context.Context, a *Appointment) error {
	stored, err := r.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	*a = *stored
	return nil
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointments (id, appointment_code, patient_id, doctor_id, department,
			appointment_date, appointment_time, complaint, status, queue_number, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		a.ID, a.AppointmentCode, a.PatientID, a.DoctorID, a.Department,
		a.AppointmentDate, a.AppointmentTime, a.Complaint, a.Status, a.QueueNumber, a.Notes)
	if err != nil {
		return err
	}
	return r.reload(ctx, a)
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.conn(ctx).QueryRow(ctx, appointmentSelect+` WHERE a.id = $1`, id))
}

func (r *appointmentRepoPG) Update(ctx context.Context, a *Appointment) error {
	err := db.Affected(r.conn(ctx).Exec(ctx, `
		UPDATE appointments SET appointment_code=$2, patient_id=$3, doctor_id=$4, department=$5,
			appointment_date=$6, appointment_time=$7, complaint=$8, status=$9, queue_number=$10,
			notes=$11, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.AppointmentCode, a.PatientID, a.DoctorID, a.Department,
		a.AppointmentDate, a.AppointmentTime, a.Complaint, a.Status, a.QueueNumber, a.Notes))
	if err != nil {
		return err
	}
	return r.reload(ctx, a)
}

func (r *appointmentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	return db.Affected(r.conn(ctx).Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id))
}

func (r *appointmentRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error) {
	w := &db.Where{}
	for _, k := range []string{"department", "status"} {
		if v := params[k]; v != "" {
			w.Eq("a."+k, v)
		}
	}
	for _, k := range []string{"patient_id", "doctor_id"} {
		if v := params[k]; v != "" {
			id, err := uuid.Parse(v)
			if err != nil {
				return nil, 0, validate.Errorf("invalid %s", k)
			}
			w.Eq("a."+k, id)
		}
	}
	dateFilters := []struct {
		key string
		add func(string, any) *db.Where
	}{
		{"appointment_date", w.Eq},
		{"date_from", w.Gte},
		{"date_to", w.Lte},
	}
	for _, f := range dateFilters {
		if v := params[f.key]; v != "" {
			d, err := caldate.Parse(v)
			if err != nil {
				return nil, 0, validate.Errorf("%s: %v", f.key, err)
			}
			f.add("a.appointment_date", d)
		}
	}

	var total int
	countSQL := `SELECT COUNT(*) FROM appointments a` + w.SQL()
	if err := r.conn(ctx).QueryRow(ctx, countSQL, w.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}
	page, args := w.Page(limit, offset)
	rows, err := r.conn(ctx).Query(ctx,
		appointmentSelect+w.SQL()+` ORDER BY a.appointment_date, a.appointment_time, a.queue_number`+page, args...)
	if err != nil {
		return nil, 0, err
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Appointment, error) { return scanAppointment(row) })
	return items, total, err
}
