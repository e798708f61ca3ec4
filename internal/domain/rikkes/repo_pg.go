package rikkes

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/klinik/klinik/internal/platform/db"
	"github.com/klinik/klinik/internal/platform/validate"
	"github.com/klinik/klinik/pkg/caldate"
)

// -- Participant --

type participantRepoPG struct{ pool *pgxpool.Pool }

func NewParticipantRepoPG(pool *pgxpool.Pool) ParticipantRepository {
	return &participantRepoPG{pool: pool}
}

func (r *participantRepoPG) conn(ctx context.Context) db.Queryable { return db.Conn(ctx, r.pool) }

const participantCols = `id, participant_code, name, rank, unit, date_of_birth, gender, phone,
	examination_date, batch, status, overall_result, created_at, updated_at`

func scanParticipant(row pgx.Row) (*Participant, error) {
	var p Participant
	err := row.Scan(&p.ID, &p.ParticipantCode, &p.Name, &p.Rank, &p.Unit, &p.DateOfBirth, &p.Gender, &p.Phone,
		&p.ExaminationDate, &p.Batch, &p.Status, &p.OverallResult, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, db.NotFound(err)
	}
	return &p, nil
}

func (r *participantRepoPG) Create(ctx context.Context, p *Participant) error {
	p.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO rikkes_participants (id, participant_code, name, rank, unit, date_of_birth, gender,
			phone, examination_date, batch, status, overall_result)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING created_at, updated_at`,
		p.ID, p.ParticipantCode, p.Name, p.Rank, p.Unit, p.DateOfBirth, p.Gender,
		p.Phone, p.ExaminationDate, p.Batch, p.Status, p.OverallResult,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *participantRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Participant, error) {
	return scanParticipant(r.conn(ctx).QueryRow(ctx,
		`SELECT `+participantCols+` FROM rikkes_participants WHERE id = $1`, id))
}

func (r *participantRepoPG) Update(ctx context.Context, p *Participant) error {
	err := r.conn(ctx).QueryRow(ctx, `
		UPDATE rikkes_participants SET participant_code=$2, name=$3, rank=$4, unit=$5, date_of_birth=$6,
			gender=$7, phone=$8, examination_date=$9, batch=$10, status=$11, overall_result=$12,
			updated_at=NOW()
		WHERE id = $1
		RETURNING updated_at`,
		p.ID, p.ParticipantCode, p.Name, p.Rank, p.Unit, p.DateOfBirth,
		p.Gender, p.Phone, p.ExaminationDate, p.Batch, p.Status, p.OverallResult,
	).Scan(&p.UpdatedAt)
	return db.NotFound(err)
}

func (r *participantRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	return db.Affected(r.conn(ctx).Exec(ctx, `DELETE FROM rikkes_participants WHERE id = $1`, id))
}

func (r *participantRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Participant, int, error) {
	w := &db.Where{}
	for _, k := range []string{"status", "overall_result", "batch"} {
		if v := params[k]; v != "" {
			w.Eq(k, v)
		}
	}
	if v := params["examination_date"]; v != "" {
		d, err := caldate.Parse(v)
		if err != nil {
			return nil, 0, validate.Errorf("examination_date: %v", err)
		}
		w.Eq("examination_date", d)
	}
	if q := params["q"]; q != "" {
		w.ILike([]string{"name", "participant_code"}, q)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM rikkes_participants`+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}
	page, args := w.Page(limit, offset)
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+participantCols+` FROM rikkes_participants`+w.SQL()+` ORDER BY examination_date DESC, name`+page, args...)
	if err != nil {
		return nil, 0, err
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Participant, error) { return scanParticipant(row) })
	return items, total, err
}

// -- Examination --

type examinationRepoPG struct{ pool *pgxpool.Pool }

func NewExaminationRepoPG(pool *pgxpool.Pool) ExaminationRepository {
	return &examinationRepoPG{pool: pool}
}

func (r *examinationRepoPG) conn(ctx context.Context) db.Queryable { return db.Conn(ctx, r.pool) }

const examinationCols = `id, participant_id, examination_type, examination_name, result, status,
	examiner, notes, examination_date, created_at, updated_at`

func scanExamination(row pgx.Row) (*Examination, error) {
	var e Examination
	err := row.Scan(&e.ID, &e.ParticipantID, &e.ExaminationType, &e.ExaminationName, &e.Result, &e.Status,
		&e.Examiner, &e.Notes, &e.ExaminationDate, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, db.NotFound(err)
	}
	return &e, nil
}

func (r *examinationRepoPG) Create(ctx context.Context, e *Examination) error {
	e.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO rikkes_examinations (id, participant_id, examination_type, examination_name, result,
			status, examiner, notes, examination_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at`,
		e.ID, e.ParticipantID, e.ExaminationType, e.ExaminationName, e.Result,
		e.Status, e.Examiner, e.Notes, e.ExaminationDate,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
}

func (r *examinationRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Examination, error) {
	return scanExamination(r.conn(ctx).QueryRow(ctx,
		`SELECT `+examinationCols+` FROM rikkes_examinations WHERE id = $1`, id))
}

func (r *examinationRepoPG) Update(ctx context.Context, e *Examination) error {
	err := r.conn(ctx).QueryRow(ctx, `
		UPDATE rikkes_examinations SET participant_id=$2, examination_type=$3, examination_name=$4,
			result=$5, status=$6, examiner=$7, notes=$8, examination_date=$9, updated_at=NOW()
		WHERE id = $1
		RETURNING updated_at`,
		e.ID, e.ParticipantID, e.ExaminationType, e.ExaminationName,
		e.Result, e.Status, e.Examiner, e.Notes, e.ExaminationDate,
	).Scan(&e.UpdatedAt)
	return db.NotFound(err)
}

func (r *examinationRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	return db.Affected(r.conn(ctx).Exec(ctx, `DELETE FROM rikkes_examinations WHERE id = $1`, id))
}

func (r *examinationRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Examination, int, error) {
	w := &db.Where{}
	if v := params["participant_id"]; v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, 0, validate.Errorf("invalid participant_id")
		}
		w.Eq("participant_id", id)
	}
	for _, k := range []string{"status", "examination_type"} {
		if v := params[k]; v != "" {
			w.Eq(k, v)
		}
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM rikkes_examinations`+w.SQL(), w.Args()...).Scan(&total); err != nil {
		return nil, 0, err
	}
	page, args := w.Page(limit, offset)
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+examinationCols+` FROM rikkes_examinations`+w.SQL()+` ORDER BY examination_date DESC, created_at DESC`+page, args...)
	if err != nil {
		return nil, 0, err
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Examination, error) { return scanExamination(row) })
	return items, total, err
}
