package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/klinik/klinik/internal/platform/db"
	"github.com/klinik/klinik/pkg/caldate"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Queryable { return db.Conn(ctx, r.pool) }

func (r *repoPG) Stats(ctx context.Context, day caldate.Date, since time.Time) (*Stats, error) {
	s := Stats{Date: day}
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM appointments WHERE appointment_date = $1),
			(SELECT COUNT(*) FROM igd_cases WHERE status = 'active'),
			(SELECT COUNT(*) FROM appointments WHERE appointment_date = $1 AND status IN ('current', 'waiting')),
			(SELECT COUNT(*) FROM lab_tests WHERE status = 'completed' AND completed_at >= $2)`,
		day, since,
	).Scan(&s.TodayPatients, &s.ActiveIGD, &s.ActivePoli, &s.CompletedLab)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

const recentEventsSQL = `
	(SELECT 'igd', c.id, c.admission_time, p.name, '', c.complaint, c.triage
		FROM igd_cases c JOIN patients p ON p.id = c.patient_id
		ORDER BY c.admission_time DESC LIMIT $1)
	UNION ALL
	(SELECT 'lab', l.id, l.completed_at, p.name, l.priority, l.test_name, l.status
		FROM lab_tests l JOIN patients p ON p.id = l.patient_id
		WHERE l.status = 'completed' AND l.completed_at IS NOT NULL
		ORDER BY l.completed_at DESC LIMIT $1)
	UNION ALL
	(SELECT 'appointment', a.id, a.created_at, p.name, a.department, COALESCE(a.complaint, ''), a.status
		FROM appointments a JOIN patients p ON p.id = a.patient_id
		ORDER BY a.created_at DESC LIMIT $1)
	UNION ALL
	(SELECT 'rikkes', r.id, r.created_at, r.name, COALESCE(r.batch, ''), COALESCE(r.unit, ''), r.status
		FROM rikkes_participants r
		ORDER BY r.created_at DESC LIMIT $1)
	ORDER BY 3 DESC
	LIMIT $1`

func (r *repoPG) RecentEvents(ctx context.Context, limit int) ([]*Event, error) {
	rows, err := r.conn(ctx).Query(ctx, recentEventsSQL, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Event, error) {
		var e Event
		err := row.Scan(&e.Kind, &e.ID, &e.At, &e.Subject, &e.Label, &e.Detail, &e.Status)
		return &e, err
	})
}
