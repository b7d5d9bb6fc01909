package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lawfirm-api/internal/domain"
)

// AppointmentFilter captures list query parameters.
type AppointmentFilter struct {
	StaffID  *string
	ClientID *string
	Date     *time.Time
	From     *time.Time
	// StartsAfter keeps appointments whose date and start time lie strictly
	// after the given wall-clock minute.
	StartsAfter *time.Time
	Statuses []domain.AppointmentStatus
	Page     Page
}

// AppointmentFinder is the narrow query the conflict checker depends on.
type AppointmentFinder interface {
	FindForStaffOnDate(ctx context.Context, staffID string, date time.Time, excludeStatuses []domain.AppointmentStatus) ([]domain.Appointment, error)
}

// AppointmentRepository encapsulates appointment persistence.
type AppointmentRepository interface {
	AppointmentFinder
	Create(ctx context.Context, appt *domain.Appointment) error
	Update(ctx context.Context, appt *domain.Appointment) error
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, error)
	// WithStaffDayLock runs fn with a repository whose reads and writes are
	// serialized against every other caller locking the same staff and day.
	WithStaffDayLock(ctx context.Context, staffID string, date time.Time, fn func(AppointmentRepository) error) error
}

type appointmentRepository struct {
	db   DBTX
	pool *pgxpool.Pool
}

// NewAppointmentRepository instantiates repository.
func NewAppointmentRepository(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepository{db: pool, pool: pool}
}

const appointmentColumns = `id, title, notes, client_id, staff_id, appointment_date, start_time, end_time,
               status, location, created_at, updated_at`

func (r *appointmentRepository) Create(ctx context.Context, appt *domain.Appointment) error {
	const query = `
        INSERT INTO appointments (title, notes, client_id, staff_id, appointment_date, start_time, end_time, status, location)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		appt.Title,
		appt.Notes,
		appt.ClientID,
		appt.StaffID,
		appt.Date,
		appt.StartTime.String(),
		appt.EndTime.String(),
		appt.Status,
		appt.Location,
	).Scan(&appt.ID, &appt.CreatedAt, &appt.UpdatedAt)
}

func (r *appointmentRepository) Update(ctx context.Context, appt *domain.Appointment) error {
	const query = `
        UPDATE appointments SET title=$1, notes=$2, client_id=$3, staff_id=$4, appointment_date=$5,
            start_time=$6, end_time=$7, status=$8, location=$9, updated_at=NOW()
        WHERE id=$10
        RETURNING updated_at`
	return r.db.QueryRow(ctx, query,
		appt.Title,
		appt.Notes,
		appt.ClientID,
		appt.StaffID,
		appt.Date,
		appt.StartTime.String(),
		appt.EndTime.String(),
		appt.Status,
		appt.Location,
		appt.ID,
	).Scan(&appt.UpdatedAt)
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	return execAffectingOne(ctx, r.db, `UPDATE appointments SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
}

func (r *appointmentRepository) Delete(ctx context.Context, id string) error {
	return execAffectingOne(ctx, r.db, `DELETE FROM appointments WHERE id=$1`, id)
}

func (r *appointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	rows, err := r.db.Query(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id=$1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items, err := scanAppointments(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &items[0], nil
}

func (r *appointmentRepository) FindForStaffOnDate(ctx context.Context, staffID string, date time.Time, excludeStatuses []domain.AppointmentStatus) ([]domain.Appointment, error) {
	w := &where{}
	w.add("staff_id=$%d", staffID)
	w.add("appointment_date=$%d", domain.DateOnly(date))
	if len(excludeStatuses) > 0 {
		placeholders := make([]string, len(excludeStatuses))
		for i, status := range excludeStatuses {
			w.args = append(w.args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(w.args))
		}
		w.clauses = append(w.clauses, fmt.Sprintf("status NOT IN (%s)", strings.Join(placeholders, ",")))
	}

	rows, err := r.db.Query(ctx, `SELECT `+appointmentColumns+` FROM appointments`+w.String()+` ORDER BY start_time`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func (r *appointmentRepository) List(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, error) {
	w := &where{}
	if filter.StaffID != nil {
		w.add("staff_id=$%d", *filter.StaffID)
	}
	if filter.ClientID != nil {
		w.add("client_id=$%d", *filter.ClientID)
	}
	if filter.Date != nil {
		w.add("appointment_date=$%d", domain.DateOnly(*filter.Date))
	}
	if filter.From != nil {
		w.add("appointment_date>=$%d", domain.DateOnly(*filter.From))
	}
	if filter.StartsAfter != nil {
		day := domain.DateOnly(*filter.StartsAfter)
		minute := domain.TimeOfDayAt(*filter.StartsAfter).String()
		w.args = append(w.args, day, minute)
		n := len(w.args)
		// start_time is zero-padded HH:MM, so text order is time order.
		w.clauses = append(w.clauses, fmt.Sprintf(
			"(appointment_date > $%d OR (appointment_date = $%d AND start_time > $%d))", n-1, n-1, n))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			w.args = append(w.args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(w.args))
		}
		w.clauses = append(w.clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	query := `SELECT ` + appointmentColumns + ` FROM appointments` + w.String() +
		` ORDER BY appointment_date, start_time` + filter.Page.clause()
	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func (r *appointmentRepository) WithStaffDayLock(ctx context.Context, staffID string, date time.Time, fn func(AppointmentRepository) error) error {
	if r.pool == nil {
		return errors.New("appointment repository: staff day lock requires a pool")
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	lockKey := staffID + "|" + domain.DateOnly(date).Format(domain.DateLayout)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		return fmt.Errorf("acquire staff day lock: %w", err)
	}

	if err := fn(&appointmentRepository{db: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func scanAppointments(rows pgx.Rows) ([]domain.Appointment, error) {
	var result []domain.Appointment
	for rows.Next() {
		var (
			appt       domain.Appointment
			start, end string
		)
		if err := rows.Scan(
			&appt.ID,
			&appt.Title,
			&appt.Notes,
			&appt.ClientID,
			&appt.StaffID,
			&appt.Date,
			&start,
			&end,
			&appt.Status,
			&appt.Location,
			&appt.CreatedAt,
			&appt.UpdatedAt,
		); err != nil {
			return nil, err
		}
		var err error
		if appt.StartTime, err = domain.ParseTimeOfDay(start); err != nil {
			return nil, err
		}
		if appt.EndTime, err = domain.ParseTimeOfDay(end); err != nil {
			return nil, err
		}
		result = append(result, appt)
	}
	return result, rows.Err()
}
