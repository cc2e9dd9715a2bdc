package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/logbook-api/internal/domain"
	"github.com/jhoicas/logbook-api/internal/domain/entity"
	"github.com/jhoicas/logbook-api/internal/domain/repository"
)

var _ repository.LogEntryRepository = (*LogEntryRepo)(nil)

// LogEntryRepo implementación del puerto LogEntryRepository sobre PostgreSQL.
type LogEntryRepo struct {
	db Querier
}

// NewLogEntryRepository construye el adaptador; db puede ser el pool o una tx.
func NewLogEntryRepository(db Querier) *LogEntryRepo {
	return &LogEntryRepo{db: db}
}

const logEntryColumns = `
	id, booking_id, customer_name, mobile_no, property_type, event_type,
	date_from, date_to, check_in_time, notes,
	items_issued, electricity_readings, damage_loss_summary,
	total_amount, total_recovery_amount, grand_total,
	status, verified_at, verified_by, created_at, updated_at`

type jsonLists struct {
	items, readings, damages []byte
}

func marshalLists(e *entity.LogEntry) (jsonLists, error) {
	var l jsonLists
	var err error
	if l.items, err = toJSONB(e.ItemsIssued); err != nil {
		return l, err
	}
	if l.readings, err = toJSONB(e.ElectricityReadings); err != nil {
		return l, err
	}
	if l.damages, err = toJSONB(e.DamageLossSummary); err != nil {
		return l, err
	}
	return l, nil
}

// Create persiste un nuevo registro. ErrDuplicate si bookingId ya existe.
func (r *LogEntryRepo) Create(ctx context.Context, e *entity.LogEntry) error {
	l, err := marshalLists(e)
	if err != nil {
		return err
	}
	query := `INSERT INTO log_entries (` + logEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err = r.db.Exec(ctx, query,
		e.ID, e.BookingID, e.CustomerName, e.MobileNo, e.PropertyType, e.EventType,
		e.DateRange.From, e.DateRange.To, e.CheckInTime, e.Notes,
		l.items, l.readings, l.damages,
		e.TotalAmount, e.TotalRecoveryAmount, e.GrandTotal,
		string(e.Status), e.VerifiedAt, e.VerifiedBy, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert log entry: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID.
func (r *LogEntryRepo) GetByID(ctx context.Context, id string) (*entity.LogEntry, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+logEntryColumns+` FROM log_entries WHERE id = $1`, id)
}

// GetByBookingID obtiene un registro por número de reserva.
func (r *LogEntryRepo) GetByBookingID(ctx context.Context, bookingID string) (*entity.LogEntry, error) {
	return r.getOne(ctx, `SELECT `+logEntryColumns+` FROM log_entries WHERE booking_id = $1`, bookingID)
}

// GetForUpdate obtiene el registro y bloquea la fila; solo tiene efecto dentro de una tx.
func (r *LogEntryRepo) GetForUpdate(ctx context.Context, id string) (*entity.LogEntry, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+logEntryColumns+` FROM log_entries WHERE id = $1 FOR UPDATE`, id)
}

func (r *LogEntryRepo) getOne(ctx context.Context, query string, arg any) (*entity.LogEntry, error) {
	e, err := scanLogEntry(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get log entry: %w", err)
	}
	return e, nil
}

// List lista registros del más reciente al más antiguo.
func (r *LogEntryRepo) List(ctx context.Context, limit, offset int) ([]*entity.LogEntry, error) {
	query := `SELECT ` + logEntryColumns + ` FROM log_entries
		ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.LogEntry, 0, limit)
	for rows.Next() {
		e, err := scanLogEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Count total de registros.
func (r *LogEntryRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM log_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count log entries: %w", err)
	}
	return n, nil
}

// Update reescribe todas las columnas editables del registro.
func (r *LogEntryRepo) Update(ctx context.Context, e *entity.LogEntry) error {
	if !validID(e.ID) {
		return domain.ErrNotFound
	}
	l, err := marshalLists(e)
	if err != nil {
		return err
	}
	query := `
		UPDATE log_entries SET
			booking_id = $2, customer_name = $3, mobile_no = $4, property_type = $5, event_type = $6,
			date_from = $7, date_to = $8, check_in_time = $9, notes = $10,
			items_issued = $11, electricity_readings = $12, damage_loss_summary = $13,
			total_amount = $14, total_recovery_amount = $15, grand_total = $16,
			status = $17, verified_at = $18, verified_by = $19, updated_at = $20
		WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query,
		e.ID, e.BookingID, e.CustomerName, e.MobileNo, e.PropertyType, e.EventType,
		e.DateRange.From, e.DateRange.To, e.CheckInTime, e.Notes,
		l.items, l.readings, l.damages,
		e.TotalAmount, e.TotalRecoveryAmount, e.GrandTotal,
		string(e.Status), e.VerifiedAt, e.VerifiedBy, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update log entry: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un registro. ErrNotFound si no existe.
func (r *LogEntryRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM log_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete log entry: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanLogEntry(row pgx.Row) (*entity.LogEntry, error) {
	var (
		e      entity.LogEntry
		status string
		l      jsonLists
	)
	err := row.Scan(
		&e.ID, &e.BookingID, &e.CustomerName, &e.MobileNo, &e.PropertyType, &e.EventType,
		&e.DateRange.From, &e.DateRange.To, &e.CheckInTime, &e.Notes,
		&l.items, &l.readings, &l.damages,
		&e.TotalAmount, &e.TotalRecoveryAmount, &e.GrandTotal,
		&status, &e.VerifiedAt, &e.VerifiedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Status = entity.LogStatus(status)
	if e.ItemsIssued, err = fromJSONB[entity.IssuedItem](l.items); err != nil {
		return nil, err
	}
	if e.ElectricityReadings, err = fromJSONB[entity.ElectricityReading](l.readings); err != nil {
		return nil, err
	}
	if e.DamageLossSummary, err = fromJSONB[entity.DamageLoss](l.damages); err != nil {
		return nil, err
	}
	return &e, nil
}
