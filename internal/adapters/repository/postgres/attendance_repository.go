package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/baetodi/club/internal/core/domain"
	"github.com/baetodi/club/internal/core/ports"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type attendanceRepository struct {
	db *sql.DB
}

func NewAttendanceRepository(db *sql.DB) ports.AttendanceRepository {
	return &attendanceRepository{
		db: db,
	}
}

func (r *attendanceRepository) UpsertAll(ctx context.Context, attendances []*domain.Attendance) error {
	if len(attendances) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// DO NOTHING keeps manually edited late/exempt flags intact when a poll
	// is resolved again.
	query := `
		INSERT INTO attendances (schedule_id, member_id, late, exempt)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (schedule_id, member_id) DO NOTHING
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare attendance statement: %w", err)
	}
	defer stmt.Close()

	for _, a := range attendances {
		if _, err := stmt.ExecContext(ctx, a.ScheduleID, a.MemberID, a.Late, a.Exempt); err != nil {
			return fmt.Errorf("failed to upsert attendance: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *attendanceRepository) GetBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]*domain.Attendance, error) {
	query := `
		SELECT schedule_id, member_id, late, exempt, created_at
		FROM attendances
		WHERE schedule_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendances: %w", err)
	}
	defer rows.Close()

	return r.scanAttendances(rows)
}

func (r *attendanceRepository) DeleteBySchedules(ctx context.Context, scheduleIDs []uuid.UUID) error {
	query := `DELETE FROM attendances WHERE schedule_id = ANY($1)`
	_, err := r.db.ExecContext(ctx, query, pq.Array(scheduleIDs))
	if err != nil {
		return fmt.Errorf("failed to delete attendances: %w", err)
	}
	return nil
}

func (r *attendanceRepository) scanAttendances(rows *sql.Rows) ([]*domain.Attendance, error) {
	var attendances []*domain.Attendance
	for rows.Next() {
		a := &domain.Attendance{}
		if err := rows.Scan(&a.ScheduleID, &a.MemberID, &a.Late, &a.Exempt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendances: %w", err)
	}
	return attendances, nil
}
