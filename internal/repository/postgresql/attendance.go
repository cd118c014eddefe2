package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/clinicore/attendance-backend-go/internal/domain/attendance"
	"github.com/clinicore/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, name, staff_id, role, organization, room, shift, date,
	check_in_time, check_out_time, status, approval,
	request_reason, notes, request_image_url, created_at, updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.Name, &att.StaffID, &att.Role, &att.Organization,
		&att.Room, &att.Shift, &att.Date,
		&att.CheckInTime, &att.CheckOutTime, &att.Status, &att.Approval,
		&att.RequestReason, &att.Notes, &att.RequestImageURL,
		&att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	att.SyncStatus = attendance.SyncSynced
	return att, nil
}

// Create implements attendance.Repository.
func (a *attendanceRepository) Create(ctx context.Context, newAtt attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, name, staff_id, role, organization, room, shift, date,
			check_in_time, check_out_time, status, approval,
			request_reason, notes, request_image_url
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAtt.ID,
		newAtt.Name,
		newAtt.StaffID,
		newAtt.Role,
		newAtt.Organization,
		newAtt.Room,
		newAtt.Shift,
		newAtt.Date,
		newAtt.CheckInTime,
		newAtt.CheckOutTime,
		newAtt.Status,
		newAtt.Approval,
		newAtt.RequestReason,
		newAtt.Notes,
		newAtt.RequestImageURL,
	).Scan(&newAtt.CreatedAt, &newAtt.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	newAtt.SyncStatus = attendance.SyncSynced
	return newAtt, nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return att, nil
}

// Update implements attendance.Repository. Status and check-in time are
// deliberately absent from the SET list: they are computed once at
// check-in and never recomputed.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET name = $2, role = $3, organization = $4, room = $5,
		    shift = $6, notes = $7, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID, att.Name, att.Role, att.Organization, att.Room, att.Shift, att.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// UpdateApproval implements attendance.Repository.
func (a *attendanceRepository) UpdateApproval(ctx context.Context, id string, approval attendance.ApprovalState) error {
	q := GetQuerier(ctx, a.db)

	query := `UPDATE attendances SET approval = $2, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, approval)
	if err != nil {
		return fmt.Errorf("failed to update approval: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// SetCheckOut implements attendance.Repository.
func (a *attendanceRepository) SetCheckOut(ctx context.Context, id string, checkOutTime string) error {
	q := GetQuerier(ctx, a.db)

	// The predicate enforces set-at-most-once at the database level.
	query := `
		UPDATE attendances
		SET check_out_time = $2, updated_at = NOW()
		WHERE id = $1 AND check_out_time IS NULL
	`

	tag, err := q.Exec(ctx, query, id, checkOutTime)
	if err != nil {
		return fmt.Errorf("failed to set check-out time: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyCheckedOut
	}

	return nil
}

// List implements attendance.Repository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.StaffID != nil {
		conditions = append(conditions, fmt.Sprintf("staff_id = $%d", argPos))
		args = append(args, *filter.StaffID)
		argPos++
	}
	if filter.Date != nil {
		conditions = append(conditions, fmt.Sprintf("date = $%d", argPos))
		args = append(args, *filter.Date)
		argPos++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.Approval != nil {
		conditions = append(conditions, fmt.Sprintf("approval = $%d", argPos))
		args = append(args, *filter.Approval)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendances WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	listQuery := fmt.Sprintf(
		`SELECT %s FROM attendances WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		attendanceColumns, where, argPos, argPos+1,
	)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var result []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		result = append(result, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance rows: %w", err)
	}

	return result, total, nil
}

// Delete implements attendance.Repository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}
