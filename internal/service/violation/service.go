package violation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/katalis-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// PenaltyAmount computes base * percent / 100 rounded to 2 decimals. The
// base amount is the employee's allowance base frozen at violation time.
func PenaltyAmount(baseAmount, percent decimal.Decimal) decimal.Decimal {
	return baseAmount.Mul(percent).Div(oneHundred).Round(2)
}

type ViolationLedgerImpl struct {
	attendance.ViolationRepository
}

func NewViolationLedger(violationRepo attendance.ViolationRepository) attendance.ViolationLedger {
	return &ViolationLedgerImpl{ViolationRepository: violationRepo}
}

// Add implements attendance.ViolationLedger.
func (l *ViolationLedgerImpl) Add(ctx context.Context, req attendance.AddViolationRequest) (attendance.Violation, error) {
	percent := req.Type.PenaltyPercent()

	notes := req.Notes
	v := attendance.Violation{
		Guid:           uuid.NewString(),
		AttendanceID:   req.AttendanceID,
		Type:           req.Type,
		Source:         req.Source,
		PenaltyPercent: percent,
		BaseAmount:     req.BaseAmount,
		PenaltyAmount:  PenaltyAmount(req.BaseAmount, percent),
		OccurredAt:     req.OccurredAt.UTC(),
		Notes:          &notes,
	}

	created, err := l.ViolationRepository.Create(ctx, v)
	if err != nil {
		return attendance.Violation{}, fmt.Errorf("failed to create violation: %w", err)
	}
	return created, nil
}

// RemoveActive implements attendance.ViolationLedger.
func (l *ViolationLedgerImpl) RemoveActive(ctx context.Context, attendanceID string, violationType attendance.ViolationType) (int64, error) {
	removed, err := l.ViolationRepository.DeleteByAttendanceAndType(ctx, attendanceID, violationType)
	if err != nil {
		return 0, fmt.Errorf("failed to remove %s violations: %w", violationType, err)
	}
	return removed, nil
}

// HasActive implements attendance.ViolationLedger.
func (l *ViolationLedgerImpl) HasActive(ctx context.Context, attendanceID string, violationType attendance.ViolationType) (bool, error) {
	exists, err := l.ViolationRepository.ExistsByAttendanceAndType(ctx, attendanceID, violationType)
	if err != nil {
		return false, fmt.Errorf("failed to check %s violation: %w", violationType, err)
	}
	return exists, nil
}

// ActiveCount implements attendance.ViolationLedger.
func (l *ViolationLedgerImpl) ActiveCount(ctx context.Context, attendanceID string) (int64, error) {
	count, err := l.ViolationRepository.CountByAttendance(ctx, attendanceID)
	if err != nil {
		return 0, fmt.Errorf("failed to count violations: %w", err)
	}
	return count, nil
}
