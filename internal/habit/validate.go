package habit

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"habit_tracker/internal/apperr"
	"habit_tracker/internal/domain"
)

// Messages returned to clients, one per rejection kind.
const (
	msgUnauthenticated        = "Not authenticated."
	msgMissingRequiredField   = "Required fields are missing."
	msgInvalidFrequencyID     = "targetFrequencyId must be a number greater than or equal to 1."
	msgFrequencyNotFound      = "The specified targetFrequencyId does not exist."
	msgInvalidHabitType       = "habitType must be one of BOOLEAN, NUMERIC_DURATION, NUMERIC_COUNT."
	msgTargetFieldsNotAllowed = "targetValue and targetUnit cannot be set for BOOLEAN habits."
	msgTargetFieldsRequired   = "targetValue and targetUnit are required for NUMERIC_DURATION or NUMERIC_COUNT habits."
	msgInvalidTargetValue     = "targetValue must be a number between 0 and 99999999.99 with at most 2 decimal places."
	msgInvalidTargetUnit      = "targetUnit must be one of hours, minutes, reps, times."
	msgHabitNotFound          = "Habit not found."
	msgForbidden              = "Not allowed."
)

// ValidateAndNormalize checks p and returns the record to persist for callerID.
//
// Checks run in a fixed order and stop at the first failure: required fields,
// frequency id range, frequency existence, habit type, then the target fields
// for the habit type. Create and update share the same rules.
func (s *Service) ValidateAndNormalize(ctx context.Context, callerID uint, p Payload) (*Normalized, error) {
	name, okName := p.Name.Text()
	description, okDescription := p.Description.Text()
	category, okCategory := p.Category.Text()
	if !okName || !okDescription || !okCategory || p.HabitType.IsBlank() {
		return nil, apperr.New(apperr.MissingRequiredField, msgMissingRequiredField)
	}
	frequencyID, err := p.TargetFrequencyID.Int()
	if err != nil {
		return nil, apperr.New(apperr.MissingRequiredField, msgMissingRequiredField)
	}

	if frequencyID < 1 {
		return nil, apperr.New(apperr.InvalidFrequencyID, msgInvalidFrequencyID)
	}

	option, err := s.frequencies.FindByID(ctx, uint(frequencyID))
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if option == nil {
		return nil, apperr.New(apperr.FrequencyNotFound, msgFrequencyNotFound)
	}

	habitType, _ := p.HabitType.Text()
	kind := domain.HabitType(habitType)
	if !kind.Valid() {
		return nil, apperr.New(apperr.InvalidHabitType, msgInvalidHabitType)
	}

	out := &Normalized{
		UserID:            callerID,
		Name:              name,
		Description:       description,
		Category:          category,
		HabitType:         kind,
		TargetFrequencyID: uint(frequencyID),
	}
	if !kind.IsNumeric() {
		if !p.TargetValue.IsBlank() || !p.TargetUnit.IsBlank() {
			return nil, apperr.New(apperr.TargetFieldsNotAllowed, msgTargetFieldsNotAllowed)
		}
		return out, nil
	}

	if p.TargetValue.IsBlank() || p.TargetUnit.IsBlank() {
		return nil, apperr.New(apperr.TargetFieldsRequired, msgTargetFieldsRequired)
	}
	value, err := p.TargetValue.Float()
	if err != nil || !validTargetValue(value) {
		return nil, apperr.New(apperr.InvalidTargetValue, msgInvalidTargetValue)
	}
	unit, ok := p.TargetUnit.Str()
	unit = strings.TrimSpace(unit)
	if !ok || !slices.Contains(domain.TargetUnits, unit) {
		return nil, apperr.New(apperr.InvalidTargetUnit, msgInvalidTargetUnit)
	}
	out.TargetValue = &value
	out.TargetUnit = &unit
	return out, nil
}

// validTargetValue reports whether f fits the target_value column without rounding
func validTargetValue(f float64) bool {
	if f < 0 || f > domain.TargetValueMax {
		return false
	}
	text := strconv.FormatFloat(f, 'f', -1, 64)
	if dot := strings.IndexByte(text, '.'); dot >= 0 {
		return len(text)-dot-1 <= domain.TargetValueScale
	}
	return true
}

// AuthorizeOwnership checks that existing is present and owned by callerID
func AuthorizeOwnership(existing *domain.Habit, callerID uint) error {
	if existing == nil {
		return apperr.New(apperr.NotFound, msgHabitNotFound)
	}
	if existing.UserID != callerID {
		return apperr.New(apperr.Forbidden, msgForbidden)
	}
	return nil
}
