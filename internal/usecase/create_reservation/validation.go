package create_reservation

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.PatientName) == "" {
		return fmt.Errorf("%w: patientName is required", ErrInvalidInput)
	}
	if len(req.PatientName) > domain.MaxPatientNameLength {
		return fmt.Errorf("%w: patientName exceeds %d characters", ErrInvalidInput, domain.MaxPatientNameLength)
	}

	if strings.TrimSpace(req.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if len(req.Phone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: phone exceeds %d characters", ErrInvalidInput, domain.MaxPhoneLength)
	}

	if req.ServiceCode == "" {
		return fmt.Errorf("%w: serviceCode is required", ErrInvalidInput)
	}

	if req.PreferredDate.IsZero() {
		return fmt.Errorf("%w: preferredDate is required", ErrInvalidInput)
	}

	if req.TimeSlotStart == "" {
		return fmt.Errorf("%w: timeSlotStart is required", ErrInvalidInput)
	}
	if _, err := req.TimeSlotStart.Minutes(); err != nil {
		return fmt.Errorf("%w: timeSlotStart must be HH:MM", ErrInvalidInput)
	}

	if req.AdminNotes != nil && len(*req.AdminNotes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: adminNotes exceeds %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// findCandidateRule ищет правило, в окне которого запрошенное время является валидным кандидатом:
// начало выровнено по шагу правила и процедура целиком помещается до конца окна
func findCandidateRule(rules []*domain.OperatingSlotRule, req *Request, totalMinutes int) (*domain.OperatingSlotRule, error) {
	startMinutes, err := req.TimeSlotStart.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: timeSlotStart must be HH:MM", ErrInvalidInput)
	}

	for _, rule := range rules {
		ruleStart, err := rule.StartTime.Minutes()
		if err != nil {
			continue
		}
		ruleEnd, err := rule.EndTime.Minutes()
		if err != nil {
			continue
		}

		if startMinutes < ruleStart || startMinutes >= ruleEnd {
			continue
		}
		if (startMinutes-ruleStart)%rule.SlotIntervalMinutes != 0 {
			return nil, ErrInvalidTimeSlot
		}
		if startMinutes+totalMinutes > ruleEnd {
			return nil, ErrInvalidTimeSlot
		}
		return rule, nil
	}

	return nil, ErrInvalidTimeSlot
}
