package store

import (
	"context"
	"time"

	"fundilink/internal/models"
)

// Modal state contract: opening a modal for a booking resets that modal's
// form fields, closing clears the selected booking and fields together. A
// modal is never left open with a stale selection. When a persisted draft
// matches the booking being opened, its field values are restored so a
// dropped session resumes where it left off.

func (s *BookingStore) ShowProposeModal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showProposeModal
}

func (s *BookingStore) ShowDeclineModal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showDeclineModal
}

func (s *BookingStore) ShowNegotiationModal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showNegotiationModal
}

func (s *BookingStore) DeclineReason() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.declineReason
}

func (s *BookingStore) ProposeAmount() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proposeAmount
}

func (s *BookingStore) ProposeMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proposeMessage
}

func (s *BookingStore) OpenPropose(booking models.Booking) {
	s.mu.Lock()
	s.selectedBooking = &booking
	s.showProposeModal = true
	s.proposeAmount = ""
	s.proposeMessage = ""
	s.mu.Unlock()
	s.restoreDraft(booking.ID, models.DraftPropose)
}

func (s *BookingStore) ClosePropose() {
	s.mu.Lock()
	s.showProposeModal = false
	s.selectedBooking = nil
	s.proposeAmount = ""
	s.proposeMessage = ""
	s.mu.Unlock()
	s.clearDraft()
}

func (s *BookingStore) OpenDecline(booking models.Booking) {
	s.mu.Lock()
	s.selectedBooking = &booking
	s.showDeclineModal = true
	s.declineReason = ""
	s.mu.Unlock()
	s.restoreDraft(booking.ID, models.DraftDecline)
}

func (s *BookingStore) CloseDecline() {
	s.mu.Lock()
	s.showDeclineModal = false
	s.selectedBooking = nil
	s.declineReason = ""
	s.mu.Unlock()
	s.clearDraft()
}

func (s *BookingStore) OpenNegotiation(booking models.Booking) {
	s.mu.Lock()
	s.selectedBooking = &booking
	s.showNegotiationModal = true
	s.mu.Unlock()
}

func (s *BookingStore) CloseNegotiation() {
	s.mu.Lock()
	s.showNegotiationModal = false
	s.selectedBooking = nil
	s.mu.Unlock()
}

func (s *BookingStore) SetDeclineReason(reason string) {
	s.mu.Lock()
	s.declineReason = reason
	s.mu.Unlock()
	s.persistDraft(models.DraftDecline)
}

func (s *BookingStore) SetProposeAmount(amount string) {
	s.mu.Lock()
	s.proposeAmount = amount
	s.mu.Unlock()
	s.persistDraft(models.DraftPropose)
}

func (s *BookingStore) SetProposeMessage(message string) {
	s.mu.Lock()
	s.proposeMessage = message
	s.mu.Unlock()
	s.persistDraft(models.DraftPropose)
}

// restoreDraft prefills the just-opened modal's fields from a saved draft,
// but only when the draft belongs to the same booking and modal kind.
func (s *BookingStore) restoreDraft(bookingID, kind string) {
	if s.drafts == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	draft, err := s.drafts.GetDraft(ctx, s.userID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("draft restore failed")
		return
	}
	if draft == nil || draft.BookingID != bookingID || draft.Kind != kind {
		return
	}

	s.mu.Lock()
	switch kind {
	case models.DraftPropose:
		if s.showProposeModal && s.selectedBooking != nil && s.selectedBooking.ID == bookingID {
			s.proposeAmount = draft.ProposeAmount
			s.proposeMessage = draft.ProposeMessage
		}
	case models.DraftDecline:
		if s.showDeclineModal && s.selectedBooking != nil && s.selectedBooking.ID == bookingID {
			s.declineReason = draft.DeclineReason
		}
	}
	s.mu.Unlock()
}

// persistDraft saves the current form fields in the background. Best-effort:
// a failed save only costs the resume convenience.
func (s *BookingStore) persistDraft(kind string) {
	if s.drafts == nil {
		return
	}

	s.mu.Lock()
	if s.selectedBooking == nil {
		s.mu.Unlock()
		return
	}
	draft := &models.Draft{
		UserID:         s.userID,
		BookingID:      s.selectedBooking.ID,
		Kind:           kind,
		ProposeAmount:  s.proposeAmount,
		ProposeMessage: s.proposeMessage,
		DeclineReason:  s.declineReason,
		UpdatedAt:      time.Now(),
	}
	s.mu.Unlock()

	s.tasks.Go("draft:"+s.userID, func(ctx context.Context) {
		if err := s.drafts.SetDraft(ctx, draft); err != nil {
			s.logger.Warn().Err(err).Msg("draft save failed")
		}
	})
}

func (s *BookingStore) clearDraft() {
	if s.drafts == nil {
		return
	}
	s.tasks.Go("draft:"+s.userID, func(ctx context.Context) {
		if err := s.drafts.ClearDraft(ctx, s.userID); err != nil {
			s.logger.Warn().Err(err).Msg("draft clear failed")
		}
	})
}
