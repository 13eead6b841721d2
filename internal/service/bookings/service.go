package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/domain"
	bookingRepo "github.com/JoeyBiino/Siino-Client-Portal/internal/infra/storage/booking"
	clientRepo "github.com/JoeyBiino/Siino-Client-Portal/internal/infra/storage/client"
	"github.com/JoeyBiino/Siino-Client-Portal/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	clientRepo   ClientRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	clientRepo ClientRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		clientRepo:   clientRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (используется в тестах)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
// Портальный клиент (clientID != nil) видит только свои бронирования
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, clientID *uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkClientAccess(booking, clientID); err != nil {
		s.logger.Warn("GetByID: access denied to booking id=%s", id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%s, status=%v", req.ClientID, req.Status)

	if _, err := s.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("GetClientBookings: client=%s not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		s.logger.Error("GetClientBookings: repository error for client=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%s", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for client=%s", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetTeamBookings получает бронирования команды с фильтрацией по периоду
// и статусу (staff-операция)
func (s *Service) GetTeamBookings(ctx context.Context, req *models.GetTeamBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetTeamBookings: fetching bookings for team=%s", req.TeamID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTeamBookings: invalid filter for team=%s: %v", req.TeamID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByTeamWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTeamBookings: repository error for team=%s: %v", req.TeamID, err)
		return nil, fmt.Errorf("%w: GetTeamBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTeamBookings: successfully fetched %d bookings for team=%s", len(bookings), req.TeamID)
	return models.FromDomainBookingList(bookings), nil
}

// ResolvePortalAccess разрешает код портала в идентичность клиента
// Неизвестный код и выключенный портал неразличимы для вызывающего
func (s *Service) ResolvePortalAccess(ctx context.Context, portalCode string) (*models.PortalAccessResponse, error) {
	client, err := s.clientRepo.GetByPortalCode(ctx, portalCode)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("ResolvePortalAccess: unknown portal code")
			return nil, ErrClientNotFound
		}
		s.logger.Error("ResolvePortalAccess: repository error: %v", err)
		return nil, fmt.Errorf("%w: ResolvePortalAccess - repository error: %v", ErrInternal, err)
	}

	if !client.PortalEnabled {
		s.logger.Warn("ResolvePortalAccess: portal disabled for client=%s", client.ID)
		return nil, ErrClientNotFound
	}

	s.logger.Info("ResolvePortalAccess: resolved client=%s", client.ID)
	return models.FromDomainClient(client), nil
}

// Cancel отменяет бронирование
// Портальный клиент может отменить только своё будущее бронирование в
// статусе pending или confirmed; staff (ClientID == nil) не проверяется
// на владение, но ограничения статуса и времени те же
func (s *Service) Cancel(ctx context.Context, bookingID uuid.UUID, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%s", bookingID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for booking id=%s", bookingID)
		return fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if err := s.checkClientAccess(booking, req.ClientID); err != nil {
		s.logger.Warn("Cancel: access denied to booking id=%s", bookingID)
		return err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if booking.HasStarted(s.timeProvider.Now()) {
		s.logger.Warn("Cancel: booking id=%s has already started", bookingID)
		return ErrBookingStarted
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s", bookingID)
	return nil
}

// UpdateStatus обновляет статус бронирования (staff-операция)
func (s *Service) UpdateStatus(ctx context.Context, bookingID uuid.UUID, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s", bookingID, req.Status)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, bookingID)
		return ErrInvalidStatus
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%s not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Отмена идёт только через Cancel, финальные статусы не меняются
	if !booking.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%s",
			booking.Status, newStatus, bookingID)
		return ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%s not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%s to status=%s", bookingID, newStatus)
	return nil
}

// checkClientAccess проверяет, что портальный клиент обращается к своему
// бронированию. clientID == nil означает staff-вызов
func (s *Service) checkClientAccess(booking *domain.Booking, clientID *uuid.UUID) error {
	if clientID == nil {
		return nil
	}
	if booking.ClientID != nil && *booking.ClientID == *clientID {
		return nil
	}
	return ErrAccessDenied
}
