package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/domain"
	availabilityRepo "github.com/JoeyBiino/Siino-Client-Portal/internal/infra/storage/availability"
	serviceRepo "github.com/JoeyBiino/Siino-Client-Portal/internal/infra/storage/servicecatalog"
)

// UseCase use case для получения доступных слотов для бронирования
// Чистое вычисление над read-only входами: повторный вызов с теми же данными
// и тем же временем даёт тот же результат
type UseCase struct {
	bookingRepo      BookingRepository
	serviceRepo      ServiceRepository
	availabilityRepo AvailabilityRepository
	blockedRepo      BlockedTimeRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	availabilityRepo AvailabilityRepository,
	blockedRepo BlockedTimeRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		serviceRepo:      serviceRepo,
		availabilityRepo: availabilityRepo,
		blockedRepo:      blockedRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
//
// Пустой список слотов - корректный результат ("закрыто" или "всё занято"),
// ошибка возвращается только на неизвестную услугу или сбой хранилища
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: team=%s, service=%s, date=%s, utcOffset=%d",
		req.TeamID, req.ServiceID, req.Date.Format(domain.DateFormat), req.UTCOffsetMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время и локальный фрейм клиента
	now := uc.timeProvider.Now()
	loc := domain.ClientLocation(req.UTCOffsetMinutes)

	// 3. Получаем услугу (активную, в рамках команды)
	service, err := uc.serviceRepo.GetActiveByID(ctx, req.TeamID, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found for team=%s", req.ServiceID, req.TeamID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	emptyResponse := &Response{
		TeamID:    req.TeamID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Slots:     []domain.TimeSlot{},
	}

	// 4. Ранний выход: дата вне окна бронирования
	// День недели и "сегодня" считаются в локальном фрейме клиента,
	// а не в таймзоне сервера
	dayStart := domain.DayInLocation(req.Date, loc)
	today := domain.DayInLocation(now.In(loc), loc)

	if dayStart.Before(today) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past for the client frame", req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}
	if dayStart.After(service.MaxBookableAt(now)) {
		uc.logger.Info("GetAvailableSlots: date %s is beyond the %d-day horizon", req.Date.Format(domain.DateFormat), service.MaxAdvanceDays)
		return emptyResponse, nil
	}

	// 5. Рабочее окно команды на этот день недели
	dayOfWeek := int(dayStart.Weekday())

	avail, err := uc.availabilityRepo.GetByTeamAndWeekday(ctx, req.TeamID, dayOfWeek)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			uc.logger.Info("GetAvailableSlots: team=%s has no availability record for weekday=%d", req.TeamID, dayOfWeek)
			return emptyResponse, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}
	if !avail.IsOpen() {
		uc.logger.Info("GetAvailableSlots: team=%s is closed on weekday=%d", req.TeamID, dayOfWeek)
		return emptyResponse, nil
	}

	// 6. Минимально допустимое начало с учётом lead time
	minBookable := service.MinBookableAt(now)

	// 7. Блокировки и занимающие бронирования, пересекающие локальный день
	dayFrom, dayTo := domain.DayBounds(dayStart)

	blocks, err := uc.blockedRepo.ListIntersecting(ctx, req.TeamID, dayFrom, dayTo)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked intervals: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetByTeamWithFilter(ctx, domain.TeamBookingsFilter{
		TeamID:         req.TeamID,
		IntersectStart: &dayFrom,
		IntersectEnd:   &dayTo,
		OnlyOccupying:  true,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Перебор кандидатов
	slots, err := generateSlots(service, avail, dayStart, loc, minBookable, blocks, bookings)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for team=%s, service=%s, date=%s",
		len(slots), req.TeamID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		TeamID:    req.TeamID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Slots:     slots,
	}, nil
}
