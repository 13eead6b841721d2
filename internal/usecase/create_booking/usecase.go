package create_booking

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/domain"
	bookingstorage "github.com/JoeyBiino/Siino-Client-Portal/internal/infra/storage/booking"
	clientstorage "github.com/JoeyBiino/Siino-Client-Portal/internal/infra/storage/client"
	servicestorage "github.com/JoeyBiino/Siino-Client-Portal/internal/infra/storage/servicecatalog"
	"github.com/JoeyBiino/Siino-Client-Portal/pkg/txmanager"
)

const maxPortalCodeAttempts = 5

type UseCase struct {
	bookingRepo     BookingRepository
	serviceRepo     ServiceRepository
	blockedTimeRepo BlockedTimeRepository
	clientRepo      ClientRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	blockedTimeRepo BlockedTimeRepository,
	clientRepo ClientRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		serviceRepo:     serviceRepo,
		blockedTimeRepo: blockedTimeRepo,
		clientRepo:      clientRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute создаёт бронирование с проверкой конфликтов на уровне транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("[CreateBooking] Начало создания бронирования: teamID=%s, serviceID=%s, start=%s",
		req.TeamID, req.ServiceID, req.StartTime.Format(time.RFC3339))

	// 1. Валидация запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("[CreateBooking] Ошибка валидации: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получение активной услуги команды
	service, err := uc.serviceRepo.GetActiveByID(ctx, req.TeamID, req.ServiceID)
	if err != nil {
		if errors.Is(err, servicestorage.ErrServiceNotFound) {
			uc.logger.Warn("[CreateBooking] Услуга не найдена: serviceID=%s", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("[CreateBooking] Ошибка получения услуги: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Проверка lead time и горизонта бронирования
	if err := validateBookingWindow(service, req.StartTime, now); err != nil {
		uc.logger.Warn("[CreateBooking] Нарушение окна бронирования: %v", err)
		return nil, err
	}

	// 4. Разрешение клиента: существующий по ID либо гостевой поток
	client, err := uc.resolveClient(ctx, req)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		TeamID:               req.TeamID,
		ServiceID:            req.ServiceID,
		ClientID:             &client.ID,
		Title:                buildTitle(service.Name, req.Selections, client.Name),
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		BufferMinutes:        service.BufferMinutes,
		Status:               domain.StatusPending,
		Notes:                req.Notes,
		LocationAddress:      req.LocationAddress,
		LocationContactName:  req.LocationContactName,
		LocationContactPhone: req.LocationContactPhone,
	}

	// 5. Проверка занятости и вставка атомарно, внутри serializable транзакции.
	// Вторая линия защиты - exclusion constraint в БД (23P01 -> ErrSlotConflict).
	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.checkSlotFree(txCtx, booking); err != nil {
			return err
		}
		created, err = uc.bookingRepo.Create(txCtx, booking)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotConflict), errors.Is(err, bookingstorage.ErrSlotConflict):
			uc.logger.Warn("[CreateBooking] Конфликт слота: teamID=%s, start=%s",
				req.TeamID, req.StartTime.Format(time.RFC3339))
			return nil, ErrSlotConflict
		case errors.Is(err, txmanager.ErrSerializationFailure):
			// Параллельная транзакция заняла тот же слот
			uc.logger.Warn("[CreateBooking] Serialization failure, трактуем как конфликт: %v", err)
			return nil, ErrSlotConflict
		default:
			uc.logger.Error("[CreateBooking] Ошибка создания бронирования: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("[CreateBooking] Бронирование создано: id=%s, status=%s", created.ID, created.Status)

	return &Response{
		ID:           created.ID,
		TeamID:       created.TeamID,
		ServiceID:    created.ServiceID,
		ClientID:     client.ID,
		Title:        created.Title,
		StartTime:    created.StartTime,
		EndTime:      created.EndTime,
		Status:       string(created.Status),
		ServiceName:  service.Name,
		ServicePrice: service.Price,
		Notes:        created.Notes,
		CreatedAt:    created.CreatedAt,
		UpdatedAt:    created.UpdatedAt,
	}, nil
}

// checkSlotFree проверяет занятость интервала с учётом буфера услуги.
// Вызывается внутри транзакции, занятые бронирования блокируются FOR UPDATE.
func (uc *UseCase) checkSlotFree(ctx context.Context, booking *domain.Booking) error {
	bufferedEnd := booking.BufferedEnd()

	occupying, err := uc.bookingRepo.GetByTeamWithFilter(ctx, domain.TeamBookingsFilter{
		TeamID:         booking.TeamID,
		IntersectStart: &booking.StartTime,
		IntersectEnd:   &bufferedEnd,
		OnlyOccupying:  true,
		ForUpdate:      true,
	})
	if err != nil {
		return fmt.Errorf("query occupying bookings: %w", err)
	}
	if len(occupying) > 0 {
		return ErrSlotConflict
	}

	blocked, err := uc.blockedTimeRepo.ListIntersecting(ctx, booking.TeamID, booking.StartTime, bufferedEnd)
	if err != nil {
		return fmt.Errorf("query blocked intervals: %w", err)
	}
	if len(blocked) > 0 {
		return ErrSlotConflict
	}

	return nil
}

// resolveClient возвращает клиента по ID либо находит/создаёт его по гостевым данным
func (uc *UseCase) resolveClient(ctx context.Context, req *Request) (*domain.Client, error) {
	if req.ClientID != nil {
		client, err := uc.clientRepo.GetByID(ctx, *req.ClientID)
		if err != nil {
			if errors.Is(err, clientstorage.ErrClientNotFound) {
				uc.logger.Warn("[CreateBooking] Клиент не найден: clientID=%s", *req.ClientID)
				return nil, ErrClientNotFound
			}
			uc.logger.Error("[CreateBooking] Ошибка получения клиента: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		// Клиент другой команды для этой команды не существует
		if client.TeamID != req.TeamID {
			uc.logger.Warn("[CreateBooking] Клиент принадлежит другой команде: clientID=%s teamID=%s", *req.ClientID, req.TeamID)
			return nil, ErrClientNotFound
		}
		return client, nil
	}

	if err := validateGuestInfo(req.Guest); err != nil {
		uc.logger.Warn("[CreateBooking] Неполные данные гостя: teamID=%s", req.TeamID)
		return nil, err
	}

	// Сначала ищем существующего клиента команды по email
	existing, err := uc.clientRepo.GetByTeamAndEmail(ctx, req.TeamID, req.Guest.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, clientstorage.ErrClientNotFound) {
		uc.logger.Error("[CreateBooking] Ошибка поиска клиента по email: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return uc.createGuestClient(ctx, req)
}

// createGuestClient создаёт нового клиента с уникальным кодом портала.
// Коллизии кода перегенерируются, число попыток ограничено.
func (uc *UseCase) createGuestClient(ctx context.Context, req *Request) (*domain.Client, error) {
	for attempt := 0; attempt < maxPortalCodeAttempts; attempt++ {
		code, err := generatePortalCode()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		client := &domain.Client{
			TeamID:            req.TeamID,
			Name:              req.Guest.Name,
			Email:             req.Guest.Email,
			Phone:             req.Guest.Phone,
			BillingAddress:    req.Guest.BillingAddress,
			BillingCity:       req.Guest.BillingCity,
			BillingProvince:   req.Guest.BillingProvince,
			BillingPostalCode: req.Guest.BillingPostalCode,
			PortalCode:        code,
			PortalEnabled:     true,
		}

		created, err := uc.clientRepo.Create(ctx, client)
		if err == nil {
			uc.logger.Info("[CreateBooking] Создан гостевой клиент: id=%s", created.ID)
			return created, nil
		}
		if errors.Is(err, clientstorage.ErrPortalCodeTaken) {
			continue
		}
		uc.logger.Error("[CreateBooking] Ошибка создания клиента: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return nil, fmt.Errorf("%w: portal code generation exhausted", ErrInternal)
}

func generatePortalCode() (string, error) {
	alphabet := domain.PortalCodeAlphabet
	code := make([]byte, domain.PortalCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		code[i] = alphabet[n.Int64()]
	}
	return string(code), nil
}
