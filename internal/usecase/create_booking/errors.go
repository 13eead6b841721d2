package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена, неактивна
	// или принадлежит другой команде
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrClientNotFound возвращается, когда клиент по переданному ID не найден
	ErrClientNotFound = errors.New("create_booking: client not found")

	// ErrMissingClientInfo возвращается в гостевом флоу при отсутствии
	// обязательных контактных полей
	ErrMissingClientInfo = errors.New("create_booking: client name, email and phone are required")

	// ErrLeadTimeViolation возвращается, когда начало бронирования нарушает
	// минимальный интервал предупреждения услуги
	ErrLeadTimeViolation = errors.New("create_booking: booking violates the service lead time")

	// ErrHorizonViolation возвращается, когда начало бронирования дальше
	// горизонта бронирования услуги
	ErrHorizonViolation = errors.New("create_booking: booking is beyond the advance window")

	// ErrSlotConflict возвращается, когда слот занят другим бронированием
	// или блокировкой между чтением и записью; вызывающий должен заново
	// запросить доступность и повторить
	ErrSlotConflict = errors.New("create_booking: slot is no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
