package place_booking

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/internal/integrations/notify"
	availableStaff "github.com/m04kA/SMC-StaffingService/internal/usecase/available_staff"
)

// Таймаут отправки уведомления после коммита транзакции
const notifyTimeout = 5 * time.Second

// UseCase use case создания и размещения бронирования (Preemption Orchestrator).
//
// Алгоритм, по порядку, первый сработавший шаг выигрывает:
//  1. Прямое назначение: если резолвер вернул свободных сотрудников,
//     берём первого.
//  2. Вытеснение: только для офисных бронирований. Среди живых назначений
//     той же даты ищем первую резиденцию с пересечением чистых
//     (без буфера) 2-часовых окон, снимаем её назначение, возвращаем её
//     в очередь и забираем освободившегося сотрудника.
//  3. Очередь: бронирование остаётся в статусе pending, его подберёт
//     периодический sweep.
//
// Все мутации выполняются в одной сериализуемой транзакции; уведомление
// клиента уходит после коммита и не влияет на результат.
type UseCase struct {
	bookingRepo    BookingRepository
	assignmentRepo AssignmentRepository
	resolver       AvailabilityResolver
	notifier       NotificationSender
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	assignmentRepo AssignmentRepository,
	resolver AvailabilityResolver,
	notifier NotificationSender,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		assignmentRepo: assignmentRepo,
		resolver:       resolver,
		notifier:       notifier,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case размещения бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PlaceBooking: owner=%d, date=%s, time=%s, kind=%s",
		req.OwnerID, req.Date.Format(domain.DateFormat), req.StartTime, req.LocationKind)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("PlaceBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		booking   *domain.Booking
		outcome   Outcome
		staff     *AssignedStaff
		displaced *int64
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Бронирование создаётся сразу в статусе pending: если ни один
		// шаг размещения не сработает, оно уже стоит в очереди sweep'а.
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			OwnerID:      req.OwnerID,
			ServiceDate:  req.Date,
			StartTime:    req.StartTime,
			Address:      req.Address,
			LocationKind: req.LocationKind,
			Status:       domain.StatusPending,
		})
		if err != nil {
			uc.logger.Error("PlaceBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}
		booking = created

		// Шаг 1: прямое назначение через резолвер (буферная семантика).
		candidates, err := uc.resolver.Execute(txCtx, &availableStaff.Request{
			Date:      req.Date,
			StartTime: req.StartTime,
		})
		if err != nil {
			uc.logger.Error("PlaceBooking: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed: %w", ErrInternal, err)
		}

		if first, ok := candidates.First(); ok {
			if err := uc.assign(txCtx, booking, first.ID, now); err != nil {
				return err
			}
			outcome = OutcomeAssigned
			staff = &AssignedStaff{ID: first.ID, Name: first.Name}
			return nil
		}

		// Шаг 2: вытеснение, только office поверх residence.
		if req.LocationKind == domain.LocationOffice {
			victim, err := uc.findPreemptionVictim(txCtx, booking)
			if err != nil {
				return err
			}
			if victim != nil {
				if err := uc.preempt(txCtx, booking, victim, now); err != nil {
					return err
				}
				outcome = OutcomePreempted
				staff = &AssignedStaff{ID: victim.StaffID}
				displaced = &victim.BookingID
				return nil
			}
		}

		// Шаг 3: свободных нет, бронирование остаётся в очереди.
		outcome = OutcomeWaiting
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("PlaceBooking: booking id=%d placed with outcome=%s", booking.ID, outcome)

	// Уведомление после коммита, вне критической секции
	uc.notifyAsync(booking, outcome, staff)

	status := booking.Status
	if outcome != OutcomeWaiting {
		status = domain.StatusAssigned
	}

	return &Response{
		BookingID:          booking.ID,
		OwnerID:            booking.OwnerID,
		Date:               booking.ServiceDate,
		StartTime:          booking.StartTime,
		Address:            booking.Address,
		LocationKind:       string(booking.LocationKind),
		Status:             string(status),
		Outcome:            outcome,
		Staff:              staff,
		DisplacedBookingID: displaced,
		CreatedAt:          booking.CreatedAt,
		UpdatedAt:          booking.UpdatedAt,
	}, nil
}

// assign создает назначение и переводит бронирование в assigned
func (uc *UseCase) assign(ctx context.Context, b *domain.Booking, staffID int64, now time.Time) error {
	_, err := uc.assignmentRepo.Create(ctx, &domain.Assignment{
		AssignedDate: dateOnly(now),
		BookingID:    b.ID,
		StaffID:      staffID,
	})
	if err != nil {
		uc.logger.Error("PlaceBooking: failed to create assignment for booking id=%d: %v", b.ID, err)
		return fmt.Errorf("%w: failed to create assignment: %w", ErrInternal, err)
	}

	if err := uc.bookingRepo.UpdateStatus(ctx, b.ID, domain.StatusAssigned); err != nil {
		uc.logger.Error("PlaceBooking: failed to update booking id=%d status: %v", b.ID, err)
		return fmt.Errorf("%w: failed to update booking status: %w", ErrInternal, err)
	}

	return nil
}

// findPreemptionVictim ищет первое живое назначение той же даты,
// которое офисное бронирование может вытеснить: бронирование-резиденция,
// не завершено, чистые 2-часовые окна пересекаются.
// Вытесняется ТОЛЬКО первое совпадение, даже если конфликтуют несколько.
func (uc *UseCase) findPreemptionVictim(ctx context.Context, b *domain.Booking) (*domain.AssignmentWithBooking, error) {
	newWindow, err := b.ServiceWindow()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute booking window: %w", ErrInternal, err)
	}

	assignments, err := uc.assignmentRepo.GetLiveByDate(ctx, b.ServiceDate)
	if err != nil {
		uc.logger.Error("PlaceBooking: failed to get assignments for date=%s: %v",
			b.ServiceDate.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get assignments: %w", ErrInternal, err)
	}

	for _, a := range assignments {
		if a.Booking.LocationKind != domain.LocationResidence {
			continue
		}
		if a.Booking.IsCompleted() {
			continue
		}

		existingWindow, err := a.Booking.ServiceWindow()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to compute existing window: %w", ErrInternal, err)
		}

		if newWindow.Overlaps(existingWindow) {
			return a, nil
		}
	}

	return nil, nil
}

// preempt снимает назначение с вытесняемого бронирования, возвращает его
// в очередь и назначает освободившегося сотрудника на новое бронирование
func (uc *UseCase) preempt(ctx context.Context, b *domain.Booking, victim *domain.AssignmentWithBooking, now time.Time) error {
	if err := uc.assignmentRepo.Delete(ctx, victim.ID); err != nil {
		uc.logger.Error("PlaceBooking: failed to delete assignment id=%d: %v", victim.ID, err)
		return fmt.Errorf("%w: failed to delete displaced assignment: %w", ErrInternal, err)
	}

	if err := uc.bookingRepo.UpdateStatus(ctx, victim.BookingID, domain.StatusPending); err != nil {
		uc.logger.Error("PlaceBooking: failed to requeue booking id=%d: %v", victim.BookingID, err)
		return fmt.Errorf("%w: failed to requeue displaced booking: %w", ErrInternal, err)
	}

	uc.logger.Info("PlaceBooking: displaced booking id=%d, staff id=%d freed for booking id=%d",
		victim.BookingID, victim.StaffID, b.ID)

	return uc.assign(ctx, b, victim.StaffID, now)
}

// notifyAsync отправляет уведомление владельцу бронирования.
// Fire-and-forget: ошибки логируются и никогда не откатывают назначение.
func (uc *UseCase) notifyAsync(b *domain.Booking, outcome Outcome, staff *AssignedStaff) {
	subject, body := notificationText(b, outcome, staff)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := uc.notifier.Send(ctx, notify.Notification{
			RecipientID: b.OwnerID,
			Subject:     subject,
			Body:        body,
		}); err != nil {
			uc.logger.Warn("PlaceBooking: notification failed for booking id=%d: %v", b.ID, err)
		}
	}()
}

// dateOnly обнуляет время, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
