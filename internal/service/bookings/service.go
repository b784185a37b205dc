package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	assignmentRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/assignment"
	bookingRepo "github.com/m04kA/SMC-StaffingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StaffingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo    BookingRepository
	assignmentRepo AssignmentRepository
	txManager      TransactionManager
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	assignmentRepo AssignmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		assignmentRepo: assignmentRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// GetByID получает бронирование по ID
// Владелец и админ видят бронирование всегда, сотрудник - только если назначен на него
func (s *Service) GetByID(ctx context.Context, id int64, callerID int64, callerRole domain.Role) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d role=%s", id, callerID, callerRole)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	asgn, err := s.liveAssignment(ctx, id)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if err := s.checkReadAccess(booking, asgn, callerID, callerRole); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", callerID, id)
		return nil, err
	}

	resp := models.FromDomainBooking(booking)
	if asgn != nil {
		resp.AssignedStaffID = &asgn.StaffID
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return resp, nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	filter := domain.BookingsFilter{OwnerID: &req.UserID}
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// List получает бронирования с гибкой фильтрацией
// Поддерживает фильтрацию по владельцу, периоду и статусу. Доступно только админам
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest, callerRole domain.Role) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings, owner=%v, status=%v", req.OwnerID, req.Status)

	if callerRole != domain.RoleAdmin {
		s.logger.Warn("List: access denied, role=%s", callerRole)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Update изменяет бронирование
// Доступно только владельцу. Любое изменение возвращает бронирование в очередь:
// статус сбрасывается в pending, живое назначение снимается
func (s *Service) Update(ctx context.Context, bookingID int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: updating booking id=%d by user=%d", bookingID, req.UserID)

	if !req.HasChanges() {
		s.logger.Warn("Update: empty update request for booking id=%d", bookingID)
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	var updated *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}

		if booking.OwnerID != req.UserID {
			return ErrAccessDenied
		}

		if !booking.CanBeRescheduled() {
			return ErrCannotReschedule
		}

		if err := applyChanges(booking, req); err != nil {
			return err
		}

		// Снимаем живое назначение: изменённое бронирование заново проходит подбор
		if err := s.assignmentRepo.DeleteByBookingID(ctx, bookingID); err != nil {
			return fmt.Errorf("%w: Update - failed to drop assignment: %w", ErrInternal, err)
		}

		booking.Status = domain.StatusPending
		if err := s.bookingRepo.Update(ctx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}

		updated = booking
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrAccessDenied) ||
			errors.Is(err, ErrCannotReschedule) || errors.Is(err, ErrInvalidInput) {
			s.logger.Warn("Update: booking id=%d rejected: %v", bookingID, err)
			return nil, err
		}
		s.logger.Error("Update: transaction failed for booking id=%d: %v", bookingID, err)
		return nil, err
	}

	s.logger.Info("Update: successfully updated booking id=%d, status reset to %s", bookingID, updated.Status)
	return models.FromDomainBooking(updated), nil
}

// Delete удаляет бронирование вместе с живым назначением
// Доступно только владельцу, завершённые бронирования удалить нельзя
func (s *Service) Delete(ctx context.Context, bookingID int64, callerID int64) error {
	s.logger.Info("Delete: deleting booking id=%d by user=%d", bookingID, callerID)

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
		}

		if booking.OwnerID != callerID {
			return ErrAccessDenied
		}

		if !booking.CanBeDeleted() {
			return ErrCannotDelete
		}

		if err := s.assignmentRepo.DeleteByBookingID(ctx, bookingID); err != nil {
			return fmt.Errorf("%w: Delete - failed to drop assignment: %w", ErrInternal, err)
		}

		if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrAccessDenied) || errors.Is(err, ErrCannotDelete) {
			s.logger.Warn("Delete: booking id=%d rejected: %v", bookingID, err)
			return err
		}
		s.logger.Error("Delete: transaction failed for booking id=%d: %v", bookingID, err)
		return err
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

// liveAssignment возвращает живое назначение бронирования или nil, если его нет
func (s *Service) liveAssignment(ctx context.Context, bookingID int64) (*domain.AssignmentWithBooking, error) {
	asgn, err := s.assignmentRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, assignmentRepo.ErrAssignmentNotFound) {
			return nil, nil
		}
		s.logger.Error("liveAssignment: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: liveAssignment - repository error: %w", ErrInternal, err)
	}
	return asgn, nil
}

// checkReadAccess проверяет, что вызывающий имеет доступ к бронированию
func (s *Service) checkReadAccess(booking *domain.Booking, asgn *domain.AssignmentWithBooking, callerID int64, callerRole domain.Role) error {
	if callerRole == domain.RoleAdmin {
		return nil
	}
	if booking.OwnerID == callerID {
		return nil
	}
	// Назначенный сотрудник видит своё задание
	if callerRole == domain.RoleStaff && asgn != nil && asgn.StaffID == callerID {
		return nil
	}
	return ErrAccessDenied
}

// applyChanges применяет поля запроса к бронированию с валидацией
func applyChanges(booking *domain.Booking, req *models.UpdateBookingRequest) error {
	if req.ServiceDate != nil {
		date, err := models.ParseServiceDate(*req.ServiceDate)
		if err != nil {
			return fmt.Errorf("%w: invalid service date", ErrInvalidInput)
		}
		booking.ServiceDate = date
	}

	if req.StartTime != nil {
		startTime, err := models.ParseStartTime(*req.StartTime)
		if err != nil {
			return fmt.Errorf("%w: invalid start time", ErrInvalidInput)
		}
		booking.StartTime = startTime
	}

	if req.Address != nil {
		if *req.Address == "" {
			return fmt.Errorf("%w: address cannot be empty", ErrInvalidInput)
		}
		booking.Address = *req.Address
	}

	if req.LocationKind != nil {
		kind, err := models.ToDomainLocationKind(*req.LocationKind)
		if err != nil {
			return fmt.Errorf("%w: invalid location kind", ErrInvalidInput)
		}
		booking.LocationKind = kind
	}

	return nil
}
