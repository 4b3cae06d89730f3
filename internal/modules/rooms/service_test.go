package rooms

import (
	"context"
	"testing"

	"guesthouse/internal/domain"
	"guesthouse/internal/pkg/lock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomRepository) UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) HasActiveForRoom(ctx context.Context, roomID, excludeID int64) (bool, error) {
	args := m.Called(ctx, roomID, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) ActiveBookings(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func newMockedService() (*Service, *MockRoomRepository, *MockBookingRepository) {
	rooms := new(MockRoomRepository)
	bookings := new(MockBookingRepository)
	return NewService(rooms, bookings, lock.NewKeyed()), rooms, bookings
}

func TestTransition_RejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newMockedService()

	_, err := svc.Transition(context.Background(), 1, "vacant")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTransition_OccupiedWithActiveBookingConflicts(t *testing.T) {
	svc, rooms, bookings := newMockedService()

	rooms.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Room{ID: 1, Number: "101", Status: domain.RoomOccupied}, nil)
	bookings.On("HasActiveForRoom", mock.Anything, int64(1), int64(0)).Return(true, nil)

	_, err := svc.Transition(context.Background(), 1, domain.RoomMaintenance)
	assert.ErrorIs(t, err, domain.ErrConflict)
	rooms.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransition_ReservedWithoutBookingIsRepairable(t *testing.T) {
	svc, rooms, bookings := newMockedService()

	// Reserved room whose booking was cancelled through manual data edits.
	rooms.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Room{ID: 1, Number: "101", Status: domain.RoomReserved}, nil)
	bookings.On("HasActiveForRoom", mock.Anything, int64(1), int64(0)).Return(false, nil)
	rooms.On("UpdateStatus", mock.Anything, int64(1), domain.RoomAvailable).Return(nil)

	room, err := svc.Transition(context.Background(), 1, domain.RoomAvailable)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomAvailable, room.Status)
}

func TestTransition_CleaningCompletion(t *testing.T) {
	svc, rooms, _ := newMockedService()

	rooms.On("GetByID", mock.Anything, int64(2)).
		Return(&domain.Room{ID: 2, Number: "102", Status: domain.RoomCleaning}, nil)
	rooms.On("UpdateStatus", mock.Anything, int64(2), domain.RoomAvailable).Return(nil)

	room, err := svc.Transition(context.Background(), 2, domain.RoomAvailable)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomAvailable, room.Status)
	rooms.AssertExpectations(t)
}

func TestSyncFromBookings_RepairsDrift(t *testing.T) {
	svc, rooms, bookings := newMockedService()

	rooms.On("List", mock.Anything).Return([]domain.Room{
		{ID: 1, Number: "101", Status: domain.RoomAvailable},  // should be occupied
		{ID: 2, Number: "102", Status: domain.RoomReserved},   // stale, no booking
		{ID: 3, Number: "103", Status: domain.RoomReserved},   // correct
		{ID: 4, Number: "104", Status: domain.RoomCleaning},   // manual state, untouched
		{ID: 5, Number: "105", Status: domain.RoomMaintenance}, // manual state, untouched
	}, nil)
	bookings.On("ActiveBookings", mock.Anything).Return([]domain.Booking{
		{ID: 10, RoomID: 1, Status: domain.BookingCheckedIn},
		{ID: 11, RoomID: 3, Status: domain.BookingConfirmed},
	}, nil)
	rooms.On("UpdateStatus", mock.Anything, int64(1), domain.RoomOccupied).Return(nil)
	rooms.On("UpdateStatus", mock.Anything, int64(2), domain.RoomAvailable).Return(nil)

	corrected, err := svc.SyncFromBookings(context.Background())
	require.NoError(t, err)

	require.Len(t, corrected, 2)
	assert.Equal(t, int64(1), corrected[0].ID)
	assert.Equal(t, domain.RoomOccupied, corrected[0].Status)
	assert.Equal(t, int64(2), corrected[1].ID)
	assert.Equal(t, domain.RoomAvailable, corrected[1].Status)
	rooms.AssertExpectations(t)
}

func TestSyncFromBookings_NoDrift(t *testing.T) {
	svc, rooms, bookings := newMockedService()

	rooms.On("List", mock.Anything).Return([]domain.Room{
		{ID: 1, Number: "101", Status: domain.RoomOccupied},
	}, nil)
	bookings.On("ActiveBookings", mock.Anything).Return([]domain.Booking{
		{ID: 10, RoomID: 1, Status: domain.BookingCheckedIn},
	}, nil)

	corrected, err := svc.SyncFromBookings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, corrected)
	rooms.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
