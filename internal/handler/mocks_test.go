package handler

// Hand-rolled testify mocks for the store interfaces the handlers
// consume.  Each constructor registers an expectation check via
// t.Cleanup, so a test fails when a declared call never happens.

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/festival-ticketing/internal/model"
	"github.com/iliyamo/festival-ticketing/internal/repository"
)

type mockEventStore struct{ mock.Mock }

func newMockEventStore(t *testing.T) *mockEventStore {
	m := &mockEventStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockEventStore) Create(ctx context.Context, e *model.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEventStore) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	args := m.Called(ctx, id)
	ev, _ := args.Get(0).(*model.Event)
	return ev, args.Error(1)
}

func (m *mockEventStore) GetByIDAndOwner(ctx context.Context, id, organizerID uint64) (*model.Event, error) {
	args := m.Called(ctx, id, organizerID)
	ev, _ := args.Get(0).(*model.Event)
	return ev, args.Error(1)
}

func (m *mockEventStore) UpdateByIDAndOwner(ctx context.Context, e *model.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEventStore) ListByOwner(ctx context.Context, organizerID uint64) ([]model.Event, error) {
	args := m.Called(ctx, organizerID)
	evs, _ := args.Get(0).([]model.Event)
	return evs, args.Error(1)
}

func (m *mockEventStore) ToggleCancel(ctx context.Context, eventID, organizerID uint64) (bool, error) {
	args := m.Called(ctx, eventID, organizerID)
	return args.Bool(0), args.Error(1)
}

func (m *mockEventStore) TicketHolders(ctx context.Context, eventID uint64) ([]repository.TicketHolder, error) {
	args := m.Called(ctx, eventID)
	hs, _ := args.Get(0).([]repository.TicketHolder)
	return hs, args.Error(1)
}

func (m *mockEventStore) RefreshAvgRating(ctx context.Context, eventID uint64) error {
	return m.Called(ctx, eventID).Error(0)
}

type mockSeatStore struct{ mock.Mock }

func newMockSeatStore(t *testing.T) *mockSeatStore {
	m := &mockSeatStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockSeatStore) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*model.Seat)
	return s, args.Error(1)
}

func (m *mockSeatStore) GetByEvent(ctx context.Context, eventID uint64) ([]model.Seat, error) {
	args := m.Called(ctx, eventID)
	seats, _ := args.Get(0).([]model.Seat)
	return seats, args.Error(1)
}

func (m *mockSeatStore) AddBatch(ctx context.Context, eventID uint64, totalNew int, rowLabel, seatType string, priceCents uint32) error {
	return m.Called(ctx, eventID, totalNew, rowLabel, seatType, priceCents).Error(0)
}

type mockTicketStore struct{ mock.Mock }

func newMockTicketStore(t *testing.T) *mockTicketStore {
	m := &mockTicketStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockTicketStore) GetByIDForUser(ctx context.Context, ticketID, userID uint64) (*repository.TicketDetail, error) {
	args := m.Called(ctx, ticketID, userID)
	d, _ := args.Get(0).(*repository.TicketDetail)
	return d, args.Error(1)
}

func (m *mockTicketStore) ListByUser(ctx context.Context, userID uint64) ([]repository.TicketDetail, error) {
	args := m.Called(ctx, userID)
	ds, _ := args.Get(0).([]repository.TicketDetail)
	return ds, args.Error(1)
}

func (m *mockTicketStore) ListByEventForOwner(ctx context.Context, eventID, organizerID uint64) ([]repository.OwnerTicketRow, error) {
	args := m.Called(ctx, eventID, organizerID)
	rows, _ := args.Get(0).([]repository.OwnerTicketRow)
	return rows, args.Error(1)
}

type mockReviewStore struct{ mock.Mock }

func newMockReviewStore(t *testing.T) *mockReviewStore {
	m := &mockReviewStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockReviewStore) GetOrCreateByTicket(ctx context.Context, ticketID uint64) (*model.Review, error) {
	args := m.Called(ctx, ticketID)
	r, _ := args.Get(0).(*model.Review)
	return r, args.Error(1)
}

func (m *mockReviewStore) Submit(ctx context.Context, ticketID uint64, rating uint8, content string) error {
	return m.Called(ctx, ticketID, rating, content).Error(0)
}

type mockDeliveryStore struct{ mock.Mock }

func newMockDeliveryStore(t *testing.T) *mockDeliveryStore {
	m := &mockDeliveryStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockDeliveryStore) GetByID(ctx context.Context, id uint64) (*model.Delivery, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*model.Delivery)
	return d, args.Error(1)
}

type mockBookingStore struct{ mock.Mock }

func newMockBookingStore(t *testing.T) *mockBookingStore {
	m := &mockBookingStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockBookingStore) Book(ctx context.Context, eventID uint64, t *model.Ticket) error {
	return m.Called(ctx, eventID, t).Error(0)
}

func (m *mockBookingStore) Cancel(ctx context.Context, ticketID, userID uint64, now time.Time) error {
	return m.Called(ctx, ticketID, userID, now).Error(0)
}
