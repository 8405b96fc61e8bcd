package service

import (
	"context"
	"io"
	"time"

	"github.com/mr-prasai2004/realestate/internal/models"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// --- Mock UserRepository ---

type mockUserRepo struct {
	createFn      func(ctx context.Context, user *models.User) error
	findByIDFn    func(ctx context.Context, id uint) (*models.User, error)
	findByEmailFn func(ctx context.Context, email string) (*models.User, error)
	listFn        func(ctx context.Context, limit, offset int) ([]models.User, error)
	updateFn      func(ctx context.Context, id uint, cols map[string]any) error
	deleteFn      func(ctx context.Context, id uint) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.createFn(ctx, user)
}
func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.findByEmailFn(ctx, email)
}
func (m *mockUserRepo) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return m.listFn(ctx, limit, offset)
}
func (m *mockUserRepo) Update(ctx context.Context, id uint, cols map[string]any) error {
	return m.updateFn(ctx, id, cols)
}
func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}

// --- Mock PropertyRepository ---

type mockPropertyRepo struct {
	createFn      func(ctx context.Context, p *models.Property, urls []string) error
	findByIDFn    func(ctx context.Context, id uint) (*models.Property, error)
	listFn        func(ctx context.Context, f models.PropertyFilter) ([]models.Property, int64, error)
	listByOwnerFn func(ctx context.Context, ownerID uint) ([]models.Property, error)
	updateFn      func(ctx context.Context, id uint, patch models.PropertyPatch) (*models.Property, error)
	deleteFn      func(ctx context.Context, id uint) ([]string, error)
	deleteOwnerFn func(ctx context.Context, ownerID uint) ([]uint, []string, error)
}

func (m *mockPropertyRepo) Create(ctx context.Context, p *models.Property, urls []string) error {
	return m.createFn(ctx, p, urls)
}
func (m *mockPropertyRepo) FindByID(ctx context.Context, id uint) (*models.Property, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockPropertyRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Property, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockPropertyRepo) List(ctx context.Context, f models.PropertyFilter) ([]models.Property, int64, error) {
	return m.listFn(ctx, f)
}
func (m *mockPropertyRepo) ListByOwner(ctx context.Context, ownerID uint) ([]models.Property, error) {
	return m.listByOwnerFn(ctx, ownerID)
}
func (m *mockPropertyRepo) Update(ctx context.Context, id uint, patch models.PropertyPatch) (*models.Property, error) {
	return m.updateFn(ctx, id, patch)
}
func (m *mockPropertyRepo) Delete(ctx context.Context, id uint) ([]string, error) {
	return m.deleteFn(ctx, id)
}
func (m *mockPropertyRepo) DeleteByOwner(ctx context.Context, ownerID uint) ([]uint, []string, error) {
	return m.deleteOwnerFn(ctx, ownerID)
}
func (m *mockPropertyRepo) GetDB() *gorm.DB { return nil }

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	createFn       func(ctx context.Context, b *models.Booking) error
	findByIDFn     func(ctx context.Context, id uint) (*models.BookingDetail, error)
	listAllFn      func(ctx context.Context, limit, offset int) ([]models.BookingDetail, error)
	listByUserFn   func(ctx context.Context, userID uint) ([]models.BookingDetail, error)
	listByOwnerFn  func(ctx context.Context, ownerID uint) ([]models.BookingDetail, error)
	updateStatusFn func(ctx context.Context, id uint, from, to models.BookingStatus) error
	deleteFn       func(ctx context.Context, id uint) error
}

func (m *mockBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	return m.createFn(ctx, b)
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id uint) (*models.BookingDetail, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockBookingRepo) ListAll(ctx context.Context, limit, offset int) ([]models.BookingDetail, error) {
	return m.listAllFn(ctx, limit, offset)
}
func (m *mockBookingRepo) ListByUser(ctx context.Context, userID uint) ([]models.BookingDetail, error) {
	return m.listByUserFn(ctx, userID)
}
func (m *mockBookingRepo) ListByOwner(ctx context.Context, ownerID uint) ([]models.BookingDetail, error) {
	return m.listByOwnerFn(ctx, ownerID)
}
func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id uint, from, to models.BookingStatus) error {
	return m.updateStatusFn(ctx, id, from, to)
}
func (m *mockBookingRepo) Delete(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}

// --- Mock BookingEventRepository ---

type mockEventRepo struct {
	recordFn func(ctx context.Context, e *models.BookingStatusEvent) error
	listFn   func(ctx context.Context, bookingID uint) ([]models.BookingStatusEvent, error)
}

func (m *mockEventRepo) Record(ctx context.Context, e *models.BookingStatusEvent) error {
	return m.recordFn(ctx, e)
}
func (m *mockEventRepo) ListByBooking(ctx context.Context, bookingID uint) ([]models.BookingStatusEvent, error) {
	return m.listFn(ctx, bookingID)
}

// --- Mock Publisher ---

type published struct {
	key     string
	payload any
}

type mockPublisher struct {
	messages []published
	err      error
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	m.messages = append(m.messages, published{key: routingKey, payload: payload})
	return m.err
}

// --- Mock storage.Store ---

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	args := m.Called(filename, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockStore) Remove(ctx context.Context, url string) error {
	return m.Called(url).Error(0)
}

// --- Mock cache.Cache ---

type memoryCache struct {
	entries map[string]any
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]any{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dst any) (bool, error) {
	v, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	*(dst.(*cachedProperty)) = v.(cachedProperty)
	return true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.entries[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.entries, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}
