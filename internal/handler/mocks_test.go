package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mr-prasai2004/realestate/internal/middleware"
	"github.com/mr-prasai2004/realestate/internal/models"
	"github.com/mr-prasai2004/realestate/internal/policy"
	"github.com/mr-prasai2004/realestate/internal/service"
)

// --- Mock AuthService ---

type mockAuthService struct {
	registerFn       func(ctx context.Context, name, email, password string, role models.Role) (*models.User, string, error)
	loginFn          func(ctx context.Context, email, password string) (*models.User, string, error)
	updatePasswordFn func(ctx context.Context, userID uint, current, next string) error
	forgotFn         func(ctx context.Context, email string) error
	resetFn          func(ctx context.Context, token, password string) error
}

func (m *mockAuthService) Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, string, error) {
	return m.registerFn(ctx, name, email, password, role)
}
func (m *mockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	return m.loginFn(ctx, email, password)
}
func (m *mockAuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	return nil, service.ErrUnauthenticated
}
func (m *mockAuthService) UpdatePassword(ctx context.Context, userID uint, current, next string) error {
	return m.updatePasswordFn(ctx, userID, current, next)
}
func (m *mockAuthService) ForgotPassword(ctx context.Context, email string) error {
	return m.forgotFn(ctx, email)
}
func (m *mockAuthService) ResetPassword(ctx context.Context, token, password string) error {
	return m.resetFn(ctx, token, password)
}

// --- Mock UserService ---

type mockUserService struct {
	listFn   func(ctx context.Context, actor policy.Actor, page, limit int) ([]models.User, bool, error)
	getFn    func(ctx context.Context, actor policy.Actor, id uint) (*models.User, error)
	updateFn func(ctx context.Context, actor policy.Actor, id uint, patch models.UserPatch) (*models.User, error)
	deleteFn func(ctx context.Context, actor policy.Actor, id uint) error
}

func (m *mockUserService) List(ctx context.Context, actor policy.Actor, page, limit int) ([]models.User, bool, error) {
	return m.listFn(ctx, actor, page, limit)
}
func (m *mockUserService) Get(ctx context.Context, actor policy.Actor, id uint) (*models.User, error) {
	return m.getFn(ctx, actor, id)
}
func (m *mockUserService) Update(ctx context.Context, actor policy.Actor, id uint, patch models.UserPatch) (*models.User, error) {
	return m.updateFn(ctx, actor, id, patch)
}
func (m *mockUserService) Delete(ctx context.Context, actor policy.Actor, id uint) error {
	return m.deleteFn(ctx, actor, id)
}

// --- Mock PropertyService ---

type mockPropertyService struct {
	listFn     func(ctx context.Context, filter models.PropertyFilter) ([]models.Property, int64, error)
	getFn      func(ctx context.Context, id uint) (*models.Property, error)
	listMineFn func(ctx context.Context, ownerID uint) ([]models.Property, error)
	checkFn    func(ctx context.Context, id uint, start, end time.Time) (*models.Property, bool, error)
	createFn   func(ctx context.Context, actor policy.Actor, p *models.Property, images []service.ImageUpload) (*models.Property, error)
	updateFn   func(ctx context.Context, actor policy.Actor, id uint, patch models.PropertyPatch, images []service.ImageUpload) (*models.Property, error)
	deleteFn   func(ctx context.Context, actor policy.Actor, id uint) error
}

func (m *mockPropertyService) List(ctx context.Context, filter models.PropertyFilter) ([]models.Property, int64, error) {
	return m.listFn(ctx, filter)
}
func (m *mockPropertyService) Get(ctx context.Context, id uint) (*models.Property, error) {
	return m.getFn(ctx, id)
}
func (m *mockPropertyService) ListMine(ctx context.Context, ownerID uint) ([]models.Property, error) {
	return m.listMineFn(ctx, ownerID)
}
func (m *mockPropertyService) CheckAvailability(ctx context.Context, id uint, start, end time.Time) (*models.Property, bool, error) {
	return m.checkFn(ctx, id, start, end)
}
func (m *mockPropertyService) Create(ctx context.Context, actor policy.Actor, p *models.Property, images []service.ImageUpload) (*models.Property, error) {
	return m.createFn(ctx, actor, p, images)
}
func (m *mockPropertyService) Update(ctx context.Context, actor policy.Actor, id uint, patch models.PropertyPatch, images []service.ImageUpload) (*models.Property, error) {
	return m.updateFn(ctx, actor, id, patch, images)
}
func (m *mockPropertyService) Delete(ctx context.Context, actor policy.Actor, id uint) error {
	return m.deleteFn(ctx, actor, id)
}
func (m *mockPropertyService) DeleteOwned(ctx context.Context, ownerID uint) error {
	return nil
}

// --- Mock BookingService ---

type mockBookingService struct {
	createFn   func(ctx context.Context, actor policy.Actor, propertyID uint, start, end time.Time, message string) (*models.BookingDetail, error)
	getFn      func(ctx context.Context, actor policy.Actor, id uint) (*models.BookingDetail, error)
	listAllFn  func(ctx context.Context, actor policy.Actor, page, limit int) ([]models.BookingDetail, bool, error)
	listMineFn func(ctx context.Context, actor policy.Actor) ([]models.BookingDetail, error)
	ownedFn    func(ctx context.Context, actor policy.Actor) ([]models.BookingDetail, error)
	statusFn   func(ctx context.Context, actor policy.Actor, id uint, status models.BookingStatus) (*models.BookingDetail, error)
	deleteFn   func(ctx context.Context, actor policy.Actor, id uint) error
	historyFn  func(ctx context.Context, actor policy.Actor, id uint) ([]models.BookingStatusEvent, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, actor policy.Actor, propertyID uint, start, end time.Time, message string) (*models.BookingDetail, error) {
	return m.createFn(ctx, actor, propertyID, start, end, message)
}
func (m *mockBookingService) GetBooking(ctx context.Context, actor policy.Actor, id uint) (*models.BookingDetail, error) {
	return m.getFn(ctx, actor, id)
}
func (m *mockBookingService) ListAll(ctx context.Context, actor policy.Actor, page, limit int) ([]models.BookingDetail, bool, error) {
	return m.listAllFn(ctx, actor, page, limit)
}
func (m *mockBookingService) ListMine(ctx context.Context, actor policy.Actor) ([]models.BookingDetail, error) {
	return m.listMineFn(ctx, actor)
}
func (m *mockBookingService) ListOwned(ctx context.Context, actor policy.Actor) ([]models.BookingDetail, error) {
	return m.ownedFn(ctx, actor)
}
func (m *mockBookingService) UpdateStatus(ctx context.Context, actor policy.Actor, id uint, status models.BookingStatus) (*models.BookingDetail, error) {
	return m.statusFn(ctx, actor, id, status)
}
func (m *mockBookingService) DeleteBooking(ctx context.Context, actor policy.Actor, id uint) error {
	return m.deleteFn(ctx, actor, id)
}
func (m *mockBookingService) History(ctx context.Context, actor policy.Actor, id uint) ([]models.BookingStatusEvent, error) {
	return m.historyFn(ctx, actor, id)
}

// --- Helpers ---

var (
	owner  = &models.User{ID: 10, Name: "Olga", Email: "olga@example.com", Role: models.RoleOwner}
	renter = &models.User{ID: 20, Name: "Ravi", Email: "ravi@example.com", Role: models.RoleRenter}
	admin  = &models.User{ID: 1, Name: "Ada", Email: "ada@example.com", Role: models.RoleAdmin}
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = middleware.NewValidator()
	return e
}

func asUser(c echo.Context, u *models.User) echo.Context {
	middleware.SetUser(c, u)
	return c
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
