package policy

import (
	"testing"

	"github.com/mr-prasai2004/realestate/internal/models"
	"github.com/stretchr/testify/assert"
)

var (
	admin  = Actor{ID: 1, Role: models.RoleAdmin}
	owner  = Actor{ID: 2, Role: models.RoleOwner}
	renter = Actor{ID: 3, Role: models.RoleRenter}
	guest  = Actor{ID: 4, Role: models.RoleGuest}
)

func TestCheck_CreateProperty(t *testing.T) {
	assert.NoError(t, Check(admin, CreateProperty, Resource{}))
	assert.NoError(t, Check(owner, CreateProperty, Resource{}))
	assert.NoError(t, Check(renter, CreateProperty, Resource{}))
	assert.ErrorIs(t, Check(guest, CreateProperty, Resource{}), ErrDenied)
}

func TestCheck_UpdateProperty(t *testing.T) {
	res := Resource{PropertyOwnerID: owner.ID}

	assert.NoError(t, Check(owner, UpdateProperty, res))
	assert.NoError(t, Check(admin, UpdateProperty, res))
	assert.ErrorIs(t, Check(renter, UpdateProperty, res), ErrDenied)
	assert.ErrorIs(t, Check(renter, DeleteProperty, res), ErrDenied)
}

func TestCheck_CreateBooking_OwnPropertyDenied(t *testing.T) {
	assert.ErrorIs(t, Check(owner, CreateBooking, Resource{PropertyOwnerID: owner.ID}), ErrDenied)
	assert.NoError(t, Check(renter, CreateBooking, Resource{PropertyOwnerID: owner.ID}))
	assert.NoError(t, Check(guest, CreateBooking, Resource{PropertyOwnerID: owner.ID}))
}

func TestCheck_ViewBooking(t *testing.T) {
	res := Resource{PropertyOwnerID: owner.ID, BookingUserID: renter.ID}

	for _, a := range []Actor{admin, owner, renter} {
		assert.NoError(t, Check(a, ViewBooking, res))
		assert.NoError(t, Check(a, DeleteBooking, res))
		assert.NoError(t, Check(a, ViewBookingHistory, res))
	}
	assert.ErrorIs(t, Check(guest, ViewBooking, res), ErrDenied)
}

func TestCheck_Lists(t *testing.T) {
	assert.NoError(t, Check(admin, ListAllBookings, Resource{}))
	assert.ErrorIs(t, Check(owner, ListAllBookings, Resource{}), ErrDenied)

	assert.NoError(t, Check(owner, ListOwnerBookings, Resource{}))
	assert.NoError(t, Check(admin, ListOwnerBookings, Resource{}))
	assert.ErrorIs(t, Check(renter, ListOwnerBookings, Resource{}), ErrDenied)

	assert.NoError(t, Check(admin, ListUsers, Resource{}))
	assert.ErrorIs(t, Check(renter, ListUsers, Resource{}), ErrDenied)
}

func TestCheck_Users(t *testing.T) {
	self := ForUser(renter.ID)

	assert.NoError(t, Check(renter, ViewUser, self))
	assert.NoError(t, Check(renter, UpdateUser, self))
	assert.ErrorIs(t, Check(renter, ViewUser, ForUser(owner.ID)), ErrDenied)
	assert.ErrorIs(t, Check(renter, AssignRole, self), ErrDenied)
	assert.ErrorIs(t, Check(renter, DeleteUser, self), ErrDenied)
	assert.NoError(t, Check(admin, AssignRole, self))
	assert.NoError(t, Check(admin, DeleteUser, self))
}

func TestCheck_ZeroIDsNeverMatch(t *testing.T) {
	anon := Actor{Role: models.RoleOwner}

	assert.ErrorIs(t, Check(anon, UpdateProperty, Resource{}), ErrDenied)
	assert.ErrorIs(t, Check(anon, ViewBooking, Resource{}), ErrDenied)
}

func TestCheck_UnknownAction(t *testing.T) {
	assert.ErrorIs(t, Check(admin, Action("property:teleport"), Resource{}), ErrDenied)
}
