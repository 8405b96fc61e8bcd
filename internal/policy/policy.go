// Package policy holds every authorization rule of the marketplace in one place.
//
// Handlers and services describe who is acting, what they want to do and which record
// they want to do it to; Check answers allow or deny. Nothing here touches HTTP or the
// database, so the rules can be tested on their own.
package policy

import (
	"errors"

	"github.com/mr-prasai2004/realestate/internal/models"
)

var ErrDenied = errors.New("not authorized to perform this action")

type Action string

const (
	CreateProperty Action = "property:create"
	UpdateProperty Action = "property:update"
	DeleteProperty Action = "property:delete"

	CreateBooking      Action = "booking:create"
	ViewBooking        Action = "booking:view"
	DeleteBooking      Action = "booking:delete"
	ViewBookingHistory Action = "booking:history"
	ListAllBookings    Action = "booking:list-all"
	ListOwnerBookings  Action = "booking:list-owned"

	ListUsers  Action = "user:list"
	ViewUser   Action = "user:view"
	UpdateUser Action = "user:update"
	AssignRole Action = "user:assign-role"
	DeleteUser Action = "user:delete"
)

type Actor struct {
	ID   uint
	Role models.Role
}

func ActorOf(u *models.User) Actor {
	return Actor{ID: u.ID, Role: u.Role}
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// Resource identifies the ownership facts of the record an action targets.
// Only the fields relevant to the action need to be set.
type Resource struct {
	PropertyOwnerID uint
	BookingUserID   uint
	UserID          uint
}

func ForProperty(p *models.Property) Resource {
	return Resource{PropertyOwnerID: p.OwnerID}
}

func ForBooking(b *models.BookingDetail) Resource {
	return Resource{PropertyOwnerID: b.OwnerID, BookingUserID: b.UserID}
}

func ForUser(id uint) Resource {
	return Resource{UserID: id}
}

type rule func(a Actor, r Resource) bool

var rules = map[Action]rule{
	CreateProperty: func(a Actor, _ Resource) bool {
		return a.Role == models.RoleOwner || a.Role == models.RoleRenter || a.IsAdmin()
	},
	UpdateProperty: ownsPropertyOrAdmin,
	DeleteProperty: ownsPropertyOrAdmin,

	CreateBooking: func(a Actor, r Resource) bool {
		return a.ID != r.PropertyOwnerID
	},
	ViewBooking:        partyOrAdmin,
	DeleteBooking:      partyOrAdmin,
	ViewBookingHistory: partyOrAdmin,
	ListAllBookings:    adminOnly,
	ListOwnerBookings: func(a Actor, _ Resource) bool {
		return a.Role == models.RoleOwner || a.IsAdmin()
	},

	ListUsers:  adminOnly,
	ViewUser:   selfOrAdmin,
	UpdateUser: selfOrAdmin,
	AssignRole: adminOnly,
	DeleteUser: adminOnly,
}

// Check returns nil when the actor may perform action on r, ErrDenied otherwise.
// Unknown actions are denied.
func Check(a Actor, action Action, r Resource) error {
	allow, ok := rules[action]
	if !ok || !allow(a, r) {
		return ErrDenied
	}
	return nil
}

func adminOnly(a Actor, _ Resource) bool {
	return a.IsAdmin()
}

func ownsPropertyOrAdmin(a Actor, r Resource) bool {
	return a.IsAdmin() || (r.PropertyOwnerID != 0 && a.ID == r.PropertyOwnerID)
}

func partyOrAdmin(a Actor, r Resource) bool {
	if a.IsAdmin() {
		return true
	}
	return (r.BookingUserID != 0 && a.ID == r.BookingUserID) ||
		(r.PropertyOwnerID != 0 && a.ID == r.PropertyOwnerID)
}

func selfOrAdmin(a Actor, r Resource) bool {
	return a.IsAdmin() || (r.UserID != 0 && a.ID == r.UserID)
}
