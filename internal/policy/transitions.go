package policy

import (
	"errors"

	"github.com/mr-prasai2004/realestate/internal/models"
)

var ErrInvalidTransition = errors.New("booking status transition is not allowed")

// Relation is how an actor stands to a particular booking.
type Relation string

const (
	RelRenter Relation = "renter"
	RelOwner  Relation = "owner"
	RelAdmin  Relation = "admin"
	RelNone   Relation = "none"
)

// RelationTo resolves the strongest relation the actor has to the booking.
// Admin wins over ownership, ownership over being the renter.
func RelationTo(a Actor, r Resource) Relation {
	switch {
	case a.IsAdmin():
		return RelAdmin
	case r.PropertyOwnerID != 0 && a.ID == r.PropertyOwnerID:
		return RelOwner
	case r.BookingUserID != 0 && a.ID == r.BookingUserID:
		return RelRenter
	}
	return RelNone
}

type edge struct {
	from models.BookingStatus
	to   models.BookingStatus
}

// transitions lists every legal status change and who may perform it.
// rejected and cancelled have no outgoing edges.
var transitions = map[edge][]Relation{
	{models.StatusPending, models.StatusApproved}:   {RelOwner, RelAdmin},
	{models.StatusPending, models.StatusRejected}:   {RelOwner, RelAdmin},
	{models.StatusPending, models.StatusCancelled}:  {RelRenter, RelOwner, RelAdmin},
	{models.StatusApproved, models.StatusCancelled}: {RelRenter, RelOwner, RelAdmin},
}

// CanTransition checks a status change. It returns ErrDenied when rel may not move any
// booking into to, ErrInvalidTransition when no edge from -> to exists, and ErrDenied
// when the edge exists but rel may not take it. A relation with no rights is denied first
// so the current status is not disclosed to it.
func CanTransition(from, to models.BookingStatus, rel Relation) error {
	if !mayReach(to, rel) {
		return ErrDenied
	}
	allowed, ok := transitions[edge{from, to}]
	if !ok {
		return ErrInvalidTransition
	}
	for _, r := range allowed {
		if r == rel {
			return nil
		}
	}
	return ErrDenied
}

// mayReach reports whether rel may take some edge into to. Statuses nothing can move
// into (pending) are reachable by anyone with a relation, so they fail as invalid.
func mayReach(to models.BookingStatus, rel Relation) bool {
	if rel == RelNone {
		return false
	}
	incoming := false
	for e, allowed := range transitions {
		if e.to != to {
			continue
		}
		incoming = true
		for _, r := range allowed {
			if r == rel {
				return true
			}
		}
	}
	return !incoming
}

// Terminal reports whether a booking in status s can no longer change.
func Terminal(s models.BookingStatus) bool {
	for e := range transitions {
		if e.from == s {
			return false
		}
	}
	return true
}
