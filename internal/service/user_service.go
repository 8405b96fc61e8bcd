package service

import (
	"context"
	"errors"

	"github.com/mr-prasai2004/realestate/internal/auth"
	"github.com/mr-prasai2004/realestate/internal/models"
	"github.com/mr-prasai2004/realestate/internal/policy"
	"github.com/mr-prasai2004/realestate/internal/repository"
	"gorm.io/gorm"
)

type UserService interface {
	List(ctx context.Context, actor policy.Actor, page, limit int) ([]models.User, bool, error)
	Get(ctx context.Context, actor policy.Actor, id uint) (*models.User, error)
	Update(ctx context.Context, actor policy.Actor, id uint, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, actor policy.Actor, id uint) error
}

// ListingRemover deletes everything an owner has listed.
type ListingRemover interface {
	DeleteOwned(ctx context.Context, ownerID uint) error
}

type userService struct {
	users    repository.UserRepository
	listings ListingRemover
}

func NewUserService(users repository.UserRepository, listings ListingRemover) UserService {
	return &userService{users: users, listings: listings}
}

// List returns one page of users and whether the page was full.
func (s *userService) List(ctx context.Context, actor policy.Actor, page, limit int) ([]models.User, bool, error) {
	if err := policy.Check(actor, policy.ListUsers, policy.Resource{}); err != nil {
		return nil, false, denied(err)
	}
	_, limit, offset := NormalizePage(page, limit)

	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, false, err
	}
	return users, len(users) == limit, nil
}

func (s *userService) Get(ctx context.Context, actor policy.Actor, id uint) (*models.User, error) {
	if err := policy.Check(actor, policy.ViewUser, policy.ForUser(id)); err != nil {
		return nil, denied(err)
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}
	return user, nil
}

// Update applies the present fields of patch. Changing a role needs the assign-role
// capability; a new password is hashed before it is stored.
func (s *userService) Update(ctx context.Context, actor policy.Actor, id uint, patch models.UserPatch) (*models.User, error) {
	if err := policy.Check(actor, policy.UpdateUser, policy.ForUser(id)); err != nil {
		return nil, denied(err)
	}
	if patch.Role != nil {
		if err := policy.Check(actor, policy.AssignRole, policy.ForUser(id)); err != nil {
			return nil, denied(err)
		}
		if !patch.Role.Valid() {
			return nil, ErrInvalidRole
		}
	}
	if patch.Empty() {
		return nil, ErrEmptyUpdate
	}

	current, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}

	if patch.Email != nil && *patch.Email != current.Email {
		other, err := s.users.FindByEmail(ctx, *patch.Email)
		if err == nil && other.ID != id {
			return nil, ErrEmailTaken
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if patch.Password != nil {
		hash, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		patch.Password = &hash
	}

	if err := s.users.Update(ctx, id, patch.Columns()); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, writeFailed(err)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, actor policy.Actor, id uint) error {
	if err := policy.Check(actor, policy.DeleteUser, policy.ForUser(id)); err != nil {
		return denied(err)
	}
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return notFoundAs(err, ErrUserNotFound)
	}
	// Listings go through the catalog so stored images and cache entries are cleared too.
	if s.listings != nil {
		if err := s.listings.DeleteOwned(ctx, id); err != nil {
			return err
		}
	}
	return writeFailed(s.users.Delete(ctx, id))
}
