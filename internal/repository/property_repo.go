package repository

import (
	"context"

	"github.com/mr-prasai2004/realestate/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property, imageURLs []string) error
	FindByID(ctx context.Context, id uint) (*models.Property, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Property, error)
	List(ctx context.Context, filter models.PropertyFilter) ([]models.Property, int64, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Property, error)
	Update(ctx context.Context, id uint, patch models.PropertyPatch) (*models.Property, error)
	Delete(ctx context.Context, id uint) ([]string, error)
	DeleteByOwner(ctx context.Context, ownerID uint) ([]uint, []string, error)
	GetDB() *gorm.DB
}

type propertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) GetDB() *gorm.DB {
	return r.db
}

// Create inserts the property and its image rows in one transaction.
func (r *propertyRepository) Create(ctx context.Context, property *models.Property, imageURLs []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Images", "Owner").Create(property).Error; err != nil {
			return err
		}
		images, err := insertImages(tx, property.ID, imageURLs)
		if err != nil {
			return err
		}
		property.Images = images
		return nil
	})
	return errors.WithStack(err)
}

func (r *propertyRepository) FindByID(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	err := r.db.WithContext(ctx).
		Preload("Images", orderImages).
		Preload("Owner").
		First(&property, id).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &property, nil
}

// FindByIDForUpdate acquires a row-level lock on the property within the given transaction.
func (r *propertyRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Property, error) {
	var property models.Property
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&property, id).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	return &property, nil
}

func (r *propertyRepository) List(ctx context.Context, filter models.PropertyFilter) ([]models.Property, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Property{})
	if filter.City != "" {
		q = q.Where("city ILIKE ?", "%"+filter.City+"%")
	}
	if filter.PropertyType != "" {
		q = q.Where("property_type = ?", filter.PropertyType)
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Bedrooms > 0 {
		q = q.Where("bedrooms >= ?", filter.Bedrooms)
	}
	if filter.Bathrooms > 0 {
		q = q.Where("bathrooms >= ?", filter.Bathrooms)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.WithStack(err)
	}

	var properties []models.Property
	err := q.Preload("Images", orderImages).
		Preload("Owner").
		Order("created_at DESC, id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&properties).Error
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}
	return properties, total, nil
}

func (r *propertyRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.WithContext(ctx).
		Preload("Images", orderImages).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&properties).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return properties, nil
}

// Update locks the row, applies the present fields and adjusts the image list in one
// transaction, then returns the reloaded property.
func (r *propertyRepository) Update(ctx context.Context, id uint, patch models.PropertyPatch) (*models.Property, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.FindByIDForUpdate(ctx, tx, id); err != nil {
			return err
		}

		if cols := patch.Columns(); len(cols) > 0 {
			res := tx.Model(&models.Property{}).Where("id = ?", id).Updates(cols)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNoRowsAffected
			}
		}

		if len(patch.DeleteImages) > 0 {
			err := tx.Where("property_id = ? AND image_url IN ?", id, patch.DeleteImages).
				Delete(&models.Image{}).Error
			if err != nil {
				return err
			}
		}

		_, err := insertImages(tx, id, patch.NewImages)
		return err
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return r.FindByID(ctx, id)
}

// Delete removes the image rows and the property in one transaction and returns the
// URLs of the removed images so the caller can clean up storage.
func (r *propertyRepository) Delete(ctx context.Context, id uint) ([]string, error) {
	var urls []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.FindByIDForUpdate(ctx, tx, id); err != nil {
			return err
		}
		if err := tx.Model(&models.Image{}).
			Where("property_id = ?", id).
			Pluck("image_url", &urls).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Property{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoRowsAffected
		}
		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return urls, nil
}

// DeleteByOwner removes every property of the owner with its image rows in one transaction.
// It returns the removed property ids and image URLs.
func (r *propertyRepository) DeleteByOwner(ctx context.Context, ownerID uint) ([]uint, []string, error) {
	var (
		ids  []uint
		urls []string
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Property{}).
			Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
			Where("owner_id = ?", ownerID).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Model(&models.Image{}).
			Where("property_id IN ?", ids).
			Pluck("image_url", &urls).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id IN ?", ids).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Property{}).Error
	})
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}
	return ids, urls, nil
}

func insertImages(tx *gorm.DB, propertyID uint, urls []string) ([]models.Image, error) {
	if len(urls) == 0 {
		return nil, nil
	}
	images := make([]models.Image, len(urls))
	for i, u := range urls {
		images[i] = models.Image{PropertyID: propertyID, URL: u}
	}
	if err := tx.Create(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func orderImages(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
