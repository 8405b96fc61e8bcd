package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mr-prasai2004/realestate/internal/models"
	"github.com/mr-prasai2004/realestate/internal/policy"
	"github.com/mr-prasai2004/realestate/internal/repository"
	"github.com/mr-prasai2004/realestate/pkg/cache"
	"github.com/mr-prasai2004/realestate/pkg/storage"
	"go.uber.org/zap"
)

const (
	MaxImagesPerRequest = 10
	MaxImageSize        = 10 << 20
)

// ImageUpload is one uploaded file. Open is called once while the image is stored.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

type PropertyService interface {
	List(ctx context.Context, filter models.PropertyFilter) ([]models.Property, int64, error)
	Get(ctx context.Context, id uint) (*models.Property, error)
	ListMine(ctx context.Context, ownerID uint) ([]models.Property, error)
	CheckAvailability(ctx context.Context, id uint, start, end time.Time) (*models.Property, bool, error)
	Create(ctx context.Context, actor policy.Actor, property *models.Property, images []ImageUpload) (*models.Property, error)
	Update(ctx context.Context, actor policy.Actor, id uint, patch models.PropertyPatch, images []ImageUpload) (*models.Property, error)
	Delete(ctx context.Context, actor policy.Actor, id uint) error
	DeleteOwned(ctx context.Context, ownerID uint) error
}

type propertyService struct {
	repo     repository.PropertyRepository
	store    storage.Store
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewPropertyService(repo repository.PropertyRepository, store storage.Store, c cache.Cache, cacheTTL time.Duration) PropertyService {
	if c == nil {
		c = cache.Noop{}
	}
	return &propertyService{repo: repo, store: store, cache: c, cacheTTL: cacheTTL}
}

// cachedProperty carries the associations that Property leaves out of its JSON form.
type cachedProperty struct {
	models.Property
	Images []models.Image `json:"images"`
	Owner  *models.User   `json:"owner"`
}

func propertyKey(id uint) string {
	return "property:" + strconv.FormatUint(uint64(id), 10)
}

func (s *propertyService) List(ctx context.Context, filter models.PropertyFilter) ([]models.Property, int64, error) {
	return s.repo.List(ctx, filter)
}

// Get serves a property from the cache when possible and fills the cache on a miss.
// Cache errors only degrade to a database read.
func (s *propertyService) Get(ctx context.Context, id uint) (*models.Property, error) {
	var cached cachedProperty
	hit, err := s.cache.Get(ctx, propertyKey(id), &cached)
	if err != nil {
		zap.L().Warn("property cache read failed", zap.Uint("property_id", id), zap.Error(err))
	}
	if hit {
		p := cached.Property
		p.Images = cached.Images
		p.Owner = cached.Owner
		return &p, nil
	}

	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrPropertyNotFound)
	}

	entry := cachedProperty{Property: *property, Images: property.Images, Owner: property.Owner}
	if err := s.cache.Set(ctx, propertyKey(id), entry, s.cacheTTL); err != nil {
		zap.L().Warn("property cache write failed", zap.Uint("property_id", id), zap.Error(err))
	}
	return property, nil
}

func (s *propertyService) ListMine(ctx context.Context, ownerID uint) ([]models.Property, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// CheckAvailability reports whether [start, end] lies inside the property's availability
// window. Existing bookings are not consulted.
func (s *propertyService) CheckAvailability(ctx context.Context, id uint, start, end time.Time) (*models.Property, bool, error) {
	if !end.After(start) {
		return nil, false, ErrInvalidDateRange
	}
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, false, notFoundAs(err, ErrPropertyNotFound)
	}
	return property, property.Covers(start, end), nil
}

func (s *propertyService) Create(ctx context.Context, actor policy.Actor, property *models.Property, images []ImageUpload) (*models.Property, error) {
	if err := policy.Check(actor, policy.CreateProperty, policy.Resource{}); err != nil {
		return nil, denied(err)
	}
	if len(images) == 0 {
		return nil, ErrImageRequired
	}
	if err := validateImages(images); err != nil {
		return nil, err
	}
	if !property.AvailableTo.After(property.AvailableFrom) {
		return nil, ErrInvalidWindow
	}

	urls, err := s.storeImages(ctx, images)
	if err != nil {
		return nil, err
	}

	property.OwnerID = actor.ID
	if err := s.repo.Create(ctx, property, urls); err != nil {
		s.removeFiles(ctx, urls)
		return nil, fmt.Errorf("create property: %w", err)
	}
	return property, nil
}

// Update applies patch for the owner or an admin. New uploads are stored first and removed
// again if the transaction fails; files of deleted images are removed after it commits.
func (s *propertyService) Update(ctx context.Context, actor policy.Actor, id uint, patch models.PropertyPatch, images []ImageUpload) (*models.Property, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrPropertyNotFound)
	}
	if err := policy.Check(actor, policy.UpdateProperty, policy.ForProperty(current)); err != nil {
		return nil, denied(err)
	}
	if len(patch.Columns()) == 0 && len(images) == 0 && len(patch.DeleteImages) == 0 {
		return nil, ErrEmptyUpdate
	}
	if err := validateImages(images); err != nil {
		return nil, err
	}

	from, to := current.AvailableFrom, current.AvailableTo
	if patch.AvailableFrom != nil {
		from = *patch.AvailableFrom
	}
	if patch.AvailableTo != nil {
		to = *patch.AvailableTo
	}
	if !to.After(from) {
		return nil, ErrInvalidWindow
	}

	patch.DeleteImages = ownedImages(current, patch.DeleteImages)

	urls, err := s.storeImages(ctx, images)
	if err != nil {
		return nil, err
	}
	patch.NewImages = append(patch.NewImages, urls...)

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.removeFiles(ctx, urls)
		return nil, writeFailed(notFoundAs(err, ErrPropertyNotFound))
	}

	s.removeFiles(ctx, patch.DeleteImages)
	s.invalidate(ctx, id)
	return updated, nil
}

func (s *propertyService) Delete(ctx context.Context, actor policy.Actor, id uint) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundAs(err, ErrPropertyNotFound)
	}
	if err := policy.Check(actor, policy.DeleteProperty, policy.ForProperty(current)); err != nil {
		return denied(err)
	}

	urls, err := s.repo.Delete(ctx, id)
	if err != nil {
		return writeFailed(notFoundAs(err, ErrPropertyNotFound))
	}

	s.removeFiles(ctx, urls)
	s.invalidate(ctx, id)
	return nil
}

// DeleteOwned removes all listings of an owner, their stored images and cache entries.
func (s *propertyService) DeleteOwned(ctx context.Context, ownerID uint) error {
	ids, urls, err := s.repo.DeleteByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	s.removeFiles(ctx, urls)
	for _, id := range ids {
		s.invalidate(ctx, id)
	}
	return nil
}

func validateImages(images []ImageUpload) error {
	if len(images) > MaxImagesPerRequest {
		return fmt.Errorf("%w: at most %d images per request", ErrInvalidImage, MaxImagesPerRequest)
	}
	for _, img := range images {
		if !strings.HasPrefix(img.ContentType, "image/") {
			return fmt.Errorf("%w: %s is not an image", ErrInvalidImage, img.Filename)
		}
		if img.Size > MaxImageSize {
			return fmt.Errorf("%w: %s exceeds 10 MB", ErrInvalidImage, img.Filename)
		}
	}
	return nil
}

func (s *propertyService) storeImages(ctx context.Context, images []ImageUpload) ([]string, error) {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		url, err := s.storeImage(ctx, img)
		if err != nil {
			s.removeFiles(ctx, urls)
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *propertyService) storeImage(ctx context.Context, img ImageUpload) (string, error) {
	rc, err := img.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", img.Filename, err)
	}
	defer rc.Close()
	return s.store.Save(ctx, img.Filename, img.ContentType, rc)
}

// removeFiles deletes stored images. Failures are logged and left behind.
func (s *propertyService) removeFiles(ctx context.Context, urls []string) {
	for _, u := range urls {
		if err := s.store.Remove(ctx, u); err != nil {
			zap.L().Warn("failed to remove image file", zap.String("url", u), zap.Error(err))
		}
	}
}

func (s *propertyService) invalidate(ctx context.Context, id uint) {
	if err := s.cache.Delete(ctx, propertyKey(id)); err != nil {
		zap.L().Warn("property cache invalidation failed", zap.Uint("property_id", id), zap.Error(err))
	}
}

// ownedImages keeps only the URLs that belong to the property.
func ownedImages(p *models.Property, urls []string) []string {
	if len(urls) == 0 {
		return nil
	}
	have := make(map[string]bool, len(p.Images))
	for _, img := range p.Images {
		have[img.URL] = true
	}
	var out []string
	for _, u := range urls {
		if have[u] {
			out = append(out, u)
		}
	}
	return out
}
