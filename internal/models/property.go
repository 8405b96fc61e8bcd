package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type Property struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"type:varchar(255);not null" json:"title"`
	Description   string         `gorm:"type:text;not null" json:"description"`
	PropertyType  string         `gorm:"type:varchar(50)" json:"property_type"`
	Bedrooms      int            `gorm:"not null;default:1" json:"bedrooms"`
	Bathrooms     float64        `gorm:"not null;default:1" json:"bathrooms"`
	SquareFeet    int            `gorm:"not null" json:"square_feet"`
	Price         float64        `gorm:"not null" json:"price"`
	Address       string         `gorm:"type:varchar(255);not null" json:"address"`
	City          string         `gorm:"type:varchar(100);not null;index" json:"city"`
	State         string         `gorm:"type:varchar(100)" json:"state"`
	ZipCode       string         `gorm:"type:varchar(20)" json:"zip_code"`
	Country       string         `gorm:"type:varchar(100)" json:"country"`
	Amenities     datatypes.JSON `gorm:"type:jsonb" json:"amenities"`
	AvailableFrom time.Time      `gorm:"not null" json:"available_from"`
	AvailableTo   time.Time      `gorm:"not null" json:"available_to"`
	OwnerID       uint           `gorm:"not null;index" json:"owner_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	Owner  *User   `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Images []Image `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"-"`
}

// AmenityList decodes the serialized amenity column. A malformed column yields an empty list.
func (p *Property) AmenityList() []string {
	var list []string
	if len(p.Amenities) == 0 {
		return []string{}
	}
	if err := json.Unmarshal(p.Amenities, &list); err != nil || list == nil {
		return []string{}
	}
	return list
}

func (p *Property) SetAmenities(list []string) {
	if list == nil {
		list = []string{}
	}
	raw, _ := json.Marshal(list)
	p.Amenities = datatypes.JSON(raw)
}

func (p *Property) ImageURLs() []string {
	urls := make([]string, len(p.Images))
	for i, img := range p.Images {
		urls[i] = img.URL
	}
	return urls
}

// Covers reports whether [start, end] lies inside the availability window.
func (p *Property) Covers(start, end time.Time) bool {
	return !start.Before(p.AvailableFrom) && !end.After(p.AvailableTo)
}

type Image struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID uint      `gorm:"not null;index" json:"property_id"`
	URL        string    `gorm:"column:image_url;type:text;not null" json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Image) TableName() string {
	return "property_images"
}

// PropertyPatch carries the optional fields of a property update. Nil fields are left untouched;
// NewImages and DeleteImages adjust the image list in the same transaction.
type PropertyPatch struct {
	Title         *string
	Description   *string
	PropertyType  *string
	Bedrooms      *int
	Bathrooms     *float64
	SquareFeet    *int
	Price         *float64
	Address       *string
	City          *string
	State         *string
	ZipCode       *string
	Country       *string
	Amenities     *[]string
	AvailableFrom *time.Time
	AvailableTo   *time.Time

	NewImages    []string
	DeleteImages []string
}

// Columns returns the column assignments for the fields that are present.
func (p PropertyPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.PropertyType != nil {
		cols["property_type"] = *p.PropertyType
	}
	if p.Bedrooms != nil {
		cols["bedrooms"] = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		cols["bathrooms"] = *p.Bathrooms
	}
	if p.SquareFeet != nil {
		cols["square_feet"] = *p.SquareFeet
	}
	if p.Price != nil {
		cols["price"] = *p.Price
	}
	if p.Address != nil {
		cols["address"] = *p.Address
	}
	if p.City != nil {
		cols["city"] = *p.City
	}
	if p.State != nil {
		cols["state"] = *p.State
	}
	if p.ZipCode != nil {
		cols["zip_code"] = *p.ZipCode
	}
	if p.Country != nil {
		cols["country"] = *p.Country
	}
	if p.Amenities != nil {
		var tmp Property
		tmp.SetAmenities(*p.Amenities)
		cols["amenities"] = tmp.Amenities
	}
	if p.AvailableFrom != nil {
		cols["available_from"] = *p.AvailableFrom
	}
	if p.AvailableTo != nil {
		cols["available_to"] = *p.AvailableTo
	}
	return cols
}

// PropertyFilter narrows the public listing query. Zero values are ignored.
type PropertyFilter struct {
	City         string
	PropertyType string
	MinPrice     *float64
	MaxPrice     *float64
	Bedrooms     int
	Bathrooms    float64
	Limit        int
	Offset       int
}
