package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mr-prasai2004/realestate/internal/dto"
	"github.com/mr-prasai2004/realestate/internal/middleware"
	"github.com/mr-prasai2004/realestate/internal/models"
	"github.com/mr-prasai2004/realestate/internal/service"
	"github.com/spf13/cast"
)

type PropertyHandler struct {
	svc service.PropertyService
}

func NewPropertyHandler(svc service.PropertyService) *PropertyHandler {
	return &PropertyHandler{svc: svc}
}

func (h *PropertyHandler) RegisterRoutes(e *echo.Echo, authn echo.MiddlewareFunc) {
	g := e.Group("/api/properties")
	g.GET("", h.ListProperties)
	g.POST("/check-availability", h.CheckAvailability)
	g.GET("/user/my-properties", h.ListMyProperties, authn)
	g.GET("/:id", h.GetProperty)
	g.POST("", h.CreateProperty, authn)
	g.PUT("/:id", h.UpdateProperty, authn)
	g.DELETE("/:id", h.DeleteProperty, authn)
}

func (h *PropertyHandler) ListProperties(c echo.Context) error {
	q := &formValues{vals: c.QueryParams()}
	filter := models.PropertyFilter{
		City:         q.str("city"),
		PropertyType: q.str("type"),
		Bedrooms:     q.int("bedrooms"),
		Bathrooms:    q.float("bathrooms"),
	}
	if q.str("minPrice") != "" {
		v := q.float("minPrice")
		filter.MinPrice = &v
	}
	if q.str("maxPrice") != "" {
		v := q.float("maxPrice")
		filter.MaxPrice = &v
	}
	if q.err != nil {
		return q.err
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MaxPrice < *filter.MinPrice {
		return echo.NewHTTPError(http.StatusBadRequest, "maxPrice must be greater than or equal to minPrice")
	}

	page, limit, offset := service.NormalizePage(cast.ToInt(q.str("page")), cast.ToInt(q.str("limit")))
	filter.Limit, filter.Offset = limit, offset

	list, total, err := h.svc.List(c.Request().Context(), filter)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":    true,
		"count":      len(list),
		"data":       dto.ToPropertyResponses(list),
		"pagination": dto.NewPagination(page, limit, total),
	})
}

func (h *PropertyHandler) GetProperty(c echo.Context) error {
	id, err := parseID(c, "property")
	if err != nil {
		return err
	}

	property, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": dto.ToPropertyResponse(property)})
}

func (h *PropertyHandler) ListMyProperties(c echo.Context) error {
	list, err := h.svc.ListMine(c.Request().Context(), middleware.ActorFrom(c).ID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"count":   len(list),
		"data":    dto.ToPropertyResponses(list),
	})
}

func (h *PropertyHandler) CheckAvailability(c echo.Context) error {
	var req dto.CheckAvailabilityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate("endDate", req.EndDate)
	if err != nil {
		return err
	}

	property, available, err := h.svc.CheckAvailability(c.Request().Context(), req.PropertyID, start, end)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data": dto.AvailabilityResponse{
			IsAvailable: available,
			Property: dto.AvailabilityProperty{
				ID:            property.ID,
				Title:         property.Title,
				AvailableFrom: property.AvailableFrom,
				AvailableTo:   property.AvailableTo,
			},
		},
	})
}

func (h *PropertyHandler) CreateProperty(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "expected multipart form data")
	}

	f := &formValues{vals: form.Value}
	req := dto.PropertyForm{
		Title:         f.str("title"),
		Description:   f.str("description"),
		PropertyType:  f.str("property_type"),
		Bedrooms:      f.int("bedrooms"),
		Bathrooms:     f.float("bathrooms"),
		SquareFeet:    f.int("square_feet"),
		Price:         f.float("price"),
		Address:       f.str("address"),
		City:          f.str("city"),
		State:         f.str("state"),
		ZipCode:       f.str("zip_code"),
		Country:       f.str("country"),
		Amenities:     f.list("amenities"),
		AvailableFrom: f.str("available_from"),
		AvailableTo:   f.str("available_to"),
	}
	if f.err != nil {
		return f.err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	from := f.date("available_from")
	to := f.date("available_to")
	if f.err != nil {
		return f.err
	}

	property := &models.Property{
		Title:         req.Title,
		Description:   req.Description,
		PropertyType:  req.PropertyType,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		SquareFeet:    req.SquareFeet,
		Price:         req.Price,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		Country:       req.Country,
		AvailableFrom: from,
		AvailableTo:   to,
	}
	property.SetAmenities(req.Amenities)

	created, err := h.svc.Create(c.Request().Context(), middleware.ActorFrom(c), property, uploadsFrom(form.File["images"]))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"message": "Property created successfully",
		"data":    dto.ToPropertyResponse(created),
	})
}

func (h *PropertyHandler) UpdateProperty(c echo.Context) error {
	id, err := parseID(c, "property")
	if err != nil {
		return err
	}

	vals, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	patch, err := propertyPatch(&formValues{vals: vals})
	if err != nil {
		return err
	}

	var uploads []service.ImageUpload
	if mf := c.Request().MultipartForm; mf != nil {
		uploads = uploadsFrom(mf.File["images"])
	}

	updated, err := h.svc.Update(c.Request().Context(), middleware.ActorFrom(c), id, patch, uploads)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Property updated successfully",
		"data":    dto.ToPropertyResponse(updated),
	})
}

func (h *PropertyHandler) DeleteProperty(c echo.Context) error {
	id, err := parseID(c, "property")
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), middleware.ActorFrom(c), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "Property deleted successfully"})
}

// propertyPatch builds a patch from the fields present in the form.
func propertyPatch(f *formValues) (models.PropertyPatch, error) {
	var p models.PropertyPatch
	text := map[string]**string{
		"title":         &p.Title,
		"description":   &p.Description,
		"property_type": &p.PropertyType,
		"address":       &p.Address,
		"city":          &p.City,
		"state":         &p.State,
		"zip_code":      &p.ZipCode,
		"country":       &p.Country,
	}
	for key, dst := range text {
		if f.has(key) {
			v := f.str(key)
			*dst = &v
		}
	}
	if (p.Title != nil && *p.Title == "") || (p.Description != nil && *p.Description == "") ||
		(p.Address != nil && *p.Address == "") || (p.City != nil && *p.City == "") {
		return p, echo.NewHTTPError(http.StatusBadRequest, "required fields cannot be empty")
	}

	if f.has("bedrooms") {
		v := f.int("bedrooms")
		p.Bedrooms = &v
	}
	if f.has("bathrooms") {
		v := f.float("bathrooms")
		p.Bathrooms = &v
	}
	if f.has("square_feet") {
		v := f.int("square_feet")
		p.SquareFeet = &v
	}
	if f.has("price") {
		v := f.float("price")
		p.Price = &v
	}
	if f.has("amenities") {
		v := f.list("amenities")
		p.Amenities = &v
	}
	if f.has("available_from") {
		v := f.date("available_from")
		p.AvailableFrom = &v
	}
	if f.has("available_to") {
		v := f.date("available_to")
		p.AvailableTo = &v
	}
	if f.has("deleteImages") {
		p.DeleteImages = f.list("deleteImages")
	}
	if f.err != nil {
		return p, f.err
	}

	if (p.Price != nil && *p.Price <= 0) || (p.SquareFeet != nil && *p.SquareFeet <= 0) ||
		(p.Bedrooms != nil && *p.Bedrooms < 0) || (p.Bathrooms != nil && *p.Bathrooms < 0) {
		return p, echo.NewHTTPError(http.StatusBadRequest, "numeric fields must not be negative and price must be positive")
	}
	return p, nil
}
