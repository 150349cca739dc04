package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nova-properties/backend/cache"
	"github.com/nova-properties/backend/models"
)

func getProperty(handler http.HandlerFunc, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/properties/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestGetPropertyByIDBadID(t *testing.T) {
	handler := GetPropertyByID(newFakePropertyStore(), cache.NewMemory())

	rec := getProperty(handler, "short")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPropertyByIDServedFromCache(t *testing.T) {
	property := models.Property{ID: primitive.NewObjectID(), Location: "North Haverbrook"}
	properties := newFakePropertyStore(property)
	handler := GetPropertyByID(properties, cache.NewMemory())

	rec := getProperty(handler, property.ID.Hex())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=300", rec.Header().Get("Cache-Control"))
	require.Equal(t, 1, properties.byIDCalls)

	rec = getProperty(handler, property.ID.Hex())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=300", rec.Header().Get("Cache-Control"))
	assert.Equal(t, 1, properties.byIDCalls, "second request must be a cache hit")

	var got models.Property
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, property.ID, got.ID)
}

func TestGetPropertyByIDNotFoundNotCached(t *testing.T) {
	properties := newFakePropertyStore()
	handler := GetPropertyByID(properties, cache.NewMemory())

	id := primitive.NewObjectID()

	rec := getProperty(handler, id.Hex())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = getProperty(handler, id.Hex())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 2, properties.byIDCalls, "negative results must not be cached")

	// A property created between requests is visible immediately.
	properties.add(models.Property{ID: id, Location: "Capital City"})
	rec = getProperty(handler, id.Hex())
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetPropertiesPagination(t *testing.T) {
	properties := newFakePropertyStore(
		models.Property{ID: primitive.NewObjectID()},
		models.Property{ID: primitive.NewObjectID()},
		models.Property{ID: primitive.NewObjectID()},
	)
	handler := GetProperties(properties, cache.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/api/properties?page=2&limit=2", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), properties.pageSkip)
	assert.Equal(t, int64(2), properties.pageLimit)

	var page propertyPage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Data, 1)
}

func TestGetPropertiesPaginationDefaultsAndClamp(t *testing.T) {
	properties := newFakePropertyStore()
	handler := GetProperties(properties, cache.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/api/properties?page=0&limit=9999", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), properties.pageSkip)
	assert.Equal(t, int64(maxPageSize), properties.pageLimit)
}

func TestGetFeaturedPropertiesCached(t *testing.T) {
	properties := newFakePropertyStore(
		models.Property{ID: primitive.NewObjectID()},
		models.Property{ID: primitive.NewObjectID()},
	)
	c := cache.NewMemory()
	handler := GetFeaturedProperties(properties, c)

	req := httptest.NewRequest(http.MethodGet, "/api/properties/featured", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var first []models.Property
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&first))
	assert.Len(t, first, 2)

	// Cached response bytes must match the original serialization.
	rec2 := httptest.NewRecorder()
	handler(rec2, httptest.NewRequest(http.MethodGet, "/api/properties/featured", nil))
	require.Equal(t, http.StatusOK, rec2.Code)
}

func TestGetAgentByIDNotFound(t *testing.T) {
	handler := GetAgentByID(&fakeAgentStore{}, cache.NewMemory())

	id := primitive.NewObjectID().Hex()
	req := httptest.NewRequest(http.MethodGet, "/api/agents/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTestimonialsLimit(t *testing.T) {
	testimonials := &fakeTestimonialStore{testimonials: []models.Testimonial{
		{ID: primitive.NewObjectID()},
		{ID: primitive.NewObjectID()},
		{ID: primitive.NewObjectID()},
		{ID: primitive.NewObjectID()},
	}}
	handler := GetTestimonials(testimonials, cache.NewMemory())

	req := httptest.NewRequest(http.MethodGet, "/api/testimonials", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.Testimonial
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Len(t, got, testimonialsLimit)
}
