package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery_backend/internal/domain"
	"gallery_backend/internal/domain/entity"
	jwtmw "gallery_backend/internal/platform/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockCatalogUsecase struct {
	CreateFunc     func(ctx context.Context, ownerID string, d entity.ProductDetails) (*entity.Product, error)
	UpdateFunc     func(ctx context.Context, id string, d entity.ProductDetails) error
	DeleteFunc     func(ctx context.Context, id string) error
	GetFunc        func(ctx context.Context, id string) (*entity.Product, error)
	ListFunc       func(ctx context.Context) ([]entity.Product, error)
	RecordViewFunc func(ctx context.Context, productID, viewerID string) error
}

func (m *mockCatalogUsecase) Create(ctx context.Context, ownerID string, d entity.ProductDetails) (*entity.Product, error) {
	return m.CreateFunc(ctx, ownerID, d)
}

func (m *mockCatalogUsecase) Update(ctx context.Context, id string, d entity.ProductDetails) error {
	return m.UpdateFunc(ctx, id, d)
}

func (m *mockCatalogUsecase) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockCatalogUsecase) Get(ctx context.Context, id string) (*entity.Product, error) {
	return m.GetFunc(ctx, id)
}

func (m *mockCatalogUsecase) List(ctx context.Context) ([]entity.Product, error) {
	return m.ListFunc(ctx)
}

func (m *mockCatalogUsecase) RecordView(ctx context.Context, productID, viewerID string) error {
	if m.RecordViewFunc != nil {
		return m.RecordViewFunc(ctx, productID, viewerID)
	}
	return nil
}

func newRouter(uc *mockCatalogUsecase, userID string) *gin.Engine {
	h := NewCatalogHandler(uc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(jwtmw.ContextUserID, userID)
		}
	})
	r.GET("/products", h.List)
	r.GET("/products/:id", h.Get)
	r.POST("/admin/products", h.Create)
	r.PUT("/admin/products/:id", h.Update)
	r.DELETE("/admin/products/:id", h.Delete)
	return r
}

func send(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCatalogHandler_List(t *testing.T) {
	uc := &mockCatalogUsecase{
		ListFunc: func(ctx context.Context) ([]entity.Product, error) {
			return []entity.Product{{ID: "p1", ProductDetails: entity.ProductDetails{Title: "Sunset", Price: "R$ 10,00"}}}, nil
		},
	}

	w := send(newRouter(uc, ""), http.MethodGet, "/products", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got []entity.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Sunset", got[0].Title)
}

func TestCatalogHandler_Get(t *testing.T) {
	t.Run("records the view with the caller id", func(t *testing.T) {
		var viewer string
		uc := &mockCatalogUsecase{
			GetFunc: func(ctx context.Context, id string) (*entity.Product, error) { return &entity.Product{ID: id}, nil },
			RecordViewFunc: func(ctx context.Context, productID, viewerID string) error {
				viewer = viewerID
				return errors.New("view store down")
			},
		}

		w := send(newRouter(uc, "u1"), http.MethodGet, "/products/p1", nil)

		assert.Equal(t, http.StatusOK, w.Code, "a failed view does not fail the read")
		assert.Equal(t, "u1", viewer)
	})

	t.Run("unknown product", func(t *testing.T) {
		viewed := false
		uc := &mockCatalogUsecase{
			GetFunc: func(ctx context.Context, id string) (*entity.Product, error) { return nil, domain.ErrProductNotFound },
			RecordViewFunc: func(ctx context.Context, productID, viewerID string) error {
				viewed = true
				return nil
			},
		}

		w := send(newRouter(uc, ""), http.MethodGet, "/products/nope", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, viewed)
	})
}

func TestCatalogHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           gin.H
		createErr      error
		expectedStatus int
	}{
		{"created", gin.H{"title": "Sunset", "price": "R$ 10,00", "width": 40}, nil, http.StatusCreated},
		{"missing price", gin.H{"title": "Sunset"}, nil, http.StatusBadRequest},
		{"usecase validation", gin.H{"title": "Sunset", "price": "R$ 10,00", "width": -1}, domain.ErrValidation, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var owner string
			uc := &mockCatalogUsecase{
				CreateFunc: func(ctx context.Context, ownerID string, d entity.ProductDetails) (*entity.Product, error) {
					owner = ownerID
					if tt.createErr != nil {
						return nil, tt.createErr
					}
					return &entity.Product{ID: "p1", ProductDetails: d, OwnerID: ownerID}, nil
				},
			}

			w := send(newRouter(uc, "admin-1"), http.MethodPost, "/admin/products", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusCreated {
				assert.Equal(t, "admin-1", owner)
			}
		})
	}
}

func TestCatalogHandler_UpdateDelete(t *testing.T) {
	uc := &mockCatalogUsecase{
		UpdateFunc: func(ctx context.Context, id string, d entity.ProductDetails) error {
			if id != "p1" {
				return domain.ErrProductNotFound
			}
			return nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			if id != "p1" {
				return domain.ErrProductNotFound
			}
			return nil
		},
	}
	r := newRouter(uc, "admin-1")
	body := gin.H{"title": "New", "price": "R$ 1,00"}

	assert.Equal(t, http.StatusOK, send(r, http.MethodPut, "/admin/products/p1", body).Code)
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodPut, "/admin/products/p2", body).Code)
	assert.Equal(t, http.StatusNoContent, send(r, http.MethodDelete, "/admin/products/p1", nil).Code)
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodDelete, "/admin/products/p2", nil).Code)
}
