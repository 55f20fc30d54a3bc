package catalog

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fitbook/internal/domain"
	"fitbook/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// catalogRouter mounts the catalog routes the same way the api binary
// does: reads for every authenticated user, mutations behind the
// provider role check. Identity comes from test headers instead of a
// real token.
func catalogRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	protected := r.Group("/")
	protected.Use(func(c *gin.Context) {
		c.Set("user_id", int64(1))
		c.Set("role", c.GetHeader("X-Test-Role"))
		c.Next()
	})
	h.RegisterRoutes(protected)

	providerOnly := protected.Group("/")
	providerOnly.Use(middleware.ProviderOnly())
	h.RegisterProviderRoutes(providerOnly)

	return r
}

func TestCatalogMutationsRequireProviderRole(t *testing.T) {
	repo := new(MockServiceRepository)
	r := catalogRouter(NewHandler(NewService(repo)))

	body := `{"name":"Personal training","duration_minutes":60,"price":1500}`

	req := httptest.NewRequest(http.MethodPost, "/services", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-Role", string(domain.RoleClient))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	repo.AssertNotCalled(t, "Create")

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.TrainingService")).Return(nil)

	req = httptest.NewRequest(http.MethodPost, "/services", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-Role", string(domain.RoleProvider))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	repo.AssertExpectations(t)
}

func TestCatalogListOpenToClients(t *testing.T) {
	repo := new(MockServiceRepository)
	repo.On("ListByProvider", mock.Anything, int64(1), false).Return([]domain.TrainingService{}, nil)
	r := catalogRouter(NewHandler(NewService(repo)))

	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	req.Header.Set("X-Test-Role", string(domain.RoleClient))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
