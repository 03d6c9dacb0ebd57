package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func permisosParaTest(audit *stubAuditRepo) (*service.PermisosService, *service.AuditRecorder) {
	permisos := service.NewPermisosService(&stubUsuarioRepo{}, stubPermisoRepo{}, staticSalud(false), true)
	recorder := service.NewAuditRecorder(audit, 8)
	return permisos, recorder
}

func operador() *model.Actor {
	return &model.Actor{ID: uuid.NewString(), Username: "operador1", Rol: model.RolOperator}
}

func TestRequirePermissionDenies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	audit := &stubAuditRepo{}
	permisos, recorder := permisosParaTest(audit)

	r := gin.New()
	r.GET("/solo-admin", withActor(operador()),
		RequirePermission(permisos, recorder, "usuarios.delete"),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/solo-admin", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)

	var body struct {
		Code               string `json:"code"`
		RequiredPermission string `json:"requiredPermission"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INSUFFICIENT_PERMISSIONS", body.Code)
	assert.Equal(t, "usuarios.delete", body.RequiredPermission)

	recorder.Close()
	events := audit.events()
	require.Len(t, events, 1)
	assert.Equal(t, model.AuditActionPermissionDenied, events[0].Action)
	assert.Equal(t, "operador1", events[0].Username)
}

func TestRequirePermissionGrants(t *testing.T) {
	gin.SetMode(gin.TestMode)
	audit := &stubAuditRepo{}
	permisos, recorder := permisosParaTest(audit)
	defer recorder.Close()

	r := gin.New()
	r.GET("/pedidos", withActor(operador()),
		RequirePermission(permisos, recorder, "pedidos.view"),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pedidos", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, audit.events())
}

func TestRequireAnyPermissionGrantsOnOneMatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	audit := &stubAuditRepo{}
	permisos, recorder := permisosParaTest(audit)
	defer recorder.Close()

	r := gin.New()
	r.GET("/mixto", withActor(operador()),
		RequireAnyPermission(permisos, recorder, "usuarios.delete", "pedidos.view"),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/mixto", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAllPermissionsEchoesMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	audit := &stubAuditRepo{}
	permisos, recorder := permisosParaTest(audit)
	defer recorder.Close()

	r := gin.New()
	r.POST("/importar", withActor(operador()),
		RequireAllPermissions(permisos, recorder, "pedidos.create", "datos.import"),
		func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/importar", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)

	var body struct {
		RequiredPermissions []string `json:"requiredPermissions"`
		MissingPermission   string   `json:"missingPermission"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"pedidos.create", "datos.import"}, body.RequiredPermissions)
	assert.Equal(t, "datos.import", body.MissingPermission)
}

func TestAuditMiddlewareRecordsOnlySuccesses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	audit := &stubAuditRepo{}
	recorder := service.NewAuditRecorder(audit, 8)

	r := gin.New()
	r.PUT("/recurso/:id", withActor(operador()), Audit(recorder, "ACTUALIZAR", "test"),
		func(c *gin.Context) { c.Status(http.StatusOK) })
	r.PUT("/falla/:id", withActor(operador()), Audit(recorder, "ACTUALIZAR", "test"),
		func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/recurso/77?detalle=x", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/falla/78", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	recorder.Close()
	events := audit.events()
	require.Len(t, events, 1)
	assert.Equal(t, "ACTUALIZAR", events[0].Action)
	require.NotNil(t, events[0].AffectedResource)
	assert.Equal(t, "77", *events[0].AffectedResource)
	assert.Contains(t, events[0].Details, "Filtros: detalle=x")
}
