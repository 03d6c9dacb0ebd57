package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/dto"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "secreto-de-pruebas"

func adminParaTest(t *testing.T, active bool) *model.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave12345"), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.AdminUser{
		ID:           uuid.New(),
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         string(model.RolAdmin),
		IsActive:     active,
	}
}

func protectedEngine(users *stubUsuarioRepo, salud staticSalud, env string) (*gin.Engine, *service.AuthService) {
	gin.SetMode(gin.TestMode)
	permisos := service.NewPermisosService(users, stubPermisoRepo{}, salud, true)
	auth := service.NewAuthService(users, permisos, service.NewAuditRecorder(&stubAuditRepo{}, 8), testSecret, 1)

	r := gin.New()
	r.GET("/protegido", Auth(auth, users, salud, env), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": ActorFrom(c).Username})
	})
	return r, auth
}

func tokenParaTest(t *testing.T, auth *service.AuthService) string {
	t.Helper()
	resp, err := auth.Login(context.Background(), dto.LoginRequest{
		Username: "admin", Password: "clave12345",
	}, "127.0.0.1", "test")
	require.NoError(t, err)
	return resp.Token
}

func codigoDeRespuesta(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestAuthRejectsMissingToken(t *testing.T) {
	r, _ := protectedEngine(&stubUsuarioRepo{user: adminParaTest(t, true)}, false, "production")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "NO_TOKEN", codigoDeRespuesta(t, w))
}

func TestAuthRejectsMalformedToken(t *testing.T) {
	r, _ := protectedEngine(&stubUsuarioRepo{user: adminParaTest(t, true)}, false, "production")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer no-es-un-jwt")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_TOKEN", codigoDeRespuesta(t, w))
}

func TestAuthRejectsUnknownUser(t *testing.T) {
	user := adminParaTest(t, true)
	conUsuario := &stubUsuarioRepo{user: user}
	_, authConUsuario := protectedEngine(conUsuario, false, "production")
	token := tokenParaTest(t, authConUsuario)

	// Same secret, empty store: the subject no longer resolves.
	r, _ := protectedEngine(&stubUsuarioRepo{}, false, "production")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "USER_NOT_FOUND", codigoDeRespuesta(t, w))
}

func TestAuthRejectsInactiveUser(t *testing.T) {
	user := adminParaTest(t, true)
	conActivo := &stubUsuarioRepo{user: user}
	_, authActivo := protectedEngine(conActivo, false, "production")
	token := tokenParaTest(t, authActivo)

	user.IsActive = false
	r, _ := protectedEngine(&stubUsuarioRepo{user: user}, false, "production")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "USER_INACTIVE", codigoDeRespuesta(t, w))
}

func TestAuthAcceptsValidToken(t *testing.T) {
	users := &stubUsuarioRepo{user: adminParaTest(t, true)}
	r, auth := protectedEngine(users, false, "production")
	token := tokenParaTest(t, auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin")
}
