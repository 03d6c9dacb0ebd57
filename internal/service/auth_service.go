package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/dto"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrCredencialesInvalidas = errors.New("credenciales invalidas")
	ErrUsuarioInactivo       = errors.New("usuario inactivo")
	ErrUsuarioNoEncontrado   = errors.New("usuario no encontrado")
	ErrUsuarioDuplicado      = errors.New("el nombre de usuario ya existe")
	ErrPasswordIncorrecta    = errors.New("la contrasena actual no es correcta")
)

// Claims carried inside the access token. Subject is the user id.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies access tokens and manages the admin user
// accounts behind them.
type AuthService struct {
	users      repository.UsuarioRepository
	permisos   *PermisosService
	recorder   *AuditRecorder
	jwtSecret  []byte
	expiration time.Duration
}

func NewAuthService(users repository.UsuarioRepository, permisos *PermisosService, recorder *AuditRecorder, jwtSecret string, expirationHours int) *AuthService {
	if expirationHours < 1 {
		expirationHours = 8
	}
	return &AuthService{
		users:      users,
		permisos:   permisos,
		recorder:   recorder,
		jwtSecret:  []byte(jwtSecret),
		expiration: time.Duration(expirationHours) * time.Hour,
	}
}

// Login verifies the credentials, stamps last-login and returns a signed
// token. A wrong password and an unknown username are indistinguishable to
// the caller on purpose.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest, ip, userAgent string) (*dto.LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredencialesInvalidas
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrCredencialesInvalidas
	}
	if !user.IsActive {
		return nil, ErrUsuarioInactivo
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	go func() {
		bg, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.users.TouchLogin(bg, user.ID, ip, userAgent); err != nil {
			log.Warn().Err(err).Str("userId", user.ID.String()).Msg("auth: fallo actualizando last_login")
		}
	}()

	s.recorder.Record(model.AuditLog{
		UserID:    user.ID.String(),
		Username:  user.Username,
		Action:    model.AuditActionLogin,
		Module:    "auth",
		Details:   fmt.Sprintf("Inicio de sesion de %s", user.Username),
		IPAddress: ip,
		UserAgent: userAgent,
	})

	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(s.expiration.Seconds()),
		User:      s.toResponse(ctx, user),
	}, nil
}

// ParseToken verifies signature and expiry and returns the claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("metodo de firma inesperado: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrCredencialesInvalidas
	}
	return claims, nil
}

// ResolveActor looks the token subject up in the primary store and falls back
// to the legacy table for pre-migration identities.
func (s *AuthService) ResolveActor(ctx context.Context, userID string) (*model.Actor, error) {
	if uid, err := uuid.Parse(userID); err == nil {
		user, err := s.users.FindByID(ctx, uid)
		if err == nil {
			if !user.IsActive {
				return nil, ErrUsuarioInactivo
			}
			actor := &model.Actor{
				ID:       user.ID.String(),
				Username: user.Username,
				Rol:      model.ParseRol(user.Role),
				IsActive: true,
			}
			if user.Email != nil {
				actor.Email = *user.Email
			}
			return actor, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	legacy, err := s.users.FindLegacyByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNoEncontrado
		}
		return nil, err
	}
	return &model.Actor{
		ID:       legacy.ID,
		Username: legacy.Username,
		Rol:      model.ParseRol(legacy.Role),
		IsActive: true,
		IsLegacy: true,
	}, nil
}

// ChangePassword lets a user rotate their own password.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req dto.ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUsuarioNoEncontrado
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return ErrPasswordIncorrecta
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

// ResetPassword sets a new password for another user, without knowing the
// current one. Gated by usuarios.admin at the route.
func (s *AuthService) ResetPassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUsuarioNoEncontrado
		}
		return err
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

// CrearUsuario registers a new admin account.
func (s *AuthService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	if _, err := s.users.FindByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsuarioDuplicado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.AdminUser{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         string(model.ParseRol(req.Role)),
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := s.toResponse(ctx, user)
	return &resp, nil
}

func (s *AuthService) ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNoEncontrado
		}
		return nil, err
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.FirstName != nil {
		user.FirstName = req.FirstName
	}
	if req.LastName != nil {
		user.LastName = req.LastName
	}
	if req.Role != "" {
		user.Role = string(model.ParseRol(req.Role))
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := s.toResponse(ctx, user)
	return &resp, nil
}

func (s *AuthService) ListarUsuarios(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error) {
	var (
		users []model.AdminUser
		err   error
	)
	if incluirInactivos {
		users, err = s.users.ListAll(ctx)
	} else {
		users, err = s.users.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		out[i] = s.toResponse(ctx, &users[i])
	}
	return out, nil
}

func (s *AuthService) ObtenerUsuario(ctx context.Context, id uuid.UUID) (*dto.UsuarioResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNoEncontrado
		}
		return nil, err
	}
	resp := s.toResponse(ctx, user)
	return &resp, nil
}

func (s *AuthService) EliminarUsuario(ctx context.Context, id uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUsuarioNoEncontrado
		}
		return err
	}
	return s.users.Delete(ctx, id)
}

func (s *AuthService) EliminarUsuarios(ctx context.Context, ids []string) error {
	uids := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		uid, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("id invalido %q: %w", raw, err)
		}
		uids = append(uids, uid)
	}
	return s.users.BulkDelete(ctx, uids)
}

func (s *AuthService) ActivarUsuario(ctx context.Context, id uuid.UUID) error {
	return s.users.Reactivate(ctx, id)
}

func (s *AuthService) DesactivarUsuario(ctx context.Context, id uuid.UUID) error {
	return s.users.Deactivate(ctx, id)
}

func (s *AuthService) generateToken(user *model.AdminUser) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: user.Username,
		Role:     string(model.ParseRol(user.Role)),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *AuthService) toResponse(ctx context.Context, user *model.AdminUser) dto.UsuarioResponse {
	resp := dto.UsuarioResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(model.ParseRol(user.Role)),
		IsActive:  user.IsActive,
	}
	if perms, err := s.permisos.EffectivePermissions(ctx, user.ID.String(), model.ParseRol(user.Role)); err == nil {
		items := make([]dto.PermisoItem, len(perms))
		for i, p := range perms {
			items[i] = dto.PermisoItem{ID: p.PermissionID, Enabled: p.Enabled}
		}
		resp.Permissions = items
	}
	return resp
}
