package dto

type UsuarioResponse struct {
	ID          string        `json:"id"`
	Username    string        `json:"username"`
	Email       *string       `json:"email,omitempty"`
	FirstName   *string       `json:"firstName,omitempty"`
	LastName    *string       `json:"lastName,omitempty"`
	Role        string        `json:"role"`
	IsActive    bool          `json:"isActive"`
	Permissions []PermisoItem `json:"permissions,omitempty"`
}

type CrearUsuarioRequest struct {
	Username  string  `json:"username" binding:"required"`
	Password  string  `json:"password" binding:"required" validate:"min=8"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Role      string  `json:"role" binding:"required"`
}

type ActualizarUsuarioRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Role      string  `json:"role,omitempty"`
	Password  string  `json:"password,omitempty" validate:"omitempty,min=8"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// PermisoItem is one permission entry on a user response or a grant update.
type PermisoItem struct {
	ID      string `json:"id" binding:"required"`
	Enabled bool   `json:"enabled"`
}

type ActualizarPermisosRequest struct {
	Permissions []PermisoItem `json:"permissions" binding:"required"`
}
