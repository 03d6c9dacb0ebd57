package model

// ActorPermission mirrors one embedded permission entry carried by an
// authenticated identity. Used by the resolver when the backing store is
// unavailable.
type ActorPermission struct {
	ID      string `json:"id"`
	Enabled bool   `json:"enabled"`
}

// Actor is the authenticated identity attached to a request after the auth
// gateway resolves the bearer token. It is deliberately store-agnostic: the
// same shape serves admin-store users, legacy users and the development
// fallback identities.
type Actor struct {
	ID          string            `json:"id"`
	Username    string            `json:"username"`
	Email       string            `json:"email,omitempty"`
	Rol         Rol               `json:"role"`
	Permissions []ActorPermission `json:"permissions,omitempty"`
	IsActive    bool              `json:"isActive"`
	IsLegacy    bool              `json:"isLegacy,omitempty"`
}
