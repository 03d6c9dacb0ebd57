package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and applies the
// idempotent SQL patches that bring the schema up to date. Table layout is
// managed here rather than via AutoMigrate: the pedidos table in particular
// needs precise control (JSONB snapshot column, GIN index, optional columns
// added incrementally) that AutoMigrate cannot express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}

	return db, nil
}

// applySchemaPatches runs idempotent DDL. Every statement is guarded by
// IF NOT EXISTS / DO NOTHING semantics so re-running on an already-patched
// schema is a no-op. The pedidos optional columns are added by the later
// patches on purpose: deployments that have not run them yet keep working
// because the persistence adapter discovers the live column set before every
// write generation.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"extension pgcrypto", `CREATE EXTENSION IF NOT EXISTS "pgcrypto"`},

		{"tabla admin_users", `
CREATE TABLE IF NOT EXISTS admin_users (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    username VARCHAR(50) UNIQUE NOT NULL,
    email VARCHAR(255),
    password_hash TEXT NOT NULL,
    first_name VARCHAR(100),
    last_name VARCHAR(100),
    role VARCHAR(50) NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT true,
    last_login TIMESTAMPTZ,
    last_activity TIMESTAMPTZ,
    last_ip VARCHAR(64),
    last_agent TEXT,
    created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
)`},

		// Legacy user table kept for pre-migration identities; ids are free-form.
		{"tabla users (legacy)", `
CREATE TABLE IF NOT EXISTS users (
    id VARCHAR(255) PRIMARY KEY,
    username VARCHAR(50) NOT NULL,
    display_name VARCHAR(100),
    role VARCHAR(50) NOT NULL,
    created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
)`},

		{"tabla user_permissions", `
CREATE TABLE IF NOT EXISTS user_permissions (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID NOT NULL,
    permission_id VARCHAR(100) NOT NULL,
    enabled BOOLEAN NOT NULL DEFAULT true,
    granted_by UUID,
    created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
    CONSTRAINT idx_user_permission UNIQUE (user_id, permission_id)
)`},

		// Grants disappear together with their owning identity.
		{"fk user_permissions -> admin_users", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'user_permissions_user_id_fkey') THEN
    ALTER TABLE user_permissions
      ADD CONSTRAINT user_permissions_user_id_fkey
      FOREIGN KEY (user_id) REFERENCES admin_users(id) ON DELETE CASCADE;
  END IF;
END $$`},

		{"tabla audit_logs", `
CREATE TABLE IF NOT EXISTS audit_logs (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id VARCHAR(255),
    username VARCHAR(50) NOT NULL,
    action VARCHAR(100) NOT NULL,
    module VARCHAR(50) NOT NULL,
    details TEXT,
    ip_address VARCHAR(64),
    user_agent TEXT,
    affected_resource VARCHAR(255),
    metadata JSONB DEFAULT '{}'::jsonb,
    created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
)`},

		{"tabla clientes", `
CREATE TABLE IF NOT EXISTS clientes (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    nombre VARCHAR(255) UNIQUE NOT NULL,
    email VARCHAR(255),
    telefono VARCHAR(50),
    direccion TEXT,
    activo BOOLEAN NOT NULL DEFAULT true,
    created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
)`},

		{"tabla vendedores", `
CREATE TABLE IF NOT EXISTS vendedores (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    nombre VARCHAR(255) UNIQUE NOT NULL,
    email VARCHAR(255),
    telefono VARCHAR(50),
    activo BOOLEAN NOT NULL DEFAULT true,
    created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
)`},

		{"tabla materiales", `
CREATE TABLE IF NOT EXISTS materiales (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    nombre VARCHAR(255) UNIQUE NOT NULL,
    descripcion TEXT,
    stock INT NOT NULL DEFAULT 0,
    activo BOOLEAN NOT NULL DEFAULT true,
    created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
)`},

		{"tabla notificaciones", `
CREATE TABLE IF NOT EXISTS notificaciones (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    tipo VARCHAR(50) NOT NULL,
    titulo VARCHAR(255) NOT NULL,
    mensaje TEXT,
    pedido_id VARCHAR(255),
    leida BOOLEAN NOT NULL DEFAULT false,
    created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
)`},

		// Base pedidos layout: structured columns for indexed access plus the
		// canonical `data` snapshot.
		{"tabla pedidos", `
CREATE TABLE IF NOT EXISTS pedidos (
    id VARCHAR(255) PRIMARY KEY,
    numero_pedido_cliente VARCHAR(255),
    cliente VARCHAR(255),
    cliente_id VARCHAR(255),
    fecha_pedido TIMESTAMPTZ,
    fecha_entrega TIMESTAMPTZ,
    etapa_actual VARCHAR(50),
    prioridad VARCHAR(20),
    secuencia_pedido BIGINT,
    cantidad_piezas INT,
    metros NUMERIC(12,2),
    observaciones TEXT,
    datos_tecnicos JSONB DEFAULT '{}'::jsonb,
    antivaho BOOLEAN DEFAULT false,
    camisa VARCHAR(100),
    data JSONB NOT NULL
)`},

		// migration 000002: optional columns added after initial deployment.
		// ADD COLUMN IF NOT EXISTS keeps this idempotent on patched DBs.
		{"pedidos columnas opcionales (000002)", `
DO $$ BEGIN
  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'pedidos') THEN
    ALTER TABLE pedidos ADD COLUMN IF NOT EXISTS nueva_fecha_entrega TIMESTAMPTZ;
    ALTER TABLE pedidos ADD COLUMN IF NOT EXISTS numeros_compra JSONB DEFAULT '[]'::jsonb;
    ALTER TABLE pedidos ADD COLUMN IF NOT EXISTS vendedor VARCHAR(255);
    ALTER TABLE pedidos ADD COLUMN IF NOT EXISTS vendedor_id VARCHAR(255);
    ALTER TABLE pedidos ADD COLUMN IF NOT EXISTS cliche_info_adicional TEXT;
    ALTER TABLE pedidos ADD COLUMN IF NOT EXISTS anonimo BOOLEAN DEFAULT false;
  END IF;
END $$`},

		// migration 000003: second wave of optional columns.
		{"pedidos columnas opcionales (000003)", `
DO $$ BEGIN
  IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'pedidos') THEN
    ALTER TABLE pedidos ADD COLUMN IF NOT EXISTS compra_cliche TIMESTAMPTZ;
    ALTER TABLE pedidos ADD COLUMN IF NOT EXISTS recepcion_cliche TIMESTAMPTZ;
    ALTER TABLE pedidos ADD COLUMN IF NOT EXISTS observaciones_material TEXT;
    ALTER TABLE pedidos ADD COLUMN IF NOT EXISTS microperforado BOOLEAN DEFAULT false;
    ALTER TABLE pedidos ADD COLUMN IF NOT EXISTS macroperforado BOOLEAN DEFAULT false;
    ALTER TABLE pedidos ADD COLUMN IF NOT EXISTS anonimo_post_impresion VARCHAR(100);
  END IF;
END $$`},

		{"indices", `
DO $$ BEGIN
  CREATE INDEX IF NOT EXISTS idx_pedidos_etapa ON pedidos(etapa_actual);
  CREATE INDEX IF NOT EXISTS idx_pedidos_cliente ON pedidos(cliente);
  CREATE INDEX IF NOT EXISTS idx_pedidos_fecha_entrega ON pedidos(fecha_entrega);
  CREATE INDEX IF NOT EXISTS idx_pedidos_secuencia ON pedidos(secuencia_pedido);
  CREATE INDEX IF NOT EXISTS idx_pedidos_numeros_compra_gin ON pedidos USING gin(numeros_compra);
  CREATE INDEX IF NOT EXISTS idx_admin_users_username ON admin_users(username);
  CREATE INDEX IF NOT EXISTS idx_user_permissions_user_id ON user_permissions(user_id);
  CREATE INDEX IF NOT EXISTS idx_audit_logs_user_id ON audit_logs(user_id);
  CREATE INDEX IF NOT EXISTS idx_audit_logs_created_at ON audit_logs(created_at);
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}

// RunMigrations applies the schema patches for integration tests.
func RunMigrations(db *gorm.DB) error {
	return applySchemaPatches(db)
}
