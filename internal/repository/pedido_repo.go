package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/dto"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrPedidoNoEncontrado = errors.New("pedido no encontrado")

// PedidoRepository is the schema-tolerant persistence adapter for pedidos.
//
// Two invariants hold for every write:
//   - the full JSON snapshot (`data` column) and the structured columns go
//     out in the same statement, so they can never diverge;
//   - only columns that physically exist right now are part of the generated
//     statement, so writes keep working across incremental migrations in
//     either direction. Readers consume the snapshot, which always carries
//     every field.
type PedidoRepository interface {
	Create(ctx context.Context, p *model.Pedido) error
	Update(ctx context.Context, p *model.Pedido) error
	FindByID(ctx context.Context, id string) (*model.Pedido, error)
	GetAll(ctx context.Context) ([]model.Pedido, error)
	GetAllPaginated(ctx context.Context, f dto.PedidoFilter) (*dto.PedidosPaginados, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, term string) ([]model.Pedido, error)
	BulkInsert(ctx context.Context, pedidos []model.Pedido) error
	Clear(ctx context.Context) error

	// ArchivarCompletados moves COMPLETADO pedidos delivered before the cutoff
	// to ARCHIVADO, keeping the snapshot in sync. Used by the archive worker.
	ArchivarCompletados(ctx context.Context, cutoff time.Time) (int64, error)

	// InvalidateSchemaCache drops the cached column discovery. Call after
	// applying migrations.
	InvalidateSchemaCache()
}

// Columns every deployment is expected to have.
var pedidoBaseColumns = []string{
	"id", "numero_pedido_cliente", "cliente", "cliente_id",
	"fecha_pedido", "fecha_entrega", "etapa_actual", "prioridad",
	"secuencia_pedido", "cantidad_piezas", "metros", "observaciones",
	"datos_tecnicos", "antivaho", "camisa", "data",
}

// Columns added by later migrations; any of them may be missing on a given
// deployment.
var pedidoOptionalColumns = []string{
	"nueva_fecha_entrega", "numeros_compra", "vendedor", "vendedor_id",
	"cliche_info_adicional", "anonimo", "compra_cliche", "recepcion_cliche",
	"observaciones_material", "microperforado", "macroperforado",
	"anonimo_post_impresion",
}

type pedidoRepo struct {
	db *gorm.DB

	// Column discovery is cached for the process lifetime and invalidated
	// explicitly when migrations run.
	mu      sync.Mutex
	columns map[string]bool
}

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) InvalidateSchemaCache() {
	r.mu.Lock()
	r.columns = nil
	r.mu.Unlock()
}

// liveColumns returns the set of pedidos columns that physically exist,
// querying information_schema on first use.
func (r *pedidoRepo) liveColumns(tx *gorm.DB) (map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.columns != nil {
		return r.columns, nil
	}

	var rows []struct{ ColumnName string }
	err := tx.Raw(`
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = 'pedidos' AND table_schema = 'public'
	`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("descubriendo columnas de pedidos: %w", err)
	}

	cols := make(map[string]bool, len(rows))
	for _, row := range rows {
		cols[row.ColumnName] = true
	}
	r.columns = cols
	return cols, nil
}

// resolverReferencias refreshes the denormalized cliente/vendedor names from
// the current master records. A dangling vendedor reference is nulled, never
// an error: the pedido write must not fail because a vendedor was deleted.
func (r *pedidoRepo) resolverReferencias(tx *gorm.DB, p *model.Pedido) error {
	if p.ClienteID != nil && *p.ClienteID != "" {
		var nombre string
		// id compared as text: legacy references are not always UUIDs.
		res := tx.Raw(`SELECT nombre FROM clientes WHERE id::text = ?`, *p.ClienteID).Scan(&nombre)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			p.Cliente = nombre
		}
	}

	if p.VendedorID != nil && *p.VendedorID != "" {
		var nombre string
		res := tx.Raw(`SELECT nombre FROM vendedores WHERE id::text = ?`, *p.VendedorID).Scan(&nombre)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			p.VendedorNombre = &nombre
		} else {
			log.Warn().Str("vendedor_id", *p.VendedorID).Str("pedido_id", p.ID).
				Msg("vendedor no encontrado, anulando referencia")
			p.VendedorID = nil
			p.VendedorNombre = nil
		}
	}
	return nil
}

// valorColumna maps a structured column name to the value the statement
// should carry for this pedido. snapshot is the already-marshaled JSON
// representation.
func valorColumna(col string, p *model.Pedido, snapshot []byte) (interface{}, error) {
	switch col {
	case "id":
		return p.ID, nil
	case "numero_pedido_cliente":
		return p.NumeroPedidoCliente, nil
	case "cliente":
		return p.Cliente, nil
	case "cliente_id":
		return p.ClienteID, nil
	case "fecha_pedido":
		return p.FechaPedido, nil
	case "fecha_entrega":
		return p.FechaEntrega, nil
	case "etapa_actual":
		return p.EtapaActual, nil
	case "prioridad":
		return p.Prioridad, nil
	case "secuencia_pedido":
		return p.SecuenciaPedido, nil
	case "cantidad_piezas":
		return p.CantidadPiezas, nil
	case "metros":
		return p.Metros, nil
	case "observaciones":
		return p.Observaciones, nil
	case "datos_tecnicos":
		dt := p.DatosTecnicos
		if dt == nil {
			dt = map[string]interface{}{}
		}
		return json.Marshal(dt)
	case "antivaho":
		return p.Antivaho, nil
	case "camisa":
		return p.Camisa, nil
	case "data":
		return snapshot, nil
	case "nueva_fecha_entrega":
		return p.NuevaFechaEntrega, nil
	case "numeros_compra":
		nc := p.NumerosCompra
		if nc == nil {
			nc = []string{}
		}
		return json.Marshal(nc)
	case "vendedor":
		return p.Vendedor, nil
	case "vendedor_id":
		return p.VendedorID, nil
	case "cliche_info_adicional":
		return p.ClicheInfoAdicional, nil
	case "anonimo":
		return p.Anonimo, nil
	case "compra_cliche":
		return p.CompraCliche, nil
	case "recepcion_cliche":
		return p.RecepcionCliche, nil
	case "observaciones_material":
		return p.ObservacionesMaterial, nil
	case "microperforado":
		return p.Microperforado, nil
	case "macroperforado":
		return p.Macroperforado, nil
	case "anonimo_post_impresion":
		return p.AnonimoPostImpresion, nil
	}
	return nil, fmt.Errorf("columna desconocida: %s", col)
}

func (r *pedidoRepo) Create(ctx context.Context, p *model.Pedido) error {
	return r.createTx(r.db.WithContext(ctx), p)
}

// createTx performs the insert on the given handle so BulkInsert can reuse it
// inside one transaction.
func (r *pedidoRepo) createTx(tx *gorm.DB, p *model.Pedido) error {
	if err := r.resolverReferencias(tx, p); err != nil {
		return err
	}

	// Snapshot after reference resolution so it carries the refreshed names.
	snapshot, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("serializando pedido %s: %w", p.ID, err)
	}

	existing, err := r.liveColumns(tx)
	if err != nil {
		return err
	}

	var cols []string
	var values []interface{}
	addIfLive := func(names []string) error {
		for _, col := range names {
			if !existing[col] {
				continue
			}
			v, err := valorColumna(col, p, snapshot)
			if err != nil {
				return err
			}
			cols = append(cols, col)
			values = append(values, v)
		}
		return nil
	}
	if err := addIfLive(pedidoBaseColumns); err != nil {
		return err
	}
	if err := addIfLive(pedidoOptionalColumns); err != nil {
		return err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	stmt := fmt.Sprintf("INSERT INTO pedidos (%s) VALUES (%s)", strings.Join(cols, ", "), placeholders)
	return tx.Exec(stmt, values...).Error
}

func (r *pedidoRepo) Update(ctx context.Context, p *model.Pedido) error {
	tx := r.db.WithContext(ctx)

	if err := r.resolverReferencias(tx, p); err != nil {
		return err
	}
	snapshot, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("serializando pedido %s: %w", p.ID, err)
	}
	existing, err := r.liveColumns(tx)
	if err != nil {
		return err
	}

	var sets []string
	var values []interface{}
	appendSet := func(names []string) error {
		for _, col := range names {
			if col == "id" || !existing[col] {
				continue
			}
			v, err := valorColumna(col, p, snapshot)
			if err != nil {
				return err
			}
			sets = append(sets, col+" = ?")
			values = append(values, v)
		}
		return nil
	}
	if err := appendSet(pedidoBaseColumns); err != nil {
		return err
	}
	if err := appendSet(pedidoOptionalColumns); err != nil {
		return err
	}

	values = append(values, p.ID)
	stmt := fmt.Sprintf("UPDATE pedidos SET %s WHERE id = ?", strings.Join(sets, ", "))
	res := tx.Exec(stmt, values...)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPedidoNoEncontrado
	}
	return nil
}

type snapshotRow struct {
	Data []byte
}

func decodeSnapshots(rows []snapshotRow) ([]model.Pedido, error) {
	pedidos := make([]model.Pedido, 0, len(rows))
	for _, row := range rows {
		var p model.Pedido
		if err := json.Unmarshal(row.Data, &p); err != nil {
			return nil, fmt.Errorf("decodificando snapshot de pedido: %w", err)
		}
		pedidos = append(pedidos, p)
	}
	return pedidos, nil
}

func (r *pedidoRepo) FindByID(ctx context.Context, id string) (*model.Pedido, error) {
	var row snapshotRow
	res := r.db.WithContext(ctx).Raw(`SELECT data FROM pedidos WHERE id = ?`, id).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrPedidoNoEncontrado
	}
	var p model.Pedido
	if err := json.Unmarshal(row.Data, &p); err != nil {
		return nil, fmt.Errorf("decodificando snapshot de pedido %s: %w", id, err)
	}
	return &p, nil
}

func (r *pedidoRepo) GetAll(ctx context.Context) ([]model.Pedido, error) {
	var rows []snapshotRow
	err := r.db.WithContext(ctx).
		Raw(`SELECT data FROM pedidos ORDER BY secuencia_pedido DESC`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return decodeSnapshots(rows)
}

func (r *pedidoRepo) GetAllPaginated(ctx context.Context, f dto.PedidoFilter) (*dto.PedidosPaginados, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 50
	}

	where := []string{"1=1"}
	var args []interface{}

	if f.FechaDesde != "" {
		where = append(where, "fecha_entrega >= ?")
		args = append(args, f.FechaDesde)
	}
	if f.FechaHasta != "" {
		where = append(where, "fecha_entrega <= ?")
		args = append(args, f.FechaHasta)
	}
	if len(f.Etapas) > 0 {
		// Explicit allow-list overrides the sentinel exclusions.
		where = append(where, "etapa_actual IN ?")
		args = append(args, f.Etapas)
	} else {
		if !f.IncluirArchivados {
			where = append(where, "etapa_actual <> ?")
			args = append(args, model.EtapaArchivado)
		}
		if !f.IncluirCompletados {
			where = append(where, "etapa_actual <> ?")
			args = append(args, model.EtapaCompletado)
		}
	}

	cond := strings.Join(where, " AND ")
	tx := r.db.WithContext(ctx)

	var total int64
	if err := tx.Raw("SELECT COUNT(*) FROM pedidos WHERE "+cond, args...).Scan(&total).Error; err != nil {
		return nil, err
	}

	offset := (f.Page - 1) * f.Limit
	var rows []snapshotRow
	query := "SELECT data FROM pedidos WHERE " + cond +
		" ORDER BY secuencia_pedido DESC LIMIT ? OFFSET ?"
	if err := tx.Raw(query, append(args, f.Limit, offset)...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	pedidos, err := decodeSnapshots(rows)
	if err != nil {
		return nil, err
	}

	return &dto.PedidosPaginados{
		Pedidos: pedidos,
		Pagination: dto.Pagination{
			Page:       f.Page,
			Limit:      f.Limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(f.Limit))),
		},
	}, nil
}

func (r *pedidoRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Exec(`DELETE FROM pedidos WHERE id = ?`, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPedidoNoEncontrado
	}
	return nil
}

func (r *pedidoRepo) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM pedidos`).Error
}

func (r *pedidoRepo) Search(ctx context.Context, term string) ([]model.Pedido, error) {
	pattern := "%" + term + "%"
	var rows []snapshotRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT data FROM pedidos
		WHERE
			numero_pedido_cliente ILIKE @p OR
			cliente ILIKE @p OR
			EXISTS (
				SELECT 1
				FROM jsonb_array_elements_text(numeros_compra) AS numero
				WHERE numero ILIKE @p
			) OR
			etapa_actual ILIKE @p OR
			observaciones ILIKE @p
		ORDER BY secuencia_pedido DESC
	`, map[string]interface{}{"p": pattern}).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return decodeSnapshots(rows)
}

// BulkInsert runs every create inside one transaction: any failure rolls the
// whole batch back.
func (r *pedidoRepo) BulkInsert(ctx context.Context, pedidos []model.Pedido) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range pedidos {
			if err := r.createTx(tx, &pedidos[i]); err != nil {
				return fmt.Errorf("pedido %s: %w", pedidos[i].ID, err)
			}
		}
		return nil
	})
}

func (r *pedidoRepo) ArchivarCompletados(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE pedidos
		SET etapa_actual = ?,
		    data = jsonb_set(data, '{etapaActual}', to_jsonb(?::text))
		WHERE etapa_actual = ? AND fecha_entrega < ?
	`, model.EtapaArchivado, model.EtapaArchivado, model.EtapaCompletado, cutoff)
	return res.RowsAffected, res.Error
}
