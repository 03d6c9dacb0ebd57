package repository

import (
	"context"
	sqldriver "database/sql/driver"
	"encoding/json"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/dto"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRepo(t *testing.T) (PedidoRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewPedidoRepository(gdb), mock
}

func columnRows(cols ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"column_name"})
	for _, c := range cols {
		rows.AddRow(c)
	}
	return rows
}

func pedidoDePrueba() model.Pedido {
	return model.Pedido{
		ID:                  "p-1",
		NumeroPedidoCliente: "N-100",
		Cliente:             "ACME",
		EtapaActual:         model.EtapaPendiente,
		Prioridad:           model.PrioridadNormal,
		SecuenciaPedido:     1,
		CantidadPiezas:      500,
		Metros:              decimal.NewFromInt(120),
	}
}

func TestCreateIncludesOnlyLiveColumns(t *testing.T) {
	repo, mock := newMockRepo(t)

	// Only the base columns exist on this deployment.
	mock.ExpectQuery("SELECT column_name").WillReturnRows(columnRows(pedidoBaseColumns...))

	stmt := "INSERT INTO pedidos (" + strings.Join(pedidoBaseColumns, ", ") + ") VALUES"
	mock.ExpectExec(regexp.QuoteMeta(stmt)).WillReturnResult(sqlmock.NewResult(0, 1))

	p := pedidoDePrueba()
	p.Vendedor = strPtr("Luis") // no backing column, must be dropped from the statement
	require.NoError(t, repo.Create(context.Background(), &p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIncludesOptionalColumnsWhenLive(t *testing.T) {
	repo, mock := newMockRepo(t)

	all := append(append([]string{}, pedidoBaseColumns...), pedidoOptionalColumns...)
	mock.ExpectQuery("SELECT column_name").WillReturnRows(columnRows(all...))
	mock.ExpectExec("INSERT INTO pedidos \\(.*vendedor_id.*\\) VALUES").
		WillReturnResult(sqlmock.NewResult(0, 1))

	p := pedidoDePrueba()
	require.NoError(t, repo.Create(context.Background(), &p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWritesSnapshotAlongsideStructuredColumns(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT column_name").WillReturnRows(columnRows(pedidoBaseColumns...))

	p := pedidoDePrueba()
	snapshot, err := json.Marshal(&p)
	require.NoError(t, err)

	// `data` is the last base column; the snapshot travels in the same INSERT.
	mock.ExpectExec("INSERT INTO pedidos").
		WithArgs(snapshotAsLastArg(len(pedidoBaseColumns), snapshot)...).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), &p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNullsDanglingVendedorReference(t *testing.T) {
	repo, mock := newMockRepo(t)

	// The referenced vendedor no longer exists.
	mock.ExpectQuery("SELECT nombre FROM vendedores WHERE id::text = ").
		WithArgs("v-404").
		WillReturnRows(sqlmock.NewRows([]string{"nombre"}))
	mock.ExpectQuery("SELECT column_name").WillReturnRows(columnRows(pedidoBaseColumns...))
	mock.ExpectExec("UPDATE pedidos SET").WillReturnResult(sqlmock.NewResult(0, 1))

	p := pedidoDePrueba()
	p.VendedorID = strPtr("v-404")
	p.VendedorNombre = strPtr("Luis")

	require.NoError(t, repo.Update(context.Background(), &p))
	assert.Nil(t, p.VendedorID)
	assert.Nil(t, p.VendedorNombre)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUnknownPedido(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT column_name").WillReturnRows(columnRows(pedidoBaseColumns...))
	mock.ExpectExec("UPDATE pedidos SET").WillReturnResult(sqlmock.NewResult(0, 0))

	p := pedidoDePrueba()
	err := repo.Update(context.Background(), &p)
	assert.ErrorIs(t, err, ErrPedidoNoEncontrado)
}

func TestGetAllPaginatedExcludesSentinelStagesByDefault(t *testing.T) {
	repo, mock := newMockRepo(t)

	p := pedidoDePrueba()
	snapshot, _ := json.Marshal(&p)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM pedidos WHERE 1=1 AND etapa_actual <> \$1 AND etapa_actual <> \$2`).
		WithArgs(model.EtapaArchivado, model.EtapaCompletado).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT data FROM pedidos WHERE 1=1 AND etapa_actual <> \$1 AND etapa_actual <> \$2 ORDER BY secuencia_pedido DESC LIMIT \$3 OFFSET \$4`).
		WithArgs(model.EtapaArchivado, model.EtapaCompletado, 50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(snapshot))

	page, err := repo.GetAllPaginated(context.Background(), dto.PedidoFilter{})
	require.NoError(t, err)
	assert.Len(t, page.Pedidos, 1)
	assert.Equal(t, int64(1), page.Pagination.Total)
	assert.Equal(t, 1, page.Pagination.TotalPages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllPaginatedEtapasAllowListOverridesExclusions(t *testing.T) {
	repo, mock := newMockRepo(t)

	p := pedidoDePrueba()
	p.EtapaActual = model.EtapaArchivado
	snapshot, _ := json.Marshal(&p)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM pedidos WHERE 1=1 AND etapa_actual IN \(\$1,\$2\)`).
		WithArgs(model.EtapaArchivado, model.EtapaCompletado).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT data FROM pedidos WHERE 1=1 AND etapa_actual IN \(\$1,\$2\) ORDER BY secuencia_pedido DESC LIMIT \$3 OFFSET \$4`).
		WithArgs(model.EtapaArchivado, model.EtapaCompletado, 50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(snapshot))

	page, err := repo.GetAllPaginated(context.Background(), dto.PedidoFilter{
		Etapas: []string{model.EtapaArchivado, model.EtapaCompletado},
	})
	require.NoError(t, err)
	assert.Len(t, page.Pedidos, 1)
	assert.Equal(t, model.EtapaArchivado, page.Pedidos[0].EtapaActual)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchUsesSnapshotReads(t *testing.T) {
	repo, mock := newMockRepo(t)

	p := pedidoDePrueba()
	snapshot, _ := json.Marshal(&p)

	mock.ExpectQuery(`SELECT data FROM pedidos[\s\S]*ILIKE[\s\S]*jsonb_array_elements_text`).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(snapshot))

	pedidos, err := repo.Search(context.Background(), "N-100")
	require.NoError(t, err)
	assert.Len(t, pedidos, 1)
	assert.Equal(t, "N-100", pedidos[0].NumeroPedidoCliente)
}

func TestBulkInsertRollsBackOnFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT column_name").WillReturnRows(columnRows(pedidoBaseColumns...))
	mock.ExpectExec("INSERT INTO pedidos").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO pedidos").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	p1 := pedidoDePrueba()
	p2 := pedidoDePrueba()
	p2.ID = "p-2"

	err := repo.BulkInsert(context.Background(), []model.Pedido{p1, p2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "p-2")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchivarCompletados(t *testing.T) {
	repo, mock := newMockRepo(t)

	cutoff := time.Now().AddDate(0, 0, -30)
	mock.ExpectExec(`UPDATE pedidos[\s\S]*jsonb_set`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.ArchivarCompletados(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func strPtr(s string) *string { return &s }

// snapshotAsLastArg builds n matchers: wildcards for the structured columns
// and an exact byte match for the trailing snapshot.
func snapshotAsLastArg(n int, snapshot []byte) []sqldriver.Value {
	out := make([]sqldriver.Value, n)
	for i := range out {
		out[i] = sqlmock.AnyArg()
	}
	out[n-1] = bytesArg(snapshot)
	return out
}

type bytesArg []byte

func (a bytesArg) Match(v sqldriver.Value) bool {
	got, ok := v.([]byte)
	return ok && string(got) == string(a)
}
