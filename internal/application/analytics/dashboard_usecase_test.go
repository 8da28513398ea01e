package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-control/internal/application/analytics"
	"github.com/jhoicas/stock-control/internal/application/auth"
	"github.com/jhoicas/stock-control/internal/application/dto"
	"github.com/jhoicas/stock-control/internal/application/inventory"
	"github.com/jhoicas/stock-control/internal/domain"
	"github.com/jhoicas/stock-control/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-control/internal/domain/inventory"
	"github.com/jhoicas/stock-control/internal/testutil/memstore"
)

type fakeExporter struct {
	got *dto.ReportSummaryDTO
}

func (f *fakeExporter) GenerateReportPDF(_ context.Context, r *dto.ReportSummaryDTO) ([]byte, error) {
	f.got = r
	return []byte("%PDF-fake"), nil
}

func (f *fakeExporter) ExportReportXML(_ context.Context, r *dto.ReportSummaryDTO) ([]byte, error) {
	f.got = r
	return []byte("<report/>"), nil
}

var userCtx = auth.WithPrincipal(context.Background(), auth.Principal{UserID: 1})

func TestGetSummary(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	a := &entity.Product{Name: "A", Price: decimal.NewFromInt(2), Quantity: 10, MinQuantity: 5}
	b := &entity.Product{Name: "B", Price: decimal.NewFromInt(4), Quantity: 5, MinQuantity: 5}
	require.NoError(t, store.Products().Create(ctx, a))
	require.NoError(t, store.Products().Create(ctx, b))

	mov := inventory.NewRegisterMovementUseCase(store.TxRunner(), nil)
	_, err := mov.RegisterInbound(userCtx, a.ID, 1, "")
	require.NoError(t, err)
	_, err = mov.RegisterOutbound(userCtx, a.ID, 1, "")
	require.NoError(t, err)

	uc := analytics.NewReportUseCase(store.Products(), store.Movements(), nil, nil)
	r, err := uc.GetSummary(userCtx)
	require.NoError(t, err)

	assert.Equal(t, 2, r.TotalProducts)
	assert.True(t, decimal.NewFromInt(40).Equal(r.TotalValue))
	assert.Equal(t, 1, r.LowStockCount)
	assert.Equal(t, 1, r.OKCount)
	assert.Equal(t, 2, r.MovementsToday)
	require.Len(t, r.LowStock, 1)
	assert.Equal(t, "B", r.LowStock[0].Name)
	assert.Equal(t, 0, r.LowStock[0].Shortfall)
}

func TestGetSummary_SoloMovimientosDeHoy(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	p := &entity.Product{Name: "A", Price: decimal.NewFromInt(1), Quantity: 10, MinQuantity: 1}
	require.NoError(t, store.Products().Create(ctx, p))

	midnight := domaininv.StartOfDay(time.Now())
	for _, at := range []time.Time{midnight.Add(-time.Second), midnight, time.Now()} {
		require.NoError(t, store.Movements().Create(ctx, &entity.Movement{
			ProductID: p.ID, UserID: 1, Type: entity.MovementTypeIn, Quantity: 1, CreatedAt: at,
		}))
	}

	uc := analytics.NewReportUseCase(store.Products(), store.Movements(), nil, nil)
	r, err := uc.GetSummary(userCtx)
	require.NoError(t, err)
	assert.Equal(t, 2, r.MovementsToday)
}

func TestGetSummary_SinSesion(t *testing.T) {
	store := memstore.New()
	uc := analytics.NewReportUseCase(store.Products(), store.Movements(), nil, nil)

	_, err := uc.GetSummary(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestExport(t *testing.T) {
	store := memstore.New()
	exp := &fakeExporter{}
	uc := analytics.NewReportUseCase(store.Products(), store.Movements(), exp, exp)

	pdf, err := uc.ExportPDF(userCtx)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))
	require.NotNil(t, exp.got)
	assert.Zero(t, exp.got.TotalProducts)

	xml, err := uc.ExportXML(userCtx)
	require.NoError(t, err)
	assert.Equal(t, "<report/>", string(xml))

	_, err = analytics.NewReportUseCase(store.Products(), store.Movements(), nil, nil).ExportPDF(userCtx)
	assert.Error(t, err)
}
