package dispatch

import (
	"context"
	"testing"

	"servitech/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequestComputesPriceEstimate(t *testing.T) {
	svc, store, _ := newTestService()
	store.addServiceType("electricidad", 500)

	req, err := svc.CreateRequest(context.Background(), "cust-1", CreateRequestInput{
		ServiceType: "electricidad",
		Address:     "Calle Falsa 123",
		Access:      models.AccessModerate,
		DistanceKm:  4,
	})
	require.NoError(t, err)

	// base 500 + moderate access 200 + 4 km * 10.
	assert.Equal(t, 740.0, req.PriceEstimate)
	assert.Equal(t, models.StatusPending, req.Status)
	assert.Empty(t, req.TechnicianID)
}

func TestCreateRequestRejectsUnknownServiceType(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateRequest(context.Background(), "cust-1", CreateRequestInput{
		ServiceType: "jardineria",
		Address:     "Calle Falsa 123",
		Access:      models.AccessEasy,
	})
	require.Error(t, err)
	assert.Equal(t, CodeValidation, ErrCode(err))
}

func TestCreateRequestRejectsInvalidAccess(t *testing.T) {
	svc, store, _ := newTestService()
	store.addServiceType("plomeria", 500)

	_, err := svc.CreateRequest(context.Background(), "cust-1", CreateRequestInput{
		ServiceType: "plomeria",
		Address:     "Calle Falsa 123",
		Access:      "imposible",
	})
	require.Error(t, err)
	assert.Equal(t, CodeValidation, ErrCode(err))
}

func TestCreateRequestRejectsSecondPending(t *testing.T) {
	svc, store, _ := newTestService()
	store.addServiceType("plomeria", 500)
	ctx := context.Background()

	_, err := svc.CreateRequest(ctx, "cust-1", CreateRequestInput{
		ServiceType: "plomeria",
		Address:     "Calle Falsa 123",
		Access:      models.AccessEasy,
	})
	require.NoError(t, err)

	_, err = svc.CreateRequest(ctx, "cust-1", CreateRequestInput{
		ServiceType: "plomeria",
		Address:     "Otra Calle 456",
		Access:      models.AccessEasy,
	})
	require.Error(t, err)
	assert.Equal(t, CodeConflict, ErrCode(err))
}

func TestLatestActiveRequestSkipsCancelled(t *testing.T) {
	svc, store, _ := newTestService()
	req := createPending(t, svc, store, "cust-1")
	ctx := context.Background()

	require.NoError(t, svc.CancelByCustomer(ctx, req.ID, "cust-1"))

	_, err := svc.LatestActiveRequest(ctx, "cust-1")
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrCode(err))

	fresh := createPending(t, svc, store, "cust-1")
	latest, err := svc.LatestActiveRequest(ctx, "cust-1")
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, latest.ID)
}

func TestReportTechnicianRequiresLinkedRequest(t *testing.T) {
	svc, store, _ := newTestService()
	req, _ := seedAssigned(svc, store, "cust-1", "tech-1")
	ctx := context.Background()

	_, err := svc.ReportTechnician(ctx, "cust-1", req.ID, "tech-2", "no llego nunca")
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrCode(err))

	report, err := svc.ReportTechnician(ctx, "cust-1", req.ID, "tech-1", "no llego nunca")
	require.NoError(t, err)
	assert.Equal(t, "tech-1", report.TechnicianID)

	reports, err := svc.Reports.ListByTechnician(ctx, "tech-1")
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestListServiceTypes(t *testing.T) {
	svc, store, _ := newTestService()
	store.addServiceType("plomeria", 500)
	store.addServiceType("electricidad", 650)

	types, err := svc.ListServiceTypes(context.Background())
	require.NoError(t, err)
	assert.Len(t, types, 2)
}
