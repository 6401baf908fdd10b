package service

import (
	"context"
	"testing"

	"crm-insights/internal/dto"
	"crm-insights/internal/model"
	"crm-insights/pkg/logger"
	"crm-insights/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCustomerRepo struct {
	customers map[uint]*model.Customer
	nextID    uint
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[uint]*model.Customer{}, nextID: 1}
}

func (f *fakeCustomerRepo) GetByCode(ctx context.Context, code string) (*model.Customer, error) {
	for _, c := range f.customers {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) GetByID(ctx context.Context, id uint, opts ...utils.DBOption) (*model.Customer, error) {
	return f.customers[id], nil
}

func (f *fakeCustomerRepo) List(ctx context.Context) ([]model.Customer, error) {
	out := make([]model.Customer, 0, len(f.customers))
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCustomerRepo) Create(ctx context.Context, customer *model.Customer, opts ...utils.DBOption) error {
	customer.ID = f.nextID
	f.nextID++
	f.customers[customer.ID] = customer
	return nil
}

func (f *fakeCustomerRepo) Update(ctx context.Context, customer *model.Customer, opts ...utils.DBOption) error {
	f.customers[customer.ID] = customer
	return nil
}

func (f *fakeCustomerRepo) Delete(ctx context.Context, id uint) error {
	delete(f.customers, id)
	return nil
}

type fakeInteractionRepo struct{}

func (f *fakeInteractionRepo) ExistsByHash(ctx context.Context, customerID uint, hash string) (bool, error) {
	return false, nil
}

func (f *fakeInteractionRepo) Create(ctx context.Context, interaction *model.Interaction) error {
	return nil
}

func (f *fakeInteractionRepo) ListByCustomer(ctx context.Context, customerID uint) ([]model.Interaction, error) {
	return nil, nil
}

func newTestCustomerService(repo *fakeCustomerRepo) CustomerService {
	log, _ := logger.New("error", "console", 10)
	return NewCustomerService(nil, log, repo, &fakeInteractionRepo{})
}

func TestCustomerService_CreateDerivesScores(t *testing.T) {
	svc := newTestCustomerService(newFakeCustomerRepo())

	customer, err := svc.Create(context.Background(), dto.CreateCustomerRequest{
		Code:              "202509010007",
		Name:              "王小明",
		Product:           "水餃機",
		PurchaseAmount:    600000,
		ConsumptionAmount: 120000,
		RelationshipScore: 7,
		PotentialScore:    8,
	})
	require.NoError(t, err)

	assert.Equal(t, "0007", customer.ShortCode)
	assert.Equal(t, 8, customer.PurchaseScore)
	assert.Equal(t, 10, customer.ConsumptionScore)
	assert.InDelta(t, 0.4*8+0.3*10+0.2*7+0.1*8, customer.CompositeScore, 0.01)
	assert.NotEmpty(t, customer.Tier)
	assert.NotEmpty(t, customer.Priority)
}

func TestCustomerService_CreateRejectsDuplicateCode(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := newTestCustomerService(repo)

	req := dto.CreateCustomerRequest{Code: "202509010007", Name: "王小明"}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrCustomerExists)
}

func TestCustomerService_UpdateRecomputesScores(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := newTestCustomerService(repo)

	customer, err := svc.Create(context.Background(), dto.CreateCustomerRequest{
		Code: "202509010007",
		Name: "王小明",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, customer.PurchaseScore)

	updated, err := svc.Update(context.Background(), customer.ID, dto.UpdateCustomerRequest{
		PurchaseAmount:    utils.ToPointer(1200000.0),
		ConsumptionAmount: utils.ToPointer(60000.0),
	})
	require.NoError(t, err)

	assert.Equal(t, 10, updated.PurchaseScore)
	assert.Equal(t, 8, updated.ConsumptionScore)
	// Keeps the untouched fields.
	assert.Equal(t, "王小明", updated.Name)
}

func TestCustomerService_UpdateUnknownCustomer(t *testing.T) {
	svc := newTestCustomerService(newFakeCustomerRepo())

	_, err := svc.Update(context.Background(), 42, dto.UpdateCustomerRequest{
		Name: utils.ToPointer("改名"),
	})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCustomerService_DeleteUnknownCustomer(t *testing.T) {
	svc := newTestCustomerService(newFakeCustomerRepo())
	assert.ErrorIs(t, svc.Delete(context.Background(), 99), ErrCustomerNotFound)
}
