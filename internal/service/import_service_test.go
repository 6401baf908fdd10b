package service

import (
	"context"
	"testing"
	"time"

	"crm-insights/internal/model"
	"crm-insights/pkg/cache"
	"crm-insights/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingInteractionRepo struct {
	hashes  map[string]bool
	created []model.Interaction
}

func newRecordingInteractionRepo() *recordingInteractionRepo {
	return &recordingInteractionRepo{hashes: map[string]bool{}}
}

func (f *recordingInteractionRepo) ExistsByHash(ctx context.Context, customerID uint, hash string) (bool, error) {
	return f.hashes[hash], nil
}

func (f *recordingInteractionRepo) Create(ctx context.Context, interaction *model.Interaction) error {
	f.hashes[interaction.DedupHash] = true
	f.created = append(f.created, *interaction)
	return nil
}

func (f *recordingInteractionRepo) ListByCustomer(ctx context.Context, customerID uint) ([]model.Interaction, error) {
	return f.created, nil
}

const sampleExport = "對話紀錄\n" +
	"匯出時間: 2025/09/02 10:00\n" +
	"成員: 2\n" +
	"====\n" +
	"User,202509010007王小明詢問水餃機,2025/09/01,10:00,請問水餃機的價格\n" +
	"Staff,客服小美,2025/09/01,10:05,您好，報價單稍後提供\n" +
	"User,202509010007王小明詢問水餃機,2025/09/01,10:10,[照片]\n"

func newTestImportService(customerRepo *fakeCustomerRepo, interactionRepo *recordingInteractionRepo) ImportService {
	log, _ := logger.New("error", "console", 10)
	// The cache is a process-wide singleton; start each test from a clean slate.
	inmemoryCache := cache.NewCache(time.Minute, time.Minute)
	inmemoryCache.Flush()
	return NewImportService(nil, log, customerRepo, interactionRepo, inmemoryCache)
}

func TestImportService_FirstImport(t *testing.T) {
	customerRepo := newFakeCustomerRepo()
	interactionRepo := newRecordingInteractionRepo()
	svc := newTestImportService(customerRepo, interactionRepo)

	report, err := svc.ImportConversation(context.Background(), "export.txt", []byte(sampleExport))
	require.NoError(t, err)

	assert.Equal(t, "0007", report.CustomerID)
	assert.Equal(t, "王小明", report.CustomerName)
	assert.Equal(t, "詢問水餃機", report.ProductName)
	assert.Equal(t, 3, report.TotalRecords)
	assert.Equal(t, 2, report.NewRecords)
	assert.Equal(t, 0, report.DuplicateRecords)
	assert.Equal(t, 1, report.CannedMessages)

	customer, err := customerRepo.GetByCode(context.Background(), "202509010007")
	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.Equal(t, "王小明", customer.Name)
	require.NotNil(t, customer.RegisteredAt)
	assert.Equal(t, 2025, customer.RegisteredAt.Year())
}

func TestImportService_ReimportIsIdempotent(t *testing.T) {
	customerRepo := newFakeCustomerRepo()
	interactionRepo := newRecordingInteractionRepo()
	svc := newTestImportService(customerRepo, interactionRepo)

	_, err := svc.ImportConversation(context.Background(), "export.txt", []byte(sampleExport))
	require.NoError(t, err)

	report, err := svc.ImportConversation(context.Background(), "export.txt", []byte(sampleExport))
	require.NoError(t, err)

	assert.Equal(t, 0, report.NewRecords)
	assert.Equal(t, 2, report.DuplicateRecords)
	assert.Len(t, interactionRepo.created, 2)
}
