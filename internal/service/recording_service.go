package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"crm-insights/config"
	"crm-insights/internal/dto"
	"crm-insights/internal/model"
	"crm-insights/internal/parser"
	"crm-insights/internal/repository"
	"crm-insights/pkg/logger"
	"crm-insights/pkg/objstore"

	"github.com/google/uuid"
)

type RecordingService interface {
	Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*model.Recording, error)
	AttachTranscription(ctx context.Context, recordingID uint, req dto.AttachTranscriptionRequest) (*model.Transcription, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]model.Recording, error)
	Get(ctx context.Context, id uint) (*model.Recording, error)
}

type recordingService struct {
	cfg               *config.Config
	log               *logger.Logger
	customerRepo      repository.CustomerRepository
	recordingRepo     repository.RecordingRepository
	transcriptionRepo repository.TranscriptionRepository
	store             *objstore.Store
}

func NewRecordingService(
	cfg *config.Config,
	log *logger.Logger,
	customerRepo repository.CustomerRepository,
	recordingRepo repository.RecordingRepository,
	transcriptionRepo repository.TranscriptionRepository,
	store *objstore.Store,
) RecordingService {
	return &recordingService{
		cfg:               cfg,
		log:               log,
		customerRepo:      customerRepo,
		recordingRepo:     recordingRepo,
		transcriptionRepo: transcriptionRepo,
		store:             store,
	}
}

// Upload decodes the recording filename, resolves the customer and stores the
// audio object before the recording row. When the row insert fails the object
// is removed again so the bucket holds no orphans.
func (s *recordingService) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*model.Recording, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}

	info, err := parser.ParseRecordingFilename(filename)
	if err != nil {
		return nil, err
	}

	customer, err := s.resolveCustomer(ctx, info)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("recordings/%s/%s%s", info.Code, uuid.NewString(), objectExt(filename))
	url, err := s.store.Upload(ctx, key, r, size, contentType)
	if err != nil {
		return nil, err
	}

	recording := &model.Recording{
		CustomerID:  customer.ID,
		Filename:    filename,
		ObjectKey:   key,
		URL:         url,
		Salesperson: info.Salesperson,
		Product:     info.Product,
		CallTime:    info.CallTime,
		Status:      model.RecordingStatusPending,
	}
	if err := s.recordingRepo.Create(ctx, recording); err != nil {
		if removeErr := s.store.Remove(ctx, key); removeErr != nil {
			s.log.ErrorContext(ctx, "failed to remove orphaned recording object",
				logger.StringField("object_key", key),
				logger.ErrorField(removeErr),
			)
		}
		return nil, fmt.Errorf("failed to create recording: %w", err)
	}

	s.log.InfoContext(ctx, "recording uploaded",
		logger.StringField("customer_code", info.Code),
		logger.StringField("filename", filename),
		logger.StringField("object_key", key),
	)

	return recording, nil
}

func (s *recordingService) AttachTranscription(ctx context.Context, recordingID uint, req dto.AttachTranscriptionRequest) (*model.Transcription, error) {
	recording, err := s.recordingRepo.GetByID(ctx, recordingID)
	if err != nil {
		return nil, err
	}
	if recording == nil {
		return nil, ErrRecordingNotFound
	}

	transcription := &model.Transcription{
		RecordingID: recordingID,
		Text:        req.Text,
		Language:    req.Language,
	}
	if err := s.transcriptionRepo.Create(ctx, transcription); err != nil {
		return nil, fmt.Errorf("failed to create transcription: %w", err)
	}
	if err := s.recordingRepo.UpdateStatus(ctx, recordingID, model.RecordingStatusCompleted); err != nil {
		return nil, fmt.Errorf("failed to update recording status: %w", err)
	}
	return transcription, nil
}

func (s *recordingService) ListByCustomer(ctx context.Context, customerID uint) ([]model.Recording, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return s.recordingRepo.ListByCustomer(ctx, customerID)
}

func (s *recordingService) Get(ctx context.Context, id uint) (*model.Recording, error) {
	recording, err := s.recordingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if recording == nil {
		return nil, ErrRecordingNotFound
	}
	return recording, nil
}

// resolveCustomer finds the customer encoded in the filename, creating a
// minimal row on first sight. A recording may arrive before any conversation
// export does.
func (s *recordingService) resolveCustomer(ctx context.Context, info *parser.RecordingInfo) (*model.Customer, error) {
	customer, err := s.customerRepo.GetByCode(ctx, info.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up customer %s: %w", info.Code, err)
	}
	if customer != nil {
		return customer, nil
	}

	registeredAt := info.RegisteredAt
	customer = &model.Customer{
		Code:         info.Code,
		ShortCode:    info.ShortCode,
		Product:      info.Product,
		RegisteredAt: &registeredAt,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer %s: %w", info.Code, err)
	}
	return customer, nil
}

func objectExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}
	return ext
}
