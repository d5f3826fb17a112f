package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoder for image.Decode
	"path/filepath"
	"strings"
	"time"

	"github.com/arjunms/homeledger/homeledger-backend/internal/domain"
	"github.com/arjunms/homeledger/homeledger-backend/internal/repository/storage"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	MaxReceiptSize   = 5 * 1024 * 1024 // 5MB
	MinReceiptWidth  = 50
	MinReceiptHeight = 50
	ThumbnailWidth   = 200
	DisplayWidth     = 800
	JPEGQuality      = 85

	// PresignedURLExpiry is how long receipt download links stay valid
	PresignedURLExpiry = 15 * time.Minute
)

var (
	ErrReceiptTooLarge             = errors.New("file too large. Maximum size is 5MB")
	ErrInvalidReceiptFormat        = errors.New("invalid format. Supported: JPEG, PNG")
	ErrReceiptTooSmall             = errors.New("image too small. Minimum 50x50 pixels")
	ErrInvalidReceiptData          = errors.New("invalid image data")
	ErrReceiptStorageNotConfigured = errors.New("receipt storage not configured")
	ErrNoReceipt                   = errors.New("expense has no receipt")
)

// AllowedReceiptExtensions maps extensions to content types
var AllowedReceiptExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ExpenseKind identifies which expense table a receipt belongs to
type ExpenseKind string

const (
	ExpenseKindHome ExpenseKind = "home"
	ExpenseKindFuel ExpenseKind = "fuel"
)

// IsValid reports whether the kind is a known expense kind
func (k ExpenseKind) IsValid() bool {
	return k == ExpenseKindHome || k == ExpenseKindFuel
}

// ReceiptMetadata contains presigned URLs for the stored receipt variants
type ReceiptMetadata struct {
	ThumbnailURL string `json:"thumbnailUrl"`
	DisplayURL   string `json:"displayUrl"`
	OriginalURL  string `json:"originalUrl"`
}

var receiptVariants = []struct {
	name     string
	maxWidth int
}{
	{"thumb", ThumbnailWidth},
	{"display", DisplayWidth},
	{"original", 0}, // 0 means keep original size
}

// ReceiptService handles receipt image processing and storage
type ReceiptService struct {
	storage  storage.ReceiptRepository
	homeRepo domain.HomeExpenseRepository
	fuelRepo domain.FuelExpenseRepository
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(storage storage.ReceiptRepository, homeRepo domain.HomeExpenseRepository, fuelRepo domain.FuelExpenseRepository) *ReceiptService {
	return &ReceiptService{
		storage:  storage,
		homeRepo: homeRepo,
		fuelRepo: fuelRepo,
	}
}

// IsEnabled indicates whether uploads/deletes are supported (storage configured).
func (s *ReceiptService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// validateAndDecode validates the receipt image and returns the decoded image
func (s *ReceiptService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxReceiptSize {
		return nil, ErrReceiptTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := AllowedReceiptExtensions[ext]; !ok {
		return nil, ErrInvalidReceiptFormat
	}

	// Decode to verify it's a real image and check dimensions
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidReceiptData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinReceiptWidth || bounds.Dy() < MinReceiptHeight {
		return nil, ErrReceiptTooSmall
	}

	return img, nil
}

// UploadReceipt processes a receipt image, stores all size variants and
// records the base object path on the expense. Any previous receipt for
// the expense is removed.
func (s *ReceiptService) UploadReceipt(ctx context.Context, userID uuid.UUID, kind ExpenseKind, expenseID int32, data []byte, filename string) (*ReceiptMetadata, error) {
	if !s.IsEnabled() {
		return nil, ErrReceiptStorageNotConfigured
	}

	oldPath, err := s.getReceiptPath(userID, kind, expenseID)
	if err != nil {
		return nil, err
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return nil, err
	}

	receiptID := uuid.New().String()
	basePath := fmt.Sprintf("%s/%s/%d/%s", userID, kind, expenseID, receiptID)

	uploaded := make([]string, 0, len(receiptVariants))
	for _, variant := range receiptVariants {
		var processed image.Image
		if variant.maxWidth > 0 && img.Bounds().Dx() > variant.maxWidth {
			// Resize maintaining aspect ratio
			processed = imaging.Resize(img, variant.maxWidth, 0, imaging.Lanczos)
		} else {
			processed = img
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, processed, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}

		objectPath := variantPath(basePath, variant.name)
		if _, err := s.storage.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len())); err != nil {
			// Try to clean up any already uploaded variants
			s.cleanupObjects(ctx, uploaded)
			return nil, fmt.Errorf("failed to upload %s variant: %w", variant.name, err)
		}
		uploaded = append(uploaded, objectPath)
	}

	if err := s.setReceiptPath(userID, kind, expenseID, &basePath); err != nil {
		s.cleanupObjects(ctx, uploaded)
		return nil, err
	}

	// Old receipt is orphaned now, remove it best effort
	if oldPath != nil {
		s.deleteVariants(ctx, *oldPath)
	}

	return s.presignVariants(ctx, basePath)
}

// GetReceiptURLs returns presigned download URLs for an expense's receipt
func (s *ReceiptService) GetReceiptURLs(ctx context.Context, userID uuid.UUID, kind ExpenseKind, expenseID int32) (*ReceiptMetadata, error) {
	if !s.IsEnabled() {
		return nil, ErrReceiptStorageNotConfigured
	}

	path, err := s.getReceiptPath(userID, kind, expenseID)
	if err != nil {
		return nil, err
	}
	if path == nil {
		return nil, ErrNoReceipt
	}

	return s.presignVariants(ctx, *path)
}

// DeleteReceipt removes an expense's receipt variants and clears the
// stored path. Deleting an expense without a receipt is a no-op.
func (s *ReceiptService) DeleteReceipt(ctx context.Context, userID uuid.UUID, kind ExpenseKind, expenseID int32) error {
	if !s.IsEnabled() {
		return ErrReceiptStorageNotConfigured
	}

	path, err := s.getReceiptPath(userID, kind, expenseID)
	if err != nil {
		return err
	}
	if path == nil {
		return nil
	}

	s.deleteVariants(ctx, *path)
	return s.setReceiptPath(userID, kind, expenseID, nil)
}

// DeleteAllVariants removes every stored variant under a base path.
// Used when the owning expense is deleted.
func (s *ReceiptService) DeleteAllVariants(ctx context.Context, basePath string) {
	if basePath == "" || !s.IsEnabled() {
		return
	}
	s.deleteVariants(ctx, basePath)
}

func (s *ReceiptService) presignVariants(ctx context.Context, basePath string) (*ReceiptMetadata, error) {
	urls := make(map[string]string, len(receiptVariants))
	for _, variant := range receiptVariants {
		url, err := s.storage.GeneratePresignedURL(ctx, variantPath(basePath, variant.name), PresignedURLExpiry)
		if err != nil {
			return nil, fmt.Errorf("failed to presign %s variant: %w", variant.name, err)
		}
		urls[variant.name] = url
	}
	return &ReceiptMetadata{
		ThumbnailURL: urls["thumb"],
		DisplayURL:   urls["display"],
		OriginalURL:  urls["original"],
	}, nil
}

func (s *ReceiptService) deleteVariants(ctx context.Context, basePath string) {
	for _, variant := range receiptVariants {
		// Best effort, ignore errors during cleanup
		_ = s.storage.Delete(ctx, variantPath(basePath, variant.name))
	}
}

func (s *ReceiptService) cleanupObjects(ctx context.Context, paths []string) {
	for _, path := range paths {
		_ = s.storage.Delete(ctx, path)
	}
}

func (s *ReceiptService) getReceiptPath(userID uuid.UUID, kind ExpenseKind, expenseID int32) (*string, error) {
	switch kind {
	case ExpenseKindHome:
		expense, err := s.homeRepo.GetByID(userID, expenseID)
		if err != nil {
			return nil, err
		}
		return expense.ReceiptPath, nil
	case ExpenseKindFuel:
		expense, err := s.fuelRepo.GetByID(userID, expenseID)
		if err != nil {
			return nil, err
		}
		return expense.ReceiptPath, nil
	default:
		return nil, domain.ErrInvalidInput
	}
}

func (s *ReceiptService) setReceiptPath(userID uuid.UUID, kind ExpenseKind, expenseID int32, path *string) error {
	switch kind {
	case ExpenseKindHome:
		return s.homeRepo.UpdateReceiptPath(userID, expenseID, path)
	case ExpenseKindFuel:
		return s.fuelRepo.UpdateReceiptPath(userID, expenseID, path)
	default:
		return domain.ErrInvalidInput
	}
}

func variantPath(basePath, variant string) string {
	return basePath + "_" + variant + ".jpg"
}
