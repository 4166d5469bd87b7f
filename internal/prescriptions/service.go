package prescriptions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/balasre/pharmacare-backend/pkg/config"
	"github.com/balasre/pharmacare-backend/pkg/db/models"
	"github.com/balasre/pharmacare-backend/pkg/enums"
	pkgerrors "github.com/balasre/pharmacare-backend/pkg/errors"
	"github.com/balasre/pharmacare-backend/pkg/logger"
	"gorm.io/gorm"
)

// FileStore abstracts where prescription files live. The local disk
// implementation is pkg/storage/local; a hosted deployment can swap in an
// object store without touching this package.
type FileStore interface {
	Save(ctx context.Context, name string, content io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Archive(ctx context.Context, name string) error
	Remove(ctx context.Context, name string) error
}

var filenameSanitizeRe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// UploadInput carries a new prescription upload.
type UploadInput struct {
	OriginalFilename string
	DoctorName       *string
	Content          io.Reader
}

// Service exposes prescription operations for customers and admins.
type Service interface {
	Upload(ctx context.Context, userID int64, input UploadInput) (*models.Prescription, error)
	Download(ctx context.Context, userID, id int64) (io.ReadCloser, string, error)
	ListForUser(ctx context.Context, userID int64) ([]models.Prescription, error)
	ListArchivesForUser(ctx context.Context, userID int64) ([]models.PrescriptionArchive, error)
	ListAll(ctx context.Context) ([]models.Prescription, error)
	Search(ctx context.Context, query string) ([]models.Prescription, error)
	UpdateStatus(ctx context.Context, id int64, status string) error

	// Collaborators used by the orders service inside its transactions.
	FindByID(ctx context.Context, tx *gorm.DB, id int64) (*models.Prescription, error)
	OnOrderDelivered(ctx context.Context, tx *gorm.DB, order *models.Order) (func(context.Context), error)
}

type service struct {
	repo   *Repository
	files  FileStore
	policy string
	logg   *logger.Logger
	now    func() time.Time
}

// NewService builds the prescriptions service.
func NewService(repo *Repository, files FileStore, cfg config.PrescriptionsConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("prescriptions repository required")
	}
	if files == nil {
		return nil, fmt.Errorf("file store required")
	}
	return &service{
		repo:   repo,
		files:  files,
		policy: cfg.Policy(),
		logg:   logg,
		now:    time.Now,
	}, nil
}

func (s *service) Upload(ctx context.Context, userID int64, input UploadInput) (*models.Prescription, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	original := strings.TrimSpace(input.OriginalFilename)
	if original == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "filename is required")
	}
	if input.Content == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file content is required")
	}

	now := s.now().UTC()
	timestamp := now.Unix()
	filename := fmt.Sprintf("prescription_%d_%d_%s", userID, timestamp, sanitizeFilename(original))
	number := fmt.Sprintf("RX%d", timestamp)

	if err := s.files.Save(ctx, filename, input.Content); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing prescription file")
	}

	prescription := &models.Prescription{
		UserID:             userID,
		PrescriptionNumber: number,
		Filename:           filename,
		UploadedAt:         now,
		DoctorName:         input.DoctorName,
		Status:             enums.PrescriptionStatusPending,
		Type:               enums.PrescriptionTypeUpload,
	}
	created, err := s.repo.Create(ctx, prescription)
	if err != nil {
		// The metadata row failed; drop the stored file so retries start clean.
		if cleanupErr := s.files.Remove(ctx, filename); cleanupErr != nil && s.logg != nil {
			s.logg.Warn(ctx, "orphaned prescription file left behind")
		}
		return nil, err
	}
	return created, nil
}

// Download returns the stored file for the user's own prescription. A record
// belonging to someone else reads as not found.
func (s *service) Download(ctx context.Context, userID, id int64) (io.ReadCloser, string, error) {
	prescription, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", pkgerrors.New(pkgerrors.CodeNotFound, "prescription not found")
		}
		return nil, "", err
	}
	if prescription.UserID != userID {
		return nil, "", pkgerrors.New(pkgerrors.CodeNotFound, "prescription not found")
	}

	content, err := s.files.Open(ctx, prescription.Filename)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "opening prescription file")
	}
	return content, prescription.Filename, nil
}

func (s *service) ListForUser(ctx context.Context, userID int64) ([]models.Prescription, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListArchivesForUser(ctx context.Context, userID int64) ([]models.PrescriptionArchive, error) {
	return s.repo.ListArchivesByUser(ctx, userID)
}

func (s *service) ListAll(ctx context.Context) ([]models.Prescription, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) Search(ctx context.Context, query string) ([]models.Prescription, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query is required")
	}
	return s.repo.SearchByNumber(ctx, trimmed)
}

func (s *service) UpdateStatus(ctx context.Context, id int64, status string) error {
	parsed, err := enums.ParsePrescriptionStatus(strings.TrimSpace(status))
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid prescription status")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "prescription not found")
		}
		return err
	}
	return s.repo.UpdateStatus(ctx, id, parsed)
}

func (s *service) FindByID(ctx context.Context, tx *gorm.DB, id int64) (*models.Prescription, error) {
	return s.repo.WithTx(tx).FindByID(ctx, id)
}

// OnOrderDelivered applies the configured retention policy to the order's
// linked prescription. Row changes join the caller's transaction; the file
// move is deferred to the returned follow-up so a failed commit leaves the
// stored file untouched. A record that is already gone is treated as handled.
func (s *service) OnOrderDelivered(ctx context.Context, tx *gorm.DB, order *models.Order) (func(context.Context), error) {
	if order == nil || order.PrescriptionID == nil {
		return nil, nil
	}
	repo := s.repo.WithTx(tx)

	prescription, err := repo.FindByID(ctx, *order.PrescriptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var fileOp func(context.Context) error
	var fileOpName string

	switch s.policy {
	case config.DeliveredPolicyDelete:
		if err := repo.Delete(ctx, prescription.ID); err != nil {
			return nil, err
		}
		fileOp = func(ctx context.Context) error { return s.files.Remove(ctx, prescription.Filename) }
		fileOpName = "removing prescription file"
	default:
		archive := &models.PrescriptionArchive{
			OriginalID:         prescription.ID,
			UserID:             prescription.UserID,
			OrderID:            order.ID,
			PrescriptionNumber: prescription.PrescriptionNumber,
			Filename:           archivedFilename(prescription.Filename),
			DoctorName:         prescription.DoctorName,
			UploadedAt:         prescription.UploadedAt,
		}
		if _, err := repo.CreateArchive(ctx, archive); err != nil {
			return nil, err
		}
		if err := repo.Delete(ctx, prescription.ID); err != nil {
			return nil, err
		}
		fileOp = func(ctx context.Context) error { return s.files.Archive(ctx, prescription.Filename) }
		fileOpName = "archiving prescription file"
	}

	followUp := func(ctx context.Context) {
		if err := fileOp(ctx); err != nil {
			if s.logg != nil {
				s.logg.Error(s.logg.WithFields(ctx, map[string]any{
					"order_id":        order.ID,
					"prescription_id": prescription.ID,
					"filename":        prescription.Filename,
				}), fileOpName+" failed", err)
			}
			return
		}
		if s.logg != nil {
			s.logg.Info(s.logg.WithFields(ctx, map[string]any{
				"order_id":        order.ID,
				"prescription_id": prescription.ID,
				"policy":          s.policy,
			}), "delivered order prescription processed")
		}
	}
	return followUp, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	cleaned := filenameSanitizeRe.ReplaceAllString(base, "_")
	cleaned = strings.Trim(cleaned, "._")
	if cleaned == "" {
		return "file"
	}
	return cleaned
}

func archivedFilename(name string) string {
	return "archived/" + name
}
