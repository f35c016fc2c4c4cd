package pagetitle

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/repository_mock.go -package=mock pagetitle/app/internal/pagetitle Repository

// ErrStoreUnavailable wraps every failure to read from the backing store.
var ErrStoreUnavailable = eris.New("page title store unavailable")

// Repository defines read access to stored page titles.
type Repository interface {
	FirstTitle(ctx context.Context) (*PageTitle, error)
}

// GormRepository reads page titles using a Gorm database connection.
type GormRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewRepository constructs a Gorm-backed repository implementation.
func NewRepository(db *gorm.DB, logger *logrus.Logger) (*GormRepository, error) {
	if db == nil {
		return nil, eris.New("gorm DB is required")
	}

	return &GormRepository{db: db, logger: logger}, nil
}

var _ Repository = (*GormRepository)(nil)

// FirstTitle returns the record with the lowest primary key, or nil when the table is empty.
func (r *GormRepository) FirstTitle(ctx context.Context) (*PageTitle, error) {
	var record PageTitle

	err := r.db.WithContext(ctx).Order("id ASC").First(&record).Error
	if err != nil {
		if eris.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logError(err, "fetching first page title")
		return nil, eris.Wrapf(ErrStoreUnavailable, "fetching first page title: %s", err.Error())
	}

	return &record, nil
}

func (r *GormRepository) logError(err error, message string) {
	if r.logger == nil {
		return
	}

	r.logger.WithFields(logrus.Fields{
		"component": "pagetitle.repository",
		"error":     err.Error(),
	}).Error(message)
}
