package pagetitle

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate creates the page title table when it does not exist yet.
// An existing table is left exactly as it is.
func Migrate(ctx context.Context, db *gorm.DB, logger *logrus.Logger) error {
	if db == nil {
		return eris.New("gorm DB is required")
	}

	logFields := logrus.Fields{"component": "pagetitle.migrate"}
	migrator := db.WithContext(ctx).Migrator()

	if migrator.HasTable(&PageTitle{}) {
		if logger != nil {
			logger.WithFields(logFields).Info("page title table already present, leaving schema untouched")
		}
		return nil
	}

	if logger != nil {
		logger.WithFields(logFields).Info("creating page title table")
	}

	if err := migrator.CreateTable(&PageTitle{}); err != nil {
		if logger != nil {
			logger.WithFields(logFields).WithError(err).Error("page title table creation failed")
		}
		return eris.Wrap(err, "creating page title table")
	}

	if logger != nil {
		logger.WithFields(logFields).Info("page title table created")
	}

	return nil
}
