package waitlist

import (
	"github.com/bidoro/waitlist-api/config/router"
	"github.com/bidoro/waitlist-api/internal/log"
	"gorm.io/gorm"
)

type WaitlistServiceFactory interface {
	CreateService() WaitlistService
	CreateController() *router.RESTController
}

type DefaultWaitlistServiceFactory struct {
	db           *gorm.DB
	logger       *log.Logger
	confirmation *ConfirmationMailer
}

func NewWaitlistServiceFactory(db *gorm.DB, logger *log.Logger, confirmation *ConfirmationMailer) WaitlistServiceFactory {
	return &DefaultWaitlistServiceFactory{
		db:           db,
		logger:       logger,
		confirmation: confirmation,
	}
}

// CreateService builds a service outside the HTTP stack; its metrics are not exported.
func (f *DefaultWaitlistServiceFactory) CreateService() WaitlistService {
	repository := NewWaitlistRepository(f.db)
	return NewWaitlistService(f.logger, repository, f.confirmation, NewMetrics(nil))
}

func (f *DefaultWaitlistServiceFactory) CreateController() *router.RESTController {
	return NewWaitlistController(f.db, f.logger, f.confirmation)
}
