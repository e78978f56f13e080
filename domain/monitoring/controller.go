package monitoring

import (
	"context"
	"net/http"
	"time"

	"github.com/bidoro/waitlist-api/config/router"
	"github.com/bidoro/waitlist-api/internal/log"
	"github.com/bidoro/waitlist-api/pkg/mailer"
	"gorm.io/gorm"
)

const healthCheckTimeout = 3 * time.Second

type HealthStatus struct {
	Database     int    `json:"database"`      // 1 = healthy, 0 = unhealthy
	Mail         int    `json:"mail"`          // 1 = sender configured, 0 = confirmations disabled
	MailProvider string `json:"mail_provider"` // smtp | mailgun | ""
	Uptime       int    `json:"uptime"`        // uptime in seconds
}

type MonitoringController struct {
	db        *gorm.DB
	logger    *log.Logger
	sender    mailer.Sender
	startTime time.Time
}

func NewMonitoringController(db *gorm.DB, logger *log.Logger, sender mailer.Sender) *router.RESTController {
	ctrl := &MonitoringController{
		db:        db,
		logger:    logger,
		sender:    sender,
		startTime: time.Now(),
	}

	return router.NewRESTController(
		"MonitoringController",
		"/",
		func(routerService *router.RouterService, controller *router.RESTController) {
			routerService.AddGetHandler(controller, "", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.monitor(c)
			})

			routerService.AddGetHandler(controller, "health", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.healthCheck(routerService, c)
			})
		},
	)
}

func (ctrl *MonitoringController) healthCheck(
	routerService *router.RouterService,
	c *router.RequestContext,
) *router.ServiceResult {
	logger := routerService.GetLogger(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	healthStatus := ctrl.performHealthChecks(ctx, logger)

	if healthStatus.Database == 0 {
		return router.ErrorResult(http.StatusServiceUnavailable, "waitlist-api is unhealthy", healthStatus)
	}

	return router.OKResult(healthStatus, "waitlist-api health check completed")
}

func (ctrl *MonitoringController) monitor(
	c *router.RequestContext,
) *router.ServiceResult {
	return router.OKResult("Waitlist API is operational.", "Monitoring successful")
}

func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) HealthStatus {
	status := HealthStatus{
		Uptime: int(time.Since(ctrl.startTime).Seconds()),
	}

	checkDatabaseConnectivity(ctx, ctrl, &status, logger)
	checkMailSender(ctrl, &status, logger)

	return status
}

func checkMailSender(ctrl *MonitoringController, status *HealthStatus, logger *log.Logger) {
	if ctrl.sender == nil {
		status.Mail = 0
		logger.Warn("Mail sender not configured, confirmation emails are skipped")
		return
	}

	status.Mail = 1
	status.MailProvider = ctrl.sender.Provider()
}

func checkDatabaseConnectivity(ctx context.Context, ctrl *MonitoringController, status *HealthStatus, logger *log.Logger) {
	if ctrl.checkDatabase(ctx) {
		status.Database = 1
	} else {
		status.Database = 0
		logger.Error("Database health check failed")
	}
}

func (ctrl *MonitoringController) checkDatabase(ctx context.Context) bool {
	if ctrl.db == nil {
		return false
	}

	sqlDB, err := ctrl.db.DB()
	if err != nil {
		return false
	}

	return sqlDB.PingContext(ctx) == nil
}
