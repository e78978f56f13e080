package waitlist

import (
	"encoding/json"
	"errors"

	"github.com/bidoro/waitlist-api/config/router"
	"github.com/bidoro/waitlist-api/internal/log"
	apperrors "github.com/bidoro/waitlist-api/pkg/errors"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const MountPoint = "/api/waitlist"

func NewWaitlistController(
	db *gorm.DB,
	logger *log.Logger,
	confirmation *ConfirmationMailer,
) *router.RESTController {

	return router.NewRESTController(
		"WaitlistController",
		MountPoint,
		func(rs *router.RouterService, c *router.RESTController) {
			repository := NewWaitlistRepository(db)
			metrics := NewMetrics(rs.MetricsRegisterer())
			service := NewWaitlistService(logger, repository, confirmation, metrics)

			rs.AddPostHandler(c, "", joinWaitlistHandler(service))
		},
	)
}

func joinWaitlistHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req JoinWaitlistRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			if !isEmailBindError(err) {
				logger.Error("Unreadable waitlist submission", "error", err)
				appErr := apperrors.NewInternalServerError(apperrors.InternalServerErrorMessage, err)
				return router.ErrorResult(
					apperrors.HTTPStatusCode(appErr),
					apperrors.GetHumanReadableMessage(appErr),
					nil,
				)
			}
			logger.Warn("Invalid waitlist submission",
				"error", err,
				"fields", apperrors.FormatValidationErrors(err, &req),
			)
			return router.BadRequestResult(MsgInvalidEmail, nil)
		}

		response, err := service.JoinWaitlist(ctx.Request.Context(), &req)
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.CreatedResult(response, MsgJoined)
	}
}

// isEmailBindError reports whether a bind failure means the email is missing,
// not a string, or has no "@". The payload being something other than an
// object counts as a missing email. Malformed JSON and wrongly typed optional
// fields are not email failures.
func isEmailBindError(err error) bool {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Field == "" || typeErr.Field == "email"
	}

	return false
}
