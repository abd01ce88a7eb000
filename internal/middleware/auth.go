package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Authorizer is the part of the auth service the middleware needs
type Authorizer interface {
	EnsureUserExists(userID int64) error
	IsAuthorized(userID int64) (bool, error)
}

// AuthMiddleware only lets authorized users through. Others are asked for
// the password.
func AuthMiddleware(auth Authorizer, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			if err := auth.EnsureUserExists(userID); err != nil {
				logger.Error("Failed to ensure user exists in middleware", zap.Error(err))
				return deny(c, "Something went wrong. Try again later.")
			}

			authorized, err := auth.IsAuthorized(userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return deny(c, "Something went wrong. Try again later.")
			}

			if !authorized {
				logger.Info("Rejected unauthorized user", zap.Int64("user_id", userID))
				return deny(c, "Send /start and the password first")
			}

			return next(c)
		}
	}
}

func deny(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
