package middleware

import (
	"dailyvocab/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// UserMiddleware registers every sender before the update reaches a handler
func UserMiddleware(userService *service.UserService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			username := sender.Username
			if username == "" {
				username = sender.FirstName
			}

			logger.Debug("Update received",
				zap.Int64("user_id", sender.ID),
				zap.String("text", c.Text()),
				zap.Bool("callback", c.Callback() != nil),
			)

			// Ensure user exists
			if err := userService.EnsureUserExists(sender.ID, username); err != nil {
				logger.Error("Failed to ensure user exists in middleware",
					zap.Int64("user_id", sender.ID),
					zap.Error(err),
				)
				if c.Callback() != nil {
					return c.Respond(&tele.CallbackResponse{Text: "出错了，请稍后再试"})
				}
				return c.Send("出错了，请稍后再试")
			}

			return next(c)
		}
	}
}
