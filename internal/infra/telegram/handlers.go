// internal/infra/telegram/handlers.go
package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rentlite/internal/app"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const commandTimeout = 5 * time.Minute

// RegisterHandlers registers the admin-only manual trigger commands.
// /checkrent runs the daily batch; /checkrent <property-uuid> re-runs a
// single property's check for its current cycle.
func RegisterHandlers(b *telebot.Bot, checkService app.RentCheckService, adminTelegramID int64, baseLogger *logrus.Entry) {
	b.Handle("/checkrent", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/checkrent",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("Error: you are not allowed to run this command.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		args := c.Args()
		if len(args) == 0 {
			results := checkService.CheckAllProperties(ctx)
			if len(results) == 0 {
				return c.Send("Rent check complete: no properties were due for a check.")
			}

			var reply strings.Builder
			fmt.Fprintf(&reply, "Rent check complete: %d properties checked.\n", len(results))
			for _, result := range results {
				switch {
				case result.Err != "":
					fmt.Fprintf(&reply, "⚠️ %s: %s\n", result.Address, result.Err)
				case result.RentReceived:
					fmt.Fprintf(&reply, "✅ %s: rent received\n", result.Address)
				default:
					fmt.Fprintf(&reply, "❌ %s: rent NOT received\n", result.Address)
				}
			}
			return c.Send(reply.String())
		}

		propertyID, err := uuid.Parse(args[0])
		if err != nil {
			handlerLogger.WithField("arg", args[0]).Warn("Invalid property ID format")
			return c.Send("Error: property ID must be a UUID.")
		}

		result := checkService.CheckProperty(ctx, propertyID)
		if result.Err != "" {
			return c.Send(fmt.Sprintf("Check failed for %s: %s", result.Address, result.Err))
		}
		if result.RentReceived {
			amount := ""
			if result.Amount != nil {
				amount = fmt.Sprintf(" ($%s)", result.Amount.StringFixed(2))
			}
			return c.Send(fmt.Sprintf("✅ %s: rent received%s", result.Address, amount))
		}
		return c.Send(fmt.Sprintf("❌ %s: rent NOT received", result.Address))
	})
}
