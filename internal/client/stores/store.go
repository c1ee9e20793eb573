package stores

import (
	"net/http"

	"abyos-admin/internal/client/notify"
	"abyos-admin/internal/client/services"
)

// reportFailure pushes a failed call into the notification side-channel.
// Client-side failures (transport, decoding) are errors; server rejections
// are graded by envelope code so expected rejections show up as warnings.
func reportFailure(n notify.Notifier, env *services.Envelope, err error, fallback string) {
	if err != nil {
		n.Notify(notify.Notification{Level: notify.LevelError, Message: err.Error()})
		return
	}
	message := env.MessageText()
	if message == "" {
		message = fallback
	}
	level := notify.LevelError
	switch env.Code {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden,
		http.StatusNotFound, http.StatusUnprocessableEntity:
		level = notify.LevelWarning
	}
	n.Notify(notify.Notification{Level: level, Message: message})
}

func reportSuccess(n notify.Notifier, env *services.Envelope, fallback string) {
	message := env.MessageText()
	if message == "" {
		message = fallback
	}
	n.Notify(notify.Notification{Level: notify.LevelSuccess, Message: message})
}
