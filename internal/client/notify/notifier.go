package notify

// Level grades a notification for display.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Notification struct {
	Level   Level
	Message string
}

// Notifier is the side-channel stores push user-facing outcomes into.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a plain function to the Notifier interface.
type Func func(n Notification)

func (f Func) Notify(n Notification) { f(n) }

// Discard drops all notifications.
var Discard Notifier = Func(func(Notification) {})
