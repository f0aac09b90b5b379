package vault

// Kind classifies a user-visible notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notifier receives user-visible outcome messages after store mutations.
// It is a side effect only; store control flow never depends on it.
type Notifier interface {
	Notify(kind Kind, message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(kind Kind, message string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(kind Kind, message string) {
	f(kind, message)
}

// NopNotifier discards all notifications.
var NopNotifier Notifier = NotifierFunc(func(Kind, string) {})
