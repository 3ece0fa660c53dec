package ports

// Notifier delivers notifications to the user. Delivery is fire-and-forget.
type Notifier interface {
	Notify(notification Notification)
}

// Translator maps dotted key paths, like toasts.unauthorized, to strings
// localized in the given language.
type Translator interface {
	Translate(language, key string) string
}

// ProgressIndicator is the loading indicator shown during navigation.
type ProgressIndicator interface {
	Done(force bool)
}
