package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error". A nil error yields an empty attribute.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component names the package or service that emitted the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event names a domain event such as "cart.add".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Email records the shopper email under "email".
func Email(email string) slog.Attr {
	if email == "" {
		return slog.Attr{}
	}
	return slog.String("email", email)
}

// StorageKey records the key of a persisted record.
func StorageKey(key string) slog.Attr {
	return slog.String("storage_key", key)
}

// DeviceID records the visitor device id.
func DeviceID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("device_id", id)
}

// RequestID records the request id.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Duration records d under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Group nests attrs under name.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}
