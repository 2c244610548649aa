package logger

import "log/slog"

// Error logs err under "error". A nil err yields an empty Attr, which slog
// drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID is empty for an empty id.
func RequestID(id string) slog.Attr { return optional("request_id", id) }

// ObjectID is empty for an empty id.
func ObjectID(id string) slog.Attr { return optional("object_id", id) }

func Component(name string) slog.Attr { return slog.String("component", name) }

func Event(name string) slog.Attr { return slog.String("event", name) }

func Resource(name string) slog.Attr { return slog.String("resource", name) }

func Field(name string) slog.Attr { return slog.String("field", name) }

func Transition(name string) slog.Attr { return slog.String("transition", name) }

// StateChange logs {"state": {"from": from, "to": to}}.
func StateChange(from, to string) slog.Attr {
	return slog.Group("state", slog.String("from", from), slog.String("to", to))
}

func optional(key, v string) slog.Attr {
	if v == "" {
		return slog.Attr{}
	}
	return slog.String(key, v)
}
