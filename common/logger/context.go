package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// Services enrich the context once (organization_id, activity_id, ...) and every
// slog call made with that context carries the fields.
type LogFields struct {
	OrganizationID *int64  // Organization being read or written
	BuildingID     *int64  // Building being read or written
	ActivityID     *int64  // Activity being read or written
	ActivityName   *string // Activity name used for hierarchy lookups
	Component      string  // Component name, e.g. "catalog.service.organizations"
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, new LogFields) LogFields {
	result := existing

	if new.OrganizationID != nil {
		result.OrganizationID = new.OrganizationID
	}
	if new.BuildingID != nil {
		result.BuildingID = new.BuildingID
	}
	if new.ActivityID != nil {
		result.ActivityID = new.ActivityID
	}
	if new.ActivityName != nil {
		result.ActivityName = new.ActivityName
	}
	if new.Component != "" {
		result.Component = new.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{ActivityID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}
