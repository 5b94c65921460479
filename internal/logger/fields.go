package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldApplication is the structured log field key for the application id.
	FieldApplication = "application_id"
	// FieldInterviewer is the structured log field key for the interviewer id.
	FieldInterviewer = "interviewer_id"
	// FieldCategory is the structured log field key for the interview category.
	FieldCategory = "category"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// ScheduleFields returns standard zap fields describing a scheduling action.
// Empty values are ignored to keep log entries compact when information is missing.
func ScheduleFields(applicationID, interviewerID, category string) []zap.Field {
	return StringFields(
		StringField{Key: FieldApplication, Value: applicationID},
		StringField{Key: FieldInterviewer, Value: interviewerID},
		StringField{Key: FieldCategory, Value: category},
	)
}

// WithScheduleFields attaches the scheduling fields to the provided logger.
// If the logger is nil, a no-op logger is created to avoid panics.
func WithScheduleFields(logger *zap.Logger, applicationID, interviewerID, category string) *zap.Logger {
	fields := ScheduleFields(applicationID, interviewerID, category)
	return WithFields(logger, fields...)
}
