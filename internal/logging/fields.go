package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRequestID is the standardized structured logging key for API request identifiers.
	FieldRequestID = "request_id"
	// FieldOrigin is the standardized structured logging key for origin airport names.
	FieldOrigin = "origin"
	// FieldDestination is the standardized structured logging key for destination airport names.
	FieldDestination = "destination"
	// FieldDayOfWeek is the standardized structured logging key for the 1..7 day index.
	FieldDayOfWeek = "day_of_week"
	// FieldSource is the standardized structured logging key for the prediction source.
	FieldSource = "source"
)
