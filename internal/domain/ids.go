package domain

// ServiceRequestID is an internal identifier for a submitted service request.
type ServiceRequestID string

// CorrelationID is the opaque per-request token carried in X-Correlation-Id.
type CorrelationID string
