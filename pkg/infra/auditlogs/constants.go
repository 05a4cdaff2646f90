package auditlogs

const (
	EventTypeAttackBlocked  = "attack.blocked"
	EventTypeAttackFiltered = "attack.filtered"
	EventTypeAttackDetected = "attack.detected"
)

const (
	CategoryRunTimeSecurity = "runtime_security"
)

const (
	StatusBlocked  = "blocked"
	StatusFiltered = "filtered"
	StatusDetected = "detected"
)

const (
	TargetTypeParameter = "parameter"
)

const RequestIDHeader = "X-Request-Id"
