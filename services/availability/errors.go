package availability

import "fmt"

// ValidationError signals malformed input: bad intervals, bad dates, a date
// range beyond the cap, or an unresolvable timezone. Nothing is fetched or
// mutated once one is raised.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// OwnershipError signals that the caller does not own the contractor profile
// targeted by a mutating operation.
type OwnershipError struct {
	ContractorID string
}

func (e OwnershipError) Error() string {
	return fmt.Sprintf("caller does not own contractor profile %s", e.ContractorID)
}

// ConflictError signals that a new blockout would intersect a confirmed
// booking. The booking is authoritative and is never implicitly cancelled.
type ConflictError struct {
	Reason string
}

func (e ConflictError) Error() string {
	return "conflict: " + e.Reason
}

// NotFoundError signals a missing contractor, rule, exception or blockout.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConfigError signals that a contractor exists but has no usable schedule
// configuration (timezone or granularity unset). Distinct from NotFoundError.
type ConfigError struct {
	ContractorID string
	Reason       string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("contractor %s schedule configuration: %s", e.ContractorID, e.Reason)
}
