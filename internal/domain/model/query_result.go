package model

// FailureKind classifies why a weather lookup produced no reading.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureNotFound
	FailureProvider
	FailureNetwork
	FailureUnexpected
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "ok"
	case FailureNotFound:
		return "not_found"
	case FailureProvider:
		return "provider_error"
	case FailureNetwork:
		return "network_error"
	case FailureUnexpected:
		return "unexpected_error"
	default:
		return "unknown"
	}
}

// QueryResult holds either a Reading or a Failure, never both.
// Err keeps the underlying cause for server-side logs only; it must not reach chat output.
type QueryResult struct {
	Reading *WeatherReading
	Failure FailureKind
	Err     error
}

func Success(r *WeatherReading) QueryResult {
	return QueryResult{Reading: r}
}

func Failed(kind FailureKind, err error) QueryResult {
	if kind == FailureNone {
		kind = FailureUnexpected
	}
	return QueryResult{Failure: kind, Err: err}
}

func (q QueryResult) OK() bool { return q.Reading != nil && q.Failure == FailureNone }
