package header

// Guard is the mutability policy attached to a Headers view. It restricts
// which mutating operations the view permits.
type Guard int

const (
	// GuardNone permits every operation.
	GuardNone Guard = iota

	// GuardImmutable rejects every mutation.
	GuardImmutable

	// GuardRequest marks headers attached to an outgoing request. The
	// forbidden-request-header filtering this guard calls for is not
	// implemented: the guard is recognized but currently behaves as
	// GuardNone.
	GuardRequest

	// GuardRequestNoCORS marks headers attached to a no-cors request. As
	// with GuardRequest, the name filtering is not implemented and the
	// guard currently behaves as GuardNone.
	GuardRequestNoCORS

	// GuardResponse marks headers attached to a received response. As with
	// GuardRequest, the name filtering is not implemented and the guard
	// currently behaves as GuardNone.
	GuardResponse
)

// String returns the guard's wire-level name.
func (g Guard) String() string {
	switch g {
	case GuardNone:
		return "none"
	case GuardImmutable:
		return "immutable"
	case GuardRequest:
		return "request"
	case GuardRequestNoCORS:
		return "request-no-cors"
	case GuardResponse:
		return "response"
	}
	return "unknown"
}
