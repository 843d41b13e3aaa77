package errors

// Kind classifies what went wrong, independent of the calling operation.
type Kind string

// Base failure kinds.
const (
	// KindTransport indicates the network/IO layer could not complete the exchange.
	KindTransport Kind = "TRANSPORT_FAILURE"
	// KindMalformed indicates the response body was empty or not valid JSON.
	KindMalformed Kind = "MALFORMED_RESPONSE"
	// KindService indicates the service answered with an error envelope.
	KindService Kind = "SERVICE_ERROR"
	// KindSerialization indicates a local value could not be encoded or decoded.
	KindSerialization Kind = "SERIALIZATION_FAILURE"
)

// Operation identifies the class of public operation a failure crossed.
// The zero value marks an unscoped base error.
type Operation string

// Operation classes.
const (
	OpNone       Operation = ""
	OpConnection Operation = "CONNECTION_ERROR"
	OpCreation   Operation = "CREATION_ERROR"
	OpQuery      Operation = "QUERY_ERROR"
	OpDelivery   Operation = "DELIVERY_ERROR"
)

// String returns the operation name, or "UNSCOPED" for base errors.
func (o Operation) String() string {
	if o == OpNone {
		return "UNSCOPED"
	}
	return string(o)
}

var retryableKinds = map[Kind]bool{
	KindTransport:     true,
	KindMalformed:     false,
	KindService:       false,
	KindSerialization: false,
}

// IsRetryableKind reports whether a failure of this kind may succeed when the
// caller repeats the call. Nothing in this module retries on its own.
func IsRetryableKind(kind Kind) bool {
	return retryableKinds[kind]
}
