package warapi

import "foxholewar/utils/requests"

// Connection failure, timeout, cancellation or non-2xx status.
type TransportError = requests.TransportError

// Malformed JSON, missing required field, unknown enum tag or type mismatch.
type DecodeError = requests.DecodeError
