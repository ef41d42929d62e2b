// internal/gateway/errors.go
// Firebolt-style JSON-RPC error envelope and the fixed code table from the
// wire protocol. The concrete serializer is intentionally the standard
// library's encoding/json (see SPEC_FULL.md ambient-stack notes): the spec
// treats the wire codec as an external collaborator and only its shape is
// pinned here.
package gateway

import "encoding/json"

// RPCError is the {code, message} envelope the wire protocol uses for
// error results.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Named error codes from the resolver/dispatch error taxonomy.
var (
	ErrNotSupported  = RPCError{Code: -50100, Message: "NotSupported"}
	ErrNotAvailable  = RPCError{Code: -50200, Message: "NotAvailable"}
	ErrNotPermitted  = RPCError{Code: -40300, Message: "NotPermitted"}
	ErrBadRequest    = RPCError{Code: -32600, Message: "BadRequest"}
	ErrInternalError = RPCError{Code: -32603, Message: "InternalError"}
)

// marshalError renders an RPCError as the JSON body the Responder writes
// into a response's "error" field.
func marshalError(e RPCError) string {
	b, _ := json.Marshal(e)
	return string(b)
}

// looksLikeErrorEnvelope reports whether payload parses as {code:int,
// message/text:string}, the shape a downstream plugin uses to signal a
// JSON-RPC error verbatim rather than a plain result value (spec §7,
// "downstream errors ... forwarded unchanged").
func looksLikeErrorEnvelope(payload string) (RPCError, bool) {
	var probe struct {
		Code    *int    `json:"code"`
		Message *string `json:"message"`
		Text    *string `json:"text"`
	}
	if err := json.Unmarshal([]byte(payload), &probe); err != nil {
		return RPCError{}, false
	}
	if probe.Code == nil {
		return RPCError{}, false
	}
	msg := ""
	switch {
	case probe.Message != nil:
		msg = *probe.Message
	case probe.Text != nil:
		msg = *probe.Text
	default:
		return RPCError{}, false
	}
	return RPCError{Code: *probe.Code, Message: msg}, true
}
