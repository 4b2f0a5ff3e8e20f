package pvclient

import "strconv"

// HTTPStatus is a numeric HTTP status code as reported by the API.
type HTTPStatus int

// Status codes known to the client.
const (
	StatusContinue                      HTTPStatus = 100
	StatusSwitchingProtocols            HTTPStatus = 101
	StatusEarlyHints                    HTTPStatus = 103
	StatusOK                            HTTPStatus = 200
	StatusCreated                       HTTPStatus = 201
	StatusAccepted                      HTTPStatus = 202
	StatusNonAuthoritativeInformation   HTTPStatus = 203
	StatusNoContent                     HTTPStatus = 204
	StatusResetContent                  HTTPStatus = 205
	StatusPartialContent                HTTPStatus = 206
	StatusMultipleChoices               HTTPStatus = 300
	StatusMovedPermanently              HTTPStatus = 301
	StatusFound                         HTTPStatus = 302
	StatusSeeOther                      HTTPStatus = 303
	StatusNotModified                   HTTPStatus = 304
	StatusUnused                        HTTPStatus = 306
	StatusTemporaryRedirect             HTTPStatus = 307
	StatusPermanentRedirect             HTTPStatus = 308
	StatusBadRequest                    HTTPStatus = 400
	StatusUnauthorized                  HTTPStatus = 401
	StatusForbidden                     HTTPStatus = 403
	StatusNotFound                      HTTPStatus = 404
	StatusMethodNotAllowed              HTTPStatus = 405
	StatusNotAcceptable                 HTTPStatus = 406
	StatusProxyAuthenticationRequired   HTTPStatus = 407
	StatusRequestTimeout                HTTPStatus = 408
	StatusConflict                      HTTPStatus = 409
	StatusGone                          HTTPStatus = 410
	StatusLengthRequired                HTTPStatus = 411
	StatusPreconditionFailed            HTTPStatus = 412
	StatusPayloadTooLarge               HTTPStatus = 413
	StatusURITooLong                    HTTPStatus = 414
	StatusUnsupportedMediaType          HTTPStatus = 415
	StatusRangeNotSatisfiable           HTTPStatus = 416
	StatusExpectationFailed             HTTPStatus = 417
	StatusImATeapot                     HTTPStatus = 418
	StatusMisdirectedRequest            HTTPStatus = 421
	StatusTooEarly                      HTTPStatus = 425
	StatusUpgradeRequired               HTTPStatus = 426
	StatusPreconditionRequired          HTTPStatus = 428
	StatusTooManyRequests               HTTPStatus = 429
	StatusRequestHeaderFieldsTooLarge   HTTPStatus = 431
	StatusUnavailableForLegalReasons    HTTPStatus = 451
	StatusInternalServerError           HTTPStatus = 500
	StatusNotImplemented                HTTPStatus = 501
	StatusBadGateway                    HTTPStatus = 502
	StatusServiceUnavailable            HTTPStatus = 503
	StatusGatewayTimeout                HTTPStatus = 504
	StatusHTTPVersionNotSupported       HTTPStatus = 505
	StatusVariantAlsoNegotiates         HTTPStatus = 506
	StatusNotExtended                   HTTPStatus = 510
	StatusNetworkAuthenticationRequired HTTPStatus = 511
)

var statusNames = map[HTTPStatus]string{
	StatusContinue:                      "Continue",
	StatusSwitchingProtocols:            "SwitchingProtocols",
	StatusEarlyHints:                    "EarlyHints",
	StatusOK:                            "OK",
	StatusCreated:                       "Created",
	StatusAccepted:                      "Accepted",
	StatusNonAuthoritativeInformation:   "NonAuthoritativeInformation",
	StatusNoContent:                     "NoContent",
	StatusResetContent:                  "ResetContent",
	StatusPartialContent:                "PartialContent",
	StatusMultipleChoices:               "MultipleChoices",
	StatusMovedPermanently:              "MovedPermanently",
	StatusFound:                         "Found",
	StatusSeeOther:                      "SeeOther",
	StatusNotModified:                   "NotModified",
	StatusUnused:                        "Unused",
	StatusTemporaryRedirect:             "TemporaryRedirect",
	StatusPermanentRedirect:             "PermanentRedirect",
	StatusBadRequest:                    "BadRequest",
	StatusUnauthorized:                  "Unauthorized",
	StatusForbidden:                     "Forbidden",
	StatusNotFound:                      "NotFound",
	StatusMethodNotAllowed:              "MethodNotAllowed",
	StatusNotAcceptable:                 "NotAcceptable",
	StatusProxyAuthenticationRequired:   "ProxyAuthenticationRequired",
	StatusRequestTimeout:                "RequestTimeout",
	StatusConflict:                      "Conflict",
	StatusGone:                          "Gone",
	StatusLengthRequired:                "LengthRequired",
	StatusPreconditionFailed:            "PreconditionFailed",
	StatusPayloadTooLarge:               "PayloadTooLarge",
	StatusURITooLong:                    "URITooLong",
	StatusUnsupportedMediaType:          "UnsupportedMediaType",
	StatusRangeNotSatisfiable:           "RangeNotSatisfiable",
	StatusExpectationFailed:             "ExpectationFailed",
	StatusImATeapot:                     "ImATeapot",
	StatusMisdirectedRequest:            "MisdirectedRequest",
	StatusTooEarly:                      "TooEarly",
	StatusUpgradeRequired:               "UpgradeRequired",
	StatusPreconditionRequired:          "PreconditionRequired",
	StatusTooManyRequests:               "TooManyRequests",
	StatusRequestHeaderFieldsTooLarge:   "RequestHeaderFieldsTooLarge",
	StatusUnavailableForLegalReasons:    "UnavailableForLegalReasons",
	StatusInternalServerError:           "InternalServerError",
	StatusNotImplemented:                "NotImplemented",
	StatusBadGateway:                    "BadGateway",
	StatusServiceUnavailable:            "ServiceUnavailable",
	StatusGatewayTimeout:                "GatewayTimeout",
	StatusHTTPVersionNotSupported:       "HTTPVersionNotSupported",
	StatusVariantAlsoNegotiates:         "VariantAlsoNegotiates",
	StatusNotExtended:                   "NotExtended",
	StatusNetworkAuthenticationRequired: "NetworkAuthenticationRequired",
}

// String returns the symbolic name of the status, or "HTTPStatus(n)" for codes outside the enumeration.
func (s HTTPStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "HTTPStatus(" + strconv.Itoa(int(s)) + ")"
}

// Known reports whether the status is part of the enumeration.
func (s HTTPStatus) Known() bool {
	_, ok := statusNames[s]
	return ok
}

// Class returns the hundreds digit of the status (1 for informational up to 5 for server errors).
func (s HTTPStatus) Class() int {
	return int(s) / 100
}

// IsInformational reports whether the status is in the 1xx class.
func (s HTTPStatus) IsInformational() bool { return s.Class() == 1 }

// IsSuccess reports whether the status is in the 2xx class.
func (s HTTPStatus) IsSuccess() bool { return s.Class() == 2 }

// IsRedirection reports whether the status is in the 3xx class.
func (s HTTPStatus) IsRedirection() bool { return s.Class() == 3 }

// IsClientError reports whether the status is in the 4xx class.
func (s HTTPStatus) IsClientError() bool { return s.Class() == 4 }

// IsServerError reports whether the status is in the 5xx class.
func (s HTTPStatus) IsServerError() bool { return s.Class() == 5 }
