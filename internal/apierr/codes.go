package apierr

import (
	"fmt"
	"net/http"
)

// Weatherstack in-band error codes.
const (
	CodeNotFound                 = 404
	CodeInvalidAccessKey         = 101
	CodeInactiveUser             = 102
	CodeInvalidAPIFunction       = 103
	CodeUsageLimitReached        = 104
	CodeFunctionAccessRestricted = 105
	CodeMissingQuery             = 601
	CodeInvalidUnitParam         = 602
	CodeHistoricalNotOnPlan      = 603
	CodeBulkNotOnPlan            = 604
	CodeInvalidLanguage          = 605
	CodeInvalidUnit              = 606
	CodeInvalidInterval          = 607
	CodeInvalidForecastDays      = 608
	CodeForecastNotOnPlan        = 609
	CodeInvalidHistoricalDate    = 611
	CodeInvalidHistoricalRange   = 612
	CodeHistoricalRangeTooLong   = 613
	CodeMissingHistoricalDate    = 614
	CodeRequestFailed            = 615
)

var codeKinds = map[int]Kind{
	CodeInvalidAccessKey: KindAuthentication,
	CodeInactiveUser:     KindAuthentication,

	CodeUsageLimitReached:        KindRateLimitOrPlan,
	CodeFunctionAccessRestricted: KindRateLimitOrPlan,
	CodeHistoricalNotOnPlan:      KindRateLimitOrPlan,
	CodeBulkNotOnPlan:            KindRateLimitOrPlan,
	CodeForecastNotOnPlan:        KindRateLimitOrPlan,

	CodeNotFound:               KindInvalidRequest,
	CodeInvalidAPIFunction:     KindInvalidRequest,
	CodeMissingQuery:           KindInvalidRequest,
	CodeInvalidUnitParam:       KindInvalidRequest,
	CodeInvalidLanguage:        KindInvalidRequest,
	CodeInvalidUnit:            KindInvalidRequest,
	CodeInvalidInterval:        KindInvalidRequest,
	CodeInvalidForecastDays:    KindInvalidRequest,
	CodeInvalidHistoricalDate:  KindInvalidRequest,
	CodeInvalidHistoricalRange: KindInvalidRequest,
	CodeHistoricalRangeTooLong: KindInvalidRequest,
	CodeMissingHistoricalDate:  KindInvalidRequest,
	CodeRequestFailed:          KindInvalidRequest,
}

// KindForCode maps a provider error code to its taxonomy kind.
func KindForCode(code int) Kind {
	if kind, ok := codeKinds[code]; ok {
		return kind
	}
	return KindProvider
}

// FromProviderCode builds the terminal error for an in-band provider error.
func FromProviderCode(code int, errType, info string) *Error {
	msg := info
	if msg == "" {
		msg = errType
	}
	if msg == "" {
		msg = "provider reported an error"
	}
	return &Error{
		Kind:    KindForCode(code),
		Code:    code,
		Message: fmt.Sprintf("provider error %d: %s", code, msg),
	}
}

// FromStatus classifies a non-2xx HTTP answer that carried no in-band error.
func FromStatus(status int) *Error {
	var kind Kind
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindAuthentication
	case status == http.StatusTooManyRequests:
		kind = KindRateLimitOrPlan
	case status == http.StatusRequestTimeout || status >= http.StatusInternalServerError:
		kind = KindTransientNetwork
	default:
		kind = KindProvider
	}
	return &Error{
		Kind:       kind,
		StatusCode: status,
		Message:    fmt.Sprintf("HTTP error (status %d): %s", status, http.StatusText(status)),
	}
}
