package twitter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/devbush/likewrapped/internal/domain"
)

// v1.1 error codes
const (
	codePageNotFound  = 34
	codeUserNotFound  = 50
	codeSuspended     = 63
	codeRateLimited   = 88
	codeNotAuthorized = 179
)

// classify maps an error response to the domain error taxonomy
func classify(status int, body []byte) error {
	var apiErr apiErrorBody
	_ = json.Unmarshal(body, &apiErr)

	codes := make(map[int]bool, len(apiErr.Errors))
	messages := make([]string, 0, len(apiErr.Errors)+1)
	for _, e := range apiErr.Errors {
		codes[e.Code] = true
		messages = append(messages, fmt.Sprintf("%d %s", e.Code, e.Message))
	}
	if apiErr.Error != "" {
		messages = append(messages, apiErr.Error)
	}
	detail := fmt.Sprintf("API returned %d", status)
	if len(messages) > 0 {
		detail += ": " + strings.Join(messages, "; ")
	}

	switch {
	case status == http.StatusNotFound || codes[codePageNotFound] || codes[codeUserNotFound] || codes[codeSuspended]:
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, detail)
	case status == http.StatusTooManyRequests || codes[codeRateLimited]:
		return fmt.Errorf("%w: %w: %s", domain.ErrTransientFetch, domain.ErrRateLimited, detail)
	case status == http.StatusUnauthorized || status == http.StatusForbidden || codes[codeNotAuthorized]:
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, detail)
	default:
		return fmt.Errorf("%w: %s", domain.ErrTransientFetch, detail)
	}
}
