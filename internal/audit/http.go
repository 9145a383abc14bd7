package audit

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
)

// ClientIP extracts client ip from common headers or RemoteAddr.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

// Actor extracts the acting user from the request. Authentication is out of
// scope; callers pass an identifier through the X-Actor header if they have
// one.
func Actor(r *http.Request) string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(r.Header.Get("X-Actor"))
}

// Record writes an entry for a mutating request. Write failures are dropped;
// auditing never blocks the response.
func Record(r *http.Request, logger Logger, action, resourceType, resourceID string, meta map[string]any) {
	if logger == nil || r == nil {
		return
	}
	var payload json.RawMessage
	if len(meta) > 0 {
		payload, _ = json.Marshal(meta)
	}
	_ = logger.Log(r.Context(), Entry{
		Actor:        Actor(r),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Metadata:     payload,
		IP:           ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}
