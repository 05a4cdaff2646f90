package auditlogs

import "github.com/NeuralTrust/ParamGuard/pkg/utils"

type Event struct {
	Event   EventInfo `json:"event"`
	Target  Target    `json:"target"`
	Context Context   `json:"context"`
}

// Type satisfies cache.Event so events can go straight to the publisher.
func (e Event) Type() string {
	return e.Event.Type
}

type EventInfo struct {
	Type        string `json:"type"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// Target identifies the offending parameter. Value is truncated.
type Target struct {
	Type   string `json:"type"`
	Kind   string `json:"kind"`
	Source string `json:"source"`
	Name   string `json:"name"`
	Value  string `json:"value,omitempty"`
}

type Context struct {
	IPAddress string               `json:"ipAddress,omitempty"`
	UserAgent string               `json:"userAgent,omitempty"`
	Client    *utils.UserAgentInfo `json:"client,omitempty"`
	RequestID string               `json:"requestId,omitempty"`
	Method    string               `json:"method,omitempty"`
	Path      string               `json:"path,omitempty"`
}
