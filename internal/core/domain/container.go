package domain

import "strings"

// ContainerSummaryView is a snapshot of one container as reported by the
// engine at list time. It is rebuilt on every list call.
type ContainerSummaryView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Image  string `json:"image"`
	State  string `json:"state"` // running, exited, etc.
	Status string `json:"status"`
	Ports  string `json:"ports"` // "8080->80/tcp, 8443->443/tcp"
}

// Snapshot is what the dashboard renders: the container list plus the id of
// the container the dashboard itself runs in. SelfID is empty when it could
// not be determined.
type Snapshot struct {
	SelfID     string                 `json:"self_id"`
	Containers []ContainerSummaryView `json:"containers"`
}

// IsSelf reports whether id refers to the self container by its full id or
// any prefix of it.
func (s Snapshot) IsSelf(id string) bool {
	return MatchesID(s.SelfID, id)
}

// MatchesID reports whether ref could name the container with the full id
// fullID. The engine resolves any unique id prefix, so every non-empty
// prefix counts, ignoring case.
func MatchesID(fullID, ref string) bool {
	if fullID == "" || ref == "" {
		return false
	}
	return strings.HasPrefix(strings.ToLower(fullID), strings.ToLower(ref))
}
