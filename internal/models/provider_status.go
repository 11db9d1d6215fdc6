package models

import "time"

// ProviderState is the lifecycle state of the transactions provider
type ProviderState string

const (
	ProviderStateUnmounted ProviderState = "unmounted"
	ProviderStateLoading   ProviderState = "loading"
	ProviderStateReady     ProviderState = "ready"
	ProviderStateFailed    ProviderState = "failed"
)

// ProviderStatus is a point-in-time view of the provider
type ProviderStatus struct {
	State     ProviderState `json:"state"`
	LastError string        `json:"last_error,omitempty"`
	Count     int           `json:"count"`
	LoadedAt  *time.Time    `json:"loaded_at,omitempty"`
}

// IsReady returns true once the initial load succeeded
func (s ProviderStatus) IsReady() bool {
	return s.State == ProviderStateReady
}

// IsFailed returns true when the initial load failed
func (s ProviderStatus) IsFailed() bool {
	return s.State == ProviderStateFailed
}
