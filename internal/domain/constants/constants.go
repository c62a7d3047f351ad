// Package constants holds identifiers shared across layers.
package constants

// Pub/Sub providers.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Account event subscription used by the local push simulator.
const LocalAccountSubscription = "projects/local/subscriptions/account-events"
