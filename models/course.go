package models

import "time"

// Provider kinds supported by the reservation adapter registry.
const (
	ProviderKindA      = "providerA"
	ProviderKindB      = "providerB"
	ProviderKindC      = "providerC"
	ProviderKindCustom = "custom"
)

// ProviderConfig describes how to reach a golf course's own reservation system.
// Looked up once per confirm attempt and treated as immutable for that attempt.
type ProviderConfig struct {
	Kind      string            `bson:"kind" json:"kind"`
	BaseURL   string            `bson:"base_url" json:"base_url"`
	APIToken  string            `bson:"api_token,omitempty" json:"-"`
	APIKey    string            `bson:"api_key,omitempty" json:"-"`
	APISecret string            `bson:"api_secret,omitempty" json:"-"`
	Headers   map[string]string `bson:"headers,omitempty" json:"-"`
	// Simulate short-circuits the live call with a synthetic confirmation.
	// Per course, so a sandboxed integration never masks a live one.
	Simulate       bool `bson:"simulate" json:"simulate"`
	TimeoutSeconds int  `bson:"timeout_seconds,omitempty" json:"timeout_seconds,omitempty"`
}

// GolfCourse is the venue record; the reservation core only reads its provider config.
type GolfCourse struct {
	ID        string         `bson:"id" json:"id"`
	Name      string         `bson:"name" json:"name"`
	City      string         `bson:"city,omitempty" json:"city,omitempty"`
	Phone     string         `bson:"phone,omitempty" json:"phone,omitempty"`
	Provider  ProviderConfig `bson:"provider" json:"provider"`
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time      `bson:"updated_at" json:"updated_at"`
}
