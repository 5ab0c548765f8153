package model

// OwnerStatus describes the outcome of resolving an image's owner.
type OwnerStatus string

const (
	// OwnerResolved means Owner carries the full user record.
	OwnerResolved OwnerStatus = "resolved"
	// OwnerUnresolved means the owner lookup failed; OwnerFailure says why.
	OwnerUnresolved OwnerStatus = "unresolved"
	// OwnerNone means the image has no owner reference at all.
	OwnerNone OwnerStatus = "none"
)

// ImageView is an image joined with its resolved owner. Every view carries
// an explicit owner status so presentation never sees a silent nil owner.
type ImageView struct {
	Image
	Owner        *UserProfile `json:"owner,omitempty"`
	OwnerStatus  OwnerStatus  `json:"owner_status"`
	OwnerFailure string       `json:"owner_failure,omitempty"`
}

// SearchResult holds the enriched collections produced by one search pass.
type SearchResult struct {
	Users  []UserProfile `json:"users"`
	Images []ImageView   `json:"images"`
}

// SearchPayload is the raw combined search response from the upstream API,
// before image owners have been resolved.
type SearchPayload struct {
	Users  []UserProfile `json:"users"`
	Images []Image       `json:"images"`
}
