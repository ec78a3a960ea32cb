package models

const (
	DefaultSingleProduct = "Unknown Product"
	DefaultBulkProduct   = "Bulk Review"
)

// Review is the canonical shape of one submitted review.
// A nil Aspects means the review is analyzed without aspect conditioning,
// an empty non-nil slice means zero aspects were explicitly requested.
type Review struct {
	Text    string   `json:"text"`
	Product string   `json:"product"`
	Aspects []string `json:"aspects"`
}
