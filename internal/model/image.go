package model

// Tag is a label attached to an image.
type Tag struct {
	Name string `json:"name"`
}

// Image is an image record as returned by the Svitlogram API.
// UserID is nullable: the upstream contract allows ownerless images.
type Image struct {
	ID          int64   `json:"id"`
	URL         string  `json:"url"`
	Description string  `json:"description"`
	AvgRating   float64 `json:"avg_rating"`
	Tags        []Tag   `json:"tags"`
	UserID      *int64  `json:"user_id"`
}

// HasOwner reports whether the image carries an owner reference.
func (i *Image) HasOwner() bool {
	return i.UserID != nil
}
