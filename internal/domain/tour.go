package domain

const (
	TourCollection    = "tour"
	BookingCollection = "booking"
	InquiryCollection = "inquiry"
)

const DefaultTourRating = 4.8

// Tour is a catalog entry. Read-mostly; the API never updates or deletes tours.
type Tour struct {
	ID           string   `json:"id,omitempty" bson:"_id,omitempty" doc:"Datastore identifier"`
	Title        string   `json:"title" bson:"title" doc:"Tour package title" validate:"required"`
	Description  string   `json:"description" bson:"description" doc:"Short description of the tour" validate:"required"`
	Price        float64  `json:"price" bson:"price" minimum:"0" doc:"Price per person in USD" validate:"gte=0"`
	DurationDays int      `json:"duration_days" bson:"duration_days" minimum:"1" doc:"Tour duration in days" validate:"gte=1"`
	Location     string   `json:"location" bson:"location" doc:"Primary location / destination" validate:"required"`
	ImageURL     *string  `json:"image_url" bson:"image_url" required:"false" nullable:"true" doc:"Cover image URL"`
	Highlights   []string `json:"highlights" bson:"highlights" required:"false" doc:"Key highlights of the tour"`
	Rating       *float64 `json:"rating" bson:"rating" required:"false" minimum:"0" maximum:"5" doc:"Average rating" validate:"omitempty,gte=0,lte=5"`
}

// Normalize fills the optional fields that have defaults.
func (t *Tour) Normalize() {
	if t.Highlights == nil {
		t.Highlights = []string{}
	}
	if t.Rating == nil {
		r := DefaultTourRating
		t.Rating = &r
	}
}
