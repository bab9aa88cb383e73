package domain

// Booking is write-only from the API's point of view. tour_id is free-form and
// travel_date is kept as the caller sent it.
type Booking struct {
	_          struct{} `json:"-" additionalProperties:"true"`
	TourID     string   `json:"tour_id" bson:"tour_id" doc:"ID of the tour being booked"`
	FullName   string   `json:"full_name" bson:"full_name" doc:"Customer full name"`
	Email      string   `json:"email" bson:"email" doc:"Customer email"`
	Phone      *string  `json:"phone,omitempty" bson:"phone" nullable:"true" doc:"Customer phone number"`
	TravelDate string   `json:"travel_date" bson:"travel_date" doc:"Planned travel date (ISO string)"`
	Guests     int      `json:"guests" bson:"guests" minimum:"1" maximum:"20" doc:"Number of guests"`
	Notes      *string  `json:"notes,omitempty" bson:"notes" nullable:"true" doc:"Additional notes or requests"`
}

type Inquiry struct {
	_        struct{} `json:"-" additionalProperties:"true"`
	FullName string   `json:"full_name" bson:"full_name" doc:"Sender full name"`
	Email    string   `json:"email" bson:"email" doc:"Sender email"`
	Message  string   `json:"message" bson:"message" minLength:"10" doc:"Message content"`
}
