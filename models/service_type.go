package models

// ServiceType is a catalog entry describing a bookable home service. BasePrice
// feeds the price estimate computed at request creation.
type ServiceType struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	BasePrice   float64 `bson:"base_price" json:"basePrice"`
}
