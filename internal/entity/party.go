package entity

// Parties are lookup tables: the lifecycle engine only checks existence and
// resolves display names. The password column is opaque to this service.

// db model
type Buyer struct {
	Ref          string `json:"ref" db:"ref"`
	Name         string `json:"name" db:"name"`
	ContactEmail string `json:"contactEmail" db:"contact_email"`
	ContactPhone string `json:"contactPhone" db:"contact_phone"`
}

// db model
type Bidder struct {
	Ref          string `json:"ref" db:"ref"`
	Name         string `json:"name" db:"name"`
	ContactEmail string `json:"contactEmail" db:"contact_email"`
	ContactPhone string `json:"contactPhone" db:"contact_phone"`
}

// db model
type Vendor struct {
	Ref          string `json:"ref" db:"ref"`
	Name         string `json:"name" db:"name"`
	ContactEmail string `json:"contactEmail" db:"contact_email"`
}

// service + repo input model
type CreatePartyInput struct {
	Name         string
	ContactEmail string
	ContactPhone string
	Password     string
}

// controller model
type PartyOutputModel struct {
	Ref          string `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone,omitempty"`
}
