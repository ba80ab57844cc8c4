package models

// PersonResponse is the shape handed to API clients.
type PersonResponse struct {
	ID         int     `json:"id"`
	GivenName  *string `json:"givenName,omitempty"`
	FamilyName *string `json:"familyName,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
	City       *string `json:"city,omitempty"`
	ColorName  *string `json:"colorName,omitempty"`
}

// NewPersonResponse projects a stored person into the response shape.
func NewPersonResponse(p Person) PersonResponse {
	postalCode, city := SplitAddress(p.Address)

	var colorName *string
	if p.Color != nil {
		name := ColorName(*p.Color)
		colorName = &name
	}

	return PersonResponse{
		ID:         p.ID,
		GivenName:  p.FirstName,
		FamilyName: p.LastName,
		PostalCode: postalCode,
		City:       city,
		ColorName:  colorName,
	}
}

// NewPersonResponses projects a list, always returning a non-nil slice.
func NewPersonResponses(people []Person) []PersonResponse {
	out := make([]PersonResponse, 0, len(people))
	for _, p := range people {
		out = append(out, NewPersonResponse(p))
	}
	return out
}
