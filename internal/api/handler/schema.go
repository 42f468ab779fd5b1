package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses.
type errorResponse struct {
	Error string `json:"error"`
}

// profileRefResponse is the display projection of a referenced profile,
// attached to list items in place of a relational join.
type profileRefResponse struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	FlatNumber string `json:"flat_number"`
}
