package dto

// CheckRouteInput represents the query of a route check
type CheckRouteInput struct {
	Origin      string `query:"origin" validate:"required,max=100" doc:"Origin solar system name or fragment" example:"Jita"`
	Destination string `query:"destination" validate:"required,max=100" doc:"Destination solar system name or fragment" example:"Amarr"`
}

// SearchTermsRequest is the body of a term search
type SearchTermsRequest struct {
	Terms []string `json:"terms,omitempty" validate:"required,min=1,max=500,dive,required" doc:"Free-text terms to resolve" example:"[\"Jita\",\"Amarr\"]"`
}

// SearchTermsInput represents the input for resolving free-text terms
type SearchTermsInput struct {
	Body SearchTermsRequest
}

// SystemsByNamesRequest is the body of a solar system search
type SystemsByNamesRequest struct {
	SystemNames []string `json:"system_names,omitempty" validate:"required,min=1,max=500,dive,required" doc:"Solar system names or fragments"`
}

// SystemsByNamesInput represents the input for a solar system search
type SystemsByNamesInput struct {
	Body SystemsByNamesRequest
}

// NamesRequest is the body of an ID to name lookup
type NamesRequest struct {
	IDs []int64 `json:"ids,omitempty" validate:"required,min=1,max=1000,dive,gt=0" doc:"Entity IDs to resolve"`
}

// NamesInput represents the input for resolving IDs to names
type NamesInput struct {
	Body NamesRequest
}

// CheckRouteParams are the two terms of a route check, shared by the event adapters
type CheckRouteParams struct {
	SystemNames []string `validate:"len=2,dive,required"`
}

// TermsParams is a non-empty term list, shared by the event adapters
type TermsParams struct {
	Terms []string `validate:"required,min=1,dive,required"`
}

// IDsParams is a non-empty ID list, shared by the event adapters
type IDsParams struct {
	IDs []int64 `validate:"required,min=1,dive,gt=0"`
}
