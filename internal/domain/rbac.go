package domain

// EnforceRequest is the question asked of the RBAC layer: may this user,
// within this company, perform action on resource.
type EnforceRequest struct {
	UserID    string
	CompanyID string
	Resource  string
	Action    string
}
