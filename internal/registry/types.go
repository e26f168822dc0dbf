package registry

// CompanySummary is a single hit from the company search endpoint.
type CompanySummary struct {
	Title          string `json:"title"`
	CompanyNumber  string `json:"company_number"`
	CompanyStatus  string `json:"company_status,omitempty"`
	AddressSnippet string `json:"address_snippet,omitempty"`
}

// Label returns the list label shown for the company, "Title (number)".
func (c CompanySummary) Label() string {
	return c.Title + " (" + c.CompanyNumber + ")"
}

// SearchResult is one page of company search hits.
type SearchResult struct {
	Items        []CompanySummary `json:"items"`
	TotalResults int              `json:"total_results"`
}

// Address is the subset of a registered office address we display.
type Address struct {
	AddressLine1 string `json:"address_line_1"`
	PostalCode   string `json:"postal_code"`
}

// CompanyProfile is the company profile record.
type CompanyProfile struct {
	CompanyName             string   `json:"company_name"`
	CompanyNumber           string   `json:"company_number"`
	CompanyStatus           string   `json:"company_status"`
	RegisteredOfficeAddress *Address `json:"registered_office_address,omitempty"`
}

// FilingItem is one entry of a company's filing history.
type FilingItem struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// FilingHistory is one page of filing history items.
type FilingHistory struct {
	Items      []FilingItem `json:"items"`
	TotalCount int          `json:"total_count"`
}

// PSC is a person with significant control over a company.
type PSC struct {
	Name             string   `json:"name"`
	Kind             string   `json:"kind,omitempty"`
	CeasedOn         string   `json:"ceased_on,omitempty"`
	NaturesOfControl []string `json:"natures_of_control"`
}

// IsCeased returns true if the PSC has a cease date.
func (p *PSC) IsCeased() bool {
	return p.CeasedOn != ""
}

// PSCList is the persons-with-significant-control listing for a company.
type PSCList struct {
	Items       []PSC `json:"items"`
	ActiveCount int   `json:"active_count"`
	CeasedCount int   `json:"ceased_count"`
}
