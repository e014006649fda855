package models

// Country is a top-level catalog node.
type Country struct {
	ID     string
	Name   string
	NameEn string
	Flag   string
}

// Period is a historical period within a country.
type Period struct {
	ID        string
	CountryID string
	Name      string
	StartYear int
	EndYear   int
	SortOrder int
}

// Ruler is an issuing authority within a period.
type Ruler struct {
	ID        string
	PeriodID  string
	Name      string
	NameEn    string
	StartYear int
	EndYear   int
	Portrait  string
}

// CatalogCoin is an immutable reference entry in the coin catalog.
// Users never own catalog coins directly; UserCoin records point at them.
type CatalogCoin struct {
	ID                string
	RulerID           string
	CatalogNumber     string
	Name              string
	NameEn            string
	Year              int
	Denomination      string
	DenominationValue *float64
	Currency          string
	Metal             string
	Weight            *float64
	Diameter          *float64
	Mint              string
	MintMark          string
	Mintage           *int64
	Rarity            string
	RarityScore       *float64
	EstimatedValueMin *float64
	EstimatedValueMax *float64
	ObverseImage      string
	ReverseImage      string
	Description       string
}
