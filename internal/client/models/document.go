package models

import "time"

// RemoteCoin is the wire shape of one collection record inside the per-user
// remote document. Deletion is represented by absence from the list, so there
// is no tombstone field; NeedsSync and UserID are local-only concerns.
type RemoteCoin struct {
	ID            string     `json:"id"`
	CatalogCoinID string     `json:"catalogCoinId"`
	IsWishlist    bool       `json:"isWishlist"`
	Condition     string     `json:"condition,omitempty"`
	Grade         string     `json:"grade,omitempty"`
	PurchasePrice *float64   `json:"purchasePrice,omitempty"`
	PurchaseDate  *time.Time `json:"purchaseDate,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	ObverseImage  string     `json:"userObverseImage,omitempty"`
	ReverseImage  string     `json:"userReverseImage,omitempty"`
	UserWeight    *float64   `json:"userWeight,omitempty"`
	UserDiameter  *float64   `json:"userDiameter,omitempty"`
	AddedAt       time.Time  `json:"addedAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// CollectionDocument is the single remote document holding the complete set
// of a user's collection records.
type CollectionDocument struct {
	UserID    string       `json:"userId"`
	Coins     []RemoteCoin `json:"coins"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// ToRemote converts the local record to its wire shape. The remote UpdatedAt
// falls back to CreatedAt for records never edited locally, so merge
// comparisons on other devices always have a timestamp to work with.
func (c *UserCoin) ToRemote() RemoteCoin {
	updated := c.CreatedAt
	if c.UpdatedAt != nil {
		updated = *c.UpdatedAt
	}
	return RemoteCoin{
		ID:            c.ID,
		CatalogCoinID: c.CatalogCoinID,
		IsWishlist:    c.IsWishlist,
		Condition:     c.Condition,
		Grade:         c.Grade,
		PurchasePrice: c.PurchasePrice,
		PurchaseDate:  c.PurchaseDate,
		Notes:         c.Notes,
		ObverseImage:  c.ObverseImage,
		ReverseImage:  c.ReverseImage,
		UserWeight:    c.UserWeight,
		UserDiameter:  c.UserDiameter,
		AddedAt:       c.CreatedAt,
		UpdatedAt:     updated,
	}
}

// FromRemote builds a local record out of a remote one, already marked as
// synced: data arriving from the server is not a local edit.
func FromRemote(rc RemoteCoin, userID string, syncedAt time.Time) *UserCoin {
	updated := rc.UpdatedAt
	c := &UserCoin{
		ID:            rc.ID,
		UserID:        userID,
		CatalogCoinID: rc.CatalogCoinID,
		IsWishlist:    rc.IsWishlist,
		Condition:     rc.Condition,
		Grade:         rc.Grade,
		PurchasePrice: rc.PurchasePrice,
		PurchaseDate:  rc.PurchaseDate,
		Notes:         rc.Notes,
		ObverseImage:  rc.ObverseImage,
		ReverseImage:  rc.ReverseImage,
		UserWeight:    rc.UserWeight,
		UserDiameter:  rc.UserDiameter,
		CreatedAt:     rc.AddedAt,
		UpdatedAt:     &updated,
	}
	c.MarkSynced(syncedAt)
	return c
}

// ApplyRemote overwrites the record's mutable fields with remote values and
// marks it synced, leaving ID, CatalogCoinID and CreatedAt untouched.
func (c *UserCoin) ApplyRemote(rc RemoteCoin, syncedAt time.Time) {
	c.IsWishlist = rc.IsWishlist
	c.Condition = rc.Condition
	c.Grade = rc.Grade
	c.PurchasePrice = rc.PurchasePrice
	c.PurchaseDate = rc.PurchaseDate
	c.Notes = rc.Notes
	c.ObverseImage = rc.ObverseImage
	c.ReverseImage = rc.ReverseImage
	c.UserWeight = rc.UserWeight
	c.UserDiameter = rc.UserDiameter
	updated := rc.UpdatedAt
	c.UpdatedAt = &updated
	c.MarkSynced(syncedAt)
}
