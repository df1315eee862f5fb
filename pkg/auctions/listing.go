package auctions

import "fmt"

// Listing is one auction house entry. It is immutable once decoded from the
// upstream payload.
type Listing struct {
	UUID        string
	Name        string
	Lore        string
	Category    string
	Tier        string
	Claimed     bool
	BIN         bool
	StartingBid int64
}

// rawListing mirrors one entry of the upstream auctions array. Required
// fields are pointers so absent keys can be told apart from zero values.
type rawListing struct {
	UUID        *string `json:"uuid"`
	ItemName    string  `json:"item_name"`
	ItemLore    string  `json:"item_lore"`
	Category    *string `json:"category"`
	Tier        *string `json:"tier"`
	Claimed     *bool   `json:"claimed"`
	BIN         *bool   `json:"bin"`
	StartingBid *int64  `json:"starting_bid"`
}

// toListing validates required fields and converts the raw entry. The
// display name may be empty and the lore defaults to "".
func (r *rawListing) toListing() (Listing, error) {
	switch {
	case r.UUID == nil:
		return Listing{}, fmt.Errorf("%w: uuid", ErrMissingField)
	case r.Category == nil:
		return Listing{}, fmt.Errorf("%w: category", ErrMissingField)
	case r.Tier == nil:
		return Listing{}, fmt.Errorf("%w: tier", ErrMissingField)
	case r.Claimed == nil:
		return Listing{}, fmt.Errorf("%w: claimed", ErrMissingField)
	case r.BIN == nil:
		return Listing{}, fmt.Errorf("%w: bin", ErrMissingField)
	case r.StartingBid == nil:
		return Listing{}, fmt.Errorf("%w: starting_bid", ErrMissingField)
	}

	return Listing{
		UUID:        *r.UUID,
		Name:        r.ItemName,
		Lore:        r.ItemLore,
		Category:    *r.Category,
		Tier:        *r.Tier,
		Claimed:     *r.Claimed,
		BIN:         *r.BIN,
		StartingBid: *r.StartingBid,
	}, nil
}

// auctionsPage is the upstream page envelope.
type auctionsPage struct {
	Success    bool         `json:"success"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
	Auctions   []rawListing `json:"auctions"`
}
