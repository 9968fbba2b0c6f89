package models

// RawListing is a source listing as delivered by an ingestion collaborator
// (the Rakuten client, a backfill script). Price stays a string until
// normalization: source rows with garbage prices are real and must not kill
// a batch.
type RawListing struct {
	ItemCode    string `json:"item_code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ShopName    string `json:"shop_name"`
	GenreID     string `json:"genre_id"`
	ImageURL    string `json:"image_url"`
}
