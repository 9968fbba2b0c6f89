package responses

import (
	"encoding/json"

	"swipemarket_api/internal/catalog/models"
)

// IchibaSearchResponse mirrors the envelope of the Rakuten Ichiba Item
// Search API (20170706).
type IchibaSearchResponse struct {
	Count     int           `json:"count"`
	Page      int           `json:"page"`
	First     int           `json:"first"`
	Last      int           `json:"last"`
	Hits      int           `json:"hits"`
	PageCount int           `json:"pageCount"`
	Items     []ItemWrapper `json:"Items"`
}

type ItemWrapper struct {
	Item IchibaItem `json:"Item"`
}

type IchibaItem struct {
	ItemCode        string      `json:"itemCode"`
	ItemName        string      `json:"itemName"`
	ItemCaption     string      `json:"itemCaption"`
	ItemPrice       json.Number `json:"itemPrice"`
	ItemURL         string      `json:"itemUrl"`
	ShopName        string      `json:"shopName"`
	ShopCode        string      `json:"shopCode"`
	GenreID         string      `json:"genreId"`
	MediumImageURLs []ImageURL  `json:"mediumImageUrls"`
}

type ImageURL struct {
	ImageURL string `json:"imageUrl"`
}

// ToRawListing flattens an Ichiba item into the shape the normalizer
// consumes. The price stays textual: the API occasionally sends junk and the
// normalizer owns that decision.
func (it IchibaItem) ToRawListing() models.RawListing {
	imageURL := ""
	if len(it.MediumImageURLs) > 0 {
		imageURL = it.MediumImageURLs[0].ImageURL
	}
	return models.RawListing{
		ItemCode:    it.ItemCode,
		Title:       it.ItemName,
		Description: it.ItemCaption,
		Price:       it.ItemPrice.String(),
		ShopName:    it.ShopName,
		GenreID:     it.GenreID,
		ImageURL:    imageURL,
	}
}
