package transport

type CreateServiceRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	DurationMinutes int     `json:"durationMinutes"`
	BasePrice       float64 `json:"basePrice"`
	IconURL         string  `json:"iconUrl"`
	Notes           string  `json:"notes"`
}

type PatchServiceRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Category        *string  `json:"category"`
	DurationMinutes *int     `json:"durationMinutes"`
	BasePrice       *float64 `json:"basePrice"`
	Active          *bool    `json:"active"`
	IconURL         *string  `json:"iconUrl"`
	Notes           *string  `json:"notes"`
}

type SearchResponse[T any] struct {
	Total int64 `json:"total"`
	Items []T   `json:"items"`
}
