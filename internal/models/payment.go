package models

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
