package dto

type CreateOfferRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Currency    string  `json:"currency" binding:"required,len=3"`
}

type RespondOfferRequest struct {
	Response string `json:"response" binding:"required,oneof=accepted declined"`
}
