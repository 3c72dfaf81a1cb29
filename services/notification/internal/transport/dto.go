package transport

type SendEmailRequest struct {
	UserID         uint   `json:"userId"`
	RecipientEmail string `json:"recipientEmail"`
	Subject        string `json:"subject"`
	Message        string `json:"message"`
	Type           string `json:"type"`
}

type SendSMSRequest struct {
	UserID         uint   `json:"userId"`
	RecipientPhone string `json:"recipientPhone"`
	Message        string `json:"message"`
	Type           string `json:"type"`
}
