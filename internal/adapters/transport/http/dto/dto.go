package dto

// TokenRequestDTO is the OAuth2 password grant form.
type TokenRequestDTO struct {
	GrantType string `form:"grant_type"`
	Username  string `form:"username" validate:"required"`
	Password  string `form:"password" validate:"required"`
	Scope     string `form:"scope"`
}

type TokenResponseDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
}

// CreateQRCodeDTO is the create request. The url limit matches
// filename.MaxURLLen.
type CreateQRCodeDTO struct {
	URL       string `json:"url"        validate:"required,url,max=188"`
	FillColor string `json:"fill_color" validate:"omitempty,max=32"`
	BackColor string `json:"back_color" validate:"omitempty,max=32"`
	Size      int    `json:"size"       validate:"omitempty,min=1,max=40"`
}

type LinkDTO struct {
	Rel    string `json:"rel"`
	Href   string `json:"href"`
	Action string `json:"action"`
	Type   string `json:"type"`
}

type QRCodeResponseDTO struct {
	Message   string    `json:"message"`
	QRCodeURL string    `json:"qr_code_url"`
	Links     []LinkDTO `json:"links"`
}

type ErrorDTO struct {
	Detail string `json:"detail"`
}
