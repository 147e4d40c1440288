package model

// APIResponse is the standard response envelope of the portal API.
// Code mirrors the HTTP status of the response.
type APIResponse struct {
	Code       int    `json:"code"`
	ErrorMsg   string `json:"error_msg"`
	Result     any    `json:"result"`
	Page       int    `json:"page,omitempty"`
	Total      int    `json:"total,omitempty"`
	NumOfPages int    `json:"num_of_pages,omitempty"`
}

// EmailRequest is the notification service send payload.
type EmailRequest struct {
	Subject        string         `json:"subject"`
	Sender         string         `json:"sender"`
	Receiver       []string       `json:"receiver"`
	MsgType        string         `json:"msg_type"`
	Template       string         `json:"template"`
	TemplateKwargs map[string]any `json:"template_kwargs"`
	Attachments    []any          `json:"attachments,omitempty"`
}

// ContactUsRequest is the portal contact form payload.
type ContactUsRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Name        string `json:"name" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}
