package model

const (
	MessageCreated   = "QR code created successfully."
	MessageExists    = "QR code already exists."
	MessageAvailable = "QR code available"
)

type Request struct {
	URL       string
	FillColor string
	BackColor string
	Size      int
}

type Link struct {
	Rel    string
	Href   string
	Action string
	Type   string
}

type Descriptor struct {
	Message   string
	Filename  string
	QRCodeURL string
	Links     []Link
	// Created is false when the file was already on disk.
	Created bool
}
