package domain

type Mail struct {
	To      string
	Subject string
	HTML    string
}
