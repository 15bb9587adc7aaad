package mail

type LeadEmailData struct {
	Event     string
	FirstName string
	LastName  string
	Email     string
	Company   string
	Stage     string
	Value     float64
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	SalesTo  string
}
