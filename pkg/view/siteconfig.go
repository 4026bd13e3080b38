package view

// SiteConfigForm mirrors the singleton site_config record, edited wholesale.
type SiteConfigForm struct {
	PrimaryColor    string
	BackgroundColor string
	ProductBgColor  string
	WhatsappNumber  string
}

type ConfigPage struct {
	Flash  *Flash
	Active string
	Form   SiteConfigForm
	Errors map[string]string
}

type LoginPage struct {
	Flash    *Flash
	ReturnTo string
	Username string
	Errors   map[string]string
	PageMsg  string // page-level message (credenciales inválidas)
}

type ForgotPage struct {
	Flash  *Flash
	Email  string
	Errors map[string]string
	Sent   bool
}

type ResetPage struct {
	Flash   *Flash
	Token   string
	Errors  map[string]string
	PageMsg string
}

type HomePage struct {
	Flash           *Flash
	Products        []ProductCard
	PrimaryColor    string
	BackgroundColor string
	ProductBgColor  string
	WhatsappLink    string // empty when no number configured
	LoadError       string
}

type ErrorPage struct {
	Flash     *Flash
	Status    int
	Message   string
	RequestID string
}
