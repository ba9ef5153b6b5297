package domain

import "errors"

var ErrDomainRequired = errors.New("domain is required")
var ErrDomainTaken = errors.New("subdomain already registered")
var ErrNoPublishedContent = errors.New("before selecting your domain name, please publish your webpage first")
var ErrRegistrationFailed = errors.New("could not register subdomain")
var ErrRegistrarFailed = errors.New("subdomain registration failed after content update")

// FormatSiteName renders the full public site name for a bound subdomain,
// e.g. "ada" under "siher.eth" becomes "ada.siher.eth.link".
func FormatSiteName(name, parent string) string {
	return name + "." + parent + ".link"
}
