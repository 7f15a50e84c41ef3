package models

// HomepageContent is a singleton record with last-writer-wins semantics.
type HomepageContent struct {
	HeroTitle           string `json:"heroTitle"`
	HeroSubtitle        string `json:"heroSubtitle"`
	HeroBackgroundImage string `json:"heroBackgroundImage"`
	CallOutButtonText   string `json:"callOutButtonText"`
}

// SitewideContent holds the text blocks shared across pages.
type SitewideContent struct {
	ServicesDescription string `json:"servicesDescription"`
	BookingIntro        string `json:"bookingIntro"`
	FooterContent       string `json:"footerContent"`
}
