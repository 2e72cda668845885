package domain

// Destination is a marketing page for one sailing/holiday region.
type Destination struct {
	ID        int64  `json:"id"`
	Slug      string `json:"slug"`
	NameEN    string `json:"name_en"`
	NameDE    string `json:"name_de"`
	IntroEN   string `json:"intro_en"`
	IntroDE   string `json:"intro_de"`
	HeroImage string `json:"hero_image"`
	Position  int    `json:"position"`
}

func (d *Destination) Name(loc Locale) string { return loc.Pick(d.NameEN, d.NameDE) }

// ServicePage is a static marketing page (concierge, provisioning, crew...).
type ServicePage struct {
	ID       int64  `json:"id"`
	Slug     string `json:"slug"`
	TitleEN  string `json:"title_en"`
	TitleDE  string `json:"title_de"`
	BodyEN   string `json:"body_en"`
	BodyDE   string `json:"body_de"`
	Position int    `json:"position"`
}

func (s *ServicePage) Title(loc Locale) string { return loc.Pick(s.TitleEN, s.TitleDE) }
