// Package content owns the site's content model and the form-controller
// engine behind the admin panel: load a document into an editable draft,
// mutate scalar and nested-list fields, normalize, and write the whole
// document back. The engine is implemented once and parameterized per
// content type.
package content

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Collection names in the document store. About is a singleton: exactly one
// document under a fixed key instead of a generated id.
const (
	CollectionAbout      = "about"
	AboutDocumentID      = "content"
	CollectionServices   = "services"
	CollectionProjects   = "projects"
	CollectionPricing    = "pricingPlans"
	CollectionTeam       = "teamMembers"
	CollectionGallery    = "imageGallery"
	CollectionAdminUsers = "adminUsers"
)

// StringList is an ordered list of strings whose array index is its display
// order. It accepts either a JSON array or a single comma-separated string
// (the team form submits expertise as one comma-separated input).
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "\"") {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = SplitComma(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// SplitComma splits a comma-separated input into a trimmed list with blank
// entries dropped.
func SplitComma(s string) StringList {
	parts := strings.Split(s, ",")
	out := make(StringList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Price is an integer PKR amount that also accepts numeric JSON strings,
// matching the coercion the admin forms apply before persisting.
type Price int

func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), "\"")
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid price %q", s)
	}
	*p = Price(f)
	return nil
}

// AboutValue is one entry of the about page's company-values grid.
type AboutValue struct {
	IconName    string `json:"iconName"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// AboutStat is one entry of the about page's statistics band.
type AboutStat struct {
	IconName string `json:"iconName"`
	Number   string `json:"number"`
	Label    string `json:"label"`
}

// CoreCapability is one entry of the about page's capability checklist.
type CoreCapability struct {
	IconName string `json:"iconName"`
	Text     string `json:"text"`
}

// AboutContent is the singleton about-page document.
type AboutContent struct {
	MainTitle            string           `json:"mainTitle"`
	Subtitle             string           `json:"subtitle"`
	Description1         string           `json:"description1"`
	Description2         string           `json:"description2"`
	Quote                string           `json:"quote"`
	MainImageURL         string           `json:"mainImageUrl"`
	StatsSectionImageURL string           `json:"statsSectionImageUrl"`
	Values               []AboutValue     `json:"values"`
	Stats                []AboutStat      `json:"stats"`
	CoreCapabilities     []CoreCapability `json:"coreCapabilities"`
	UpdatedAt            time.Time        `json:"updatedAt,omitzero"`
}

type Service struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IconName    string     `json:"iconName"`
	Features    StringList `json:"features"`
	CreatedAt   time.Time  `json:"createdAt,omitzero"`
	UpdatedAt   time.Time  `json:"updatedAt,omitzero"`
}

type Project struct {
	Title           string     `json:"title"`
	Category        string     `json:"category"`
	ImageURL        string     `json:"imageUrl"`
	Description     string     `json:"description"`
	FullDescription string     `json:"fullDescription"`
	Technologies    StringList `json:"technologies"`
	Client          string     `json:"client"`
	Challenge       string     `json:"challenge"`
	Solution        string     `json:"solution"`
	Results         string     `json:"results"`
	CreatedAt       time.Time  `json:"createdAt,omitzero"`
	UpdatedAt       time.Time  `json:"updatedAt,omitzero"`
}

// AssociatedService links a pricing plan to one of the service offerings it
// bundles, icon plus label.
type AssociatedService struct {
	IconName string `json:"iconName"`
	Label    string `json:"label"`
}

type PricingPlan struct {
	Name               string              `json:"name"`
	Description        string              `json:"description"`
	MonthlyPrice       Price               `json:"monthlyPrice"`
	AnnualPrice        Price               `json:"annualPrice"`
	Popular            bool                `json:"popular"`
	IconName           string              `json:"iconName"`
	Color              string              `json:"color"`
	Features           StringList          `json:"features"`
	AssociatedServices []AssociatedService `json:"associatedServices"`
	CreatedAt          time.Time           `json:"createdAt,omitzero"`
	UpdatedAt          time.Time           `json:"updatedAt,omitzero"`
}

type TeamMember struct {
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	Bio       string     `json:"bio"`
	Expertise StringList `json:"expertise"`
	IconName  string     `json:"iconName"`
	Color     string     `json:"color"`
	ImageURL  string     `json:"imageUrl"`
	Linkedin  string     `json:"linkedin,omitempty"`
	Twitter   string     `json:"twitter,omitempty"`
	Github    string     `json:"github,omitempty"`
	CreatedAt time.Time  `json:"createdAt,omitzero"`
	UpdatedAt time.Time  `json:"updatedAt,omitzero"`
}

type GalleryImage struct {
	Title     string    `json:"title"`
	AltText   string    `json:"altText"`
	Category  string    `json:"category"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// AdminUser is a panel login. Only the bcrypt hash is ever stored.
type AdminUser struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt,omitzero"`
}
