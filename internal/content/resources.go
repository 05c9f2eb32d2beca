package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/moizhassan7/crisp-cms/internal/store"
)

// ErrValidation marks submit rejections caused by the draft's own content.
// Handlers map it to a 400 with the wrapped message; no store write has
// happened when it is returned.
var ErrValidation = errors.New("validation failed")

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Resource describes one content type to the generic engine: where it
// lives, how a blank draft looks, how drafts are normalized and validated
// before persisting, and what a new nested-list item defaults to.
type Resource[T any] struct {
	Collection  string
	Singleton   bool
	SingletonID string
	ListOptions store.ListOptions

	NewDraft  func() T
	Normalize func(*T)
	Validate  func(*T) error

	// ListDefaults maps a nested-list field name to the record appended by
	// the draft engine's add-item operation.
	ListDefaults map[string]any
}

func requireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return validationf("%s is required", pairs[i])
		}
	}
	return nil
}

// trimNonEmpty trims every entry and drops blank ones, preserving order.
func trimNonEmpty(items StringList) StringList {
	out := make(StringList, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// AboutResource is the singleton about-page document. A missing document is
// not an error: the admin page seeds an empty draft and the first save
// creates it under the fixed key.
func AboutResource() Resource[AboutContent] {
	return Resource[AboutContent]{
		Collection:  CollectionAbout,
		Singleton:   true,
		SingletonID: AboutDocumentID,
		NewDraft: func() AboutContent {
			return AboutContent{
				Values:           []AboutValue{},
				Stats:            []AboutStat{},
				CoreCapabilities: []CoreCapability{},
			}
		},
		Validate: func(a *AboutContent) error {
			return requireFields("mainTitle", a.MainTitle)
		},
		ListDefaults: map[string]any{
			"values":           AboutValue{IconName: "Target", Color: "bg-gradient-to-br from-blue-500 to-indigo-600"},
			"stats":            AboutStat{IconName: "CheckCircle"},
			"coreCapabilities": CoreCapability{IconName: "Server"},
		},
	}
}

func ServiceResource() Resource[Service] {
	return Resource[Service]{
		Collection:  CollectionServices,
		ListOptions: store.ListOptions{OrderBy: "title"},
		NewDraft: func() Service {
			return Service{IconName: "Server", Features: StringList{""}}
		},
		Normalize: func(s *Service) {
			s.Features = trimNonEmpty(s.Features)
		},
		Validate: func(s *Service) error {
			return requireFields("title", s.Title, "description", s.Description)
		},
		ListDefaults: map[string]any{"features": ""},
	}
}

func ProjectResource() Resource[Project] {
	return Resource[Project]{
		Collection:  CollectionProjects,
		ListOptions: store.ListOptions{OrderBy: "createdAt", Descending: true},
		NewDraft: func() Project {
			return Project{Technologies: StringList{""}}
		},
		Normalize: func(p *Project) {
			p.Technologies = trimNonEmpty(p.Technologies)
		},
		Validate: func(p *Project) error {
			return requireFields("title", p.Title, "category", p.Category)
		},
		ListDefaults: map[string]any{"technologies": ""},
	}
}

func PricingPlanResource() Resource[PricingPlan] {
	return Resource[PricingPlan]{
		Collection:  CollectionPricing,
		ListOptions: store.ListOptions{OrderBy: "monthlyPrice"},
		NewDraft: func() PricingPlan {
			return PricingPlan{
				IconName: "Wifi",
				Color:    "from-blue-500 to-indigo-500",
				Features: StringList{""},
				AssociatedServices: []AssociatedService{
					{IconName: "Network"},
				},
			}
		},
		Normalize: func(p *PricingPlan) {
			p.Features = trimNonEmpty(p.Features)
			services := p.AssociatedServices[:0]
			for _, s := range p.AssociatedServices {
				if strings.TrimSpace(s.Label) != "" {
					services = append(services, s)
				}
			}
			p.AssociatedServices = services
		},
		Validate: func(p *PricingPlan) error {
			if err := requireFields("name", p.Name, "description", p.Description); err != nil {
				return err
			}
			if p.MonthlyPrice < 0 || p.AnnualPrice < 0 {
				return validationf("prices must not be negative")
			}
			return nil
		},
		ListDefaults: map[string]any{
			"features":           "",
			"associatedServices": AssociatedService{IconName: "Network"},
		},
	}
}

func TeamMemberResource() Resource[TeamMember] {
	return Resource[TeamMember]{
		Collection: CollectionTeam,
		NewDraft: func() TeamMember {
			return TeamMember{
				IconName:  "Server",
				Color:     "bg-gradient-to-br from-blue-500 to-indigo-600",
				Expertise: StringList{},
			}
		},
		Normalize: func(m *TeamMember) {
			m.Expertise = trimNonEmpty(m.Expertise)
		},
		Validate: func(m *TeamMember) error {
			return requireFields("name", m.Name, "role", m.Role)
		},
		ListDefaults: map[string]any{"expertise": ""},
	}
}

// GalleryImageResource requires an uploaded image before submit; everything
// else about a gallery entry is plain text.
func GalleryImageResource() Resource[GalleryImage] {
	return Resource[GalleryImage]{
		Collection: CollectionGallery,
		NewDraft:   func() GalleryImage { return GalleryImage{} },
		Validate: func(g *GalleryImage) error {
			if err := requireFields("title", g.Title, "altText", g.AltText); err != nil {
				return err
			}
			if strings.TrimSpace(g.ImageURL) == "" {
				return validationf("please upload an image before submitting")
			}
			return nil
		},
	}
}
