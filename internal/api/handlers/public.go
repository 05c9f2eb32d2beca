package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/moizhassan7/crisp-cms/internal/config"
	"github.com/moizhassan7/crisp-cms/internal/content"
	"github.com/moizhassan7/crisp-cms/internal/icons"
)

// PublicHandler is the read path behind the marketing site. Every section
// fetches on request and renders defensively: icon names are resolved
// through the registry fallback before they leave the server, and empty
// collections are an explicit empty list, not an error.
type PublicHandler struct {
	about    *content.Controller[content.AboutContent]
	services *content.Controller[content.Service]
	projects *content.Controller[content.Project]
	pricing  *content.Controller[content.PricingPlan]
	team     *content.Controller[content.TeamMember]
	gallery  *content.Controller[content.GalleryImage]
	contact  config.ContactConfig
	logger   *zap.Logger
}

func NewPublicHandler(
	about *content.Controller[content.AboutContent],
	services *content.Controller[content.Service],
	projects *content.Controller[content.Project],
	pricing *content.Controller[content.PricingPlan],
	team *content.Controller[content.TeamMember],
	gallery *content.Controller[content.GalleryImage],
	contact config.ContactConfig,
	logger *zap.Logger,
) *PublicHandler {
	return &PublicHandler{
		about:    about,
		services: services,
		projects: projects,
		pricing:  pricing,
		team:     team,
		gallery:  gallery,
		contact:  contact,
		logger:   logger.With(zap.String("handler", "public")),
	}
}

// planView decorates a pricing plan with the figures the pricing section
// displays next to the raw prices.
type planView struct {
	ID string `json:"id"`
	content.PricingPlan
	AnnualPerMonth int `json:"annualPerMonth"`
	Savings        int `json:"savings"`
}

func (h *PublicHandler) About(c *gin.Context) {
	about, _, err := h.about.GetSingleton(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resolveAbout(about))
}

func (h *PublicHandler) Services(c *gin.Context) {
	entries, err := h.services.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": h.serviceViews(entries)})
}

func (h *PublicHandler) Projects(c *gin.Context) {
	entries, err := h.projects.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries})
}

func (h *PublicHandler) Pricing(c *gin.Context) {
	entries, err := h.pricing.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": h.planViews(entries)})
}

func (h *PublicHandler) Team(c *gin.Context) {
	entries, err := h.team.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": h.memberViews(entries)})
}

func (h *PublicHandler) Gallery(c *gin.Context) {
	entries, err := h.gallery.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries})
}

// Home composes the landing page payload in the section order the page
// renders. Sections degrade independently: one failing section reports its
// error in place while the rest of the page still loads.
func (h *PublicHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()

	sections := []gin.H{
		{"name": "hero", "data": gin.H{
			"title":   h.contact.CompanyName,
			"tagline": "IT services, infrastructure and support",
		}},
		h.section(ctx, "services", func(ctx context.Context) (any, error) {
			entries, err := h.services.List(ctx)
			return h.serviceViews(entries), err
		}),
		h.section(ctx, "gallery", func(ctx context.Context) (any, error) {
			return h.gallery.List(ctx)
		}),
		h.section(ctx, "projects", func(ctx context.Context) (any, error) {
			return h.projects.List(ctx)
		}),
		h.section(ctx, "about", func(ctx context.Context) (any, error) {
			about, _, err := h.about.GetSingleton(ctx)
			return resolveAbout(about), err
		}),
		h.section(ctx, "team", func(ctx context.Context) (any, error) {
			entries, err := h.team.List(ctx)
			return h.memberViews(entries), err
		}),
		h.section(ctx, "pricing", func(ctx context.Context) (any, error) {
			entries, err := h.pricing.List(ctx)
			return h.planViews(entries), err
		}),
		{"name": "contact", "data": h.contact},
	}

	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

func (h *PublicHandler) section(ctx context.Context, name string, load func(context.Context) (any, error)) gin.H {
	data, err := load(ctx)
	if err != nil {
		h.logger.Warn("Section failed to load", zap.String("section", name), zap.Error(err))
		return gin.H{"name": name, "error": err.Error()}
	}
	return gin.H{"name": name, "data": data}
}

func (h *PublicHandler) serviceViews(entries []content.Entry[content.Service]) []content.Entry[content.Service] {
	for i := range entries {
		entries[i].Item.IconName = string(icons.Resolve(entries[i].Item.IconName))
	}
	return entries
}

func (h *PublicHandler) memberViews(entries []content.Entry[content.TeamMember]) []content.Entry[content.TeamMember] {
	for i := range entries {
		entries[i].Item.IconName = string(icons.Resolve(entries[i].Item.IconName))
	}
	return entries
}

func (h *PublicHandler) planViews(entries []content.Entry[content.PricingPlan]) []planView {
	views := make([]planView, 0, len(entries))
	for _, e := range entries {
		plan := e.Item
		plan.IconName = string(icons.Resolve(plan.IconName))
		for i := range plan.AssociatedServices {
			plan.AssociatedServices[i].IconName = string(icons.Resolve(plan.AssociatedServices[i].IconName))
		}
		views = append(views, planView{
			ID:             e.ID,
			PricingPlan:    plan,
			AnnualPerMonth: plan.PerMonth(content.BillingAnnual),
			Savings:        plan.Savings(),
		})
	}
	return views
}

func resolveAbout(about content.AboutContent) content.AboutContent {
	for i := range about.Values {
		about.Values[i].IconName = string(icons.Resolve(about.Values[i].IconName))
	}
	for i := range about.Stats {
		about.Stats[i].IconName = string(icons.Resolve(about.Stats[i].IconName))
	}
	for i := range about.CoreCapabilities {
		about.CoreCapabilities[i].IconName = string(icons.Resolve(about.CoreCapabilities[i].IconName))
	}
	return about
}
