package main

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/moizhassan7/crisp-cms/internal/content"
	"github.com/moizhassan7/crisp-cms/internal/store"
)

// seedContent populates empty collections with starter documents so a fresh
// deployment renders a complete landing page. Non-empty collections are
// left untouched, which makes the command safe to re-run.
func seedContent(ctx context.Context, st store.Store, logger *zap.Logger) error {
	now := time.Now().UTC()

	if empty, err := collectionEmpty(ctx, st, content.CollectionServices); err != nil {
		return err
	} else if empty {
		starters := []content.Service{
			{
				Title:       "Managed IT Support",
				Description: "Proactive monitoring and helpdesk support for your whole office.",
				IconName:    "Headphones",
				Features:    content.StringList{"24/7 monitoring", "Remote helpdesk", "On-site visits"},
			},
			{
				Title:       "Network & Security",
				Description: "Design, rollout and hardening of office networks.",
				IconName:    "Shield",
				Features:    content.StringList{"Firewall setup", "VPN access", "CCTV integration"},
			},
			{
				Title:       "Cloud Services",
				Description: "Migration and management of cloud workloads.",
				IconName:    "Cloud",
				Features:    content.StringList{"Backup & recovery", "Microsoft 365", "Cost review"},
			},
		}
		for _, svc := range starters {
			svc.CreatedAt, svc.UpdatedAt = now, now
			doc, err := content.Encode(svc)
			if err != nil {
				return err
			}
			if _, err := st.Add(ctx, content.CollectionServices, doc); err != nil {
				return err
			}
		}
		logger.Info("Seeded services", zap.Int("count", len(starters)))
	}

	if empty, err := collectionEmpty(ctx, st, content.CollectionPricing); err != nil {
		return err
	} else if empty {
		starters := []content.PricingPlan{
			{
				Name:         "Starter",
				Description:  "For small offices getting their IT in order.",
				MonthlyPrice: 15000,
				AnnualPrice:  150000,
				IconName:     "Wifi",
				Color:        "from-blue-500 to-indigo-500",
				Features:     content.StringList{"Up to 10 workstations", "Business-hours support"},
				AssociatedServices: []content.AssociatedService{
					{IconName: "Headphones", Label: "Helpdesk"},
				},
			},
			{
				Name:         "Business",
				Description:  "Full coverage for growing companies.",
				MonthlyPrice: 40000,
				AnnualPrice:  400000,
				Popular:      true,
				IconName:     "Crown",
				Color:        "from-blue-500 to-indigo-500",
				Features:     content.StringList{"Unlimited workstations", "24/7 support", "Quarterly review"},
				AssociatedServices: []content.AssociatedService{
					{IconName: "Headphones", Label: "Helpdesk"},
					{IconName: "Shield", Label: "Security"},
				},
			},
		}
		for _, plan := range starters {
			plan.CreatedAt, plan.UpdatedAt = now, now
			doc, err := content.Encode(plan)
			if err != nil {
				return err
			}
			if _, err := st.Add(ctx, content.CollectionPricing, doc); err != nil {
				return err
			}
		}
		logger.Info("Seeded pricing plans", zap.Int("count", len(starters)))
	}

	if _, err := st.Get(ctx, content.CollectionAbout, content.AboutDocumentID); errors.Is(err, store.ErrNotFound) {
		about := content.AboutContent{
			MainTitle:    "About Crisp IT Solutions",
			Subtitle:     "Your IT partner in Pakistan",
			Description1: "We keep businesses running with dependable IT services and support.",
			Quote:        "Technology should work for you, not against you.",
			Values: []content.AboutValue{
				{IconName: "Target", Title: "Reliability", Description: "We answer when you call.", Color: "bg-gradient-to-br from-blue-500 to-indigo-600"},
				{IconName: "Users", Title: "Partnership", Description: "Your goals set our roadmap.", Color: "bg-gradient-to-br from-blue-500 to-indigo-600"},
			},
			Stats: []content.AboutStat{
				{IconName: "CheckCircle", Number: "150+", Label: "Clients served"},
				{IconName: "Activity", Number: "99.9%", Label: "Uptime"},
			},
			CoreCapabilities: []content.CoreCapability{
				{IconName: "Server", Text: "Server & network management"},
				{IconName: "Cloud", Text: "Cloud migration"},
			},
			UpdatedAt: now,
		}
		doc, err := content.Encode(about)
		if err != nil {
			return err
		}
		if err := st.Put(ctx, content.CollectionAbout, content.AboutDocumentID, doc); err != nil {
			return err
		}
		logger.Info("Seeded about content")
	} else if err != nil {
		return err
	}

	return nil
}

func collectionEmpty(ctx context.Context, st store.Store, collection string) (bool, error) {
	records, err := st.List(ctx, collection, store.ListOptions{})
	if err != nil {
		return false, err
	}
	return len(records) == 0, nil
}
