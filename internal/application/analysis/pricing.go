package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bryanwahyu/venture-studio/internal/domain/ai"
	domain "github.com/bryanwahyu/venture-studio/internal/domain/analysis"
	"github.com/bryanwahyu/venture-studio/internal/infra/ai/prompt"
)

// PricingSpec compares registration service providers.
func PricingSpec() Spec[domain.PricingRequest, domain.PricingResult] {
	return Spec[domain.PricingRequest, domain.PricingResult]{
		Capability: domain.CapabilityPricing,
		Validate: func(req *domain.PricingRequest) error {
			req.EntityType = strings.TrimSpace(req.EntityType)
			req.State = strings.TrimSpace(req.State)
			if req.EntityType == "" || req.State == "" {
				return domain.InvalidInput("Entity type and state are required")
			}
			return nil
		},
		Prompt: func(req domain.PricingRequest) (ai.Request, error) {
			return prompt.Pricing(req), nil
		},
		Normalize: normalizePricing,
		Fallback:  fallbackPricing,
		Finish: func(r *domain.PricingResult) {
			r.Comparison = Compare(r.Providers)
		},
	}
}

func normalizePlan(f fields, def string) domain.ServicePlan {
	return domain.ServicePlan{
		Name:     f.str("name", def),
		Price:    f.str("price", NotSpecified),
		Features: f.strs("features"),
	}
}

func normalizePricing(f fields, _ domain.PricingRequest) domain.PricingResult {
	items := f.objs("providers")
	providers := make([]domain.ServiceProvider, 0, len(items))
	for i, p := range items {
		providers = append(providers, domain.ServiceProvider{
			ID:             p.id("provider", i),
			Name:           p.str("name", "Unknown Provider"),
			Rating:         p.num("rating", 0),
			Website:        p.str("website", ""),
			ProcessingTime: p.str("processingTime", NotSpecified),
			BasicPlan:      normalizePlan(p.obj("basicPlan"), "Basic"),
			PremiumPlan:    normalizePlan(p.obj("premiumPlan"), "Premium"),
		})
	}
	return domain.PricingResult{Providers: providers}
}

type providerSeed struct {
	name, website, processing string
	rating                    float64
	premiumExtra              int
}

var providerSeeds = []providerSeed{
	{"Vakilsearch", "https://vakilsearch.com", "10-14 days", 4.3, 5000},
	{"IndiaFilings", "https://indiafilings.com", "7-10 days", 4.2, 6000},
	{"LegalWiz.in", "https://legalwiz.in", "2-3 weeks", 4.5, 4000},
	{"ClearTax", "https://cleartax.in", "7-12 days", 4.4, 5500},
}

// basicPrices holds each provider's basic package price per entity type,
// aligned with providerSeeds.
var basicPrices = map[string][]int{
	"private_limited":     {6999, 7499, 6499, 7999},
	"llp":                 {5999, 5499, 4999, 6499},
	"opc":                 {6499, 6999, 5999, 7499},
	"partnership":         {2999, 2499, 2799, 3499},
	"sole_proprietorship": {1499, 1299, 1199, 1999},
}

// stateSurcharge approximates state stamp duty differences.
var stateSurcharge = map[string]int{
	"maharashtra": 1000,
	"karnataka":   800,
	"delhi":       500,
	"tamil nadu":  600,
	"kerala":      1200,
}

func fallbackPricing(req domain.PricingRequest) domain.PricingResult {
	entity := strings.ToLower(strings.ReplaceAll(req.EntityType, " ", "_"))
	prices, ok := basicPrices[entity]
	if !ok {
		prices = basicPrices["private_limited"]
	}
	extra := stateSurcharge[strings.ToLower(req.State)]

	providers := make([]domain.ServiceProvider, 0, len(providerSeeds))
	for i, s := range providerSeeds {
		basic := prices[i] + extra
		providers = append(providers, domain.ServiceProvider{
			ID:             seqID("provider", i),
			Name:           s.name,
			Rating:         s.rating,
			Website:        s.website,
			ProcessingTime: s.processing,
			BasicPlan: domain.ServicePlan{
				Name:     "Basic",
				Price:    rupees(basic),
				Features: []string{"Name approval", "Registration certificate", "PAN and TAN"},
			},
			PremiumPlan: domain.ServicePlan{
				Name:     "Premium",
				Price:    rupees(basic + s.premiumExtra),
				Features: []string{"Everything in Basic", "GST registration", "First-year compliance", "Dedicated expert"},
			},
		})
	}
	return domain.PricingResult{Providers: providers}
}

// Compare picks the cheapest basic plan, the highest rating and the
// shortest processing time. Ties go to the provider listed first;
// unparseable values never win.
func Compare(providers []domain.ServiceProvider) domain.PricingComparison {
	var c domain.PricingComparison
	bestPrice, bestRating, bestDays := -1.0, -1.0, -1.0
	for _, p := range providers {
		if price, ok := ParsePrice(p.BasicPlan.Price); ok && (bestPrice < 0 || price < bestPrice) {
			bestPrice, c.Cheapest = price, p.Name
		}
		if p.Rating > bestRating {
			bestRating, c.HighestRated = p.Rating, p.Name
		}
		if days, ok := parseDays(p.ProcessingTime); ok && (bestDays < 0 || days < bestDays) {
			bestDays, c.Fastest = days, p.Name
		}
	}
	return c
}

var (
	priceRe  = regexp.MustCompile(`[0-9][0-9,]*(\.[0-9]+)?`)
	numberRe = regexp.MustCompile(`[0-9]+(\.[0-9]+)?`)
)

// ParsePrice extracts the first number from a display price such as
// "₹6,999" or "INR 12,499.50".
func ParsePrice(s string) (float64, bool) {
	m := priceRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	return v, err == nil
}

// parseDays reads the lower bound of "7-10 days", "2-3 weeks" or "1 month".
func parseDays(s string) (float64, bool) {
	m := numberRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "month"):
		v *= 30
	case strings.Contains(lower, "week"):
		v *= 7
	case strings.Contains(lower, "hour"):
		v /= 24
	}
	return v, true
}

// rupees formats n with Indian digit grouping: 123456 -> ₹1,23,456.
func rupees(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return "₹" + s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return "₹" + strings.Join(groups, ",") + "," + tail
}
