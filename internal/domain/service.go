package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category service category
type Category string

const (
	CategoryCookingHelp     Category = "COOKING_HELP"
	CategoryTutoring        Category = "TUTORING"
	CategoryRidesAndErrands Category = "RIDES_AND_ERRANDS"
	CategoryCreativeHelp    Category = "CREATIVE_HELP"
	CategoryHomeRepairs     Category = "HOME_REPAIRS"
	CategoryCleaning        Category = "CLEANING"
	CategoryPetCare         Category = "PET_CARE"
	CategoryMovingHelp      Category = "MOVING_HELP"
	CategoryOther           Category = "OTHER"
)

var categories = map[Category]struct{}{
	CategoryCookingHelp:     {},
	CategoryTutoring:        {},
	CategoryRidesAndErrands: {},
	CategoryCreativeHelp:    {},
	CategoryHomeRepairs:     {},
	CategoryCleaning:        {},
	CategoryPetCare:         {},
	CategoryMovingHelp:      {},
	CategoryOther:           {},
}

// IsValid reports whether c is a known category
func (c Category) IsValid() bool {
	_, ok := categories[c]
	return ok
}

// ParseCategory parses a category, case-insensitive
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: unknown category %q", ErrValidation, s)
	}
	return c, nil
}

// PricingMode how a service is priced
type PricingMode string

const (
	PricingFixed  PricingMode = "FIXED"
	PricingCustom PricingMode = "CUSTOM"
)

// ParsePricingMode parses a pricing mode, case-insensitive
func ParsePricingMode(s string) (PricingMode, error) {
	switch PricingMode(strings.ToUpper(strings.TrimSpace(s))) {
	case PricingFixed:
		return PricingFixed, nil
	case PricingCustom:
		return PricingCustom, nil
	default:
		return "", fmt.Errorf("%w: unknown pricing mode %q", ErrValidation, s)
	}
}

// Service represents a provider's bookable offering
type Service struct {
	ID                uuid.UUID
	ProviderID        string
	Title             string
	Description       *string
	Category          Category
	DurationMinutes   int
	PricingMode       PricingMode
	BasePrice         *int64 // set only for FIXED
	StartingFromPrice *int64 // set only for CUSTOM
	Location          string
	Latitude          *float64
	Longitude         *float64
	ServiceRadiusKm   *float64
	ExperienceYears   *int
	IncludesTools     bool
	Tags              []string
	AvailableDays     []Weekday
	AvailableTime     Availability
	IsActive          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// QuotedPrice returns the price a booking made now would capture
func (s *Service) QuotedPrice() (int64, error) {
	switch s.PricingMode {
	case PricingFixed:
		if s.BasePrice == nil {
			return 0, fmt.Errorf("%w: fixed price service has no base price", ErrValidation)
		}
		return *s.BasePrice, nil
	case PricingCustom:
		if s.StartingFromPrice == nil {
			return 0, fmt.Errorf("%w: custom price service has no starting price", ErrValidation)
		}
		return *s.StartingFromPrice, nil
	default:
		return 0, fmt.Errorf("%w: unknown pricing mode %q", ErrValidation, s.PricingMode)
	}
}

// IsOwnedBy returns true if the service belongs to the provider
func (s *Service) IsOwnedBy(providerID string) bool {
	return providerID != "" && s.ProviderID == providerID
}

// Validate checks the service invariants before it is stored
func (s *Service) Validate() error {
	if strings.TrimSpace(s.ProviderID) == "" {
		return fmt.Errorf("%w: providerId is required", ErrValidation)
	}
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(s.Title) > MaxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrValidation, MaxTitleLength)
	}
	if !s.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, s.Category)
	}
	if strings.TrimSpace(s.Location) == "" {
		return fmt.Errorf("%w: location is required", ErrValidation)
	}
	if s.DurationMinutes < MinDurationMinutes || s.DurationMinutes > MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrValidation, MinDurationMinutes, MaxDurationMinutes)
	}

	if err := s.validatePricing(); err != nil {
		return err
	}

	if (s.Latitude == nil) != (s.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude must be set together", ErrValidation)
	}
	if s.ServiceRadiusKm != nil && *s.ServiceRadiusKm < 0 {
		return fmt.Errorf("%w: serviceRadius must not be negative", ErrValidation)
	}
	if s.ExperienceYears != nil && (*s.ExperienceYears < 0 || *s.ExperienceYears > MaxExperienceYears) {
		return fmt.Errorf("%w: experienceYears must be between 0 and %d", ErrValidation, MaxExperienceYears)
	}
	if err := validateTags(s.Tags); err != nil {
		return err
	}

	return s.validateAvailability()
}

func (s *Service) validatePricing() error {
	switch s.PricingMode {
	case PricingFixed:
		if s.BasePrice == nil {
			return fmt.Errorf("%w: basePrice is required for FIXED pricing", ErrValidation)
		}
		if s.StartingFromPrice != nil {
			return fmt.Errorf("%w: startingFromPrice must be empty for FIXED pricing", ErrValidation)
		}
		if *s.BasePrice < 0 {
			return fmt.Errorf("%w: basePrice must not be negative", ErrValidation)
		}
	case PricingCustom:
		if s.StartingFromPrice == nil {
			return fmt.Errorf("%w: startingFromPrice is required for CUSTOM pricing", ErrValidation)
		}
		if s.BasePrice != nil {
			return fmt.Errorf("%w: basePrice must be empty for CUSTOM pricing", ErrValidation)
		}
		if *s.StartingFromPrice < 0 {
			return fmt.Errorf("%w: startingFromPrice must not be negative", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown pricing mode %q", ErrValidation, s.PricingMode)
	}
	return nil
}

func (s *Service) validateAvailability() error {
	days := make(map[Weekday]struct{}, len(s.AvailableDays))
	for _, d := range s.AvailableDays {
		if !d.IsValid() {
			return fmt.Errorf("%w: unknown weekday %q", ErrValidation, d)
		}
		if _, dup := days[d]; dup {
			return fmt.Errorf("%w: weekday %s listed twice", ErrValidation, d)
		}
		days[d] = struct{}{}
	}

	for day, windows := range s.AvailableTime {
		if _, ok := days[day]; !ok {
			return fmt.Errorf("%w: time windows given for %s which is not an available day", ErrValidation, day)
		}
		if err := ValidateWindows(windows); err != nil {
			return fmt.Errorf("%s: %w", day, err)
		}
	}

	return nil
}

// ServiceFilter filter for the public catalog
type ServiceFilter struct {
	Category   *Category
	ProviderID *string
	OnlyActive bool
}

// NormalizeTags trims tags, drops empty ones and duplicates (case-insensitive),
// keeping the first spelling
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

func validateTags(tags []string) error {
	if len(tags) > MaxTags {
		return fmt.Errorf("%w: at most %d tags allowed", ErrValidation, MaxTags)
	}
	for _, t := range tags {
		if len(t) > MaxTagLength {
			return fmt.Errorf("%w: tag %q exceeds %d characters", ErrValidation, t, MaxTagLength)
		}
	}
	return nil
}
