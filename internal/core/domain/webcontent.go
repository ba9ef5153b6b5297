package domain

import (
	"errors"
	"time"
)

var ErrContentNotFound = errors.New("no web content found to update")
var ErrMissingContent = errors.New("missing content data")
var ErrUpdateInProgress = errors.New("another publish for this user is in progress")

// Landing is the hero section of a published page.
type Landing struct {
	FullName                 string   `json:"fullName" bson:"full_name"`
	Title                    string   `json:"title" bson:"title"`
	Headline                 string   `json:"headline" bson:"headline"`
	HashTags                 []string `json:"hashTags" bson:"hash_tags"`
	Region                   string   `json:"region" bson:"region"`
	OrganizationAffiliations []string `json:"organizationAffiliations" bson:"organization_affiliations"`
	CommunityAffiliations    []string `json:"communityAffiliations" bson:"community_affiliations"`
	SuperPowers              []string `json:"superPowers" bson:"super_powers"`
	Image                    string   `json:"image" bson:"image"`
	Pronoun                  string   `json:"pronoun" bson:"pronoun"`
}

// ValueSection holds the free-text experience/values blurbs.
type ValueSection struct {
	Experience string `json:"experience" bson:"experience"`
	Values     string `json:"values" bson:"values"`
}

// LiveDetail is one entry in the live section's detail list.
type LiveDetail struct {
	Title   string `json:"title" bson:"title"`
	Heading string `json:"heading" bson:"heading"`
	Body    string `json:"body" bson:"body"`
}

// Live groups the media references shown on the live section.
type Live struct {
	Image     string       `json:"image" bson:"image"`
	Video     string       `json:"video" bson:"video"`
	URL       string       `json:"url" bson:"url"`
	WalletURL string       `json:"walletUrl" bson:"wallet_url"`
	Details   []LiveDetail `json:"details" bson:"details"`
}

// TimelineEntry is a single career/history row.
type TimelineEntry struct {
	Title string `json:"title" bson:"title"`
	From  string `json:"from" bson:"from"`
	To    string `json:"to" bson:"to"`
}

// AvailableSection is the availability call-to-action block.
type AvailableSection struct {
	Avatar       string   `json:"avatar" bson:"avatar"`
	AvailableFor []string `json:"availableFor" bson:"available_for"`
	CTAURL       string   `json:"ctaUrl" bson:"cta_url"`
	CTAText      string   `json:"ctaText" bson:"cta_text"`
}

// SocialChannel is a single external profile link.
type SocialChannel struct {
	Text string `json:"text" bson:"text"`
	URL  string `json:"url" bson:"url"`
	Icon string `json:"icon" bson:"icon"`
}

// ContentSections is the complete, normalized section set fed to the
// renderer and persisted on the content record. Every field is always
// present; slices are never nil.
type ContentSections struct {
	Landing        Landing          `json:"landing" bson:"landing"`
	Slider         []string         `json:"slider" bson:"slider"`
	Value          ValueSection     `json:"value" bson:"value"`
	Live           Live             `json:"live" bson:"live"`
	Organizations  []string         `json:"organizations" bson:"organizations"`
	Timeline       []TimelineEntry  `json:"timeline" bson:"timeline"`
	Available      AvailableSection `json:"available" bson:"available"`
	SocialChannels []SocialChannel  `json:"socialChannels" bson:"social_channels"`
}

// DefaultSections returns a fully-populated empty section set, so a render
// over it never dereferences a missing field.
func DefaultSections() ContentSections {
	return ContentSections{
		Landing: Landing{
			HashTags:                 []string{},
			OrganizationAffiliations: []string{},
			CommunityAffiliations:    []string{},
			SuperPowers:              []string{},
		},
		Slider:         []string{},
		Live:           Live{Details: []LiveDetail{}},
		Organizations:  []string{},
		Timeline:       []TimelineEntry{},
		Available:      AvailableSection{AvailableFor: []string{}},
		SocialChannels: []SocialChannel{},
	}
}

// SectionPatch carries the caller-supplied sections of a publish or update
// request. A nil field means "not supplied"; supplied sections replace the
// baseline section wholesale.
type SectionPatch struct {
	Landing        *Landing          `json:"landing"`
	Slider         *[]string         `json:"slider"`
	Value          *ValueSection     `json:"value"`
	Live           *Live             `json:"live"`
	Organizations  *[]string         `json:"organizations"`
	Timeline       *[]TimelineEntry  `json:"timeline"`
	Available      *AvailableSection `json:"available"`
	SocialChannels *[]SocialChannel  `json:"socialChannels"`
}

// IsEmpty reports whether the patch supplies none of the recognized sections.
func (p SectionPatch) IsEmpty() bool {
	return p.Landing == nil && p.Slider == nil && p.Value == nil &&
		p.Live == nil && p.Organizations == nil && p.Timeline == nil &&
		p.Available == nil && p.SocialChannels == nil
}

// ApplyTo merges the patch over base and returns the normalized result.
// Nil slices inside supplied sections are replaced with empty ones so the
// renderer never sees a nil list.
func (p SectionPatch) ApplyTo(base ContentSections) ContentSections {
	out := base
	if p.Landing != nil {
		out.Landing = *p.Landing
	}
	if p.Slider != nil {
		out.Slider = *p.Slider
	}
	if p.Value != nil {
		out.Value = *p.Value
	}
	if p.Live != nil {
		out.Live = *p.Live
	}
	if p.Organizations != nil {
		out.Organizations = *p.Organizations
	}
	if p.Timeline != nil {
		out.Timeline = *p.Timeline
	}
	if p.Available != nil {
		out.Available = *p.Available
	}
	if p.SocialChannels != nil {
		out.SocialChannels = *p.SocialChannels
	}
	out.normalize()
	return out
}

func (c *ContentSections) normalize() {
	if c.Landing.HashTags == nil {
		c.Landing.HashTags = []string{}
	}
	if c.Landing.OrganizationAffiliations == nil {
		c.Landing.OrganizationAffiliations = []string{}
	}
	if c.Landing.CommunityAffiliations == nil {
		c.Landing.CommunityAffiliations = []string{}
	}
	if c.Landing.SuperPowers == nil {
		c.Landing.SuperPowers = []string{}
	}
	if c.Slider == nil {
		c.Slider = []string{}
	}
	if c.Live.Details == nil {
		c.Live.Details = []LiveDetail{}
	}
	if c.Organizations == nil {
		c.Organizations = []string{}
	}
	if c.Timeline == nil {
		c.Timeline = []TimelineEntry{}
	}
	if c.Available.AvailableFor == nil {
		c.Available.AvailableFor = []string{}
	}
	if c.SocialChannels == nil {
		c.SocialChannels = []SocialChannel{}
	}
}

// WebContent is the content record: one per user, pointing at the CID of the
// most recently uploaded rendered artifact. IsNewWebpage is true only for
// records that have never completed a full publish.
type WebContent struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user"`
	ContentHash  string          `json:"contentHash"`
	Sections     ContentSections `json:"sections"`
	IsNewWebpage bool            `json:"isNewWebpage"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
