package selectors

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Overrides is the on-disk shape of a registry override file. Every field is
// optional; a present list replaces the built-in list for that field
// wholesale, so a patched file stays authoritative about ordering.
type Overrides struct {
	Version string `yaml:"version,omitempty"`

	PostContainers string `yaml:"post_containers,omitempty"`
	CommentaryDiv  string `yaml:"commentary_div,omitempty"`
	ContentSpan    string `yaml:"content_span,omitempty"`

	AuthorName        []Descriptor `yaml:"author_name,omitempty"`
	AuthorDescription []Descriptor `yaml:"author_description,omitempty"`
	AuthorProfileLink string       `yaml:"author_profile_link,omitempty"`

	Reactions []Descriptor `yaml:"reactions,omitempty"`
	Comments  []Descriptor `yaml:"comments,omitempty"`

	TimeAgo          []Descriptor `yaml:"time_ago,omitempty"`
	RepostIndicators []Descriptor `yaml:"repost_indicators,omitempty"`
	MediaContainers  []Descriptor `yaml:"media_containers,omitempty"`
	ShowMoreButtons  []Descriptor `yaml:"show_more_buttons,omitempty"`

	LoadingIndicators string `yaml:"loading_indicators,omitempty"`
}

// LoadOverrides reads an override file and applies it on top of the default
// registry. A missing path returns the defaults untouched (not an error); a
// file that exists but cannot be parsed is an error.
func LoadOverrides(path string) (*Registry, error) {
	reg := Default()
	if path == "" {
		return reg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return reg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read selector overrides: %w", err)
	}

	var ov Overrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("failed to parse selector overrides: %w", err)
	}

	ov.apply(reg)
	return reg, nil
}

func (ov *Overrides) apply(reg *Registry) {
	if ov.Version != "" {
		reg.Version = ov.Version
	}
	if ov.PostContainers != "" {
		reg.PostContainers = ov.PostContainers
	}
	if ov.CommentaryDiv != "" {
		reg.CommentaryDiv = ov.CommentaryDiv
	}
	if ov.ContentSpan != "" {
		reg.ContentSpan = ov.ContentSpan
	}
	if len(ov.AuthorName) > 0 {
		reg.AuthorName = ov.AuthorName
	}
	if len(ov.AuthorDescription) > 0 {
		reg.AuthorDescription = ov.AuthorDescription
	}
	if ov.AuthorProfileLink != "" {
		reg.AuthorProfileLink = ov.AuthorProfileLink
	}
	if len(ov.Reactions) > 0 {
		reg.Reactions = ov.Reactions
	}
	if len(ov.Comments) > 0 {
		reg.Comments = ov.Comments
	}
	if len(ov.TimeAgo) > 0 {
		reg.TimeAgo = ov.TimeAgo
	}
	if len(ov.RepostIndicators) > 0 {
		reg.RepostIndicators = ov.RepostIndicators
	}
	if len(ov.MediaContainers) > 0 {
		reg.MediaContainers = ov.MediaContainers
	}
	if len(ov.ShowMoreButtons) > 0 {
		reg.ShowMoreButtons = ov.ShowMoreButtons
	}
	if ov.LoadingIndicators != "" {
		reg.LoadingIndicators = ov.LoadingIndicators
	}
}
