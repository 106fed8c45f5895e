package models

import "strings"

// Link is a rendered contact entry of a public profile.
type Link struct {
	Kind string
	Href string
	Text string
}

// Links expands the contact handles of p into absolute links, in display
// order. Handles that already start with "http" are used as they are.
func (p *Profile) Links() []Link {
	var out []Link
	if p.Email != "" {
		out = append(out, Link{Kind: "email", Href: "mailto:" + p.Email, Text: p.Email})
	}
	if p.Twitter != "" {
		out = append(out, Link{Kind: "twitter", Href: expand(p.Twitter, "https://twitter.com/"+strings.Replace(p.Twitter, "@", "", 1)), Text: p.Twitter})
	}
	if p.LinkedIn != "" {
		out = append(out, Link{Kind: "linkedin", Href: expand(p.LinkedIn, "https://linkedin.com/in/"+p.LinkedIn), Text: "LinkedIn"})
	}
	if p.GitHub != "" {
		out = append(out, Link{Kind: "github", Href: expand(p.GitHub, "https://github.com/"+p.GitHub), Text: "GitHub"})
	}
	return out
}

func expand(handle, fallback string) string {
	if strings.HasPrefix(handle, "http") {
		return handle
	}
	return fallback
}

// Initial is the first letter of the name, used when there is no avatar.
func (p *Profile) Initial() string {
	for _, r := range p.Name {
		return strings.ToUpper(string(r))
	}
	return "?"
}
