package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/dmitrijs2005/pagekeeper/internal/client/resolver"
	"github.com/dmitrijs2005/pagekeeper/internal/client/services"
	"github.com/dmitrijs2005/pagekeeper/internal/common"
	"github.com/dmitrijs2005/pagekeeper/internal/models"
)

// ShowProfile prints the signed-in user's card.
func (a *App) ShowProfile(ctx context.Context) error {
	p, err := a.profiles.LoadProfile(ctx, a.userID)
	if errors.Is(err, common.ErrorNotFound) {
		fmt.Fprintln(a.out, "No profile yet, use 'edit' to create one")
		return nil
	}
	if err != nil {
		return err
	}
	printProfile(a.out, p)
	return nil
}

// EditProfile walks through every profile field, prefilled with the
// current values, and saves the result.
func (a *App) EditProfile(ctx context.Context) error {
	p, err := a.profiles.LoadProfile(ctx, a.userID)
	if errors.Is(err, common.ErrorNotFound) {
		p, err = &models.Profile{}, nil
	}
	if err != nil {
		return err
	}

	fields := []struct {
		label string
		dst   *string
	}{
		{"Name", &p.Name},
		{"Title", &p.Title},
		{"Bio", &p.Bio},
		{"Email", &p.Email},
		{"Twitter", &p.Twitter},
		{"LinkedIn", &p.LinkedIn},
		{"GitHub", &p.GitHub},
		{"Avatar URL", &p.Avatar},
	}
	for _, f := range fields {
		v, err := getField(a.reader, f.label, *f.dst, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	saved, err := a.profiles.SaveProfile(ctx, a.userID, p)
	if errors.Is(err, services.ErrSavedLocally) {
		fmt.Fprintln(a.out, "Profile saved on this device, the server copy will be updated later")
		a.log.Warn(ctx, "profile saved locally only", "error", err)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile saved")
	printProfile(a.out, saved)
	return nil
}

// Publish makes sure the user has a public page and prints its link.
func (a *App) Publish(ctx context.Context) error {
	page, created, err := a.profiles.Publish(ctx, a.userID)
	if err != nil && !errors.Is(err, services.ErrSavedLocally) {
		return err
	}
	switch {
	case !created:
		fmt.Fprintln(a.out, "Your page is already published")
	case err != nil:
		fmt.Fprintln(a.out, "Page created on this device, it will reach the server when someone opens it")
	default:
		fmt.Fprintln(a.out, "Page published")
	}
	fmt.Fprintln(a.out, a.pageURL(page))
	return nil
}

// MyPage prints the link of the user's page.
func (a *App) MyPage(ctx context.Context) error {
	page, err := a.profiles.MyPage(ctx, a.userID)
	if errors.Is(err, common.ErrorNotFound) {
		fmt.Fprintln(a.out, "No page yet, use 'publish' to create one")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.pageURL(page))
	return nil
}

// UploadAvatar uploads file as the profile picture.
func (a *App) UploadAvatar(ctx context.Context, file string) error {
	u, err := a.profiles.UploadAvatar(ctx, a.userID, file)
	if errors.Is(err, services.ErrSavedLocally) {
		fmt.Fprintln(a.out, "Avatar uploaded, profile saved on this device only")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Avatar uploaded:", u)
	return nil
}

// View resolves path exactly like the viewer does and prints the outcome.
func (a *App) View(ctx context.Context, path string) error {
	fmt.Fprintln(a.out, "Loading...")
	res := a.resolver.Resolve(ctx, path)
	if res.State != resolver.Found {
		fmt.Fprintln(a.out, "Page Not Found")
		fmt.Fprintln(a.out, res.Notice)
		return nil
	}
	printProfile(a.out, res.Profile)
	fmt.Fprintf(a.out, "(served from %s)\n", res.Source)
	return nil
}

// Reset wipes every profile and page stored on this device.
func (a *App) Reset(ctx context.Context) error {
	if err := a.profiles.Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Local data cleared")
	return nil
}

func (a *App) pageURL(p *models.Page) string {
	return (&url.URL{Scheme: "http", Host: a.config.ViewerAddr, Path: "/" + p.Path}).String()
}

func printProfile(w io.Writer, p *models.Profile) {
	fmt.Fprintf(w, "%s\n", p.Name)
	if p.Title != "" {
		fmt.Fprintf(w, "  %s\n", p.Title)
	}
	if p.Bio != "" {
		fmt.Fprintf(w, "\nAbout Me\n  %s\n", p.Bio)
	}
	if links := p.Links(); len(links) > 0 {
		fmt.Fprintln(w, "\nConnect With Me")
		for _, l := range links {
			fmt.Fprintf(w, "  %-9s %s\n", l.Kind, l.Href)
		}
	}
	if p.Avatar != "" {
		fmt.Fprintf(w, "\nAvatar: %s\n", p.Avatar)
	}
}
