// Package home renders the landing page body.
package home

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

type Feature struct {
	Title       string
	Image       string
	Description string
}

var Features = []Feature{
	{
		Title:       "The power of Dart",
		Image:       "/static/img/dart_logo.svg",
		Description: "Nyxx is a Dart library that provides a way to easily interact with the Discord API.",
	},
	{
		Title:       "You can use it in your project",
		Image:       "/static/img/Nyxx_Logo.svg",
		Description: "Nyxx is open source and can be used in your project.",
	},
	{
		Title:       "It's easy to use",
		Image:       "/static/img/Nyxx_Logo.svg",
		Description: "Nyxx is easy to use and you can use it in your project.",
	},
}

type HeroProps struct {
	Title   string
	Tagline string
	// DocsURL is the "get started" target.
	DocsURL string
}

func write(w io.Writer, parts ...string) error {
	for _, s := range parts {
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	}
	return nil
}

// Page is the hero banner, the feature row and an optional preview below.
func Page(hero HeroProps, features []Feature, preview templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w,
			`<header class="hero hero--primary"><div class="container"><h1 class="hero__title">`,
			templ.EscapeString(hero.Title),
			`</h1><p class="hero__subtitle">`,
			templ.EscapeString(hero.Tagline),
			`</p>`,
		); err != nil {
			return err
		}
		if hero.DocsURL != "" {
			if err := write(w, `<a class="button button--secondary button--lg" href="`,
				templ.EscapeString(string(templ.URL(hero.DocsURL))), `">Get started</a>`); err != nil {
				return err
			}
		}
		if err := write(w, `</div></header><section class="features"><div class="container"><div class="row">`); err != nil {
			return err
		}
		for _, f := range features {
			if err := write(w,
				`<div class="col col--4"><div class="text--center"><img class="feature-svg" role="img" alt="" src="`,
				templ.EscapeString(string(templ.URL(f.Image))),
				`"></div><div class="text--center padding-horiz--md"><h3>`,
				templ.EscapeString(f.Title),
				`</h3><p>`,
				templ.EscapeString(f.Description),
				`</p></div></div>`,
			); err != nil {
				return err
			}
		}
		if err := write(w, `</div></div></section>`); err != nil {
			return err
		}
		if preview != nil {
			if err := write(w, `<section class="preview"><div class="container">`); err != nil {
				return err
			}
			if err := preview.Render(ctx, w); err != nil {
				return err
			}
			if err := write(w, `</div></section>`); err != nil {
				return err
			}
		}
		return nil
	})
}
