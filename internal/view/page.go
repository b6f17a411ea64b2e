package view

import (
	"github.com/Tovoson/multiStats/pkg/navigation"
	"github.com/Tovoson/multiStats/pkg/utils"
)

const (
	HeroHeading = "Hello react"
	HeroText    = "Lorem ipsum dolor sit amet consectetur adipisicing elit. Fugit neque qui voluptatem. Maxime distinctio ullam enim inventore quidem numquam modi accusamus rerum autem. Illum, maxime nam unde modi odit nulla."
	Copyright   = "Copyright © 2024 - All right reserved by Your Company"
	Placeholder = "Type here"
	LogoText    = "Logo"
)

// Page is the fixed content of the landing view.
type Page struct {
	Title  string
	Path   string
	Logo   string
	Menu   []navigation.Item
	Hero   Hero
	Form   Form
	Footer Footer
}

type Hero struct {
	Heading string
	Text    string
}

// Form is a single text input that is never submitted anywhere.
type Form struct {
	Action      string
	Placeholder string
}

type Footer struct {
	Copyright string
}

// Link is a menu entry projected for rendering.
type Link struct {
	Text   string
	Href   string
	Active bool
}

func HomePage() Page {
	return Page{
		Title: "Home",
		Path:  "/",
		Logo:  LogoText,
		Menu:  navigation.DefaultMenu(),
		Hero: Hero{
			Heading: HeroHeading,
			Text:    HeroText,
		},
		Form: Form{
			Action:      "",
			Placeholder: Placeholder,
		},
		Footer: Footer{
			Copyright: Copyright,
		},
	}
}

// Links maps the menu to links in menu order. The entry whose target matches
// the page path is flagged active.
func (p Page) Links() []Link {
	links := make([]Link, 0, len(p.Menu))
	for _, item := range p.Menu {
		links = append(links, Link{
			Text:   item.Label,
			Href:   item.Path,
			Active: p.Path != "" && utils.NormalizePath(p.Path) == utils.NormalizePath(item.Path),
		})
	}
	return links
}
