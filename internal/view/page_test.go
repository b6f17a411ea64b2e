package view

import (
	"reflect"
	"testing"

	"github.com/Tovoson/multiStats/pkg/navigation"
)

func TestLinksPreserveMenuOrder(t *testing.T) {
	page := HomePage()

	links := page.Links()
	if len(links) != len(page.Menu) {
		t.Fatalf("expected %d links, got %d", len(page.Menu), len(links))
	}
	for i, item := range page.Menu {
		if links[i].Text != item.Label || links[i].Href != item.Path {
			t.Fatalf("link %d: expected (%s, %s), got (%s, %s)", i, item.Label, item.Path, links[i].Text, links[i].Href)
		}
	}
}

func TestLinksActiveFlag(t *testing.T) {
	page := Page{
		Path: "/about/",
		Menu: []navigation.Item{{Label: "Home", Path: "/"}, {Label: "About", Path: "/about"}},
	}

	expected := []Link{
		{Text: "Home", Href: "/"},
		{Text: "About", Href: "/about", Active: true},
	}
	if got := page.Links(); !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected %+v, got %+v", expected, got)
	}

	page.Path = ""
	for _, link := range page.Links() {
		if link.Active {
			t.Fatalf("expected no active link without a page path")
		}
	}
}

func TestHomePageIsStable(t *testing.T) {
	if !reflect.DeepEqual(HomePage(), HomePage()) {
		t.Fatalf("expected HomePage to be deterministic")
	}

	page := HomePage()
	page.Menu[0].Label = "Changed"
	if HomePage().Menu[0].Label != "Home" {
		t.Fatalf("expected HomePage menu to be independent per call")
	}
}
