// Package palette is the Ctrl+K command menu: a fixed set of grouped items
// narrowed by a fuzzy query.
package palette

import (
	"github.com/sahilm/fuzzy"

	"pipeterm/internal/config"
)

type Group string

const (
	Navigation Group = "Navigation"
	Socials    Group = "Socials"
	Actions    Group = "Actions"
)

type ActionKind int

const (
	// GoToSection scrolls to Item.Section.
	GoToSection ActionKind = iota
	// OpenURL opens Item.URL externally.
	OpenURL
	OpenTerminal
	StartDeploy
)

type Item struct {
	Group   Group
	Title   string
	Kind    ActionKind
	Section int
	URL     string
}

// Sections names the page sections in scroll order.
var Sections = []string{"Hero", "History", "Build", "Test", "Deploy Game", "Status"}

// Items builds the menu for owner.
func Items(owner config.Owner) []Item {
	items := make([]Item, 0, len(Sections)+5)
	for i, s := range Sections {
		items = append(items, Item{Group: Navigation, Title: "Go to " + s, Kind: GoToSection, Section: i})
	}
	return append(items,
		Item{Group: Socials, Title: "GitHub", Kind: OpenURL, URL: "https://github.com/" + owner.GitHub},
		Item{Group: Socials, Title: "LinkedIn", Kind: OpenURL, URL: owner.LinkedIn},
		Item{Group: Socials, Title: "Email", Kind: OpenURL, URL: "mailto:" + owner.Email},
		Item{Group: Actions, Title: "Open Terminal", Kind: OpenTerminal},
		Item{Group: Actions, Title: "Start Deploy", Kind: StartDeploy},
	)
}

// items implements fuzzy.Source.
type items []Item

func (it items) String(i int) string { return it[i].Title }
func (it items) Len() int            { return len(it) }

// Filter returns the items matching query, best match first. An empty
// query returns all items in menu order.
func Filter(all []Item, query string) []Item {
	if query == "" {
		return append([]Item(nil), all...)
	}
	matches := fuzzy.FindFrom(query, items(all))
	out := make([]Item, 0, len(matches))
	for _, m := range matches {
		out = append(out, all[m.Index])
	}
	return out
}

// Menu is the open palette state.
type Menu struct {
	all      []Item
	query    string
	filtered []Item
	cursor   int
}

func NewMenu(all []Item) *Menu {
	m := &Menu{all: all}
	m.SetQuery("")
	return m
}

// SetQuery refilters and moves the cursor back to the top.
func (m *Menu) SetQuery(q string) {
	m.query = q
	m.filtered = Filter(m.all, q)
	m.cursor = 0
}

func (m *Menu) Query() string { return m.query }

func (m *Menu) Results() []Item { return m.filtered }

func (m *Menu) Cursor() int { return m.cursor }

func (m *Menu) Up() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *Menu) Down() {
	if m.cursor < len(m.filtered)-1 {
		m.cursor++
	}
}

// Selected is the highlighted item, if any result remains.
func (m *Menu) Selected() (Item, bool) {
	if len(m.filtered) == 0 {
		return Item{}, false
	}
	return m.filtered[m.cursor], true
}
