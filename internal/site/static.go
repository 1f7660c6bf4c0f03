package site

import (
	"time"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/portfolio/internal/components"
	"git.home.luguber.info/inful/portfolio/internal/content"
)

// Home lists every article, newest first.
type Home struct {
	staticPage
	articles []*content.Article
}

// NewHome sorts articles with SortNewestFirst; the input slice is not modified.
func NewHome(env Env, articles []*content.Article) *Home {
	return &Home{
		staticPage: staticPage{env: env, path: "index", title: "Home"},
		articles:   SortNewestFirst(articles),
	}
}

// Articles returns the cards in display order.
func (h *Home) Articles() []*content.Article { return h.articles }

func (h *Home) Render() (*html.Node, error) {
	return h.env.layout(components.LayoutProps{
		Title: "Software Engineer, Skater & Musician",
		Description: "I'm Mac, a software engineer based out of the United Kingdom. " +
			"I enjoy building forward thinking and efficient solutions. Read some of my articles below.",
		Content: []*html.Node{components.CardCollection(h.articles)},
	}), nil
}

// Missing is the 404 page. Its metadata keeps the site default title.
type Missing struct{ staticPage }

func NewMissing(env Env) *Missing {
	return &Missing{staticPage{env: env, path: "404"}}
}

func (m *Missing) Render() (*html.Node, error) {
	back := components.StyledLink(components.Link("/", false, components.Text("Head back home?")), "")
	components.AddClass(back, "py-4")
	return m.env.layout(components.LayoutProps{
		Title:       "404 - Page Not Found",
		Description: "Whoops, unfortunately that page either no longer or never existed in the first place.",
		Content:     []*html.Node{back},
	}), nil
}

// Note is a link to an external set of notes.
type Note struct {
	Name    string
	Summary string
	Topics  []string
	Link    string
}

var _ components.CardItem = Note{}

func (n Note) Title() string                    { return n.Name }
func (n Note) Description() string              { return n.Summary }
func (n Note) Tags() []string                   { return n.Topics }
func (n Note) URL() string                      { return n.Link }
func (n Note) NewTab() bool                     { return false }
func (n Note) Action() components.Action        { return components.ActionReadMore }
func (n Note) PublishedDate() (time.Time, bool) { return time.Time{}, false }

// Project is a link to a source repository.
type Project struct {
	Name    string
	Summary string
	Topics  []string
	Repo    string
}

var _ components.CardItem = Project{}

func (p Project) Title() string                    { return p.Name }
func (p Project) Description() string              { return p.Summary }
func (p Project) Tags() []string                   { return p.Topics }
func (p Project) URL() string                      { return p.Repo }
func (p Project) NewTab() bool                     { return true }
func (p Project) Action() components.Action        { return components.ActionSourceCode }
func (p Project) PublishedDate() (time.Time, bool) { return time.Time{}, false }

// Notes lists note collections.
type Notes struct {
	staticPage
	notes []Note
}

func NewNotes(env Env) *Notes {
	return &Notes{
		staticPage: staticPage{env: env, path: "notes", title: "Notes"},
		notes: []Note{{
			Name: "Computer Science",
			Summary: "My notes from following along with Teach Yourself Computer Science, " +
				"a course recommended for furthering knowledge in comp-sci.",
			Topics: []string{"comp-sci"},
			Link:   "https://notes.maclong.uk/comp-sci",
		}},
	}
}

func (n *Notes) Render() (*html.Node, error) {
	return n.env.layout(components.LayoutProps{
		Path:        n.path,
		HasPath:     true,
		Title:       "Notes",
		Description: "I like to take notes of courses and things I find interesting. Here is a collection of them for you to read.",
		Content:     []*html.Node{components.CardCollection(n.notes)},
	}), nil
}

// Projects lists recent projects.
type Projects struct {
	staticPage
	projects []Project
}

func NewProjects(env Env) *Projects {
	return &Projects{
		staticPage: staticPage{env: env, path: "projects", title: "Projects"},
		projects: []Project{
			{
				Name:    "WebUI",
				Summary: "WebUI is a library for HTML, CSS, and JavaScript generation built entirely in Swift.",
				Topics:  []string{"Swift"},
				Repo:    "https://github.com/maclong9/web-ui",
			},
			{
				Name:    "List",
				Summary: "Quickly list files found in your operating system from the command line.",
				Topics:  []string{"Swift"},
				Repo:    "https://github.com/maclong9/list",
			},
		},
	}
}

func (p *Projects) Render() (*html.Node, error) {
	return p.env.layout(components.LayoutProps{
		Path:    p.path,
		HasPath: true,
		Title:   "Recent Projects",
		Description: "Below are a list of projects I have worked on recently as well as links to their source code, " +
			"they usually range from development tools to full stack applications.",
		Content: []*html.Node{components.CardCollection(p.projects)},
	}), nil
}
