package rendering

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/jonathan/portfolio-ranker/internal/content"
	"github.com/jonathan/portfolio-ranker/internal/roles"
	"github.com/jonathan/portfolio-ranker/internal/types"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

const defaultTemplate = "templates/feed.html.tmpl"

// Options controls how a feed is rendered.
type Options struct {
	// TemplatePath overrides the embedded feed template.
	TemplatePath string
	// Link turns a site-relative link into the link served to the visitor,
	// usually by prefixing the active role. Nil leaves links unchanged.
	Link func(link string) string
}

// TemplateData represents the data structure passed to the feed template
type TemplateData struct {
	Heading         string
	Role            string
	RolePath        string
	RoleWithArticle string
	Collection      string
	Threshold       int
	Entries         []EntryView
}

// EntryView represents one ranked entry prepared for display
type EntryView struct {
	ID      string
	Title   string
	Href    string
	Label   string
	Date    string
	Bucket  int
	Section string
	Tags    []string
}

// RenderFeed renders feed as an HTML fragment.
func RenderFeed(feed *types.RankedFeed, opts Options) (string, error) {
	if feed == nil {
		return "", &RenderError{Message: "feed is nil"}
	}

	tmpl, err := parseTemplate(opts.TemplatePath)
	if err != nil {
		return "", err
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, buildTemplateData(feed, opts)); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}

	return result.String(), nil
}

// parseTemplate reads and parses a feed template file, or the embedded one when path is empty
func parseTemplate(templatePath string) (*template.Template, error) {
	var source []byte
	var err error

	if templatePath == "" {
		source, err = templateFS.ReadFile(defaultTemplate)
	} else {
		source, err = os.ReadFile(templatePath)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}

	tmpl, err := template.New("feed").Funcs(template.FuncMap{
		"withArticle": roles.WithArticle,
		"rolePath":    roles.MakePath,
	}).Parse(string(source))
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}

	return tmpl, nil
}

// buildTemplateData constructs the template data structure from a ranked feed
func buildTemplateData(feed *types.RankedFeed, opts Options) *TemplateData {
	link := opts.Link
	if link == nil {
		link = func(l string) string { return "/" + strings.Trim(l, "/") }
	}

	data := &TemplateData{
		Heading:         fmt.Sprintf("%s for %s", collectionTitle(feed.Collection), roles.WithArticle(feed.Role)),
		Role:            feed.Role,
		RolePath:        roles.MakePath(feed.Role),
		RoleWithArticle: roles.WithArticle(feed.Role),
		Collection:      feed.Collection,
		Threshold:       feed.Threshold,
		Entries:         make([]EntryView, 0, len(feed.Entries)),
	}

	for _, entry := range feed.Entries {
		view := EntryView{
			ID:     entry.ID,
			Title:  entry.Title,
			Date:   entry.Date,
			Bucket: entry.Bucket,
			Label:  entry.Topic,
		}

		switch content.Collection(feed.Collection) {
		case content.CollectionProjects, content.CollectionThoughts:
			view.Href = link(feed.Collection + "/" + entry.ID)
			if category, ok := entry.Details["category"].(string); ok && category != "" {
				view.Label = category
			}
			view.Tags = stringList(entry.Details["tech"])
		case content.CollectionTech:
			if experience, ok := entry.Details["experience"].(string); ok {
				view.Label = experience
			}
			view.Tags = stringList(entry.Details["functionalities"])
		case content.CollectionKnowHow:
			view.Section, _ = entry.Details["section"].(string)
			view.Label, _ = entry.Details["skill"].(string)
		}

		data.Entries = append(data.Entries, view)
	}

	return data
}

func collectionTitle(collection string) string {
	return content.Capitalize(strings.ReplaceAll(collection, "-", " "))
}

func stringList(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
