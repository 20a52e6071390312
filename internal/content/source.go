package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/portfolio-ranker/internal/roles"
)

// Collection names a content collection.
type Collection string

// Collections served by the library.
const (
	CollectionProjects Collection = "projects"
	CollectionThoughts Collection = "thoughts"
	CollectionTech     Collection = "tech"
	CollectionKnowHow  Collection = "know-how"
	CollectionRoles    Collection = "roles"
)

// Collections lists the rankable collections in display order.
var Collections = []Collection{CollectionProjects, CollectionThoughts, CollectionTech, CollectionKnowHow}

// ParseCollection validates a collection name.
func ParseCollection(name string) (Collection, error) {
	for _, c := range Collections {
		if string(c) == name {
			return c, nil
		}
	}
	return "", &UnknownCollectionError{Collection: name}
}

// Snapshot is the raw content of every collection.
type Snapshot struct {
	Roles    []roles.Record `json:"roles"`
	Projects []Project      `json:"projects"`
	Thoughts []Thought      `json:"thoughts"`
	Tech     []Tech         `json:"tech"`
	KnowHow  []KnowHow      `json:"knowHow"`
}

// Source loads a content snapshot.
type Source interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// FileSource reads collections from a content directory.
//
// Each collection is either a "<name>.yaml" list or, for projects and thoughts,
// a "<name>/" directory of Markdown documents with YAML front matter. Files
// whose name starts with "_" are skipped. roles.yaml is required.
type FileSource struct {
	Dir string
}

// NewFileSource creates a FileSource rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

// Load reads every collection concurrently.
func (s *FileSource) Load(ctx context.Context) (*Snapshot, error) {
	snapshot := &Snapshot{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, err := os.ReadFile(filepath.Join(s.Dir, string(CollectionRoles)+".yaml"))
		if err != nil {
			return &LoadError{Collection: string(CollectionRoles), Message: "failed to read roles", Cause: err}
		}
		records, err := roles.ParseRecords(data)
		if err != nil {
			return &LoadError{Collection: string(CollectionRoles), Message: "failed to parse roles", Cause: err}
		}
		snapshot.Roles = records
		return nil
	})
	g.Go(func() error {
		return loadDocuments(ctx, s.Dir, CollectionProjects, &snapshot.Projects, func(p *Project, id string, created *Date) {
			p.ID = id
			if p.Created == nil {
				p.Created = created
			}
		})
	})
	g.Go(func() error {
		return loadDocuments(ctx, s.Dir, CollectionThoughts, &snapshot.Thoughts, func(t *Thought, id string, created *Date) {
			t.ID = id
			if t.Created == nil {
				t.Created = created
			}
		})
	})
	g.Go(func() error {
		return loadList(s.Dir, CollectionTech, &snapshot.Tech)
	})
	g.Go(func() error {
		return loadList(s.Dir, CollectionKnowHow, &snapshot.KnowHow)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// loadList decodes "<collection>.yaml" into out. A missing file leaves out empty.
func loadList[T any](dir string, collection Collection, out *[]T) error {
	data, err := os.ReadFile(filepath.Join(dir, string(collection)+".yaml"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &LoadError{Collection: string(collection), Message: "failed to read file", Cause: err}
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return &LoadError{Collection: string(collection), Message: "failed to unmarshal YAML", Cause: err}
	}
	return nil
}

// loadDocuments reads a collection from its list file, or from a directory of
// Markdown documents. assign sets the ID derived from the file path and the
// file's modification date.
func loadDocuments[T any](ctx context.Context, dir string, collection Collection, out *[]T, assign func(entry *T, id string, created *Date)) error {
	root := filepath.Join(dir, string(collection))
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return loadList(dir, collection, out)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), "_") {
			return nil
		}
		if ext := filepath.Ext(path); ext == ".md" || ext == ".mdx" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return &LoadError{Collection: string(collection), Message: "failed to walk directory", Cause: err}
	}
	sort.Strings(paths)

	entries := make([]T, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		var entry T
		modified, err := readFrontMatter(path, &entry)
		if err != nil {
			return &LoadError{Collection: string(collection), Message: fmt.Sprintf("failed to read %s", path), Cause: err}
		}

		rel, _ := filepath.Rel(root, path)
		id := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
		assign(&entry, id, modified)
		entries = append(entries, entry)
	}

	*out = entries
	return nil
}

var frontMatterDelimiter = []byte("---")

// readFrontMatter decodes the YAML block between the leading "---" lines of a
// Markdown document and returns the file's modification date.
func readFrontMatter(path string, out any) (*Date, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	data = bytes.TrimLeft(data, "\ufeff \t\r\n")
	if !bytes.HasPrefix(data, frontMatterDelimiter) {
		return nil, errors.New("missing front matter")
	}
	rest := data[len(frontMatterDelimiter):]
	end := bytes.Index(rest, append([]byte("\n"), frontMatterDelimiter...))
	if end < 0 {
		return nil, errors.New("unterminated front matter")
	}

	if err := yaml.Unmarshal(rest[:end], out); err != nil {
		return nil, err
	}
	return NewDate(info.ModTime().UTC()), nil
}
