// Package snapshot reads and writes provider snapshots: the branches, commit
// listings and tags of a repository captured as a YAML (or JSON) document.
//
// A snapshot is the fully materialized input of one render pass. Providers
// that talk to a hosting service or a local repository export into this
// format so a history can be rendered again without refetching it.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/yourusername/gitlanes/internal/history"
	"gopkg.in/yaml.v3"
)

// ErrNoBranches is returned when a snapshot holds no branch listings.
var ErrNoBranches = errors.New("snapshot has no branches")

// TimeLayout is the timestamp format written to snapshots.
const TimeLayout = time.RFC3339

type Snapshot struct {
	Branches []BranchListing `yaml:"branches"`
	Tags     []TagRecord     `yaml:"tags,omitempty"`
}

type BranchListing struct {
	Name      string         `yaml:"name"`
	Head      string         `yaml:"head"`
	Default   bool           `yaml:"default,omitempty"`
	Protected bool           `yaml:"protected,omitempty"`
	Commits   []CommitRecord `yaml:"commits"`
}

type CommitRecord struct {
	ID             string   `yaml:"id"`
	Parents        []string `yaml:"parents,omitempty"`
	Title          string   `yaml:"title"`
	Message        string   `yaml:"message,omitempty"`
	AuthorName     string   `yaml:"author_name,omitempty"`
	AuthorEmail    string   `yaml:"author_email,omitempty"`
	AuthoredDate   string   `yaml:"authored_date,omitempty"`
	CommitterName  string   `yaml:"committer_name,omitempty"`
	CommitterEmail string   `yaml:"committer_email,omitempty"`
	CommittedDate  string   `yaml:"committed_date"`
}

type TagRecord struct {
	Name    string `yaml:"name"`
	Target  string `yaml:"target"`
	Message string `yaml:"message,omitempty"`
}

// Load reads a snapshot file.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode parses a snapshot. JSON input is accepted as well.
func Decode(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoBranches
		}
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if len(s.Branches) == 0 {
		return nil, ErrNoBranches
	}
	return &s, nil
}

// Encode writes s as YAML.
func Encode(w io.Writer, s *Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return enc.Close()
}

// FromHistory captures provider results as a snapshot.
func FromHistory(listings []history.Listing, tags []history.Tag) *Snapshot {
	s := &Snapshot{Branches: make([]BranchListing, 0, len(listings))}
	for _, l := range listings {
		bl := BranchListing{
			Name:      l.Branch.Name,
			Head:      l.Branch.HeadID,
			Default:   l.Branch.Default,
			Protected: l.Branch.Protected,
			Commits:   make([]CommitRecord, 0, len(l.Commits)),
		}
		for _, c := range l.Commits {
			bl.Commits = append(bl.Commits, CommitRecord{
				ID:             c.ID,
				Parents:        c.ParentIDs,
				Title:          c.Title,
				Message:        c.Message,
				AuthorName:     c.AuthorName,
				AuthorEmail:    c.AuthorEmail,
				AuthoredDate:   formatTime(c.AuthoredAt),
				CommitterName:  c.CommitterName,
				CommitterEmail: c.CommitterEmail,
				CommittedDate:  formatTime(c.CommittedAt),
			})
		}
		s.Branches = append(s.Branches, bl)
	}
	for _, t := range tags {
		s.Tags = append(s.Tags, TagRecord{Name: t.Name, Target: t.CommitID, Message: t.Message})
	}
	return s
}

// Listings converts the snapshot into normalizer input. Unparseable
// timestamps become the zero time and are reported at debug level.
func (s *Snapshot) Listings(logger *log.Logger) ([]history.Listing, []history.Tag) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	listings := make([]history.Listing, 0, len(s.Branches))
	for _, b := range s.Branches {
		l := history.Listing{
			Branch: history.Branch{
				Name:      b.Name,
				HeadID:    b.Head,
				Default:   b.Default,
				Protected: b.Protected,
			},
			Commits: make([]history.Commit, 0, len(b.Commits)),
		}
		if l.Branch.HeadID == "" && len(b.Commits) > 0 {
			l.Branch.HeadID = b.Commits[0].ID
		}
		for _, c := range b.Commits {
			l.Commits = append(l.Commits, history.Commit{
				ID:             c.ID,
				ParentIDs:      c.Parents,
				Title:          title(c),
				Message:        c.Message,
				AuthorName:     c.AuthorName,
				AuthorEmail:    c.AuthorEmail,
				AuthoredAt:     parseTime(logger, c.ID, c.AuthoredDate),
				CommitterName:  c.CommitterName,
				CommitterEmail: c.CommitterEmail,
				CommittedAt:    parseTime(logger, c.ID, c.CommittedDate),
			})
		}
		listings = append(listings, l)
	}

	tags := make([]history.Tag, 0, len(s.Tags))
	for _, t := range s.Tags {
		tags = append(tags, history.Tag{Name: t.Name, CommitID: t.Target, Message: t.Message})
	}
	return listings, tags
}

func title(c CommitRecord) string {
	if c.Title != "" {
		return c.Title
	}
	return history.Subject(c.Message)
}

func parseTime(logger *log.Logger, id, value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(TimeLayout, value)
	if err != nil {
		logger.Debug("unparseable timestamp, ordering as oldest", "commit", id, "value", value)
		return time.Time{}
	}
	return t
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}
