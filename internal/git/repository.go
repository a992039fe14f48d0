package git

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/yourusername/gitlanes/internal/history"
)

type Repository struct {
	repo *git.Repository
	path string
}

// Options controls what History reads from the repository.
type Options struct {
	// DefaultBranch names the default branch. Empty means HEAD's branch.
	DefaultBranch string
	Protected     []string
	// IncludeRemotes adds remote-tracking branches as their own listings.
	IncludeRemotes bool
	// MaxCommits caps every branch listing. Zero means no limit.
	MaxCommits int
}

func OpenRepository(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}

	return &Repository{
		repo: repo,
		path: path,
	}, nil
}

// History reads one listing per branch plus every tag.
func (r *Repository) History(opts Options) ([]history.Listing, []history.Tag, error) {
	defaultBranch := opts.DefaultBranch
	if defaultBranch == "" {
		if head, err := r.repo.Head(); err == nil && head.Name().IsBranch() {
			defaultBranch = head.Name().Short()
		}
	}

	protected := make(map[string]bool, len(opts.Protected))
	for _, name := range opts.Protected {
		protected[name] = true
	}

	refs, err := r.branchRefs(opts.IncludeRemotes)
	if err != nil {
		return nil, nil, err
	}

	listings := make([]history.Listing, 0, len(refs))
	for _, ref := range refs {
		name := ref.Name().Short()
		commits, err := r.commits(ref.Hash(), opts.MaxCommits)
		if err != nil {
			return nil, nil, fmt.Errorf("list commits of %s: %w", name, err)
		}
		listings = append(listings, history.Listing{
			Branch: history.Branch{
				Name:      name,
				HeadID:    ref.Hash().String(),
				Default:   name == defaultBranch,
				Protected: protected[name],
			},
			Commits: commits,
		})
	}

	tags, err := r.tags()
	if err != nil {
		return nil, nil, err
	}
	return listings, tags, nil
}

func (r *Repository) branchRefs(includeRemotes bool) ([]*plumbing.Reference, error) {
	iter, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}

	var refs []*plumbing.Reference
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		name := ref.Name()
		if name.IsBranch() || (includeRemotes && name.IsRemote() && !strings.HasSuffix(name.String(), "/HEAD")) {
			refs = append(refs, ref)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}

	sort.Slice(refs, func(i, j int) bool {
		return refs[i].Name().String() < refs[j].Name().String()
	})
	return refs, nil
}

func (r *Repository) commits(from plumbing.Hash, limit int) ([]history.Commit, error) {
	iter, err := r.repo.Log(&git.LogOptions{
		From:  from,
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, err
	}

	var commits []history.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if limit > 0 && len(commits) >= limit {
			return storer.ErrStop
		}
		commits = append(commits, convert(c))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commits, nil
}

func (r *Repository) tags() ([]history.Tag, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	var tags []history.Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tag := history.Tag{Name: ref.Name().Short(), CommitID: ref.Hash().String()}

		obj, err := r.repo.TagObject(ref.Hash())
		switch {
		case errors.Is(err, plumbing.ErrObjectNotFound):
			// lightweight tag
		case err != nil:
			return fmt.Errorf("read tag %s: %w", tag.Name, err)
		default:
			tag.Message = strings.TrimSpace(obj.Message)
			if c, err := obj.Commit(); err == nil {
				tag.CommitID = c.Hash.String()
			} else {
				tag.CommitID = obj.Target.String()
			}
		}
		tags = append(tags, tag)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func convert(c *object.Commit) history.Commit {
	parents := make([]string, len(c.ParentHashes))
	for i, p := range c.ParentHashes {
		parents[i] = p.String()
	}

	return history.Commit{
		ID:             c.Hash.String(),
		ParentIDs:      parents,
		Title:          history.Subject(c.Message),
		Message:        c.Message,
		AuthorName:     c.Author.Name,
		AuthorEmail:    c.Author.Email,
		AuthoredAt:     c.Author.When,
		CommitterName:  c.Committer.Name,
		CommitterEmail: c.Committer.Email,
		CommittedAt:    c.Committer.When,
	}
}
