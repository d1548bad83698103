package permalink

import (
	"context"

	"github.com/cmsplatform/backend/internal/domain/content"
	"github.com/cmsplatform/backend/internal/domain/identity"
	"github.com/cmsplatform/backend/internal/domain/permalink"
	"github.com/google/uuid"
)

// subjectBuilder resolves the category paths, author slugs and page
// ancestry that permalinks of posts depend on. One builder serves one
// tenant and caches what it loads.
type subjectBuilder struct {
	tenantID     uuid.UUID
	postRepo     content.PostRepository
	categoryRepo content.CategoryRepository
	userRepo     identity.UserRepository

	categories map[uuid.UUID]*content.Category
	pages      map[uuid.UUID]*content.Post
	authors    map[uuid.UUID]string
}

func newSubjectBuilder(tenantID uuid.UUID, postRepo content.PostRepository, categoryRepo content.CategoryRepository, userRepo identity.UserRepository) *subjectBuilder {
	return &subjectBuilder{
		tenantID:     tenantID,
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		categories:   make(map[uuid.UUID]*content.Category),
		pages:        make(map[uuid.UUID]*content.Post),
		authors:      make(map[uuid.UUID]string),
	}
}

// Subjects builds subjects for a batch of posts and pages
func (b *subjectBuilder) Subjects(ctx context.Context, posts []content.Post) ([]permalink.Subject, error) {
	if err := b.preload(ctx, posts); err != nil {
		return nil, err
	}
	subjects := make([]permalink.Subject, 0, len(posts))
	for i := range posts {
		subj, err := b.Subject(ctx, &posts[i])
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, subj)
	}
	return subjects, nil
}

// Subject builds the subject of a single post or page
func (b *subjectBuilder) Subject(ctx context.Context, p *content.Post) (permalink.Subject, error) {
	subj := permalink.Subject{
		ID:   p.ID,
		Type: permalink.SubjectPost,
		Slug: p.Slug.String(),
		Date: p.PermalinkDate(),
	}

	if p.IsPage() {
		subj.Type = permalink.SubjectPage
		parents, err := b.pageAncestry(ctx, p)
		if err != nil {
			return subj, err
		}
		subj.ParentSlugs = parents
		return subj, nil
	}

	if len(p.CategoryIDs) > 0 {
		path, err := b.categoryPath(ctx, p.CategoryIDs[0])
		if err != nil {
			return subj, err
		}
		subj.CategoryPath = path
	}
	if p.AuthorID != nil {
		slug, err := b.authorSlug(ctx, *p.AuthorID)
		if err != nil {
			return subj, err
		}
		subj.AuthorSlug = slug
	}
	return subj, nil
}

// CategorySubject builds the archive subject of a category
func (b *subjectBuilder) CategorySubject(ctx context.Context, c *content.Category) (permalink.Subject, error) {
	b.categories[c.ID] = c
	path, err := b.categoryPath(ctx, c.ID)
	if err != nil {
		return permalink.Subject{}, err
	}
	return permalink.Subject{
		ID:          c.ID,
		Type:        permalink.SubjectCategory,
		Slug:        c.Slug.String(),
		ParentSlugs: path[:len(path)-1],
	}, nil
}

// preload fetches the categories and authors of a batch in few queries
func (b *subjectBuilder) preload(ctx context.Context, posts []content.Post) error {
	var categoryIDs, authorIDs []uuid.UUID
	for i := range posts {
		p := &posts[i]
		if p.IsPage() {
			b.pages[p.ID] = p
			continue
		}
		if len(p.CategoryIDs) > 0 {
			categoryIDs = append(categoryIDs, p.CategoryIDs[0])
		}
		if p.AuthorID != nil {
			authorIDs = append(authorIDs, *p.AuthorID)
		}
	}
	if err := b.loadCategories(ctx, categoryIDs); err != nil {
		return err
	}
	if len(authorIDs) > 0 && b.userRepo != nil {
		users, err := b.userRepo.FindByIDs(ctx, b.tenantID, authorIDs)
		if err != nil {
			return err
		}
		for i := range users {
			b.authors[users[i].ID] = users[i].AuthorSlug()
		}
	}
	return nil
}

// loadCategories fetches categories and their ancestors level by level
func (b *subjectBuilder) loadCategories(ctx context.Context, ids []uuid.UUID) error {
	for depth := 0; depth <= content.MaxCategoryDepth && len(ids) > 0; depth++ {
		missing := make([]uuid.UUID, 0, len(ids))
		for _, id := range ids {
			if _, ok := b.categories[id]; !ok {
				missing = append(missing, id)
			}
		}
		if len(missing) == 0 {
			return nil
		}
		found, err := b.categoryRepo.FindByIDs(ctx, b.tenantID, missing)
		if err != nil {
			return err
		}
		var parents []uuid.UUID
		for i := range found {
			c := found[i]
			b.categories[c.ID] = &c
			if c.ParentID != nil {
				parents = append(parents, *c.ParentID)
			}
		}
		ids = parents
	}
	return nil
}

// categoryPath returns category slugs from the root down to id
func (b *subjectBuilder) categoryPath(ctx context.Context, id uuid.UUID) ([]string, error) {
	if err := b.loadCategories(ctx, []uuid.UUID{id}); err != nil {
		return nil, err
	}
	var path []string
	next := &id
	for depth := 0; next != nil && depth <= content.MaxCategoryDepth; depth++ {
		c, ok := b.categories[*next]
		if !ok {
			break
		}
		path = append([]string{c.Slug.String()}, path...)
		next = c.ParentID
	}
	if len(path) == 0 {
		return []string{permalink.DefaultCategorySlug}, nil
	}
	return path, nil
}

func (b *subjectBuilder) authorSlug(ctx context.Context, id uuid.UUID) (string, error) {
	if slug, ok := b.authors[id]; ok {
		return slug, nil
	}
	if b.userRepo == nil {
		return "", nil
	}
	user, err := b.userRepo.FindByIDForTenant(ctx, b.tenantID, id)
	if err != nil {
		b.authors[id] = ""
		return "", nil
	}
	b.authors[id] = user.AuthorSlug()
	return b.authors[id], nil
}

// pageAncestry returns parent page slugs from the root down to the direct parent
func (b *subjectBuilder) pageAncestry(ctx context.Context, p *content.Post) ([]string, error) {
	var slugs []string
	seen := map[uuid.UUID]bool{p.ID: true}
	next := p.ParentID
	for next != nil && !seen[*next] {
		seen[*next] = true
		parent, ok := b.pages[*next]
		if !ok {
			loaded, err := b.postRepo.FindByIDForTenant(ctx, b.tenantID, *next)
			if err != nil {
				break
			}
			b.pages[loaded.ID] = loaded
			parent = loaded
		}
		slugs = append([]string{parent.Slug.String()}, slugs...)
		next = parent.ParentID
	}
	return slugs, nil
}
