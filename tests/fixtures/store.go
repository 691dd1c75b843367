package fixtures

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"content-api/internal/domain/entity"
	"content-api/internal/repository"
)

type link struct {
	articleID  string
	categoryID string
}

// Store is an in-memory implementation of every repository port plus a
// Transactor that restores a snapshot when the unit of work fails.
// Timestamps advance one second per write so created_at ordering is stable.
type Store struct {
	mu         sync.Mutex
	clock      time.Time
	articles   map[string]entity.Article
	categories map[string]entity.Category
	links      map[link]struct{}
	comments   map[string]entity.Comment

	// Errors forces the named operation (e.g. "articles.DeleteMany") to fail.
	Errors map[string]error
	// ConcurrentNames makes InsertIfAbsent lose the race:
	// another writer inserts the name just before us.
	ConcurrentNames map[string]bool
	// VanishingNames makes InsertIfAbsent report a taken name that never becomes visible.
	VanishingNames map[string]bool
	// Calls counts invocations per operation name.
	Calls map[string]int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		clock:           time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		articles:        map[string]entity.Article{},
		categories:      map[string]entity.Category{},
		links:           map[link]struct{}{},
		comments:        map[string]entity.Comment{},
		Errors:          map[string]error{},
		ConcurrentNames: map[string]bool{},
		VanishingNames:  map[string]bool{},
		Calls:           map[string]int{},
	}
}

func (s *Store) Articles() repository.ArticleRepository         { return articleRepo{s} }
func (s *Store) Categories() repository.CategoryRepository      { return categoryRepo{s} }
func (s *Store) Associations() repository.AssociationRepository { return associationRepo{s} }
func (s *Store) Comments() repository.CommentRepository         { return commentRepo{s} }
func (s *Store) Transactor() repository.Transactor              { return transactor{s} }

/* ───── seeding & inspection ───── */

// AddArticle inserts an article with a valid description and returns it.
func (s *Store) AddArticle(title string) entity.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.tick()
	a := entity.Article{
		ID:          uuid.NewString(),
		Title:       title,
		Description: GenerateText(40),
		Type:        entity.ArticleTypeLong,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.articles[a.ID] = a
	return a
}

// AddCategory inserts a category and returns it.
func (s *Store) AddCategory(name string) entity.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := entity.Category{ID: uuid.NewString(), Name: name, CreatedAt: s.tick()}
	s.categories[c.ID] = c
	return c
}

// AddComment inserts a comment on an article and returns it.
func (s *Store) AddComment(articleID, text string) entity.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.tick()
	c := entity.Comment{ID: uuid.NewString(), Text: text, ArticleID: articleID, CreatedAt: now, UpdatedAt: now}
	s.comments[c.ID] = c
	return c
}

// Link associates an article with a category.
func (s *Store) Link(articleID, categoryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[link{articleID, categoryID}] = struct{}{}
}

// CategoryIDsOf returns the sorted category IDs linked to an article.
func (s *Store) CategoryIDsOf(articleID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for l := range s.links {
		if l.articleID == articleID {
			ids = append(ids, l.categoryID)
		}
	}
	sort.Strings(ids)
	return ids
}

// HasArticle reports whether the article exists.
func (s *Store) HasArticle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.articles[id]
	return ok
}

// CategoryByName returns the category carrying name, if any.
func (s *Store) CategoryByName(name string) (entity.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findByName(name)
}

// ArticleCount returns the number of stored articles.
func (s *Store) ArticleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.articles)
}

// CategoryCount returns the number of stored categories.
func (s *Store) CategoryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.categories)
}

// LinkCount returns the number of stored associations.
func (s *Store) LinkCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.links)
}

// CommentCount returns the number of stored comments.
func (s *Store) CommentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.comments)
}

/* ───── ヘルパ ───── */

// call records op and returns the error configured for it. Callers hold mu.
func (s *Store) call(op string) error {
	s.Calls[op]++
	return s.Errors[op]
}

func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) findByName(name string) (entity.Category, bool) {
	for _, c := range s.categories {
		if c.Name == name {
			return c, true
		}
	}
	return entity.Category{}, false
}

func (s *Store) categoriesOf(articleID string) []entity.Category {
	out := []entity.Category{}
	for l := range s.links {
		if l.articleID == articleID {
			if c, ok := s.categories[l.categoryID]; ok {
				out = append(out, c)
			}
		}
	}
	sortNewestFirst(out, func(c entity.Category) (time.Time, string) { return c.CreatedAt, c.ID })
	return out
}

func sortNewestFirst[T any](items []T, key func(T) (time.Time, string)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return idi > idj
	})
}

type snapshot struct {
	articles   map[string]entity.Article
	categories map[string]entity.Category
	links      map[link]struct{}
	comments   map[string]entity.Comment
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		articles:   make(map[string]entity.Article, len(s.articles)),
		categories: make(map[string]entity.Category, len(s.categories)),
		links:      make(map[link]struct{}, len(s.links)),
		comments:   make(map[string]entity.Comment, len(s.comments)),
	}
	for k, v := range s.articles {
		snap.articles[k] = v
	}
	for k, v := range s.categories {
		snap.categories[k] = v
	}
	for k, v := range s.links {
		snap.links[k] = v
	}
	for k, v := range s.comments {
		snap.comments[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = snap.articles
	s.categories = snap.categories
	s.links = snap.links
	s.comments = snap.comments
}

func existing[V any](m map[string]V, ids []string) []string {
	found := []string{}
	for _, id := range ids {
		if _, ok := m[id]; ok {
			found = append(found, id)
		}
	}
	return found
}

/* ───── Transactor ───── */

type txKey struct{}

type transactor struct{ s *Store }

func (t transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	t.s.mu.Lock()
	t.s.Calls["tx.Begin"]++
	t.s.mu.Unlock()

	snap := t.s.snapshot()
	err := fn(context.WithValue(ctx, txKey{}, true))
	if err == nil {
		err = ctx.Err()
	}

	t.s.mu.Lock()
	if err != nil {
		t.s.Calls["tx.Rollback"]++
	} else {
		t.s.Calls["tx.Commit"]++
	}
	t.s.mu.Unlock()

	if err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

/* ───── ArticleRepository ───── */

type articleRepo struct{ s *Store }

func (r articleRepo) Create(_ context.Context, a *entity.Article) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("articles.Create"); err != nil {
		return err
	}
	now := s.tick()
	a.ID = uuid.NewString()
	a.CreatedAt, a.UpdatedAt = now, now
	row := *a
	row.Categories, row.Comments = nil, nil
	s.articles[a.ID] = row
	return nil
}

func (r articleRepo) Get(_ context.Context, id string) (*entity.Article, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("articles.Get"); err != nil {
		return nil, err
	}
	a, ok := s.articles[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r articleRepo) List(_ context.Context, q repository.ArticleQuery) ([]*entity.Article, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("articles.List"); err != nil {
		return nil, err
	}
	rows := s.filter(q.Filter)

	less := func(a, b entity.Article) int {
		switch q.SortBy {
		case "updatedAt":
			return a.UpdatedAt.Compare(b.UpdatedAt)
		case "title":
			return strings.Compare(a.Title, b.Title)
		case "type":
			return strings.Compare(string(a.Type), string(b.Type))
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		c := less(rows[i], rows[j])
		if c == 0 {
			c = strings.Compare(rows[i].ID, rows[j].ID)
		}
		if q.Descending {
			return c > 0
		}
		return c < 0
	})

	out := []*entity.Article{}
	for i := q.Offset; i < len(rows) && (q.Limit <= 0 || i < q.Offset+q.Limit); i++ {
		a := rows[i]
		out = append(out, &a)
	}
	return out, nil
}

func (r articleRepo) Count(_ context.Context, filter repository.ArticleFilter) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("articles.Count"); err != nil {
		return 0, err
	}
	return int64(len(s.filter(filter))), nil
}

func (s *Store) filter(f repository.ArticleFilter) []entity.Article {
	var rows []entity.Article
	for _, a := range s.articles {
		if f.CategoryID != "" {
			if _, ok := s.links[link{a.ID, f.CategoryID}]; !ok {
				continue
			}
		}
		rows = append(rows, a)
	}
	return rows
}

func (r articleRepo) Update(_ context.Context, a *entity.Article) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("articles.Update"); err != nil {
		return err
	}
	row, ok := s.articles[a.ID]
	if !ok {
		return entity.NotFound("update article", "article", a.ID)
	}
	row.Title, row.Description, row.Type = a.Title, a.Description, a.Type
	row.UpdatedAt = s.tick()
	s.articles[a.ID] = row
	a.UpdatedAt = row.UpdatedAt
	return nil
}

func (r articleRepo) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("articles.Delete"); err != nil {
		return err
	}
	if _, ok := s.articles[id]; !ok {
		return entity.NotFound("delete article", "article", id)
	}
	s.deleteArticle(id)
	return nil
}

func (r articleRepo) DeleteMany(_ context.Context, ids []string) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("articles.DeleteMany"); err != nil {
		return 0, err
	}
	var n int64
	for _, id := range entity.UniqueIDs(ids) {
		if _, ok := s.articles[id]; ok {
			s.deleteArticle(id)
			n++
		}
	}
	return n, nil
}

// deleteArticle removes the row and cascades to its links and comments.
func (s *Store) deleteArticle(id string) {
	delete(s.articles, id)
	for l := range s.links {
		if l.articleID == id {
			delete(s.links, l)
		}
	}
	for cid, c := range s.comments {
		if c.ArticleID == id {
			delete(s.comments, cid)
		}
	}
}

func (r articleRepo) ExistingIDs(_ context.Context, ids []string) ([]string, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("articles.ExistingIDs"); err != nil {
		return nil, err
	}
	return existing(s.articles, ids), nil
}

/* ───── CategoryRepository ───── */

type categoryRepo struct{ s *Store }

const duplicateNameMsg = "category with this name already exists"

func (r categoryRepo) Create(_ context.Context, c *entity.Category) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("categories.Create"); err != nil {
		return err
	}
	if _, taken := s.findByName(c.Name); taken {
		return entity.Conflict("create category", "category", duplicateNameMsg, nil)
	}
	c.ID = uuid.NewString()
	c.CreatedAt = s.tick()
	row := *c
	row.Articles = nil
	s.categories[c.ID] = row
	return nil
}

func (r categoryRepo) Get(_ context.Context, id string) (*entity.Category, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("categories.Get"); err != nil {
		return nil, err
	}
	c, ok := s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r categoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("categories.List"); err != nil {
		return nil, err
	}
	rows := make([]entity.Category, 0, len(s.categories))
	for _, c := range s.categories {
		rows = append(rows, c)
	}
	sortNewestFirst(rows, func(c entity.Category) (time.Time, string) { return c.CreatedAt, c.ID })
	out := make([]*entity.Category, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out, nil
}

func (r categoryRepo) Update(_ context.Context, c *entity.Category) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("categories.Update"); err != nil {
		return err
	}
	row, ok := s.categories[c.ID]
	if !ok {
		return entity.NotFound("update category", "category", c.ID)
	}
	if other, taken := s.findByName(c.Name); taken && other.ID != c.ID {
		return entity.Conflict("update category", "category", duplicateNameMsg, nil)
	}
	row.Name = c.Name
	s.categories[c.ID] = row
	return nil
}

func (r categoryRepo) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("categories.Delete"); err != nil {
		return err
	}
	if _, ok := s.categories[id]; !ok {
		return entity.NotFound("delete category", "category", id)
	}
	delete(s.categories, id)
	for l := range s.links {
		if l.categoryID == id {
			delete(s.links, l)
		}
	}
	return nil
}

func (r categoryRepo) Count(_ context.Context) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("categories.Count"); err != nil {
		return 0, err
	}
	return int64(len(s.categories)), nil
}

func (r categoryRepo) FindByName(_ context.Context, name string) (*entity.Category, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("categories.FindByName"); err != nil {
		return nil, err
	}
	c, ok := s.findByName(name)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r categoryRepo) InsertIfAbsent(_ context.Context, name string) (string, bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("categories.InsertIfAbsent"); err != nil {
		return "", false, err
	}
	if s.VanishingNames[name] {
		return "", false, nil
	}
	if s.ConcurrentNames[name] {
		delete(s.ConcurrentNames, name)
		c := entity.Category{ID: uuid.NewString(), Name: name, CreatedAt: s.tick()}
		s.categories[c.ID] = c
		return "", false, nil
	}
	if _, taken := s.findByName(name); taken {
		return "", false, nil
	}
	c := entity.Category{ID: uuid.NewString(), Name: name, CreatedAt: s.tick()}
	s.categories[c.ID] = c
	return c.ID, true, nil
}

func (r categoryRepo) ExistingIDs(_ context.Context, ids []string) ([]string, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("categories.ExistingIDs"); err != nil {
		return nil, err
	}
	return existing(s.categories, ids), nil
}

func (r categoryRepo) ListByArticle(_ context.Context, articleID string) ([]entity.Category, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("categories.ListByArticle"); err != nil {
		return nil, err
	}
	return s.categoriesOf(articleID), nil
}

func (r categoryRepo) ListByArticles(_ context.Context, articleIDs []string) (map[string][]entity.Category, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("categories.ListByArticles"); err != nil {
		return nil, err
	}
	out := make(map[string][]entity.Category, len(articleIDs))
	for _, id := range articleIDs {
		if cats := s.categoriesOf(id); len(cats) > 0 {
			out[id] = cats
		}
	}
	return out, nil
}

func (r categoryRepo) ArticleRefs(_ context.Context, categoryIDs []string) (map[string][]entity.ArticleRef, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("categories.ArticleRefs"); err != nil {
		return nil, err
	}
	out := make(map[string][]entity.ArticleRef, len(categoryIDs))
	for _, cid := range categoryIDs {
		var rows []entity.Article
		for l := range s.links {
			if l.categoryID == cid {
				rows = append(rows, s.articles[l.articleID])
			}
		}
		sortNewestFirst(rows, func(a entity.Article) (time.Time, string) { return a.CreatedAt, a.ID })
		for _, a := range rows {
			out[cid] = append(out[cid], entity.ArticleRef{ID: a.ID, Title: a.Title})
		}
	}
	return out, nil
}

/* ───── AssociationRepository ───── */

type associationRepo struct{ s *Store }

func (r associationRepo) CategoryIDs(_ context.Context, articleID string) ([]string, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("associations.CategoryIDs"); err != nil {
		return nil, err
	}
	ids := []string{}
	for l := range s.links {
		if l.articleID == articleID {
			ids = append(ids, l.categoryID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r associationRepo) Link(_ context.Context, articleID string, categoryIDs []string) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("associations.Link"); err != nil {
		return 0, err
	}
	return s.insertLinks("link categories", []string{articleID}, categoryIDs)
}

func (r associationRepo) Unlink(_ context.Context, articleID string, categoryIDs []string) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("associations.Unlink"); err != nil {
		return 0, err
	}
	var n int64
	for _, cid := range entity.UniqueIDs(categoryIDs) {
		l := link{articleID, cid}
		if _, ok := s.links[l]; ok {
			delete(s.links, l)
			n++
		}
	}
	return n, nil
}

func (r associationRepo) LinkArticles(_ context.Context, categoryID string, articleIDs []string) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("associations.LinkArticles"); err != nil {
		return 0, err
	}
	return s.insertLinks("link articles", articleIDs, []string{categoryID})
}

// insertLinks behaves like a multi-row INSERT ... ON CONFLICT DO NOTHING:
// a dangling reference fails the whole statement.
func (s *Store) insertLinks(op string, articleIDs, categoryIDs []string) (int64, error) {
	for _, aid := range articleIDs {
		if _, ok := s.articles[aid]; !ok {
			return 0, entity.InvalidReference(op, nil)
		}
	}
	for _, cid := range categoryIDs {
		if _, ok := s.categories[cid]; !ok {
			return 0, entity.InvalidReference(op, nil)
		}
	}
	var n int64
	for _, aid := range entity.UniqueIDs(articleIDs) {
		for _, cid := range entity.UniqueIDs(categoryIDs) {
			l := link{aid, cid}
			if _, ok := s.links[l]; !ok {
				s.links[l] = struct{}{}
				n++
			}
		}
	}
	return n, nil
}

/* ───── CommentRepository ───── */

type commentRepo struct{ s *Store }

func (r commentRepo) Create(_ context.Context, c *entity.Comment) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("comments.Create"); err != nil {
		return err
	}
	if _, ok := s.articles[c.ArticleID]; !ok {
		return entity.InvalidReference("create comment", nil)
	}
	now := s.tick()
	c.ID = uuid.NewString()
	c.CreatedAt, c.UpdatedAt = now, now
	row := *c
	row.Article = nil
	s.comments[c.ID] = row
	return nil
}

func (r commentRepo) Get(_ context.Context, id string) (*entity.Comment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("comments.Get"); err != nil {
		return nil, err
	}
	c, ok := s.comments[id]
	if !ok {
		return nil, nil
	}
	if a, ok := s.articles[c.ArticleID]; ok {
		c.Article = &entity.ArticleRef{ID: a.ID, Title: a.Title}
	}
	return &c, nil
}

func (r commentRepo) ListByArticle(_ context.Context, articleID string) ([]entity.Comment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("comments.ListByArticle"); err != nil {
		return nil, err
	}
	out := []entity.Comment{}
	for _, c := range s.comments {
		if c.ArticleID == articleID {
			out = append(out, c)
		}
	}
	sortNewestFirst(out, func(c entity.Comment) (time.Time, string) { return c.CreatedAt, c.ID })
	return out, nil
}

func (r commentRepo) Update(_ context.Context, c *entity.Comment) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("comments.Update"); err != nil {
		return err
	}
	row, ok := s.comments[c.ID]
	if !ok {
		return entity.NotFound("update comment", "comment", c.ID)
	}
	row.Text = c.Text
	row.UpdatedAt = s.tick()
	s.comments[c.ID] = row
	c.UpdatedAt = row.UpdatedAt
	return nil
}

func (r commentRepo) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("comments.Delete"); err != nil {
		return err
	}
	if _, ok := s.comments[id]; !ok {
		return entity.NotFound("delete comment", "comment", id)
	}
	delete(s.comments, id)
	return nil
}

func (r commentRepo) Count(_ context.Context) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.call("comments.Count"); err != nil {
		return 0, err
	}
	return int64(len(s.comments)), nil
}
