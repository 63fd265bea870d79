package store

import (
	"sort"
	"sync"

	"github.com/cppla/postbox/models"
)

// PostStore keeps posts in creation order. Ownership is by author name.
//
// Caller-supplied ids bypass the counter and are not checked for collisions,
// so two posts may share an id.
type PostStore struct {
	mu      sync.RWMutex
	counter int
	posts   []*models.Post
}

// NewPostStore creates an empty store.
func NewPostStore() *PostStore {
	return &PostStore{}
}

// Add appends a post. A nil postID takes the next counter value.
func (s *PostStore) Add(postID *int, content, author string) models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id int
	if postID == nil {
		s.counter++
		id = s.counter
	} else {
		id = *postID
	}
	post := &models.Post{ID: id, Content: content, Author: author}
	s.posts = append(s.posts, post)
	return *post
}

// GetByIDForAuthor returns the author's posts carrying postID.
func (s *PostStore) GetByIDForAuthor(postID int, author string) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(p *models.Post) bool { return p.ID == postID && p.Author == author })
}

// AttachFile records filename on every post returned by GetByIDForAuthor.
// An empty result means nothing matched.
func (s *PostStore) AttachFile(postID int, filename, author string) []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	attached := []models.Post{}
	for _, p := range s.posts {
		if p.ID == postID && p.Author == author {
			name := filename
			p.File = &name
			attached = append(attached, *p)
		}
	}
	return attached
}

// ListByAuthor returns the author's posts sorted by id.
func (s *PostStore) ListByAuthor(author string) []models.Post {
	s.mu.RLock()
	list := s.collect(func(p *models.Post) bool { return p.Author == author })
	s.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// Delete removes posts.
//
// With a nil postID every post by author is removed and the result is always true.
// With a postID every post carrying that id is removed whoever wrote it; the
// result is false when none existed.
func (s *PostStore) Delete(postID *int, author string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	match := func(p *models.Post) bool { return p.Author == author }
	if postID != nil {
		id := *postID
		match = func(p *models.Post) bool { return p.ID == id }
	}

	kept := s.posts[:0]
	removed := 0
	for _, p := range s.posts {
		if match(p) {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	for i := len(kept); i < len(s.posts); i++ {
		s.posts[i] = nil
	}
	s.posts = kept

	if postID != nil && removed == 0 {
		return false
	}
	return true
}

// collect copies matching posts; callers hold the lock.
func (s *PostStore) collect(match func(*models.Post) bool) []models.Post {
	list := []models.Post{}
	for _, p := range s.posts {
		if match(p) {
			list = append(list, *p)
		}
	}
	return list
}
