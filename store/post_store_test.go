package store

import (
	"sync"
	"testing"
)

func intp(v int) *int { return &v }

func TestPostStoreAddAutoIDs(t *testing.T) {
	s := NewPostStore()
	p1 := s.Add(nil, "one", "alice")
	p2 := s.Add(nil, "two", "bob")
	if p1.ID != 1 || p2.ID != 2 {
		t.Errorf("auto ids = %d, %d; want 1, 2", p1.ID, p2.ID)
	}
	if p1.File != nil {
		t.Errorf("new post has file %q", *p1.File)
	}
}

func TestPostStoreExplicitIDBypassesCounter(t *testing.T) {
	s := NewPostStore()
	s.Add(intp(10), "explicit", "alice")
	p := s.Add(nil, "auto", "alice")
	if p.ID != 1 {
		t.Errorf("auto id after explicit = %d, want 1", p.ID)
	}
}

func TestPostStoreDuplicateExplicitID(t *testing.T) {
	s := NewPostStore()
	s.Add(nil, "first", "alice")
	s.Add(intp(1), "second", "alice")

	got := s.GetByIDForAuthor(1, "alice")
	if len(got) != 2 {
		t.Fatalf("GetByIDForAuthor(1) len = %d, want 2", len(got))
	}
	if got[0].Content != "first" || got[1].Content != "second" {
		t.Errorf("GetByIDForAuthor(1) = %+v", got)
	}

	// the counter still hands out 2 next, so a third auto post can collide too
	s.Add(intp(2), "explicit two", "alice")
	if p := s.Add(nil, "auto two", "alice"); p.ID != 2 {
		t.Errorf("auto id = %d, want 2", p.ID)
	}
	if got := s.GetByIDForAuthor(2, "alice"); len(got) != 2 {
		t.Errorf("GetByIDForAuthor(2) len = %d, want 2", len(got))
	}
}

func TestPostStoreGetByIDForAuthorScopesByAuthor(t *testing.T) {
	s := NewPostStore()
	p := s.Add(nil, "mine", "alice")

	if got := s.GetByIDForAuthor(p.ID, "bob"); len(got) != 0 {
		t.Errorf("bob sees alice's post: %+v", got)
	}
	if got := s.GetByIDForAuthor(99, "alice"); len(got) != 0 {
		t.Errorf("GetByIDForAuthor(99) = %+v, want empty", got)
	}
}

func TestPostStoreListByAuthorSorted(t *testing.T) {
	s := NewPostStore()
	s.Add(intp(7), "seven", "alice")
	s.Add(intp(3), "three", "alice")
	s.Add(intp(5), "bob's", "bob")
	s.Add(intp(4), "four", "alice")

	got := s.ListByAuthor("alice")
	var ids []int
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	if len(ids) != 3 || ids[0] != 3 || ids[1] != 4 || ids[2] != 7 {
		t.Errorf("ListByAuthor(alice) ids = %v, want [3 4 7]", ids)
	}
	if got := s.ListByAuthor("carol"); len(got) != 0 {
		t.Errorf("ListByAuthor(carol) = %+v, want empty", got)
	}
}

func TestPostStoreReturnsCopies(t *testing.T) {
	s := NewPostStore()
	p := s.Add(nil, "original", "alice")

	list := s.ListByAuthor("alice")
	list[0].Content = "changed"

	if got := s.GetByIDForAuthor(p.ID, "alice"); got[0].Content != "original" {
		t.Errorf("store content = %q, want original", got[0].Content)
	}
}

func TestPostStoreAttachFile(t *testing.T) {
	s := NewPostStore()
	s.Add(nil, "one", "alice")
	s.Add(intp(1), "dup", "alice")
	s.Add(intp(1), "bob's", "bob")

	got := s.AttachFile(1, "cat.png", "alice")
	if len(got) != 2 {
		t.Fatalf("AttachFile() len = %d, want 2", len(got))
	}
	for _, p := range got {
		if p.File == nil || *p.File != "cat.png" {
			t.Errorf("attached post = %+v", p)
		}
	}
	if bob := s.GetByIDForAuthor(1, "bob"); bob[0].File != nil {
		t.Errorf("bob's post got a file: %q", *bob[0].File)
	}
	if got := s.AttachFile(1, "x.png", "carol"); len(got) != 0 {
		t.Errorf("AttachFile() for non-owner = %+v, want empty", got)
	}
}

func TestPostStoreBulkDeleteByAuthor(t *testing.T) {
	s := NewPostStore()
	s.Add(nil, "b1", "bob")
	s.Add(nil, "b2", "bob")

	if !s.Delete(nil, "alice") {
		t.Error("Delete(nil, alice) = false with no alice posts, want true")
	}
	if got := s.ListByAuthor("bob"); len(got) != 2 {
		t.Errorf("bob's posts after alice bulk delete = %d, want 2", len(got))
	}

	s.Add(nil, "a1", "alice")
	if !s.Delete(nil, "alice") {
		t.Error("Delete(nil, alice) = false")
	}
	if got := s.ListByAuthor("alice"); len(got) != 0 {
		t.Errorf("alice still has %d posts", len(got))
	}
	if got := s.ListByAuthor("bob"); len(got) != 2 {
		t.Errorf("bob's posts = %d, want 2", len(got))
	}
}

func TestPostStoreDeleteByIDIgnoresAuthor(t *testing.T) {
	s := NewPostStore()
	s.Add(intp(5), "bob's", "bob")
	s.Add(intp(6), "bob's other", "bob")

	if !s.Delete(intp(5), "alice") {
		t.Fatal("Delete(5, alice) = false, want true")
	}
	if got := s.GetByIDForAuthor(5, "bob"); len(got) != 0 {
		t.Errorf("post 5 survived: %+v", got)
	}
	if got := s.GetByIDForAuthor(6, "bob"); len(got) != 1 {
		t.Errorf("post 6 removed too")
	}
}

func TestPostStoreDeleteByIDNotFound(t *testing.T) {
	s := NewPostStore()
	s.Add(nil, "one", "alice")
	if s.Delete(intp(9), "alice") {
		t.Error("Delete(9) = true, want false")
	}
}

func TestPostStoreDeleteByIDRemovesDuplicates(t *testing.T) {
	s := NewPostStore()
	s.Add(intp(1), "a", "alice")
	s.Add(intp(1), "b", "bob")
	if !s.Delete(intp(1), "alice") {
		t.Fatal("Delete(1) = false")
	}
	if len(s.ListByAuthor("alice"))+len(s.ListByAuthor("bob")) != 0 {
		t.Error("posts with id 1 survived")
	}
}

func TestPostStoreConcurrentAddsGetUniqueIDs(t *testing.T) {
	s := NewPostStore()
	const n = 200
	ids := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- s.Add(nil, "c", "alice").ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int]bool{}
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Errorf("got %d ids, want %d", len(seen), n)
	}
}
