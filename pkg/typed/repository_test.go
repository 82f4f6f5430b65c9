package typed_test

import (
	"context"
	"testing"

	"github.com/aretw0/bindery/pkg/core"
	"github.com/aretw0/bindery/pkg/typed"
)

type memRepo struct {
	docs map[string]core.Binding
}

func newMemRepo() *memRepo {
	return &memRepo{docs: make(map[string]core.Binding)}
}

func (m *memRepo) Save(ctx context.Context, b core.Binding) error {
	m.docs[b.ID] = b
	return nil
}

func (m *memRepo) Get(ctx context.Context, id string) (core.Binding, error) {
	b, ok := m.docs[id]
	if !ok {
		return core.Binding{}, core.ErrNotFound
	}
	return b, nil
}

func (m *memRepo) List(ctx context.Context) ([]core.Binding, error) {
	var out []core.Binding
	for _, b := range m.docs {
		out = append(out, b)
	}
	return out, nil
}

func (m *memRepo) Delete(ctx context.Context, id string) error {
	delete(m.docs, id)
	return nil
}

func (m *memRepo) Initialize(ctx context.Context) error { return nil }

type bindingMeta struct {
	ID          string `json:"id"`
	Version     string `json:"version"`
	DerivedFrom string `json:"derived_from"`
}

func TestTypedRepository_RoundTrip(t *testing.T) {
	repo := typed.NewRepository[bindingMeta](newMemRepo())
	ctx := context.Background()

	err := repo.Save(ctx, &typed.Model[bindingMeta]{
		ID:      "go/error-wrapping",
		Content: "body",
		Data: bindingMeta{
			ID:          "error-wrapping",
			Version:     "0.1.0",
			DerivedFrom: "simplicity",
		},
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	doc, err := repo.Get(ctx, "go/error-wrapping")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if doc.Data.DerivedFrom != "simplicity" {
		t.Errorf("typed field lost: %+v", doc.Data)
	}
	if doc.Content != "body" {
		t.Errorf("content lost: %q", doc.Content)
	}
}

func TestTypedRepository_FrontmatterModel(t *testing.T) {
	// The canonical instantiation: Model over the corpus schema itself.
	repo := typed.NewRepository[core.Frontmatter](newMemRepo())
	ctx := context.Background()

	err := repo.Save(ctx, &typed.Model[core.Frontmatter]{
		ID: "go/table-tests",
		Data: core.Frontmatter{
			ID:           "table-tests",
			Version:      "0.2.0",
			LastModified: "2026-08-29",
		},
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	doc, err := repo.Get(ctx, "go/table-tests")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if doc.Data.LastModified != "2026-08-29" {
		t.Errorf("schema field lost: %+v", doc.Data)
	}
}

func TestModel_ActiveRecordSave(t *testing.T) {
	mem := newMemRepo()
	repo := typed.NewRepository[bindingMeta](mem)
	ctx := context.Background()

	doc := &typed.Model[bindingMeta]{ID: "go/a", Content: "v1", Data: bindingMeta{ID: "a"}}
	if err := repo.Save(ctx, doc); err != nil {
		t.Fatal(err)
	}

	// Saver is attached on first save; mutate and save through the model.
	doc.Content = "v2"
	if err := doc.Save(ctx); err != nil {
		t.Fatalf("model Save failed: %v", err)
	}
	if mem.docs["go/a"].Content != "v2" {
		t.Errorf("expected active-record save to persist, got %q", mem.docs["go/a"].Content)
	}
}

func TestModel_DetachedSave(t *testing.T) {
	doc := &typed.Model[bindingMeta]{ID: "go/a"}
	if err := doc.Save(context.Background()); err == nil {
		t.Error("expected error saving a detached model")
	}
}
