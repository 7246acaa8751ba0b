package conversation

import "testing"

func TestDefault_CatalogueShape(t *testing.T) {
	seq := Default()

	if seq.Total() != 6 {
		t.Fatalf("total = %d, want 6", seq.Total())
	}

	wantOrder := []string{
		"roof_type", "roof_condition", "roof_elements",
		"roof_access", "material_preference", "insulation",
	}
	got := seq.IDs()
	if len(got) != len(wantOrder) {
		t.Fatalf("ids = %v", got)
	}
	for i, id := range wantOrder {
		if got[i] != id {
			t.Fatalf("ids[%d] = %q, want %q", i, got[i], id)
		}
	}

	if seq.First().ID != "roof_type" {
		t.Errorf("first = %q", seq.First().ID)
	}

	// Links must walk the declared order and terminate.
	for i, id := range wantOrder {
		q, ok := seq.Get(id)
		if !ok {
			t.Fatalf("missing question %q", id)
		}
		if i < len(wantOrder)-1 {
			if q.Next != wantOrder[i+1] {
				t.Errorf("%s.Next = %q, want %q", id, q.Next, wantOrder[i+1])
			}
		} else if q.Next != "" {
			t.Errorf("last question must not link anywhere, got %q", q.Next)
		}
		if len(q.Options) == 0 {
			t.Errorf("%s has no options", id)
		}
		if q.Prompt == "" {
			t.Errorf("%s has no prompt", id)
		}
	}

	// Only roof_elements is multiple choice.
	for _, id := range wantOrder {
		q, _ := seq.Get(id)
		want := KindChoice
		if id == "roof_elements" {
			want = KindMultipleChoice
		}
		if q.Kind != want {
			t.Errorf("%s kind = %q, want %q", id, q.Kind, want)
		}
	}
}

func TestNewSequence_PanicsOnBadCatalogue(t *testing.T) {
	mustPanic := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}

	mustPanic("empty", func() { NewSequence() })
	mustPanic("duplicate id", func() {
		NewSequence(
			Question{ID: "a", Next: "a"},
			Question{ID: "a"},
		)
	})
	mustPanic("dangling link", func() {
		NewSequence(Question{ID: "a", Next: "missing"})
	})
}

func TestSequence_Lookups(t *testing.T) {
	seq := Default()

	if !seq.Contains("insulation") {
		t.Errorf("insulation should be in the sequence")
	}
	if seq.Contains("favorite_color") {
		t.Errorf("unexpected question in sequence")
	}
	if _, ok := seq.Get("nope"); ok {
		t.Errorf("Get on unknown id must report !ok")
	}

	// IDs returns a copy, mutating it must not affect the sequence.
	ids := seq.IDs()
	ids[0] = "tampered"
	if seq.IDs()[0] != "roof_type" {
		t.Errorf("IDs must return a defensive copy")
	}
}
