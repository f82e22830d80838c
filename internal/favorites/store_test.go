package favorites

import "testing"

func TestAddIsIdempotent(t *testing.T) {
	store := NewMemoryStore()

	first, err := store.Add(1, "42")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	again, _ := store.Add(1, "42")
	if again.Id != first.Id {
		t.Errorf("duplicate favorite created: %d vs %d", again.Id, first.Id)
	}

	mine, _ := store.ListByUser(1)
	if len(mine) != 1 {
		t.Errorf("expected one favorite, got %d", len(mine))
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	store := NewMemoryStore()

	store.Add(1, "42")
	store.Add(1, "7")
	store.Add(2, "42")

	if err := store.Remove(1, "42"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	// Removing again is not an error.
	if err := store.Remove(1, "42"); err != nil {
		t.Fatalf("second remove failed: %v", err)
	}

	mine, _ := store.ListByUser(1)
	if len(mine) != 1 || mine[0].CharacterId != "7" {
		t.Errorf("expected only 7 left, got %+v", mine)
	}

	// Another user's identical favorite survives.
	theirs, _ := store.ListByUser(2)
	if len(theirs) != 1 {
		t.Errorf("other user's favorite removed: %+v", theirs)
	}
}
