package catalog

import "testing"

func TestCatalogShape(t *testing.T) {
	all := All()
	if len(all) != 12 {
		t.Fatalf("expected 12 activities, got %d", len(all))
	}
	seen := map[string]bool{}
	for _, a := range all {
		if seen[a.ID] {
			t.Errorf("duplicate activity id %s", a.ID)
		}
		seen[a.ID] = true
		if a.Cost <= 0 || a.DaysNeeded <= 0 {
			t.Errorf("activity %s has non-positive cost or duration", a.ID)
		}
	}
}

func TestRequirementsReferToCatalog(t *testing.T) {
	for _, a := range All() {
		for _, req := range Requirements(a.ID) {
			if _, ok := Get(req); !ok {
				t.Errorf("activity %s requires unknown activity %s", a.ID, req)
			}
			if req == a.ID {
				t.Errorf("activity %s requires itself", a.ID)
			}
		}
	}
}

func TestFinalActivityRequiresEverythingElse(t *testing.T) {
	reqs := Requirements("L")
	if len(reqs) != Size()-1 {
		t.Fatalf("activity L should require all %d others, got %d", Size()-1, len(reqs))
	}
}

func TestGetUnknown(t *testing.T) {
	if _, ok := Get("Z"); ok {
		t.Fatalf("expected lookup miss for Z")
	}
}
