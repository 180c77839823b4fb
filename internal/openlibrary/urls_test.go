package openlibrary

import "testing"

func TestCoverURL(t *testing.T) {
	id := int64(42)
	zero := int64(0)

	cases := []struct {
		name   string
		id     *int64
		size   CoverSize
		want   string
		wantOK bool
	}{
		{"absent", nil, CoverLarge, "", false},
		{"zero id", &zero, CoverLarge, "", false},
		{"large", &id, CoverLarge, "https://covers.openlibrary.org/b/id/42-L.jpg", true},
		{"small", &id, CoverSmall, "https://covers.openlibrary.org/b/id/42-S.jpg", true},
		{"unknown size", &id, CoverSize("X"), "https://covers.openlibrary.org/b/id/42-M.jpg", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := CoverURL(tc.id, tc.size)
			if got != tc.want || ok != tc.wantOK {
				t.Fatalf("CoverURL = %q,%v, want %q,%v", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestRecordURL(t *testing.T) {
	if got := RecordURL("/works/OL123W"); got != "https://openlibrary.org/works/OL123W" {
		t.Fatalf("RecordURL = %q, want https://openlibrary.org/works/OL123W", got)
	}
}

func TestBookClone(t *testing.T) {
	title := "Dune"
	year := 1965
	b := Book{Key: "/works/OL1W", Title: &title, FirstPublishYear: &year, Authors: []string{"Frank Herbert"}}

	dup := b.Clone()
	*dup.Title = "Changed"
	dup.Authors[0] = "Someone"

	if *b.Title != "Dune" || b.Authors[0] != "Frank Herbert" {
		t.Fatalf("Clone shares memory with original: %#v", b)
	}
	if CloneBooks(nil) != nil {
		t.Fatalf("CloneBooks(nil) should stay nil")
	}
}
