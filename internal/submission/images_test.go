package submission

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/estrie-eats/checkout-backend/internal/checkout"
)

func TestExtractImagesPriorityOrder(t *testing.T) {
	line := checkout.CartLine{
		Photo:    "https://cdn.example.com/photo.png",
		Image:    "https://cdn.example.com/image.png",
		ImageURL: "https://cdn.example.com/imageurl.jpg",
		Images:   []string{"https://cdn.example.com/extra.webp"},
	}
	got := extractImages(line)
	want := []string{
		"https://cdn.example.com/image.png",
		"https://cdn.example.com/imageurl.jpg",
		"https://cdn.example.com/photo.png",
		"https://cdn.example.com/extra.webp",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("extractImages = %v, want %v", got, want)
	}
}

func TestExtractImagesDeduplicatesAndCaps(t *testing.T) {
	var gallery []string
	for i := 0; i < 12; i++ {
		gallery = append(gallery, fmt.Sprintf("https://cdn.example.com/g%d.jpg", i))
	}
	line := checkout.CartLine{
		Image:   "https://cdn.example.com/g0.jpg",
		Images:  []string{"https://cdn.example.com/g0.jpg", "https://cdn.example.com/g1.jpg"},
		Gallery: gallery,
	}
	got := extractImages(line)
	if len(got) != maxImagesPerLine {
		t.Fatalf("len = %d, want %d", len(got), maxImagesPerLine)
	}
	seen := map[string]bool{}
	for _, u := range got {
		if seen[u] {
			t.Fatalf("duplicate url %q in %v", u, got)
		}
		seen[u] = true
	}
	if got[0] != "https://cdn.example.com/g0.jpg" {
		t.Fatalf("primary = %q", got[0])
	}
}

func TestPlausibleImageURL(t *testing.T) {
	cases := []struct {
		url string
		ok  bool
	}{
		{"https://cdn.example.com/a.jpg", true},
		{"http://cdn.example.com/a.JPEG", true},
		{"https://cdn.example.com/a.jpeg", true},
		{"https://res.cloudinary.com/shop/upload/v1/a", true},
		{"https://firebasestorage.googleapis.com/v0/b/app/o/a", true},
		{"https://example.com/page.html", false},
		{"ftp://cdn.example.com/a.jpg", false},
		{"not a url", false},
		{"/relative/a.jpg", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := plausibleImageURL(tc.url); got != tc.ok {
			t.Errorf("plausibleImageURL(%q) = %v, want %v", tc.url, got, tc.ok)
		}
	}
}
