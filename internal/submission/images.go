package submission

import (
	"net/url"
	"strings"

	"github.com/estrie-eats/checkout-backend/internal/checkout"
)

const maxImagesPerLine = 8

var imageSuffixes = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif", ".svg"}

// Hosts that serve images without an extension in the path.
var imageHosts = []string{
	"cloudinary.com",
	"imgur.com",
	"firebasestorage.googleapis.com",
	"images.unsplash.com",
	"cdn.shopify.com",
}

// extractImages collects up to 8 plausible image URLs from a cart line,
// scanning the scalar candidate fields in priority order and then the array
// fields, deduplicating as it goes. The first hit is the primary image.
func extractImages(line checkout.CartLine) []string {
	candidates := []string{line.Image, line.ImageURL, line.Thumbnail, line.Photo}
	candidates = append(candidates, line.Images...)
	candidates = append(candidates, line.Gallery...)

	seen := make(map[string]struct{}, len(candidates))
	var out []string
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		if !plausibleImageURL(candidate) {
			continue
		}
		out = append(out, candidate)
		if len(out) == maxImagesPerLine {
			break
		}
	}
	return out
}

func plausibleImageURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	path := strings.ToLower(parsed.Path)
	for _, suffix := range imageSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	host := strings.ToLower(parsed.Host)
	for _, known := range imageHosts {
		if strings.Contains(host, known) {
			return true
		}
	}
	return false
}
