package catalog

// Image size presets accepted by the image CDN.
const (
	PosterSize   = "w500"
	BackdropSize = "w1280"
)

// PosterURL builds the absolute URL of a poster. size defaults to w500.
// An empty path yields an empty URL.
func (c *Client) PosterURL(path, size string) string {
	return imageURL(c.cfg.ImageBaseURL, path, size, PosterSize)
}

// BackdropURL builds the absolute URL of a backdrop. size defaults to w1280.
func (c *Client) BackdropURL(path, size string) string {
	return imageURL(c.cfg.ImageBaseURL, path, size, BackdropSize)
}

func imageURL(base, path, size, fallback string) string {
	if path == "" {
		return ""
	}
	if size == "" {
		size = fallback
	}
	return base + "/" + size + path
}
