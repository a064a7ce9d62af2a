package builder

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"dok/internal/config"
	"dok/internal/content"
)

// feedExcerpt is the number of runes of a body kept in a feed item.
const feedExcerpt = 1800

type RSS struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel RSSChannel `xml:"channel"`
}

type RSSChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []RSSItem `xml:"item"`
}

type RSSItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        string   `xml:"guid"`
	PubDate     string   `xml:"pubDate"`
	Description RSSCDATA `xml:"description"`
}

type RSSCDATA struct {
	Content string `xml:",cdata"`
}

// renderFeed builds rss.xml from every published Document with a body.
func renderFeed(site *content.Site, settings config.Settings) ([]byte, error) {
	base := strings.TrimSuffix(settings.MainURL, "/")
	feed := RSS{
		Version: "2.0",
		Channel: RSSChannel{
			Title:       settings.Title,
			Link:        settings.MainURL,
			Description: settings.Description,
			Language:    settings.Language,
		},
	}

	var latest time.Time
	for _, doc := range site.Ordered {
		if doc.Draft || strings.TrimSpace(doc.Body) == "" {
			continue
		}
		link := base + "/" + doc.URL()
		feed.Channel.Items = append(feed.Channel.Items, RSSItem{
			Title:       doc.Title,
			Link:        link,
			GUID:        link,
			PubDate:     doc.LastUpdate.Format(time.RFC1123Z),
			Description: RSSCDATA{Content: excerpt(doc.Body, feedExcerpt)},
		})
		if doc.LastUpdate.After(latest) {
			latest = doc.LastUpdate
		}
	}
	if !latest.IsZero() {
		feed.Channel.LastBuildDate = latest.Format(time.RFC1123Z)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(feed); err != nil {
		return nil, fmt.Errorf("failed to encode feed: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// excerpt keeps the first n runes of s followed by an ellipsis.
func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes) + "..."
}
