package markdown

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var admonitionStart = regexp.MustCompile(`^!!!\s+([\w-]+)(?:\s+"(.*)")?\s*$`)

// expandAdmonitions rewrites `!!! type "Title"` blocks and their indented body
// into a div the markdown parser will leave open around the parsed body.
func expandAdmonitions(source string) string {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	inFence := false

	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
		}
		m := admonitionStart.FindStringSubmatch(line)
		if inFence || m == nil {
			out = append(out, lines[i])
			continue
		}

		kind := strings.ToLower(m[1])
		title := strings.ToUpper(kind[:1]) + kind[1:]
		if strings.Contains(line, `"`) {
			title = m[2]
		}

		var body []string
		for i+1 < len(lines) {
			next := strings.TrimRight(lines[i+1], "\r")
			if strings.TrimSpace(next) == "" {
				body = append(body, "")
				i++
				continue
			}
			if !strings.HasPrefix(next, "    ") && !strings.HasPrefix(next, "\t") {
				break
			}
			if strings.HasPrefix(next, "\t") {
				body = append(body, next[1:])
			} else {
				body = append(body, next[4:])
			}
			i++
		}

		out = append(out, fmt.Sprintf(`<div class="admonition %s">`, html.EscapeString(kind)))
		if title != "" {
			out = append(out, fmt.Sprintf(`<p class="admonition-title">%s</p>`, html.EscapeString(title)))
		}
		out = append(out, "")
		out = append(out, strings.Join(body, "\n"))
		out = append(out, "", "</div>", "")
	}
	return strings.Join(out, "\n")
}
