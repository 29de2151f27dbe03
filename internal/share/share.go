// Package share templates the copyable embed snippets shown next to every
// uploaded file.
package share

import "fmt"

// Links holds the ready-to-paste snippets for one hosted file.
type Links struct {
	DirectLink string
	Markdown   string
	BBS        string
	HTML       string
}

// For builds the snippets from a filename and its public URL.
func For(filename string, url string) Links {
	return Links{
		DirectLink: url,
		Markdown:   fmt.Sprintf("![%s](%s)", filename, url),
		BBS:        fmt.Sprintf("[img]%s[/img]", url),
		HTML:       fmt.Sprintf(`<img src="%s" alt="%s" />`, url, filename),
	}
}
