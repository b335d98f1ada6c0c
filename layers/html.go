package layers

import (
	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// HTMLExtractor converts an HTML body into Markdown text, suitable for
// registration in [NewExtract] under "text/html". The decoded value is a
// string.
func HTMLExtractor(data []byte) (any, error) {
	markdown, err := htmltomarkdown.ConvertString(string(data))
	if err != nil {
		return nil, err
	}
	return markdown, nil
}
