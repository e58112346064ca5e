// Copyright 2026 Helix Data Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package helpdesk

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

var (
	multiSpace   = regexp.MustCompile(`[ \t]+`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
)

// HTMLToText strips markup from an article body and returns NFKC-normalized
// plain text. Block-level elements become line breaks so that headings and
// list items do not run together. Script and style content is discarded.
// Input that fails to parse is returned as-is after normalization.
func HTMLToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return normalizeText(html)
	}

	doc.Find("script, style").Remove()

	// goquery's Text() concatenates text nodes with no separators, so
	// inject newlines after block elements first.
	doc.Find("p, div, br, li, h1, h2, h3, h4, h5, h6, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return normalizeText(doc.Text())
}

// normalizeText applies NFKC unicode normalization and collapses runs of
// whitespace, keeping at most one blank line between paragraphs.
func normalizeText(s string) string {
	s = norm.NFKC.String(s)
	s = multiSpace.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = multiNewline.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
