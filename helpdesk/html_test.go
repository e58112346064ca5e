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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLToTextStripsMarkup(t *testing.T) {
	html := `<h2>Reset your password</h2><p>Open the <b>settings</b> page.</p><ul><li>Step one</li><li>Step two</li></ul>`

	got := HTMLToText(html)

	assert.Contains(t, got, "Reset your password")
	assert.Contains(t, got, "Open the settings page.")
	assert.Contains(t, got, "Step one")
	assert.NotContains(t, got, "<")
}

func TestHTMLToTextBlockSeparation(t *testing.T) {
	got := HTMLToText(`<p>First</p><p>Second</p>`)
	assert.Equal(t, "First\nSecond", got)
}

func TestHTMLToTextDropsScriptAndStyle(t *testing.T) {
	got := HTMLToText(`<style>p{color:red}</style><p>Visible</p><script>alert(1)</script>`)
	assert.Equal(t, "Visible", got)
}

func TestHTMLToTextNormalizesUnicode(t *testing.T) {
	// U+00A0 no-break space and U+FB01 "fi" ligature both have NFKC
	// decompositions.
	got := HTMLToText("<p>café ﬁle</p>")
	assert.Equal(t, "café file", got)
}

func TestHTMLToTextCollapsesWhitespace(t *testing.T) {
	got := HTMLToText("<div>spaced    out</div><br><br><br><div>below</div>")
	assert.Equal(t, "spaced out\n\nbelow", got)
}

func TestHTMLToTextPlainInput(t *testing.T) {
	assert.Equal(t, "already plain", HTMLToText("already plain"))
	assert.Equal(t, "", HTMLToText(""))
}
