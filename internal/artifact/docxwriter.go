package artifact

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/meeting-minutes/internal/models"
)

const (
	fontName     = "Calibri"
	bodySize     = 11
	titleSize    = 18
	sectionSize  = 14
	subheadSize  = 12
	textColorHex = "000000"
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*•]\s+(.+)$`)
)

// summaryToDocx renders every section as a heading followed by its
// markdown body.
func summaryToDocx(title string, summary models.MeetingSummary, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addRun(doc.AddParagraph(""), title, true, titleSize)

	for _, section := range models.Sections {
		doc.AddParagraph("")
		addRun(doc.AddParagraph(""), section.Title(), true, sectionSize)
		writeMarkdown(doc, summary.Get(section))
	}

	return doc.SaveTo(outputPath)
}

func writeMarkdown(doc *docx.RootDoc, markdown string) {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		switch {
		case reHeading.MatchString(trimmed):
			m := reHeading.FindStringSubmatch(trimmed)
			addRun(doc.AddParagraph(""), m[2], true, subheadSize)
		case reBullet.MatchString(trimmed):
			m := reBullet.FindStringSubmatch(trimmed)
			addRichText(doc.AddParagraph(""), "• "+m[1])
		default:
			addRichText(doc.AddParagraph(""), trimmed)
		}
	}
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(stripInline(text)).Font(fontName).Size(size).Color(textColorHex)
	if bold {
		run.Bold(true)
	}
}

// addRichText keeps **bold** spans bold and writes the rest as plain runs.
func addRichText(p *docx.Paragraph, text string) {
	plain := reBold.Split(text, -1)
	bold := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range plain {
		if part != "" {
			addRun(p, part, false, bodySize)
		}
		if i < len(bold) {
			addRun(p, bold[i][1], true, bodySize)
		}
	}
}

func stripInline(s string) string {
	return strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
}
