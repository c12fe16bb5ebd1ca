package importer

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docdraft/internal/document"
)

// TextImporter handles plain .txt files. Blank lines separate
// paragraphs; each paragraph becomes one unstyled block.
type TextImporter struct{}

func (p *TextImporter) Import(r io.Reader, filename string) ([]document.Block, error) {
	var blocks []document.Block
	var para strings.Builder

	flush := func() {
		text := strings.TrimSpace(para.String())
		para.Reset()
		if text == "" {
			return
		}
		blocks = append(blocks, document.Block{
			Key:  document.NewKey(),
			Type: document.Unstyled,
			Text: text,
		})
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}
		if para.Len() > 0 {
			para.WriteString(" ")
		}
		para.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return blocks, nil
}
