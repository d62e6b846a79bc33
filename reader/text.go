package reader

import (
	"bufio"
	"io"
	"strings"

	"github.com/tsawler/manuscript/assemble"
)

// TextBlocks splits plain text into blank-line separated blocks. A form feed
// starts a new page; the first page is 1.
func TextBlocks(r io.Reader) ([]assemble.Block, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var blocks []assemble.Block
	var buf []string
	page := 1
	flush := func() {
		if len(buf) > 0 {
			blocks = append(blocks, assemble.Block{Text: strings.Join(buf, "\n"), Page: page})
			buf = nil
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		for {
			i := strings.IndexByte(line, '\f')
			if i < 0 {
				break
			}
			if before := strings.TrimSpace(line[:i]); before != "" {
				buf = append(buf, before)
			}
			flush()
			page++
			line = line[i+1:]
		}
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		buf = append(buf, strings.TrimRight(line, " \t\r"))
	}
	flush()
	return blocks, scanner.Err()
}
