package blocklet

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/damonto/ofono-i3blocklet/internal/pkg/ofono"
)

// Block is one line of the i3blocks JSON protocol.
type Block struct {
	FullText  string `json:"full_text"`
	ShortText string `json:"short_text"`
}

// Printer writes one flushed block line per call.
type Printer struct {
	w   *bufio.Writer
	enc *json.Encoder
}

func NewPrinter(w io.Writer) *Printer {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	return &Printer{w: bw, enc: enc}
}

func (p *Printer) Print(m *ofono.Modem) error {
	text := Render(m) + " "
	if err := p.enc.Encode(Block{FullText: text, ShortText: text}); err != nil {
		return err
	}
	return p.w.Flush()
}
