// Package pricefeed converts a seller price list into an Amazon Price feed
// XML document.
package pricefeed

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/sells-group/marketplace-cli/internal/model"
)

// Fixed feed values.
const (
	DocumentVersion = "4"
	MessageType     = "Price"
	OperationUpdate = "Update"
	Currency        = "USD"
)

// Output encodings.
const (
	EncodingUTF16 = "utf-16"
	EncodingUTF8  = "utf-8"
)

// Envelope is the feed document root.
type Envelope struct {
	XMLName     xml.Name  `xml:"AmazonEnvelope"`
	Header      Header    `xml:"Header"`
	MessageType string    `xml:"MessageType"`
	Messages    []Message `xml:"Message"`
}

// Header carries the document version.
type Header struct {
	DocumentVersion string `xml:"DocumentVersion"`
}

// Message is one price update.
type Message struct {
	MessageID     int    `xml:"MessageID"`
	OperationType string `xml:"OperationType"`
	Price         Price  `xml:"Price"`
}

// Price is the price block of a message.
type Price struct {
	SKU           string  `xml:"SKU"`
	StandardPrice Amount  `xml:"StandardPrice"`
	BusinessPrice *string `xml:"BusinessPrice,omitempty"`
}

// Amount is a price with its currency attribute.
type Amount struct {
	Currency string `xml:"currency,attr"`
	Value    string `xml:",chardata"`
}

// Build creates the feed document for records. Message IDs are 1-based
// positions in records. BusinessPrice is only emitted when it differs from
// the selling price.
func Build(records []model.PriceRecord) *Envelope {
	env := &Envelope{
		Header:      Header{DocumentVersion: DocumentVersion},
		MessageType: MessageType,
		Messages:    make([]Message, 0, len(records)),
	}

	for i, rec := range records {
		msg := Message{
			MessageID:     i + 1,
			OperationType: OperationUpdate,
			Price: Price{
				SKU: rec.SKU,
				StandardPrice: Amount{
					Currency: Currency,
					Value:    FormatPrice(rec.SellingPrice),
				},
			},
		}
		if rec.HasDistinctBusinessPrice() {
			bp := FormatPrice(*rec.BusinessPrice)
			msg.Price.BusinessPrice = &bp
		}
		env.Messages = append(env.Messages, msg)
	}

	return env
}

// Write serializes env to w with a leading XML declaration in the given
// encoding. UTF-16 output is little-endian with a byte order mark.
func Write(w io.Writer, env *Envelope, encoding string) error {
	var body bytes.Buffer
	enc := xml.NewEncoder(&body)
	if err := enc.Encode(env); err != nil {
		return eris.Wrap(err, "pricefeed: encode xml")
	}
	if err := enc.Close(); err != nil {
		return eris.Wrap(err, "pricefeed: encode xml")
	}

	switch strings.ToLower(encoding) {
	case EncodingUTF8, "":
		if _, err := io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+"\n"); err != nil {
			return eris.Wrap(err, "pricefeed: write declaration")
		}
		if _, err := w.Write(body.Bytes()); err != nil {
			return eris.Wrap(err, "pricefeed: write body")
		}
		return nil
	case EncodingUTF16:
		tw := transform.NewWriter(w, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder())
		if _, err := io.WriteString(tw, `<?xml version="1.0" encoding="UTF-16"?>`+"\n"); err != nil {
			return eris.Wrap(err, "pricefeed: write declaration")
		}
		if _, err := tw.Write(body.Bytes()); err != nil {
			return eris.Wrap(err, "pricefeed: write body")
		}
		if err := tw.Close(); err != nil {
			return eris.Wrap(err, "pricefeed: flush utf-16")
		}
		return nil
	default:
		return eris.Errorf("pricefeed: unsupported encoding %q", encoding)
	}
}

// Convert reads the price list at input and writes the feed document to
// output.
func Convert(input, output, encoding string, opts SheetOptions) error {
	records, err := Load(input, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return eris.Wrap(err, "pricefeed: create output")
	}
	defer f.Close() //nolint:errcheck

	env := Build(records)
	if err := Write(f, env, encoding); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return eris.Wrap(err, "pricefeed: close output")
	}

	zap.L().Info("price feed written",
		zap.String("path", output),
		zap.Int("messages", len(env.Messages)),
		zap.String("encoding", encoding),
	)
	return nil
}
