package statistic

import (
	"bufio"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"chatstats/internal/models"
)

const readerBufferSize = 1 << 20 // 1 MB

// MessageReader streams MessageRecords out of an export document one at
// a time. The document is an object with a "messages" array field;
// other top-level fields are skipped. Peak memory is bounded by the
// read buffer plus a single record, independent of record count.
type MessageReader struct {
	file *os.File
	dec  *json.Decoder
	done bool
}

// OpenMessageReader opens the export at path and positions the decoder
// at the start of the messages array. Every call starts a fresh pass.
func OpenMessageReader(path string) (*MessageReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r := &MessageReader{
		file: file,
		dec:  json.NewDecoder(bufio.NewReaderSize(file, readerBufferSize)),
	}
	if err := r.seekMessages(); err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

func (r *MessageReader) seekMessages() error {
	tok, err := r.dec.Token()
	if err != nil {
		return fmt.Errorf("read document start: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected document object, got %v", tok)
	}

	for {
		tok, err = r.dec.Token()
		if err != nil {
			return fmt.Errorf("read document field: %w", err)
		}
		if delim, ok := tok.(json.Delim); ok && delim == '}' {
			// No messages field at all: an empty stream.
			r.done = true
			return nil
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected field name, got %v", tok)
		}
		if name == "messages" {
			tok, err = r.dec.Token()
			if err != nil {
				return fmt.Errorf("read messages array start: %w", err)
			}
			if delim, ok := tok.(json.Delim); !ok || delim != '[' {
				return fmt.Errorf("messages field is not an array")
			}
			return nil
		}

		// Skip envelope fields (guild/channel metadata and the like).
		var skip json.RawMessage
		if err = r.dec.Decode(&skip); err != nil {
			return fmt.Errorf("skip field %q: %w", name, err)
		}
	}
}

// Next returns the next record, or io.EOF once the array is drained.
// Any other error means the document is malformed and the pass must be
// aborted; no record is ever yielded twice.
func (r *MessageReader) Next() (*models.MessageRecord, error) {
	if r.done {
		return nil, io.EOF
	}
	if !r.dec.More() {
		if _, err := r.dec.Token(); err != nil {
			return nil, fmt.Errorf("read messages array end: %w", err)
		}
		r.done = true
		return nil, io.EOF
	}

	var rec models.MessageRecord
	if err := r.dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode message record: %w", err)
	}
	return &rec, nil
}

func (r *MessageReader) Close() error {
	return r.file.Close()
}
