package dump

import (
	"fmt"
	"io"

	"github.com/ugorji/go/codec"
)

// Format selects an encoding for Write.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatText, FormatJSON, FormatMsgpack:
		return f, nil
	}
	return "", fmt.Errorf("unknown dump format %q", name)
}

// Write encodes snap to w in the given format.
func Write(w io.Writer, snap *Snapshot, format Format) error {
	switch format {
	case FormatText:
		return WriteText(w, snap)
	case FormatJSON:
		return WriteJSON(w, snap)
	case FormatMsgpack:
		return WriteMsgpack(w, snap)
	}
	return fmt.Errorf("unknown dump format %q", format)
}

// WriteJSON writes snap as indented JSON.
func WriteJSON(w io.Writer, snap *Snapshot) error {
	var handle codec.JsonHandle
	handle.Indent = 2
	handle.HTMLCharsAsIs = true
	if err := codec.NewEncoder(w, &handle).Encode(snap); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteMsgpack writes snap as MessagePack.
func WriteMsgpack(w io.Writer, snap *Snapshot) error {
	var handle codec.MsgpackHandle
	handle.WriteExt = true
	if err := codec.NewEncoder(w, &handle).Encode(snap); err != nil {
		return fmt.Errorf("encode msgpack: %w", err)
	}
	return nil
}
