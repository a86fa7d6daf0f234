// Package replay feeds recorded management frames to a frame handler.
//
// In multi-frame mode a buffer is a sequence of records:
//
//	length (uint16, big endian) || payload (length bytes)
//
// Records are consumed until fewer than 2 bytes remain. A record whose
// declared length overruns the buffer ends iteration without error.
package replay

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
)

const lengthPrefixLen = 2

// Frames splits buf into frame payloads. The returned slices alias buf.
func Frames(buf []byte, multi bool) [][]byte {
	if !multi {
		return [][]byte{buf}
	}

	var frames [][]byte
	pos := 0
	for len(buf)-pos >= lengthPrefixLen {
		flen := int(binary.BigEndian.Uint16(buf[pos:]))
		pos += lengthPrefixLen
		if len(buf)-pos < flen {
			slog.Debug("replay: truncated record", "declared", flen, "remaining", len(buf)-pos)
			break
		}
		frames = append(frames, buf[pos:pos+flen])
		pos += flen
	}
	return frames
}

// Replay hands every frame in buf to fn and returns how many frames were
// dispatched. Errors from fn are logged and do not stop the replay.
func Replay(buf []byte, multi bool, fn func([]byte) error) int {
	n := 0
	for _, frame := range Frames(buf, multi) {
		slog.Debug("replay: frame", "len", len(frame), "data", fmt.Sprintf("%x", frame))
		if err := fn(frame); err != nil {
			slog.Debug("replay: frame rejected", "error", err)
		}
		n++
	}
	return n
}

// ReplayFile reads path and replays its contents.
func ReplayFile(path string, multi bool, fn func([]byte) error) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("could not read %q: %w", path, err)
	}
	return Replay(data, multi, fn), nil
}

// Encode builds a multi-frame buffer from frames. Frames longer than 65535
// bytes are rejected.
func Encode(frames ...[]byte) ([]byte, error) {
	var out []byte
	for i, f := range frames {
		if len(f) > 0xFFFF {
			return nil, fmt.Errorf("frame %d too long: %d bytes", i, len(f))
		}
		out = binary.BigEndian.AppendUint16(out, uint16(len(f)))
		out = append(out, f...)
	}
	return out, nil
}
